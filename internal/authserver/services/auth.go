// Package services contains the business logic of the identity authority.
// This file implements AuthService, the account lifecycle state machine:
// pending registration, OTP verification, credential login, and the
// password-reset flow.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/2003dinijay/ChatStack/internal/authserver/models"
	"github.com/2003dinijay/ChatStack/internal/authserver/repositories/users"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/messaging"
	"github.com/2003dinijay/ChatStack/internal/token"
)

// AuthService drives the account lifecycle. OTP delivery goes through the
// messaging publisher and is decoupled from account state: a failed publish
// never rolls an account back, the caller simply requests a new code.
type AuthService struct {
	users            users.Repository
	publisher        messaging.Publisher
	logger           logging.Logger
	jwtSecret        []byte
	tokenValidity    time.Duration
	otpValidity      time.Duration
	resetOtpValidity time.Duration
}

func NewAuthService(repo users.Repository, publisher messaging.Publisher, logger logging.Logger,
	jwtSecret []byte, tokenValidity, otpValidity, resetOtpValidity time.Duration) *AuthService {
	return &AuthService{
		users:            repo,
		publisher:        publisher,
		logger:           logger,
		jwtSecret:        jwtSecret,
		tokenValidity:    tokenValidity,
		otpValidity:      otpValidity,
		resetOtpValidity: resetOtpValidity,
	}
}

// Register creates a disabled account with a pending verification code and
// requests its delivery. Username and email collisions yield ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	code, err := common.GenerateOtp()
	if err != nil {
		return nil, fmt.Errorf("error generating otp: %w", err)
	}
	expiresAt := time.Now().Add(s.otpValidity)

	user, err := s.users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Enabled:      false,
		OtpCode:      &code,
		OtpExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, err
	}

	s.publishOtp(ctx, messaging.TypeVerify, email, code)

	return user, nil
}

// Verify consumes a pending verification code and enables the account.
// The consume is a single conditional update, so for any given code at most
// one call can succeed; a repeat of a spent code reports ErrOtpMismatch.
func (s *AuthService) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	ok, err := s.users.ConsumeOtp(ctx, email, code, time.Now())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	return s.classifyOtpFailure(ctx, email, code)
}

// ResendOtp replaces the pending verification code with a fresh one.
// An already verified account yields ErrConflict.
func (s *AuthService) ResendOtp(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Enabled {
		return fmt.Errorf("account is already verified: %w", common.ErrConflict)
	}

	return s.issueOtp(ctx, email, messaging.TypeVerify, s.otpValidity)
}

// Login checks credentials and mints a bearer token. Every failure mode,
// including an unverified account, reports the same ErrUnauthorized so the
// response does not leak which part of the credentials was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrUnauthorized
	}

	if !user.Enabled {
		return "", nil, common.ErrUnauthorized
	}

	tokenString, err := token.Issue(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}

	return tokenString, user, nil
}

// ForgotPassword issues a short-lived reset code. Unknown emails yield
// ErrNotFound.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return err
	}

	return s.issueOtp(ctx, email, messaging.TypeReset, s.resetOtpValidity)
}

// ResetPassword consumes a reset code and replaces the password, under the
// same single-use guarantee as Verify.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	ok, err := s.users.ResetPassword(ctx, email, code, time.Now(), string(hash))
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	return s.classifyOtpFailure(ctx, email, code)
}

// GetUser looks up a single account by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUsers resolves a batch of ids; unknown ids are skipped.
func (s *AuthService) GetUsers(ctx context.Context, ids []int64) ([]*models.User, error) {
	return s.users.GetByIDs(ctx, ids)
}

func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// issueOtp stores a fresh code for the account and requests its delivery.
func (s *AuthService) issueOtp(ctx context.Context, email string, deliveryType messaging.DeliveryType, validity time.Duration) error {
	code, err := common.GenerateOtp()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	if err := s.users.SetOtp(ctx, email, code, time.Now().Add(validity)); err != nil {
		return err
	}

	s.publishOtp(ctx, deliveryType, email, code)

	return nil
}

// classifyOtpFailure explains a failed conditional consume. The account is
// re-read and the stored challenge compared against the submitted code; a
// matching but stale code is reported as expired, anything else as a
// mismatch. The distinction is cosmetic, the consume itself already failed.
func (s *AuthService) classifyOtpFailure(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.OtpCode != nil && *user.OtpCode == code &&
		user.OtpExpiresAt != nil && user.OtpExpiresAt.Before(time.Now()) {
		return common.ErrOtpExpired
	}

	return common.ErrOtpMismatch
}

// publishOtp hands the code to the delivery stream. Publish failures are
// logged and swallowed: the account keeps its pending code and the user can
// request a resend, which is cheaper than unwinding the account change.
func (s *AuthService) publishOtp(ctx context.Context, deliveryType messaging.DeliveryType, email, code string) {
	err := s.publisher.Publish(ctx, messaging.OtpDelivery{
		Type:  deliveryType,
		Email: email,
		Otp:   code,
	})
	if err != nil {
		s.logger.Warn(ctx, "otp delivery request failed", "email", email, "type", string(deliveryType), "error", err)
	}
}
