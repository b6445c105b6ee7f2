package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/2003dinijay/ChatStack/internal/authserver/models"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/dbx"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password_hash, enabled, otp_code, otp_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Enabled,
		user.OtpCode, user.OtpExpiresAt).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, fmt.Errorf("email already in use: %w", common.ErrConflict)
			}
			return nil, fmt.Errorf("username already in use: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const userColumns = `id, username, email, password_hash, enabled, otp_code, otp_expires_at, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	var otpCode sql.NullString
	var otpExpiresAt sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Enabled, &otpCode, &otpExpiresAt, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	if otpCode.Valid {
		user.OtpCode = &otpCode.String
	}
	if otpExpiresAt.Valid {
		user.OtpExpiresAt = &otpExpiresAt.Time
	}

	return user, nil
}

func (r *PostgresRepository) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) existsBy(ctx context.Context, column, value string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE ` + column + ` = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsBy(ctx, "username", username)
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsBy(ctx, "email", email)
}

func (r *PostgresRepository) SetOtp(ctx context.Context, email, code string, expiresAt time.Time) error {
	query :=
		`UPDATE users SET otp_code = $2, otp_expires_at = $3
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// ConsumeOtp is the only path that enables an account. The WHERE clause makes
// the update conditional on the stored code, so concurrent submissions of the
// same code race on a single row update and exactly one of them wins.
func (r *PostgresRepository) ConsumeOtp(ctx context.Context, email, code string, now time.Time) (bool, error) {
	query :=
		`UPDATE users SET enabled = TRUE, otp_code = NULL, otp_expires_at = NULL
		 WHERE email = $1 AND otp_code = $2 AND otp_expires_at > $3
		 `

	res, err := r.db.ExecContext(ctx, query, email, code, now)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) ResetPassword(ctx context.Context, email, code string, now time.Time, passwordHash string) (bool, error) {
	query :=
		`UPDATE users SET password_hash = $4, otp_code = NULL, otp_expires_at = NULL
		 WHERE email = $1 AND otp_code = $2 AND otp_expires_at > $3
		 `

	res, err := r.db.ExecContext(ctx, query, email, code, now, passwordHash)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}
