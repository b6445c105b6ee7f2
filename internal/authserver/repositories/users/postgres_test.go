package users

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/authserver/models"
	"github.com/2003dinijay/ChatStack/internal/common"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "enabled",
		"otp_code", "otp_expires_at", "created_at",
	})
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	code := "123456"
	expires := time.Now().Add(15 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "hash", false, &code, &expires).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))

	repo := NewPostgresRepository(db)
	user, err := repo.Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		OtpCode:      &code,
		OtpExpiresAt: &expires,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConflict(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		message    string
	}{
		{"username taken", "users_username_key", "username already in use"},
		{"email taken", "users_email_key", "email already in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
				WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tt.constraint})

			repo := NewPostgresRepository(db)
			_, err = repo.Create(context.Background(), &models.User{Username: "alice", Email: "alice@example.com"})

			require.ErrorIs(t, err, common.ErrConflict)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, enabled, otp_code, otp_expires_at, created_at FROM users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(userRows().AddRow(int64(7), "alice", "alice@example.com", "hash", true, nil, nil, time.Now()))

	repo := NewPostgresRepository(db)
	user, err := repo.GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.Enabled)
	assert.Nil(t, user.OtpCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WithArgs("ghost@example.com").WillReturnRows(userRows())

	repo := NewPostgresRepository(db)
	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByIDs(t *testing.T) {
	// The id list is bound as a single array parameter, which the default
	// sqlmock converter rejects, so pass values through untouched.
	passthrough := driver.ValueConverter(passthroughConverter{})
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthrough))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ANY($1)")).
		WithArgs([]int64{7, 8}).
		WillReturnRows(userRows().
			AddRow(int64(7), "alice", "alice@example.com", "hash", true, nil, nil, time.Now()).
			AddRow(int64(8), "bob", "bob@example.com", "hash", false, nil, nil, time.Now()))

	repo := NewPostgresRepository(db)
	result, err := repo.GetByIDs(context.Background(), []int64{7, 8})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "bob", result[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	result, err := repo.GetByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return v, nil
}

func TestExistsByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPostgresRepository(db)
	exists, err := repo.ExistsByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSetOtp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET otp_code = $2, otp_expires_at = $3")).
		WithArgs("alice@example.com", "123456", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	err = repo.SetOtp(context.Background(), "alice@example.com", "123456", expires)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetOtpNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err = repo.SetOtp(context.Background(), "ghost@example.com", "123456", time.Now())

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestConsumeOtp(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"code matches", 1, true},
		{"code already consumed", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			now := time.Now()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET enabled = TRUE, otp_code = NULL, otp_expires_at = NULL")).
				WithArgs("alice@example.com", "123456", now).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			repo := NewPostgresRepository(db)
			ok, err := repo.ConsumeOtp(context.Background(), "alice@example.com", "123456", now)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestResetPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $4, otp_code = NULL, otp_expires_at = NULL")).
		WithArgs("alice@example.com", "654321", now, "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	ok, err := repo.ResetPassword(context.Background(), "alice@example.com", "654321", now, "newhash")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	repo := NewPostgresRepository(db)
	_, err = repo.GetByID(context.Background(), 7)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
