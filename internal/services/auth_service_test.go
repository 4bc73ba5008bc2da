package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/pkg/jwt"
)

const testPassword = "correct-horse-battery"

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	jwtService := jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		time.Hour,
		7*24*time.Hour,
	)

	return NewAuthService(
		database.NewUserRepository(&mockDB{db: db}),
		jwtService,
		bcrypt.MinCost,
		testLogger(),
	), mock
}

func loginRequest(email, password string) *models.LoginRequest {
	return &models.LoginRequest{Email: email, Password: password}
}

func userRow(userID uuid.UUID, email string, isActive bool) *sqlmock.Rows {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role", "admin_level",
		"created_by", "is_active", "last_login", "created_at",
	}).AddRow(
		userID, email, string(hash), "Test Admin", "admin", "admin",
		nil, isActive, nil, now,
	)
}

func TestLogin(t *testing.T) {
	t.Run("Success Issues Token Pair", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("admin@helnay.com").
			WillReturnRows(userRow(userID, "admin@helnay.com", true))
		mock.ExpectExec(`UPDATE users SET last_login`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		resp, err := service.Login(loginRequest("admin@helnay.com", testPassword))
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Greater(t, resp.ExpiresIn, int64(0))
		assert.Equal(t, userID, resp.User.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("admin@helnay.com").
			WillReturnRows(userRow(userID, "admin@helnay.com", true))

		_, err := service.Login(loginRequest("admin@helnay.com", "not-the-password"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		service, mock := newAuthService(t)

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("nobody@helnay.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := service.Login(loginRequest("nobody@helnay.com", testPassword))
		// Same error as a bad password, so the response does not leak
		// which of the two was wrong
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Deactivated Account Cannot Log In", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("former@helnay.com").
			WillReturnRows(userRow(userID, "former@helnay.com", false))

		_, err := service.Login(loginRequest("former@helnay.com", testPassword))
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("Last Login Failure Does Not Fail Login", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("admin@helnay.com").
			WillReturnRows(userRow(userID, "admin@helnay.com", true))
		mock.ExpectExec(`UPDATE users SET last_login`).
			WithArgs(userID).
			WillReturnError(assert.AnError)

		resp, err := service.Login(loginRequest("admin@helnay.com", testPassword))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}

func TestRefresh(t *testing.T) {
	service, mock := newAuthService(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("admin@helnay.com").
		WillReturnRows(userRow(userID, "admin@helnay.com", true))
	mock.ExpectExec(`UPDATE users SET last_login`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := service.Login(loginRequest("admin@helnay.com", testPassword))
	require.NoError(t, err)

	t.Run("Valid Refresh Token", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(userID).
			WillReturnRows(userRow(userID, "admin@helnay.com", true))

		next, err := service.Refresh(resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, next.AccessToken)
		assert.Equal(t, userID, next.User.ID)
	})

	t.Run("Access Token Is Not A Refresh Token", func(t *testing.T) {
		_, err := service.Refresh(resp.AccessToken)
		assert.Error(t, err)
	})

	t.Run("Deactivated Since Issued", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(userID).
			WillReturnRows(userRow(userID, "admin@helnay.com", false))

		_, err := service.Refresh(resp.RefreshToken)
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(userID).
			WillReturnRows(userRow(userID, "admin@helnay.com", true))
		mock.ExpectExec(`UPDATE users SET password_hash`).
			WithArgs(userID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := service.ChangePassword(userID, testPassword, "a-new-password-42")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Current Password", func(t *testing.T) {
		service, mock := newAuthService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(userID).
			WillReturnRows(userRow(userID, "admin@helnay.com", true))

		err := service.ChangePassword(userID, "wrong", "a-new-password-42")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("New Password Too Short", func(t *testing.T) {
		service, _ := newAuthService(t)

		err := service.ChangePassword(uuid.New(), testPassword, "short")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
