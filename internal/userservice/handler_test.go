package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
	"github.com/stretchr/testify/assert"
)

func setupUserTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM sessions")
		if err != nil {
			return err
		}

		_, err = db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewUserService(db, cache), db, cleanup
}

func TestRegisterUser(t *testing.T) {
	s, db, cleanup := setupUserTestEnvironment(t)

	ctx := context.Background()

	t.Run("first user becomes admin", func(t *testing.T) {
		user, session, err := s.RegisterUser(ctx, "Jane Doe", "jane@example.com", "Password123")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.IsAdmin())
		assert.NotEmpty(t, session.Plain)

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = $1", user.ID).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("second user is a regular user", func(t *testing.T) {
		user, _, err := s.RegisterUser(ctx, "John Doe", "john@example.com", "Password123")
		assert.NoError(t, err)
		assert.Equal(t, RoleUser, user.Role)
		assert.False(t, user.IsAdmin())
	})

	t.Run("duplicate email creates no second row", func(t *testing.T) {
		_, _, err := s.RegisterUser(ctx, "Jane Again", "jane@example.com", "Password123")
		assert.Equal(t, ErrDuplicateEmail, err)

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", "jane@example.com").Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, _, err := s.RegisterUser(ctx, "", "bad", "short")
		assert.Error(t, err)
		assert.IsType(t, common.ValidationError{}, err)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestLoginUser(t *testing.T) {
	s, _, cleanup := setupUserTestEnvironment(t)

	ctx := context.Background()

	_, _, err := s.RegisterUser(ctx, "Jane Doe", "jane@example.com", "Password123")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:        "valid credentials",
			email:       "jane@example.com",
			password:    "Password123",
			expectedErr: nil,
		},
		{
			name:        "wrong password",
			email:       "jane@example.com",
			password:    "Password124",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "Password123",
			expectedErr: ErrAuthenticationFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, session, err := s.LoginUser(ctx, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.email, user.Email)
				assert.NotEmpty(t, session.Plain)
			}
		})
	}

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestGetUserByID(t *testing.T) {
	s, db, cleanup := setupUserTestEnvironment(t)

	ctx := context.Background()

	registered, _, err := s.RegisterUser(ctx, "Jane Doe", "jane@example.com", "Password123")
	assert.NoError(t, err)

	t.Run("known id", func(t *testing.T) {
		user, err := s.GetUserByID(ctx, registered.ID)
		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		// With the row gone, only the cache can answer.
		_, err := db.Exec("DELETE FROM users WHERE id = $1", registered.ID)
		assert.NoError(t, err)

		user, err := s.GetUserByID(ctx, registered.ID)
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.GetUserByID(ctx, 999999)
		assert.Equal(t, ErrNotFound, err)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestSessionLifecycle(t *testing.T) {
	s, _, cleanup := setupUserTestEnvironment(t)

	ctx := context.Background()

	registered, session, err := s.RegisterUser(ctx, "Jane Doe", "jane@example.com", "Password123")
	assert.NoError(t, err)

	t.Run("token resolves to user", func(t *testing.T) {
		user, err := s.GetUserBySessionToken(ctx, session.Plain)
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		user, err := s.GetUserBySessionToken(ctx, session.Plain)
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := s.GetUserBySessionToken(ctx, "AAAAAAAAAAAAAAAAAAAAAAAAAA")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("logout invalidates token", func(t *testing.T) {
		err := s.LogoutUser(ctx, session.Plain)
		assert.NoError(t, err)

		_, err = s.GetUserBySessionToken(ctx, session.Plain)
		assert.Equal(t, ErrNotFound, err)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}
