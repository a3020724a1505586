package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/store"
)

func seedIdentity(t *testing.T, users store.UserStore, email, password string) *news.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	u := &news.User{
		ID:           "u1",
		Email:        email,
		DisplayName:  "Alice",
		PasswordHash: hash,
	}
	require.NoError(t, users.Insert(context.Background(), u))
	return u
}

func TestAuthenticator_Login(t *testing.T) {
	users := store.NewMemory().Users()
	seedIdentity(t, users, "alice@example.com", "abcd1!xy")

	tokens := auth.NewTokenService([]byte("login-test-key"), "newswatch", nil)
	auther := auth.NewAuthenticator(users, tokens)

	t.Run("valid credentials mint a session", func(t *testing.T) {
		session, err := auther.Login(context.Background(), "alice@example.com", "abcd1!xy", "10.0.0.1", "test-agent")
		require.NoError(t, err)

		assert.Equal(t, "u1", session.UserID)
		assert.Equal(t, "Alice", session.DisplayName)
		assert.Equal(t, "Authorized", session.Msg)

		claims, err := tokens.Validate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "10.0.0.1", claims.SessionIP)
		assert.Equal(t, "test-agent", claims.SessionUA)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := auther.Login(context.Background(), "nobody@example.com", "abcd1!xy", "", "")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := auther.Login(context.Background(), "alice@example.com", "wrong1!xy", "", "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthenticator_Logout(t *testing.T) {
	users := store.NewMemory().Users()
	tokens := auth.NewTokenService([]byte("login-test-key"), "newswatch", nil)
	auther := auth.NewAuthenticator(users, tokens)

	claims := &auth.Claims{Authorized: true, UserID: "u1"}

	t.Run("own session marker", func(t *testing.T) {
		assert.NoError(t, auther.Logout(claims, "u1"))
	})

	t.Run("someone else's session marker is forbidden", func(t *testing.T) {
		assert.ErrorIs(t, auther.Logout(claims, "u2"), auth.ErrForbidden)
	})

	t.Run("no claims is unauthorized", func(t *testing.T) {
		assert.ErrorIs(t, auther.Logout(nil, "u1"), auth.ErrNotLoggedIn)
	})
}
