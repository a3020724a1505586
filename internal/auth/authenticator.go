package auth

import (
	"context"

	"github.com/goliatone/go-newswatch/internal/news"
)

// IdentityProvider resolves accounts for login. Implementations return
// (nil, nil) when no account matches, never an error for plain absence.
type IdentityProvider interface {
	FindByEmail(ctx context.Context, email string) (*news.User, error)
}

// Session is what a successful login hands back to the client.
type Session struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
	Msg         string `json:"msg"`
}

// Authenticator verifies submitted credentials against the stored hash and
// mints session tokens. Logout is client-side token discard; the server only
// validates that callers delete their own session marker.
type Authenticator struct {
	provider IdentityProvider
	tokens   *TokenService
	logger   Logger
}

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(provider IdentityProvider, tokens *TokenService) *Authenticator {
	return &Authenticator{
		provider: provider,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login checks email+password and, on match, issues a token embedding the
// identity plus the originating session context for audit.
func (a *Authenticator) Login(ctx context.Context, email, password, sessionIP, sessionUA string) (*Session, error) {
	user, err := a.provider.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("Login identity lookup error: %v", err)
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Info("Login password mismatch for %s", email)
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user.ID, user.DisplayName, sessionIP, sessionUA)
	if err != nil {
		a.logger.Error("Login token issue error: %v", err)
		return nil, err
	}

	return &Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Token:       token,
		Msg:         "Authorized",
	}, nil
}

// Logout validates that the caller is discarding their own session marker.
// There is no server-side session state to clear.
func (a *Authenticator) Logout(claims *Claims, ownerID string) error {
	if claims == nil {
		return ErrNotLoggedIn
	}
	if !claims.Owns(ownerID) {
		return ErrForbidden
	}
	return nil
}
