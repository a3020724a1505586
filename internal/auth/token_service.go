package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService signs and validates session tokens with a process-wide HMAC
// secret. Tokens carry no expiry: they remain valid until the secret rotates.
type TokenService struct {
	signingKey []byte
	issuer     string
	logger     Logger
}

// NewTokenService creates a TokenService instance.
func NewTokenService(signingKey []byte, issuer string, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenService{
		signingKey: signingKey,
		issuer:     issuer,
		logger:     logger,
	}
}

// Issue mints a token for the given identity, embedding the session context.
func (ts *TokenService) Issue(userID, displayName, sessionIP, sessionUA string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   ts.issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Authorized:  true,
		UserID:      userID,
		DisplayName: displayName,
		SessionIP:   sessionIP,
		SessionUA:   sessionUA,
	}
	return ts.Sign(claims)
}

// Sign signs the claim set using the configured signing key.
func (ts *TokenService) Sign(claims *Claims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning the decoded claims.
// Any signature or format failure maps to ErrTokenInvalid with the underlying
// cause preserved for diagnostics.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		return nil, errors.Wrap(err, ErrTokenInvalid.Category, ErrTokenInvalid.Message).
			WithTextCode(ErrTokenInvalid.TextCode).
			WithCode(errors.CodeUnauthorized)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenInvalid
}
