package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// HeaderAuthToken is the request header carrying the session token.
const HeaderAuthToken = "x-auth"

// claimsKey is the fiber locals slot holding decoded claims for the request.
const claimsKey = "auth:claims"

// TokenValidator validates a raw token string into claims.
type TokenValidator interface {
	Validate(tokenString string) (*Claims, error)
}

// Guard returns middleware that admits a request only when it carries a
// verifiable token with the authorized flag and a user id. Decoded claims are
// attached to the request context for downstream handlers. The check is pure
// and per-request; no state is kept between calls.
func Guard(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderAuthToken)
		if raw == "" {
			return ErrNotLoggedIn
		}

		claims, err := validator.Validate(raw)
		if err != nil {
			return errors.Wrap(err, errors.CategoryAuth, ErrNotLoggedIn.Message).
				WithTextCode(TextCodeNotLoggedIn).
				WithCode(errors.CodeUnauthorized)
		}

		if !claims.Admissible() {
			return ErrNotLoggedIn
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims the Guard attached to this request.
func ClaimsFromCtx(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

// RequireSelf returns the request claims only when they own the given
// resource id. A missing token is Unauthenticated, a mismatched identity is
// Forbidden; the two are distinct failures by design.
func RequireSelf(c *fiber.Ctx, ownerID string) (*Claims, error) {
	claims, ok := ClaimsFromCtx(c)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if !claims.Owns(ownerID) {
		return nil, ErrForbidden
	}
	return claims, nil
}
