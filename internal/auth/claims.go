package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed claim set bound into a session token. SessionIP and
// SessionUA capture the issuing request's origin for audit only; they are not
// re-validated against later requests.
type Claims struct {
	jwt.RegisteredClaims
	Authorized  bool   `json:"authorized"`
	UserID      string `json:"userId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	SessionIP   string `json:"sessionIP,omitempty"`
	SessionUA   string `json:"sessionUA,omitempty"`
}

// Valid claims carry the authorized flag and a non-empty user id. Signature
// verification happens in the token service; this is the payload-shape check.
func (c *Claims) Admissible() bool {
	return c != nil && c.Authorized && c.UserID != ""
}

// Owns reports whether the claims identity matches the given resource owner id.
func (c *Claims) Owns(id string) bool {
	return c != nil && c.UserID != "" && c.UserID == id
}
