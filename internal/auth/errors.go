package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeNotLoggedIn        = "auth_not_logged_in"
	TextCodeTokenInvalid       = "auth_token_invalid"
	TextCodeForbidden          = "auth_forbidden"
	TextCodeUserNotFound       = "auth_user_not_found"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
)

// ErrNotLoggedIn is returned when a request carries no token, an unverifiable
// token, or a token without the authorized flag and a user id.
var ErrNotLoggedIn = errors.New("user is not logged in", errors.CategoryAuth).
	WithTextCode(TextCodeNotLoggedIn).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid is returned when a token fails signature or format checks.
var ErrTokenInvalid = errors.New("unable to decode session token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when a valid token names a different identity than
// the resource owner.
var ErrForbidden = errors.New("request identity does not match resource owner", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrUserNotFound is returned by login when no account matches the email.
var ErrUserNotFound = errors.New("user was not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidCredentials is returned by login on a password mismatch.
var ErrInvalidCredentials = errors.New("wrong password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword mirrors the bcrypt mismatch sentinel.
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
