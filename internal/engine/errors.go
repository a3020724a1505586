package engine

import "github.com/goliatone/go-errors"

const (
	TextCodeNotFound       = "engine_not_found"
	TextCodeDuplicateEmail = "engine_duplicate_email"
	TextCodeAlreadyShared  = "engine_already_shared"
	TextCodePoolLimit      = "engine_pool_limit"
	TextCodeSaveRejected   = "engine_save_rejected"
	TextCodeTooManyFilters = "engine_too_many_filters"
)

// ErrNotFound is returned when the target record is absent.
var ErrNotFound = errors.New("record not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateEmail is returned when registration hits an existing account.
var ErrDuplicateEmail = errors.New("email account already registered", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrAlreadyShared is returned when a story id is already in the shared pool.
var ErrAlreadyShared = errors.New("story has already been shared", errors.CategoryValidation).
	WithTextCode(TextCodeAlreadyShared).
	WithCode(errors.CodeConflict)

// ErrPoolLimit is returned when the shared pool is at capacity.
var ErrPoolLimit = errors.New("shared story limit reached", errors.CategoryValidation).
	WithTextCode(TextCodePoolLimit).
	WithCode(errors.CodeConflict)

// ErrSaveRejected merges the two reasons a conditional save can have no
// effect. The store cannot tell them apart in one atomic step and the user
// remedy is the same either way, so they are reported as one failure.
var ErrSaveRejected = errors.New("over the save limit, or story already saved", errors.CategoryValidation).
	WithTextCode(TextCodeSaveRejected).
	WithCode(errors.CodeConflict)

// ErrTooManyFilters bounds caller-supplied filter lists before the store call.
var ErrTooManyFilters = errors.New("too many news filters", errors.CategoryBadInput).
	WithTextCode(TextCodeTooManyFilters).
	WithCode(errors.CodeBadRequest)
