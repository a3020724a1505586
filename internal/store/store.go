// Package store defines the document-store ports the mutation engine depends
// on, plus a MongoDB adapter and an in-memory adapter with the same
// conditional-update contract. Every mutation that depends on current size or
// current absence is a single atomic conditional operation at this layer;
// callers observe whether it applied, never a torn intermediate state.
package store

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-newswatch/internal/news"
)

// EnforceCommentCap gates the per-story comment bound. The bound is declared
// in the data model but the enforcing filter clause is intentionally inactive;
// flipping this constant turns AppendComment into a bounded insert.
const EnforceCommentCap = false

const (
	TextCodeUnavailable    = "store_unavailable"
	TextCodeDuplicateID    = "store_duplicate_id"
	TextCodeDuplicateEmail = "store_duplicate_email"
)

// ErrUnavailable wraps backing-store transport failures, not further
// classified.
var ErrUnavailable = errors.New("backing store unavailable", errors.CategoryOperation).
	WithTextCode(TextCodeUnavailable).
	WithCode(errors.CodeInternal)

// ErrDuplicateID is returned by inserts that hit an existing document id.
var ErrDuplicateID = errors.New("document id already exists", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateID).
	WithCode(errors.CodeConflict)

// ErrDuplicateEmail is returned by user inserts that hit an existing email.
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// UserStore is the conditional-mutation port over user documents. Lookup
// methods return (nil, nil) for plain absence; conditional mutations report
// whether they applied instead of guessing why they did not.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*news.User, error)
	FindByID(ctx context.Context, id string) (*news.User, error)
	// Insert creates the user document only if both the id and the email are
	// unused, as one atomic step: ErrDuplicateEmail on an email collision,
	// ErrDuplicateID on an id collision. Email uniqueness lives here, not in
	// a caller-side read, so concurrent registrations cannot both land.
	Insert(ctx context.Context, u *news.User) error
	// Delete removes the user document, reporting whether one matched.
	Delete(ctx context.Context, id string) (bool, error)
	// ReplacePrefs overwrites settings and newsFilters wholesale, keyed on
	// identity only: last-writer-wins, no merge. Returns the post-update
	// document, or nil when no document matched.
	ReplacePrefs(ctx context.Context, id string, s news.Settings, filters []news.Filter) (*news.User, error)
	// SaveStory inserts the story into savedStories only if it is absent and
	// the set holds fewer than news.SaveLimit entries, as one atomic step.
	// A false return means the conditional update had no effect; the store
	// cannot distinguish duplicate from at-limit from missing user.
	SaveStory(ctx context.Context, id string, st news.Story) (bool, error)
	// RemoveSavedStory pulls all entries matching the story id. Removing an
	// absent entry succeeds with no change. Returns nil when no user matched.
	RemoveSavedStory(ctx context.Context, id, storyID string) (*news.User, error)
	// ReplaceFilterStories overwrites newsFilters wholesale with scan results
	// (last-writer-wins, same accepted race as ReplacePrefs).
	ReplaceFilterStories(ctx context.Context, id string, filters []news.Filter) (bool, error)
}

// StoryStore is the conditional-mutation port over the shared-story pool.
type StoryStore interface {
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Insert adds a shared story; ErrDuplicateID when the id is taken.
	Insert(ctx context.Context, s *news.SharedStory) error
	List(ctx context.Context) ([]news.SharedStory, error)
	Delete(ctx context.Context, id string) (bool, error)
	// AppendComment pushes a comment conditioned on the story existing,
	// reporting whether a document matched.
	AppendComment(ctx context.Context, id string, c news.Comment) (bool, error)
}

// HomeStore reads and replaces the global home-news document.
type HomeStore interface {
	HomeNews(ctx context.Context) ([]news.Story, error)
	ReplaceHomeNews(ctx context.Context, stories []news.Story) error
}

func wrapStoreErr(err error) error {
	return errors.Wrap(err, ErrUnavailable.Category, ErrUnavailable.Message).
		WithTextCode(TextCodeUnavailable).
		WithCode(errors.CodeInternal)
}
