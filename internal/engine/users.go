package engine

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/store"
)

// RegisterInput is the structurally validated payload for account creation.
type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

// Register creates an account if the email is unused. The early lookup gives
// the common repeat-signup a cheap answer before the bcrypt work; the
// authoritative uniqueness check is the conditional insert itself, so
// concurrent registrations of one email resolve to a single account.
func (e *Engine) Register(ctx context.Context, in RegisterInput) (*news.User, error) {
	existing, err := e.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &news.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Date:         time.Now().UnixMilli(),
		Settings: news.Settings{
			RequireWIFI:  true,
			EnableAlerts: false,
		},
		NewsFilters:  news.DefaultFilters(),
		SavedStories: []news.Story{},
	}

	if err := e.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	e.emitRefresh(ctx, user)

	created := *user
	created.PasswordHash = ""
	return &created, nil
}

// DeleteAccount removes the caller's own account. The identifier in the path
// must match the token identity.
func (e *Engine) DeleteAccount(ctx context.Context, claims *auth.Claims, id string) error {
	if err := requireSelf(claims, id); err != nil {
		return err
	}

	deleted, err := e.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Profile returns the public projection of the caller's own document.
func (e *Engine) Profile(ctx context.Context, claims *auth.Claims, id string) (*news.Profile, error) {
	if err := requireSelf(claims, id); err != nil {
		return nil, err
	}

	user, err := e.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.PublicProfile(), nil
}

// UpdatePrefs replaces settings and newsFilters wholesale. The filter-count
// bound is a check on caller input, so it runs before the store call; the
// write itself is keyed on identity only and is last-writer-wins against a
// concurrent refresh scan, by design.
func (e *Engine) UpdatePrefs(ctx context.Context, claims *auth.Claims, id string, settings news.Settings, filters []news.Filter) (*news.User, error) {
	if err := requireSelf(claims, id); err != nil {
		return nil, err
	}

	if len(filters) > e.maxFilters {
		return nil, ErrTooManyFilters
	}

	updated, err := e.users.ReplacePrefs(ctx, id, settings, filters)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	e.emitRefresh(ctx, updated)
	return updated, nil
}

// SaveStory adds a story snapshot to the caller's saved set. Uniqueness and
// the size bound are enforced by the store in one conditional step; a
// no-effect outcome is reported as the merged SaveRejected failure because
// the two causes need no different remedy.
func (e *Engine) SaveStory(ctx context.Context, claims *auth.Claims, id string, story news.Story) error {
	if err := requireSelf(claims, id); err != nil {
		return err
	}

	applied, err := e.users.SaveStory(ctx, id, story)
	if err != nil {
		return err
	}
	if !applied {
		return ErrSaveRejected
	}
	return nil
}

// RemoveSavedStory deletes all saved entries matching the story id.
// Removing an absent entry succeeds with no change.
func (e *Engine) RemoveSavedStory(ctx context.Context, claims *auth.Claims, id, storyID string) (*news.User, error) {
	if err := requireSelf(claims, id); err != nil {
		return nil, err
	}

	updated, err := e.users.RemoveSavedStory(ctx, id, storyID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}
