package engine

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/store"
)

// ShareStory publishes a story to the shared pool, seeded with one
// auto-generated comment from the publisher. The pool-size check and the
// id-uniqueness check are independent reads before the insert, not a single
// compare-and-insert; under concurrent publishing the count can overshoot.
// The id race is narrower: a concurrent duplicate surfaces as a duplicate-key
// insert and still reports AlreadyShared.
func (e *Engine) ShareStory(ctx context.Context, claims *auth.Claims, story news.Story) (*news.SharedStory, error) {
	if claims == nil {
		return nil, auth.ErrNotLoggedIn
	}

	count, err := e.stories.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= news.MaxSharedStories {
		return nil, ErrPoolLimit
	}

	exists, err := e.stories.Exists(ctx, story.StoryID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyShared
	}

	shared := &news.SharedStory{
		ID:    story.StoryID,
		Story: story,
		Comments: []news.Comment{
			news.SeedComment(claims.UserID, claims.DisplayName),
		},
	}

	if err := e.stories.Insert(ctx, shared); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			return nil, ErrAlreadyShared
		}
		return nil, err
	}
	return shared, nil
}

// ListShared returns the full shared pool. No pagination in this design.
func (e *Engine) ListShared(ctx context.Context) ([]news.SharedStory, error) {
	return e.stories.List(ctx)
}

// DeleteShared removes a story from the pool. Any authenticated caller may
// delete any story; ownership is not checked in this design.
func (e *Engine) DeleteShared(ctx context.Context, claims *auth.Claims, id string) error {
	if claims == nil {
		return auth.ErrNotLoggedIn
	}

	deleted, err := e.stories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a comment to a shared story, conditioned on the story
// existing. Text is truncated to the stored bound before the write. The
// per-story comment cap is declared but not enforced here; see
// store.EnforceCommentCap.
func (e *Engine) AddComment(ctx context.Context, claims *auth.Claims, storyID, text string) error {
	if claims == nil {
		return auth.ErrNotLoggedIn
	}

	comment := news.NewComment(claims.UserID, claims.DisplayName, text)

	applied, err := e.stories.AppendComment(ctx, storyID, comment)
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}
	return nil
}
