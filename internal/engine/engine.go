// Package engine implements the bounded mutation operations over user
// profiles and the shared-story pool. Every operation is one atomic
// conditional round-trip against the backing store (two reads plus an insert
// for ShareStory, an accepted race); invariants are enforced by the store's
// conditional-update primitive, never by in-process locks.
package engine

import (
	"context"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/notify"
	"github.com/goliatone/go-newswatch/internal/store"
)

// Engine exposes one method per mutation endpoint. It assumes the transport
// layer ran the authorization guard; identity-ownership checks happen here
// against the claims it hands over.
type Engine struct {
	users      store.UserStore
	stories    store.StoryStore
	home       store.HomeStore
	sink       notify.Sink
	logger     auth.Logger
	maxFilters int
}

// Option mutates construction-time settings.
type Option func(*Engine)

// WithLogger overrides the fallback logger.
func WithLogger(l auth.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSink attaches the notification sink for refresh signals.
func WithSink(s notify.Sink) Option {
	return func(e *Engine) {
		e.sink = notify.NormalizeSink(s)
	}
}

// WithMaxFilters overrides the newsFilters bound.
func WithMaxFilters(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxFilters = n
		}
	}
}

// New builds an Engine over the given store ports.
func New(users store.UserStore, stories store.StoryStore, home store.HomeStore, opts ...Option) *Engine {
	e := &Engine{
		users:      users,
		stories:    stories,
		home:       home,
		sink:       notify.NormalizeSink(nil),
		logger:     auth.DefaultLogger(),
		maxFilters: news.DefaultMaxFilters,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HomeNews returns the global top-news list, same for all users. Unsynchronized
// snapshot read.
func (e *Engine) HomeNews(ctx context.Context) ([]news.Story, error) {
	return e.home.HomeNews(ctx)
}

func (e *Engine) emitRefresh(ctx context.Context, u *news.User) {
	event := notify.Event{
		Type:   notify.EventRefreshStories,
		UserID: u.ID,
		User:   u,
	}
	if err := e.sink.Notify(ctx, event); err != nil {
		e.logger.Warn("refresh notification error for %s: %v", u.ID, err)
	}
}

// requireSelf maps a missing token to Unauthenticated and a mismatched
// identity to Forbidden, in that order.
func requireSelf(claims *auth.Claims, ownerID string) error {
	if claims == nil {
		return auth.ErrNotLoggedIn
	}
	if !claims.Owns(ownerID) {
		return auth.ErrForbidden
	}
	return nil
}
