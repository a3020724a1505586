// Package fetch is the story refresh worker. It consumes refresh
// notifications, pulls the configured RSS feeds, and rewrites the matched
// stories on user filters and the global home-news document. All writes are
// whole-field replaces: last-writer-wins against a concurrent profile update,
// which the mutation engine documents as an accepted race.
package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/notify"
	"github.com/goliatone/go-newswatch/internal/store"
)

const (
	// maxStoriesPerFilter bounds how many matches a scan writes per filter.
	maxStoriesPerFilter = 15
	// maxHomeStories bounds the global top-news list.
	maxHomeStories = 30

	fetchTimeout = 30 * time.Second
)

// Fetcher pulls RSS feeds and distributes matched stories. It implements
// notify.Sink so it can hang directly off the dispatcher.
type Fetcher struct {
	parser *gofeed.Parser
	users  store.UserStore
	home   store.HomeStore
	feeds  []string
	logger auth.Logger
}

var _ notify.Sink = (*Fetcher)(nil)

// New builds a Fetcher over the given feed URLs.
func New(users store.UserStore, home store.HomeStore, feeds []string, logger auth.Logger) *Fetcher {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Fetcher{
		parser: gofeed.NewParser(),
		users:  users,
		home:   home,
		feeds:  feeds,
		logger: logger,
	}
}

// Notify handles a refresh event for one user.
func (f *Fetcher) Notify(ctx context.Context, event notify.Event) error {
	if event.Type != notify.EventRefreshStories || event.User == nil {
		return nil
	}
	return f.RefreshUser(ctx, event.User)
}

// RefreshUser rescans the feeds and rewrites the user's filter results.
func (f *Fetcher) RefreshUser(ctx context.Context, user *news.User) error {
	stories := f.fetchAll(ctx)
	if len(stories) == 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	filters := make([]news.Filter, len(user.NewsFilters))
	for i, filter := range user.NewsFilters {
		filters[i] = filter
		filters[i].NewsStories = MatchStories(filter, stories)
		filters[i].TimeOfLastScan = now
	}

	applied, err := f.users.ReplaceFilterStories(ctx, user.ID, filters)
	if err != nil {
		return err
	}
	if !applied {
		// account deleted between the event and the scan
		f.logger.Debug("refresh skipped, user %s gone", user.ID)
	}
	return nil
}

// RefreshHome rescans the feeds and rewrites the global top-news document.
func (f *Fetcher) RefreshHome(ctx context.Context) error {
	stories := f.fetchAll(ctx)
	if len(stories) == 0 {
		return nil
	}
	if len(stories) > maxHomeStories {
		stories = stories[:maxHomeStories]
	}
	return f.home.ReplaceHomeNews(ctx, stories)
}

// Run refreshes the home list on the given cadence until ctx is canceled.
func (f *Fetcher) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.RefreshHome(ctx); err != nil {
				f.logger.Warn("home news refresh error: %v", err)
			}
		}
	}
}

func (f *Fetcher) fetchAll(ctx context.Context) []news.Story {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var stories []news.Story
	for _, url := range f.feeds {
		feed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			f.logger.Warn("feed fetch error %s: %v", url, err)
			continue
		}
		for _, item := range feed.Items {
			stories = append(stories, StoryFromItem(feed.Title, item))
		}
	}
	return stories
}

// StoryFromItem maps one feed entry to a story snapshot. The story id is
// derived from the link so the same item hashes to the same id on every scan.
func StoryFromItem(source string, item *gofeed.Item) news.Story {
	story := news.Story{
		StoryID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Link)).String(),
		Title:          item.Title,
		Link:           item.Link,
		ContentSnippet: snippet(item.Description),
		Source:         source,
	}

	if item.Image != nil {
		story.ImageURL = item.Image.URL
	}
	if item.PublishedParsed != nil {
		story.Date = item.PublishedParsed.UnixMilli()
	}
	return story
}

// MatchStories returns the stories whose title or snippet contains any of the
// filter's keywords, case-insensitive, capped at maxStoriesPerFilter.
func MatchStories(filter news.Filter, stories []news.Story) []news.Story {
	matched := []news.Story{}
	for _, story := range stories {
		if len(matched) == maxStoriesPerFilter {
			break
		}
		haystack := strings.ToLower(story.Title + " " + story.ContentSnippet)
		for _, keyword := range filter.KeyWords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" && strings.Contains(haystack, keyword) {
				matched = append(matched, story)
				break
			}
		}
	}
	return matched
}

func snippet(s string) string {
	const max = 200
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
