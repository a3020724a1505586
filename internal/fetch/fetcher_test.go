package fetch_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-newswatch/internal/fetch"
	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/notify"
	"github.com/goliatone/go-newswatch/internal/store"
)

func TestMatchStories(t *testing.T) {
	filter := news.Filter{KeyWords: []string{"Apple", " intel "}}

	stories := []news.Story{
		{StoryID: "s1", Title: "Apple ships a new laptop"},
		{StoryID: "s2", Title: "Weather report", ContentSnippet: "sunny all week"},
		{StoryID: "s3", Title: "Chip wars", ContentSnippet: "INTEL fabs expand"},
		{StoryID: "s4", Title: "apple pie recipe"},
	}

	t.Run("matches on title or snippet, case-insensitive", func(t *testing.T) {
		matched := fetch.MatchStories(filter, stories)
		require.Len(t, matched, 3)
		assert.Equal(t, "s1", matched[0].StoryID)
		assert.Equal(t, "s3", matched[1].StoryID)
		assert.Equal(t, "s4", matched[2].StoryID)
	})

	t.Run("trims keyword whitespace", func(t *testing.T) {
		matched := fetch.MatchStories(news.Filter{KeyWords: []string{"  weather  "}}, stories)
		require.Len(t, matched, 1)
		assert.Equal(t, "s2", matched[0].StoryID)
	})

	t.Run("empty keywords match nothing", func(t *testing.T) {
		matched := fetch.MatchStories(news.Filter{KeyWords: []string{"", "   "}}, stories)
		assert.Empty(t, matched)
	})

	t.Run("caps the match count", func(t *testing.T) {
		var many []news.Story
		for i := 0; i < 40; i++ {
			many = append(many, news.Story{StoryID: fmt.Sprintf("s%d", i), Title: "apple news"})
		}

		matched := fetch.MatchStories(news.Filter{KeyWords: []string{"apple"}}, many)
		assert.Len(t, matched, 15)
	})
}

func TestFetcherNotify(t *testing.T) {
	mem := store.NewMemory()
	f := fetch.New(mem.Users(), mem.Home(), nil, nil)

	t.Run("ignores foreign event types", func(t *testing.T) {
		err := f.Notify(context.Background(), notify.Event{Type: "something.else"})
		assert.NoError(t, err)
	})

	t.Run("ignores refresh events without a user snapshot", func(t *testing.T) {
		err := f.Notify(context.Background(), notify.Event{Type: notify.EventRefreshStories})
		assert.NoError(t, err)
	})

	t.Run("no feeds means nothing to write", func(t *testing.T) {
		err := f.Notify(context.Background(), notify.Event{
			Type: notify.EventRefreshStories,
			User: &news.User{ID: "u1", NewsFilters: news.DefaultFilters()},
		})
		assert.NoError(t, err)
	})
}

func TestStoryFromItem(t *testing.T) {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "A headline",
		Link:            "https://example.com/a-headline",
		Description:     "the first paragraph",
		PublishedParsed: &published,
		Image:           &gofeed.Image{URL: "https://example.com/a.png"},
	}

	story := fetch.StoryFromItem("Example Feed", item)

	assert.NotEmpty(t, story.StoryID)
	assert.Equal(t, "A headline", story.Title)
	assert.Equal(t, "https://example.com/a-headline", story.Link)
	assert.Equal(t, "the first paragraph", story.ContentSnippet)
	assert.Equal(t, "Example Feed", story.Source)
	assert.Equal(t, "https://example.com/a.png", story.ImageURL)
	assert.Equal(t, published.UnixMilli(), story.Date)

	t.Run("same link hashes to the same id", func(t *testing.T) {
		again := fetch.StoryFromItem("Example Feed", item)
		assert.Equal(t, story.StoryID, again.StoryID)
	})

	t.Run("different links hash to different ids", func(t *testing.T) {
		other := fetch.StoryFromItem("Example Feed", &gofeed.Item{Link: "https://example.com/other"})
		assert.NotEqual(t, story.StoryID, other.StoryID)
	})

	t.Run("missing optional fields stay zero", func(t *testing.T) {
		bare := fetch.StoryFromItem("Example Feed", &gofeed.Item{Link: "https://example.com/bare"})
		assert.Empty(t, bare.ImageURL)
		assert.Zero(t, bare.Date)
	})
}
