package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-newswatch/internal/news"
	"github.com/goliatone/go-newswatch/internal/store"
)

func newUser(id string) *news.User {
	return &news.User{
		ID:           id,
		Email:        id + "@example.com",
		DisplayName:  "User " + id,
		NewsFilters:  news.DefaultFilters(),
		SavedStories: []news.Story{},
	}
}

func TestMemoryUsers_Insert(t *testing.T) {
	users := store.NewMemory().Users()
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, newUser("u1")))

	t.Run("duplicate id is rejected", func(t *testing.T) {
		err := users.Insert(ctx, newUser("u1"))
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := newUser("u2")
		dup.Email = "u1@example.com"
		err := users.Insert(ctx, dup)
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("lookups find the document", func(t *testing.T) {
		byID, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, byID)

		byEmail, err := users.FindByEmail(ctx, "u1@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, byID.ID, byEmail.ID)
	})

	t.Run("absence is nil without error", func(t *testing.T) {
		u, err := users.FindByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestMemoryUsers_ConcurrentInsertSameEmail(t *testing.T) {
	users := store.NewMemory().Users()
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			u := newUser(fmt.Sprintf("u%d", w))
			u.Email = "shared@example.com"
			errs[w] = users.Insert(ctx, u)
		}(w)
	}
	wg.Wait()

	inserted := 0
	for _, err := range errs {
		if err == nil {
			inserted++
		} else {
			assert.ErrorIs(t, err, store.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, inserted, "exactly one insert may win the email")
}

func TestMemoryUsers_Delete(t *testing.T) {
	users := store.NewMemory().Users()
	ctx := context.Background()
	require.NoError(t, users.Insert(ctx, newUser("u1")))

	deleted, err := users.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = users.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryUsers_SaveStory(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a new story", func(t *testing.T) {
		users := store.NewMemory().Users()
		require.NoError(t, users.Insert(ctx, newUser("u1")))

		applied, err := users.SaveStory(ctx, "u1", news.Story{StoryID: "s1"})
		require.NoError(t, err)
		assert.True(t, applied)

		u, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, u.HasSavedStory("s1"))
	})

	t.Run("duplicate story does not apply", func(t *testing.T) {
		users := store.NewMemory().Users()
		require.NoError(t, users.Insert(ctx, newUser("u1")))

		applied, err := users.SaveStory(ctx, "u1", news.Story{StoryID: "s1"})
		require.NoError(t, err)
		require.True(t, applied)

		applied, err = users.SaveStory(ctx, "u1", news.Story{StoryID: "s1"})
		require.NoError(t, err)
		assert.False(t, applied)

		u, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, u.SavedStories, 1)
	})

	t.Run("save at the limit does not apply", func(t *testing.T) {
		users := store.NewMemory().Users()
		require.NoError(t, users.Insert(ctx, newUser("u1")))

		for i := 0; i < news.SaveLimit; i++ {
			applied, err := users.SaveStory(ctx, "u1", news.Story{StoryID: fmt.Sprintf("s%d", i)})
			require.NoError(t, err)
			require.True(t, applied)
		}

		applied, err := users.SaveStory(ctx, "u1", news.Story{StoryID: "one-too-many"})
		require.NoError(t, err)
		assert.False(t, applied)

		u, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, u.SavedStories, news.SaveLimit)
	})

	t.Run("missing user does not apply", func(t *testing.T) {
		users := store.NewMemory().Users()

		applied, err := users.SaveStory(ctx, "ghost", news.Story{StoryID: "s1"})
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("concurrent saves never exceed the limit", func(t *testing.T) {
		users := store.NewMemory().Users()
		require.NoError(t, users.Insert(ctx, newUser("u1")))

		const writers = 4
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < news.SaveLimit; i++ {
					// half the ids collide across writers
					id := fmt.Sprintf("s%d-%d", w%2, i)
					_, _ = users.SaveStory(ctx, "u1", news.Story{StoryID: id})
				}
			}(w)
		}
		wg.Wait()

		u, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(u.SavedStories), news.SaveLimit)

		seen := map[string]bool{}
		for _, s := range u.SavedStories {
			assert.False(t, seen[s.StoryID], "duplicate saved story %s", s.StoryID)
			seen[s.StoryID] = true
		}
	})
}

func TestMemoryUsers_RemoveSavedStory(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemory().Users()
	require.NoError(t, users.Insert(ctx, newUser("u1")))

	applied, err := users.SaveStory(ctx, "u1", news.Story{StoryID: "s1"})
	require.NoError(t, err)
	require.True(t, applied)

	t.Run("removes an existing entry", func(t *testing.T) {
		u, err := users.RemoveSavedStory(ctx, "u1", "s1")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Empty(t, u.SavedStories)
	})

	t.Run("removing an absent entry still matches the user", func(t *testing.T) {
		u, err := users.RemoveSavedStory(ctx, "u1", "never-saved")
		require.NoError(t, err)
		assert.NotNil(t, u)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		u, err := users.RemoveSavedStory(ctx, "ghost", "s1")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestMemoryUsers_ReplacePrefs(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemory().Users()
	require.NoError(t, users.Insert(ctx, newUser("u1")))

	t.Run("replaces settings and filters wholesale", func(t *testing.T) {
		filters := []news.Filter{{Name: "Space", KeyWords: []string{"NASA"}}}
		u, err := users.ReplacePrefs(ctx, "u1", news.Settings{EnableAlerts: true}, filters)
		require.NoError(t, err)
		require.NotNil(t, u)

		assert.True(t, u.Settings.EnableAlerts)
		require.Len(t, u.NewsFilters, 1)
		assert.Equal(t, "Space", u.NewsFilters[0].Name)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		u, err := users.ReplacePrefs(ctx, "ghost", news.Settings{}, nil)
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestMemoryUsers_ReplaceFilterStories(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemory().Users()
	require.NoError(t, users.Insert(ctx, newUser("u1")))

	filters := news.DefaultFilters()
	filters[0].NewsStories = []news.Story{{StoryID: "scan-1"}}

	applied, err := users.ReplaceFilterStories(ctx, "u1", filters)
	require.NoError(t, err)
	assert.True(t, applied)

	u, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u.NewsFilters, 1)
	assert.Len(t, u.NewsFilters[0].NewsStories, 1)

	applied, err = users.ReplaceFilterStories(ctx, "ghost", filters)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestMemoryStories(t *testing.T) {
	ctx := context.Background()
	stories := store.NewMemory().Stories()

	shared := &news.SharedStory{
		ID:       "s1",
		Story:    news.Story{StoryID: "s1", Title: "A title"},
		Comments: []news.Comment{{UserID: "u1", Comment: "seed"}},
	}

	t.Run("insert, count and exists", func(t *testing.T) {
		require.NoError(t, stories.Insert(ctx, shared))

		n, err := stories.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		ok, err := stories.Exists(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = stories.Exists(ctx, "s2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		err := stories.Insert(ctx, shared)
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("list preserves insert order", func(t *testing.T) {
		require.NoError(t, stories.Insert(ctx, &news.SharedStory{ID: "s2"}))
		require.NoError(t, stories.Insert(ctx, &news.SharedStory{ID: "s3"}))

		all, err := stories.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "s1", all[0].ID)
		assert.Equal(t, "s2", all[1].ID)
		assert.Equal(t, "s3", all[2].ID)
	})

	t.Run("append comment on an existing story", func(t *testing.T) {
		applied, err := stories.AppendComment(ctx, "s1", news.Comment{UserID: "u2", Comment: "hi"})
		require.NoError(t, err)
		assert.True(t, applied)

		all, err := stories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all[0].Comments, 2)
	})

	t.Run("append comment on a missing story does not apply", func(t *testing.T) {
		applied, err := stories.AppendComment(ctx, "ghost", news.Comment{})
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("delete reports whether a story matched", func(t *testing.T) {
		deleted, err := stories.Delete(ctx, "s2")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = stories.Delete(ctx, "s2")
		require.NoError(t, err)
		assert.False(t, deleted)

		all, err := stories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestMemoryStories_CommentCapInactive(t *testing.T) {
	ctx := context.Background()
	stories := store.NewMemory().Stories()
	require.NoError(t, stories.Insert(ctx, &news.SharedStory{ID: "s1"}))

	// the per-story comment bound is declared but intentionally not enforced
	for i := 0; i < news.MaxComments+1; i++ {
		applied, err := stories.AppendComment(ctx, "s1", news.Comment{Comment: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
		require.True(t, applied)
	}

	all, err := stories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all[0].Comments, news.MaxComments+1)
}

func TestMemoryHome(t *testing.T) {
	ctx := context.Background()
	home := store.NewMemory().Home()

	stories, err := home.HomeNews(ctx)
	require.NoError(t, err)
	assert.Empty(t, stories)

	require.NoError(t, home.ReplaceHomeNews(ctx, []news.Story{{StoryID: "h1"}, {StoryID: "h2"}}))

	stories, err = home.HomeNews(ctx)
	require.NoError(t, err)
	assert.Len(t, stories, 2)

	// replace is wholesale, not append
	require.NoError(t, home.ReplaceHomeNews(ctx, []news.Story{{StoryID: "h3"}}))
	stories, err = home.HomeNews(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "h3", stories[0].StoryID)
}

func TestMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemory().Users()

	u := newUser("u1")
	require.NoError(t, users.Insert(ctx, u))

	// mutating the caller's copy must not leak into the store
	u.DisplayName = "changed"
	u.NewsFilters[0].KeyWords[0] = "changed"

	got, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "User u1", got.DisplayName)
	assert.Equal(t, "Apple", got.NewsFilters[0].KeyWords[0])

	// mutating a returned copy must not leak either
	got.Settings.EnableAlerts = true
	again, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, again.Settings.EnableAlerts)
}
