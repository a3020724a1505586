package store

import (
	"context"
	"sync"

	"github.com/goliatone/go-newswatch/internal/news"
)

// Memory is an in-process implementation of the store ports with the same
// conditional-update contract as the Mongo adapter: each mutation is a single
// compare-and-mutate critical section, so the engine observes identical
// apply/no-apply behavior. It backs tests and the -mem development mode.
type Memory struct {
	mu      sync.Mutex
	users   map[string]*news.User
	stories map[string]*news.SharedStory
	order   []string
	home    []news.Story
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]*news.User),
		stories: make(map[string]*news.SharedStory),
	}
}

// Users returns the UserStore view.
func (m *Memory) Users() UserStore { return (*memoryUsers)(m) }

// Stories returns the StoryStore view.
func (m *Memory) Stories() StoryStore { return (*memoryStories)(m) }

// Home returns the HomeStore view.
func (m *Memory) Home() HomeStore { return (*memoryHome)(m) }

type memoryUsers Memory

var _ UserStore = (*memoryUsers)(nil)

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*news.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*news.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (m *memoryUsers) Insert(_ context.Context, u *news.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; ok {
		return ErrDuplicateID
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	m.users[u.ID] = copyUser(u)
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *memoryUsers) ReplacePrefs(_ context.Context, id string, s news.Settings, filters []news.Filter) (*news.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u.Settings = s
	u.NewsFilters = copyFilters(filters)
	return copyUser(u), nil
}

func (m *memoryUsers) SaveStory(_ context.Context, id string, st news.Story) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return false, nil
	}
	if len(u.SavedStories) >= news.SaveLimit || u.HasSavedStory(st.StoryID) {
		return false, nil
	}
	u.SavedStories = append(u.SavedStories, st)
	return true, nil
}

func (m *memoryUsers) RemoveSavedStory(_ context.Context, id, storyID string) (*news.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}

	kept := u.SavedStories[:0]
	for _, s := range u.SavedStories {
		if s.StoryID != storyID {
			kept = append(kept, s)
		}
	}
	u.SavedStories = kept
	return copyUser(u), nil
}

func (m *memoryUsers) ReplaceFilterStories(_ context.Context, id string, filters []news.Filter) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return false, nil
	}
	u.NewsFilters = copyFilters(filters)
	return true, nil
}

type memoryStories Memory

var _ StoryStore = (*memoryStories)(nil)

func (m *memoryStories) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.stories)), nil
}

func (m *memoryStories) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stories[id]
	return ok, nil
}

func (m *memoryStories) Insert(_ context.Context, s *news.SharedStory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[s.ID]; ok {
		return ErrDuplicateID
	}
	m.stories[s.ID] = copyShared(s)
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memoryStories) List(context.Context) ([]news.SharedStory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]news.SharedStory, 0, len(m.order))
	for _, id := range m.order {
		if s, ok := m.stories[id]; ok {
			out = append(out, *copyShared(s))
		}
	}
	return out, nil
}

func (m *memoryStories) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[id]; !ok {
		return false, nil
	}
	delete(m.stories, id)
	for i, sid := range m.order {
		if sid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *memoryStories) AppendComment(_ context.Context, id string, c news.Comment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stories[id]
	if !ok {
		return false, nil
	}
	if EnforceCommentCap && len(s.Comments) >= news.MaxComments {
		return false, nil
	}
	s.Comments = append(s.Comments, c)
	return true, nil
}

type memoryHome Memory

var _ HomeStore = (*memoryHome)(nil)

func (m *memoryHome) HomeNews(context.Context) ([]news.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]news.Story{}, m.home...), nil
}

func (m *memoryHome) ReplaceHomeNews(_ context.Context, stories []news.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.home = append([]news.Story{}, stories...)
	return nil
}

func copyUser(u *news.User) *news.User {
	dup := *u
	dup.NewsFilters = copyFilters(u.NewsFilters)
	dup.SavedStories = append([]news.Story{}, u.SavedStories...)
	return &dup
}

func copyFilters(filters []news.Filter) []news.Filter {
	out := make([]news.Filter, len(filters))
	for i, f := range filters {
		out[i] = f
		out[i].KeyWords = append([]string{}, f.KeyWords...)
		out[i].NewsStories = append([]news.Story{}, f.NewsStories...)
	}
	return out
}

func copyShared(s *news.SharedStory) *news.SharedStory {
	dup := *s
	dup.Comments = append([]news.Comment{}, s.Comments...)
	return &dup
}
