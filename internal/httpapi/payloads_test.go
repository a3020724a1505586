package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPayloadValidate(t *testing.T) {
	valid := RegisterPayload{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "abcd1!xy",
	}

	t.Run("accepts a valid payload", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects a short display name", func(t *testing.T) {
		p := valid
		p.DisplayName = "Al"
		assert.Error(t, p.Validate())
	})

	t.Run("rejects a non-alphanumeric display name", func(t *testing.T) {
		p := valid
		p.DisplayName = "Alice Smith"
		assert.Error(t, p.Validate())
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		p := valid
		p.Email = "not-an-email"
		assert.Error(t, p.Validate())
	})
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "abcd1!xy", true},
		{"valid at max length", "abcdefghijk1!xy", true},
		{"too short", "ab1!", false},
		{"too long", "abcdefghijklm1!x", false},
		{"no digit", "abcdefg!", false},
		{"no special", "abcdefg1", false},
		{"disallowed character", "abcd1! y", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := passwordStrength(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFilterPayloadValidate(t *testing.T) {
	valid := FilterPayload{Name: "Tech News", KeyWords: []string{"golang"}}

	t.Run("accepts a valid filter", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects special characters in the name", func(t *testing.T) {
		p := valid
		p.Name = "bad<script>"
		assert.Error(t, p.Validate())
	})

	t.Run("rejects more than ten keywords", func(t *testing.T) {
		p := valid
		p.KeyWords = make([]string, 11)
		for i := range p.KeyWords {
			p.KeyWords[i] = "kw"
		}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects an oversized keyword", func(t *testing.T) {
		p := valid
		p.KeyWords = []string{"this keyword is far too long"}
		assert.Error(t, p.Validate())
	})

	t.Run("requires keywords", func(t *testing.T) {
		p := valid
		p.KeyWords = nil
		assert.Error(t, p.Validate())
	})
}

func TestFilterPayloadToFilter(t *testing.T) {
	p := FilterPayload{Name: "Space", KeyWords: []string{" NASA ", "SpaceX"}}
	f := p.toFilter()

	assert.Equal(t, []string{"NASA", "SpaceX"}, f.KeyWords)
	assert.NotNil(t, f.NewsStories)
	assert.Empty(t, f.NewsStories, "scan results are never accepted from callers")
}

func TestStoryPayloadValidate(t *testing.T) {
	valid := StoryPayload{
		StoryID:        "s1",
		Title:          "A headline",
		Link:           "https://example.com/a",
		ImageURL:       "https://example.com/a.png",
		ContentSnippet: "the first paragraph",
		Source:         "Example Feed",
		Date:           1709294400000,
	}

	t.Run("accepts a valid story", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("requires the story id", func(t *testing.T) {
		p := valid
		p.StoryID = ""
		assert.Error(t, p.Validate())
	})

	t.Run("requires the date", func(t *testing.T) {
		p := valid
		p.Date = 0
		assert.Error(t, p.Validate())
	})
}

func TestCommentPayloadValidate(t *testing.T) {
	assert.NoError(t, CommentPayload{Comment: "hi"}.Validate())
	assert.Error(t, CommentPayload{}.Validate())
}
