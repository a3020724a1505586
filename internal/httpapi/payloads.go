package httpapi

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-newswatch/internal/news"
)

const TextCodeValidationFailed = "validation_failed"

var filterNameRe = regexp.MustCompile(`^[-_ a-zA-Z0-9]+$`)

// validationErr tags ozzo failures so the error handler maps them to 400.
func validationErr(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "invalid field").
		WithTextCode(TextCodeValidationFailed).
		WithCode(errors.CodeBadRequest)
}

// RegisterPayload is the account-creation body.
type RegisterPayload struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Validate will validate the payload
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(3, 50), is.Alphanumeric),
		validation.Field(&p.Email, validation.Required, validation.Length(7, 50), is.Email),
		validation.Field(&p.Password, validation.Required, validation.By(passwordStrength)),
	)
}

// LoginPayload is the session-creation body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(7, 50), is.Email),
		validation.Field(&p.Password, validation.Required, validation.By(passwordStrength)),
	)
}

// passwordStrength enforces 7-15 chars from the allowed set with at least one
// digit and one special character. Expressed imperatively because the policy
// needs lookahead semantics the regexp package does not support.
func passwordStrength(value any) error {
	s, _ := value.(string)
	if len(s) < 7 || len(s) > 15 {
		return errors.New("must be 7 to 15 characters", errors.CategoryBadInput)
	}

	var digit, special bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		default:
			return errors.New("contains a character outside the allowed set", errors.CategoryBadInput)
		}
	}
	if !digit || !special {
		return errors.New("must contain one number and one special character", errors.CategoryBadInput)
	}
	return nil
}

// FilterPayload is one news filter in a profile update.
type FilterPayload struct {
	Name             string   `json:"name"`
	KeyWords         []string `json:"keyWords"`
	EnableAlert      bool     `json:"enableAlert"`
	AlertFrequency   int      `json:"alertFrequency"`
	EnableAutoDelete bool     `json:"enableAutoDelete"`
	DeleteTime       int64    `json:"deleteTime"`
	TimeOfLastScan   int64    `json:"timeOfLastScan"`
}

// Validate will validate the payload
func (p FilterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 30), validation.Match(filterNameRe)),
		validation.Field(&p.KeyWords, validation.Required, validation.Length(0, 10), validation.By(keywordLengths)),
	)
}

func keywordLengths(value any) error {
	keywords, _ := value.([]string)
	for _, kw := range keywords {
		if len(kw) > 20 {
			return errors.New("keyword longer than 20 characters", errors.CategoryBadInput)
		}
	}
	return nil
}

// toFilter normalizes keywords (trimmed, as the original service did) and
// maps onto the domain type. Scan results are never accepted from callers.
func (p FilterPayload) toFilter() news.Filter {
	keywords := make([]string, 0, len(p.KeyWords))
	for _, kw := range p.KeyWords {
		keywords = append(keywords, strings.TrimSpace(kw))
	}
	return news.Filter{
		Name:             p.Name,
		KeyWords:         keywords,
		EnableAlert:      p.EnableAlert,
		AlertFrequency:   p.AlertFrequency,
		EnableAutoDelete: p.EnableAutoDelete,
		DeleteTime:       p.DeleteTime,
		TimeOfLastScan:   p.TimeOfLastScan,
		NewsStories:      []news.Story{},
	}
}

// PrefsPayload is the profile-update body: settings plus the full filter list.
type PrefsPayload struct {
	RequireWIFI  bool            `json:"requireWIFI"`
	EnableAlerts bool            `json:"enableAlerts"`
	NewsFilters  []FilterPayload `json:"newsFilters"`
}

// Validate will validate the payload, checking each filter individually.
func (p PrefsPayload) Validate() error {
	for _, f := range p.NewsFilters {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p PrefsPayload) toFilters() []news.Filter {
	filters := make([]news.Filter, 0, len(p.NewsFilters))
	for _, f := range p.NewsFilters {
		filters = append(filters, f.toFilter())
	}
	return filters
}

// StoryPayload is a story snapshot submitted for saving or sharing.
type StoryPayload struct {
	StoryID        string `json:"storyID"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	ImageURL       string `json:"imageUrl"`
	ContentSnippet string `json:"contentSnippet"`
	Source         string `json:"source"`
	Hours          string `json:"hours"`
	Date           int64  `json:"date"`
	Keep           bool   `json:"keep"`
}

// Validate will validate the payload
func (p StoryPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.StoryID, validation.Required, validation.Length(0, 100)),
		validation.Field(&p.Title, validation.Required, validation.Length(0, 200)),
		validation.Field(&p.Link, validation.Required, validation.Length(0, 300)),
		validation.Field(&p.ImageURL, validation.Required, validation.Length(0, 300)),
		validation.Field(&p.ContentSnippet, validation.Required, validation.Length(0, 200)),
		validation.Field(&p.Source, validation.Required, validation.Length(0, 50)),
		validation.Field(&p.Hours, validation.Length(0, 20)),
		validation.Field(&p.Date, validation.Required),
	)
}

func (p StoryPayload) toStory() news.Story {
	return news.Story{
		StoryID:        p.StoryID,
		Title:          p.Title,
		Link:           p.Link,
		ImageURL:       p.ImageURL,
		ContentSnippet: p.ContentSnippet,
		Source:         p.Source,
		Hours:          p.Hours,
		Date:           p.Date,
		Keep:           p.Keep,
	}
}

// CommentPayload is the comment-append body. Text longer than the stored
// bound is truncated downstream, never rejected here.
type CommentPayload struct {
	Comment string `json:"comment"`
}

// Validate will validate the payload
func (p CommentPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Comment, validation.Required),
	)
}
