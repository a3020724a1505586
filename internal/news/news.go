// Package news holds the domain model shared by the mutation engine, the
// stores and the transport layer: user profiles with their bounded filter and
// saved-story collections, and the shared-story pool with its comment threads.
package news

// Collection bounds enforced by the mutation engine and the store adapters.
const (
	// SaveLimit caps the savedStories set on a user document.
	SaveLimit = 30
	// MaxSharedStories caps the shared-story pool, checked at insert time.
	MaxSharedStories = 30
	// MaxComments is the intended per-story comment cap. It is declared but
	// not enforced by the active code path; see store.EnforceCommentCap.
	MaxComments = 30
	// CommentMaxLen is the maximum stored comment length in runes. Longer
	// input is truncated, never rejected.
	CommentMaxLen = 250
	// DefaultMaxFilters is the newsFilters bound used when configuration
	// does not override it.
	DefaultMaxFilters = 5
)

// Settings is the small fixed-shape preference record on a user document.
type Settings struct {
	RequireWIFI  bool `bson:"requireWIFI" json:"requireWIFI"`
	EnableAlerts bool `bson:"enableAlerts" json:"enableAlerts"`
}

// Filter is a named keyword filter. NewsStories is filled in by the refresh
// worker and overwritten wholesale on the next scan.
type Filter struct {
	Name             string   `bson:"name" json:"name"`
	KeyWords         []string `bson:"keyWords" json:"keyWords"`
	EnableAlert      bool     `bson:"enableAlert" json:"enableAlert"`
	AlertFrequency   int      `bson:"alertFrequency" json:"alertFrequency"`
	EnableAutoDelete bool     `bson:"enableAutoDelete" json:"enableAutoDelete"`
	DeleteTime       int64    `bson:"deleteTime" json:"deleteTime"`
	TimeOfLastScan   int64    `bson:"timeOfLastScan" json:"timeOfLastScan"`
	NewsStories      []Story  `bson:"newsStories" json:"newsStories"`
}

// Story is an opaque snapshot of a news item. StoryID doubles as the identity
// for saved-story dedup and for the shared-story pool.
type Story struct {
	StoryID        string `bson:"storyID" json:"storyID"`
	Title          string `bson:"title" json:"title"`
	Link           string `bson:"link" json:"link"`
	ImageURL       string `bson:"imageUrl" json:"imageUrl"`
	ContentSnippet string `bson:"contentSnippet" json:"contentSnippet"`
	Source         string `bson:"source" json:"source"`
	Hours          string `bson:"hours" json:"hours"`
	Date           int64  `bson:"date" json:"date"`
	Keep           bool   `bson:"keep" json:"keep"`
}

// DefaultFilters is the filter set seeded on every new account.
func DefaultFilters() []Filter {
	return []Filter{
		{
			Name:        "Technology Companies",
			KeyWords:    []string{"Apple", "Microsoft", "IBM", "Amazon", "Google", "Intel"},
			NewsStories: []Story{},
		},
	}
}
