package news

// User is one document per registered account. ID is assigned at creation and
// immutable; the password hash never leaves the server (json "-").
type User struct {
	ID           string   `bson:"_id" json:"id"`
	Email        string   `bson:"email" json:"email"`
	DisplayName  string   `bson:"displayName" json:"displayName"`
	PasswordHash string   `bson:"passwordHash" json:"-"`
	Date         int64    `bson:"date" json:"date"`
	Completed    bool     `bson:"completed" json:"completed"`
	Settings     Settings `bson:"settings" json:"settings"`
	NewsFilters  []Filter `bson:"newsFilters" json:"newsFilters"`
	SavedStories []Story  `bson:"savedStories" json:"savedStories"`
}

// Profile is the public projection of a user document returned by fetches.
type Profile struct {
	Email        string   `json:"email"`
	DisplayName  string   `json:"displayName"`
	Date         int64    `json:"date"`
	Settings     Settings `json:"settings"`
	NewsFilters  []Filter `json:"newsFilters"`
	SavedStories []Story  `json:"savedStories"`
}

// PublicProfile projects the fields a caller may see.
func (u *User) PublicProfile() *Profile {
	return &Profile{
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Date:         u.Date,
		Settings:     u.Settings,
		NewsFilters:  u.NewsFilters,
		SavedStories: u.SavedStories,
	}
}

// HasSavedStory reports whether the story id is already in the saved set.
func (u *User) HasSavedStory(storyID string) bool {
	for _, s := range u.SavedStories {
		if s.StoryID == storyID {
			return true
		}
	}
	return false
}
