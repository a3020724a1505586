package news

import (
	"fmt"
	"time"
)

// Comment is one entry in a shared story's comment thread. Comment text is
// stored truncated to CommentMaxLen runes.
type Comment struct {
	DisplayName string `bson:"displayName" json:"displayName"`
	UserID      string `bson:"userId" json:"userId"`
	DateTime    int64  `bson:"dateTime" json:"dateTime"`
	Comment     string `bson:"comment" json:"comment"`
}

// SharedStory is one document per story published to the shared pool. The
// document id is the caller-supplied story id, which is what makes the
// uniqueness check enforceable at insert.
type SharedStory struct {
	ID       string    `bson:"_id" json:"id"`
	Story    Story     `bson:"story" json:"story"`
	Comments []Comment `bson:"comments" json:"comments"`
}

// NewComment builds a comment owned by the given identity, truncating text.
func NewComment(userID, displayName, text string) Comment {
	return Comment{
		DisplayName: displayName,
		UserID:      userID,
		DateTime:    time.Now().UnixMilli(),
		Comment:     TruncateComment(text),
	}
}

// SeedComment is the auto-generated first comment on a freshly shared story.
func SeedComment(userID, displayName string) Comment {
	return NewComment(userID, displayName, fmt.Sprintf("%s thought everyone might enjoy this!", displayName))
}

// TruncateComment trims comment text to CommentMaxLen runes.
func TruncateComment(s string) string {
	runes := []rune(s)
	if len(runes) <= CommentMaxLen {
		return s
	}
	return string(runes[:CommentMaxLen])
}
