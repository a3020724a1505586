package news

// GlobalStoriesID is the well-known id of the single document holding the
// home-news story list shared by all users.
const GlobalStoriesID = "global_stories"

// HomeNews is the global top-news document, refreshed by the fetch worker and
// read by everyone without synchronization.
type HomeNews struct {
	ID      string  `bson:"_id" json:"id"`
	Stories []Story `bson:"homeNewsStories" json:"homeNewsStories"`
}
