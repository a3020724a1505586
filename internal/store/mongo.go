package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goliatone/go-newswatch/internal/news"
)

const (
	usersCollection   = "users"
	storiesCollection = "sharedstories"
	homeCollection    = "homenews"

	emailIndexName = "email_unique"

	connectTimeout = 10 * time.Second
)

// Connect dials the MongoDB deployment and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, wrapStoreErr(err)
	}
	return client, nil
}

// MongoUsers implements UserStore over the users collection. Invariants are
// pushed into single findOneAndUpdate round-trips so correctness holds across
// many service instances without application-level locks.
type MongoUsers struct {
	col *mongo.Collection
}

var _ UserStore = (*MongoUsers)(nil)

// NewMongoUsers wires the adapter onto a database handle.
func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index the insert contract relies on.
// Safe to call on every startup; Mongo treats an existing identical index as
// a no-op.
func (m *MongoUsers) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (m *MongoUsers) FindByEmail(ctx context.Context, email string) (*news.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *MongoUsers) FindByID(ctx context.Context, id string) (*news.User, error) {
	return m.findUser(ctx, bson.M{"_id": id})
}

func (m *MongoUsers) findUser(ctx context.Context, filter bson.M) (*news.User, error) {
	var u news.User
	err := m.col.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &u, nil
}

// Insert relies on the _id primary index and the unique email index: a
// concurrent registration of the same email surfaces as a duplicate-key
// write, never a second document. The offending index name tells the two
// collisions apart.
func (m *MongoUsers) Insert(ctx context.Context, u *news.User) error {
	if _, err := m.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), emailIndexName) {
				return ErrDuplicateEmail
			}
			return ErrDuplicateID
		}
		return wrapStoreErr(err)
	}
	return nil
}

func (m *MongoUsers) Delete(ctx context.Context, id string) (bool, error) {
	err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return true, nil
}

func (m *MongoUsers) ReplacePrefs(ctx context.Context, id string, s news.Settings, filters []news.Filter) (*news.User, error) {
	update := bson.M{"$set": bson.M{
		"settings":    s,
		"newsFilters": filters,
	}}

	var u news.User
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &u, nil
}

// SaveStory is the one-step "insert-if-absent-and-under-bound" mutation: the
// filter encodes both preconditions, so the push applies atomically or not at
// all. A no-match result is deliberately ambiguous between duplicate and
// at-limit; the engine reports the merged failure.
func (m *MongoUsers) SaveStory(ctx context.Context, id string, st news.Story) (bool, error) {
	filter := bson.M{
		"_id":                  id,
		"savedStories.storyID": bson.M{"$ne": st.StoryID},
		fmt.Sprintf("savedStories.%d", news.SaveLimit-1): bson.M{"$exists": false},
	}

	err := m.col.FindOneAndUpdate(ctx, filter, bson.M{"$push": bson.M{"savedStories": st}}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return true, nil
}

func (m *MongoUsers) RemoveSavedStory(ctx context.Context, id, storyID string) (*news.User, error) {
	update := bson.M{"$pull": bson.M{"savedStories": bson.M{"storyID": storyID}}}

	var u news.User
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &u, nil
}

func (m *MongoUsers) ReplaceFilterStories(ctx context.Context, id string, filters []news.Filter) (bool, error) {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"newsFilters": filters}})
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return res.MatchedCount > 0, nil
}

// MongoStories implements StoryStore over the shared-story pool.
type MongoStories struct {
	col *mongo.Collection
}

var _ StoryStore = (*MongoStories)(nil)

func NewMongoStories(db *mongo.Database) *MongoStories {
	return &MongoStories{col: db.Collection(storiesCollection)}
}

func (m *MongoStories) Count(ctx context.Context) (int64, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return n, nil
}

func (m *MongoStories) Exists(ctx context.Context, id string) (bool, error) {
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return true, nil
}

// Insert relies on the _id primary index: a concurrent insert of the same
// story id surfaces as a duplicate-key error rather than a second document.
func (m *MongoStories) Insert(ctx context.Context, s *news.SharedStory) error {
	if _, err := m.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return wrapStoreErr(err)
	}
	return nil
}

func (m *MongoStories) List(ctx context.Context) ([]news.SharedStory, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	stories := []news.SharedStory{}
	if err := cur.All(ctx, &stories); err != nil {
		return nil, wrapStoreErr(err)
	}
	return stories, nil
}

func (m *MongoStories) Delete(ctx context.Context, id string) (bool, error) {
	err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return true, nil
}

func (m *MongoStories) AppendComment(ctx context.Context, id string, c news.Comment) (bool, error) {
	filter := bson.M{"_id": id}
	if EnforceCommentCap {
		filter[fmt.Sprintf("comments.%d", news.MaxComments-1)] = bson.M{"$exists": false}
	}

	res, err := m.col.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return res.MatchedCount > 0, nil
}

// MongoHome implements HomeStore over the single global stories document.
type MongoHome struct {
	col *mongo.Collection
}

var _ HomeStore = (*MongoHome)(nil)

func NewMongoHome(db *mongo.Database) *MongoHome {
	return &MongoHome{col: db.Collection(homeCollection)}
}

func (m *MongoHome) HomeNews(ctx context.Context) ([]news.Story, error) {
	var doc news.HomeNews
	err := m.col.FindOne(ctx, bson.M{"_id": news.GlobalStoriesID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []news.Story{}, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return doc.Stories, nil
}

func (m *MongoHome) ReplaceHomeNews(ctx context.Context, stories []news.Story) error {
	_, err := m.col.UpdateOne(ctx,
		bson.M{"_id": news.GlobalStoriesID},
		bson.M{"$set": bson.M{"homeNewsStories": stories}},
		options.Update().SetUpsert(true))
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}
