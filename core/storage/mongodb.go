package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"habitboard/errorvalues"
	"habitboard/models"
)

const (
	usersCollection       = "users"
	leaderboardCollection = "leaderboard"
	metaCollection        = "meta"

	leaderboardKey = "top"
	rosterKey      = "roster"
)

type MongoStore struct {
	client *mongo.Client
	db     string
	uri    string
}

func NewMongoStore(dbName, uri string) *MongoStore {
	return &MongoStore{db: dbName, uri: uri}
}

// storeErr folds transport failures into the ErrStoreUnavailable kind while
// keeping the driver error visible.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", errorvalues.ErrStoreUnavailable, err)
}

func (m *MongoStore) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %v", err)
	}
	m.client = client

	// The user name is the document key, so it must be unique.
	nameIndexModel := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err = m.users().Indexes().CreateOne(ctx, nameIndexModel)
	if err != nil {
		return fmt.Errorf("error creating name index: %v", err)
	}

	return nil
}

func (m *MongoStore) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %v", err)
	}
	return nil
}

func (m *MongoStore) users() *mongo.Collection {
	return m.client.Database(m.db).Collection(usersCollection)
}

func (m *MongoStore) GetUser(ctx context.Context, name string) (*models.UserProfile, error) {
	result := m.users().FindOne(ctx, bson.M{"name": name})
	profile := &models.UserProfile{}
	if err := result.Decode(profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return profile, nil
}

func (m *MongoStore) PutUser(ctx context.Context, profile *models.UserProfile, mode SetMode) error {
	filter := bson.M{"name": profile.Name}
	var err error
	switch mode {
	case Merge:
		_, err = m.users().UpdateOne(ctx, filter,
			bson.M{"$set": profile}, options.Update().SetUpsert(true))
	default:
		_, err = m.users().ReplaceOne(ctx, filter,
			profile, options.Replace().SetUpsert(true))
	}
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (m *MongoStore) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	coll := m.client.Database(m.db).Collection(leaderboardCollection)
	result := coll.FindOne(ctx, bson.M{"_id": leaderboardKey})
	board := &models.Leaderboard{}
	if err := result.Decode(board); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Leaderboard{}, nil
		}
		return nil, storeErr(err)
	}
	return board, nil
}

// PutLeaderboard always replaces the whole document: reconciliation happens
// in the client and the write is last-writer-wins.
func (m *MongoStore) PutLeaderboard(ctx context.Context, board *models.Leaderboard) error {
	coll := m.client.Database(m.db).Collection(leaderboardCollection)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": leaderboardKey},
		board, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (m *MongoStore) GetRoster(ctx context.Context) (*models.Roster, error) {
	coll := m.client.Database(m.db).Collection(metaCollection)
	result := coll.FindOne(ctx, bson.M{"_id": rosterKey})
	roster := &models.Roster{}
	if err := result.Decode(roster); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Roster{}, nil
		}
		return nil, storeErr(err)
	}
	return roster, nil
}

func (m *MongoStore) PutRoster(ctx context.Context, roster *models.Roster) error {
	coll := m.client.Database(m.db).Collection(metaCollection)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": rosterKey},
		roster, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (m *MongoStore) WatchUser(ctx context.Context, name string) (<-chan models.UserProfile, func(), error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "fullDocument.name", Value: name}}}},
	}
	stream, err := m.users().Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, nil, storeErr(err)
	}

	wctx, cancel := context.WithCancel(ctx)
	ch := make(chan models.UserProfile, 8)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(wctx) {
			var event struct {
				Profile models.UserProfile `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			select {
			case ch <- event.Profile:
			default:
				// A slow consumer only ever misses stale snapshots; the
				// next change delivers the current state again.
			}
		}
	}()
	return ch, cancel, nil
}

func (m *MongoStore) WatchLeaderboard(ctx context.Context) (<-chan models.Leaderboard, func(), error) {
	coll := m.client.Database(m.db).Collection(leaderboardCollection)
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: leaderboardKey}}}},
	}
	stream, err := coll.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, nil, storeErr(err)
	}

	wctx, cancel := context.WithCancel(ctx)
	ch := make(chan models.Leaderboard, 8)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(wctx) {
			var event struct {
				Board models.Leaderboard `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			select {
			case ch <- event.Board:
			default:
			}
		}
	}()
	return ch, cancel, nil
}
