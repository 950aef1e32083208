package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/model/mood"
)

// mongoEntry is the document layout of the moodentries collection.
type mongoEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Mood      string             `bson:"mood"`
	Journal   string             `bson:"journal,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

// MongoStorage stores entries in a MongoDB collection.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoStorage connects to uri and pings the primary.
func NewMongoStorage(ctx context.Context, uri, database, collection string, logger *zap.Logger) (*MongoStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("MongoDB connected", zap.String("database", database), zap.String("collection", collection))
	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}, nil
}

func (m *MongoStorage) Insert(ctx context.Context, entry *mood.Entry) error {
	doc := mongoEntry{
		Mood:      entry.Mood,
		Journal:   entry.Journal,
		Timestamp: entry.Timestamp,
	}
	if entry.ID != "" {
		oid, err := primitive.ObjectIDFromHex(entry.ID)
		if err != nil {
			return fmt.Errorf("invalid mood entry id %q: %w", entry.ID, err)
		}
		doc.ID = oid
	} else {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		m.logger.Error("failed to insert mood entry", zap.Error(err))
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	entry.ID = doc.ID.Hex()
	return nil
}

func (m *MongoStorage) List(ctx context.Context) ([]mood.Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode mood entries: %w", err)
	}

	entries := make([]mood.Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, mood.Entry{
			ID:        d.ID.Hex(),
			Mood:      d.Mood,
			Journal:   d.Journal,
			Timestamp: d.Timestamp.UTC(),
		})
	}
	return entries, nil
}

func (m *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ MoodRepository = (*MongoStorage)(nil)
