package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ivywatch/internal/model"
)

const mongoOpTimeout = 10 * time.Second

// Mongo is the durable Store implementation. The (url, content_hash) unique
// index is the deduplication key: an insert of unchanged content fails with
// a duplicate-key error that surfaces as ErrDuplicate.
type Mongo struct {
	client    *mongo.Client
	snapshots *mongo.Collection
}

// NewMongo connects, pings, and ensures the indexes.
func NewMongo(ctx context.Context, cfg model.MongoConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	m := &Mongo{
		client:    client,
		snapshots: client.Database(cfg.Database).Collection(cfg.Collection),
	}

	if err := m.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return m, nil
}

func (m *Mongo) createIndexes(ctx context.Context) error {
	_, err := m.snapshots.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "url", Value: 1},
				{Key: "content_hash", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "university", Value: 1},
				{Key: "extracted_at", Value: -1},
			},
		},
	})
	return err
}

// Insert stores a snapshot, minting an ObjectID hex string when unset.
func (m *Mongo) Insert(ctx context.Context, snap *model.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if snap.ID == "" {
		snap.ID = primitive.NewObjectID().Hex()
	}
	if snap.ExtractedAt.IsZero() {
		snap.ExtractedAt = time.Now().UTC()
	}

	_, err := m.snapshots.InsertOne(ctx, snap)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// ListByUniversity returns a university's snapshots, newest first.
func (m *Mongo) ListByUniversity(ctx context.Context, university string) ([]model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "extracted_at", Value: -1}})
	cursor, err := m.snapshots.Find(ctx, bson.M{"university": university}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snaps []model.Snapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Latest returns the most recent snapshots across all sources.
func (m *Mongo) Latest(ctx context.Context, limit int) ([]model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "extracted_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := m.snapshots.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snaps []model.Snapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete removes one snapshot by ID.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err := m.snapshots.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the number of snapshots matching the filter.
func (m *Mongo) Count(ctx context.Context, f Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	query := bson.M{}
	if f.University != "" {
		query["university"] = f.University
	}
	if f.PageType != "" {
		query["page_type"] = f.PageType
	}
	return m.snapshots.CountDocuments(ctx, query)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
