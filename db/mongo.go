package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"law4you/config"
)

var ErrMongoDisabled = errors.New("mongo uri is not configured")

// Connect opens the Mongo client used for ai_logs and ensures indexes.
// Returns ErrMongoDisabled when no URI is configured.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, ErrMongoDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	// Ping to verify connection
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}

	database := cl.Database(cfg.Database)
	if err := ensureIndexes(ctx, database); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}
	return cl, database, nil
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// ai_logs: requested_at desc, kind
	_, err := d.Collection("ai_logs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("idx_requested_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("idx_kind_requested_at"),
		},
	})
	return err
}
