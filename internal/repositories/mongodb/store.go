// Package mongodb is the MongoDB backend. Collection names match the ones the
// existing production data lives in.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	adminsCollection   = "admins"
	usersCollection    = "users"
	carsCollection     = "cars"
	bookingsCollection = "carbookings"
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type conn struct {
	client *mongo.Client
}

func (c *conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Connect opens the client, verifies it with a ping and makes sure the
// indexes the repositories rely on exist.
func Connect(ctx context.Context, cfg Config) (*repositories.Store, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("MongoDB connected", "database", cfg.Database)

	return NewStore(client, db), nil
}

func NewStore(client *mongo.Client, db *mongo.Database) *repositories.Store {
	return &repositories.Store{
		Admins:   NewAdminRepository(db),
		Users:    NewUserRepository(db),
		Cars:     NewCarRepository(db),
		Bookings: NewBookingRepository(db),
		Conn:     &conn{client: client},
	}
}

// EnsureIndexes creates the uniqueness guarantees the conditional updates
// depend on. A partial unique index keeps the top admin single.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		adminsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "uniqueId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{
				Keys: bson.D{{Key: "isTopAdmin", Value: 1}},
				Options: options.Index().
					SetName("single_top_admin").
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "isTopAdmin", Value: true}}),
			},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "uniqueId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "isVerified", Value: 1}, {Key: "otpExpiry", Value: 1}}},
		},
		carsCollection: {
			{Keys: bson.D{{Key: "carId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "brand", Value: 1}}},
		},
		bookingsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for coll, indexes := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
