package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/config"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	logger.Log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the unique indexes the domain relies on. The
// (habit_id, user_id, date) index makes the daily toggle race-safe and the
// (challenge_id, user_id) index guarantees a single participant row per join.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	habitLogIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "habit_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("habit_logs").Indexes().CreateOne(ctx, habitLogIndex); err != nil {
		return fmt.Errorf("failed to create habit_logs index: %v", err)
	}

	participantIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "challenge_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("challenge_participants").Indexes().CreateOne(ctx, participantIndex); err != nil {
		return fmt.Errorf("failed to create challenge_participants index: %v", err)
	}

	userEmailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, userEmailIndex); err != nil {
		return fmt.Errorf("failed to create users index: %v", err)
	}

	logger.Log.Info("Database indexes ensured")
	return nil
}
