package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithField("email", user.Email).Warn("Duplicate email on user insert")
			return nil, apperrors.E(apperrors.KindConflict, "email already registered")
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert user", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// FindUserByEmail retrieves a user by email, returning nil if no user exists.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err,
		}).Error("Failed to find user by email")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find user by email", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "user not found")
		}
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to find user by ID")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find user by id", err)
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user document and returns the
// updated document.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	update["updated_at"] = time.Now()

	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "user not found")
		}
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to update user", err)
	}

	logrus.WithField("userID", id.Hex()).Info("User updated successfully")
	return &user, nil
}

// IncrementPoints atomically adds delta to the user's point total and
// returns the updated user.
func (r *UserRepository) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"total_points": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "user not found")
		}
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"delta":  delta,
			"error":  err,
		}).Error("Failed to increment user points")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to increment points", err)
	}

	return &user, nil
}

// SetPoints overwrites the user's point total and returns the updated user.
func (r *UserRepository) SetPoints(ctx context.Context, id primitive.ObjectID, points int) (*models.User, error) {
	return r.UpdateUser(ctx, id, bson.M{"total_points": points})
}

// GetTopByPoints returns non-admin users ordered by points descending.
func (r *UserRepository) GetTopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "total_points", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"role": models.RoleUser}, findOptions)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch top users")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch top users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode user", err)
		}
		users = append(users, user)
	}

	return users, nil
}
