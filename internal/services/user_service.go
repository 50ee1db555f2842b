package services

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserStore is the persistence surface account management needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error)
}

// UserService encapsulates account registration, authentication and
// profile management. Point totals are never touched here; that is the
// points service's job.
type UserService struct {
	store  UserStore
	points *PointsService
}

// NewUserService creates a new instance of UserService.
func NewUserService(store UserStore, points *PointsService) *UserService {
	return &UserService{
		store:  store,
		points: points,
	}
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	ProfilePic string
	Age        *int
	Weight     *float64
	Height     *float64
}

// Register creates a new account with a hashed password, the "user"
// role and zero points.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	logrus.Info("Registering new user")

	if input.Name == "" || input.Email == "" || input.Password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, apperrors.E(apperrors.KindValidation, "name, email and password are required")
	}

	if !emailRegex.MatchString(input.Email) {
		logrus.WithField("email", input.Email).Warn("Invalid email format during registration")
		return nil, apperrors.E(apperrors.KindValidation, "invalid email format")
	}

	existing, err := s.store.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logrus.WithField("email", input.Email).Warn("Email already registered")
		return nil, apperrors.E(apperrors.KindConflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to hash password", err)
	}

	created, err := s.store.CreateUser(ctx, &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		TotalPoints:  0,
		ProfilePic:   input.ProfilePic,
		Age:          input.Age,
		Weight:       input.Weight,
		Height:       input.Height,
	})
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("User registered successfully")

	return created, nil
}

// Authenticate verifies the email and password and returns the user if
// the credentials are valid.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logrus.WithField("email", email).Warn("Login attempt for unknown email")
		return nil, apperrors.E(apperrors.KindUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.E(apperrors.KindUnauthorized, "invalid credentials")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetProfile retrieves a user by their ID.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// ProfileUpdate carries the profile fields a user may change. Password
// and points are deliberately absent.
type ProfileUpdate struct {
	Name       *string  `json:"name,omitempty"`
	ProfilePic *string  `json:"profilePic,omitempty"`
	Age        *int     `json:"age,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Height     *float64 `json:"height,omitempty"`
}

// UpdateProfile applies the provided profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdate) (*models.User, error) {
	update := bson.M{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.ProfilePic != nil {
		update["profile_pic"] = *input.ProfilePic
	}
	if input.Age != nil {
		update["age"] = *input.Age
	}
	if input.Weight != nil {
		update["weight"] = *input.Weight
	}
	if input.Height != nil {
		update["height"] = *input.Height
	}

	if len(update) == 0 {
		return s.store.GetUserByID(ctx, userID)
	}

	user, err := s.store.UpdateUser(ctx, userID, update)
	if err != nil {
		logrus.WithError(err).Error("Failed to update profile")
		return nil, err
	}

	logrus.WithField("userID", userID.Hex()).Info("Profile updated successfully")
	return user, nil
}

// ResetPoints zeroes the user's point total via the points service.
func (s *UserService) ResetPoints(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.points.ResetPoints(ctx, userID)
}
