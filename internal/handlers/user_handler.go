package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2201/Wellness_Tracker/internal/config"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	jwtutil "github.com/Adilet2201/Wellness_Tracker/pkg/jwt"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to accounts and profiles.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type signupRequest struct {
	Name       string   `json:"name" validate:"required,min=2"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=6"`
	ProfilePic string   `json:"profilePic"`
	Age        *int     `json:"age" validate:"omitempty,gt=0"`
	Weight     *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height     *float64 `json:"height" validate:"omitempty,gt=0"`
}

// SignupHandler handles user registration.
func (h *UserHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode signup request")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		log.WithError(err).Warn("Signup validation failed")
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid signup data", err))
		return
	}

	user, err := h.Service.Register(r.Context(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
		Age:        req.Age,
		Weight:     req.Weight,
		Height:     req.Height,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		writeError(w, err)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created successfully"})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler handles user login and issues a JWT.
func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "email and password are required", err))
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"email": req.Email,
			"error": err,
		}).Warn("Authentication failed")
		writeError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		writeError(w, apperrors.Wrap(apperrors.KindStore, "failed to generate token", err))
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	user, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler updates the authenticated user's profile fields.
// Password and point totals cannot be changed here.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode profile update")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	user, err := h.Service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "profile updated",
		"user":    user,
	})
}

// ResetPointsHandler zeroes the authenticated user's point total.
func (h *UserHandler) ResetPointsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	user, err := h.Service.ResetPoints(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("userID", userID.Hex()).Info("Points reset")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "points reset successfully",
		"user":    user,
	})
}
