package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/sirupsen/logrus"
)

// WorkoutHandler handles HTTP requests related to workouts.
type WorkoutHandler struct {
	Service *services.WorkoutService
}

// NewWorkoutHandler creates a new instance of WorkoutHandler.
func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{Service: service}
}

type createWorkoutRequest struct {
	Name            string `json:"name" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=cardio strength flexibility"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
}

// CreateWorkoutHandler handles the creation of a new workout template.
func (h *WorkoutHandler) CreateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid workout creation payload")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid workout data", err))
		return
	}

	workout, err := h.Service.CreateWorkout(r.Context(), &models.Workout{
		UserID:          userID,
		Name:            req.Name,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":    userID.Hex(),
		"workoutID": workout.ID.Hex(),
	}).Info("Workout template created")

	writeJSON(w, http.StatusCreated, workout)
}

// GetWorkoutsHandler returns the authenticated user's workout templates.
func (h *WorkoutHandler) GetWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	workouts, err := h.Service.GetWorkouts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}

	writeJSON(w, http.StatusOK, workouts)
}

type logWorkoutRequest struct {
	WorkoutID      string     `json:"workoutId" validate:"required"`
	Date           *time.Time `json:"date"`
	CaloriesBurned int        `json:"caloriesBurned" validate:"omitempty,gte=0"`
}

// LogWorkoutHandler records a completed session and awards points.
func (h *WorkoutHandler) LogWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req logWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid workout log payload")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid workout log data", err))
		return
	}

	result, err := h.Service.LogSession(r.Context(), req.WorkoutID, userID, req.Date, req.CaloriesBurned)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "workout logged",
		"pointsEarned": result.PointsEarned,
		"log":          result.Log,
	})
}

// GetWorkoutLogsHandler returns the user's session logs, newest first.
func (h *WorkoutHandler) GetWorkoutLogsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	logs, err := h.Service.GetLogs(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if logs == nil {
		logs = []models.WorkoutLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}
