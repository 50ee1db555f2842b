package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/dateutil"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// HabitHandler handles HTTP requests related to habits.
type HabitHandler struct {
	Service *services.HabitService
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(service *services.HabitService) *HabitHandler {
	return &HabitHandler{Service: service}
}

type createHabitRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=daily"`
}

// CreateHabitHandler handles the creation of a new habit.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized access attempt during habit creation")
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid habit data", err))
		return
	}

	habit, err := h.Service.CreateHabit(r.Context(), &models.Habit{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  userID.Hex(),
		"habitID": habit.ID.Hex(),
	}).Info("Habit successfully created")

	writeJSON(w, http.StatusCreated, habit)
}

// GetHabitsHandler returns all habits owned by the authenticated user.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	habits, err := h.Service.GetHabits(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}

	writeJSON(w, http.StatusOK, habits)
}

type updateHabitRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateHabitHandler updates a habit's editable fields.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req updateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid habit update payload")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid habit data", err))
		return
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if len(update) == 0 {
		writeError(w, apperrors.E(apperrors.KindValidation, "no fields to update"))
		return
	}

	habit, err := h.Service.UpdateHabit(r.Context(), mux.Vars(r)["id"], userID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

// DeleteHabitHandler removes a habit owned by the authenticated user.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "habit removed"})
}

// ToggleCompletionHandler flips today's completion state for a habit.
func (h *HabitHandler) ToggleCompletionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized habit toggle attempt")
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	result, err := h.Service.ToggleCompletion(r.Context(), mux.Vars(r)["id"], userID, dateutil.Today())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetLogsHandler returns the authenticated user's habit logs, newest first.
func (h *HabitHandler) GetLogsHandler(w http.ResponseWriter, r *http.Request) {
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
		logs = []models.HabitLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

// GetLongestStreakHandler returns the user's longest active streak.
func (h *HabitHandler) GetLongestStreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	longest, err := h.Service.LongestActiveStreak(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"longestStreak": longest})
}
