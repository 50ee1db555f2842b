package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ChallengeHandler handles HTTP requests related to challenges.
type ChallengeHandler struct {
	Service *services.ChallengeService
}

// NewChallengeHandler creates a new instance of ChallengeHandler.
func NewChallengeHandler(service *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{Service: service}
}

type createChallengeRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Goal        int       `json:"goal" validate:"required,gt=0"`
	Points      int       `json:"points" validate:"required,gt=0"`
	EndDate     time.Time `json:"endDate" validate:"required"`
}

// CreateChallengeHandler creates a new challenge. Any authenticated
// user may create one.
func (h *ChallengeHandler) CreateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid challenge creation payload")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "invalid challenge data", err))
		return
	}

	challenge, err := h.Service.CreateChallenge(r.Context(), &models.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Points:      req.Points,
		EndDate:     req.EndDate,
		CreatedBy:   userID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":      userID.Hex(),
		"challengeID": challenge.ID.Hex(),
	}).Info("Challenge created")

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "challenge created successfully",
		"challenge": challenge,
	})
}

// GetChallengesHandler returns all active challenges.
func (h *ChallengeHandler) GetChallengesHandler(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.Service.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}

	writeJSON(w, http.StatusOK, challenges)
}

// JoinChallengeHandler joins the authenticated user to a challenge.
func (h *ChallengeHandler) JoinChallengeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	participant, err := h.Service.Join(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "joined challenge successfully",
		"participant": participant,
	})
}

// GetMyChallengesHandler returns the user's joined challenges with
// their progress.
func (h *ChallengeHandler) GetMyChallengesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	participants, err := h.Service.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, participants)
}

type updateProgressRequest struct {
	Progress *int `json:"progress" validate:"required"`
}

// UpdateProgressHandler sets the user's progress on a challenge,
// completing it and awarding points when the goal is reached.
func (h *ChallengeHandler) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeError(w, apperrors.E(apperrors.KindUnauthorized, "unauthorized"))
		return
	}

	var req updateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid progress update payload")
		writeError(w, apperrors.E(apperrors.KindValidation, "invalid request payload"))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.KindValidation, "progress is required", err))
		return
	}

	participant, err := h.Service.UpdateProgress(r.Context(), mux.Vars(r)["id"], userID, *req.Progress)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "progress updated"
	if participant.Completed {
		message = "challenge completed! points awarded!"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     message,
		"participant": participant,
	})
}
