package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps a classified error to its HTTP status and writes a
// JSON error body. Unclassified errors become a 500 with a generic
// message; the real error only reaches the logs.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("Request failed")
	}
	writeJSON(w, status, map[string]string{"message": apperrors.Message(err)})
}

// currentUserID extracts the authenticated user's ObjectID from the
// request context, or reports false if the request is unauthenticated.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID from claims")
		return primitive.NilObjectID, false
	}

	return userID, true
}
