package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := E(KindNotFound, "habit not found")
	assert.Equal(t, KindNotFound, KindOf(err))

	wrapped := Wrap(KindStore, "insert failed", errors.New("connection reset"))
	assert.Equal(t, KindStore, KindOf(wrapped))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := E(KindConflict, "already joined")
	outer := Wrap(KindStore, "outer", inner)

	// errors.As finds the outermost classified error.
	assert.Equal(t, KindStore, KindOf(outer))
	assert.True(t, IsKind(outer, KindStore))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindConflict, http.StatusConflict},
		{KindValidation, http.StatusBadRequest},
		{KindStore, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(E(tc.kind, "x")))
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "habit not found", Message(E(KindNotFound, "habit not found")))
	assert.Equal(t, "internal server error", Message(errors.New("pq: secret detail")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "boom", E(KindStore, "boom").Error())
	assert.Equal(t, "boom: inner", Wrap(KindStore, "boom", errors.New("inner")).Error())
}
