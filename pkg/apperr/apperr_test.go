package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", Invalid("bad input"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", PermissionDenied("no"), http.StatusForbidden},
		{"not found", Missing("gone"), http.StatusNotFound},
		{"conflict", Duplicate("taken"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil-ish wrapped", fmt.Errorf("context: %w", Missing("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", Message(Invalid("bad input")))

	// Internal details must never reach clients
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))

	wrapped := fmt.Errorf("handler: %w", Duplicate("email taken"))
	assert.Equal(t, "email taken", Message(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Conflict, KindOf(Duplicate("x")))
	assert.Equal(t, Internal, KindOf(errors.New("x")))
	assert.True(t, Is(Missing("x"), NotFound))
	assert.False(t, Is(Missing("x"), Conflict))
}

func TestWrap(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(NotFound, "order not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "order not found")
	assert.Contains(t, err.Error(), "row not found")
}
