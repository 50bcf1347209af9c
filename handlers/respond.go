package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type AccountResponse struct {
	ID         string             `json:"_id"`
	Username   string             `json:"username"`
	Email      string             `json:"email"`
	SavedBooks []models.BookEntry `json:"savedBooks"`
	BookCount  int                `json:"bookCount"`
}

func accountToResponse(a *models.Account) AccountResponse {
	books := a.SavedBooks
	if books == nil {
		books = []models.BookEntry{}
	}
	return AccountResponse{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		SavedBooks: books,
		BookCount:  a.BookCount(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json", Code: "BAD_USER_INPUT"})
		return false
	}
	return true
}

// writeError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "you must be logged in", Code: "UNAUTHENTICATED"})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password", Code: "INVALID_CREDENTIALS"})
	case errors.Is(err, models.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "username or email already in use", Code: "CONFLICT"})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "account not found", Code: "NOT_FOUND"})
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "BAD_USER_INPUT"})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "INTERNAL"})
	}
}
