package handlers

import (
	"errors"
	"net/http"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Accounts *service.AccountService
	Log      logrus.FieldLogger
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Token: res.Token, User: accountToResponse(res.Account)})
}

// Login answers an unknown email exactly like a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "email and password required", Code: "BAD_USER_INPUT"})
		return
	}
	res, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, models.ErrNotFound) {
		err = models.ErrInvalidCredentials
	}
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: res.Token, User: accountToResponse(res.Account)})
}
