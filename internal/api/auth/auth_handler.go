package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vitorsz/shop-users-api/internal/api/user"
)

// Request/Response structures

type RegisterRequest struct {
	Name     string `json:"name" example:"A"`
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"pw"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"pw"`
}

type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type MsgResponse struct {
	Msg string `json:"msg" example:"email exists already"`
}

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary		Register a new user
// @Description	Create an account and return a signed session token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest	true	"User registration data"
// @Success		200		{object}	TokenResponse	"Signed token"
// @Failure		400		{object}	MsgResponse		"Email already taken"
// @Failure		500		{object}	MsgResponse		"Server error"
// @Router			/users/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.sendMsg(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, user.ErrDuplicateEmail) {
		h.sendMsg(w, http.StatusBadRequest, "email exists already")
		return
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		h.sendMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Login godoc
// @Summary		User login
// @Description	Validate credentials and return a signed session token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest	true	"User login credentials"
// @Success		200			{object}	TokenResponse	"Signed token"
// @Failure		400			{object}	MsgResponse		"Incorrect username or password"
// @Failure		500			{object}	MsgResponse		"Server error"
// @Router			/users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		h.sendMsg(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}
	if err != nil {
		log.Printf("Error logging in user: %v", err)
		h.sendMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// AuthLocked godoc
// @Summary		Protected test route
// @Description	Reachable only with a valid bearer token
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MsgResponse	"Welcome message"
// @Failure		401	{object}	MsgResponse	"Unauthorized"
// @Router			/users/auth-locked [get]
func (h *AuthHandler) AuthLocked(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MsgResponse{Msg: "welcome to the private route!"})
}

// Helpers

func (h *AuthHandler) sendMsg(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, MsgResponse{Msg: msg})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
