package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	ShoppingCart *[]any  `json:"shoppingCart"`
}

type MsgResponse struct {
	Msg string `json:"msg" example:"email exists already"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"internal server error"`
}

// @Summary		Users welcome endpoint
// @Description	Static welcome payload for the users resource
// @Tags			users
// @Produce		json
// @Success		200	{object}	MsgResponse	"Welcome message"
// @Router			/users [get]
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MsgResponse{Msg: "welcome to the users endpoint"})
}

// @Summary		Get a user
// @Description	Retrieve a single user by id; the body is null when no user matches
// @Tags			users
// @Produce		json
// @Param			id	path		string			true	"User ID"
// @Success		200	{object}	db.User			"User record, or null"
// @Failure		500	{object}	ErrorResponse	"Internal server error"
// @Router			/users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("Error retrieving user: %v", err)
		h.sendServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Summary		Update a user
// @Description	Partially update a user; only name, email and shoppingCart are writable
// @Tags			users
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"User ID"
// @Param			user	body		UpdateUserRequest	true	"Fields to update"
// @Success		200		{object}	db.User				"Updated record, or null"
// @Failure		400		{object}	MsgResponse			"Email already taken"
// @Failure		500		{object}	ErrorResponse		"Internal server error"
// @Router			/users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MsgResponse{Msg: "invalid request body"})
		return
	}

	u, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), UpdateFields{
		Name:         req.Name,
		Email:        req.Email,
		ShoppingCart: req.ShoppingCart,
	})
	if err == ErrDuplicateEmail {
		writeJSON(w, http.StatusBadRequest, MsgResponse{Msg: "email exists already"})
		return
	}
	if err != nil {
		log.Printf("Error updating user: %v", err)
		h.sendServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Summary		Delete a user
// @Description	Remove a user; succeeds whether or not the record existed
// @Tags			users
// @Param			id	path	string	true	"User ID"
// @Success		204	"Deleted"
// @Failure		500	{object}	ErrorResponse	"Internal server error"
// @Router			/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Printf("Error deleting user: %v", err)
		h.sendServerError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary		Get a user's shopping cart
// @Description	Retrieve only the shoppingCart attribute of a user
// @Tags			users
// @Produce		json
// @Param			id	path		string	true	"User ID"
// @Success		200	{array}		any		"Cart items"
// @Failure		404	{object}	ErrorResponse	"User not found"
// @Failure		500	{object}	ErrorResponse	"Internal server error"
// @Router			/users/{id}/cart [get]
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("Error retrieving user: %v", err)
		h.sendServerError(w)
		return
	}
	if u == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "user not found"})
		return
	}

	cart := u.ShoppingCart
	if cart == nil {
		cart = []any{}
	}
	writeJSON(w, http.StatusOK, cart)
}

// Helpers

func (h *Handler) sendServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
