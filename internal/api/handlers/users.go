package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UsersHandler struct {
	userService *service.UserService
}

func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{userService: userService}
}

type UserActionResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not fetch users.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *UsersHandler) Block(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Block(r.Context(), id)
	if err != nil {
		respondUserActionError(w, err, "Could not block user.")
		return
	}

	respondJSON(w, http.StatusOK, UserActionResponse{
		Message: fmt.Sprintf("User %s has been blocked.", user.Name),
		User:    user,
	})
}

func (h *UsersHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Unblock(r.Context(), id)
	if err != nil {
		respondUserActionError(w, err, "Could not unblock user.")
		return
	}

	respondJSON(w, http.StatusOK, UserActionResponse{
		Message: fmt.Sprintf("User %s has been unblocked.", user.Name),
		User:    user,
	})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		respondUserActionError(w, err, "Could not delete user.")
		return
	}

	respondJSON(w, http.StatusOK, UserActionResponse{
		Message: fmt.Sprintf("User %s has been deleted.", user.Name),
		User:    user,
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found.")
		return uuid.Nil, false
	}
	return id, true
}

func respondUserActionError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}
	respondError(w, http.StatusInternalServerError, fallback)
}
