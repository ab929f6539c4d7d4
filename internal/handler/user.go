package handler

import (
	"errors"
	"net/http"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
	"github.com/go-chi/chi/v5"
)

// UserHandler exposes thin CRUD over the user repository. Responses always
// carry the sanitized user shape, never the stored record.
type UserHandler struct {
	users *repository.UserRepository
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// HandleList handles GET /api/users requests.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context(), nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	out := make([]model.UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse()
	}
	writeJSON(w, http.StatusOK, successPayload(out))
}

// HandleGet handles GET /api/users/{uid} requests.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successPayload(user.ToResponse()))
}

// HandleUpdate handles PUT /api/users/{uid} requests. Only profile fields can
// change here; the credential hash is not reachable through this endpoint.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	changes := repository.Filter{}
	if req.FirstName != "" {
		changes["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		changes["last_name"] = req.LastName
	}
	if req.Email != "" {
		changes["email"] = req.Email
	}
	if req.Role != "" {
		changes["role"] = req.Role
	}
	if len(changes) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("no fields to update"))
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "uid"), changes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
		case errors.Is(err, repository.ErrDuplicate):
			writeJSON(w, http.StatusBadRequest, errorResponse("email already taken"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successPayload(user.ToResponse()))
}

// HandleDelete handles DELETE /api/users/{uid} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.users.Delete(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "user deleted"})
}
