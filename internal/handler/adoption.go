package handler

import (
	"errors"
	"net/http"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
	"github.com/go-chi/chi/v5"
)

// AdoptionHandler handles the adoption flow. Three repositories over the same
// generic contract, one per entity type.
type AdoptionHandler struct {
	adoptions *repository.AdoptionRepository
	users     *repository.UserRepository
	pets      *repository.PetRepository
}

func NewAdoptionHandler(adoptions *repository.AdoptionRepository, users *repository.UserRepository, pets *repository.PetRepository) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions, users: users, pets: pets}
}

// HandleList handles GET /api/adoptions requests.
func (h *AdoptionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	adoptions, err := h.adoptions.GetAll(r.Context(), nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successPayload(adoptions))
}

// HandleGet handles GET /api/adoptions/{aid} requests.
func (h *AdoptionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	adoption, err := h.adoptions.GetByID(r.Context(), chi.URLParam(r, "aid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("adoption not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successPayload(adoption))
}

// HandleCreate handles POST /api/adoptions/{uid}/{pid} requests: verifies
// both parties exist, marks the pet adopted and records the adoption.
func (h *AdoptionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	pid := chi.URLParam(r, "pid")

	user, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	pet, err := h.pets.GetByID(r.Context(), pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("pet not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if pet.Adopted {
		writeJSON(w, http.StatusBadRequest, errorResponse("pet already adopted"))
		return
	}

	if _, err := h.pets.MarkAdopted(r.Context(), pet.ID, user.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	adoption := &model.Adoption{Owner: user.ID, Pet: pet.ID}
	if err := h.adoptions.Create(r.Context(), adoption); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Pet adopted successfully"})
}
