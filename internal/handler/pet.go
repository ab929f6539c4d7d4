package handler

import (
	"errors"
	"net/http"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
	"github.com/go-chi/chi/v5"
)

// PetHandler exposes thin CRUD over the pet repository.
type PetHandler struct {
	pets *repository.PetRepository
}

func NewPetHandler(pets *repository.PetRepository) *PetHandler {
	return &PetHandler{pets: pets}
}

// HandleList handles GET /api/pets requests.
func (h *PetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pets, err := h.pets.GetAll(r.Context(), nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successPayload(pets))
}

// HandleCreate handles POST /api/pets requests.
func (h *PetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.PetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Specie == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("name and specie are required"))
		return
	}

	pet := &model.Pet{
		Name:      req.Name,
		Specie:    req.Specie,
		BirthDate: req.BirthDate,
		Image:     req.Image,
	}

	if err := h.pets.Create(r.Context(), pet); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, successPayload(pet))
}

// HandleUpdate handles PUT /api/pets/{pid} requests.
func (h *PetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.PetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	changes := repository.Filter{}
	if req.Name != "" {
		changes["name"] = req.Name
	}
	if req.Specie != "" {
		changes["specie"] = req.Specie
	}
	if req.BirthDate != "" {
		changes["birth_date"] = req.BirthDate
	}
	if req.Image != "" {
		changes["image"] = req.Image
	}
	if len(changes) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("no fields to update"))
		return
	}

	pet, err := h.pets.Update(r.Context(), chi.URLParam(r, "pid"), changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("pet not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successPayload(pet))
}

// HandleDelete handles DELETE /api/pets/{pid} requests.
func (h *PetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.pets.Delete(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("pet not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "pet deleted"})
}
