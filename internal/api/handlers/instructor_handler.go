package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// InstructorHandler handles HTTP requests for instructor profiles.
type InstructorHandler struct {
	service services.InstructorServiceProvider
}

// NewInstructorHandler creates a new InstructorHandler.
func NewInstructorHandler(service services.InstructorServiceProvider) *InstructorHandler {
	return &InstructorHandler{service: service}
}

// GetAll handles the request to list every instructor.
func (h *InstructorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.service.GetAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructors)
}

// Get handles retrieving an instructor by their ID.
func (h *InstructorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	instructor, err := h.service.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructor)
}

// Update handles updating an instructor's profile information.
func (h *InstructorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var instructor models.Instructor
	if err := json.NewDecoder(r.Body).Decode(&instructor); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, instructor)
	if err != nil {
		log.Error().Err(err).Str("instructor_id", id).Msg("Failed to update instructor")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles removing an instructor profile.
func (h *InstructorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("instructor_id", id).Msg("Failed to delete instructor")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
