package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// StudentHandler handles HTTP requests for student profiles.
type StudentHandler struct {
	service services.StudentServiceProvider
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(service services.StudentServiceProvider) *StudentHandler {
	return &StudentHandler{service: service}
}

// GetAll handles the request to list every student.
func (h *StudentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.GetAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// Get handles retrieving a student by their ID. The route policy already
// restricts Student callers to their own profile.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	student, err := h.service.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// GetEnrolledCourses handles listing the courses a student is enrolled in.
func (h *StudentHandler) GetEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	courses, err := h.service.GetEnrolledCourses(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// Update handles updating a student's profile information.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, student)
	if err != nil {
		log.Error().Err(err).Str("student_id", id).Msg("Failed to update student")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles removing a student profile.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("student_id", id).Msg("Failed to delete student")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
