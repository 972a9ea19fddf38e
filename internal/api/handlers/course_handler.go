package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// CourseHandler handles HTTP requests for courses.
type CourseHandler struct {
	service services.CourseServiceProvider
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service services.CourseServiceProvider) *CourseHandler {
	return &CourseHandler{service: service}
}

// validateCourse checks the fields shared by create and update.
func validateCourse(c models.Course) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Credits, validation.Required, validation.Min(1)),
	)
}

// GetAll handles the request to list every course.
func (h *CourseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// Get handles retrieving a course by its ID.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	course, err := h.service.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// Create handles the request to create a new course.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCourse(course); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(course)
	if err != nil {
		log.Error().Err(err).Str("title", course.Title).Msg("Failed to create course")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles updating a course.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var course models.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCourse(course); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(id, course)
	if err != nil {
		log.Error().Err(err).Str("course_id", id).Msg("Failed to update course")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles removing a course.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("course_id", id).Msg("Failed to delete course")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
