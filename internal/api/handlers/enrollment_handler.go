package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// EnrollmentHandler handles HTTP requests for enrollment records.
type EnrollmentHandler struct {
	service services.EnrollmentServiceProvider
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(service services.EnrollmentServiceProvider) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// CreateEnrollmentPayload defines the structure for enrollment creation.
// Status and grade are deliberately absent: a new enrollment is always
// Active with grade IP.
type CreateEnrollmentPayload struct {
	StudentID      string     `json:"studentId"`
	CourseID       string     `json:"courseId"`
	EnrollmentDate *time.Time `json:"enrollmentDate"`
}

func (p CreateEnrollmentPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.StudentID, validation.Required),
		validation.Field(&p.CourseID, validation.Required),
	)
}

// UpdateGradePayload defines the structure for grade updates.
type UpdateGradePayload struct {
	Grade models.Grade `json:"grade"`
}

func (p UpdateGradePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Grade, validation.Required),
	)
}

// GetAll handles the request to list every enrollment.
func (h *EnrollmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.service.GetAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

// Get handles retrieving a single enrollment. Student callers may only view
// their own enrollments; the check needs the loaded record, so it lives here
// rather than in the route policy.
func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	enrollment, err := h.service.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	if claims.Role == models.RoleStudent && claims.UserID != enrollment.StudentID {
		log.Warn().Str("user_id", claims.UserID).Str("enrollment_id", id).
			Msg("Student attempted to view another student's enrollment")
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	writeJSON(w, http.StatusOK, enrollment)
}

// GetByStudent handles listing a student's enrollments.
func (h *EnrollmentHandler) GetByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	enrollments, err := h.service.GetByStudent(studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

// GetByCourse handles listing a course's enrollments.
func (h *EnrollmentHandler) GetByCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	enrollments, err := h.service.GetByCourse(courseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

// Create handles the request to enroll a student in a course.
func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateEnrollmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	enrollment, err := h.service.Create(payload.StudentID, payload.CourseID, payload.EnrollmentDate)
	if err != nil {
		log.Error().Err(err).Str("student_id", payload.StudentID).Str("course_id", payload.CourseID).
			Msg("Failed to create enrollment")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, enrollment)
}

// UpdateGrade handles recording a final grade, which completes the
// enrollment.
func (h *EnrollmentHandler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload UpdateGradePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	enrollment, err := h.service.SetGrade(id, payload.Grade)
	if err != nil {
		log.Warn().Err(err).Str("enrollment_id", id).Msg("Failed to update grade")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, enrollment)
}

// Delete handles the request to remove an enrollment.
func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("enrollment_id", id).Msg("Failed to delete enrollment")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
