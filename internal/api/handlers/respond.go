package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes a simple {"message": ...} JSON response.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps a service error onto its HTTP status. Anything
// outside the known taxonomy becomes a generic 500 so internal detail never
// leaks to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountInactive):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrInstructorNotFound),
		errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrEnrollmentNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidGrade),
		errors.Is(err, services.ErrInvalidTransition):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("Unexpected service error")
		writeMessage(w, http.StatusInternalServerError, "An error occurred while processing your request")
	}
}
