package services

import (
	"errors"
	"strings"
)

var (
	// account errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not activated")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	// profile and catalog errors
	ErrStudentNotFound    = errors.New("student not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrCourseNotFound     = errors.New("course not found")

	// enrollment errors
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidGrade       = errors.New("invalid grade value")
	ErrInvalidTransition  = errors.New("cannot update grade for a non-active enrollment")
)

// isUniqueViolation checks the driver error message for a UNIQUE constraint
// failure. The sqlite driver does not export a stable error value for this.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
