package models

import "time"

// EnrollmentStatus is the closed set of enrollment lifecycle states. Active is
// the only initial state; the single modeled transition is Active -> Completed
// when a grade is recorded.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "Active"
	EnrollmentCompleted EnrollmentStatus = "Completed"
	EnrollmentWithdrawn EnrollmentStatus = "Withdrawn"
)

// Grade is a final or in-progress grade for an enrollment.
type Grade string

const (
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeF  Grade = "F"
	GradeI  Grade = "I"  // Incomplete
	GradeW  Grade = "W"  // Withdrawn
	GradeIP Grade = "IP" // In Progress
)

// Valid reports whether g is one of the known grade values.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF, GradeI, GradeW, GradeIP:
		return true
	}
	return false
}

// Enrollment records a student's participation in a course. Every enrollment
// starts as Active with grade IP; recording any grade completes it.
type Enrollment struct {
	ID             string           `json:"id"`
	StudentID      string           `json:"studentId"`
	CourseID       string           `json:"courseId"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
	Status         EnrollmentStatus `json:"status"`
	Grade          Grade            `json:"grade,omitempty"`
}
