package models

import "time"

// Student is the profile record for a student account.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Age            int       `json:"age"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	DepartmentID   string    `json:"departmentId"`
	CreatedAt      time.Time `json:"createdAt"`
}
