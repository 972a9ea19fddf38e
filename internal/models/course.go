package models

import (
	"encoding/json"
	"time"
)

// Course represents a course offered by one or more departments.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	InstructorID string    `json:"instructorId"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Credits      int       `json:"credits"`

	// JSON string field for DB storage
	DepartmentIDsJSON string `json:"-"`

	// Slice field for API interaction
	DepartmentIDs []string `json:"departmentIds"`
}

// PrepareForSave marshals the department list into its JSON string for DB storage.
func (c *Course) PrepareForSave() {
	departmentIDsBytes, _ := json.Marshal(c.DepartmentIDs)
	c.DepartmentIDsJSON = string(departmentIDsBytes)
}

// PrepareForAPI unmarshals the JSON string field back into the slice for API responses.
func (c *Course) PrepareForAPI() {
	if c.DepartmentIDsJSON != "" {
		json.Unmarshal([]byte(c.DepartmentIDsJSON), &c.DepartmentIDs)
	}
}
