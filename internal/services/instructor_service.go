package services

import (
	"database/sql"

	"github.com/isdelr/campus-api/internal/models"
)

// InstructorServiceProvider defines the interface for instructor profile services.
type InstructorServiceProvider interface {
	GetByID(id string) (models.Instructor, error)
	GetAll() ([]models.Instructor, error)
	Update(id string, instructor models.Instructor) (models.Instructor, error)
	Delete(id string) error
}

// InstructorService provides plain data access for instructor profiles.
// Profile creation happens in AuthService as part of registration.
type InstructorService struct {
	db *sql.DB
}

// NewInstructorService creates a new InstructorService.
func NewInstructorService(db *sql.DB) *InstructorService {
	return &InstructorService{db: db}
}

// GetByID retrieves a single instructor by their ID.
func (s *InstructorService) GetByID(id string) (models.Instructor, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, hire_date, department_id, created_at
		FROM instructors WHERE id = ?`, id)
	instructor, err := scanInstructor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Instructor{}, ErrInstructorNotFound
		}
		return models.Instructor{}, err
	}
	return instructor, nil
}

// GetAll retrieves every instructor profile.
func (s *InstructorService) GetAll() ([]models.Instructor, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, hire_date, department_id, created_at
		FROM instructors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []models.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}
	return instructors, rows.Err()
}

// Update replaces an instructor's profile fields.
func (s *InstructorService) Update(id string, instructor models.Instructor) (models.Instructor, error) {
	if _, err := s.GetByID(id); err != nil {
		return models.Instructor{}, err
	}

	_, err := s.db.Exec(`
		UPDATE instructors SET name = ?, email = ?, hire_date = ?, department_id = ?
		WHERE id = ?`,
		instructor.Name, instructor.Email, instructor.HireDate, instructor.DepartmentID, id)
	if err != nil {
		return models.Instructor{}, err
	}
	return s.GetByID(id)
}

// Delete removes an instructor profile.
func (s *InstructorService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM instructors WHERE id = ?", id)
	return err
}

// scanInstructor scans a single row into an Instructor struct.
func scanInstructor(scanner interface{ Scan(...interface{}) error }) (models.Instructor, error) {
	var instructor models.Instructor
	var departmentID sql.NullString
	err := scanner.Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Email,
		&instructor.HireDate,
		&departmentID,
		&instructor.CreatedAt,
	)
	if err != nil {
		return models.Instructor{}, err
	}
	if departmentID.Valid {
		instructor.DepartmentID = departmentID.String
	}
	return instructor, nil
}
