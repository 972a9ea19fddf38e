package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/isdelr/campus-api/internal/models"
)

// DepartmentServiceProvider defines the interface for department services.
type DepartmentServiceProvider interface {
	Create(department models.Department) (models.Department, error)
	GetByID(id string) (models.Department, error)
	GetAll() ([]models.Department, error)
	Update(id string, department models.Department) (models.Department, error)
	Delete(id string) error
}

// DepartmentService provides plain data access for departments.
type DepartmentService struct {
	db *sql.DB
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(db *sql.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

// Create creates a new department.
func (s *DepartmentService) Create(department models.Department) (models.Department, error) {
	department.ID = uuid.New().String()
	_, err := s.db.Exec("INSERT INTO departments (id, name, description) VALUES (?, ?, ?)",
		department.ID, department.Name, department.Description)
	if err != nil {
		return models.Department{}, err
	}
	return department, nil
}

// GetByID retrieves a single department by its ID.
func (s *DepartmentService) GetByID(id string) (models.Department, error) {
	var department models.Department
	row := s.db.QueryRow("SELECT id, name, description FROM departments WHERE id = ?", id)
	err := row.Scan(&department.ID, &department.Name, &department.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Department{}, ErrDepartmentNotFound
		}
		return models.Department{}, err
	}
	return department, nil
}

// GetAll retrieves every department.
func (s *DepartmentService) GetAll() ([]models.Department, error) {
	rows, err := s.db.Query("SELECT id, name, description FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.Description); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

// Update replaces a department's fields.
func (s *DepartmentService) Update(id string, department models.Department) (models.Department, error) {
	if _, err := s.GetByID(id); err != nil {
		return models.Department{}, err
	}

	_, err := s.db.Exec("UPDATE departments SET name = ?, description = ? WHERE id = ?",
		department.Name, department.Description, id)
	if err != nil {
		return models.Department{}, err
	}
	return s.GetByID(id)
}

// Delete removes a department.
func (s *DepartmentService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM departments WHERE id = ?", id)
	return err
}
