package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/isdelr/campus-api/internal/models"
)

// CourseServiceProvider defines the interface for course services.
type CourseServiceProvider interface {
	Create(course models.Course) (models.Course, error)
	GetByID(id string) (models.Course, error)
	GetAll() ([]models.Course, error)
	Update(id string, course models.Course) (models.Course, error)
	Delete(id string) error
}

// CourseService provides plain data access for courses.
type CourseService struct {
	db *sql.DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *sql.DB) *CourseService {
	return &CourseService{db: db}
}

// Create creates a new course.
func (s *CourseService) Create(course models.Course) (models.Course, error) {
	course.ID = uuid.New().String()
	course.PrepareForSave()

	_, err := s.db.Exec(`
		INSERT INTO courses (id, title, description, instructor_id, department_ids_json, start_date, end_date, credits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID, course.Title, course.Description, course.InstructorID, course.DepartmentIDsJSON,
		course.StartDate, course.EndDate, course.Credits)
	if err != nil {
		return models.Course{}, err
	}
	return s.GetByID(course.ID)
}

// GetByID retrieves a single course by its ID.
func (s *CourseService) GetByID(id string) (models.Course, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, instructor_id, department_ids_json, start_date, end_date, credits
		FROM courses WHERE id = ?`, id)
	course, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}
	return course, nil
}

// GetAll retrieves every course.
func (s *CourseService) GetAll() ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, instructor_id, department_ids_json, start_date, end_date, credits
		FROM courses ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// Update replaces a course's fields.
func (s *CourseService) Update(id string, course models.Course) (models.Course, error) {
	if _, err := s.GetByID(id); err != nil {
		return models.Course{}, err
	}

	course.PrepareForSave()
	_, err := s.db.Exec(`
		UPDATE courses SET title = ?, description = ?, instructor_id = ?, department_ids_json = ?, start_date = ?, end_date = ?, credits = ?
		WHERE id = ?`,
		course.Title, course.Description, course.InstructorID, course.DepartmentIDsJSON,
		course.StartDate, course.EndDate, course.Credits, id)
	if err != nil {
		return models.Course{}, err
	}
	return s.GetByID(id)
}

// Delete removes a course.
func (s *CourseService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM courses WHERE id = ?", id)
	return err
}

// scanCourse scans a single row into a Course struct.
func scanCourse(scanner interface{ Scan(...interface{}) error }) (models.Course, error) {
	var course models.Course
	var description, instructorID, departmentIDsJSON sql.NullString
	err := scanner.Scan(
		&course.ID,
		&course.Title,
		&description,
		&instructorID,
		&departmentIDsJSON,
		&course.StartDate,
		&course.EndDate,
		&course.Credits,
	)
	if err != nil {
		return models.Course{}, err
	}
	if description.Valid {
		course.Description = description.String
	}
	if instructorID.Valid {
		course.InstructorID = instructorID.String
	}
	if departmentIDsJSON.Valid {
		course.DepartmentIDsJSON = departmentIDsJSON.String
	}
	course.PrepareForAPI()
	return course, nil
}
