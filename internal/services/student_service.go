package services

import (
	"database/sql"

	"github.com/isdelr/campus-api/internal/models"
)

// StudentServiceProvider defines the interface for student profile services.
type StudentServiceProvider interface {
	GetByID(id string) (models.Student, error)
	GetAll() ([]models.Student, error)
	GetEnrolledCourses(studentID string) ([]models.Course, error)
	Update(id string, student models.Student) (models.Student, error)
	Delete(id string) error
}

// StudentService provides plain data access for student profiles. Profile
// creation happens in AuthService as part of registration.
type StudentService struct {
	db *sql.DB
}

// NewStudentService creates a new StudentService.
func NewStudentService(db *sql.DB) *StudentService {
	return &StudentService{db: db}
}

// GetByID retrieves a single student by their ID.
func (s *StudentService) GetByID(id string) (models.Student, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, age, enrollment_date, department_id, created_at
		FROM students WHERE id = ?`, id)
	student, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

// GetAll retrieves every student profile.
func (s *StudentService) GetAll() ([]models.Student, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, age, enrollment_date, department_id, created_at
		FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// GetEnrolledCourses returns the courses the student has enrollments in.
func (s *StudentService) GetEnrolledCourses(studentID string) ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.description, c.instructor_id, c.department_ids_json, c.start_date, c.end_date, c.credits
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = ?`, studentID)
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

// Update replaces a student's profile fields.
func (s *StudentService) Update(id string, student models.Student) (models.Student, error) {
	if _, err := s.GetByID(id); err != nil {
		return models.Student{}, err
	}

	_, err := s.db.Exec(`
		UPDATE students SET name = ?, email = ?, age = ?, department_id = ?
		WHERE id = ?`,
		student.Name, student.Email, student.Age, student.DepartmentID, id)
	if err != nil {
		return models.Student{}, err
	}
	return s.GetByID(id)
}

// Delete removes a student profile.
func (s *StudentService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM students WHERE id = ?", id)
	return err
}

// scanStudent scans a single row into a Student struct.
func scanStudent(scanner interface{ Scan(...interface{}) error }) (models.Student, error) {
	var student models.Student
	var departmentID sql.NullString
	err := scanner.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.EnrollmentDate,
		&departmentID,
		&student.CreatedAt,
	)
	if err != nil {
		return models.Student{}, err
	}
	if departmentID.Valid {
		student.DepartmentID = departmentID.String
	}
	return student, nil
}
