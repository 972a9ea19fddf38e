package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/campus-api/internal/models"
)

// EnrollmentServiceProvider defines the interface for enrollment services.
type EnrollmentServiceProvider interface {
	Create(studentID, courseID string, enrollmentDate *time.Time) (models.Enrollment, error)
	GetByID(id string) (models.Enrollment, error)
	GetAll() ([]models.Enrollment, error)
	GetByStudent(studentID string) ([]models.Enrollment, error)
	GetByCourse(courseID string) ([]models.Enrollment, error)
	SetGrade(id string, grade models.Grade) (models.Enrollment, error)
	Delete(id string) error
}

// EnrollmentService provides business logic for enrollment records and owns
// the status/grade transition.
type EnrollmentService struct {
	db *sql.DB
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(db *sql.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Create records a new enrollment. Every enrollment starts as Active with
// grade IP; any status or grade supplied by the caller is ignored. A nil
// enrollmentDate defaults to the current time.
func (s *EnrollmentService) Create(studentID, courseID string, enrollmentDate *time.Time) (models.Enrollment, error) {
	date := time.Now().UTC()
	if enrollmentDate != nil {
		date = *enrollmentDate
	}

	enrollment := models.Enrollment{
		ID:             uuid.New().String(),
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: date,
		Status:         models.EnrollmentActive,
		Grade:          models.GradeIP,
	}

	_, err := s.db.Exec(`
		INSERT INTO enrollments (id, student_id, course_id, enrollment_date, status, grade)
		VALUES (?, ?, ?, ?, ?, ?)`,
		enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.EnrollmentDate, enrollment.Status, enrollment.Grade)
	if err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

// GetByID retrieves a single enrollment by its ID.
func (s *EnrollmentService) GetByID(id string) (models.Enrollment, error) {
	row := s.db.QueryRow(`
		SELECT id, student_id, course_id, enrollment_date, status, grade
		FROM enrollments WHERE id = ?`, id)
	return scanEnrollment(row)
}

// GetAll retrieves every enrollment.
func (s *EnrollmentService) GetAll() ([]models.Enrollment, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, course_id, enrollment_date, status, grade
		FROM enrollments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

// GetByStudent retrieves all enrollments for a student.
func (s *EnrollmentService) GetByStudent(studentID string) ([]models.Enrollment, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, course_id, enrollment_date, status, grade
		FROM enrollments WHERE student_id = ?`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

// GetByCourse retrieves all enrollments for a course.
func (s *EnrollmentService) GetByCourse(courseID string) ([]models.Enrollment, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, course_id, enrollment_date, status, grade
		FROM enrollments WHERE course_id = ?`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

// SetGrade records a final grade on an Active enrollment and completes it in
// the same update. The read-check-then-write is not serialized here; callers
// racing on the same enrollment rely on the store's per-row atomicity.
//
// TODO: grade W still transitions to Completed rather than Withdrawn; there
// is no withdraw operation to produce the Withdrawn status.
func (s *EnrollmentService) SetGrade(id string, grade models.Grade) (models.Enrollment, error) {
	if !grade.Valid() {
		return models.Enrollment{}, ErrInvalidGrade
	}

	enrollment, err := s.GetByID(id)
	if err != nil {
		return models.Enrollment{}, err
	}

	if enrollment.Status != models.EnrollmentActive {
		return models.Enrollment{}, ErrInvalidTransition
	}

	_, err = s.db.Exec("UPDATE enrollments SET grade = ?, status = ? WHERE id = ?",
		grade, models.EnrollmentCompleted, id)
	if err != nil {
		return models.Enrollment{}, err
	}
	return s.GetByID(id)
}

// Delete removes an enrollment unconditionally; no status check guards it.
func (s *EnrollmentService) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM enrollments WHERE id = ?", id)
	return err
}

// scanEnrollments scans multiple rows into a slice of Enrollments.
func scanEnrollments(rows *sql.Rows) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

// scanEnrollment scans a single row into an Enrollment struct.
func scanEnrollment(scanner interface{ Scan(...interface{}) error }) (models.Enrollment, error) {
	var enrollment models.Enrollment
	var grade sql.NullString
	err := scanner.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.EnrollmentDate,
		&enrollment.Status,
		&grade,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Enrollment{}, ErrEnrollmentNotFound
		}
		return models.Enrollment{}, err
	}
	if grade.Valid {
		enrollment.Grade = models.Grade(grade.String)
	}
	return enrollment, nil
}
