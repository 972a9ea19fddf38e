package services

import (
	"testing"
	"time"

	"github.com/isdelr/campus-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentCreate_AlwaysActiveInProgress(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	enrollment, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)

	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, models.GradeIP, enrollment.Grade)
	assert.Equal(t, "student-1", enrollment.StudentID)
	assert.Equal(t, "course-1", enrollment.CourseID)
	assert.False(t, enrollment.EnrollmentDate.IsZero())
}

func TestEnrollmentCreate_CallerSuppliedDate(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	enrollment, err := svc.Create("student-1", "course-1", &date)
	require.NoError(t, err)
	assert.True(t, enrollment.EnrollmentDate.Equal(date))

	reloaded, err := svc.GetByID(enrollment.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.EnrollmentDate.Equal(date))
}

func TestSetGrade_CompletesEnrollment(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	enrollment, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)

	updated, err := svc.SetGrade(enrollment.ID, models.GradeA)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, updated.Status)
	assert.Equal(t, models.GradeA, updated.Grade)

	// The transition is one-shot: a second grade write must fail.
	_, err = svc.SetGrade(enrollment.ID, models.GradeB)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	reloaded, err := svc.GetByID(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GradeA, reloaded.Grade)
}

func TestSetGrade_WithdrawnGradeStillCompletes(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	enrollment, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)

	// W is reachable only through the generic grade path and yields
	// Completed, not Withdrawn.
	updated, err := svc.SetGrade(enrollment.ID, models.GradeW)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, updated.Status)
	assert.Equal(t, models.GradeW, updated.Grade)
}

func TestSetGrade_UnknownEnrollment(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	_, err := svc.SetGrade("no-such-enrollment", models.GradeA)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestSetGrade_InvalidGradeValue(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	enrollment, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)

	_, err = svc.SetGrade(enrollment.ID, models.Grade("Z"))
	assert.ErrorIs(t, err, ErrInvalidGrade)

	// The record is untouched.
	reloaded, err := svc.GetByID(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, reloaded.Status)
	assert.Equal(t, models.GradeIP, reloaded.Grade)
}

func TestEnrollment_ListByStudentAndCourse(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	_, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)
	_, err = svc.Create("student-1", "course-2", nil)
	require.NoError(t, err)
	_, err = svc.Create("student-2", "course-1", nil)
	require.NoError(t, err)

	byStudent, err := svc.GetByStudent("student-1")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byCourse, err := svc.GetByCourse("course-1")
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEnrollmentDelete_Unconditional(t *testing.T) {
	t.Parallel()
	svc := NewEnrollmentService(newTestDB(t))

	enrollment, err := svc.Create("student-1", "course-1", nil)
	require.NoError(t, err)

	// Completed enrollments delete just the same; no status check guards it.
	_, err = svc.SetGrade(enrollment.ID, models.GradeC)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(enrollment.ID))

	_, err = svc.GetByID(enrollment.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)

	// Deleting a missing enrollment is a no-op.
	assert.NoError(t, svc.Delete(enrollment.ID))
}
