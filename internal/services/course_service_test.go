package services

import (
	"testing"
	"time"

	"github.com/isdelr/campus-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseService_CreateAndGet(t *testing.T) {
	t.Parallel()
	svc := NewCourseService(newTestDB(t))

	created, err := svc.Create(models.Course{
		Title:         "Distributed Systems",
		Description:   "Consensus, replication, failure",
		InstructorID:  "instructor-1",
		DepartmentIDs: []string{"dept-1", "dept-2"},
		StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC),
		Credits:       6,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Distributed Systems", got.Title)
	assert.Equal(t, []string{"dept-1", "dept-2"}, got.DepartmentIDs)
	assert.Equal(t, 6, got.Credits)
}

func TestCourseService_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewCourseService(newTestDB(t))

	_, err := svc.GetByID("no-such-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Update("no-such-course", models.Course{Title: "X", Credits: 1})
	assert.ErrorIs(t, err, ErrCourseNotFound)

	assert.ErrorIs(t, svc.Delete("no-such-course"), ErrCourseNotFound)
}

func TestStudentService_GetEnrolledCourses(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	courses := NewCourseService(db)
	enrollments := NewEnrollmentService(db)
	students := NewStudentService(db)

	c1, err := courses.Create(models.Course{Title: "Algebra", Credits: 5, DepartmentIDs: []string{"dept-1"}})
	require.NoError(t, err)
	c2, err := courses.Create(models.Course{Title: "Zoology", Credits: 5, DepartmentIDs: []string{"dept-2"}})
	require.NoError(t, err)

	_, err = enrollments.Create("student-1", c1.ID, nil)
	require.NoError(t, err)
	_, err = enrollments.Create("student-2", c2.ID, nil)
	require.NoError(t, err)

	enrolled, err := students.GetEnrolledCourses("student-1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "Algebra", enrolled[0].Title)
}

func TestDepartmentService_CRUD(t *testing.T) {
	t.Parallel()
	svc := NewDepartmentService(newTestDB(t))

	created, err := svc.Create(models.Department{Name: "Mathematics", Description: "Pure and applied"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Update(created.ID, models.Department{Name: "Maths", Description: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Maths", updated.Name)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}
