package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/database"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	tm := auth.NewTokenManager("test-secret", "campus-api", "campus-clients", time.Hour)
	return NewRouter(
		tm,
		services.NewAuthService(db, tm),
		services.NewStudentService(db),
		services.NewInstructorService(db),
		services.NewDepartmentService(db),
		services.NewCourseService(db),
		services.NewEnrollmentService(db),
	)
}

func do(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func bootstrapAdmin(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec := do(t, handler, http.MethodPost, "/api/v1/admin/register/admin", "", map[string]string{
		"email":    "admin@x.edu",
		"password": "password123",
		"name":     "Ada Root",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@x.edu",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.LoginResult
	decode(t, rec, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAdminBootstrap_SecondAnonymousAttemptForbidden(t *testing.T) {
	t.Parallel()
	handler := newTestServer(t)
	adminToken := bootstrapAdmin(t, handler)

	// Anonymous repeat is rejected once an admin exists.
	rec := do(t, handler, http.MethodPost, "/api/v1/admin/register/admin", "", map[string]string{
		"email":    "second@x.edu",
		"password": "password123",
		"name":     "Eve",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An authenticated admin may create further admins.
	rec = do(t, handler, http.MethodPost, "/api/v1/admin/register/admin", adminToken, map[string]string{
		"email":    "second@x.edu",
		"password": "password123",
		"name":     "Bea Root",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStudentRegistration_ApprovalFlow(t *testing.T) {
	t.Parallel()
	handler := newTestServer(t)
	adminToken := bootstrapAdmin(t, handler)

	rec := do(t, handler, http.MethodPost, "/api/v1/auth/register/student", "", map[string]interface{}{
		"email":        "s@x.edu",
		"password":     "password123",
		"name":         "Sam Doe",
		"age":          20,
		"departmentId": "dept-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		User models.User `json:"user"`
	}
	decode(t, rec, &created)
	require.NotEmpty(t, created.User.ID)
	require.False(t, created.User.IsActive)

	// Login is gated until approval.
	rec = do(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "s@x.edu",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/v1/admin/users/"+created.User.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "s@x.edu",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login services.LoginResult
	decode(t, rec, &login)
	studentToken := login.Token

	// Own profile is visible; another student's profile is not.
	rec = do(t, handler, http.MethodGet, "/api/v1/students/"+created.User.ProfileID, studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/v1/students/other-profile", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Listing all students is staff-only.
	rec = do(t, handler, http.MethodGet, "/api/v1/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/v1/students", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnrollmentGradeFlow(t *testing.T) {
	t.Parallel()
	handler := newTestServer(t)
	adminToken := bootstrapAdmin(t, handler)

	rec := do(t, handler, http.MethodPost, "/api/v1/enrollments", adminToken, map[string]string{
		"studentId": "student-1",
		"courseId":  "course-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var enrollment models.Enrollment
	decode(t, rec, &enrollment)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, models.GradeIP, enrollment.Grade)

	rec = do(t, handler, http.MethodPut, "/api/v1/enrollments/"+enrollment.ID+"/grade", adminToken, map[string]string{
		"grade": "A",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Enrollment
	decode(t, rec, &updated)
	assert.Equal(t, models.EnrollmentCompleted, updated.Status)
	assert.Equal(t, models.GradeA, updated.Grade)

	// The transition is one-shot.
	rec = do(t, handler, http.MethodPut, "/api/v1/enrollments/"+enrollment.ID+"/grade", adminToken, map[string]string{
		"grade": "B",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentOwnership(t *testing.T) {
	t.Parallel()
	handler := newTestServer(t)
	adminToken := bootstrapAdmin(t, handler)

	// Register and approve a student.
	rec := do(t, handler, http.MethodPost, "/api/v1/auth/register/student", "", map[string]interface{}{
		"email":        "s@x.edu",
		"password":     "password123",
		"name":         "Sam Doe",
		"age":          20,
		"departmentId": "dept-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		User models.User `json:"user"`
	}
	decode(t, rec, &created)

	rec = do(t, handler, http.MethodPost, "/api/v1/admin/users/"+created.User.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "s@x.edu",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login services.LoginResult
	decode(t, rec, &login)
	studentToken := login.Token

	// Students may list only their own enrollments; the route compares the
	// user id claim.
	rec = do(t, handler, http.MethodGet, "/api/v1/enrollments/student/"+created.User.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/v1/enrollments/student/someone-else", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Staff see any student's enrollments.
	rec = do(t, handler, http.MethodGet, "/api/v1/enrollments/student/someone-else", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Creating enrollments is staff-only.
	rec = do(t, handler, http.MethodPost, "/api/v1/enrollments", studentToken, map[string]string{
		"studentId": created.User.ID,
		"courseId":  "course-1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
