package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/campus-api/internal/api/handlers"
	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
)

// Route policies. Ownership checks apply to Student callers only; the route
// parameter named in OwnParam must match the selected claim.
var (
	adminOnly = auth.Policy{Roles: []models.Role{models.RoleAdmin}}
	staffOnly = auth.Policy{Roles: []models.Role{models.RoleAdmin, models.RoleInstructor}}
	anyRole   = auth.Policy{Roles: []models.Role{models.RoleAdmin, models.RoleInstructor, models.RoleStudent}}

	ownProfile = auth.Policy{
		Roles:    []models.Role{models.RoleAdmin, models.RoleInstructor, models.RoleStudent},
		OwnParam: "id",
		OwnClaim: auth.OwnProfileID,
	}
	ownEnrollments = auth.Policy{
		Roles:    []models.Role{models.RoleAdmin, models.RoleInstructor, models.RoleStudent},
		OwnParam: "studentId",
		OwnClaim: auth.OwnUserID,
	}
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tm *auth.TokenManager,
	authService services.AuthServiceProvider,
	studentService services.StudentServiceProvider,
	instructorService services.InstructorServiceProvider,
	departmentService services.DepartmentServiceProvider,
	courseService services.CourseServiceProvider,
	enrollmentService services.EnrollmentServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService, tm)
	studentHandler := handlers.NewStudentHandler(studentService)
	instructorHandler := handlers.NewInstructorHandler(instructorService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	courseHandler := handlers.NewCourseHandler(courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)

	r.Route("/api/v1", func(r chi.Router) {
		// Unauthenticated endpoints: login, student self-registration and the
		// first-admin bootstrap (the handler itself gates repeat admin creation).
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register/student", authHandler.RegisterStudent)
		r.Post("/admin/register/admin", adminHandler.RegisterAdmin)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticator(tm))

			r.Route("/admin", func(r chi.Router) {
				r.With(auth.Require(adminOnly)).Post("/register/instructor", adminHandler.RegisterInstructor)
				r.With(auth.Require(adminOnly)).Post("/users/{userId}/approve", adminHandler.ApproveUser)
				r.With(auth.Require(adminOnly)).Post("/users/{userId}/deactivate", adminHandler.DeactivateUser)
			})

			r.Route("/students", func(r chi.Router) {
				r.With(auth.Require(staffOnly)).Get("/", studentHandler.GetAll)
				r.With(auth.Require(ownProfile)).Get("/{id}", studentHandler.Get)
				r.With(auth.Require(ownProfile)).Get("/{id}/courses", studentHandler.GetEnrolledCourses)
				r.With(auth.Require(adminOnly)).Put("/{id}", studentHandler.Update)
				r.With(auth.Require(adminOnly)).Delete("/{id}", studentHandler.Delete)
			})

			r.Route("/instructors", func(r chi.Router) {
				r.With(auth.Require(staffOnly)).Get("/", instructorHandler.GetAll)
				r.With(auth.Require(staffOnly)).Get("/{id}", instructorHandler.Get)
				r.With(auth.Require(adminOnly)).Put("/{id}", instructorHandler.Update)
				r.With(auth.Require(adminOnly)).Delete("/{id}", instructorHandler.Delete)
			})

			r.Route("/departments", func(r chi.Router) {
				r.With(auth.Require(anyRole)).Get("/", departmentHandler.GetAll)
				r.With(auth.Require(anyRole)).Get("/{id}", departmentHandler.Get)
				r.With(auth.Require(adminOnly)).Post("/", departmentHandler.Create)
				r.With(auth.Require(adminOnly)).Put("/{id}", departmentHandler.Update)
				r.With(auth.Require(adminOnly)).Delete("/{id}", departmentHandler.Delete)
			})

			r.Route("/courses", func(r chi.Router) {
				r.With(auth.Require(anyRole)).Get("/", courseHandler.GetAll)
				r.With(auth.Require(anyRole)).Get("/{id}", courseHandler.Get)
				r.With(auth.Require(staffOnly)).Post("/", courseHandler.Create)
				r.With(auth.Require(staffOnly)).Put("/{id}", courseHandler.Update)
				r.With(auth.Require(adminOnly)).Delete("/{id}", courseHandler.Delete)
			})

			r.Route("/enrollments", func(r chi.Router) {
				r.With(auth.Require(staffOnly)).Get("/", enrollmentHandler.GetAll)
				r.With(auth.Require(staffOnly)).Post("/", enrollmentHandler.Create)
				r.With(auth.Require(anyRole)).Get("/{id}", enrollmentHandler.Get)
				r.With(auth.Require(ownEnrollments)).Get("/student/{studentId}", enrollmentHandler.GetByStudent)
				r.With(auth.Require(staffOnly)).Get("/course/{courseId}", enrollmentHandler.GetByCourse)
				r.With(auth.Require(staffOnly)).Put("/{id}/grade", enrollmentHandler.UpdateGrade)
				r.With(auth.Require(adminOnly)).Delete("/{id}", enrollmentHandler.Delete)
			})
		})
	})

	return r
}
