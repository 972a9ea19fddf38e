package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/campus-api/internal/api"
	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/config"
	"github.com/isdelr/campus-api/internal/database"
	"github.com/isdelr/campus-api/internal/logger"
	"github.com/isdelr/campus-api/internal/monitoring"
	"github.com/isdelr/campus-api/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the token manager from the loaded configuration
	tokenManager := auth.NewTokenManager(
		cfg.JWTSecret,
		cfg.JWTIssuer,
		cfg.JWTAudience,
		time.Duration(cfg.JWTExpiryMinutes)*time.Minute,
	)

	// Set up services
	authService := services.NewAuthService(db, tokenManager)
	studentService := services.NewStudentService(db)
	instructorService := services.NewInstructorService(db)
	departmentService := services.NewDepartmentService(db)
	courseService := services.NewCourseService(db)
	enrollmentService := services.NewEnrollmentService(db)

	// Set up and run the background orphaned-profile reconciler
	reconciler, err := monitoring.NewReconciler(db, cfg.ReconcileSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize reconciler: %v", err)
	}
	go reconciler.Run()

	// Set up router
	router := api.NewRouter(tokenManager, authService, studentService, instructorService, departmentService, courseService, enrollmentService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
