package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the interface for account and session services.
type AuthServiceProvider interface {
	RegisterAdmin(email, password, name string) (models.User, error)
	RegisterStudent(email, password, name string, age int, departmentID string) (models.User, error)
	RegisterInstructor(email, password, name string, hireDate time.Time, departmentID string) (models.User, error)
	Login(email, password string) (LoginResult, error)
	Approve(userID string) (models.User, error)
	Deactivate(userID string) (bool, error)
	AdminExists() (bool, error)
	GetUserByID(id string) (models.User, error)
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token    string      `json:"token"`
	Role     models.Role `json:"role"`
	Email    string      `json:"email"`
	IsActive bool        `json:"isActive"`
}

// AuthService provides business logic for account registration, activation
// and login. It owns the users table; profile rows are written as the first
// half of the registration saga.
type AuthService struct {
	db *sql.DB
	tm *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, tm *auth.TokenManager) *AuthService {
	return &AuthService{db: db, tm: tm}
}

// emailTaken checks whether a user with this email already exists. The check
// and the subsequent insert are separate statements; the UNIQUE index on
// users.email is the real backstop for concurrent registrations.
func (s *AuthService) emailTaken(email string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdminExists reports whether any Admin account exists. Used by the
// first-admin bootstrap gate.
func (s *AuthService) AdminExists() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE role = ?", models.RoleAdmin).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RegisterAdmin creates an Admin account. Admin accounts are active
// immediately and carry no profile.
func (s *AuthService) RegisterAdmin(email, password, name string) (models.User, error) {
	taken, err := s.emailTaken(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.insertUser(user); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// RegisterStudent creates a Student profile and then the user account
// referencing it. The account starts inactive and cannot log in until an
// admin approves it.
//
// The two inserts are not transactional: if the user insert fails we attempt
// a compensating delete of the profile, and the reconciler sweeps up anything
// the compensation missed.
func (s *AuthService) RegisterStudent(email, password, name string, age int, departmentID string) (models.User, error) {
	taken, err := s.emailTaken(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	student := models.Student{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		Age:            age,
		EnrollmentDate: time.Now().UTC(),
		DepartmentID:   departmentID,
	}
	_, err = s.db.Exec(`
		INSERT INTO students (id, name, email, age, enrollment_date, department_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		student.ID, student.Name, student.Email, student.Age, student.EnrollmentDate, student.DepartmentID)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		IsActive:     false, // Requires admin approval
		ProfileID:    student.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.insertUser(user); err != nil {
		s.compensateProfile("students", student.ID)
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// RegisterInstructor creates an Instructor profile and then the user account
// referencing it. Instructor accounts are active immediately.
func (s *AuthService) RegisterInstructor(email, password, name string, hireDate time.Time, departmentID string) (models.User, error) {
	taken, err := s.emailTaken(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	instructor := models.Instructor{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		HireDate:     hireDate,
		DepartmentID: departmentID,
	}
	_, err = s.db.Exec(`
		INSERT INTO instructors (id, name, email, hire_date, department_id)
		VALUES (?, ?, ?, ?, ?)`,
		instructor.ID, instructor.Name, instructor.Email, instructor.HireDate, instructor.DepartmentID)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleInstructor,
		IsActive:     true, // Instructors are automatically activated
		ProfileID:    instructor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.insertUser(user); err != nil {
		s.compensateProfile("instructors", instructor.ID)
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// insertUser writes the user row. A UNIQUE violation on email means a
// concurrent registration won the race; surface it as a duplicate.
func (s *AuthService) insertUser(user models.User) error {
	var profileID sql.NullString
	if user.ProfileID != "" {
		profileID = sql.NullString{String: user.ProfileID, Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, password_hash, role, is_active, profile_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.Role, user.IsActive, profileID, user.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// compensateProfile deletes the profile row written before a failed user
// insert. Failure here leaves an orphaned profile for the reconciler.
func (s *AuthService) compensateProfile(table, id string) {
	if _, err := s.db.Exec("DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		log.Error().Err(err).Str("profile_id", id).Str("table", table).
			Msg("Failed to compensate orphaned profile; reconciler will sweep it")
	}
}

// Login verifies credentials and the activation gate, touches last_login and
// mints a token. Unknown email and wrong password are indistinguishable to
// the caller; an inactive account is reported only after the password
// verifies.
func (s *AuthService) Login(email, password string) (LoginResult, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return LoginResult{}, ErrAccountInactive
	}

	now := time.Now().UTC()
	if _, err := s.db.Exec("UPDATE users SET last_login = ? WHERE id = ?", now, user.ID); err != nil {
		return LoginResult{}, err
	}

	token, err := s.tm.Generate(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return LoginResult{
		Token:    token,
		Role:     user.Role,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}

// Approve activates a user account. Approving an already-active account
// succeeds and changes nothing.
func (s *AuthService) Approve(userID string) (models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if _, err := s.db.Exec("UPDATE users SET is_active = TRUE WHERE id = ?", userID); err != nil {
		return models.User{}, err
	}
	user.IsActive = true
	return user, nil
}

// Deactivate clears the activation flag. The return value reports whether a
// row actually changed, so deactivating a missing or already-inactive user
// yields false.
func (s *AuthService) Deactivate(userID string) (bool, error) {
	res, err := s.db.Exec("UPDATE users SET is_active = FALSE WHERE id = ? AND is_active = TRUE", userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *AuthService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, password_hash, role, is_active, profile_id, last_login, created_at
		FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByEmail retrieves a single user by their email, including the
// password hash. Emails are compared exactly as stored; no normalization.
func (s *AuthService) getUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, password_hash, role, is_active, profile_id, last_login, created_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// scanUser scans a single row into a User struct.
func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var profileID sql.NullString
	var lastLogin sql.NullTime
	err := scanner.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&profileID,
		&lastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if profileID.Valid {
		user.ProfileID = profileID.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}
