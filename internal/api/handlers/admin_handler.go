package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles admin bootstrap, instructor registration and account
// activation management.
type AdminHandler struct {
	service services.AuthServiceProvider
	tm      *auth.TokenManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.AuthServiceProvider, tm *auth.TokenManager) *AdminHandler {
	return &AdminHandler{service: service, tm: tm}
}

// AdminRegisterPayload defines the structure for admin registration requests.
type AdminRegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (p AdminRegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
}

// InstructorRegisterPayload defines the structure for instructor registration.
type InstructorRegisterPayload struct {
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	Name         string    `json:"name"`
	HireDate     time.Time `json:"hireDate"`
	DepartmentID string    `json:"departmentId"`
}

func (p InstructorRegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.HireDate, validation.Required),
		validation.Field(&p.DepartmentID, validation.Required),
	)
}

// RegisterAdmin creates an Admin account. The route is unauthenticated so the
// very first admin can bootstrap the system; once any admin exists, the
// caller must present a valid Admin token.
func (h *AdminHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var payload AdminRegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.service.AdminExists()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if exists && !h.callerIsAdmin(r) {
		writeMessage(w, http.StatusForbidden, "Admin already exists. New admins can only be created by existing admins.")
		return
	}

	user, err := h.service.RegisterAdmin(payload.Email, payload.Password, payload.Name)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed admin registration")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Admin registered successfully",
		"user":    user,
	})
}

// callerIsAdmin reports whether the request carries a valid token with the
// Admin role. Used only by the bootstrap route, which sits outside the
// authenticated group.
func (h *AdminHandler) callerIsAdmin(r *http.Request) bool {
	tokenStr := auth.TokenFromRequest(r)
	if tokenStr == "" {
		return false
	}
	claims, err := h.tm.Validate(tokenStr)
	if err != nil {
		return false
	}
	return claims.Role == models.RoleAdmin
}

// RegisterInstructor creates an Instructor account. Instructor accounts are
// active immediately; no approval step.
func (h *AdminHandler) RegisterInstructor(w http.ResponseWriter, r *http.Request) {
	var payload InstructorRegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.RegisterInstructor(payload.Email, payload.Password, payload.Name, payload.HireDate, payload.DepartmentID)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed instructor registration")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ApproveUser activates a user account so it can log in.
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	user, err := h.service.Approve(userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to approve user")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeactivateUser clears a user's activation flag, blocking further logins.
func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	modified, err := h.service.Deactivate(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to deactivate user")
		writeServiceError(w, err)
		return
	}
	if !modified {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeMessage(w, http.StatusOK, "User deactivated successfully")
}
