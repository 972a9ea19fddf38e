package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/isdelr/campus-api/internal/models"
	"github.com/isdelr/campus-api/internal/services"
	"github.com/rs/zerolog/log"
)

// DepartmentHandler handles HTTP requests for departments.
type DepartmentHandler struct {
	service services.DepartmentServiceProvider
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(service services.DepartmentServiceProvider) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// DepartmentPayload defines the structure for department create/update.
type DepartmentPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p DepartmentPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
}

// GetAll handles the request to list every department.
func (h *DepartmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.GetAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

// Get handles retrieving a department by its ID.
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	department, err := h.service.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

// Create handles the request to create a new department.
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload DepartmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	department, err := h.service.Create(models.Department{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create department")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, department)
}

// Update handles updating a department.
func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload DepartmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	department, err := h.service.Update(id, models.Department{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		log.Error().Err(err).Str("department_id", id).Msg("Failed to update department")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

// Delete handles removing a department.
func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("department_id", id).Msg("Failed to delete department")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
