package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bagaswara/porto/internal/models"
	"github.com/bagaswara/porto/internal/repositories"
	pkghttp "github.com/bagaswara/porto/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ExperienceHandler handles public listing and admin CRUD for work history
type ExperienceHandler struct {
	repo   *repositories.ExperienceRepository
	logger *slog.Logger
}

// NewExperienceHandler creates a new ExperienceHandler
func NewExperienceHandler(repo *repositories.ExperienceRepository, logger *slog.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		repo:   repo,
		logger: logger,
	}
}

// ExperienceRequest represents the request body for creating or updating an entry
type ExperienceRequest struct {
	Company     string     `json:"company" validate:"required,min=1,max=200"`
	Position    string     `json:"position" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"required"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
	OrderIndex  int        `json:"order_index" validate:"gte=0"`
}

func (req *ExperienceRequest) toModel() *models.Experience {
	e := &models.Experience{
		Company:     req.Company,
		Position:    req.Position,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCurrent:   req.IsCurrent,
		OrderIndex:  req.OrderIndex,
	}
	// A current position has no end date, whatever the client sent.
	if e.IsCurrent {
		e.EndDate = nil
	}
	return e
}

// List returns all work history entries, current positions first
func (h *ExperienceHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entries)
}

// Get returns a single entry by ID
func (h *ExperienceHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Experience entry not found")
			return
		}
		h.logger.Error("failed to get experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entry)
}

// Create adds a new work history entry
func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	entry, err := h.repo.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed to create experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// Update replaces an existing entry
func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	entry, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Experience entry not found")
			return
		}
		h.logger.Error("failed to update experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entry)
}

// Delete removes an entry
func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Experience entry not found")
			return
		}
		h.logger.Error("failed to delete experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
