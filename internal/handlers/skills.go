package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bagaswara/porto/internal/models"
	"github.com/bagaswara/porto/internal/repositories"
	pkghttp "github.com/bagaswara/porto/pkg/http"
	"github.com/go-chi/chi/v5"
)

// SkillsHandler handles public listing and admin CRUD for skills
type SkillsHandler struct {
	repo   *repositories.SkillRepository
	logger *slog.Logger
}

// NewSkillsHandler creates a new SkillsHandler
func NewSkillsHandler(repo *repositories.SkillRepository, logger *slog.Logger) *SkillsHandler {
	return &SkillsHandler{
		repo:   repo,
		logger: logger,
	}
}

// SkillRequest represents the request body for creating or updating a skill
type SkillRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Category   string  `json:"category" validate:"required,oneof=frontend backend tools others"`
	Icon       *string `json:"icon"`
	IconSVG    *string `json:"icon_svg"`
	OrderIndex int     `json:"order_index" validate:"gte=0"`
	IsVisible  bool    `json:"is_visible"`
}

func (req *SkillRequest) toModel() *models.Skill {
	return &models.Skill{
		Name:       req.Name,
		Category:   req.Category,
		Icon:       req.Icon,
		IconSVG:    req.IconSVG,
		OrderIndex: req.OrderIndex,
		IsVisible:  req.IsVisible,
	}
}

// ListVisible returns the skills shown on the public site
func (h *SkillsHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	skills, err := h.repo.ListVisible(r.Context())
	if err != nil {
		h.logger.Error("failed to list skills", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(skills)
}

// List returns every skill, hidden ones included, for the admin editor
func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list skills", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(skills)
}

// Create adds a new skill
func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	skill, err := h.repo.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed to create skill", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(skill)
}

// Update replaces an existing skill
func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	skill, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Skill not found")
			return
		}
		h.logger.Error("failed to update skill", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(skill)
}

// Delete removes a skill
func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Skill not found")
			return
		}
		h.logger.Error("failed to delete skill", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
