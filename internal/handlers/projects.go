package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bagaswara/porto/internal/models"
	"github.com/bagaswara/porto/internal/repositories"
	"github.com/bagaswara/porto/internal/services"
	pkghttp "github.com/bagaswara/porto/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ProjectsHandler handles public listing and admin CRUD for projects
type ProjectsHandler struct {
	repo   *repositories.ProjectRepository
	media  *services.MediaService
	logger *slog.Logger
}

// NewProjectsHandler creates a new ProjectsHandler
func NewProjectsHandler(repo *repositories.ProjectRepository, media *services.MediaService, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		repo:   repo,
		media:  media,
		logger: logger,
	}
}

// ProjectRequest represents the request body for creating or updating a project
type ProjectRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Slug         string   `json:"slug" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"required"`
	Problem      string   `json:"problem"`
	Solution     string   `json:"solution"`
	Impact       string   `json:"impact"`
	Technologies []string `json:"technologies"`
	ImageURL     *string  `json:"image_url"`
	ImageFileID  *string  `json:"image_file_id"`
	ProjectURL   *string  `json:"project_url"`
	GithubURL    *string  `json:"github_url"`
	Featured     bool     `json:"featured"`
	OrderIndex   int      `json:"order_index" validate:"gte=0"`
}

func (req *ProjectRequest) toModel() *models.Project {
	return &models.Project{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Problem:      req.Problem,
		Solution:     req.Solution,
		Impact:       req.Impact,
		Technologies: req.Technologies,
		ImageURL:     req.ImageURL,
		ImageFileID:  req.ImageFileID,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
		Featured:     req.Featured,
		OrderIndex:   req.OrderIndex,
	}
}

// List returns all projects, featured first
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list projects", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(projects)
}

// GetBySlug returns a single project for the public detail page
func (h *ProjectsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	project, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Project not found")
			return
		}
		h.logger.Error("failed to get project", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(project)
}

// Get returns a single project by ID for the admin editor
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Project not found")
			return
		}
		h.logger.Error("failed to get project", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(project)
}

// Create adds a new project
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	project, err := h.repo.Create(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "A project with this slug already exists")
			return
		}
		h.logger.Error("failed to create project", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

// Update replaces an existing project
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	project, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Project not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "A project with this slug already exists")
		default:
			h.logger.Error("failed to update project", slog.Any("error", err))
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(project)
}

// Delete removes a project and its CDN image, if any
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Project not found")
			return
		}
		h.logger.Error("failed to get project", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	// Best effort: a CDN failure should not leave the record undeletable.
	if project.ImageFileID != nil && h.media != nil && h.media.Configured() {
		if err := h.media.DeleteFile(r.Context(), *project.ImageFileID); err != nil {
			h.logger.Warn("failed to delete project image",
				slog.String("project_id", id),
				slog.Any("error", err))
		}
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Project not found")
			return
		}
		h.logger.Error("failed to delete project", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
