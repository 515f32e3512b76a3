package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bagaswara/porto/internal/gate"
	"github.com/bagaswara/porto/internal/repositories"
	pkghttp "github.com/bagaswara/porto/pkg/http"
)

// DashboardHandler serves the admin dashboard summary
type DashboardHandler struct {
	projects     *repositories.ProjectRepository
	experience   *repositories.ExperienceRepository
	skills       *repositories.SkillRepository
	certificates *repositories.CertificateRepository
	logger       *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	projects *repositories.ProjectRepository,
	experience *repositories.ExperienceRepository,
	skills *repositories.SkillRepository,
	certificates *repositories.CertificateRepository,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		projects:     projects,
		experience:   experience,
		skills:       skills,
		certificates: certificates,
		logger:       logger,
	}
}

// DashboardStats summarizes the content counts shown on the dashboard
type DashboardStats struct {
	Projects     int    `json:"projects"`
	Experience   int    `json:"experience"`
	Skills       int    `json:"skills"`
	Certificates int    `json:"certificates"`
	AdminEmail   string `json:"admin_email,omitempty"`
}

// Stats returns content counts for the signed-in admin
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := DashboardStats{}

	var err error
	if stats.Projects, err = h.projects.Count(ctx); err != nil {
		h.logger.Error("failed to count projects", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	if stats.Experience, err = h.experience.Count(ctx); err != nil {
		h.logger.Error("failed to count experience", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	if stats.Skills, err = h.skills.Count(ctx); err != nil {
		h.logger.Error("failed to count skills", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	if stats.Certificates, err = h.certificates.Count(ctx); err != nil {
		h.logger.Error("failed to count certificates", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	if user := gate.GetUserFromContext(r); user != nil {
		stats.AdminEmail = user.Email
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}
