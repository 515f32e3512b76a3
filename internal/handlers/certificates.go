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

// CertificatesHandler handles public listing and admin CRUD for certificates
type CertificatesHandler struct {
	repo   *repositories.CertificateRepository
	logger *slog.Logger
}

// NewCertificatesHandler creates a new CertificatesHandler
func NewCertificatesHandler(repo *repositories.CertificateRepository, logger *slog.Logger) *CertificatesHandler {
	return &CertificatesHandler{
		repo:   repo,
		logger: logger,
	}
}

// CertificateRequest represents the request body for creating or updating a certificate
type CertificateRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Provider      string     `json:"provider" validate:"required,min=1,max=200"`
	IssueDate     *time.Time `json:"issue_date"`
	CredentialID  *string    `json:"credential_id"`
	CredentialURL *string    `json:"credential_url"`
	ImageURL      *string    `json:"image_url"`
	Description   *string    `json:"description"`
	OrderIndex    int        `json:"order_index" validate:"gte=0"`
}

func (req *CertificateRequest) toModel() *models.Certificate {
	return &models.Certificate{
		Title:         req.Title,
		Provider:      req.Provider,
		IssueDate:     req.IssueDate,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		OrderIndex:    req.OrderIndex,
	}
}

// List returns all certificates
func (h *CertificatesHandler) List(w http.ResponseWriter, r *http.Request) {
	certificates, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list certificates", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(certificates)
}

// Get returns a single certificate by ID
func (h *CertificatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	certificate, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Certificate not found")
			return
		}
		h.logger.Error("failed to get certificate", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(certificate)
}

// Create adds a new certificate
func (h *CertificatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CertificateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	certificate, err := h.repo.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed to create certificate", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(certificate)
}

// Update replaces an existing certificate
func (h *CertificatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CertificateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	certificate, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Certificate not found")
			return
		}
		h.logger.Error("failed to update certificate", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(certificate)
}

// Delete removes a certificate
func (h *CertificatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Certificate not found")
			return
		}
		h.logger.Error("failed to delete certificate", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
