package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bagaswara/porto/internal/models"
	"github.com/bagaswara/porto/internal/services"
	pkghttp "github.com/bagaswara/porto/pkg/http"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	email  services.EmailService
	logger *slog.Logger
}

// NewContactHandler creates a new ContactHandler. The email service may be
// nil when no email backend is configured.
func NewContactHandler(email services.EmailService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		email:  email,
		logger: logger,
	}
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Submit validates a contact submission and forwards it by email
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if h.email == nil {
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "email_unavailable", "Contact form is temporarily unavailable")
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.email.SendContactEmail(r.Context(), msg); err != nil {
		h.logger.Error("contact submission failed", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Failed to send message")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Message sent successfully",
	})
}
