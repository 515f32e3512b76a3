package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bagaswara/porto/internal/services"
	pkghttp "github.com/bagaswara/porto/pkg/http"
	"github.com/go-chi/chi/v5"
)

// MediaHandler signs CDN upload requests and deletes CDN files for the admin
type MediaHandler struct {
	media  *services.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(media *services.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:  media,
		logger: logger,
	}
}

// UploadAuth returns one-time signed parameters for a direct browser upload
func (h *MediaHandler) UploadAuth(w http.ResponseWriter, r *http.Request) {
	if h.media == nil || !h.media.Configured() {
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "media_unavailable", "Media uploads are not configured")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.media.UploadAuth())
}

// DeleteFile removes an uploaded file from the CDN
func (h *MediaHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if h.media == nil || !h.media.Configured() {
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "media_unavailable", "Media uploads are not configured")
		return
	}

	fileID := chi.URLParam(r, "fileID")
	if fileID == "" {
		pkghttp.WriteBadRequest(w, "Missing file ID")
		return
	}

	if err := h.media.DeleteFile(r.Context(), fileID); err != nil {
		h.logger.Error("failed to delete media file", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Failed to delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
