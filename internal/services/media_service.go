package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultMediaAPIBaseURL = "https://api.imagekit.io/v1"

// UploadAuthParams are the signed parameters a browser needs to upload
// a file directly to the CDN.
type UploadAuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// MediaService signs client-side upload requests and deletes files
// from the image CDN.
type MediaService struct {
	privateKey  string
	publicKey   string
	urlEndpoint string
	apiBaseURL  string
	httpClient  *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

// NewMediaService creates a MediaService for the given ImageKit keys.
func NewMediaService(privateKey, publicKey, urlEndpoint string, logger *slog.Logger) *MediaService {
	return &MediaService{
		privateKey:  privateKey,
		publicKey:   publicKey,
		urlEndpoint: urlEndpoint,
		apiBaseURL:  defaultMediaAPIBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		now:         time.Now,
	}
}

// Configured reports whether CDN credentials were provided.
func (s *MediaService) Configured() bool {
	return s.privateKey != "" && s.publicKey != ""
}

// UploadAuth generates one-time authentication parameters for a direct
// browser upload. The signature is an HMAC-SHA1 of token+expire keyed
// with the private key, hex encoded, per the ImageKit upload API.
func (s *MediaService) UploadAuth() UploadAuthParams {
	token := uuid.NewString()
	expire := s.now().Add(30 * time.Minute).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	fmt.Fprintf(mac, "%s%d", token, expire)

	return UploadAuthParams{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
		PublicKey: s.publicKey,
	}
}

// DeleteFile removes a previously uploaded file from the CDN.
func (s *MediaService) DeleteFile(ctx context.Context, fileID string) error {
	endpoint := fmt.Sprintf("%s/files/%s", s.apiBaseURL, url.PathEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	// ImageKit uses basic auth with the private key as username and an
	// empty password.
	req.SetBasicAuth(s.privateKey, "")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
		s.logger.Info("media file deleted", slog.String("file_id", fileID))
		return nil
	case resp.StatusCode == http.StatusNotFound:
		// Already gone; treat as success so record deletion can proceed.
		s.logger.Warn("media file not found on CDN", slog.String("file_id", fileID))
		return nil
	default:
		return fmt.Errorf("media delete failed with status %d", resp.StatusCode)
	}
}
