package identity

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type csrfTokenEntry struct {
	userID string
	expiry time.Time
}

// CSRFTokenManager issues and validates double-submit CSRF tokens for the
// cookie-authenticated admin API.
type CSRFTokenManager struct {
	validTokens map[string]*csrfTokenEntry
	mu          sync.RWMutex
	tokenTTL    time.Duration
}

// NewCSRFTokenManager creates a CSRF token manager. Expired tokens are
// removed by the background sweeper via Sweep.
func NewCSRFTokenManager() *CSRFTokenManager {
	return &CSRFTokenManager{
		validTokens: make(map[string]*csrfTokenEntry),
		tokenTTL:    12 * time.Hour, // covers an admin editing session
	}
}

// GenerateToken creates a new CSRF token bound to a user.
func (m *CSRFTokenManager) GenerateToken(userID string) (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(randomBytes)

	m.mu.Lock()
	m.validTokens[token] = &csrfTokenEntry{
		userID: userID,
		expiry: time.Now().Add(m.tokenTTL),
	}
	m.mu.Unlock()

	return token, nil
}

// ValidateToken checks that the token exists, belongs to the user, and has
// not expired.
func (m *CSRFTokenManager) ValidateToken(token, userID string) bool {
	m.mu.RLock()
	entry, exists := m.validTokens[token]
	m.mu.RUnlock()

	if !exists || entry.userID != userID {
		return false
	}

	if time.Now().After(entry.expiry) {
		m.mu.Lock()
		delete(m.validTokens, token)
		m.mu.Unlock()
		return false
	}
	return true
}

// RevokeToken invalidates a token, used on logout.
func (m *CSRFTokenManager) RevokeToken(token string) {
	m.mu.Lock()
	delete(m.validTokens, token)
	m.mu.Unlock()
}

// Sweep removes expired tokens and returns the number removed.
func (m *CSRFTokenManager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, entry := range m.validTokens {
		if now.After(entry.expiry) {
			delete(m.validTokens, token)
			removed++
		}
	}
	return removed
}
