package gate

import (
	"sync"
	"time"
)

// AttemptRecord tracks login attempts for a single client identity within
// the current rate window.
type AttemptRecord struct {
	Count         int
	WindowResetAt time.Time
}

// AttemptStore maintains per-identity login attempt counters with
// window-based expiry. It is safe for concurrent use; the increment returned
// by RecordAttempt is atomic with respect to other operations on the same key.
type AttemptStore struct {
	mu       sync.Mutex
	records  map[string]*AttemptRecord
	window   time.Duration
	now      func() time.Time // injectable for tests
}

// NewAttemptStore creates an attempt store with the given rolling window.
func NewAttemptStore(window time.Duration) *AttemptStore {
	return &AttemptStore{
		records: make(map[string]*AttemptRecord),
		window:  window,
		now:     time.Now,
	}
}

func attemptKey(identity string) string {
	return "login:" + identity
}

// RecordAttempt counts one login attempt for the identity and returns the
// post-increment count. A missing or expired record starts a fresh window
// with count 1; the window deadline is never extended mid-window.
func (s *AttemptStore) RecordAttempt(identity string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := attemptKey(identity)

	rec, ok := s.records[key]
	if !ok || now.After(rec.WindowResetAt) {
		s.records[key] = &AttemptRecord{
			Count:         1,
			WindowResetAt: now.Add(s.window),
		}
		return 1
	}

	rec.Count++
	return rec.Count
}

// Peek returns a copy of the identity's record without mutating it.
func (s *AttemptStore) Peek(identity string) (AttemptRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[attemptKey(identity)]
	if !ok {
		return AttemptRecord{}, false
	}
	return *rec, true
}

// Sweep deletes every record whose window expired before now and returns the
// number of records removed. It holds the lock only for the single map pass;
// callers run it from a background timer, never inline with request handling.
func (s *AttemptStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, rec := range s.records {
		if rec.WindowResetAt.Before(now) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live records. Used by the sweeper for logging.
func (s *AttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
