package domain

import "time"

// Metadata keys recorded on a session at login.
const (
	SessionMetaUserAgent  = "user_agent"
	SessionMetaRemoteAddr = "remote_addr"
)

// Session is the server-side record behind a signed login cookie. The cookie
// only carries ID; everything else stays in the session store.
type Session struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewSession starts a session for userID that lives for ttl from now.
func NewSession(id, userID string, now time.Time, ttl time.Duration, metadata map[string]string) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Metadata:  metadata,
	}
}

// IsExpired reports whether the session is no longer valid at reference.
// A nil session counts as expired.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// TTL is the remaining lifetime at reference, never negative.
func (s *Session) TTL(reference time.Time) time.Duration {
	if s.IsExpired(reference) {
		return 0
	}
	return s.ExpiresAt.Sub(reference)
}
