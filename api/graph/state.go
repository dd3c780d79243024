package graph

import (
	"context"
	"sync"

	"github.com/fastygo/taskmaster/domain"
)

type stateKey struct{}

// RequestState carries the viewer of one GraphQL request and records session
// changes made by login and logout so the HTTP layer can update the cookie.
type RequestState struct {
	mu       sync.Mutex
	session  *domain.Session
	viewer   *domain.User
	metadata map[string]string
	issued   *domain.Session
	revoked  bool
}

// NewRequestState builds the state for a request. session and viewer are nil for anonymous callers.
func NewRequestState(session *domain.Session, viewer *domain.User, metadata map[string]string) *RequestState {
	return &RequestState{session: session, viewer: viewer, metadata: metadata}
}

func WithRequestState(ctx context.Context, state *RequestState) context.Context {
	return context.WithValue(ctx, stateKey{}, state)
}

// StateFrom returns the request state, or an empty anonymous state when none is attached.
func StateFrom(ctx context.Context) *RequestState {
	if ctx != nil {
		if state, ok := ctx.Value(stateKey{}).(*RequestState); ok && state != nil {
			return state
		}
	}
	return &RequestState{}
}

func (s *RequestState) Viewer() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer
}

func (s *RequestState) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.ID
}

func (s *RequestState) Metadata() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata
}

// Login makes user the viewer for the rest of the request and marks session for issuing.
func (s *RequestState) Login(session *domain.Session, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session, s.viewer, s.issued, s.revoked = session, user, session, false
}

// Logout drops the viewer and marks the cookie for removal.
func (s *RequestState) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session, s.viewer, s.issued, s.revoked = nil, nil, nil, true
}

// Issued returns the session created during this request, if any.
func (s *RequestState) Issued() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued
}

func (s *RequestState) Revoked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked
}
