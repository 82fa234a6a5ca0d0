package services

import (
	"bank-core/internal/models"
	"sync"
)

// Session is the authenticated actor of one caller. It holds at most one
// user. Each caller gets its own Session; nothing about it is process-wide.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

// NewSession returns an empty, logged-out session.
func NewSession() *Session {
	return &Session{}
}

// NewSessionFor returns a session already bound to u.
func NewSessionFor(u *models.User) *Session {
	return &Session{user: u}
}

// User returns the current user, or nil. It is safe on a nil Session.
func (s *Session) User() *models.User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) set(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Session) clear() {
	if s == nil {
		return
	}
	s.set(nil)
}
