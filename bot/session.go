package bot

import (
	"sync"
	"time"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
)

// SessionStore keeps the conversational state of every user in memory
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*common.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*common.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the user's session, idle when none exists
func (s *SessionStore) Get(userID string) common.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess
	}
	return common.Session{UserID: userID}
}

// Save stores the session. Idle sessions are dropped.
func (s *SessionStore) Save(sess common.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.State == common.StateIdle {
		delete(s.sessions, sess.UserID)
		return
	}
	sess.UpdatedAt = s.now()
	s.sessions[sess.UserID] = &sess
}

// Delete removes the user's session
func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Cleanup removes sessions idle for longer than the ttl and returns their user ids
func (s *SessionStore) Cleanup() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []string
	for userID, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, userID)
			expired = append(expired, userID)
		}
	}
	return expired
}

// Len returns the number of active sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
