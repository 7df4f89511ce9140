package session

import (
	"time"

	"lead-engagement-be/internal/repository/memory"
	"lead-engagement-be/pkg/store"
	"lead-engagement-be/pkg/widget"

	"github.com/google/uuid"
)

// Manager handles visitor session lifecycle
type Manager struct {
	sessionRepo *memory.SessionRepository
	now         func() time.Time
}

func NewManager(sessionRepo *memory.SessionRepository) *Manager {
	return &Manager{sessionRepo: sessionRepo, now: time.Now}
}

// Create allocates a session id, mounts the widget built for it and stores the session.
func (m *Manager) Create(mount func(sessionID string) *widget.Widget) *store.VisitorSession {
	id := uuid.NewString()
	s := store.NewVisitorSession(id, mount(id), m.now())
	m.sessionRepo.Save(s)
	return s
}

// Get returns a live session and slides its expiration.
func (m *Manager) Get(sessionID string) (*store.VisitorSession, bool) {
	s, found := m.sessionRepo.Get(sessionID)
	if !found {
		return nil, false
	}
	m.Touch(s)
	return s, true
}

// Touch marks activity on s.
func (m *Manager) Touch(s *store.VisitorSession) {
	s.Touch(m.now())
	m.sessionRepo.Save(s)
}

// Delete unmounts the session. Pending answers of its widget still complete.
func (m *Manager) Delete(sessionID string) bool {
	if _, found := m.sessionRepo.Get(sessionID); !found {
		return false
	}
	m.sessionRepo.Delete(sessionID)
	return true
}

func (m *Manager) Count() int {
	return m.sessionRepo.Count()
}
