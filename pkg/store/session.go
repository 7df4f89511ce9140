package store

import (
	"sync"
	"time"

	"lead-engagement-be/pkg/widget"
)

// VisitorSession is one mounted widget on one page load. It lives in memory
// only; nothing about the transcript or the lead profile is persisted.
type VisitorSession struct {
	ID        string         `json:"id"`
	Widget    *widget.Widget `json:"-"`
	CreatedAt time.Time      `json:"created_at"`

	mu         sync.Mutex
	lastSeenAt time.Time
}

func NewVisitorSession(id string, w *widget.Widget, now time.Time) *VisitorSession {
	return &VisitorSession{
		ID:         id,
		Widget:     w,
		CreatedAt:  now,
		lastSeenAt: now,
	}
}

// Touch records visitor activity.
func (s *VisitorSession) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeenAt = now
	s.mu.Unlock()
}

func (s *VisitorSession) LastSeenAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeenAt
}
