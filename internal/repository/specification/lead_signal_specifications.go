package specification

import (
	"time"

	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}

type ByLevel struct {
	Level string
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("level = ?", s.Level)
}

// OccurredSince keeps signals at or after Since.
type OccurredSince struct {
	Since time.Time
}

func (s OccurredSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("occurred_at >= ?", s.Since)
}

// WithTopic skips signals recorded before a topic was known.
type WithTopic struct{}

func (WithTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("topic <> ''")
}
