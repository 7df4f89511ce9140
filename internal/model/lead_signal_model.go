package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LeadSignal is one engagement event of an anonymous visitor session.
type LeadSignal struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     string         `gorm:"type:varchar(36);not null;index:idx_lead_signals_session" json:"session_id"`
	EventType     string         `gorm:"type:varchar(40);not null;index:idx_lead_signals_type" json:"event_type"`
	Route         string         `gorm:"type:varchar(2048)" json:"route"`
	Topic         string         `gorm:"type:varchar(50);index:idx_lead_signals_topic" json:"topic"`
	Score         int            `gorm:"not null;default:0" json:"score"`
	Level         string         `gorm:"type:varchar(10);not null;index:idx_lead_signals_level" json:"level"`
	PreviousLevel string         `gorm:"type:varchar(10)" json:"previous_level,omitempty"`
	Details       datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	OccurredAt    time.Time      `gorm:"not null;index:idx_lead_signals_occurred" json:"occurred_at"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LeadSignal) TableName() string {
	return "lead_signals"
}

// SessionScore is the highest score a session reached.
type SessionScore struct {
	SessionID string
	Score     int
}

// TopicCount is the number of distinct sessions that produced signals on a topic.
type TopicCount struct {
	Topic string
	Count int64
}
