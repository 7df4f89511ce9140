package repository

import (
	"context"
	"time"

	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/repository/specification"
)

type LeadSignalFilter struct {
	SessionID string
	EventType string
	Level     string
	Since     time.Time
}

// Specifications turns the non-empty filter fields into query specifications.
func (f LeadSignalFilter) Specifications() []specification.Specification {
	var specs []specification.Specification
	if f.SessionID != "" {
		specs = append(specs, specification.BySessionID{SessionID: f.SessionID})
	}
	if f.EventType != "" {
		specs = append(specs, specification.ByEventType{EventType: f.EventType})
	}
	if f.Level != "" {
		specs = append(specs, specification.ByLevel{Level: f.Level})
	}
	if !f.Since.IsZero() {
		specs = append(specs, specification.OccurredSince{Since: f.Since})
	}
	return specs
}

type LeadSignalRepository interface {
	Create(ctx context.Context, signal *model.LeadSignal) error
	List(ctx context.Context, filter LeadSignalFilter, limit, offset int) ([]model.LeadSignal, int64, error)

	// Aggregates for the admin dashboard
	SessionScores(ctx context.Context) ([]model.SessionScore, error)
	CountByType(ctx context.Context, eventType string) (int64, error)
	SessionsByTopic(ctx context.Context) ([]model.TopicCount, error)
}
