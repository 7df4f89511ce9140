package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/model"
	"lead-engagement-be/pkg/widget"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NewLeadSignalMessage captures a widget snapshot as a lead signal.
func NewLeadSignalMessage(sessionID, eventType string, snap widget.Snapshot, previous widget.Level, action *widget.ActionButton) dto.LeadSignalMessage {
	return dto.LeadSignalMessage{
		Id:             uuid.NewString(),
		Type:           eventType,
		SessionId:      sessionID,
		Route:          snap.Route,
		Topic:          snap.Topic,
		Score:          snap.Profile.Score,
		Level:          snap.Profile.Level,
		PreviousLevel:  previous,
		VisitedPages:   snap.Profile.VisitedPages,
		InterestsCount: len(snap.Profile.Interests),
		Action:         action,
		OccurredAt:     time.Now().UTC(),
	}
}

// LeadSignalMessageToModel converts a bus message to its stored row. The
// visited pages, interest count and clicked action go into Details.
func LeadSignalMessageToModel(signal dto.LeadSignalMessage) (*model.LeadSignal, error) {
	id, err := uuid.Parse(signal.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid signal id %q: %w", signal.Id, err)
	}

	details := map[string]interface{}{
		"visited_pages":   signal.VisitedPages,
		"interests_count": signal.InterestsCount,
	}
	if signal.Action != nil {
		details["action"] = signal.Action
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal signal details: %w", err)
	}

	return &model.LeadSignal{
		ID:            id,
		SessionID:     signal.SessionId,
		EventType:     signal.Type,
		Route:         signal.Route,
		Topic:         signal.Topic,
		Score:         signal.Score,
		Level:         string(signal.Level),
		PreviousLevel: string(signal.PreviousLevel),
		Details:       datatypes.JSON(raw),
		OccurredAt:    signal.OccurredAt,
	}, nil
}
