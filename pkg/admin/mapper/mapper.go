package mapper

import (
	"encoding/json"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/model"
)

// LeadSignalToResponse converts a stored signal to its admin DTO. Undecodable
// details are dropped.
func LeadSignalToResponse(sig model.LeadSignal) dto.LeadSignalResponse {
	var details map[string]interface{}
	if len(sig.Details) > 0 {
		_ = json.Unmarshal(sig.Details, &details)
	}
	return dto.LeadSignalResponse{
		Id:            sig.ID.String(),
		Type:          sig.EventType,
		SessionId:     sig.SessionID,
		Route:         sig.Route,
		Topic:         sig.Topic,
		Score:         sig.Score,
		Level:         sig.Level,
		PreviousLevel: sig.PreviousLevel,
		Details:       details,
		OccurredAt:    sig.OccurredAt,
	}
}

// LeadSignalsToResponse converts multiple signals. The result is never nil.
func LeadSignalsToResponse(signals []model.LeadSignal) []dto.LeadSignalResponse {
	res := make([]dto.LeadSignalResponse, 0, len(signals))
	for _, sig := range signals {
		res = append(res, LeadSignalToResponse(sig))
	}
	return res
}
