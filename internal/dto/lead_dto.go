package dto

import (
	"time"

	"lead-engagement-be/pkg/widget"
)

// LeadSignalMessage travels on the in-process bus from the widget service to
// the lead signal consumer.
type LeadSignalMessage struct {
	Id             string               `json:"id"`
	Type           string               `json:"type"`
	SessionId      string               `json:"session_id"`
	Route          string               `json:"route"`
	Topic          string               `json:"topic"`
	Score          int                  `json:"score"`
	Level          widget.Level         `json:"level"`
	PreviousLevel  widget.Level         `json:"previous_level,omitempty"`
	VisitedPages   []string             `json:"visited_pages"`
	InterestsCount int                  `json:"interests_count"`
	Action         *widget.ActionButton `json:"action,omitempty"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

type LeadSignalResponse struct {
	Id            string                 `json:"id"`
	Type          string                 `json:"type"`
	SessionId     string                 `json:"session_id"`
	Route         string                 `json:"route"`
	Topic         string                 `json:"topic"`
	Score         int                    `json:"score"`
	Level         string                 `json:"level"`
	PreviousLevel string                 `json:"previous_level,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

type LeadSignalListResponse struct {
	Items []LeadSignalResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type LeadStats struct {
	Total    int              `json:"total"`
	Hot      int              `json:"hot"`
	Warm     int              `json:"warm"`
	Cold     int              `json:"cold"`
	AvgScore float64          `json:"avg_score"`
	Actions  int64            `json:"actions"`
	ByTopic  map[string]int64 `json:"by_topic"`

	RecentHot []LeadSignalResponse `json:"recent_hot"`
}
