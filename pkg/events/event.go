package events

import "time"

// Lead signal event types. NATS subjects are "events.<type>".
const (
	LeadSessionStarted    = "LEAD_SESSION_STARTED"
	LeadEngagementChanged = "LEAD_ENGAGEMENT_CHANGED"
	LeadActionClicked     = "LEAD_ACTION_CLICKED"
)

// SubjectPrefix precedes the event type in every NATS subject.
const SubjectPrefix = "events."

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_ACTION_CLICKED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject returns the NATS subject an event of eventType is published on.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}
