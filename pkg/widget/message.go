package widget

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Variant is the visual style of an action button.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
)

// ActionScrollToDemo asks the host page to bring the demo section into view.
const ActionScrollToDemo = "scroll_to_demo"

// DemoAnchor is the section id targeted by ActionScrollToDemo.
const DemoAnchor = "demo"

// ActionButton is a call-to-action attached to a bot message.
// To takes precedence over Action; a button with neither is inert.
type ActionButton struct {
	Label   string  `json:"label" yaml:"label"`
	To      string  `json:"to,omitempty" yaml:"to,omitempty"`
	Action  string  `json:"action,omitempty" yaml:"action,omitempty"`
	Variant Variant `json:"variant" yaml:"variant"`
}

// Inert reports whether activating the button has no defined effect.
func (b ActionButton) Inert() bool {
	return b.To == "" && b.Action != ActionScrollToDemo
}

// Message is one turn of the transcript. Messages are never mutated once appended.
type Message struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Sender    Sender         `json:"sender"`
	CreatedAt time.Time      `json:"created_at"`
	Actions   []ActionButton `json:"actions,omitempty"`
}

func newMessage(sender Sender, content string, actions []ActionButton, now time.Time) Message {
	return Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Content:   content,
		Sender:    sender,
		CreatedAt: now,
		Actions:   cloneActions(actions),
	}
}

func cloneActions(actions []ActionButton) []ActionButton {
	if len(actions) == 0 {
		return nil
	}
	out := make([]ActionButton, len(actions))
	copy(out, actions)
	return out
}
