package dto

import (
	"time"

	"lead-engagement-be/pkg/widget"
)

type CreateSessionRequest struct {
	Route string `json:"route" validate:"omitempty,startswith=/,max=2048"`
}

type ChangeRouteRequest struct {
	Path string `json:"path" validate:"required,startswith=/,max=2048"`
}

// SendMessageRequest carries the raw input field. Blank text is accepted and
// reported as not sent.
type SendMessageRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

type QuickReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=2000"`
}

type ClickActionRequest struct {
	MessageId string `json:"message_id" validate:"required"`
	Index     int    `json:"index" validate:"min=0"`
}

type SessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	widget.Snapshot
}

type SubmitResponse struct {
	Sent    bool            `json:"sent"`
	Message *widget.Message `json:"message,omitempty"`
	Session SessionResponse `json:"session"`
}

type ClickActionResponse struct {
	Performed  bool            `json:"performed"`
	NavigateTo string          `json:"navigate_to,omitempty"`
	ScrollTo   string          `json:"scroll_to,omitempty"`
	Session    SessionResponse `json:"session"`
}

type PageContextResponse struct {
	Path         string   `json:"path"`
	Configured   bool     `json:"configured"`
	Topic        string   `json:"topic"`
	Greeting     string   `json:"greeting"`
	QuickReplies []string `json:"quick_replies"`
}

// WidgetCommand is a frame sent by the visitor over the WebSocket.
type WidgetCommand struct {
	Type      string `json:"type" validate:"required,oneof=open close minimize route submit quick_reply action"`
	Path      string `json:"path,omitempty"`
	Text      string `json:"text,omitempty"`
	Reply     string `json:"reply,omitempty"`
	MessageId string `json:"message_id,omitempty"`
	Index     int    `json:"index,omitempty"`
}

// Outbound WebSocket frame types.
const (
	FrameMessage  = "message"
	FrameTyping   = "typing"
	FrameState    = "state"
	FrameNavigate = "navigate"
	FrameScroll   = "scroll"
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

type TypingFrame struct {
	Typing bool `json:"typing"`
}

type StateFrame struct {
	State widget.State `json:"state"`
}

type NavigateFrame struct {
	Path string `json:"path"`
}

type ScrollFrame struct {
	Anchor string `json:"anchor"`
}

type ErrorFrame struct {
	Message string `json:"message"`
}
