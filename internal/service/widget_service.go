package service

import (
	"context"
	"encoding/json"
	"errors"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/pkg/serverutils"
	internalWS "lead-engagement-be/internal/websocket"
	"lead-engagement-be/pkg/admin/mapper"
	"lead-engagement-be/pkg/events"
	"lead-engagement-be/pkg/session"
	"lead-engagement-be/pkg/store"
	"lead-engagement-be/pkg/widget"
)

var (
	ErrSessionNotFound = errors.New("widget session not found")
	ErrActionNotFound  = errors.New("action button not found")
)

const widgetModule = "WidgetService"

// FramePusher delivers frames to the connections watching a session.
type FramePusher interface {
	Send(sessionID string, frame internalWS.Frame)
}

type IWidgetService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	Open(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	Close(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	Minimize(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	ChangeRoute(ctx context.Context, sessionId string, req *dto.ChangeRouteRequest) (*dto.SessionResponse, error)
	SendMessage(ctx context.Context, sessionId string, req *dto.SendMessageRequest, wait bool) (*dto.SubmitResponse, error)
	QuickReply(ctx context.Context, sessionId string, req *dto.QuickReplyRequest, wait bool) (*dto.SubmitResponse, error)
	ClickAction(ctx context.Context, sessionId string, req *dto.ClickActionRequest) (*dto.ClickActionResponse, error)
	LookupContext(ctx context.Context, path string) *dto.PageContextResponse

	// HandleFrame executes a visitor command received over the WebSocket.
	HandleFrame(ctx context.Context, sessionId string, raw []byte) []internalWS.Frame
}

// WidgetSettings configures every widget the service mounts.
type WidgetSettings struct {
	Catalog     *widget.Catalog
	ScoringMode widget.ScoringMode
	Delay       widget.DelayFunc
}

type widgetService struct {
	settings  WidgetSettings
	sessions  *session.Manager
	pusher    FramePusher
	publisher IPublisherService
	logger    logger.ILogger
}

func NewWidgetService(
	settings WidgetSettings,
	sessions *session.Manager,
	pusher FramePusher,
	publisher IPublisherService,
	log logger.ILogger,
) IWidgetService {
	if settings.Catalog == nil {
		settings.Catalog = widget.DefaultCatalog()
	}
	if settings.Delay == nil {
		settings.Delay = widget.RandomDelay(widget.DefaultHotDelay, widget.DefaultMinDelay, widget.DefaultMaxDelay)
	}
	return &widgetService{
		settings:  settings,
		sessions:  sessions,
		pusher:    pusher,
		publisher: publisher,
		logger:    log,
	}
}

func (s *widgetService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	route := req.Route
	if route == "" {
		route = widget.DefaultRoute
	}

	sess := s.sessions.Create(func(sessionID string) *widget.Widget {
		bridge := &sessionBridge{service: s, sessionID: sessionID}
		w := widget.New(
			widget.WithCatalog(s.settings.Catalog),
			widget.WithScoringMode(s.settings.ScoringMode),
			widget.WithDelay(s.settings.Delay),
			widget.WithRoute(route),
			widget.WithHost(bridge),
			widget.WithObserver(bridge),
		)
		bridge.widget = w
		return w
	})

	snap := sess.Widget.Snapshot()
	s.publishSignal(sess.ID, events.LeadSessionStarted, snap, "", nil)
	// mounting on a high scoring route is the first engagement change
	if snap.Profile.Level != widget.LevelCold {
		s.publishSignal(sess.ID, events.LeadEngagementChanged, snap, widget.LevelCold, nil)
	}
	s.logger.Info(widgetModule, "Session created", map[string]interface{}{
		"session_id": sess.ID,
		"route":      route,
		"score":      snap.Profile.Score,
	})
	return toSessionResponse(sess, snap), nil
}

func (s *widgetService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(sess, sess.Widget.Snapshot()), nil
}

func (s *widgetService) DeleteSession(ctx context.Context, sessionId string) error {
	if !s.sessions.Delete(sessionId) {
		return ErrSessionNotFound
	}
	s.logger.Info(widgetModule, "Session deleted", map[string]interface{}{"session_id": sessionId})
	return nil
}

func (s *widgetService) Open(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	sess.Widget.Open()
	return toSessionResponse(sess, sess.Widget.Snapshot()), nil
}

func (s *widgetService) Close(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	sess.Widget.Close()
	return toSessionResponse(sess, sess.Widget.Snapshot()), nil
}

func (s *widgetService) Minimize(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	if !sess.Widget.Minimize() {
		s.logger.Debug(widgetModule, "Minimize ignored, widget not open", map[string]interface{}{"session_id": sessionId})
	}
	return toSessionResponse(sess, sess.Widget.Snapshot()), nil
}

func (s *widgetService) ChangeRoute(ctx context.Context, sessionId string, req *dto.ChangeRouteRequest) (*dto.SessionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	sess.Widget.ChangeRoute(req.Path)
	snap := sess.Widget.Snapshot()
	s.logger.Debug(widgetModule, "Route changed", map[string]interface{}{
		"session_id": sessionId,
		"route":      req.Path,
		"score":      snap.Profile.Score,
	})
	return toSessionResponse(sess, snap), nil
}

func (s *widgetService) SendMessage(ctx context.Context, sessionId string, req *dto.SendMessageRequest, wait bool) (*dto.SubmitResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	sess.Widget.SetInput(req.Text)
	msg, sent := sess.Widget.Submit()
	return s.submitted(ctx, sess, msg, sent, wait)
}

func (s *widgetService) QuickReply(ctx context.Context, sessionId string, req *dto.QuickReplyRequest, wait bool) (*dto.SubmitResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	msg, sent := sess.Widget.QuickReply(req.Reply)
	return s.submitted(ctx, sess, msg, sent, wait)
}

func (s *widgetService) submitted(ctx context.Context, sess *store.VisitorSession, msg widget.Message, sent bool, wait bool) (*dto.SubmitResponse, error) {
	res := &dto.SubmitResponse{Sent: sent}
	if !sent {
		res.Session = *toSessionResponse(sess, sess.Widget.Snapshot())
		return res, nil
	}
	res.Message = &msg

	if wait {
		if err := waitIdle(ctx, sess.Widget); err != nil {
			return nil, err
		}
	}
	res.Session = *toSessionResponse(sess, sess.Widget.Snapshot())
	return res, nil
}

// waitIdle blocks until the widget has answered every pending message or ctx ends.
func waitIdle(ctx context.Context, w *widget.Widget) error {
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *widgetService) ClickAction(ctx context.Context, sessionId string, req *dto.ClickActionRequest) (*dto.ClickActionResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}

	msg, ok := sess.Widget.Message(req.MessageId)
	if !ok || req.Index < 0 || req.Index >= len(msg.Actions) {
		return nil, ErrActionNotFound
	}
	btn := msg.Actions[req.Index]

	res := &dto.ClickActionResponse{Performed: sess.Widget.ClickAction(btn)}
	if res.Performed {
		if btn.To != "" {
			res.NavigateTo = btn.To
		} else {
			res.ScrollTo = widget.DemoAnchor
		}
	}
	res.Session = *toSessionResponse(sess, sess.Widget.Snapshot())
	return res, nil
}

func (s *widgetService) LookupContext(ctx context.Context, path string) *dto.PageContextResponse {
	_, configured := s.settings.Catalog.Contexts[path]
	pc := s.settings.Catalog.Context(path)
	replies := append([]string{}, pc.QuickReplies...)
	return &dto.PageContextResponse{
		Path:         path,
		Configured:   configured,
		Topic:        pc.Topic,
		Greeting:     pc.Greeting,
		QuickReplies: replies,
	}
}

func (s *widgetService) HandleFrame(ctx context.Context, sessionId string, raw []byte) []internalWS.Frame {
	var cmd dto.WidgetCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return errorFrames("invalid frame: " + err.Error())
	}
	if err := serverutils.ValidateRequest(&cmd); err != nil {
		return errorFrames(err.Error())
	}

	var (
		snap *dto.SessionResponse
		err  error
	)
	switch cmd.Type {
	case "open":
		snap, err = s.Open(ctx, sessionId)
	case "close":
		snap, err = s.Close(ctx, sessionId)
	case "minimize":
		snap, err = s.Minimize(ctx, sessionId)
	case "route":
		req := &dto.ChangeRouteRequest{Path: cmd.Path}
		if err = serverutils.ValidateRequest(req); err == nil {
			snap, err = s.ChangeRoute(ctx, sessionId, req)
		}
	case "submit":
		var res *dto.SubmitResponse
		if res, err = s.SendMessage(ctx, sessionId, &dto.SendMessageRequest{Text: cmd.Text}, false); err == nil {
			snap = &res.Session
		}
	case "quick_reply":
		var res *dto.SubmitResponse
		if res, err = s.QuickReply(ctx, sessionId, &dto.QuickReplyRequest{Reply: cmd.Reply}, false); err == nil {
			snap = &res.Session
		}
	case "action":
		var res *dto.ClickActionResponse
		if res, err = s.ClickAction(ctx, sessionId, &dto.ClickActionRequest{MessageId: cmd.MessageId, Index: cmd.Index}); err == nil {
			snap = &res.Session
		}
	}
	if err != nil {
		s.logger.Warn(widgetModule, "Frame rejected", map[string]interface{}{
			"session_id": sessionId,
			"type":       cmd.Type,
			"error":      err,
		})
		return errorFrames(err.Error())
	}
	return []internalWS.Frame{{Type: dto.FrameSnapshot, Data: snap}}
}

func errorFrames(message string) []internalWS.Frame {
	return []internalWS.Frame{{Type: dto.FrameError, Data: dto.ErrorFrame{Message: message}}}
}

func (s *widgetService) session(sessionId string) (*store.VisitorSession, error) {
	sess, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *widgetService) push(sessionID, frameType string, data interface{}) {
	if s.pusher == nil {
		return
	}
	s.pusher.Send(sessionID, internalWS.Frame{Type: frameType, Data: data})
}

func (s *widgetService) publishSignal(sessionID, eventType string, snap widget.Snapshot, previous widget.Level, action *widget.ActionButton) {
	if s.publisher == nil {
		return
	}
	signal := mapper.NewLeadSignalMessage(sessionID, eventType, snap, previous, action)
	if err := s.publisher.Publish(LeadSignalTopic, signal); err != nil {
		s.logger.Error(widgetModule, "Failed to publish lead signal", map[string]interface{}{
			"session_id": sessionID,
			"type":       eventType,
			"error":      err,
		})
	}
}

func toSessionResponse(sess *store.VisitorSession, snap widget.Snapshot) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionId: sess.ID,
		CreatedAt: sess.CreatedAt,
		Snapshot:  snap,
	}
}

// sessionBridge is the Host and Observer of one mounted widget. It forwards
// engine notifications to the visitor's connections and the lead signal bus.
type sessionBridge struct {
	service   *widgetService
	sessionID string
	widget    *widget.Widget
}

func (b *sessionBridge) Navigate(path string) {
	b.service.push(b.sessionID, dto.FrameNavigate, dto.NavigateFrame{Path: path})
}

func (b *sessionBridge) ScrollTo(anchor string) {
	b.service.push(b.sessionID, dto.FrameScroll, dto.ScrollFrame{Anchor: anchor})
}

func (b *sessionBridge) MessageAppended(msg widget.Message) {
	b.service.push(b.sessionID, dto.FrameMessage, msg)
}

func (b *sessionBridge) TypingChanged(typing bool) {
	b.service.push(b.sessionID, dto.FrameTyping, dto.TypingFrame{Typing: typing})
}

func (b *sessionBridge) StateChanged(state widget.State) {
	b.service.push(b.sessionID, dto.FrameState, dto.StateFrame{State: state})
}

func (b *sessionBridge) ProfileChanged(profile widget.ProfileView, previous widget.Level) {
	if profile.Level == previous {
		return
	}
	b.service.logger.Info(widgetModule, "Lead engagement changed", map[string]interface{}{
		"session_id": b.sessionID,
		"from":       previous,
		"to":         profile.Level,
		"score":      profile.Score,
	})
	b.service.publishSignal(b.sessionID, events.LeadEngagementChanged, b.widget.Snapshot(), previous, nil)
}

func (b *sessionBridge) ActionClicked(btn widget.ActionButton) {
	b.service.publishSignal(b.sessionID, events.LeadActionClicked, b.widget.Snapshot(), "", &btn)
}
