package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/pkg/mailer"
	"lead-engagement-be/internal/repository"
	internalWS "lead-engagement-be/internal/websocket"
	"lead-engagement-be/pkg/events"
	pktNats "lead-engagement-be/pkg/nats"
)

type fakePusher struct {
	mu     sync.Mutex
	frames map[string][]internalWS.Frame
}

func newFakePusher() *fakePusher {
	return &fakePusher{frames: make(map[string][]internalWS.Frame)}
}

func (p *fakePusher) Send(sessionID string, frame internalWS.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames[sessionID] = append(p.frames[sessionID], frame)
}

func (p *fakePusher) types(sessionID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.frames[sessionID]))
	for _, f := range p.frames[sessionID] {
		out = append(out, f.Type)
	}
	return out
}

type fakeSignalPublisher struct {
	mu      sync.Mutex
	signals []dto.LeadSignalMessage
}

func (p *fakeSignalPublisher) Publish(topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sig, ok := payload.(dto.LeadSignalMessage); ok {
		p.signals = append(p.signals, sig)
	}
	return nil
}

func (p *fakeSignalPublisher) ofType(eventType string) []dto.LeadSignalMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []dto.LeadSignalMessage
	for _, s := range p.signals {
		if s.Type == eventType {
			out = append(out, s)
		}
	}
	return out
}

type fakeLeadRepo struct {
	mu         sync.Mutex
	created    []*model.LeadSignal
	createErrs []error
	calls      int

	listFilter repository.LeadSignalFilter
	listLimit  int
	listOffset int
	listed     []model.LeadSignal

	scores  []model.SessionScore
	topics  []model.TopicCount
	actions int64
}

func (r *fakeLeadRepo) Create(ctx context.Context, signal *model.LeadSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.created = append(r.created, signal)
	return nil
}

func (r *fakeLeadRepo) stored() []*model.LeadSignal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LeadSignal(nil), r.created...)
}

func (r *fakeLeadRepo) List(ctx context.Context, filter repository.LeadSignalFilter, limit, offset int) ([]model.LeadSignal, int64, error) {
	r.listFilter, r.listLimit, r.listOffset = filter, limit, offset
	return r.listed, int64(len(r.listed)), nil
}

func (r *fakeLeadRepo) SessionScores(ctx context.Context) ([]model.SessionScore, error) {
	return r.scores, nil
}

func (r *fakeLeadRepo) CountByType(ctx context.Context, eventType string) (int64, error) {
	if eventType != events.LeadActionClicked {
		return 0, errors.New("unexpected event type")
	}
	return r.actions, nil
}

func (r *fakeLeadRepo) SessionsByTopic(ctx context.Context) ([]model.TopicCount, error) {
	return r.topics, nil
}

type fakeEventPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return p.err
}

func (p *fakeEventPublisher) sent() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.published...)
}

type fakeExporter struct {
	mu   sync.Mutex
	keys []string
	raw  [][]byte
	err  error
}

func (e *fakeExporter) Send(ctx context.Context, key string, value any) error {
	data, _ := json.Marshal(value)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = append(e.keys, key)
	e.raw = append(e.raw, data)
	return e.err
}

func (e *fakeExporter) sentKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.keys...)
}

type fakeMailer struct {
	to     []string
	alerts []mailer.HotLeadAlert
	err    error
}

func (m *fakeMailer) SendHotLeadAlert(toEmail string, alert mailer.HotLeadAlert) error {
	m.to = append(m.to, toEmail)
	m.alerts = append(m.alerts, alert)
	return m.err
}

type fakeSubscriber struct {
	eventType string
	durable   string
	handler   pktNats.EventHandler
}

func (s *fakeSubscriber) Subscribe(ctx context.Context, eventType string, durableName string, handler pktNats.EventHandler) error {
	s.eventType, s.durable, s.handler = eventType, durableName, handler
	return nil
}
