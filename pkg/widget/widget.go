// Package widget implements the lead-engagement chat widget: a scripted
// dialogue over static page contexts and keyword response tables, plus a
// heuristic lead score for the visitor.
//
// A Widget corresponds to one mounted widget on one page load. All methods are
// safe for concurrent use. Submitted messages are answered asynchronously after
// a simulated typing delay; pending answers are never cancelled.
package widget

import (
	"strings"
	"sync"
	"time"
)

// State is the visibility state of the widget.
type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateMinimized State = "minimized"
)

// Widget is one mounted chat widget.
type Widget struct {
	catalog  *Catalog
	scorer   Scorer
	delay    DelayFunc
	now      func() time.Time
	host     Host
	observer Observer

	mu         sync.Mutex
	idle       *sync.Cond
	outbox     notifier
	queued     uint64
	delivered  uint64
	draining   bool
	state      State
	greeted    bool
	pending    int
	route      string
	topic      string
	input      string
	transcript []Message
	profile    LeadProfile
}

// Option configures a Widget.
type Option func(*Widget)

// WithCatalog sets the page contexts and response tables.
func WithCatalog(c *Catalog) Option {
	return func(w *Widget) { w.catalog = c }
}

// WithScoringMode selects the bonus policy of the lead scorer.
func WithScoringMode(mode ScoringMode) Option {
	return func(w *Widget) { w.scorer = Scorer{Mode: mode} }
}

// WithDelay sets the typing delay policy.
func WithDelay(d DelayFunc) Option {
	return func(w *Widget) { w.delay = d }
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// WithHost sets the receiver of navigation and scroll requests.
func WithHost(h Host) Option {
	return func(w *Widget) { w.host = h }
}

// WithObserver sets the receiver of state notifications.
func WithObserver(o Observer) Option {
	return func(w *Widget) { w.observer = o }
}

// WithRoute sets the route the widget is mounted on. Defaults to DefaultRoute.
func WithRoute(path string) Option {
	return func(w *Widget) { w.route = path }
}

// New mounts a widget. The mount route counts as the first visited page.
// Mounting is not reported to the Observer; the initial profile is read from
// Snapshot.
func New(opts ...Option) *Widget {
	w := &Widget{
		catalog:  DefaultCatalog(),
		scorer:   Scorer{Mode: ScoringIdempotent},
		delay:    RandomDelay(DefaultHotDelay, DefaultMinDelay, DefaultMaxDelay),
		now:      time.Now,
		host:     nopHost{},
		observer: NopObserver{},
		state:    StateClosed,
		route:    DefaultRoute,
		profile:  newLeadProfile(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.idle = sync.NewCond(&w.mu)
	w.visitLocked(w.route)
	return w
}

// Open shows the widget. The first open of a mount greets the visitor with the
// context of the current route.
func (w *Widget) Open() {
	var n notifier
	w.mu.Lock()
	w.setStateLocked(StateOpen, &n)
	if !w.greeted {
		w.greeted = true
		w.appendLocked(SenderBot, w.catalog.Context(w.route).Greeting, nil, &n)
	}
	w.release(n)
}

// Close hides the widget. The transcript and greeting flag are kept.
func (w *Widget) Close() {
	var n notifier
	w.mu.Lock()
	w.setStateLocked(StateClosed, &n)
	w.release(n)
}

// Minimize collapses an open widget to its header. It reports false when the
// widget was not open.
func (w *Widget) Minimize() bool {
	var n notifier
	w.mu.Lock()
	ok := w.state == StateOpen
	if ok {
		w.setStateLocked(StateMinimized, &n)
	}
	w.release(n)
	return ok
}

// ChangeRoute records a navigation of the host page.
func (w *Widget) ChangeRoute(path string) {
	var n notifier
	w.mu.Lock()
	if prev, changed := w.visitLocked(path); changed {
		w.profileChangedLocked(prev, &n)
	}
	w.release(n)
}

// SetInput replaces the contents of the input field.
func (w *Widget) SetInput(text string) {
	w.mu.Lock()
	w.input = text
	w.mu.Unlock()
}

// Submit sends the input field. Whitespace-only input is ignored and reported
// as false. The bot answer is appended after the typing delay.
func (w *Widget) Submit() (Message, bool) {
	var n notifier
	w.mu.Lock()
	msg, ok := w.submitLocked(&n)
	w.release(n)
	return msg, ok
}

// QuickReply types reply into the input field and submits it.
func (w *Widget) QuickReply(reply string) (Message, bool) {
	var n notifier
	w.mu.Lock()
	w.input = reply
	msg, ok := w.submitLocked(&n)
	w.release(n)
	return msg, ok
}

// ClickAction activates an action button. It reports false for inert buttons.
func (w *Widget) ClickAction(btn ActionButton) bool {
	switch {
	case btn.To != "":
		w.host.Navigate(btn.To)
	case btn.Action == ActionScrollToDemo:
		w.host.ScrollTo(DemoAnchor)
	default:
		return false
	}

	var n notifier
	w.mu.Lock()
	n.add(func() { w.observer.ActionClicked(btn) })
	w.setStateLocked(StateClosed, &n)
	w.release(n)
	return true
}

// Wait blocks until every pending answer has been appended and every
// notification queued so far has been delivered.
func (w *Widget) Wait() {
	w.mu.Lock()
	for w.pending > 0 || w.delivered < w.queued {
		w.idle.Wait()
	}
	w.mu.Unlock()
}

// release queues n behind every notification committed earlier and unlocks
// w.mu once all of them have been delivered. Observer callbacks run on one
// goroutine at a time, in the order their mutations took the lock.
func (w *Widget) release(n notifier) {
	w.outbox = append(w.outbox, n...)
	w.queued += uint64(len(n))
	seq := w.queued

	for w.delivered < seq {
		if w.draining {
			w.idle.Wait()
			continue
		}
		w.draining = true
		batch := w.outbox
		w.outbox = nil
		w.mu.Unlock()
		batch.flush()
		w.mu.Lock()
		w.delivered += uint64(len(batch))
		w.draining = false
		w.idle.Broadcast()
	}
	w.mu.Unlock()
}

// Message looks up a transcript message by id.
func (w *Widget) Message(id string) (Message, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range w.transcript {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// visitLocked moves the widget to path. It reports the level before the visit
// and whether the profile changed.
func (w *Widget) visitLocked(path string) (Level, bool) {
	w.route = path
	w.topic = w.catalog.Context(path).Topic
	if w.profile.HasVisited(path) {
		return "", false
	}
	prev := w.profile.Level()
	w.profile.Visited[path] = struct{}{}
	w.scorer.Rescore(&w.profile)
	return prev, true
}

func (w *Widget) submitLocked(n *notifier) (Message, bool) {
	raw := w.input
	if strings.TrimSpace(raw) == "" {
		return Message{}, false
	}

	msg := w.appendLocked(SenderUser, raw, nil, n)
	w.input = ""

	w.pending++
	if w.pending == 1 {
		n.add(func() { w.observer.TypingChanged(true) })
	}

	prev := w.profile.Level()
	w.profile.Interests = append(w.profile.Interests, strings.ToLower(raw))
	w.scorer.Rescore(&w.profile)
	w.profileChangedLocked(prev, n)

	go w.respond(w.topic, raw, w.delay(w.profile.Level()))
	return msg, true
}

func (w *Widget) respond(topic, input string, delay time.Duration) {
	if delay > 0 {
		time.Sleep(delay)
	}
	reply := w.catalog.Match(topic, input)

	var n notifier
	w.mu.Lock()
	w.pending--
	if w.pending == 0 {
		n.add(func() { w.observer.TypingChanged(false) })
	}
	w.appendLocked(SenderBot, reply.Content, reply.Actions, &n)
	w.release(n)
}

func (w *Widget) appendLocked(sender Sender, content string, actions []ActionButton, n *notifier) Message {
	msg := newMessage(sender, content, actions, w.now())
	w.transcript = append(w.transcript, msg)
	n.add(func() { w.observer.MessageAppended(msg) })
	return msg
}

func (w *Widget) setStateLocked(s State, n *notifier) {
	if w.state == s {
		return
	}
	w.state = s
	n.add(func() { w.observer.StateChanged(s) })
}

func (w *Widget) profileChangedLocked(prev Level, n *notifier) {
	view := w.profile.view()
	n.add(func() { w.observer.ProfileChanged(view, prev) })
}
