package widget

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	mu        sync.Mutex
	navigated []string
	scrolled  []string
}

func (h *recordingHost) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.navigated = append(h.navigated, path)
}

func (h *recordingHost) ScrollTo(anchor string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scrolled = append(h.scrolled, anchor)
}

type recordingObserver struct {
	NopObserver
	mu       sync.Mutex
	events   []string
	profiles []ProfileView
	clicks   []ActionButton
}

func (o *recordingObserver) record(e string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) MessageAppended(m Message) { o.record("message:" + string(m.Sender)) }
func (o *recordingObserver) StateChanged(s State)      { o.record("state:" + string(s)) }

func (o *recordingObserver) TypingChanged(typing bool) {
	if typing {
		o.record("typing:on")
	} else {
		o.record("typing:off")
	}
}

func (o *recordingObserver) ProfileChanged(p ProfileView, _ Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.profiles = append(o.profiles, p)
}

func (o *recordingObserver) ActionClicked(b ActionButton) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clicks = append(o.clicks, b)
}

func (o *recordingObserver) Events() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.events...)
}

func newTestWidget(opts ...Option) *Widget {
	return New(append([]Option{WithDelay(FixedDelay(0))}, opts...)...)
}

func TestNewWidgetStartsClosedOnDefaultRoute(t *testing.T) {
	w := newTestWidget()
	snap := w.Snapshot()

	assert.Equal(t, StateClosed, snap.State)
	assert.False(t, snap.Greeted)
	assert.Empty(t, snap.Transcript)
	assert.Equal(t, DefaultRoute, snap.Route)
	assert.Equal(t, GeneralTopic, snap.Topic)
	assert.Equal(t, 0, snap.Profile.Score)
	assert.Equal(t, []string{DefaultRoute}, snap.Profile.VisitedPages)
}

func TestUnconfiguredRouteUsesDefaultContext(t *testing.T) {
	catalog := DefaultCatalog()
	w := newTestWidget(WithRoute("/blog/some-post"))
	w.Open()

	snap := w.Snapshot()
	def := catalog.Context(DefaultRoute)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, def.Greeting, snap.Transcript[0].Content)
	assert.Equal(t, def.QuickReplies, snap.QuickReplies)
	assert.Equal(t, def.Topic, snap.Topic)
}

func TestOpenGreetsOncePerMount(t *testing.T) {
	catalog := DefaultCatalog()
	w := newTestWidget(WithRoute("/contact"))

	w.Open()
	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 1)
	greeting := snap.Transcript[0]
	assert.Equal(t, SenderBot, greeting.Sender)
	assert.Equal(t, catalog.Context("/contact").Greeting, greeting.Content)
	assert.Empty(t, greeting.Actions)
	assert.True(t, snap.Greeted)

	w.Close()
	w.ChangeRoute("/pricing")
	w.Open()
	w.Minimize()
	w.Open()

	snap = w.Snapshot()
	assert.Len(t, snap.Transcript, 1)
	assert.True(t, snap.Greeted)
	assert.Equal(t, StateOpen, snap.State)
}

func TestGreetingUsesRouteActiveAtOpen(t *testing.T) {
	w := newTestWidget()
	w.ChangeRoute("/pricing")
	w.Open()

	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, DefaultCatalog().Context("/pricing").Greeting, snap.Transcript[0].Content)
}

func TestVisibilityTransitions(t *testing.T) {
	obs := &recordingObserver{}
	w := newTestWidget(WithObserver(obs))

	assert.False(t, w.Minimize(), "closed widget cannot minimize")
	assert.Equal(t, StateClosed, w.State())

	w.Open()
	assert.True(t, w.Minimize())
	assert.Equal(t, StateMinimized, w.State())

	w.Close()
	assert.Equal(t, StateClosed, w.State())
	w.Close()

	assert.Equal(t, []string{"state:open", "message:bot", "state:minimized", "state:closed"}, obs.Events())
}

func TestRouteChangeDoesNotTouchTranscript(t *testing.T) {
	w := newTestWidget()
	w.Open()
	w.ChangeRoute("/solutions")

	snap := w.Snapshot()
	assert.Len(t, snap.Transcript, 1)
	assert.Equal(t, "solutions", snap.Topic)
	assert.Equal(t, DefaultCatalog().Context("/solutions").QuickReplies, snap.QuickReplies)
}

func TestDuplicateRouteVisitIsNotRescored(t *testing.T) {
	obs := &recordingObserver{}
	w := newTestWidget(WithRoute("/contact"), WithObserver(obs))
	assert.Equal(t, 20, w.Profile().Score)

	w.ChangeRoute("/")
	w.ChangeRoute("/contact")
	w.ChangeRoute("/")

	p := w.Profile()
	assert.Equal(t, []string{"/", "/contact"}, p.VisitedPages)
	assert.Equal(t, 20, p.Score)
	assert.Len(t, obs.profiles, 1, "only the first visit of / changes the profile")
}

func TestPlatformDemoIsNotHighIntent(t *testing.T) {
	w := newTestWidget()
	w.ChangeRoute("/platform-demo")

	p := w.Profile()
	assert.Equal(t, []string{"/", "/platform-demo"}, p.VisitedPages)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, LevelCold, p.Level)

	w.ChangeRoute("/platform-demo/tour")
	assert.Equal(t, breadthBonus, w.Profile().Score, "only breadth is earned")
}

func TestScoringAcrossRoutes(t *testing.T) {
	tests := []struct {
		name string
		mode ScoringMode
		want []int
	}{
		{name: "idempotent", mode: ScoringIdempotent, want: []int{20, 40, 65}},
		{name: "compat", mode: ScoringCompat, want: []int{20, 60, 125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWidget(WithRoute("/contact"), WithScoringMode(tt.mode))
			got := []int{w.Profile().Score}
			w.ChangeRoute("/pricing")
			got = append(got, w.Profile().Score)
			w.ChangeRoute("/solutions")
			got = append(got, w.Profile().Score)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, LevelHot, w.Profile().Level)
		})
	}
}

func TestWhitespaceSubmitIsIgnored(t *testing.T) {
	obs := &recordingObserver{}
	w := newTestWidget(WithObserver(obs))
	w.Open()
	before := w.Snapshot()

	for _, input := range []string{"", "   ", "\n\t "} {
		w.SetInput(input)
		_, ok := w.Submit()
		assert.False(t, ok)
	}
	w.Wait()

	after := w.Snapshot()
	assert.Equal(t, before.Transcript, after.Transcript)
	assert.Equal(t, before.Profile, after.Profile)
	assert.False(t, after.Typing)
	assert.Empty(t, obs.profiles)
}

func TestSubmitScheduleDemoOnHome(t *testing.T) {
	w := newTestWidget()
	w.Open()

	w.SetInput("Schedule a demo")
	sent, ok := w.Submit()
	require.True(t, ok)
	assert.Equal(t, SenderUser, sent.Sender)
	assert.Equal(t, "Schedule a demo", sent.Content)
	assert.Empty(t, w.Snapshot().Input)

	w.Wait()
	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 3)

	reply := snap.Transcript[2]
	want := DefaultCatalog().Responses[GeneralTopic][0]
	require.Equal(t, "schedule a demo", want.Keyword)
	assert.Equal(t, SenderBot, reply.Sender)
	assert.Equal(t, want.Content, reply.Content)
	assert.Equal(t, []ActionButton{
		{Label: "Schedule Now", To: "/platform-demo", Variant: VariantPrimary},
		{Label: "Talk to Sales", To: "/contact", Variant: VariantSecondary},
	}, reply.Actions)
	assert.Equal(t, []string{"schedule a demo"}, snap.Profile.Interests)
	assert.False(t, snap.Typing)
}

func TestSubmitKeepsRawTextAndLowersInterest(t *testing.T) {
	w := newTestWidget()
	w.SetInput("  What SERVICES do you offer?  ")
	sent, ok := w.Submit()
	require.True(t, ok)
	w.Wait()

	assert.Equal(t, "  What SERVICES do you offer?  ", sent.Content)
	assert.Equal(t, []string{"  what services do you offer?  "}, w.Profile().Interests)
}

func TestUnmatchedInputGetsFallback(t *testing.T) {
	w := newTestWidget(WithRoute("/pricing"))
	w.SetInput("zxcvbnm")
	w.Submit()
	w.Wait()

	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 2)
	fallback := DefaultCatalog().Fallback
	assert.Equal(t, fallback.Content, snap.Transcript[1].Content)
	assert.Equal(t, fallback.Actions, snap.Transcript[1].Actions)
}

func TestQuickReplySubmitsLiteralText(t *testing.T) {
	w := newTestWidget(WithRoute("/pricing"))
	w.SetInput("draft that gets replaced")

	sent, ok := w.QuickReply("Do you offer a pilot?")
	require.True(t, ok)
	assert.Equal(t, "Do you offer a pilot?", sent.Content)
	w.Wait()

	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 2)
	assert.Contains(t, snap.Transcript[1].Content, "4-week pilot")
	assert.Empty(t, snap.Input)
}

func TestTopicIsCapturedAtSubmission(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	delay := func(Level) time.Duration {
		started <- struct{}{}
		return 20 * time.Millisecond
	}
	w := New(WithDelay(delay), WithRoute("/pricing"))

	go func() {
		<-started
		w.ChangeRoute("/solutions")
		close(release)
	}()
	w.SetInput("is there a pilot")
	w.Submit()
	<-release
	w.Wait()

	snap := w.Snapshot()
	assert.Equal(t, "solutions", snap.Topic)
	assert.Contains(t, snap.Transcript[1].Content, "pilot")
}

func TestHotLeadsGetShortDelay(t *testing.T) {
	var mu sync.Mutex
	var levels []Level
	delay := func(l Level) time.Duration {
		mu.Lock()
		defer mu.Unlock()
		levels = append(levels, l)
		return 0
	}

	w := New(WithDelay(delay))
	w.QuickReply("hello")
	for _, p := range []string{"/contact", "/pricing", "/assessment"} {
		w.ChangeRoute(p)
	}
	w.QuickReply("hello again")
	w.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Level{LevelCold, LevelHot}, levels)
}

func TestTypingStateAroundDelayedAnswer(t *testing.T) {
	obs := &recordingObserver{}
	w := New(WithDelay(FixedDelay(30*time.Millisecond)), WithObserver(obs))
	w.Open()

	w.QuickReply("hello")
	assert.True(t, w.Snapshot().Typing)

	// other operations stay responsive while the answer is pending
	w.Close()
	w.ChangeRoute("/about")
	assert.Equal(t, StateClosed, w.State())

	w.Wait()
	snap := w.Snapshot()
	assert.False(t, snap.Typing)
	require.Len(t, snap.Transcript, 3, "answer is delivered even though the widget was closed")

	assert.Equal(t, []string{
		"state:open", "message:bot",
		"message:user", "typing:on",
		"state:closed",
		"typing:off", "message:bot",
	}, obs.Events())
}

func TestOverlappingSubmissionsKeepTyping(t *testing.T) {
	w := New(WithDelay(func(Level) time.Duration { return 20 * time.Millisecond }))
	w.QuickReply("hello")
	w.QuickReply("what does it cost")
	assert.True(t, w.Snapshot().Typing)

	w.Wait()
	snap := w.Snapshot()
	assert.False(t, snap.Typing)
	assert.Len(t, snap.Transcript, 4)
}

// stallingObserver holds the first typing:off callback until unblock is closed.
type stallingObserver struct {
	recordingObserver
	once    sync.Once
	reached chan struct{}
	unblock chan struct{}
}

func (o *stallingObserver) TypingChanged(typing bool) {
	if !typing {
		o.once.Do(func() {
			close(o.reached)
			<-o.unblock
		})
	}
	o.recordingObserver.TypingChanged(typing)
}

func TestNotificationsFollowMutationOrder(t *testing.T) {
	obs := &stallingObserver{reached: make(chan struct{}), unblock: make(chan struct{})}
	w := newTestWidget(WithObserver(obs))

	w.QuickReply("hello")
	<-obs.reached

	done := make(chan struct{})
	go func() {
		w.QuickReply("what does it cost")
		close(done)
	}()
	require.Eventually(t, func() bool {
		return len(w.Snapshot().Transcript) == 3
	}, time.Second, time.Millisecond, "second submission is applied while the first answer is still being delivered")

	close(obs.unblock)
	<-done
	w.Wait()

	assert.Equal(t, []string{
		"message:user", "typing:on",
		"typing:off", "message:bot",
		"message:user", "typing:on",
		"typing:off", "message:bot",
	}, obs.Events())
	assert.False(t, w.Snapshot().Typing)
}

func TestClickActionNavigatesAndCloses(t *testing.T) {
	host := &recordingHost{}
	obs := &recordingObserver{}
	w := newTestWidget(WithHost(host), WithObserver(obs))
	w.Open()

	ok := w.ClickAction(ActionButton{Label: "Take the Assessment", To: "/assessment", Variant: VariantPrimary})
	assert.True(t, ok)
	assert.Equal(t, []string{"/assessment"}, host.navigated)
	assert.Equal(t, StateClosed, w.State())
	assert.Len(t, obs.clicks, 1)
}

func TestClickActionTargetWinsOverSymbolicAction(t *testing.T) {
	host := &recordingHost{}
	w := newTestWidget(WithHost(host))
	w.Open()

	w.ClickAction(ActionButton{Label: "both", To: "/pricing", Action: ActionScrollToDemo})
	assert.Equal(t, []string{"/pricing"}, host.navigated)
	assert.Empty(t, host.scrolled)
}

func TestClickActionScrollToDemo(t *testing.T) {
	host := &recordingHost{}
	w := newTestWidget(WithHost(host))
	w.Open()

	assert.True(t, w.ClickAction(ActionButton{Label: "Watch", Action: ActionScrollToDemo}))
	assert.Equal(t, []string{DemoAnchor}, host.scrolled)
	assert.Empty(t, host.navigated)
	assert.Equal(t, StateClosed, w.State())
}

func TestInertActionDoesNothing(t *testing.T) {
	host := &recordingHost{}
	obs := &recordingObserver{}
	w := newTestWidget(WithHost(host), WithObserver(obs))
	w.Open()

	for _, btn := range []ActionButton{{Label: "nothing"}, {Label: "unknown", Action: "open_chat"}} {
		assert.True(t, btn.Inert())
		assert.False(t, w.ClickAction(btn))
	}
	assert.Equal(t, StateOpen, w.State())
	assert.Empty(t, host.navigated)
	assert.Empty(t, host.scrolled)
	assert.Empty(t, obs.clicks)
}

func TestMessageLookupAndOrdering(t *testing.T) {
	w := newTestWidget()
	w.Open()
	w.QuickReply("hello")
	w.Wait()

	snap := w.Snapshot()
	require.Len(t, snap.Transcript, 3)
	senders := []Sender{}
	for _, m := range snap.Transcript {
		senders = append(senders, m.Sender)
	}
	assert.Equal(t, []Sender{SenderBot, SenderUser, SenderBot}, senders)

	got, ok := w.Message(snap.Transcript[2].ID)
	require.True(t, ok)
	assert.Equal(t, snap.Transcript[2], got)

	_, ok = w.Message("missing")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWidget()
	w.Open()
	snap := w.Snapshot()
	snap.Transcript[0].Content = "mutated"
	snap.Profile.VisitedPages[0] = "/mutated"

	fresh := w.Snapshot()
	assert.NotEqual(t, "mutated", fresh.Transcript[0].Content)
	assert.Equal(t, []string{"/"}, fresh.Profile.VisitedPages)
}
