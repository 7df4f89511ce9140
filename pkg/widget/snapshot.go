package widget

// ProfileView is a read-only copy of a lead profile.
type ProfileView struct {
	Score        int      `json:"score"`
	Level        Level    `json:"level"`
	VisitedPages []string `json:"visited_pages"`
	Interests    []string `json:"interests"`
}

func (p LeadProfile) view() ProfileView {
	c := p.clone()
	return ProfileView{
		Score:        c.Score,
		Level:        c.Level(),
		VisitedPages: c.VisitedPages(),
		Interests:    c.Interests,
	}
}

// Snapshot is a consistent copy of the widget state.
type Snapshot struct {
	State        State       `json:"state"`
	Greeted      bool        `json:"greeted"`
	Typing       bool        `json:"typing"`
	Route        string      `json:"route"`
	Topic        string      `json:"topic"`
	Input        string      `json:"input"`
	QuickReplies []string    `json:"quick_replies"`
	Transcript   []Message   `json:"transcript"`
	Profile      ProfileView `json:"profile"`
}

// Snapshot copies the current state.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	transcript := make([]Message, len(w.transcript))
	copy(transcript, w.transcript)

	return Snapshot{
		State:        w.state,
		Greeted:      w.greeted,
		Typing:       w.pending > 0,
		Route:        w.route,
		Topic:        w.topic,
		Input:        w.input,
		QuickReplies: append([]string{}, w.catalog.Context(w.route).QuickReplies...),
		Transcript:   transcript,
		Profile:      w.profile.view(),
	}
}

// Profile returns a copy of the lead profile.
func (w *Widget) Profile() ProfileView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile.view()
}

// State returns the visibility state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}
