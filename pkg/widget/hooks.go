package widget

// Host receives the outbound requests a widget makes to the page it lives on.
type Host interface {
	Navigate(path string)
	ScrollTo(anchor string)
}

// Observer is notified after every state mutation. Callbacks run outside the
// widget lock, one at a time and in mutation order. They may read the widget
// but must not call its mutating methods.
type Observer interface {
	MessageAppended(msg Message)
	TypingChanged(typing bool)
	StateChanged(state State)
	ProfileChanged(profile ProfileView, previous Level)
	ActionClicked(button ActionButton)
}

type nopHost struct{}

func (nopHost) Navigate(string) {}
func (nopHost) ScrollTo(string) {}

// NopObserver ignores every notification. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) MessageAppended(Message) {}
func (NopObserver) TypingChanged(bool) {}
func (NopObserver) StateChanged(State) {}
func (NopObserver) ProfileChanged(ProfileView, Level) {}
func (NopObserver) ActionClicked(ActionButton) {}

type notifier []func()

func (n *notifier) add(f func()) {
	*n = append(*n, f)
}

func (n notifier) flush() {
	for _, f := range n {
		f()
	}
}
