package reader

// DefaultHideThreshold is how far into a chapter scrolling down starts
// hiding the chrome.
const DefaultHideThreshold = 100

// Progress returns floor(scrollTop / (docHeight - viewport) * 100), clamped
// to [0, 100]. A chapter that fits in the viewport is fully read.
func Progress(scrollTop, docHeight, viewport int) int {
	scrollable := docHeight - viewport
	if scrollable <= 0 {
		return 100
	}
	p := scrollTop * 100 / scrollable
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Tracker derives read progress and chrome visibility from scroll samples.
// It only reacts while attached to a reader.
type Tracker struct {
	HideThreshold int

	attached      bool
	generation    int
	lastScrollTop int
	progress      int
	chromeVisible bool
}

func NewTracker(hideThreshold int) *Tracker {
	if hideThreshold <= 0 {
		hideThreshold = DefaultHideThreshold
	}
	return &Tracker{HideThreshold: hideThreshold, chromeVisible: true}
}

// Attach starts a reading session and returns its release function.
// Releasing a session that has been superseded does nothing.
func (t *Tracker) Attach() (release func()) {
	t.generation++
	gen := t.generation
	t.attached = true
	t.lastScrollTop = 0
	t.progress = 0
	t.chromeVisible = true
	return func() {
		if t.generation == gen {
			t.attached = false
		}
	}
}

func (t *Tracker) Attached() bool {
	return t.attached
}

// Sample records one scroll position.
func (t *Tracker) Sample(scrollTop, docHeight, viewport int) {
	if !t.attached {
		return
	}
	t.progress = Progress(scrollTop, docHeight, viewport)
	t.chromeVisible = !(scrollTop > t.lastScrollTop && scrollTop > t.HideThreshold)
	t.lastScrollTop = max(scrollTop, 0)
}

// Toggle flips chrome visibility until the next sample.
func (t *Tracker) Toggle() {
	if !t.attached {
		return
	}
	t.chromeVisible = !t.chromeVisible
}

func (t *Tracker) Progress() int {
	return t.progress
}

func (t *Tracker) ChromeVisible() bool {
	return t.chromeVisible
}
