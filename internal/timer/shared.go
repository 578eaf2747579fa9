package timer

import "sync"

// Presentation is where a timer is shown.
type Presentation int

const (
	Regular Presentation = iota
	FullScreen
)

// Snapshot is the progress handed between presentations.
type Snapshot struct {
	RemainingSeconds int
	Running          bool
}

// Shared holds the authoritative countdown while views come and go. At most
// one timer is attached at a time; every change of the attached timer is
// mirrored into the snapshot.
type Shared struct {
	mu    sync.Mutex
	snap  Snapshot
	owner *Timer
}

func NewShared(initial Snapshot) *Shared {
	return &Shared{snap: initial}
}

// Attach seeds t from the snapshot and makes it the owner. The FullScreen
// presentation always starts the countdown. A previous owner loses its
// pending alarm and stops mirroring.
func (s *Shared) Attach(t *Timer, p Presentation) Snapshot {
	s.mu.Lock()
	prev := s.owner
	snap := s.snap
	s.owner = t
	s.mu.Unlock()

	if prev != nil && prev != t {
		prev.observe(nil)
		prev.CancelAlarm()
	}

	t.observe(nil)
	t.CancelAlarm()
	if t.state.Editing {
		t.state.Editing = false
		t.state.PendingEdit = ""
		t.wasRunning = false
	}
	t.state.RemainingSeconds = snap.RemainingSeconds
	t.state.Running = false
	if snap.Running || p == FullScreen {
		t.Start()
	}
	t.observe(s.mirror)

	snap = Snapshot{RemainingSeconds: t.state.RemainingSeconds, Running: t.state.Running}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap
}

// Detach writes t's progress back and cancels its alarm. Detaching a timer
// that is not the owner does nothing.
func (s *Shared) Detach(t *Timer) {
	s.mu.Lock()
	if s.owner != t {
		s.mu.Unlock()
		return
	}
	s.owner = nil
	s.snap = Snapshot{RemainingSeconds: t.state.RemainingSeconds, Running: t.state.Running}
	s.mu.Unlock()

	t.observe(nil)
	t.CancelAlarm()
}

// Snapshot returns the last mirrored progress.
func (s *Shared) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Owner returns the attached timer, if any.
func (s *Shared) Owner() *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

func (s *Shared) mirror(st State) {
	s.mu.Lock()
	s.snap = Snapshot{RemainingSeconds: st.RemainingSeconds, Running: st.Running}
	s.mu.Unlock()
}
