// Package timer implements the focus countdown: a one-second tick driven
// state machine with custom edits and a repeating end-of-session alarm.
package timer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMinutes is the countdown length used when nothing else is chosen.
const DefaultMinutes = 25

// Presets are the quick-pick durations in minutes.
var Presets = []int{5, 15, 25, 45}

// RepeatDelays are the offsets, after expiry, of the alarm repeats.
var RepeatDelays = []time.Duration{1700 * time.Millisecond, 3400 * time.Millisecond}

// Alarm makes the end-of-session sound.
type Alarm interface {
	Play()
	Stop()
}

// Stopper cancels a scheduled callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules with time.AfterFunc.
var SystemScheduler Scheduler = realScheduler{}

// State is the observable state of a Timer.
type State struct {
	RemainingSeconds int
	SelectedMinutes  int
	Running          bool
	Editing          bool
	PendingEdit      string
}

// Timer is not safe for concurrent use except for its alarm bookkeeping,
// which may be touched by scheduler goroutines.
type Timer struct {
	state      State
	wasRunning bool
	elapsed    int

	alarm Alarm
	sched Scheduler

	mu      sync.Mutex
	pending []Stopper
	gen     int

	onChange func(State)
	onExpire func(seconds int)
}

// Option configures a Timer.
type Option func(*Timer)

// WithScheduler replaces the scheduler used for alarm repeats.
func WithScheduler(s Scheduler) Option {
	return func(t *Timer) { t.sched = s }
}

// OnExpire registers fn to run once per expiry with the number of seconds
// counted down since the countdown was last loaded.
func OnExpire(fn func(seconds int)) Option {
	return func(t *Timer) { t.onExpire = fn }
}

// New returns a paused timer loaded with minutes (DefaultMinutes if < 1).
func New(minutes int, alarm Alarm, opts ...Option) *Timer {
	if minutes < 1 {
		minutes = DefaultMinutes
	}
	t := &Timer{
		state: State{RemainingSeconds: minutes * 60, SelectedMinutes: minutes},
		alarm: alarm,
		sched: SystemScheduler,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) State() State { return t.state }

func (t *Timer) Remaining() int { return t.state.RemainingSeconds }

func (t *Timer) Running() bool { return t.state.Running }

func (t *Timer) Editing() bool { return t.state.Editing }

// Start begins counting down. It is a no-op while running or editing. A
// countdown sitting at zero is reloaded from the selected duration first.
func (t *Timer) Start() {
	if t.state.Running || t.state.Editing {
		return
	}
	t.CancelAlarm()
	if t.state.RemainingSeconds == 0 {
		t.state.RemainingSeconds = t.state.SelectedMinutes * 60
		t.elapsed = 0
	}
	t.state.Running = true
	t.changed()
}

func (t *Timer) Pause() {
	if !t.state.Running {
		return
	}
	t.state.Running = false
	t.changed()
}

// Toggle starts a paused timer or pauses a running one.
func (t *Timer) Toggle() {
	if t.state.Running {
		t.Pause()
		return
	}
	t.Start()
}

// Reset pauses and reloads the selected duration.
func (t *Timer) Reset() {
	t.CancelAlarm()
	t.state.Running = false
	t.state.RemainingSeconds = t.state.SelectedMinutes * 60
	t.elapsed = 0
	t.changed()
}

// Tick advances the countdown by one second. It reports whether the
// countdown expired on this tick.
func (t *Timer) Tick() bool {
	if !t.state.Running || t.state.RemainingSeconds <= 0 {
		return false
	}
	prev := t.state.RemainingSeconds
	t.state.RemainingSeconds--
	t.elapsed++
	expired := prev > 0 && t.state.RemainingSeconds == 0
	if expired {
		t.state.Running = false
	}
	t.changed()
	if expired {
		t.ring()
		if t.onExpire != nil {
			t.onExpire(t.elapsed)
		}
		t.elapsed = 0
	}
	return expired
}

// SelectDuration loads a new countdown of minutes. The running flag is kept.
func (t *Timer) SelectDuration(minutes int) {
	if minutes < 1 {
		return
	}
	t.CancelAlarm()
	t.state.SelectedMinutes = minutes
	t.state.RemainingSeconds = minutes * 60
	t.elapsed = 0
	t.changed()
}

// StartEdit pauses the countdown and enters edit mode.
func (t *Timer) StartEdit() {
	if t.state.Editing {
		return
	}
	t.CancelAlarm()
	t.wasRunning = t.state.Running
	t.state.Running = false
	t.state.Editing = true
	t.state.PendingEdit = FormatClock(t.state.RemainingSeconds)
	t.changed()
}

// SetPendingEdit records the text typed so far.
func (t *Timer) SetPendingEdit(text string) {
	if !t.state.Editing {
		return
	}
	t.state.PendingEdit = text
}

// CommitEdit applies text as "M" or "M:SS". Unparseable text leaves the time
// untouched. Either way the pre-edit running flag is restored. It reports
// whether the edit was applied.
func (t *Timer) CommitEdit(text string) bool {
	if !t.state.Editing {
		return false
	}
	total, err := ParseClock(strings.TrimSpace(text))
	applied := err == nil
	if applied {
		if total < 1 {
			total = 1
		}
		t.state.RemainingSeconds = total
		t.state.SelectedMinutes = (total + 59) / 60
		t.elapsed = 0
	}
	t.endEdit()
	return applied
}

// CancelEdit leaves edit mode without changing the time.
func (t *Timer) CancelEdit() {
	if !t.state.Editing {
		return
	}
	t.endEdit()
}

func (t *Timer) endEdit() {
	t.state.Editing = false
	t.state.PendingEdit = ""
	t.state.Running = t.wasRunning
	t.wasRunning = false
	t.changed()
}

// Progress is the fraction of the selected duration already counted down,
// clamped to [0, 1].
func (t *Timer) Progress() float64 {
	total := t.state.SelectedMinutes * 60
	if total <= 0 {
		return 0
	}
	p := float64(total-t.state.RemainingSeconds) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t *Timer) ring() {
	if t.alarm == nil {
		return
	}
	t.alarm.Play()

	t.mu.Lock()
	defer t.mu.Unlock()
	gen := t.gen
	for _, d := range RepeatDelays {
		stop := t.sched.AfterFunc(d, func() {
			// Held across Play so a concurrent CancelAlarm either waits for
			// this ring or suppresses it.
			t.mu.Lock()
			defer t.mu.Unlock()
			if gen == t.gen {
				t.alarm.Play()
			}
		})
		t.pending = append(t.pending, stop)
	}
}

// CancelAlarm stops pending repeats and silences the alarm. Calling it when
// nothing is pending is harmless.
func (t *Timer) CancelAlarm() {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.gen++
	t.mu.Unlock()

	for _, s := range pending {
		s.Stop()
	}
	if t.alarm != nil && len(pending) > 0 {
		t.alarm.Stop()
	}
}

// AlarmPending reports whether alarm repeats are still scheduled.
func (t *Timer) AlarmPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) > 0
}

func (t *Timer) observe(fn func(State)) {
	t.onChange = fn
}

func (t *Timer) changed() {
	if t.onChange != nil {
		t.onChange(t.state)
	}
}

var clockRe = regexp.MustCompile(`^(\d{1,4})(?::(\d{1,2}))?$`)

// ParseClock parses "M" or "M:SS" into seconds.
func ParseClock(text string) (int, error) {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("parse clock %q: want M or M:SS", text)
	}
	mins, _ := strconv.Atoi(m[1])
	secs := 0
	if m[2] != "" {
		secs, _ = strconv.Atoi(m[2])
		if secs > 59 {
			return 0, fmt.Errorf("parse clock %q: seconds out of range", text)
		}
	}
	return mins*60 + secs, nil
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
