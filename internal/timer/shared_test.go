package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachSeedsFromSnapshot(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 600})
	regular, _, _ := newTestTimer(t, 25)

	got := sh.Attach(regular, Regular)
	assert.Equal(t, Snapshot{RemainingSeconds: 600}, got)
	assert.Equal(t, 600, regular.Remaining())
	assert.False(t, regular.Running())
	assert.Same(t, regular, sh.Owner())
}

func TestFullScreenForcesRunning(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 600, Running: false})
	focus, _, _ := newTestTimer(t, 25)

	got := sh.Attach(focus, FullScreen)
	assert.True(t, got.Running)
	assert.True(t, focus.Running())
	assert.Equal(t, 600, focus.Remaining())
}

func TestChangesMirrored(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 300})
	tm, _, _ := newTestTimer(t, 5)
	sh.Attach(tm, Regular)

	tm.Start()
	tm.Tick()
	tm.Tick()
	assert.Equal(t, Snapshot{RemainingSeconds: 298, Running: true}, sh.Snapshot())

	tm.Pause()
	assert.False(t, sh.Snapshot().Running)
}

func TestHandoffRoundTrip(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 1500})
	regular, _, _ := newTestTimer(t, 25)
	focus, _, _ := newTestTimer(t, 25)

	sh.Attach(regular, Regular)
	regular.Start()
	for i := 0; i < 10; i++ {
		regular.Tick()
	}
	sh.Detach(regular)

	sh.Attach(focus, FullScreen)
	for i := 0; i < 5; i++ {
		focus.Tick()
	}
	focus.Pause()
	sh.Detach(focus)
	require.Nil(t, sh.Owner())

	snap := sh.Attach(regular, Regular)
	assert.Equal(t, Snapshot{RemainingSeconds: 1485, Running: false}, snap)
	assert.Equal(t, 1485, regular.Remaining())
}

func TestDetachedTimerStopsMirroring(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 300})
	tm, _, _ := newTestTimer(t, 5)
	sh.Attach(tm, Regular)
	tm.Start()
	sh.Detach(tm)

	tm.Tick()
	assert.Equal(t, 300, sh.Snapshot().RemainingSeconds)
}

func TestDetachNonOwnerIgnored(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 300})
	a, _, _ := newTestTimer(t, 5)
	b, _, _ := newTestTimer(t, 5)
	sh.Attach(a, Regular)
	sh.Detach(b)
	assert.Same(t, a, sh.Owner())
}

func TestAttachCancelsPreviousOwnerAlarm(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 1})
	regular, alarm, sched := newTestTimer(t, 1)
	focus, _, _ := newTestTimer(t, 1)

	sh.Attach(regular, Regular)
	regular.Start()
	require.True(t, regular.Tick())
	require.True(t, regular.AlarmPending())

	sh.Attach(focus, FullScreen)
	assert.False(t, regular.AlarmPending())
	sched.fire()
	plays, _ := alarm.counts()
	assert.Equal(t, 1, plays)

	// The old owner no longer writes into the snapshot.
	regular.SelectDuration(45)
	assert.NotEqual(t, 45*60, sh.Snapshot().RemainingSeconds)
}

func TestFullScreenAtZeroReloads(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 0})
	focus, _, _ := newTestTimer(t, 15)
	snap := sh.Attach(focus, FullScreen)
	assert.Equal(t, Snapshot{RemainingSeconds: 900, Running: true}, snap)
}

func TestAttachClearsEditing(t *testing.T) {
	sh := NewShared(Snapshot{RemainingSeconds: 120})
	tm, _, _ := newTestTimer(t, 5)
	tm.StartEdit()
	sh.Attach(tm, Regular)
	assert.False(t, tm.Editing())
	assert.Equal(t, 120, tm.Remaining())
}
