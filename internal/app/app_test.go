package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/store"
)

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newApp(t *testing.T) *App {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	a, err := New(s, Options{Now: func() time.Time { return noon }})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewSeedsState(t *testing.T) {
	a := newApp(t)
	assert.Len(t, a.Board.Today.Items(), 3)
	assert.Equal(t, 0, a.Board.Backlog.Len())
	assert.Equal(t, 0, a.Ledger.Total())
	assert.Equal(t, 25, a.TimerMinutes)
	assert.Equal(t, 25*60, a.Focus.Snapshot().RemainingSeconds)
}

func TestDay(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Profile.SetName("Sam"))
	_, err := a.Dump.Add("call the dentist")
	require.NoError(t, err)
	_, err = a.Board.AddToBacklog("taxes", "")
	require.NoError(t, err)
	require.NoError(t, a.Ledger.Add("Drink Water", 1))

	d := a.Day()
	assert.Equal(t, noon, d.Date)
	assert.Equal(t, "Sam", d.UserName)
	assert.Len(t, d.Tasks, 3)
	assert.Len(t, d.Backlog, 1)
	assert.Len(t, d.Thoughts, 1)
	assert.Equal(t, 1, d.Total)
	assert.Len(t, d.History, 1)
}

func TestEndOfDay(t *testing.T) {
	tests := []struct {
		name       string
		keepUndone bool
		wantTasks  int
	}{
		{"keep undone", true, 2},
		{"clear all", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t)
			_, err := a.Board.AddToBacklog("later", "")
			require.NoError(t, err)
			_, err = a.Dump.Add("note")
			require.NoError(t, err)
			require.NoError(t, a.Ledger.Add("x", 10))

			require.NoError(t, a.EndOfDay(tt.keepUndone))

			assert.Len(t, a.Board.Today.Items(), tt.wantTasks)
			for _, task := range a.Board.Today.Items() {
				assert.False(t, task.Completed)
			}
			assert.Equal(t, 1, a.Board.Backlog.Len())
			assert.Equal(t, 0, a.Dump.Len())
			assert.Equal(t, 0, a.Ledger.Total())
			assert.Empty(t, a.Ledger.History())
		})
	}
}

func TestQuickAction(t *testing.T) {
	a := newApp(t)
	q, err := a.QuickAction("take a walk")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Points)
	assert.Equal(t, 2, a.Ledger.Total())
	assert.Equal(t, "Take a Walk", a.Ledger.History()[0].Action)

	_, err = a.QuickAction("nap")
	assert.ErrorIs(t, err, lists.ErrNotFound)
}

func TestCurrentTask(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, "Take a 5-minute break", a.CurrentTask())

	require.NoError(t, a.EndOfDay(false))
	assert.Equal(t, "", a.CurrentTask())
}

func TestTimerExpiryRecordsSession(t *testing.T) {
	a := newApp(t)
	tm := a.NewTimer(1, nil)
	tm.Start()

	expired := false
	for i := 0; i < 60; i++ {
		expired = tm.Tick()
	}
	require.True(t, expired)

	assert.Equal(t, points.FocusSessionPoints, a.Ledger.Total())
	assert.Equal(t, points.FocusSession, a.Ledger.History()[0].Action)

	n, total, err := a.FocusStats()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, time.Minute, total)
}

func TestCompleteFocusIgnoresZero(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.CompleteFocus(0))
	assert.Equal(t, 0, a.Ledger.Total())
}
