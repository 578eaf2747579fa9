package lists

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/store"
)

func newKV(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestBoard(t *testing.T) (*Board, *points.Ledger, *store.Store) {
	t.Helper()
	kv := newKV(t)
	// An empty stored list skips the first-run seed.
	require.NoError(t, kv.Set(TasksKey, "[]"))
	ledger := points.Load(kv, nil)
	return NewBoard(kv, ledger, nil), ledger, kv
}

func texts(ts []Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

// ============================================================
// Generic list
// ============================================================

func TestNewListSeedsFirstRun(t *testing.T) {
	kv := newKV(t)
	l := NewList(kv, TasksKey, SeedTasks, nil)
	assert.Equal(t, []string{"Take a 5-minute break", "Drink a glass of water", "Review today's priorities"}, texts(l.Items()))
}

func TestNewListMalformedFallsBack(t *testing.T) {
	kv := newKV(t)
	kv.Set(BacklogKey, "not json")

	var buf bytes.Buffer
	l := NewList[Task](kv, BacklogKey, nil, slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Equal(t, 0, l.Len())
	assert.Contains(t, buf.String(), BacklogKey)
}

func TestNewListReadsOriginalShape(t *testing.T) {
	kv := newKV(t)
	kv.Set(BacklogKey, `[{"id":"1712000000000","text":"Call mom","color":"#E5A8B5"}]`)
	l := NewList[Task](kv, BacklogKey, nil, nil)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, Task{ID: "1712000000000", Text: "Call mom", Color: "#E5A8B5"}, l.Items()[0])
}

func TestMutationsPersistWholeCollection(t *testing.T) {
	kv := newKV(t)
	l := NewList[Task](kv, BacklogKey, nil, nil)
	require.NoError(t, l.Append(Task{ID: "a", Text: "A"}))
	require.NoError(t, l.Append(Task{ID: "b", Text: "B"}))

	reloaded := NewList[Task](kv, BacklogKey, nil, nil)
	assert.Equal(t, l.Items(), reloaded.Items())

	_, err := l.Delete("a")
	require.NoError(t, err)
	reloaded = NewList[Task](kv, BacklogKey, nil, nil)
	assert.Equal(t, []string{"B"}, texts(reloaded.Items()))
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	l := NewList[Task](newKV(t), BacklogKey, nil, nil)
	_, err := l.Update("nope", func(*Task) {})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Delete("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveMatchesSplice(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e"}
	for from := range base {
		for to := range base {
			t.Run(fmt.Sprintf("%d-%d", from, to), func(t *testing.T) {
				l := NewList[Task](newKV(t), BacklogKey, nil, nil)
				for _, id := range base {
					l.Append(Task{ID: id, Text: id})
				}
				require.NoError(t, l.Move(from, to))

				// Manual splice-remove then insert.
				want := append([]string{}, base[:from]...)
				want = append(want, base[from+1:]...)
				want = append(want[:to], append([]string{base[from]}, want[to:]...)...)

				got := texts(l.Items())
				assert.Equal(t, want, got)
				assert.ElementsMatch(t, base, got)
			})
		}
	}
}

func TestMoveOutOfRange(t *testing.T) {
	l := NewList[Task](newKV(t), BacklogKey, nil, nil)
	l.Append(Task{ID: "a"})
	assert.ErrorIs(t, l.Move(0, 1), ErrOutOfRange)
	assert.ErrorIs(t, l.Move(-1, 0), ErrOutOfRange)
}

func TestMoveByID(t *testing.T) {
	l := NewList[Task](newKV(t), BacklogKey, nil, nil)
	for _, id := range []string{"a", "b", "c"} {
		l.Append(Task{ID: id, Text: id})
	}
	require.NoError(t, l.MoveByID("c", "a"))
	assert.Equal(t, []string{"c", "a", "b"}, texts(l.Items()))

	require.NoError(t, l.MoveByID("c", "c"))
	assert.ErrorIs(t, l.MoveByID("x", "a"), ErrNotFound)
	assert.ErrorIs(t, l.MoveByID("a", "x"), ErrNotFound)
}

func TestSubscribe(t *testing.T) {
	l := NewList[Task](newKV(t), BacklogKey, nil, nil)
	var got []Change[Task]
	unsub := l.Subscribe(func(c Change[Task]) { got = append(got, c) })

	l.Append(Task{ID: "a", Text: "A"})
	l.Clear()
	unsub()
	l.Append(Task{ID: "b"})

	require.Len(t, got, 2)
	assert.Equal(t, Added, got[0].Op)
	assert.Equal(t, "a", got[0].Item.ID)
	assert.Len(t, got[0].Items, 1)
	assert.Equal(t, Cleared, got[1].Op)
	assert.Empty(t, got[1].Items)
	assert.Equal(t, "cleared", Cleared.String())
}

// ============================================================
// Board
// ============================================================

func TestAddTaskDefaults(t *testing.T) {
	b, _, _ := newTestBoard(t)
	res, err := b.AddTask("  Write docs  ", "")
	require.NoError(t, err)
	assert.False(t, res.Redirected)
	assert.Equal(t, "Write docs", res.Task.Text)
	assert.Equal(t, DefaultColor, res.Task.Color)
	assert.NotEmpty(t, res.Task.ID)

	_, err = b.AddTask("   ", "")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = b.AddTask("x", "#000000")
	assert.ErrorIs(t, err, ErrBadColor)
}

func TestAddTaskRedirectsWhenFull(t *testing.T) {
	b, _, _ := newTestBoard(t)
	for i := 0; i < MaxOpenToday; i++ {
		_, err := b.AddTask(fmt.Sprintf("task %d", i), "")
		require.NoError(t, err)
	}
	res, err := b.AddTask("one too many", "")
	require.NoError(t, err)
	assert.True(t, res.Redirected)
	assert.Equal(t, MaxOpenToday, b.Today.Len())
	require.Equal(t, 1, b.Backlog.Len())
	assert.Equal(t, "one too many", b.Backlog.Items()[0].Text)
}

func TestCompletedTasksDoNotCountTowardsCap(t *testing.T) {
	b, _, _ := newTestBoard(t)
	for i := 0; i < MaxOpenToday; i++ {
		b.AddTask(fmt.Sprintf("task %d", i), "")
	}
	_, err := b.Toggle(b.Today.Items()[0].ID)
	require.NoError(t, err)

	res, err := b.AddTask("fits now", "")
	require.NoError(t, err)
	assert.False(t, res.Redirected)
}

func TestToggleCreditsOnceAndNeverDebits(t *testing.T) {
	b, ledger, _ := newTestBoard(t)
	res, _ := b.AddTask("Ship it", "")

	tk, err := b.Toggle(res.Task.ID)
	require.NoError(t, err)
	assert.True(t, tk.Completed)
	assert.Equal(t, points.TaskCompletedPoints, ledger.Total())
	assert.Equal(t, points.TaskCompleted, ledger.History()[0].Action)

	tk, err = b.Toggle(res.Task.ID)
	require.NoError(t, err)
	assert.False(t, tk.Completed)
	assert.Equal(t, points.TaskCompletedPoints, ledger.Total())
	assert.Len(t, ledger.History(), 1)
}

func TestToggleBacklogTaskNotFound(t *testing.T) {
	b, _, _ := newTestBoard(t)
	tk, _ := b.AddToBacklog("later", "")
	_, err := b.Toggle(tk.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditAndSetColorOnBothLists(t *testing.T) {
	b, _, _ := newTestBoard(t)
	today, _ := b.AddTask("a", "")
	later, _ := b.AddToBacklog("b", "")

	_, err := b.Edit(today.Task.ID, "a2")
	require.NoError(t, err)
	_, err = b.Edit(later.ID, "b2")
	require.NoError(t, err)
	_, err = b.Edit(later.ID, " ")
	assert.ErrorIs(t, err, ErrEmpty)

	tk, err := b.SetColor(later.ID, "lavender")
	require.NoError(t, err)
	assert.Equal(t, "#C5A8C5", tk.Color)
	_, err = b.SetColor(today.Task.ID, "purple")
	assert.ErrorIs(t, err, ErrBadColor)

	assert.Equal(t, []string{"a2"}, texts(b.Today.Items()))
	assert.Equal(t, []string{"b2"}, texts(b.Backlog.Items()))
}

func TestMoveBetweenLists(t *testing.T) {
	b, _, _ := newTestBoard(t)
	res, _ := b.AddTask("a", "Rose")
	b.Toggle(res.Task.ID)

	moved, err := b.MoveToBacklog(res.Task.ID)
	require.NoError(t, err)
	assert.False(t, moved.Completed)
	assert.Equal(t, 0, b.Today.Len())
	assert.Equal(t, "#E5A8B5", b.Backlog.Items()[0].Color)

	_, err = b.MoveToToday(res.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Today.Len())
	assert.Equal(t, 0, b.Backlog.Len())
}

func TestMoveToTodayWhenFull(t *testing.T) {
	b, _, _ := newTestBoard(t)
	later, _ := b.AddToBacklog("later", "")
	for i := 0; i < MaxOpenToday; i++ {
		b.AddTask(fmt.Sprintf("task %d", i), "")
	}
	_, err := b.MoveToToday(later.ID)
	assert.ErrorIs(t, err, ErrTodayFull)
	assert.Equal(t, 1, b.Backlog.Len())
}

func TestStartNewDay(t *testing.T) {
	b, _, _ := newTestBoard(t)
	done, _ := b.AddTask("done", "")
	b.AddTask("open", "")
	b.Toggle(done.Task.ID)
	b.AddToBacklog("later", "")

	require.NoError(t, b.StartNewDay(true))
	assert.Equal(t, []string{"open"}, texts(b.Today.Items()))

	require.NoError(t, b.StartNewDay(false))
	assert.Equal(t, 0, b.Today.Len())
	assert.Equal(t, 1, b.Backlog.Len())
}

func TestCompletedPending(t *testing.T) {
	b, _, _ := newTestBoard(t)
	a, _ := b.AddTask("a", "")
	b.AddTask("b", "")
	b.Toggle(a.Task.ID)
	assert.Equal(t, []string{"a"}, texts(b.Completed()))
	assert.Equal(t, []string{"b"}, texts(b.Pending()))
}

func TestResolveColor(t *testing.T) {
	hex, err := ResolveColor("#a8e5d5")
	require.NoError(t, err)
	assert.Equal(t, "#A8E5D5", hex)
	assert.Equal(t, "Mint", ColorName(hex))
	assert.Equal(t, "#123456", ColorName("#123456"))
}

// ============================================================
// Brain dump
// ============================================================

func TestBrainDump(t *testing.T) {
	kv := newKV(t)
	d := NewBrainDump(kv, nil)
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	d.SetClock(func() time.Time { return at })

	first, err := d.Add("buy milk")
	require.NoError(t, err)
	_, err = d.Add("call Jo")
	require.NoError(t, err)
	_, err = d.Add("  ")
	assert.ErrorIs(t, err, ErrEmpty)

	items := d.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "buy milk", items[0].Text)
	assert.True(t, items[0].Timestamp.Equal(at))

	_, err = d.Delete(first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	require.NoError(t, d.Clear())
	again := NewBrainDump(kv, nil)
	assert.Equal(t, 0, again.Len())
}
