// Package app wires the persisted collections, the points ledger and the
// shared focus timer into one value that the TUI and the CLI drive.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/playlist"
	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/profile"
	"github.com/Alixocracy/jast/internal/store"
	"github.com/Alixocracy/jast/internal/summary"
	"github.com/Alixocracy/jast/internal/timer"
)

type Options struct {
	Log          *slog.Logger
	Titler       playlist.Titler
	TimerMinutes int
	Now          func() time.Time
}

// App owns every piece of user state.
type App struct {
	Backend  store.Backend
	Ledger   *points.Ledger
	Board    *lists.Board
	Dump     *lists.BrainDump
	Profile  *profile.Profile
	Playlist *playlist.Playlist
	Focus    *timer.Shared

	TimerMinutes int

	log    *slog.Logger
	now    func() time.Time
	unsubs []func()
}

// New loads all state from backend.
func New(backend store.Backend, opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	minutes := opts.TimerMinutes
	if minutes < 1 {
		minutes = timer.DefaultMinutes
	}

	ledger := points.Load(backend, log)
	ledger.SetClock(now)
	dump := lists.NewBrainDump(backend, log)
	dump.SetClock(now)

	pl, err := playlist.Load(backend, opts.Titler, log)
	if err != nil {
		return nil, fmt.Errorf("load playlist: %w", err)
	}

	a := &App{
		Backend:      backend,
		Ledger:       ledger,
		Board:        lists.NewBoard(backend, ledger, log),
		Dump:         dump,
		Profile:      profile.New(backend),
		Playlist:     pl,
		Focus:        timer.NewShared(timer.Snapshot{RemainingSeconds: minutes * 60}),
		TimerMinutes: minutes,
		log:          log,
		now:          now,
	}
	a.unsubs = append(a.unsubs,
		a.Board.Today.Subscribe(logChange[lists.Task](log, lists.TasksKey)),
		a.Board.Backlog.Subscribe(logChange[lists.Task](log, lists.BacklogKey)),
		a.Dump.Subscribe(logChange[lists.Thought](log, lists.DumpKey)),
	)
	return a, nil
}

func logChange[T lists.Keyed](log *slog.Logger, key string) func(lists.Change[T]) {
	return func(c lists.Change[T]) {
		log.Debug("list changed", "key", key, "op", c.Op.String(), "len", len(c.Items))
	}
}

// Close detaches subscribers and closes the backend.
func (a *App) Close() error {
	for _, u := range a.unsubs {
		u()
	}
	a.unsubs = nil
	return a.Backend.Close()
}

// Day snapshots the state reported by the end-of-day summary.
func (a *App) Day() summary.Day {
	snap := a.Ledger.Snapshot()
	return summary.Day{
		Date:     a.now(),
		UserName: a.Profile.Name(),
		Tasks:    a.Board.Today.Items(),
		Backlog:  a.Board.Backlog.Items(),
		Thoughts: a.Dump.Items(),
		Total:    snap.Total,
		History:  snap.History,
	}
}

// EndOfDay starts a new day: today's list is emptied, or trimmed to its
// incomplete tasks when keepUndone is set, the brain dump is cleared and the
// points ledger is reset. The backlog and the session log are kept.
func (a *App) EndOfDay(keepUndone bool) error {
	if err := a.Board.StartNewDay(keepUndone); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	if err := a.Dump.Clear(); err != nil {
		return fmt.Errorf("clear brain dump: %w", err)
	}
	if err := a.Ledger.Reset(); err != nil {
		return err
	}
	a.log.Info("day reset", "keep_undone", keepUndone)
	return nil
}

// QuickAction logs the self-care action labelled label.
func (a *App) QuickAction(label string) (points.QuickAction, error) {
	for _, q := range points.QuickActions {
		if strings.EqualFold(q.Label, label) {
			return q, a.Ledger.Add(q.Label, q.Points)
		}
	}
	return points.QuickAction{}, fmt.Errorf("quick action %q: %w", label, lists.ErrNotFound)
}

// CurrentTask is the first incomplete task on today's list, if any.
func (a *App) CurrentTask() string {
	if p := a.Board.Pending(); len(p) > 0 {
		return p[0].Text
	}
	return ""
}

// CompleteFocus records a countdown that reached zero and credits it.
func (a *App) CompleteFocus(seconds int) error {
	if seconds <= 0 {
		return nil
	}
	fs, err := a.Backend.RecordSession(seconds, a.CurrentTask(), a.now())
	if err != nil {
		return fmt.Errorf("record focus session: %w", err)
	}
	a.log.Info("focus session completed", "id", fs.ID, "seconds", fs.Seconds)
	return a.Ledger.Add(points.FocusSession, points.FocusSessionPoints)
}

// NewTimer builds a countdown of minutes (TimerMinutes when < 1) that
// reports completed sessions back to a. Recording failures are logged; the
// countdown itself never fails.
func (a *App) NewTimer(minutes int, alarm timer.Alarm, opts ...timer.Option) *timer.Timer {
	if minutes < 1 {
		minutes = a.TimerMinutes
	}
	onExpire := timer.OnExpire(func(seconds int) {
		if err := a.CompleteFocus(seconds); err != nil {
			a.log.Error("focus session not recorded", "err", err)
		}
	})
	return timer.New(minutes, alarm, append(opts, onExpire)...)
}

// FocusStats totals the sessions completed on the calendar day containing
// the current time.
func (a *App) FocusStats() (count int, total time.Duration, err error) {
	now := a.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, secs, err := a.Backend.SessionStats(from, from.AddDate(0, 0, 1))
	if err != nil {
		return 0, 0, fmt.Errorf("focus stats: %w", err)
	}
	return n, time.Duration(secs) * time.Second, nil
}
