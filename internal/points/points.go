// Package points keeps the gamified score: a capped history of earning
// actions alongside an all-time total, and the levels derived from it.
package points

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alixocracy/jast/internal/store"
)

// StorageKey is where the ledger is persisted.
const StorageKey = "focusflow-points"

// HistoryCap is the number of entries kept in the visible history.
const HistoryCap = 50

// TaskCompleted is the label and amount credited when a task is checked off.
const (
	TaskCompleted       = "Completed a task"
	TaskCompletedPoints = 5
)

type Entry struct {
	Action    string    `json:"action"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

// Data is the persisted shape of the ledger.
type Data struct {
	Total   int     `json:"total"`
	History []Entry `json:"history"`
}

// Ledger is the points history plus a total tracked independently of it.
type Ledger struct {
	kv   store.KV
	data Data
	now  func() time.Time
	log  *slog.Logger
}

// Load reads the ledger from kv. A missing or unreadable value starts an
// empty ledger; the decode error is logged, never returned.
func Load(kv store.KV, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	l := &Ledger{kv: kv, now: time.Now, log: log}
	err := store.GetJSON(kv, StorageKey, &l.data)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Warn("points: falling back to empty ledger", "err", err)
		l.data = Data{}
	}
	if l.data.History == nil {
		l.data.History = []Entry{}
	}
	return l
}

// SetClock replaces the time source used to stamp entries.
func (l *Ledger) SetClock(now func() time.Time) { l.now = now }

func (l *Ledger) Total() int { return l.data.Total }

// History returns a copy of the entries, newest first.
func (l *Ledger) History() []Entry {
	out := make([]Entry, len(l.data.History))
	copy(out, l.data.History)
	return out
}

// Add records action at the head of the history and credits points.
func (l *Ledger) Add(action string, points int) error {
	e := Entry{Action: action, Points: points, Timestamp: l.now().UTC()}
	hist := make([]Entry, 0, HistoryCap)
	hist = append(hist, e)
	for _, old := range l.data.History {
		if len(hist) == HistoryCap {
			break
		}
		hist = append(hist, old)
	}
	l.data.Total += points
	l.data.History = hist
	return l.save()
}

// Reset clears the total and history. Callers confirm with the user first.
func (l *Ledger) Reset() error {
	l.data = Data{History: []Entry{}}
	return l.save()
}

// Snapshot returns the current total and a copy of the history.
func (l *Ledger) Snapshot() Data {
	return Data{Total: l.data.Total, History: l.History()}
}

func (l *Ledger) save() error {
	if err := store.SetJSON(l.kv, StorageKey, l.data); err != nil {
		return fmt.Errorf("save points: %w", err)
	}
	return nil
}

// Level is one tier of the threshold table.
type Level struct {
	Name  string
	Min   int
	Emoji string
}

// Levels is the ascending threshold table.
var Levels = []Level{
	{Name: "Seedling", Min: 0, Emoji: "🌱"},
	{Name: "Rising Star", Min: 50, Emoji: "⭐"},
	{Name: "Achiever", Min: 100, Emoji: "⚡"},
	{Name: "Champion", Min: 200, Emoji: "🔥"},
	{Name: "Master", Min: 500, Emoji: "👑"},
}

// LevelInfo describes where a total sits in the table. Next is nil at the
// top level.
type LevelInfo struct {
	Current Level
	Next    *Level
	ToNext  int
}

// LevelFor finds the highest level whose minimum total meets or is below
// total. Totals below zero count as the first level.
func LevelFor(total int) LevelInfo {
	idx := 0
	for i := len(Levels) - 1; i >= 0; i-- {
		if total >= Levels[i].Min {
			idx = i
			break
		}
	}
	info := LevelInfo{Current: Levels[idx]}
	if idx+1 < len(Levels) {
		next := Levels[idx+1]
		info.Next = &next
		info.ToNext = next.Min - total
	}
	return info
}

// Wellness lists the action labels counted as self-care.
var Wellness = []string{"Drink Water", "Deep Breath", "Take a Walk", "Mindful Break"}

// Breakdown splits history points into categories.
type Breakdown struct {
	Tasks    int
	Wellness int
	Focus    int
	Other    int
}

// Categorize sums history by action label. Focus and task labels are matched
// by substring, wellness by exact membership; a label can count towards both
// tasks and focus, and only labels matching none land in Other.
func Categorize(history []Entry) Breakdown {
	var b Breakdown
	for _, e := range history {
		isTask := strings.Contains(e.Action, "task")
		isWellness := isWellnessLabel(e.Action)
		isFocus := strings.Contains(e.Action, "Focus")
		if isTask {
			b.Tasks += e.Points
		}
		if isWellness {
			b.Wellness += e.Points
		}
		if isFocus {
			b.Focus += e.Points
		}
		if !isTask && !isWellness && !isFocus {
			b.Other += e.Points
		}
	}
	return b
}

func isWellnessLabel(action string) bool {
	for _, w := range Wellness {
		if action == w {
			return true
		}
	}
	return false
}

// QuickAction is a one-tap self-care log.
type QuickAction struct {
	Label   string
	Message string
	Points  int
}

var QuickActions = []QuickAction{
	{Label: "Drink Water", Message: "Hydration helps your brain work better! 💧", Points: 1},
	{Label: "Take a Walk", Message: "Moving your body can reset your focus! 🚶", Points: 2},
	{Label: "Deep Breath", Message: "Take 3 deep breaths. You've got this! 🌬️", Points: 1},
	{Label: "Mindful Break", Message: "A short break can spark creativity! ☕", Points: 3},
}

// FocusSession is the label credited when a focus countdown runs out.
const (
	FocusSession       = "Focus session"
	FocusSessionPoints = 5
)
