package lists

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/store"
)

const (
	TasksKey   = "focusflow-tasks"
	BacklogKey = "focusflow-backlog"
	DumpKey    = "focusflow-braindump"
)

// MaxOpenToday is the number of incomplete tasks today's list holds before
// new tasks go to the backlog.
const MaxOpenToday = 10

var (
	ErrTodayFull = errors.New("today's list is full")
	ErrBadColor  = errors.New("color not in palette")
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Color     string `json:"color"`
}

func (t Task) Key() string { return t.ID }

type Color struct {
	Name string
	Hex  string
}

// Palette is the fixed set of task colors.
var Palette = []Color{
	{"Sage", "#A8C5A8"},
	{"Lavender", "#C5A8C5"},
	{"Sky", "#A8C5D5"},
	{"Peach", "#E5C5A8"},
	{"Rose", "#E5A8B5"},
	{"Mint", "#A8E5D5"},
	{"Butter", "#E5E5A8"},
	{"Coral", "#E5B5A8"},
}

// DefaultColor is given to tasks created without one.
var DefaultColor = Palette[0].Hex

// ResolveColor accepts a palette hex value or name, case-insensitively. An
// empty string yields DefaultColor.
func ResolveColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultColor, nil
	}
	for _, p := range Palette {
		if strings.EqualFold(c, p.Hex) || strings.EqualFold(c, p.Name) {
			return p.Hex, nil
		}
	}
	return "", fmt.Errorf("color %q: %w", c, ErrBadColor)
}

// ColorName returns the palette name for hex, or hex itself.
func ColorName(hex string) string {
	for _, p := range Palette {
		if strings.EqualFold(hex, p.Hex) {
			return p.Name
		}
	}
	return hex
}

// SeedTasks is the starting list for a first run.
func SeedTasks() []Task {
	return []Task{
		{ID: NewID(), Text: "Take a 5-minute break", Color: Palette[3].Hex},
		{ID: NewID(), Text: "Drink a glass of water", Completed: true, Color: Palette[2].Hex},
		{ID: NewID(), Text: "Review today's priorities", Color: Palette[0].Hex},
	}
}

// Board couples today's list, the backlog and the points ledger that task
// completion credits.
type Board struct {
	Today   *List[Task]
	Backlog *List[Task]
	ledger  *points.Ledger
}

func NewBoard(kv store.KV, ledger *points.Ledger, log *slog.Logger) *Board {
	return &Board{
		Today:   NewList(kv, TasksKey, SeedTasks, log),
		Backlog: NewList[Task](kv, BacklogKey, nil, log),
		ledger:  ledger,
	}
}

// OpenToday counts incomplete tasks on today's list.
func (b *Board) OpenToday() int {
	n := 0
	for _, t := range b.Today.items {
		if !t.Completed {
			n++
		}
	}
	return n
}

// AddResult reports where a new task ended up.
type AddResult struct {
	Task       Task
	Redirected bool
}

// AddTask adds to today's list, or to the backlog when today already holds
// MaxOpenToday incomplete tasks.
func (b *Board) AddTask(text, color string) (AddResult, error) {
	t, err := newTask(text, color)
	if err != nil {
		return AddResult{}, err
	}
	if b.OpenToday() >= MaxOpenToday {
		if err := b.Backlog.Append(t); err != nil {
			return AddResult{}, err
		}
		return AddResult{Task: t, Redirected: true}, nil
	}
	if err := b.Today.Append(t); err != nil {
		return AddResult{}, err
	}
	return AddResult{Task: t}, nil
}

// AddToBacklog defers a new task directly.
func (b *Board) AddToBacklog(text, color string) (Task, error) {
	t, err := newTask(text, color)
	if err != nil {
		return Task{}, err
	}
	return t, b.Backlog.Append(t)
}

func newTask(text, color string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmpty
	}
	hex, err := ResolveColor(color)
	if err != nil {
		return Task{}, err
	}
	return Task{ID: NewID(), Text: text, Color: hex}, nil
}

// locate returns the list holding id.
func (b *Board) locate(id string) (*List[Task], bool) {
	if _, _, ok := b.Today.Find(id); ok {
		return b.Today, true
	}
	if _, _, ok := b.Backlog.Find(id); ok {
		return b.Backlog, true
	}
	return nil, false
}

// Edit replaces the text of a task on either list.
func (b *Board) Edit(id, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmpty
	}
	l, ok := b.locate(id)
	if !ok {
		return Task{}, fmt.Errorf("edit task %s: %w", id, ErrNotFound)
	}
	return l.Update(id, func(t *Task) { t.Text = text })
}

// Delete removes a task from either list.
func (b *Board) Delete(id string) (Task, error) {
	l, ok := b.locate(id)
	if !ok {
		return Task{}, fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	return l.Delete(id)
}

// Toggle flips completion of a task on today's list. Completing credits the
// ledger; un-completing does not debit it.
func (b *Board) Toggle(id string) (Task, error) {
	t, err := b.Today.Update(id, func(t *Task) { t.Completed = !t.Completed })
	if err != nil {
		return Task{}, err
	}
	if t.Completed && b.ledger != nil {
		if err := b.ledger.Add(points.TaskCompleted, points.TaskCompletedPoints); err != nil {
			return t, err
		}
	}
	return t, nil
}

// SetColor recolors a task on either list.
func (b *Board) SetColor(id, color string) (Task, error) {
	hex, err := ResolveColor(color)
	if err != nil {
		return Task{}, err
	}
	l, ok := b.locate(id)
	if !ok {
		return Task{}, fmt.Errorf("color task %s: %w", id, ErrNotFound)
	}
	return l.Update(id, func(t *Task) { t.Color = hex })
}

// MoveToToday promotes a backlog task unless today is full.
func (b *Board) MoveToToday(id string) (Task, error) {
	t, _, ok := b.Backlog.Find(id)
	if !ok {
		return Task{}, fmt.Errorf("move task %s: %w", id, ErrNotFound)
	}
	if b.OpenToday() >= MaxOpenToday {
		return Task{}, ErrTodayFull
	}
	t.Completed = false
	if err := b.Today.Append(t); err != nil {
		return Task{}, err
	}
	if _, err := b.Backlog.Delete(id); err != nil {
		return Task{}, err
	}
	return t, nil
}

// MoveToBacklog defers a task from today's list.
func (b *Board) MoveToBacklog(id string) (Task, error) {
	t, _, ok := b.Today.Find(id)
	if !ok {
		return Task{}, fmt.Errorf("defer task %s: %w", id, ErrNotFound)
	}
	t.Completed = false
	if err := b.Backlog.Append(t); err != nil {
		return Task{}, err
	}
	if _, err := b.Today.Delete(id); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Completed and Pending partition today's list.
func (b *Board) Completed() []Task { return filter(b.Today.items, true) }

func (b *Board) Pending() []Task { return filter(b.Today.items, false) }

func filter(ts []Task, completed bool) []Task {
	out := []Task{}
	for _, t := range ts {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

// StartNewDay keeps only incomplete tasks when keepUndone is set, otherwise
// empties today's list. The backlog is untouched.
func (b *Board) StartNewDay(keepUndone bool) error {
	if keepUndone {
		return b.Today.Replace(b.Pending())
	}
	return b.Today.Clear()
}

type Thought struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (t Thought) Key() string { return t.ID }

// BrainDump is the scratchpad of captured notes, oldest first.
type BrainDump struct {
	*List[Thought]
	now func() time.Time
}

func NewBrainDump(kv store.KV, log *slog.Logger) *BrainDump {
	return &BrainDump{List: NewList[Thought](kv, DumpKey, nil, log), now: time.Now}
}

// SetClock replaces the time source used to stamp notes.
func (d *BrainDump) SetClock(now func() time.Time) { d.now = now }

// Add captures a note at the end of the list.
func (d *BrainDump) Add(text string) (Thought, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Thought{}, ErrEmpty
	}
	th := Thought{ID: NewID(), Text: text, Timestamp: d.now().UTC()}
	return th, d.Append(th)
}
