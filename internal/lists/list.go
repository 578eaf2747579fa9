// Package lists holds the persisted collections: today's tasks, the backlog
// and the brain dump. Every mutation writes the whole collection back.
package lists

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Alixocracy/jast/internal/store"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrEmpty      = errors.New("text is empty")
	ErrOutOfRange = errors.New("index out of range")
)

// Keyed is implemented by list items.
type Keyed interface {
	Key() string
}

// Op names the kind of mutation reported to subscribers.
type Op int

const (
	Added Op = iota
	Edited
	Deleted
	Moved
	Replaced
	Cleared
)

func (o Op) String() string {
	switch o {
	case Added:
		return "added"
	case Edited:
		return "edited"
	case Deleted:
		return "deleted"
	case Moved:
		return "moved"
	case Replaced:
		return "replaced"
	case Cleared:
		return "cleared"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Change is delivered to subscribers after a mutation has been persisted.
// Item is set for single-item operations; Items is the collection after the
// change.
type Change[T Keyed] struct {
	Op    Op
	Item  T
	Items []T
}

// List is an ordered collection persisted under a single key.
type List[T Keyed] struct {
	kv    store.KV
	key   string
	items []T
	log   *slog.Logger

	subs    map[int]func(Change[T])
	nextSub int
}

// NewList loads the collection stored at key. When nothing is stored, or the
// stored value cannot be decoded, the list starts from seed (which may be
// nil). Decode failures are logged only.
func NewList[T Keyed](kv store.KV, key string, seed func() []T, log *slog.Logger) *List[T] {
	if log == nil {
		log = slog.Default()
	}
	l := &List[T]{kv: kv, key: key, log: log, subs: map[int]func(Change[T]){}}

	var items []T
	err := store.GetJSON(kv, key, &items)
	switch {
	case err == nil:
		l.items = items
	case errors.Is(err, store.ErrNotFound):
		if seed != nil {
			l.items = seed()
		}
	default:
		log.Warn("lists: falling back to default collection", "key", key, "err", err)
		if seed != nil {
			l.items = seed()
		}
	}
	if l.items == nil {
		l.items = []T{}
	}
	return l
}

// NewID returns a time-ordered identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (l *List[T]) Key() string { return l.key }

func (l *List[T]) Len() int { return len(l.items) }

// Items returns a copy of the collection.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the item with id and its index.
func (l *List[T]) Find(id string) (T, int, bool) {
	for i, it := range l.items {
		if it.Key() == id {
			return it, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Append adds item at the end.
func (l *List[T]) Append(item T) error {
	next := append(l.Items(), item)
	return l.commit(next, Change[T]{Op: Added, Item: item})
}

// Prepend adds item at the front.
func (l *List[T]) Prepend(item T) error {
	next := append([]T{item}, l.items...)
	return l.commit(next, Change[T]{Op: Added, Item: item})
}

// Update applies fn to a copy of the item with id and stores the result.
func (l *List[T]) Update(id string, fn func(*T)) (T, error) {
	it, idx, ok := l.Find(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	fn(&it)
	next := l.Items()
	next[idx] = it
	if err := l.commit(next, Change[T]{Op: Edited, Item: it}); err != nil {
		var zero T
		return zero, err
	}
	return it, nil
}

// Delete removes the item with id.
func (l *List[T]) Delete(id string) (T, error) {
	it, idx, ok := l.Find(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	next := make([]T, 0, len(l.items)-1)
	next = append(next, l.items[:idx]...)
	next = append(next, l.items[idx+1:]...)
	if err := l.commit(next, Change[T]{Op: Deleted, Item: it}); err != nil {
		var zero T
		return zero, err
	}
	return it, nil
}

// Move removes the item at from and inserts it at to, counted in the
// collection after removal. Every other item keeps its relative order.
func (l *List[T]) Move(from, to int) error {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d to %d: %w", from, to, ErrOutOfRange)
	}
	if from == to {
		return nil
	}
	next := Splice(l.items, from, to)
	return l.commit(next, Change[T]{Op: Moved, Item: l.items[from]})
}

// MoveByID drops the item dragID onto the position of targetID.
func (l *List[T]) MoveByID(dragID, targetID string) error {
	if dragID == targetID {
		return nil
	}
	_, from, ok := l.Find(dragID)
	if !ok {
		return fmt.Errorf("move %s: %w", dragID, ErrNotFound)
	}
	_, to, ok := l.Find(targetID)
	if !ok {
		return fmt.Errorf("move onto %s: %w", targetID, ErrNotFound)
	}
	return l.Move(from, to)
}

// Replace swaps the whole collection.
func (l *List[T]) Replace(items []T) error {
	next := make([]T, len(items))
	copy(next, items)
	return l.commit(next, Change[T]{Op: Replaced})
}

func (l *List[T]) Clear() error {
	return l.commit([]T{}, Change[T]{Op: Cleared})
}

// Subscribe registers fn for every persisted change and returns a function
// that removes it.
func (l *List[T]) Subscribe(fn func(Change[T])) (unsubscribe func()) {
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *List[T]) commit(next []T, c Change[T]) error {
	if err := store.SetJSON(l.kv, l.key, next); err != nil {
		return fmt.Errorf("save %s: %w", l.key, err)
	}
	l.items = next
	c.Items = l.Items()
	for _, fn := range l.subs {
		fn(c)
	}
	return nil
}

// Splice returns a copy of items with the element at from removed and
// reinserted at to.
func Splice[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}
