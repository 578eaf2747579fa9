package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FocusSession records one countdown that ran to zero.
type FocusSession struct {
	ID          string    `json:"id"`
	Seconds     int       `json:"seconds"`
	Task        string    `json:"task,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// SessionLog keeps completed focus sessions.
type SessionLog interface {
	RecordSession(seconds int, task string, at time.Time) (*FocusSession, error)
	SessionStats(from, to time.Time) (count int, totalSeconds int64, err error)
}

func newSession(seconds int, task string, at time.Time) (*FocusSession, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("new session id: %w", err)
	}
	return &FocusSession{
		ID:          id.String(),
		Seconds:     seconds,
		Task:        task,
		CompletedAt: at.UTC().Truncate(time.Second),
	}, nil
}

func (s *Store) RecordSession(seconds int, task string, at time.Time) (*FocusSession, error) {
	fs, err := newSession(seconds, task, at)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO focus_sessions (id, seconds, task, completed_at) VALUES (?, ?, ?, ?)`,
		fs.ID, fs.Seconds, fs.Task, fs.CompletedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return fs, nil
}

func (s *Store) SessionStats(from, to time.Time) (count int, totalSeconds int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(seconds), 0)
		FROM focus_sessions
		WHERE completed_at >= ? AND completed_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&count, &totalSeconds)
	if err != nil {
		err = fmt.Errorf("session stats: %w", err)
	}
	return
}
