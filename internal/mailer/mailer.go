// Package mailer delivers the end-of-day summary by email, either directly
// through the Resend API or by posting the summary payload to a relay
// endpoint. A send is a single request; failures are returned, not retried.
package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/summary"
)

const (
	ModeResend   = "resend"
	ModeEndpoint = "endpoint"

	DefaultFrom      = "JAST <onboarding@resend.dev>"
	DefaultResendURL = "https://api.resend.com/emails"
	DefaultTimeout   = 15 * time.Second
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrSend          = errors.New("send failed")
	ErrNotConfigured = errors.New("mailer not configured")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the address shape only.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" || !emailRe.MatchString(email) {
		return fmt.Errorf("%q: %w", email, ErrInvalidEmail)
	}
	return nil
}

// Payload is the request body of a summary send.
type Payload struct {
	Email         string          `json:"email"`
	UserName      string          `json:"userName"`
	Tasks         []lists.Task    `json:"tasks"`
	Thoughts      []lists.Thought `json:"thoughts"`
	Points        int             `json:"points"`
	PointsHistory []points.Entry  `json:"pointsHistory"`
	BacklogTasks  []lists.Task    `json:"backlogTasks"`
}

// NewPayload addresses d to email.
func NewPayload(email string, d summary.Day) Payload {
	name := d.UserName
	if strings.TrimSpace(name) == "" {
		name = "Friend"
	}
	return Payload{
		Email:         strings.TrimSpace(email),
		UserName:      name,
		Tasks:         nonNil(d.Tasks),
		Thoughts:      nonNil(d.Thoughts),
		Points:        d.Total,
		PointsHistory: nonNil(d.History),
		BacklogTasks:  nonNil(d.Backlog),
	}
}

// Day turns a received payload back into a summary for date.
func (p Payload) Day(date time.Time) summary.Day {
	return summary.Day{
		Date:     date,
		UserName: p.UserName,
		Tasks:    p.Tasks,
		Backlog:  p.BacklogTasks,
		Thoughts: p.Thoughts,
		Total:    p.Points,
		History:  p.PointsHistory,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Result is the provider's answer to a successful send.
type Result struct {
	ID  string
	Raw json.RawMessage
}

// Sender delivers a summary.
type Sender interface {
	Send(ctx context.Context, p Payload) (*Result, error)
}

// Config selects and configures a Sender.
type Config struct {
	Mode     string
	Endpoint string
	APIKey   string
	From     string
	Timeout  time.Duration
}

// New builds the Sender named by cfg.Mode.
func New(cfg Config, observer Observer) (Sender, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Mode {
	case ModeEndpoint:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("endpoint mode needs mail.endpoint: %w", ErrNotConfigured)
		}
		return &EndpointSender{URL: cfg.Endpoint, HTTP: client, Observer: observer}, nil
	case ModeResend, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("resend mode needs an API key: %w", ErrNotConfigured)
		}
		from := cfg.From
		if from == "" {
			from = DefaultFrom
		}
		return &ResendSender{APIKey: cfg.APIKey, From: from, URL: DefaultResendURL, HTTP: client, Observer: observer}, nil
	default:
		return nil, fmt.Errorf("unknown mail mode %q", cfg.Mode)
	}
}

func errorCode(err error) string {
	var netErr interface{ Timeout() bool }
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "TIMEOUT"
	case errors.Is(err, ErrSend):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
