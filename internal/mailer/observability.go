package mailer

import (
	"log/slog"
	"time"
)

// SendEvent describes one send attempt.
type SendEvent struct {
	Mode    string
	Start   time.Time
	Latency time.Duration
	Success bool
	Code    string
	Err     error
}

// Observer receives an event after every send.
type Observer interface {
	OnSend(event SendEvent)
}

// LogObserver writes send events to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) OnSend(e SendEvent) {
	if e.Success {
		o.log.Info("summary sent", "mode", e.Mode, "latency_ms", e.Latency.Milliseconds())
		return
	}
	o.log.Error("summary send failed", "mode", e.Mode, "latency_ms", e.Latency.Milliseconds(),
		"code", e.Code, "err", e.Err)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnSend(SendEvent) {}

func notify(o Observer, e SendEvent) {
	if o == nil {
		return
	}
	e.Latency = time.Since(e.Start)
	e.Success = e.Err == nil
	e.Code = errorCode(e.Err)
	o.OnSend(e)
}
