// Package notify implements the silent notification channel used for
// secondary-action failures. Notifications never block or crash a page;
// they are logged and, at most, surfaced in a status line.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one notification.
type Event struct {
	ID      string
	Message string
	Err     error
	Time    time.Time
}

// Notifier receives non-blocking failure notifications from the controllers.
type Notifier interface {
	// Error reports a failed secondary action. Implementations must not block.
	Error(message string, err error)
}

// Slog is a Notifier that writes notifications to a structured logger.
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates a logger-backed notifier. A nil logger uses slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}

	return &Slog{logger: logger}
}

func (s *Slog) Error(message string, err error) {
	s.logger.Warn(message,
		slog.String("notification_id", uuid.NewString()),
		slog.String("error", err.Error()),
	)
}

// Memory is a Notifier that retains recent events, newest first. The TUI
// status line reads from it; tests use it to assert silent failures.
type Memory struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewMemory creates an in-memory notifier retaining up to limit events.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = 50
	}

	return &Memory{limit: limit}
}

func (m *Memory) Error(message string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append([]Event{{
		ID:      uuid.NewString(),
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}}, m.events...)

	if len(m.events) > m.limit {
		m.events = m.events[:m.limit]
	}
}

// Latest returns the most recent event, if any.
func (m *Memory) Latest() (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.events) == 0 {
		return Event{}, false
	}

	return m.events[0], true
}

// Events returns a copy of the retained events, newest first.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)

	return out
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Error(message string, err error) {
	for _, n := range m {
		n.Error(message, err)
	}
}
