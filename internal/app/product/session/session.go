// Package session serialises access to the change tracker so that the HTTP
// and gRPC transports behave like the single editor the tracker assumes.
package session

import (
	"io"
	"log"
	"sync"

	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Session owns the tracker of one editing session.
type Session struct {
	mu      sync.Mutex
	tracker *tracker.Tracker
	logger  *log.Logger
}

// New creates a Session. A nil logger discards output.
func New(t *tracker.Tracker, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		tracker: t,
		logger:  logger,
	}
}

// Do runs fn with exclusive access to the tracker.
func (s *Session) Do(fn func(t *tracker.Tracker) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.tracker)
}

// Logf writes a line to the session logger.
func (s *Session) Logf(format string, args ...any) {
	s.logger.Printf(format, args...)
}
