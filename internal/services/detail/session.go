package detail

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
)

// Update carries the result of one panel. Exactly one of the payload fields or
// Error is set, matching Panel.
type Update struct {
	SessionID string                   `json:"session_id"`
	Ticker    string                   `json:"ticker"`
	Panel     models.Panel             `json:"panel"`
	Info      *models.Resolution       `json:"info,omitempty"`
	Trends    models.TrendSet          `json:"trends,omitempty"`
	Price     *float64                 `json:"price,omitempty"`
	Sentiment *models.SentimentVerdict `json:"sentiment,omitempty"`
	Error     *models.PanelError       `json:"error,omitempty"`
}

// Sink receives panel updates. Calls are serialized per session.
type Sink func(Update)

// Session is one activation of a detail view. Its panel tasks share a
// context that Close cancels.
type Session struct {
	id     string
	ticker string
	ctx    context.Context
	cancel context.CancelFunc
	sink   Sink
	logger arbor.ILogger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	onClose func(*Session)
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ticker returns the ticker the session was opened for.
func (s *Session) Ticker() string {
	return s.ticker
}

// publish delivers u unless the session is closed. It reports whether the
// update was delivered.
func (s *Session) publish(u Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug().
			Str("session", s.id).
			Str("panel", string(u.Panel)).
			Msg("Discarding panel result after close")
		return false
	}
	u.SessionID = s.id
	u.Ticker = s.ticker
	s.sink(u)
	return true
}

// Wait blocks until every panel task has published or exited.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close discards any result not yet published, cancels pending tasks and
// waits for them to exit. The sink is never called after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	already := s.closed
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	if !already {
		s.logger.Debug().Str("session", s.id).Str("ticker", s.ticker).Msg("Detail session closed")
		if s.onClose != nil {
			s.onClose(s)
		}
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
