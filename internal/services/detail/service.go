// Package detail assembles the stock detail view from four independently
// loaded panels: company info, trends, current price and news sentiment.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/services/sentiment"
)

// ErrTickerRequired is returned for an empty ticker.
var ErrTickerRequired = errors.New("ticker is required")

// Service launches detail sessions.
type Service struct {
	info      interfaces.CompanyInfoResolver
	trends    interfaces.TrendLoader
	price     interfaces.PriceProvider
	sentiment interfaces.SentimentSynthesizer
	logger    arbor.ILogger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates a detail service.
func NewService(
	info interfaces.CompanyInfoResolver,
	trends interfaces.TrendLoader,
	price interfaces.PriceProvider,
	synth interfaces.SentimentSynthesizer,
	logger arbor.ILogger,
) *Service {
	return &Service{
		info:      info,
		trends:    trends,
		price:     price,
		sentiment: synth,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Open starts the four panel tasks for ticker. Each task publishes exactly one
// Update for its own panel through sink, unless the session is closed first.
func (s *Service) Open(ctx context.Context, ticker string, sink Sink) *Session {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	sessionCtx, cancel := context.WithCancel(ctx)

	sess := &Session{
		id:      common.NewSessionID(),
		ticker:  ticker,
		ctx:     sessionCtx,
		cancel:  cancel,
		sink:    sink,
		logger:  s.logger,
		onClose: s.forget,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Debug().Str("session", sess.id).Str("ticker", ticker).Msg("Detail session opened")

	tasks := map[models.Panel]func(context.Context, string) Update{
		models.PanelInfo:      s.loadInfo,
		models.PanelTrend:     s.loadTrend,
		models.PanelPrice:     s.loadPrice,
		models.PanelSentiment: s.loadSentiment,
	}

	sess.wg.Add(len(models.AllPanels))
	for _, panel := range models.AllPanels {
		panel, task := panel, tasks[panel]
		common.SafeGo(s.logger, "detail:"+string(panel), func() {
			defer sess.wg.Done()

			start := time.Now()
			u := task(sess.ctx, ticker)
			u.Panel = panel
			delivered := sess.publish(u)

			s.logger.Debug().
				Str("session", sess.id).
				Str("panel", string(panel)).
				Bool("failed", u.Error != nil).
				Bool("delivered", delivered).
				Dur("duration", time.Since(start)).
				Msg("Panel loaded")
		})
	}

	return sess
}

// LoadDetail loads all four panels and returns when each has completed. A
// failing panel is reported in its error field and never affects the others.
// An error is returned only for an empty ticker or when ctx ends first.
func (s *Service) LoadDetail(ctx context.Context, ticker string) (*models.StockDetail, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrTickerRequired
	}

	detail := &models.StockDetail{Ticker: ticker}
	sess := s.Open(ctx, ticker, func(u Update) {
		Apply(detail, u)
	})

	done := make(chan struct{})
	go func() {
		sess.Wait()
		close(done)
	}()

	select {
	case <-done:
		sess.Close()
		return detail, nil
	case <-ctx.Done():
		sess.Close()
		return nil, ctx.Err()
	}
}

// CloseAll closes every open session.
func (s *Service) CloseAll() {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.Close()
	}
}

// ActiveSessions returns the number of sessions not yet closed.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) forget(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// Apply writes an update into the panel's slice of detail.
func Apply(detail *models.StockDetail, u Update) {
	switch u.Panel {
	case models.PanelInfo:
		detail.Info, detail.InfoError = u.Info, u.Error
	case models.PanelTrend:
		detail.Trends, detail.TrendError = u.Trends, u.Error
	case models.PanelPrice:
		detail.Price, detail.PriceError = u.Price, u.Error
	case models.PanelSentiment:
		detail.Sentiment, detail.SentimentError = u.Sentiment, u.Error
	}
}

func (s *Service) loadInfo(ctx context.Context, ticker string) Update {
	res, err := s.info.Resolve(ctx, ticker)
	if err != nil {
		return Update{Error: panelError(models.PanelInfo, "Company info unavailable", err)}
	}
	return Update{Info: res}
}

func (s *Service) loadTrend(ctx context.Context, ticker string) Update {
	set, err := s.trends.Load(ctx, ticker)
	if err != nil {
		return Update{Error: panelError(models.PanelTrend, "Trend unavailable", err)}
	}
	return Update{Trends: set}
}

func (s *Service) loadPrice(ctx context.Context, ticker string) Update {
	price, err := s.price.FetchCurrentPrice(ctx, ticker)
	if err != nil {
		return Update{Error: panelError(models.PanelPrice, "Price unavailable", err)}
	}
	return Update{Price: &price}
}

func (s *Service) loadSentiment(ctx context.Context, ticker string) Update {
	verdict, err := s.sentiment.Synthesize(ctx, ticker)
	if err != nil {
		label := "Sentiment unavailable"
		var stageErr *sentiment.StageError
		if errors.As(err, &stageErr) {
			label = stageErr.Label()
		}
		return Update{Error: panelError(models.PanelSentiment, label, err)}
	}
	return Update{Sentiment: verdict}
}

func panelError(panel models.Panel, label string, err error) *models.PanelError {
	return &models.PanelError{
		Panel:   panel,
		Label:   label,
		Message: fmt.Sprint(err),
	}
}
