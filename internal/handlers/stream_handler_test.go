package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/services/detail"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, ticker string) (*models.Resolution, error) {
	return &models.Resolution{Text: "About " + ticker, Origin: models.OriginSynthesizedText, Provider: "stub"}, nil
}

type stubTrends struct{}

func (stubTrends) Load(ctx context.Context, ticker string) (models.TrendSet, error) {
	return nil, errors.New("no series")
}

type stubPrice struct{}

func (stubPrice) Name() string { return "stub" }

func (stubPrice) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	return 42.5, nil
}

// stubSentiment blocks until released or cancelled.
type stubSentiment struct {
	release   chan struct{}
	cancelled chan struct{}
}

func (s *stubSentiment) Synthesize(ctx context.Context, ticker string) (*models.SentimentVerdict, error) {
	select {
	case <-s.release:
		return &models.SentimentVerdict{Decision: models.DecisionWait, Explanation: "Mixed."}, nil
	case <-ctx.Done():
		close(s.cancelled)
		return nil, ctx.Err()
	}
}

func newStreamServer(t *testing.T, synth *stubSentiment) (*detail.Service, string) {
	t.Helper()
	svc := detail.NewService(stubResolver{}, stubTrends{}, stubPrice{}, synth, arbor.NewLogger())
	handler := NewStreamHandler(svc, arbor.NewLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleStream))
	t.Cleanup(server.Close)

	return svc, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/stocks/"
}

type streamMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func TestHandleStream_SendsEveryPanelThenDone(t *testing.T) {
	synth := &stubSentiment{release: make(chan struct{}), cancelled: make(chan struct{})}
	close(synth.release)
	svc, wsURL := newStreamServer(t, synth)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"aapl", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	panels := make(map[models.Panel]detail.Update)
	var done DonePayload
	for {
		var msg streamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == MessageDone {
			require.NoError(t, json.Unmarshal(msg.Payload, &done))
			break
		}
		require.Equal(t, MessagePanel, msg.Type)
		var u detail.Update
		require.NoError(t, json.Unmarshal(msg.Payload, &u))
		panels[u.Panel] = u
	}

	require.Len(t, panels, len(models.AllPanels))
	assert.Equal(t, "AAPL", done.Ticker)
	assert.NotEmpty(t, done.SessionID)
	assert.Equal(t, 1, done.Failed)

	assert.Equal(t, "About AAPL", panels[models.PanelInfo].Info.Text)
	assert.Equal(t, 42.5, *panels[models.PanelPrice].Price)
	assert.Equal(t, models.DecisionWait, panels[models.PanelSentiment].Sentiment.Decision)
	require.NotNil(t, panels[models.PanelTrend].Error)
	assert.Equal(t, "Trend unavailable", panels[models.PanelTrend].Error.Label)
	for _, u := range panels {
		assert.Equal(t, done.SessionID, u.SessionID)
	}

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected normal close, got %v", err)
	assert.Equal(t, 0, svc.ActiveSessions())
}

func TestHandleStream_DisconnectCancelsPendingPanels(t *testing.T) {
	synth := &stubSentiment{release: make(chan struct{}), cancelled: make(chan struct{})}
	svc, wsURL := newStreamServer(t, synth)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"MSFT", nil)
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for i := 0; i < 3; i++ {
		var msg streamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, MessagePanel, msg.Type)
	}
	conn.Close()

	select {
	case <-synth.cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("pending sentiment panel was not cancelled after disconnect")
	}

	assert.Eventually(t, func() bool {
		return svc.ActiveSessions() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHandleStream_MissingTicker(t *testing.T) {
	handler := NewStreamHandler(nil, arbor.NewLogger())

	w := httptest.NewRecorder()
	handler.HandleStream(w, httptest.NewRequest("GET", "/ws/stocks/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
