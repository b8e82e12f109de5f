package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

// mockNewsProvider implements interfaces.NewsProvider for testing
type mockNewsProvider struct {
	fetchFunc func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error)
	from, to  time.Time
}

func (m *mockNewsProvider) Name() string {
	return "mocknews"
}

func (m *mockNewsProvider) FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
	m.from, m.to = from, to
	return m.fetchFunc(ctx, symbol, from, to)
}

// mockGenerator implements interfaces.TextGenerator for testing
type mockGenerator struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	prompt       string
	calls        int
}

func (m *mockGenerator) Name() string {
	return "mockgen"
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.generateFunc(ctx, prompt)
}

var fixedNow = time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

func articles(n int) []models.NewsArticle {
	out := make([]models.NewsArticle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.NewsArticle{
			Headline: fmt.Sprintf("Headline %d", i),
			Summary:  fmt.Sprintf("Summary %d", i),
			Datetime: fixedNow.Add(-time.Duration(i) * time.Hour).Unix(),
		})
	}
	return out
}

func newSynth(news *mockNewsProvider, gen *mockGenerator, maxArticles int) *Synthesizer {
	return NewSynthesizer(news, gen, maxArticles, 0, arbor.NewLogger()).
		WithClock(func() time.Time { return fixedNow })
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		decision    models.Decision
		explanation string
	}{
		{"buy with explanation", "Buy\nStrong earnings.", models.DecisionBuy, "Strong earnings."},
		{"case insensitive", "sELL\nGuidance cut.\nMargins shrinking.", models.DecisionSell, "Guidance cut.\nMargins shrinking."},
		{"surrounding whitespace", "  Wait  \n\n  Mixed signals.  ", models.DecisionWait, "Mixed signals."},
		{"decision only", "Buy", models.DecisionBuy, ""},
		{"not a decision", "Maybe later", models.DecisionNone, "Maybe later"},
		{"decision inside sentence", "I would Buy\nbecause", models.DecisionNone, "I would Buy\nbecause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.text)
			assert.Equal(t, tt.decision, v.Decision)
			assert.Equal(t, tt.explanation, v.Explanation)
			assert.Equal(t, tt.decision != models.DecisionNone, v.HasDecision())
		})
	}
}

func TestRenderArticles(t *testing.T) {
	out := RenderArticles([]models.NewsArticle{
		{Headline: "Apple beats estimates", Summary: "Revenue up."},
		{Headline: "Apple event", Summary: "   "},
	})

	assert.Contains(t, out, "1. Title: Apple beats estimates\n   Summary: Revenue up.\n")
	assert.Contains(t, out, "2. Title: Apple event\n   Summary: "+NoSummaryPlaceholder+"\n")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(models.NewsWindow{Ticker: "AAPL", Articles: articles(1)})

	assert.Contains(t, prompt, "about AAPL")
	assert.Contains(t, prompt, "Buy, Wait, or Sell")
	assert.True(t, strings.HasSuffix(prompt, "Summary: Summary 0\n"))
}

func TestSynthesize(t *testing.T) {
	news := &mockNewsProvider{fetchFunc: func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
		assert.Equal(t, "AAPL", symbol)
		return articles(3), nil
	}}
	gen := &mockGenerator{generateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "Buy\nStrong earnings.", nil
	}}

	verdict, err := newSynth(news, gen, 0).Synthesize(context.Background(), "aapl")

	require.NoError(t, err)
	assert.Equal(t, models.DecisionBuy, verdict.Decision)
	assert.Equal(t, "Strong earnings.", verdict.Explanation)
	assert.Contains(t, gen.prompt, "Headline 2")
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), news.to)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), news.from)
}

func TestWindow_KeepsMostRecentArticles(t *testing.T) {
	input := articles(40)
	// Reverse so the provider order is oldest first.
	for i, j := 0, len(input)-1; i < j; i, j = i+1, j-1 {
		input[i], input[j] = input[j], input[i]
	}
	news := &mockNewsProvider{fetchFunc: func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
		return input, nil
	}}

	window, err := newSynth(news, nil, 0).Window(context.Background(), "AAPL")

	require.NoError(t, err)
	require.Len(t, window.Articles, DefaultMaxArticles)
	assert.Equal(t, "Headline 0", window.Articles[0].Headline)
	assert.Equal(t, "Headline 29", window.Articles[DefaultMaxArticles-1].Headline)
}

func TestWindow_CustomLimit(t *testing.T) {
	news := &mockNewsProvider{fetchFunc: func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
		return articles(10), nil
	}}

	window, err := newSynth(news, nil, 4).Window(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Len(t, window.Articles, 4)
}

func TestSynthesize_NewsStageFailures(t *testing.T) {
	tests := []struct {
		name     string
		articles []models.NewsArticle
		err      error
		wantIs   error
	}{
		{"provider error", nil, provider.StatusError("mocknews", 500, ""), provider.ErrTransportFailure},
		{"no articles", nil, nil, provider.ErrEmptyResult},
		{"missing credential", nil, provider.MissingCredential("mocknews"), provider.ErrMissingCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news := &mockNewsProvider{fetchFunc: func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return tt.articles, nil
			}}
			gen := &mockGenerator{generateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "Buy", nil
			}}

			verdict, err := newSynth(news, gen, 0).Synthesize(context.Background(), "AAPL")

			assert.Nil(t, verdict)
			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, StageNews, stageErr.Stage)
			assert.Equal(t, "News unavailable", stageErr.Label())
			assert.True(t, errors.Is(err, tt.wantIs))
			assert.Equal(t, 0, gen.calls, "generator must not run without news")
		})
	}
}

func TestSynthesize_GenerationStageFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		err    error
		wantIs error
	}{
		{"generator error", "", provider.StatusError("mockgen", 429, ""), provider.ErrRateLimited},
		{"blank text", "  \n ", nil, provider.ErrEmptyResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news := &mockNewsProvider{fetchFunc: func(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
				return articles(2), nil
			}}
			gen := &mockGenerator{generateFunc: func(ctx context.Context, prompt string) (string, error) {
				return tt.text, tt.err
			}}

			_, err := newSynth(news, gen, 0).Synthesize(context.Background(), "AAPL")

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, StageGeneration, stageErr.Stage)
			assert.Equal(t, "Summary generation failed", stageErr.Label())
			assert.True(t, errors.Is(err, tt.wantIs))
		})
	}
}

func TestRenderExplanationHTML(t *testing.T) {
	html, err := RenderExplanationHTML("**Strong** earnings.\n\n- iPhone sales up")

	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Strong</strong>")
	assert.Contains(t, html, "<li>iPhone sales up</li>")
}

func TestRenderExplanationHTML_DropsRawHTML(t *testing.T) {
	html, err := RenderExplanationHTML("<script>alert(1)</script>")

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
