package sentiment

import (
	"fmt"
	"strings"

	"github.com/ternarybob/onetrade/internal/models"
)

// NoSummaryPlaceholder stands in for articles without a summary.
const NoSummaryPlaceholder = "No summary available."

const instructionTemplate = `You are a market analyst. Based only on the recent news articles about %s listed below, decide whether an investor should Buy, Wait, or Sell.

Respond with exactly one word on the first line: Buy, Wait, or Sell.
After the first line, explain the decision in plain text. Do not quote the articles directly; summarize them in your own words.

Articles:
%s`

// RenderArticles formats articles as numbered Title/Summary blocks.
func RenderArticles(articles []models.NewsArticle) string {
	var b strings.Builder
	for i, a := range articles {
		summary := strings.TrimSpace(a.Summary)
		if summary == "" {
			summary = NoSummaryPlaceholder
		}
		fmt.Fprintf(&b, "%d. Title: %s\n   Summary: %s\n", i+1, strings.TrimSpace(a.Headline), summary)
	}
	return b.String()
}

// BuildPrompt embeds the rendered window into the instruction template.
func BuildPrompt(window models.NewsWindow) string {
	return fmt.Sprintf(instructionTemplate, window.Ticker, RenderArticles(window.Articles))
}

// ParseVerdict splits generated text on its first line break. The first
// segment is the decision only when it case-insensitively equals Buy, Wait or
// Sell; otherwise the whole text is the explanation with no decision.
func ParseVerdict(text string) models.SentimentVerdict {
	text = strings.TrimSpace(text)

	first, rest, _ := strings.Cut(text, "\n")
	if decision, ok := models.ParseDecision(first); ok {
		return models.SentimentVerdict{
			Decision:    decision,
			Explanation: strings.TrimSpace(rest),
		}
	}
	return models.SentimentVerdict{Explanation: text}
}
