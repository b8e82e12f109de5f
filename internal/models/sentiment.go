package models

import "strings"

// Decision is a canonical Buy/Wait/Sell recommendation. The empty value means
// no decision could be parsed.
type Decision string

const (
	DecisionNone Decision = ""
	DecisionBuy  Decision = "Buy"
	DecisionWait Decision = "Wait"
	DecisionSell Decision = "Sell"
)

// ParseDecision case-insensitively matches s against the canonical decisions.
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return DecisionBuy, true
	case "wait":
		return DecisionWait, true
	case "sell":
		return DecisionSell, true
	}
	return DecisionNone, false
}

// SentimentVerdict is the structured result of a generated news summary.
type SentimentVerdict struct {
	Decision    Decision `json:"decision,omitempty"`
	Explanation string   `json:"explanation"`
}

// HasDecision reports whether a canonical decision was parsed.
func (v SentimentVerdict) HasDecision() bool {
	return v.Decision != DecisionNone
}
