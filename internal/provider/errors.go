// Package provider holds the plumbing shared by every external data provider client:
// the failure taxonomy and a rate-limited JSON-over-HTTP client.
package provider

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredential
	KindInvalidRequest
	KindTransportFailure
	KindMalformedResponse
	KindRateLimited
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing credential"
	case KindInvalidRequest:
		return "invalid request"
	case KindTransportFailure:
		return "transport failure"
	case KindMalformedResponse:
		return "malformed response"
	case KindRateLimited:
		return "rate limited"
	case KindEmptyResult:
		return "empty result"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a *Error of the matching kind.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrTransportFailure  = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRateLimited       = errors.New("rate limited")
	ErrEmptyResult       = errors.New("empty result")
)

var kindSentinels = map[Kind]error{
	KindMissingCredential: ErrMissingCredential,
	KindInvalidRequest:    ErrInvalidRequest,
	KindTransportFailure:  ErrTransportFailure,
	KindMalformedResponse: ErrMalformedResponse,
	KindRateLimited:       ErrRateLimited,
	KindEmptyResult:       ErrEmptyResult,
}

// Error is the failure returned by every provider operation.
type Error struct {
	Provider   string
	Kind       Kind
	StatusCode int // set for transport failures caused by an HTTP status
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// NewError builds a provider error of the given kind.
func NewError(providerName string, kind Kind, cause error) *Error {
	return &Error{Provider: providerName, Kind: kind, Err: cause}
}

// MissingCredential reports an empty API key, checked before any network call.
func MissingCredential(providerName string) *Error {
	return NewError(providerName, KindMissingCredential, nil)
}

// StatusError maps a non-2xx HTTP status to a provider error. 429 is reported as RateLimited.
func StatusError(providerName string, statusCode int, body string) *Error {
	kind := KindTransportFailure
	if statusCode == 429 {
		kind = KindRateLimited
	}
	var cause error
	if body != "" {
		cause = errors.New(body)
	}
	return &Error{Provider: providerName, Kind: kind, StatusCode: statusCode, Err: cause}
}

// Empty reports a technically successful response with no usable payload.
func Empty(providerName, reason string) *Error {
	return NewError(providerName, KindEmptyResult, errors.New(reason))
}

// Malformed reports a response that could not be parsed.
func Malformed(providerName string, cause error) *Error {
	return NewError(providerName, KindMalformedResponse, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return KindUnknown
}
