package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesOnlyItsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Empty("polygon", "no results"))

	assert.True(t, errors.Is(err, ErrEmptyResult))
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, KindEmptyResult, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	err := StatusError("twelvedata", 429, "slow down")

	assert.Equal(t, "twelvedata: rate limited (status: 429): slow down", err.Error())
	assert.Equal(t, "polygon: missing credential", MissingCredential("polygon").Error())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Malformed("finnhub", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": " 12.5 ", "b": 3000000000, "c": null, "d": 1.25e3}`), &v)

	require.NoError(t, err)
	assert.Equal(t, "12.5", v.A.String())
	assert.Equal(t, "3000000000", v.B.String())
	assert.Equal(t, "", v.C.String())
	assert.Equal(t, "1.25e3", v.D.String())
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"x": 1}`), &f))
}
