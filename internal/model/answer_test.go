package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	a := Answer{Payload: []byte(`{"text":"Paris"}`)}
	p := a.DecodePayload()
	require.NotNil(t, p)
	assert.Equal(t, "Paris", p.Text)
}

func TestDecodePayloadDegenerate(t *testing.T) {
	assert.Nil(t, (&Answer{}).DecodePayload())
	assert.Nil(t, (&Answer{Payload: []byte(`{not json`)}).DecodePayload())
}

func TestAnswerDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a := Answer{StartDatetime: start, EndDatetime: start.Add(42 * time.Second)}
	assert.Equal(t, 42*time.Second, a.Duration())
}

func TestSetScoreValueMarshal(t *testing.T) {
	pct := 66.7
	raw, err := json.Marshal(SetScoreValue{Pct: &pct})
	require.NoError(t, err)
	assert.Equal(t, "66.7", string(raw))

	raw, err = json.Marshal(SetScoreValue{Sentinel: ScoreNotStarted})
	require.NoError(t, err)
	assert.Equal(t, `"not_started"`, string(raw))

	raw, err = json.Marshal(SetScoreValue{Sentinel: ScoreNotEvaluated})
	require.NoError(t, err)
	assert.Equal(t, `"not_evaluated"`, string(raw))

	// No access: null.
	raw, err = json.Marshal(SetScoreValue{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
