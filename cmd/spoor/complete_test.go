package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetCompleteFlags restores the complete command's flag variables to
// their declared defaults between table cases.
func resetCompleteFlags() {
	completeDate = ""
	completeSurface = ""
	completeWeather = ""
	completeScore = 3
	completeFocus = ""
	completeNotes = ""
	completePhoto = ""
	completeNoseDown = false
	completeCalmPace = false
	completeFoundTurn = false
	completeDistracted = false
}

func TestEvaluationPayloadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr string
	}{
		{"malformed date", func() { completeDate = "06-01-2026" }, "YYYY-MM-DD"},
		{"impossible date", func() { completeDate = "2026-13-45" }, "YYYY-MM-DD"},
		{"score too low", func() { completeScore = 0 }, "between 1 and 5"},
		{"score too high", func() { completeScore = 6 }, "between 1 and 5"},
		{"unknown surface", func() { completeSurface = "beton" }, "unknown surface"},
		{"unknown focus", func() { completeFocus = "enorm" }, "unknown focus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCompleteFlags()
			tt.setup()
			_, err := evaluationPayload(false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEvaluationPayloadAcceptsVocabulary(t *testing.T) {
	for _, surface := range []string{"", "gras", "bos", "zand", "mix", "asfalt", "grind"} {
		for _, focus := range []string{"", "laag", "middel", "hoog"} {
			resetCompleteFlags()
			completeSurface = surface
			completeFocus = focus
			_, err := evaluationPayload(false)
			assert.NoError(t, err, "surface %q focus %q", surface, focus)
		}
	}
	for _, score := range []int{1, 5} {
		resetCompleteFlags()
		completeScore = score
		_, err := evaluationPayload(false)
		assert.NoError(t, err, "score %d", score)
	}
}

func TestEvaluationPayloadDefaultsDateToToday(t *testing.T) {
	resetCompleteFlags()
	payload, err := evaluationPayload(false)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), payload.Date)
	assert.Equal(t, 3, payload.SuccessScore)
}

func TestEvaluationPayloadCarriesObservations(t *testing.T) {
	resetCompleteFlags()
	completeDate = "2026-02-10"
	completeSurface = "bos"
	completeWeather = "regen"
	completeScore = 4
	completeFocus = "hoog"
	completeNotes = "rustig gewerkt"
	completePhoto = "IMG_0123"
	completeNoseDown = true
	completeCalmPace = true
	completeDistracted = true

	payload, err := evaluationPayload(false)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", payload.Date)
	assert.Equal(t, "bos", payload.Surface)
	assert.Equal(t, "regen", payload.Weather)
	assert.Equal(t, 4, payload.SuccessScore)
	assert.Equal(t, "hoog", payload.Focus)
	assert.Equal(t, "rustig gewerkt", payload.Notes)
	assert.Equal(t, "IMG_0123", payload.PhotoRef)
	assert.True(t, payload.NoseDown)
	assert.True(t, payload.CalmPace)
	assert.True(t, payload.Distracted)
}

// The turn observation is three-valued: absent until the flag is given,
// then whatever the flag says, including an explicit false.
func TestEvaluationPayloadFoundTurn(t *testing.T) {
	resetCompleteFlags()
	completeFoundTurn = true
	payload, err := evaluationPayload(false)
	require.NoError(t, err)
	assert.Nil(t, payload.FoundTurn)

	resetCompleteFlags()
	completeFoundTurn = true
	payload, err = evaluationPayload(true)
	require.NoError(t, err)
	require.NotNil(t, payload.FoundTurn)
	assert.True(t, *payload.FoundTurn)

	resetCompleteFlags()
	payload, err = evaluationPayload(true)
	require.NoError(t, err)
	require.NotNil(t, payload.FoundTurn)
	assert.False(t, *payload.FoundTurn)
}
