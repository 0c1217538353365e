package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdberg/spoor/internal/types"
)

func TestUnlockedWeeks(t *testing.T) {
	tests := []struct {
		completed int
		want      int
	}{
		{-1, 2},
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 3},
		{5, 3},
		{6, 4},
		{11, 5},
		{17, 7},
		{18, 8},
		{21, 8},
		{24, 8},
		{100, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UnlockedWeeks(tt.completed), "completed=%d", tt.completed)
	}
}

func TestCompletionPercent(t *testing.T) {
	st := newTestState(t)
	assert.Equal(t, 0, CompletionPercent(st))

	for s := 1; s <= 3; s++ {
		CompleteSession(st, types.SessionID{Week: 1, Ordinal: s}, CompletePayload{Date: "2026-01-06"})
	}
	// 3 of 24 rounds to 13.
	assert.Equal(t, 13, CompletionPercent(st))

	empty := &types.PlannerState{SessionsByID: map[types.SessionID]*types.Session{}}
	assert.Equal(t, 0, CompletionPercent(empty))
}

func TestNextOpenSession(t *testing.T) {
	st := newTestState(t)

	next := NextOpenSession(st)
	require.NotNil(t, next)
	assert.Equal(t, types.SessionID{Week: 1, Ordinal: 1}, *next)

	CompleteSession(st, *next, CompletePayload{Date: "2026-01-06"})
	next = NextOpenSession(st)
	require.NotNil(t, next)
	assert.Equal(t, types.SessionID{Week: 1, Ordinal: 2}, *next)
}

// The scan never reaches past the unlock horizon: with weeks 1 and 2 fully
// done, six completions unlock only four weeks, so the pointer lands in
// week 3 rather than racing ahead.
func TestNextOpenSessionHonorsUnlockGate(t *testing.T) {
	st := newTestState(t)
	for w := 1; w <= 2; w++ {
		for s := 1; s <= 3; s++ {
			CompleteSession(st, types.SessionID{Week: w, Ordinal: s},
				CompletePayload{Date: fmt.Sprintf("2026-01-%02d", w*3+s)})
		}
	}

	next := NextOpenSession(st)
	require.NotNil(t, next)
	assert.Equal(t, types.SessionID{Week: 3, Ordinal: 1}, *next)
}

func TestNextOpenSessionAllUnlockedDone(t *testing.T) {
	st := newTestState(t)
	for w := 1; w <= 8; w++ {
		for s := 1; s <= 3; s++ {
			CompleteSession(st, types.SessionID{Week: w, Ordinal: s},
				CompletePayload{Date: fmt.Sprintf("2026-02-%02d", w*3+s-3)})
		}
	}
	assert.Nil(t, NextOpenSession(st))
}

func TestCurrentTarget(t *testing.T) {
	parse := func(value string) time.Time {
		now, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return now
	}

	tests := []struct {
		name     string
		start    string
		now      string
		wantWeek int
		wantDay  int
	}{
		{"first day", "2026-01-05", "2026-01-05", 1, 1},
		{"mid first week", "2026-01-05", "2026-01-08", 1, 4},
		{"second week", "2026-01-05", "2026-01-12", 2, 1},
		{"last day of program", "2026-01-05", "2026-03-01", 8, 7},
		{"past the program clamps", "2026-01-05", "2026-06-01", 8, 7},
		{"start in the future clamps", "2026-06-01", "2026-01-05", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := CurrentTarget(tt.start, parse(tt.now))
			assert.Equal(t, tt.wantWeek, target.Week)
			assert.Equal(t, tt.wantDay, target.Day)
		})
	}
}

func TestCurrentTargetBadStartDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	target := CurrentTarget("not-a-date", now)
	assert.Equal(t, Target{Week: 1, Day: 1}, target)
}
