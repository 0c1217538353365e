package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendarMaterializesAllDays(t *testing.T) {
	c := NewCalendar()
	assert.Len(t, c, 7)
	for _, day := range Days {
		ids, ok := c[day]
		assert.True(t, ok)
		assert.Empty(t, ids)
	}
	assert.Equal(t, 7, c.RestDays())
}

func TestCalendarAppendRemoveDayOf(t *testing.T) {
	c := NewCalendar()
	a := SessionID{Week: 1, Ordinal: 1}
	b := SessionID{Week: 1, Ordinal: 2}

	c.Append(Tuesday, a)
	c.Append(Tuesday, b)
	assert.Equal(t, []SessionID{a, b}, c.On(Tuesday))

	day, ok := c.DayOf(a)
	assert.True(t, ok)
	assert.Equal(t, Tuesday, day)

	_, ok = c.DayOf(SessionID{Week: 9, Ordinal: 9})
	assert.False(t, ok)

	c.Remove(a)
	assert.Equal(t, []SessionID{b}, c.On(Tuesday))
	assert.Equal(t, 6, c.RestDays())
}

func TestCalendarSnapshotIsIndependent(t *testing.T) {
	c := NewCalendar()
	a := SessionID{Week: 1, Ordinal: 1}
	c.Append(Saturday, a)

	snap := c.Snapshot()
	c.Clear()

	assert.Empty(t, c.On(Saturday))
	assert.Equal(t, []SessionID{a}, snap.On(Saturday))
}

// The persisted document keys calendars by the Dutch day names.
func TestCalendarJSONRoundTrip(t *testing.T) {
	c := NewCalendar()
	c.Append(Thursday, SessionID{Week: 2, Ordinal: 2})

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Do":["w2-s2"]`)

	var decoded Calendar
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c, decoded)
}
