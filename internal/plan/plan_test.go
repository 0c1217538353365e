package plan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlanJSON() string {
	var weeks []string
	for w := 1; w <= TotalWeeks; w++ {
		var sessions []string
		for s := 1; s <= SessionsPerWeek; s++ {
			sessions = append(sessions, fmt.Sprintf(
				`{"title":"Sessie %d.%d","goal":"doel","track":"10 m gras","snacks":"om de meter","materials":[]}`, w, s))
		}
		weeks = append(weeks, fmt.Sprintf(
			`{"weekNumber":%d,"theme":"Week %d","sessions":[%s]}`, w, w, strings.Join(sessions, ",")))
	}
	return fmt.Sprintf(`{"weeks":[%s]}`, strings.Join(weeks, ","))
}

func TestDecodeValidPlan(t *testing.T) {
	p, err := Decode(strings.NewReader(validPlanJSON()))
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Len(t, p.Weeks, TotalWeeks)
	assert.Equal(t, "Sessie 3.2", p.Weeks[2].Sessions[1].Title)
}

// A plan whose weeks key is missing or the wrong type decodes as empty
// rather than failing; Validate then reports the real problem.
func TestDecodeTolerantWeeks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing weeks", `{}`},
		{"weeks is null", `{"weeks":null}`},
		{"weeks is an object", `{"weeks":{"w1":[]}}`},
		{"weeks is a string", `{"weeks":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Empty(t, p.Weeks)
			assert.Error(t, p.Validate())
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"weeks": [`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Plan {
		p, err := Decode(strings.NewReader(validPlanJSON()))
		require.NoError(t, err)
		return p
	}

	t.Run("wrong week count", func(t *testing.T) {
		p := base()
		p.Weeks = p.Weeks[:7]
		assert.ErrorContains(t, p.Validate(), "8 weeks")
	})

	t.Run("out of order numbering", func(t *testing.T) {
		p := base()
		p.Weeks[3].WeekNumber = 9
		assert.ErrorContains(t, p.Validate(), "position 3")
	})

	t.Run("wrong session count", func(t *testing.T) {
		p := base()
		p.Weeks[1].Sessions = p.Weeks[1].Sessions[:2]
		assert.ErrorContains(t, p.Validate(), "week 2")
	})

	t.Run("missing title", func(t *testing.T) {
		p := base()
		p.Weeks[4].Sessions[0].Title = ""
		assert.ErrorContains(t, p.Validate(), "no title")
	})
}
