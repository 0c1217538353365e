package planner

import (
	"fmt"

	"github.com/mvdberg/spoor/internal/types"
)

// WarningType names a scheduling rule.
type WarningType string

const (
	// WarnRecovery fires when two adjacent days both carry a demanding
	// (medium/hard) session.
	WarnRecovery WarningType = "recovery"
	// WarnOverload fires when a single day carries more than one session.
	WarnOverload WarningType = "overload"
	// WarnRest fires when fewer than two days of the week are free.
	WarnRest WarningType = "rest"
)

// Warning is an advisory finding about a week's schedule. Warnings never
// block or undo the operation that produced them.
type Warning struct {
	Type    WarningType `json:"type"`
	Days    []types.Day `json:"days,omitempty"`
	Count   int         `json:"count,omitempty"`
	Message string      `json:"message"`
}

// ValidateWeek inspects a week's calendar against the scheduling rules.
// Every rule is evaluated independently and all applicable warnings are
// returned: recovery warnings in day order, then overload warnings in day
// order, then the rest warning.
func ValidateWeek(week *types.Week, sessions map[types.SessionID]*types.Session) []Warning {
	warnings := []Warning{}

	demandingDay := func(day types.Day) bool {
		return anyDemanding(week.Calendar.On(day), sessions)
	}

	// Adjacent pairs Mon-Tue through Sat-Sun; no wraparound to Monday.
	for i := 0; i < len(types.Days)-1; i++ {
		a, b := types.Days[i], types.Days[i+1]
		if demandingDay(a) && demandingDay(b) {
			warnings = append(warnings, Warning{
				Type:    WarnRecovery,
				Days:    []types.Day{a, b},
				Message: fmt.Sprintf("%s en %s zijn allebei medium/moeilijk.", a, b),
			})
		}
	}

	for _, day := range types.Days {
		if n := len(week.Calendar.On(day)); n > 1 {
			warnings = append(warnings, Warning{
				Type:    WarnOverload,
				Days:    []types.Day{day},
				Count:   n,
				Message: fmt.Sprintf("%s heeft %d sessies gepland.", day, n),
			})
		}
	}

	if week.Calendar.RestDays() < 2 {
		warnings = append(warnings, Warning{
			Type:    WarnRest,
			Message: "Weinig rustdagen over. Let op focus en frustratie.",
		})
	}

	return warnings
}
