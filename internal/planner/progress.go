package planner

import (
	"time"

	"github.com/mvdberg/spoor/internal/types"
)

// Unlock gating: two weeks are visible from the start, one more unlocks
// per three completed sessions, capped at the full program.
const (
	baseUnlockedWeeks = 2
	unlockPerSessions = 3
	maxUnlockedWeeks  = 8
)

// Program shape used by the date-derived target pointer.
const (
	totalWeeks  = 8
	daysPerWeek = 7
)

// UnlockedWeeks returns how many weeks are visible for a given number of
// completed sessions: clamp(2 + n/3, 2, 8). Monotonic in n.
func UnlockedWeeks(completed int) int {
	if completed < 0 {
		completed = 0
	}
	unlocked := baseUnlockedWeeks + completed/unlockPerSessions
	if unlocked > maxUnlockedWeeks {
		return maxUnlockedWeeks
	}
	return unlocked
}

// CompletedCount returns the size of the completed-session set.
func CompletedCount(st *types.PlannerState) int {
	return len(st.Program.Progress.SessionsCompleted)
}

// CompletionPercent returns overall completion as a rounded percentage of
// all sessions in the program.
func CompletionPercent(st *types.PlannerState) int {
	total := len(st.SessionsByID)
	if total == 0 {
		return 0
	}
	return (CompletedCount(st)*100 + total/2) / total
}

// WeekComplete reports whether every session of the week has been
// completed, derived from the completed set rather than stored state.
func WeekComplete(st *types.PlannerState, weekID types.WeekID) bool {
	week := st.Week(weekID)
	if week == nil || len(week.Sessions) == 0 {
		return false
	}
	return weekComplete(week, &st.Program.Progress)
}

// NextOpenSession scans unlocked weeks in week order and sessions in their
// fixed definition order, returning the first session not yet completed,
// or nil when everything reachable is done.
func NextOpenSession(st *types.PlannerState) *types.SessionID {
	unlocked := UnlockedWeeks(CompletedCount(st))
	for _, number := range st.WeekNumbers() {
		if number > unlocked {
			break
		}
		week := st.Week(types.WeekID(number))
		if week == nil {
			continue
		}
		for _, id := range week.Sessions {
			if !st.Program.Progress.HasSession(id) {
				next := id
				return &next
			}
		}
	}
	return nil
}

// Target is the nominal position in the program derived from the start
// date: which week and which day-of-program today falls on, clamped into
// the 8x7 grid.
type Target struct {
	Week int
	Day  int
}

// CurrentTarget computes the target for the given moment. The engine's
// scheduling itself works on weekday names, not absolute dates; this
// pointer exists purely for display.
func CurrentTarget(startDate string, now time.Time) Target {
	start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
	if err != nil {
		start = now
	}

	diffDays := int(now.Sub(start).Hours() / 24)
	if diffDays < 0 {
		diffDays = 0
	}
	if limit := totalWeeks*daysPerWeek - 1; diffDays > limit {
		diffDays = limit
	}

	return Target{
		Week: diffDays/daysPerWeek + 1,
		Day:  diffDays%daysPerWeek + 1,
	}
}
