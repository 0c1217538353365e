package planner

import (
	"fmt"

	"github.com/mvdberg/spoor/internal/types"
)

// MoveStrategy selects how MoveSession treats an occupied destination day.
type MoveStrategy string

const (
	// StrategyAppend adds the session to the end of the destination day.
	StrategyAppend MoveStrategy = "append"
	// StrategySwap displaces the first session on the destination day back
	// to the origin day. A single-slot swap, not a rotation.
	StrategySwap MoveStrategy = "swap"
)

// Options carries the optional modifiers of a reschedule.
type Options struct {
	// LightVersion marks the session to be run in its reduced adaptive form.
	LightVersion bool
}

// Move records one session relocation observed by a reshuffle.
type Move struct {
	SessionID types.SessionID `json:"sessionId"`
	From      types.Day       `json:"from"`
	To        types.Day       `json:"to"`
}

// Result is the uniform return value of every engine operation. OK=false
// means a precondition failed and the state was not touched. Warnings are
// advisory only and never mean the operation was blocked.
type Result struct {
	OK       bool            `json:"ok"`
	Message  string          `json:"message,omitempty"`
	Warnings []Warning       `json:"warnings,omitempty"`
	Moved    []Move          `json:"moved,omitempty"`
	Log      *types.LogEntry `json:"logEntry,omitempty"`
}

func failed(message string) Result {
	return Result{OK: false, Message: message}
}

// MoveSession relocates a session to another day within its own week.
// The session is first removed from every day and the backlog, not just
// fromDay, so the at-most-one-location invariant holds even when the
// caller's idea of the origin is stale.
func MoveSession(st *types.PlannerState, id types.SessionID, fromDay, toDay types.Day, strategy MoveStrategy, opts Options) Result {
	session := st.Session(id)
	if session == nil {
		return failed("Ongeldige verplaatsing")
	}
	week := st.Week(session.WeekID)
	if week == nil || !fromDay.IsValid() || !toDay.IsValid() {
		return failed("Ongeldige verplaatsing")
	}

	week.Unschedule(id)

	if strategy == StrategySwap && len(week.Calendar.On(toDay)) > 0 {
		displaced := week.Calendar.On(toDay)[0]
		week.Calendar[toDay] = week.Calendar[toDay][1:]
		week.Calendar.Append(fromDay, displaced)
		if moved := st.Session(displaced); moved != nil {
			moved.Status = types.StatusMoved
		}
	}
	week.Calendar.Append(toDay, id)

	if opts.LightVersion {
		session.IsLightVersion = true
	}
	session.Status = types.StatusMoved

	return Result{OK: true, Warnings: ValidateWeek(week, st.SessionsByID)}
}

// MarkSessionMissed takes a session off the calendar entirely and parks it
// in the week's backlog. A backlog session occupies no calendar day.
func MarkSessionMissed(st *types.PlannerState, id types.SessionID, day types.Day) Result {
	session := st.Session(id)
	if session == nil {
		return failed("Onbekende sessie")
	}
	week := st.Week(session.WeekID)
	if week == nil {
		return failed("Onbekende week")
	}
	if day != "" && !day.IsValid() {
		return failed("Ongeldige dag")
	}

	week.Unschedule(id)
	week.AddToBacklog(id)
	session.Status = types.StatusMissed

	return Result{OK: true, Warnings: ValidateWeek(week, st.SessionsByID)}
}

// ReplanFromBacklog puts a missed session back on the calendar. The
// session must currently sit in its week's backlog.
func ReplanFromBacklog(st *types.PlannerState, id types.SessionID, toDay types.Day, opts Options) Result {
	session := st.Session(id)
	if session == nil {
		return failed("Onbekende sessie")
	}
	week := st.Week(session.WeekID)
	if week == nil || !toDay.IsValid() {
		return failed("Ongeldige herplanning")
	}
	if !week.InBacklog(id) {
		return failed(fmt.Sprintf("Sessie %s staat niet in de backlog", id))
	}

	week.RemoveFromBacklog(id)
	week.Calendar.Append(toDay, id)
	if opts.LightVersion {
		session.IsLightVersion = true
	}
	session.Status = types.StatusMoved

	return Result{OK: true, Warnings: ValidateWeek(week, st.SessionsByID)}
}

// preferredDays is the slot priority used by the auto reshuffle. Adjacency
// checks still follow natural Monday-to-Sunday order.
var preferredDays = []types.Day{
	types.Tuesday, types.Thursday, types.Saturday,
	types.Monday, types.Wednesday, types.Friday, types.Sunday,
}

// AutoReshuffleWeek clears the week's calendar and redistributes all of
// its sessions. For each session in original week order it picks the first
// preferred day that is empty and does not put two demanding sessions on
// adjacent days; failing that, the first day that merely avoids the
// adjacency clash; failing even that, the top-priority day unconditionally.
// The returned Moved list is the before/after calendar diff.
func AutoReshuffleWeek(st *types.PlannerState, weekID types.WeekID) Result {
	week := st.Week(weekID)
	if week == nil {
		return failed("Onbekende week")
	}

	before := week.Calendar.Snapshot()
	week.Calendar.Clear()

	for _, id := range week.Sessions {
		wasParked := week.InBacklog(id)
		week.RemoveFromBacklog(id)

		day := findBestDay(week, id, st.SessionsByID)
		week.Calendar.Append(day, id)

		// A backlogged session pulled back onto the calendar counts as
		// rescheduled; sessions that merely changed slot keep their status.
		if wasParked {
			if session := st.Session(id); session != nil {
				session.Status = types.StatusMoved
			}
		}
	}

	return Result{
		OK:       true,
		Moved:    diffCalendars(before, week.Calendar),
		Warnings: ValidateWeek(week, st.SessionsByID),
	}
}

// ResetWeek restores the default Tue/Thu/Sat layout, empties backlog and
// notes, and resets every session to its planned state. Completion and
// progress are untouched.
func ResetWeek(st *types.PlannerState, weekID types.WeekID) Result {
	week := st.Week(weekID)
	if week == nil {
		return failed("Onbekende week")
	}

	week.Calendar = DefaultCalendar(week.Sessions)
	week.Backlog = []types.SessionID{}
	week.Notes = ""
	for _, id := range week.Sessions {
		if session := st.Session(id); session != nil {
			session.Status = types.StatusPlanned
			session.IsLightVersion = false
		}
	}

	return Result{OK: true, Warnings: ValidateWeek(week, st.SessionsByID)}
}

// SaveWeekNotes replaces the week's free-text notes.
func SaveWeekNotes(st *types.PlannerState, weekID types.WeekID, notes string) Result {
	week := st.Week(weekID)
	if week == nil {
		return failed("Onbekende week")
	}
	week.Notes = notes
	return Result{OK: true}
}

// SetCurrentWeek moves the program's current-week pointer and the UI
// selection together.
func SetCurrentWeek(st *types.PlannerState, weekID types.WeekID) Result {
	week := st.Week(weekID)
	if week == nil {
		return failed("Onbekende week")
	}
	st.Program.CurrentWeek = week.Number
	st.UI.SelectedWeekID = weekID
	return Result{OK: true}
}

func findBestDay(week *types.Week, id types.SessionID, sessions map[types.SessionID]*types.Session) types.Day {
	for _, day := range preferredDays {
		if len(week.Calendar.On(day)) > 0 {
			continue
		}
		if !createsHardSequence(week, day, id, sessions) {
			return day
		}
	}
	for _, day := range preferredDays {
		if !createsHardSequence(week, day, id, sessions) {
			return day
		}
	}
	return preferredDays[0]
}

// createsHardSequence reports whether placing the session on the day would
// put two demanding (medium/hard) sessions on naturally adjacent days.
func createsHardSequence(week *types.Week, day types.Day, id types.SessionID, sessions map[types.SessionID]*types.Session) bool {
	if !demanding(id, sessions) {
		return false
	}

	idx := day.Index()
	if idx > 0 {
		if anyDemanding(week.Calendar.On(types.Days[idx-1]), sessions) {
			return true
		}
	}
	if idx >= 0 && idx < len(types.Days)-1 {
		if anyDemanding(week.Calendar.On(types.Days[idx+1]), sessions) {
			return true
		}
	}
	return false
}

func demanding(id types.SessionID, sessions map[types.SessionID]*types.Session) bool {
	session := sessions[id]
	return session != nil && session.Difficulty.Demanding()
}

func anyDemanding(ids []types.SessionID, sessions map[types.SessionID]*types.Session) bool {
	for _, id := range ids {
		if demanding(id, sessions) {
			return true
		}
	}
	return false
}

func diffCalendars(before, after types.Calendar) []Move {
	moved := []Move{}
	for _, day := range types.Days {
		for _, id := range after.On(day) {
			prevDay, ok := before.DayOf(id)
			if ok && prevDay != day {
				moved = append(moved, Move{SessionID: id, From: prevDay, To: day})
			}
		}
	}
	return moved
}
