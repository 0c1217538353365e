package planner

import (
	"fmt"

	"github.com/mvdberg/spoor/internal/types"
)

// CompletePayload carries one session evaluation. Structural validation
// (date format, score range, surface vocabulary) happens at the CLI or
// form boundary; the engine only requires a date to derive the log id.
type CompletePayload struct {
	Date         string
	Surface      string
	Weather      string
	SuccessScore int
	Focus        string
	Notes        string
	PhotoRef     string
	NoseDown     bool
	CalmPace     bool
	FoundTurn    *bool
	Distracted   bool
}

// CompleteSession marks the session done, records it in the completed set
// (idempotently), re-derives week completion, and upserts the evaluation
// into the log.
//
// The log id is deterministic in (date, session id). Completing the same
// session again on the same date overwrites the earlier entry instead of
// appending a colliding duplicate; the log holds at most one evaluation
// per session per date.
func CompleteSession(st *types.PlannerState, id types.SessionID, payload CompletePayload) Result {
	session := st.Session(id)
	if session == nil {
		return failed("Onbekende sessie")
	}
	week := st.Week(session.WeekID)
	if week == nil {
		return failed("Onbekende week")
	}
	if payload.Date == "" {
		return failed("Datum ontbreekt")
	}

	entry := buildLogEntry(session, payload)

	session.Status = types.StatusDone
	st.Program.Progress.AddSession(id)
	recomputeWeeksCompleted(st)
	upsertLog(st, entry)

	return Result{OK: true, Log: &entry}
}

func buildLogEntry(session *types.Session, payload CompletePayload) types.LogEntry {
	surface := payload.Surface
	if surface == "" {
		surface = session.Track.Surface
	}
	weather := payload.Weather
	if weather == "" {
		weather = "onbekend"
	}
	focus := payload.Focus
	if focus == "" {
		focus = "middel"
	}

	// A turn observation only makes sense when the track has a turn;
	// otherwise it is nil ("not applicable"), not false.
	var foundTurn *bool
	if session.Track.Turns > 0 {
		observed := payload.FoundTurn != nil && *payload.FoundTurn
		foundTurn = &observed
	}

	return types.LogEntry{
		ID:           fmt.Sprintf("log-%s-%s", payload.Date, session.ID),
		Date:         payload.Date,
		WeekID:       session.WeekID,
		SessionID:    session.ID,
		Surface:      surface,
		Weather:      weather,
		SuccessScore: payload.SuccessScore,
		Focus:        focus,
		Notes:        payload.Notes,
		PhotoRef:     payload.PhotoRef,
		Observations: types.Observations{
			NoseDown:   payload.NoseDown,
			CalmPace:   payload.CalmPace,
			FoundTurn:  foundTurn,
			Distracted: payload.Distracted,
		},
	}
}

// recomputeWeeksCompleted re-derives full-week completion from the
// completed-session set and each week's fixed session list. Completion is
// never hand-maintained separately, so the two can not drift.
func recomputeWeeksCompleted(st *types.PlannerState) {
	for _, number := range st.WeekNumbers() {
		week := st.Week(types.WeekID(number))
		if week == nil || len(week.Sessions) == 0 {
			continue
		}
		if weekComplete(week, &st.Program.Progress) {
			st.Program.Progress.AddWeek(number)
		}
	}
}

func weekComplete(week *types.Week, progress *types.Progress) bool {
	for _, id := range week.Sessions {
		if !progress.HasSession(id) {
			return false
		}
	}
	return true
}

func upsertLog(st *types.PlannerState, entry types.LogEntry) {
	for i := range st.Logs {
		if st.Logs[i].ID == entry.ID {
			st.Logs[i] = entry
			return
		}
	}
	st.Logs = append(st.Logs, entry)
}
