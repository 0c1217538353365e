// Package planner is the scheduling core: it builds the initial planner
// state from a plan, owns every operation that mutates the schedule, and
// derives progress. Operations are plain synchronous state transitions
// over an explicitly passed PlannerState; domain-expected failures (an
// unknown id, an invalid day) come back as a Result with OK=false, never
// as an error and never as a partial mutation.
package planner

import (
	"strconv"

	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/track"
	"github.com/mvdberg/spoor/internal/types"
)

// Program identity constants.
const (
	ProgramID    = "teckel-spoor-8w"
	ProgramTitle = "Teckel Spoortraining - 8 weken"
)

const defaultDurationMin = 15

// Preferences are the user inputs consumed at build time. Only the dog
// name lands in the state; the start date is consumed by the rendering
// layer, the engine schedules by weekday name rather than absolute date.
type Preferences struct {
	DogName   string
	StartDate string
}

// NewState builds a fully populated planner state from a plan. It is
// pure: the same plan and preferences always produce the same state, so
// a corrupt persisted document can be discarded and rebuilt at any time.
func NewState(p *plan.Plan, prefs Preferences) *types.PlannerState {
	weeks := make(map[types.WeekID]*types.Week, len(p.Weeks))
	sessions := make(map[types.SessionID]*types.Session)

	for _, weekDef := range p.Weeks {
		weekID := types.WeekID(weekDef.WeekNumber)
		sessionIDs := make([]types.SessionID, 0, len(weekDef.Sessions))

		for i, def := range weekDef.Sessions {
			ordinal := i + 1
			id := types.SessionID{Week: weekDef.WeekNumber, Ordinal: ordinal}
			sessionIDs = append(sessionIDs, id)
			sessions[id] = buildSession(id, weekID, def, ordinal, len(weekDef.Sessions))
		}

		goal := ""
		if len(weekDef.Sessions) > 0 {
			goal = weekDef.Sessions[0].Goal
		}

		weeks[weekID] = &types.Week{
			ID:     weekID,
			Number: weekDef.WeekNumber,
			Title:  weekDef.Theme,
			Goal:   goal,
			Settings: types.WeekSettings{
				Surface:       track.SurfaceGrass,
				TrackAgingMin: 0,
				TrackAgingMax: 10,
			},
			Sessions: sessionIDs,
			Calendar: DefaultCalendar(sessionIDs),
			Backlog:  []types.SessionID{},
			Notes:    "",
		}
	}

	return &types.PlannerState{
		Program: types.Program{
			ID:          ProgramID,
			Title:       ProgramTitle,
			CurrentWeek: 1,
			Progress: types.Progress{
				WeeksCompleted:    []int{},
				SessionsCompleted: []types.SessionID{},
			},
			DogProfile: types.DogProfile{
				Name:            prefs.DogName,
				Level:           "beginner",
				RewardType:      "food",
				StressSensitive: true,
			},
		},
		WeeksByID:    weeks,
		SessionsByID: sessions,
		Logs:         []types.LogEntry{},
		UI:           types.UIState{SelectedWeekID: 1},
	}
}

// buildSession derives everything the plan does not state explicitly:
// difficulty and type from the ordinal, track metadata from the free-text
// description, and the precomputed adaptive fallbacks.
func buildSession(id types.SessionID, weekID types.WeekID, def plan.SessionDef, ordinal, weekSize int) *types.Session {
	meta := track.Derive(def.Track)

	sessionType := types.SessionTrack
	if ordinal == weekSize {
		sessionType = types.SessionRecovery
	}

	return &types.Session{
		ID:          id,
		WeekID:      weekID,
		Code:        "S" + strconv.Itoa(ordinal),
		Title:       def.Title,
		Difficulty:  difficultyForOrdinal(ordinal),
		Type:        sessionType,
		DurationMin: defaultDurationMin,
		Track: types.TrackInfo{
			LengthM:      meta.LengthM,
			Turns:        meta.Turns,
			Shape:        meta.Shape,
			Surface:      meta.Surface,
			TreatPattern: def.Snacks,
			EndReward:    "jackpot",
		},
		Adaptive: types.Adaptive{
			Easier: types.AdaptiveVariant{
				LengthM: max(5, meta.LengthM-4),
				Turns:   max(0, meta.Turns-1),
				Note:    "korter spoor",
			},
			Shorter: types.AdaptiveVariant{
				DurationMin: 8,
				LengthM:     5,
				Turns:       0,
				Note:        "mini-sessie",
			},
		},
		Status:         types.StatusPlanned,
		IsLightVersion: false,
	}
}

// DefaultCalendar seeds a week with the fixed default slots: session 1 on
// Tuesday, 2 on Thursday, 3 on Saturday. This is a heuristic default, not
// configurable per session.
func DefaultCalendar(sessionIDs []types.SessionID) types.Calendar {
	c := types.NewCalendar()
	slots := []types.Day{types.Tuesday, types.Thursday, types.Saturday}
	for i, id := range sessionIDs {
		if i >= len(slots) {
			break
		}
		c.Append(slots[i], id)
	}
	return c
}

func difficultyForOrdinal(ordinal int) types.Difficulty {
	switch ordinal {
	case 1:
		return types.DifficultyEasy
	case 2:
		return types.DifficultyMedium
	}
	return types.DifficultyHard
}
