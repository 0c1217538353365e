package storage

import (
	"fmt"
	"sort"

	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/track"
	"github.com/mvdberg/spoor/internal/types"
)

// LegacyRecord is one flat session log from the major-1 document layout,
// which tracked exercises by (week, day-of-week) instead of session
// ordinals and logged numeric 1..5 ratings.
type LegacyRecord struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Week         int    `json:"week"`
	Day          int    `json:"day"`
	ExerciseID   string `json:"exerciseId"`
	TrackLengthM int    `json:"trackLengthM"`
	Surface      string `json:"surface"`
	Distractions int    `json:"distractions"`
	Focus        int    `json:"focus"`
	Success      int    `json:"success"`
	Notes        string `json:"notes"`
}

// LegacyPreferences is the preferences block of the major-1 layout.
type LegacyPreferences struct {
	DogName   string `json:"dogName"`
	StartDate string `json:"startDate"`
}

// LegacyDocument is the full major-1 document.
type LegacyDocument struct {
	Version     string            `json:"version"`
	Sessions    []LegacyRecord    `json:"sessions"`
	Preferences LegacyPreferences `json:"preferences"`
}

// MigrateLegacy maps a major-1 document into a freshly built planner
// state: the plan rebuilds weeks and sessions, then every legacy record
// replays as a completed session with its evaluation carried over.
//
// The legacy day-of-week (1..7) folds onto the week's three session
// ordinals as ((day-1) mod 3)+1, so a program logged on arbitrary days
// still lands on real sessions. One-shot and pure: the input document is
// not modified.
func MigrateLegacy(doc *LegacyDocument, p *plan.Plan) (*types.PlannerState, error) {
	if doc == nil {
		return nil, fmt.Errorf("legacy document is nil")
	}
	if p == nil {
		return nil, fmt.Errorf("plan is required for migration")
	}

	st := planner.NewState(p, planner.Preferences{
		DogName:   doc.Preferences.DogName,
		StartDate: doc.Preferences.StartDate,
	})

	// Replay in date order so the log comes out chronological.
	records := make([]LegacyRecord, len(doc.Sessions))
	copy(records, doc.Sessions)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].ID < records[j].ID
	})

	for _, record := range records {
		if record.Date == "" {
			continue
		}
		id, ok := legacySessionID(record)
		if !ok {
			continue
		}

		surface := record.Surface
		if !track.KnownSurface(surface) {
			surface = ""
		}

		planner.CompleteSession(st, id, planner.CompletePayload{
			Date:         record.Date,
			Surface:      surface,
			SuccessScore: record.Success,
			Focus:        focusLabel(record.Focus),
			Notes:        record.Notes,
			Distracted:   record.Distractions >= 4,
		})
	}

	return st, nil
}

func legacySessionID(record LegacyRecord) (types.SessionID, bool) {
	week := record.Week
	if week < 1 || week > plan.TotalWeeks {
		return types.SessionID{}, false
	}
	day := record.Day
	if day < 1 || day > 7 {
		return types.SessionID{}, false
	}
	return types.SessionID{Week: week, Ordinal: (day-1)%plan.SessionsPerWeek + 1}, true
}

// focusLabel folds the legacy 1..5 focus rating onto the coarse labels the
// structured log uses.
func focusLabel(focus int) string {
	switch {
	case focus <= 0:
		return ""
	case focus <= 2:
		return "laag"
	case focus == 3:
		return "middel"
	default:
		return "hoog"
	}
}
