// Package plan loads the static training plan document: 8 weeks of 3
// sessions each, with descriptive text the engine treats as read-only
// input. The plan's content (titles, goals, track prose) is authored
// outside this program; only its shape is validated here, at the boundary,
// so the engine never re-checks structure.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Weeks and sessions a complete plan must carry.
const (
	TotalWeeks      = 8
	SessionsPerWeek = 3
)

// SessionDef is one session definition as authored in the plan.
type SessionDef struct {
	Title     string   `json:"title"`
	Goal      string   `json:"goal"`
	Track     string   `json:"track"`
	Snacks    string   `json:"snacks"`
	TrackAge  string   `json:"trackAge,omitempty"`
	Materials []string `json:"materials"`
}

// WeekDef is one week definition as authored in the plan.
type WeekDef struct {
	WeekNumber int          `json:"weekNumber"`
	Theme      string       `json:"theme"`
	Sessions   []SessionDef `json:"sessions"`
}

// Plan is the full ordered program definition.
type Plan struct {
	Weeks []WeekDef `json:"weeks"`
}

// UnmarshalJSON tolerates a document whose "weeks" key is absent or not an
// array: such a plan decodes as empty rather than failing, matching the
// fail-gracefully contract for plan input.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var raw struct {
		Weeks json.RawMessage `json:"weeks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Weeks = nil
	trimmed := bytes.TrimSpace(raw.Weeks)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	return json.Unmarshal(trimmed, &p.Weeks)
}

// Decode reads a plan document from r.
func Decode(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &p, nil
}

// Load reads a plan document from a file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the structural contract a complete plan satisfies:
// exactly 8 weeks numbered 1..8 in order, 3 sessions each. The scheduling
// engine assumes this holds and does not re-validate.
func (p *Plan) Validate() error {
	if len(p.Weeks) != TotalWeeks {
		return fmt.Errorf("plan must have %d weeks (got %d)", TotalWeeks, len(p.Weeks))
	}
	for i, week := range p.Weeks {
		if week.WeekNumber != i+1 {
			return fmt.Errorf("week at position %d has number %d (expected %d)", i, week.WeekNumber, i+1)
		}
		if len(week.Sessions) != SessionsPerWeek {
			return fmt.Errorf("week %d must have %d sessions (got %d)", week.WeekNumber, SessionsPerWeek, len(week.Sessions))
		}
		for j, session := range week.Sessions {
			if session.Title == "" {
				return fmt.Errorf("week %d session %d has no title", week.WeekNumber, j+1)
			}
		}
	}
	return nil
}
