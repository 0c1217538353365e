// Package types defines the planner state model: the program, its weeks,
// their sessions, the per-week calendar, and the training log. The whole
// PlannerState is one self-contained JSON document; every field here is
// plain data so it round-trips through serialization losslessly.
package types

import "sort"

// Day is a weekday slot in a week's calendar. Wire values are the Dutch
// two-letter day names used by the persisted documents.
type Day string

const (
	Monday    Day = "Ma"
	Tuesday   Day = "Di"
	Wednesday Day = "Wo"
	Thursday  Day = "Do"
	Friday    Day = "Vr"
	Saturday  Day = "Za"
	Sunday    Day = "Zo"
)

// Days lists the week's days in natural Monday-to-Sunday order. Adjacency
// checks follow this order and never wrap around from Sunday to Monday.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid checks if the day value is valid.
func (d Day) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Index returns the position of the day in Monday-to-Sunday order, or -1
// for an invalid day.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// ParseDay resolves a day name to a Day, accepting only the canonical
// two-letter forms.
func ParseDay(s string) (Day, bool) {
	d := Day(s)
	if d.IsValid() {
		return d, true
	}
	return "", false
}

// Difficulty ranks how demanding a session is. It is fixed by the
// session's ordinal within its week, never stored in the plan.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank returns the numeric ordering of the difficulty (easy=1, hard=3).
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// Demanding reports whether the difficulty counts toward recovery-rule
// violations (medium or hard).
func (d Difficulty) Demanding() bool {
	return d.Rank() >= 2
}

// SessionType categorizes a session within its week.
type SessionType string

const (
	SessionTrack    SessionType = "track"
	SessionRecovery SessionType = "recovery"
)

// SessionStatus tracks what happened to a session's scheduling.
type SessionStatus string

const (
	StatusPlanned SessionStatus = "planned"
	StatusMoved   SessionStatus = "moved"
	StatusMissed  SessionStatus = "missed"
	StatusDone    SessionStatus = "done"
)

// IsValid checks if the status value is valid.
func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusMoved, StatusMissed, StatusDone:
		return true
	}
	return false
}

// TrackInfo describes the physical track laid for a session. Length,
// turns, shape and surface are best-effort heuristics derived from the
// plan's free-text track description at build time; they are advisory
// metadata, not authoritative.
type TrackInfo struct {
	LengthM      int    `json:"lengthM"`
	Turns        int    `json:"turns"`
	Shape        string `json:"shape"`
	Surface      string `json:"surface"`
	TreatPattern string `json:"treatPattern"`
	EndReward    string `json:"endReward"`
}

// AdaptiveVariant is a precomputed reduced version of a session's track.
type AdaptiveVariant struct {
	DurationMin int    `json:"durationMin,omitempty"`
	LengthM     int    `json:"lengthM"`
	Turns       int    `json:"turns"`
	Note        string `json:"note"`
}

// Adaptive holds the difficulty fallbacks for a session.
type Adaptive struct {
	Easier  AdaptiveVariant `json:"easier"`
	Shorter AdaptiveVariant `json:"shorter"`
}

// Session is one fixed training unit. It belongs to exactly one week for
// the life of the program; the scheduling engine moves it between days and
// the backlog but never between weeks.
type Session struct {
	ID             SessionID     `json:"id"`
	WeekID         WeekID        `json:"weekId"`
	Code           string        `json:"code"`
	Title          string        `json:"title"`
	Difficulty     Difficulty    `json:"difficulty"`
	Type           SessionType   `json:"type"`
	DurationMin    int           `json:"durationMin"`
	Track          TrackInfo     `json:"track"`
	Adaptive       Adaptive      `json:"adaptive"`
	Status         SessionStatus `json:"status"`
	IsLightVersion bool          `json:"isLightVersion"`
}

// WeekSettings carries advisory per-week defaults. Nothing enforces them.
type WeekSettings struct {
	Surface       string `json:"surface"`
	TrackAgingMin int    `json:"trackAgingMin"`
	TrackAgingMax int    `json:"trackAgingMax"`
}

// Week owns the scheduling state for one program week: the fixed session
// list, the calendar mapping days to scheduled sessions, and the backlog
// of missed sessions awaiting a new slot.
//
// Invariant: the union of all calendar day lists and the backlog equals
// the week's session list, each session appearing exactly once. Every
// mutating operation removes a session from all locations before
// reinserting it, so the invariant survives stale caller input.
type Week struct {
	ID       WeekID       `json:"id"`
	Number   int          `json:"number"`
	Title    string       `json:"title"`
	Goal     string       `json:"goal"`
	Settings WeekSettings `json:"settings"`
	Sessions []SessionID  `json:"sessions"`
	Calendar Calendar     `json:"calendar"`
	Backlog  []SessionID  `json:"backlog"`
	Notes    string       `json:"notes"`
}

// RemoveFromBacklog deletes the session from the backlog if present.
func (w *Week) RemoveFromBacklog(id SessionID) {
	w.Backlog = removeID(w.Backlog, id)
}

// AddToBacklog appends the session to the backlog, a no-op on duplicates.
func (w *Week) AddToBacklog(id SessionID) {
	for _, existing := range w.Backlog {
		if existing == id {
			return
		}
	}
	w.Backlog = append(w.Backlog, id)
}

// InBacklog reports whether the session currently sits in the backlog.
func (w *Week) InBacklog(id SessionID) bool {
	for _, existing := range w.Backlog {
		if existing == id {
			return true
		}
	}
	return false
}

// Unschedule removes the session from every calendar day and the backlog.
// Idempotent, and the precondition step for every placement.
func (w *Week) Unschedule(id SessionID) {
	w.Calendar.Remove(id)
	w.RemoveFromBacklog(id)
}

func removeID(ids []SessionID, id SessionID) []SessionID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Progress accumulates completion. SessionsCompleted is a set represented
// as an insertion-ordered list; AddSession is a no-op on duplicates.
// WeeksCompleted is always re-derivable from SessionsCompleted and each
// week's fixed session list, never hand-maintained independently.
type Progress struct {
	WeeksCompleted    []int       `json:"weeksCompleted"`
	SessionsCompleted []SessionID `json:"sessionsCompleted"`
}

// AddSession records a completed session, no-op when already recorded.
// Reports whether the set grew.
func (p *Progress) AddSession(id SessionID) bool {
	if p.HasSession(id) {
		return false
	}
	p.SessionsCompleted = append(p.SessionsCompleted, id)
	return true
}

// HasSession reports whether the session has been completed.
func (p *Progress) HasSession(id SessionID) bool {
	for _, existing := range p.SessionsCompleted {
		if existing == id {
			return true
		}
	}
	return false
}

// AddWeek records a fully completed week number, no-op on duplicates.
func (p *Progress) AddWeek(number int) {
	for _, existing := range p.WeeksCompleted {
		if existing == number {
			return
		}
	}
	p.WeeksCompleted = append(p.WeeksCompleted, number)
}

// HasWeek reports whether the week number is recorded as completed.
func (p *Progress) HasWeek(number int) bool {
	for _, existing := range p.WeeksCompleted {
		if existing == number {
			return true
		}
	}
	return false
}

// DogProfile describes the dog the program is run with.
type DogProfile struct {
	Name            string `json:"name"`
	AgeMonths       *int   `json:"ageMonths"`
	Level           string `json:"level"`
	RewardType      string `json:"rewardType"`
	StressSensitive bool   `json:"stressSensitive"`
}

// Program holds program-level metadata and progress. DocumentID is stamped
// once when a state document is first created so persistence backends can
// detect a save that would clobber a different program instance.
type Program struct {
	ID          string     `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Title       string     `json:"title"`
	CurrentWeek int        `json:"currentWeek"`
	Progress    Progress   `json:"progress"`
	DogProfile  DogProfile `json:"dogProfile"`
}

// UIState is the transient selection state persisted alongside the rest of
// the document so a reload lands the user where they left off.
type UIState struct {
	SelectedWeekID WeekID `json:"selectedWeekId"`
}

// Observations are the fixed evaluation flags recorded per completed
// session. FoundTurn is nil when the session's track has no turn,
// distinguishing "not applicable" from "observed false".
type Observations struct {
	NoseDown   bool  `json:"noseDown"`
	CalmPace   bool  `json:"calmPace"`
	FoundTurn  *bool `json:"foundTurn"`
	Distracted bool  `json:"distracted"`
}

// LogEntry is one evaluation of a completed session. Its id is
// deterministic in (date, session id); completing the same session again
// on the same date overwrites the earlier entry rather than appending.
type LogEntry struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	WeekID       WeekID       `json:"weekId"`
	SessionID    SessionID    `json:"sessionId"`
	Surface      string       `json:"surface"`
	Weather      string       `json:"weather"`
	SuccessScore int          `json:"successScore"`
	Focus        string       `json:"focus"`
	Notes        string       `json:"notes"`
	PhotoRef     string       `json:"photoRef,omitempty"`
	Observations Observations `json:"observations"`
}

// PlannerState is the root aggregate and the unit of persistence. All
// engine operations take it explicitly; there is no shared module-level
// instance anywhere, the CLI owns the single live value and threads it
// through calls.
type PlannerState struct {
	Program      Program                `json:"program"`
	WeeksByID    map[WeekID]*Week       `json:"weeksById"`
	SessionsByID map[SessionID]*Session `json:"sessionsById"`
	Logs         []LogEntry             `json:"logs"`
	UI           UIState                `json:"ui"`
}

// Week resolves a week id, nil when unknown.
func (s *PlannerState) Week(id WeekID) *Week {
	return s.WeeksByID[id]
}

// Session resolves a session id, nil when unknown.
func (s *PlannerState) Session(id SessionID) *Session {
	return s.SessionsByID[id]
}

// WeekOf resolves the week owning a session, nil when either is unknown.
func (s *PlannerState) WeekOf(id SessionID) *Week {
	session := s.SessionsByID[id]
	if session == nil {
		return nil
	}
	return s.WeeksByID[session.WeekID]
}

// WeekNumbers returns the week numbers present in ascending order.
func (s *PlannerState) WeekNumbers() []int {
	numbers := make([]int, 0, len(s.WeeksByID))
	for id := range s.WeeksByID {
		numbers = append(numbers, id.Number())
	}
	sort.Ints(numbers)
	return numbers
}
