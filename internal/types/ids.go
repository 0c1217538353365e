package types

import (
	"fmt"
	"strconv"
	"strings"
)

// WeekID identifies a program week (1..8). It marshals as the wire form
// "w<number>" so persisted documents stay compatible with the original
// state layout.
type WeekID int

// ParseWeekID parses the wire form "w3" into a WeekID.
func ParseWeekID(s string) (WeekID, error) {
	rest, ok := strings.CutPrefix(s, "w")
	if !ok {
		return 0, fmt.Errorf("invalid week id %q (expected w<number>)", s)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid week id %q (expected w<number>)", s)
	}
	return WeekID(n), nil
}

// Number returns the week number the id wraps.
func (w WeekID) Number() int {
	return int(w)
}

func (w WeekID) String() string {
	return fmt.Sprintf("w%d", int(w))
}

// MarshalText implements encoding.TextMarshaler so WeekID can key JSON maps.
func (w WeekID) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WeekID) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekID(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// SessionID identifies one session by its owning week number and its
// 1-based ordinal within that week. The wire form is "w3-s2". The ordinal
// is load-bearing: difficulty and session type derive from it, so parsing
// and formatting happen only here, never in business logic.
type SessionID struct {
	Week    int
	Ordinal int
}

// ParseSessionID parses the wire form "w3-s2" into a SessionID.
func ParseSessionID(s string) (SessionID, error) {
	weekPart, sessionPart, ok := strings.Cut(s, "-")
	if !ok {
		return SessionID{}, fmt.Errorf("invalid session id %q (expected w<n>-s<m>)", s)
	}
	week, err := ParseWeekID(weekPart)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session id %q: %w", s, err)
	}
	rest, ok := strings.CutPrefix(sessionPart, "s")
	if !ok {
		return SessionID{}, fmt.Errorf("invalid session id %q (expected w<n>-s<m>)", s)
	}
	ordinal, err := strconv.Atoi(rest)
	if err != nil || ordinal < 1 {
		return SessionID{}, fmt.Errorf("invalid session id %q (expected w<n>-s<m>)", s)
	}
	return SessionID{Week: week.Number(), Ordinal: ordinal}, nil
}

// WeekID returns the id of the week the session belongs to.
func (s SessionID) WeekID() WeekID {
	return WeekID(s.Week)
}

// IsZero reports whether the id is the zero value.
func (s SessionID) IsZero() bool {
	return s.Week == 0 && s.Ordinal == 0
}

func (s SessionID) String() string {
	return fmt.Sprintf("w%d-s%d", s.Week, s.Ordinal)
}

// MarshalText implements encoding.TextMarshaler so SessionID can key JSON maps.
func (s SessionID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SessionID) UnmarshalText(text []byte) error {
	parsed, err := ParseSessionID(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
