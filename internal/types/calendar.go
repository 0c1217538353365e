package types

// Calendar maps each of the seven days to the ordered list of sessions
// scheduled on it. Placement is append-only within a day; there is no
// reordering.
type Calendar map[Day][]SessionID

// NewCalendar returns a calendar with all seven days present and empty.
// Days are always materialized so serialization and day lookups never
// distinguish "missing" from "empty".
func NewCalendar() Calendar {
	c := make(Calendar, len(Days))
	for _, day := range Days {
		c[day] = []SessionID{}
	}
	return c
}

// On returns the sessions scheduled on the given day.
func (c Calendar) On(day Day) []SessionID {
	return c[day]
}

// Append schedules the session at the end of the day's list.
func (c Calendar) Append(day Day, id SessionID) {
	c[day] = append(c[day], id)
}

// Remove deletes the session from every day it appears on.
func (c Calendar) Remove(id SessionID) {
	for _, day := range Days {
		c[day] = removeID(c[day], id)
	}
}

// DayOf finds the day the session is scheduled on.
func (c Calendar) DayOf(id SessionID) (Day, bool) {
	for _, day := range Days {
		for _, scheduled := range c[day] {
			if scheduled == id {
				return day, true
			}
		}
	}
	return "", false
}

// RestDays counts days with nothing scheduled.
func (c Calendar) RestDays() int {
	count := 0
	for _, day := range Days {
		if len(c[day]) == 0 {
			count++
		}
	}
	return count
}

// Snapshot returns a deep copy, used to diff a calendar across a
// reshuffle.
func (c Calendar) Snapshot() Calendar {
	copied := make(Calendar, len(Days))
	for _, day := range Days {
		ids := make([]SessionID, len(c[day]))
		copy(ids, c[day])
		copied[day] = ids
	}
	return copied
}

// Clear empties every day without touching the backlog.
func (c Calendar) Clear() {
	for _, day := range Days {
		c[day] = []SessionID{}
	}
}
