package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvdberg/spoor/internal/types"
)

var (
	weekTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	dayLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(4)

	emptyDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	backlogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	weekBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// renderWeek draws the week's calendar as a bordered grid: one row per
// day, sessions annotated with difficulty and status.
func renderWeek(st *types.PlannerState, week *types.Week, light bool) string {
	var rows []string

	title := fmt.Sprintf("%s  %s", week.ID, week.Title)
	rows = append(rows, weekTitleStyle.Render(title))
	if week.Goal != "" {
		rows = append(rows, emptyDayStyle.Render(week.Goal))
	}
	rows = append(rows, "")

	for _, day := range types.Days {
		ids := week.Calendar.On(day)
		label := dayLabelStyle.Render(string(day))
		if len(ids) == 0 {
			rows = append(rows, label+emptyDayStyle.Render("rust"))
			continue
		}
		cells := make([]string, 0, len(ids))
		for _, id := range ids {
			cells = append(cells, renderSessionCell(st, id, light))
		}
		rows = append(rows, label+strings.Join(cells, "  "))
	}

	if len(week.Backlog) > 0 {
		ids := make([]string, 0, len(week.Backlog))
		for _, id := range week.Backlog {
			ids = append(ids, id.String())
		}
		rows = append(rows, "")
		rows = append(rows, backlogStyle.Render("Backlog: "+strings.Join(ids, ", ")))
	}
	if week.Notes != "" {
		rows = append(rows, emptyDayStyle.Render("Notes: "+week.Notes))
	}

	return weekBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderSessionCell(st *types.PlannerState, id types.SessionID, light bool) string {
	session := st.Session(id)
	if session == nil {
		return id.String()
	}

	track := session.Track
	lengthM, turns := track.LengthM, track.Turns
	suffix := ""
	if session.IsLightVersion {
		suffix = " [light]"
		if light {
			lengthM, turns = session.Adaptive.Easier.LengthM, session.Adaptive.Easier.Turns
			suffix = " [" + session.Adaptive.Easier.Note + "]"
		}
	}

	cell := fmt.Sprintf("%s %s (%s, %dm/%d bocht)%s",
		id, session.Title, session.Difficulty, lengthM, turns, suffix)
	return statusColor(session.Status)(cell)
}
