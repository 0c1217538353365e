package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show program progress and the next open session",
	Long:  `Display overall completion, unlocked weeks, the next open session, and any scheduling warnings for the current week.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== "+st.Program.Title+" ==="))
		if dog := st.Program.DogProfile.Name; dog != "" {
			fmt.Printf("Dog:        %s\n", dog)
		}

		completed := planner.CompletedCount(st)
		fmt.Printf("Completed:  %d sessions (%s)\n", completed,
			green(fmt.Sprintf("%d%%", planner.CompletionPercent(st))))
		fmt.Printf("Unlocked:   %d of 8 weeks\n", planner.UnlockedWeeks(completed))
		fmt.Printf("Current:    week %d\n", st.Program.CurrentWeek)

		if start := cfg.Preferences.StartDate; start != "" {
			target := planner.CurrentTarget(start, time.Now())
			fmt.Printf("Target:     week %d, day %d %s\n", target.Week, target.Day,
				gray("(from start date "+start+")"))
		}

		if next := planner.NextOpenSession(st); next != nil {
			label := next.String()
			if session := st.Session(*next); session != nil {
				label = fmt.Sprintf("%s - %s", next, session.Title)
			}
			fmt.Printf("Next up:    %s\n", label)
		} else {
			fmt.Printf("Next up:    %s\n", gray("all unlocked sessions done"))
		}

		if week := st.Week(st.UI.SelectedWeekID); week != nil {
			warnings := planner.ValidateWeek(week, st.SessionsByID)
			if len(warnings) > 0 {
				fmt.Printf("\n%s\n", yellow("Warnings for "+week.ID.String()+":"))
				printWarnings(warnings)
			}
		}

		// Most recent evaluations, newest first.
		recent := recentLogs(st, 3)
		if len(recent) > 0 {
			fmt.Printf("\n%s\n", cyan("Recent sessions:"))
			for _, entry := range recent {
				fmt.Printf("  %s  %s  %s, %d/5\n", entry.Date, entry.SessionID, entry.Surface, entry.SuccessScore)
			}
		}
		fmt.Println()
	},
}

// recentLogs returns up to limit log entries, newest first (date desc, id
// desc as tiebreak).
func recentLogs(st *types.PlannerState, limit int) []types.LogEntry {
	entries := make([]types.LogEntry, len(st.Logs))
	copy(entries, st.Logs)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID > entries[j].ID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
