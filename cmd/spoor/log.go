package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/types"
)

var (
	logLimit int
	logWeek  string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recorded session evaluations",
	Long: `List session evaluations, newest first. Filter to a single week with
--week.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		entries := recentLogs(st, len(st.Logs))
		if logWeek != "" {
			weekID, err := parseWeekArg(logWeek)
			if err != nil {
				fail("%v", err)
			}
			filtered := entries[:0]
			for _, entry := range entries {
				if entry.WeekID == weekID {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}
		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[:logLimit]
		}

		if len(entries) == 0 {
			fmt.Println("No sessions logged yet.")
			return
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, entry := range entries {
			fmt.Printf("%s  %s  %s, %s, %d/5, focus %s\n",
				entry.Date, entry.SessionID, entry.Surface, entry.Weather, entry.SuccessScore, entry.Focus)
			if obs := describeObservations(entry.Observations); obs != "" {
				fmt.Printf("    %s\n", gray(obs))
			}
			if entry.Notes != "" {
				fmt.Printf("    %s\n", gray(entry.Notes))
			}
		}
	},
}

func describeObservations(obs types.Observations) string {
	var parts []string
	if obs.NoseDown {
		parts = append(parts, "neus laag")
	}
	if obs.CalmPace {
		parts = append(parts, "rustig tempo")
	}
	if obs.FoundTurn != nil {
		if *obs.FoundTurn {
			parts = append(parts, "bocht gevonden")
		} else {
			parts = append(parts, "bocht gemist")
		}
	}
	if obs.Distracted {
		parts = append(parts, "afgeleid")
	}
	return strings.Join(parts, ", ")
}

func init() {
	logCmd.Flags().IntVar(&logLimit, "limit", 3, "Maximum entries to show (0 for all)")
	logCmd.Flags().StringVar(&logWeek, "week", "", "Only show entries for this week")
	rootCmd.AddCommand(logCmd)
}
