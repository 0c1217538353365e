package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Per-week training statistics",
	Long: `Summarize the log per week: sessions completed, average success score,
and the dominant focus level.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		completed := planner.CompletedCount(st)
		fmt.Printf("\n%s\n\n", cyan("=== Training statistics ==="))
		fmt.Printf("Overall: %d sessions completed (%s)\n\n",
			completed, green(fmt.Sprintf("%d%%", planner.CompletionPercent(st))))

		for _, number := range st.WeekNumbers() {
			weekID := types.WeekID(number)
			week := st.Week(weekID)
			if week == nil {
				continue
			}

			stats := weekStats(st, weekID)
			marker := "  "
			if planner.WeekComplete(st, weekID) {
				marker = green("✓ ")
			}
			if stats.logged == 0 {
				fmt.Printf("%s%s  %s\n", marker, weekID, gray("no sessions logged"))
				continue
			}
			score := fmt.Sprintf("%.1f", stats.avgScore)
			if stats.avgScore >= 4 {
				score = green(score)
			}
			fmt.Printf("%s%s  %d/%d done, avg score %s, focus mostly %s\n",
				marker, weekID, stats.done, len(week.Sessions), score, stats.topFocus)
		}
		fmt.Println()
	},
}

type weekSummary struct {
	done     int
	logged   int
	avgScore float64
	topFocus string
}

func weekStats(st *types.PlannerState, weekID types.WeekID) weekSummary {
	week := st.Week(weekID)
	summary := weekSummary{topFocus: "middel"}
	if week == nil {
		return summary
	}

	for _, id := range week.Sessions {
		if st.Program.Progress.HasSession(id) {
			summary.done++
		}
	}

	scoreSum := 0
	focusCounts := map[string]int{}
	for _, entry := range st.Logs {
		if entry.WeekID != weekID {
			continue
		}
		summary.logged++
		scoreSum += entry.SuccessScore
		focusCounts[entry.Focus]++
	}
	if summary.logged == 0 {
		return summary
	}

	summary.avgScore = float64(scoreSum) / float64(summary.logged)
	// Ties resolve to the calmer interpretation (laag before middel
	// before hoog) so the summary never overstates focus.
	best := 0
	for _, focus := range []string{"laag", "middel", "hoog"} {
		if focusCounts[focus] > best {
			best = focusCounts[focus]
			summary.topFocus = focus
		}
	}
	return summary
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
