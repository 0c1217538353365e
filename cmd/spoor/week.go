package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/planner"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Week-level scheduling commands",
	Long:  `Show, select, reshuffle, reset, annotate, or validate a week.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var weekShowLight bool

var weekShowCmd = &cobra.Command{
	Use:   "show [week]",
	Short: "Display a week's calendar, backlog, and warnings",
	Long: `Display the week's calendar grid. Defaults to the currently selected
week. With --light, sessions flagged for a light run show their easier
adaptive variant.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID := st.UI.SelectedWeekID
		if len(args) > 0 {
			weekID, err = parseWeekArg(args[0])
			if err != nil {
				fail("%v", err)
			}
		}
		week := st.Week(weekID)
		if week == nil {
			fail("unknown week %s", weekID)
		}

		fmt.Println(renderWeek(st, week, weekShowLight))
		printWarnings(planner.ValidateWeek(week, st.SessionsByID))
	},
}

var weekSelectCmd = &cobra.Command{
	Use:   "select <week>",
	Short: "Make a week the current week",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID, err := parseWeekArg(args[0])
		if err != nil {
			fail("%v", err)
		}
		applyAndSave(ctx, store, st, planner.SetCurrentWeek(st, weekID))
		fmt.Printf("Current week is now %s\n", weekID)
	},
}

var weekNotesCmd = &cobra.Command{
	Use:   "notes <week> <text...>",
	Short: "Save free-text notes on a week",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID, err := parseWeekArg(args[0])
		if err != nil {
			fail("%v", err)
		}
		applyAndSave(ctx, store, st, planner.SaveWeekNotes(st, weekID, strings.Join(args[1:], " ")))
		fmt.Printf("Notes saved for %s\n", weekID)
	},
}

var weekResetCmd = &cobra.Command{
	Use:   "reset [week]",
	Short: "Restore a week's default Tue/Thu/Sat layout",
	Long: `Restore the week's calendar to the default layout, empty its backlog and
notes, and reset its sessions to planned. Completed-session progress is
not affected.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID := st.UI.SelectedWeekID
		if len(args) > 0 {
			weekID, err = parseWeekArg(args[0])
			if err != nil {
				fail("%v", err)
			}
		}
		applyAndSave(ctx, store, st, planner.ResetWeek(st, weekID))
		fmt.Printf("Restored default layout for %s\n", weekID)
	},
}

var weekReshuffleCmd = &cobra.Command{
	Use:   "reshuffle [week]",
	Short: "Auto-redistribute a week's sessions across days",
	Long: `Clear the week's calendar and re-place every session using the preferred
day order (Di, Do, Za, Ma, Wo, Vr, Zo), avoiding demanding sessions on
adjacent days where possible. Prints the moves it made.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID := st.UI.SelectedWeekID
		if len(args) > 0 {
			weekID, err = parseWeekArg(args[0])
			if err != nil {
				fail("%v", err)
			}
		}
		result := planner.AutoReshuffleWeek(st, weekID)
		applyAndSave(ctx, store, st, result)

		if len(result.Moved) == 0 {
			fmt.Println("Nothing moved; layout already fits.")
			return
		}
		for _, move := range result.Moved {
			fmt.Printf("Moved %s: %s -> %s\n", move.SessionID, move.From, move.To)
		}
	},
}

var weekCheckCmd = &cobra.Command{
	Use:   "check [week]",
	Short: "Run the scheduling rules against a week",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		weekID := st.UI.SelectedWeekID
		if len(args) > 0 {
			weekID, err = parseWeekArg(args[0])
			if err != nil {
				fail("%v", err)
			}
		}
		week := st.Week(weekID)
		if week == nil {
			fail("unknown week %s", weekID)
		}

		warnings := planner.ValidateWeek(week, st.SessionsByID)
		if len(warnings) == 0 {
			fmt.Printf("%s looks fine: no warnings.\n", weekID)
			return
		}
		printWarnings(warnings)
	},
}

func init() {
	weekCmd.AddCommand(weekShowCmd)
	weekCmd.AddCommand(weekSelectCmd)
	weekCmd.AddCommand(weekNotesCmd)
	weekCmd.AddCommand(weekResetCmd)
	weekCmd.AddCommand(weekReshuffleCmd)
	weekCmd.AddCommand(weekCheckCmd)
	weekShowCmd.Flags().BoolVar(&weekShowLight, "light", false, "Show easier adaptive variants for light-flagged sessions")
	rootCmd.AddCommand(weekCmd)
}
