package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/types"
)

var (
	moveSwap  bool
	moveLight bool
)

var moveCmd = &cobra.Command{
	Use:   "move <session> <from> <to>",
	Short: "Move a session to another day in its week",
	Long: `Move a session to another weekday. With --swap, a session already on the
destination day is displaced back to the origin day. With --light, the
session is flagged to run in its reduced adaptive form.

Days are Ma Di Wo Do Vr Za Zo.

Example:
  spoor move w1-s1 Di Wo
  spoor move w1-s1 Di Do --swap --light`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		id := parseSessionArg(args[0])
		from := parseDayArg(args[1])
		to := parseDayArg(args[2])

		strategy := planner.StrategyAppend
		if moveSwap {
			strategy = planner.StrategySwap
		}

		result := planner.MoveSession(st, id, from, to, strategy, planner.Options{LightVersion: moveLight})
		applyAndSave(ctx, store, st, result)
		fmt.Printf("Moved %s to %s\n", id, to)
	},
}

var missCmd = &cobra.Command{
	Use:   "miss <session> [day]",
	Short: "Mark a session missed and park it in the backlog",
	Long: `Take the session off the calendar entirely and park it in its week's
backlog. Replan it later with 'spoor replan'.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		id := parseSessionArg(args[0])
		day := types.Day("")
		if len(args) > 1 {
			day = parseDayArg(args[1])
		}

		result := planner.MarkSessionMissed(st, id, day)
		applyAndSave(ctx, store, st, result)
		fmt.Printf("Parked %s in the backlog\n", id)
	},
}

var replanLight bool

var replanCmd = &cobra.Command{
	Use:   "replan <session> <day>",
	Short: "Reschedule a backlog session onto a day",
	Long: `Put a missed session back on the calendar. The session must currently be
in its week's backlog.

Example:
  spoor replan w1-s3 Ma --light`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		id := parseSessionArg(args[0])
		day := parseDayArg(args[1])

		result := planner.ReplanFromBacklog(st, id, day, planner.Options{LightVersion: replanLight})
		applyAndSave(ctx, store, st, result)
		fmt.Printf("Replanned %s onto %s\n", id, day)
	},
}

func init() {
	moveCmd.Flags().BoolVar(&moveSwap, "swap", false, "Swap with the first session on the destination day")
	moveCmd.Flags().BoolVar(&moveLight, "light", false, "Flag the session for its reduced adaptive form")
	replanCmd.Flags().BoolVar(&replanLight, "light", false, "Flag the session for its reduced adaptive form")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(missCmd)
	rootCmd.AddCommand(replanCmd)
}
