package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive scheduling session",
	Long: `Start an interactive shell over the planner state. Mutations autosave
(throttled) and a final save runs on exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		r, err := repl.New(&repl.Config{Store: store, State: st})
		if err != nil {
			fail("%v", err)
		}
		if err := r.Run(ctx); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
