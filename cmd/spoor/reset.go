package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/config"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the planner state entirely",
	Long: `Remove the state document so the next 'spoor init' starts from scratch.
All scheduling, progress, and logged evaluations are lost.

For restoring a single week's layout, use 'spoor week reset' instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			fail("this deletes all progress and logs; pass --yes to confirm")
		}

		if err := os.Remove(cfg.StatePath); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No state document to remove.")
				return
			}
			fail("%v", err)
		}
		// The sqlite backend leaves WAL sidecars next to the database.
		if cfg.Backend == config.BackendSQLite {
			os.Remove(cfg.StatePath + "-wal")
			os.Remove(cfg.StatePath + "-shm")
		}

		fmt.Printf("Removed %s. Run 'spoor init' to start over.\n", cfg.StatePath)
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion")
	rootCmd.AddCommand(resetCmd)
}
