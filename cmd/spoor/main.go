// spoor is a personal scheduler for an 8-week dog tracking-training
// program: it assigns the fixed sessions to weekdays, tracks completion,
// reschedules missed sessions, and warns about unsafe workload patterns.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/config"
)

var (
	cfgPath   string
	stateFlag string
	planFlag  string
	backend   string

	// cfg is resolved once per invocation in the persistent pre-run and
	// read by every command.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spoor",
	Short: "Personal 8-week tracking-training scheduler",
	Long: `spoor schedules the fixed sessions of an 8-week dog tracking-training
program across weekdays, tracks completion, reschedules missed sessions
from a backlog, and warns about unsafe workload patterns such as two
demanding sessions on consecutive days.

State lives in a single local document (JSON file or sqlite); run
'spoor init' once to build it from a plan file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if stateFlag != "" {
			loaded.StatePath = stateFlag
		}
		if planFlag != "" {
			loaded.PlanPath = planFlag
		}
		if backend != "" {
			loaded.Backend = backend
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&stateFlag, "state", "", "State document path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&planFlag, "plan", "", "Plan file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: file or sqlite (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
