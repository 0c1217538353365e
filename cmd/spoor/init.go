package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/config"
	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/storage"
)

var (
	initDog   string
	initStart string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Build a fresh planner state from the plan file",
	Long: `Build the planner state document from the training plan: 8 weeks of 3
sessions each, seeded onto the default Tuesday/Thursday/Saturday slots.

Refuses to overwrite an existing state document unless --force is given.

Example:
  spoor init --plan ./plan.json --dog Saar --start 2026-09-01`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		p, err := plan.Load(cfg.PlanPath)
		if err != nil {
			fail("%v", err)
		}
		if err := p.Validate(); err != nil {
			fail("invalid plan: %v", err)
		}

		prefs := planner.Preferences{
			DogName:   cfg.Preferences.DogName,
			StartDate: cfg.Preferences.StartDate,
		}
		if initDog != "" {
			prefs.DogName = initDog
		}
		if initStart != "" {
			if !config.IsISODate(initStart) {
				fail("start date %q is not a valid YYYY-MM-DD date", initStart)
			}
			prefs.StartDate = initStart
		}

		store, err := openStore()
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		existing, err := store.Load(ctx)
		if err == nil && existing != nil && !initForce {
			fail("a state document already exists at %s (use --force to rebuild)", cfg.StatePath)
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrIncompatible) {
			fail("%v", err)
		}

		st := planner.NewState(p, prefs)
		// Stamp the document identity here, at the boundary: the builder
		// itself stays deterministic.
		st.Program.DocumentID = uuid.NewString()
		if existing != nil && initForce {
			// Rebuilding over an existing document keeps its identity so
			// the overwrite guard does not trip.
			st.Program.DocumentID = existing.Program.DocumentID
		}

		if err := store.Save(ctx, st); err != nil {
			fail("failed to save state: %v", err)
		}

		// Preferences given as flags need to survive into later runs; the
		// start date in particular drives the status view.
		if initDog != "" || initStart != "" {
			cfg.Preferences.DogName = prefs.DogName
			cfg.Preferences.StartDate = prefs.StartDate
			if err := config.Save(cfgPath, cfg); err != nil {
				fmt.Printf("Warning: could not persist preferences: %v\n", err)
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("\n%s Initialized %s\n\n", green("✓"), planner.ProgramTitle)
		fmt.Printf("  State:  %s (%s)\n", cyan(cfg.StatePath), cfg.Backend)
		fmt.Printf("  Weeks:  %d, sessions: %d\n", len(st.WeeksByID), len(st.SessionsByID))
		if prefs.DogName != "" {
			fmt.Printf("  Dog:    %s\n", cyan(prefs.DogName))
		}
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  spoor status")
		fmt.Println("  spoor week show")
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDog, "dog", "", "Dog name for the program profile")
	initCmd.Flags().StringVar(&initStart, "start", "", "Program start date (YYYY-MM-DD)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Rebuild even if a state document exists")
}
