package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/mvdberg/spoor/internal/config"
	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/storage"
	"github.com/mvdberg/spoor/internal/storage/sqlite"
	"github.com/mvdberg/spoor/internal/types"
)

// openStore builds the configured storage backend. The file backend gets
// the plan (when loadable) so legacy documents migrate transparently.
func openStore() (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.StatePath)
	default:
		var migratePlan *plan.Plan
		if p, err := plan.Load(cfg.PlanPath); err == nil {
			migratePlan = p
		}
		return storage.NewFile(cfg.StatePath, migratePlan), nil
	}
}

// loadState opens the store and loads the live planner state. Both store
// and state are returned so the caller can save mutations back; the
// caller owns closing the store.
func loadState(ctx context.Context) (storage.Store, *types.PlannerState, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Load(ctx)
	if err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("no planner state yet; run 'spoor init' first")
		}
		if errors.Is(err, storage.ErrIncompatible) {
			return nil, nil, fmt.Errorf("%w; run 'spoor init --force' to rebuild from the plan", err)
		}
		return nil, nil, err
	}
	return store, st, nil
}

// applyAndSave is the shared tail of every mutating command: print the
// result, persist on success, exit non-zero on a domain failure.
func applyAndSave(ctx context.Context, store storage.Store, st *types.PlannerState, result planner.Result) {
	if !result.OK {
		fail("%s", result.Message)
	}
	if err := store.Save(ctx, st); err != nil {
		fail("failed to save state: %v", err)
	}
	printWarnings(result.Warnings)
}

func printWarnings(warnings []planner.Warning) {
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, warning := range warnings {
		fmt.Printf("%s %s\n", yellow("⚠"), warning.Message)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// parseWeekArg accepts both the wire form "w3" and a bare number.
func parseWeekArg(arg string) (types.WeekID, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("invalid week %d", n)
		}
		return types.WeekID(n), nil
	}
	return types.ParseWeekID(arg)
}

func parseSessionArg(arg string) types.SessionID {
	id, err := types.ParseSessionID(arg)
	if err != nil {
		fail("%v", err)
	}
	return id
}

func parseDayArg(arg string) types.Day {
	day, ok := types.ParseDay(arg)
	if !ok {
		fail("unknown day %q (expected one of Ma Di Wo Do Vr Za Zo)", arg)
	}
	return day
}

func statusColor(status types.SessionStatus) func(...interface{}) string {
	switch status {
	case types.StatusDone:
		return color.New(color.FgGreen).SprintFunc()
	case types.StatusMissed:
		return color.New(color.FgRed).SprintFunc()
	case types.StatusMoved:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgWhite).SprintFunc()
	}
}
