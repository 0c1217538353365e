// Package repl is the interactive shell around the scheduling engine. It
// owns the single live PlannerState for the session and persists it
// through the configured Store, throttled so a burst of quick edits does
// not hammer the disk.
package repl

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/storage"
	"github.com/mvdberg/spoor/internal/types"
)

// REPL represents the interactive shell.
type REPL struct {
	store    storage.Store
	state    *types.PlannerState
	rl       *readline.Instance
	ctx      context.Context
	saves    *rate.Limiter
	dirty    bool
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command.
type CommandHandler func(args []string) error

// Config holds REPL configuration.
type Config struct {
	Store storage.Store
	State *types.PlannerState

	// SaveInterval bounds how often mutations are flushed to the store.
	// Zero means the default of two seconds. The final flush on exit is
	// unconditional.
	SaveInterval time.Duration
}

// New creates a new REPL instance.
func New(cfg *Config) (*REPL, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if cfg.State == nil {
		return nil, fmt.Errorf("planner state is required")
	}

	interval := cfg.SaveInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	r := &REPL{
		store:    cfg.Store,
		state:    cfg.State,
		saves:    rate.NewLimiter(rate.Every(interval), 1),
		commands: make(map[string]CommandHandler),
	}
	r.registerCommands()
	return r, nil
}

// Run starts the REPL loop.
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("spoor> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				return r.shutdown()
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return r.shutdown()
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	if handler, ok := r.commands[parts[0]]; ok {
		return handler(parts[1:])
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s Unknown command %q. Type 'help' for available commands.\n", yellow("Note:"), parts[0])
	return nil
}

func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
	r.commands["status"] = r.cmdStatus
	r.commands["week"] = r.cmdWeek
	r.commands["select"] = r.cmdSelect
	r.commands["move"] = r.cmdMove
	r.commands["miss"] = r.cmdMiss
	r.commands["replan"] = r.cmdReplan
	r.commands["reshuffle"] = r.cmdReshuffle
	r.commands["reset"] = r.cmdReset
	r.commands["complete"] = r.cmdComplete
	r.commands["notes"] = r.cmdNotes
	r.commands["save"] = r.cmdSave
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("status"),
		readline.PcItem("week"),
		readline.PcItem("select"),
		readline.PcItem("move"),
		readline.PcItem("miss"),
		readline.PcItem("replan"),
		readline.PcItem("reshuffle"),
		readline.PcItem("reset"),
		readline.PcItem("complete"),
		readline.PcItem("notes"),
		readline.PcItem("save"),
		readline.PcItem("exit"),
	)
}

// markDirty notes a successful mutation and flushes it if the save
// throttle allows; otherwise the change rides along with the next flush
// or the exit save.
func (r *REPL) markDirty() {
	r.dirty = true
	if r.saves.Allow() {
		if err := r.flush(); err != nil {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s autosave failed: %v\n", yellow("Warning:"), err)
		}
	}
}

func (r *REPL) flush() error {
	if !r.dirty {
		return nil
	}
	if err := r.store.Save(r.ctx, r.state); err != nil {
		return err
	}
	r.dirty = false
	return nil
}

func (r *REPL) shutdown() error {
	if err := r.flush(); err != nil {
		return fmt.Errorf("failed to save on exit: %w", err)
	}
	fmt.Println("\nTot kijk!")
	return nil
}

func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan(planner.ProgramTitle))
	dog := r.state.Program.DogProfile.Name
	if dog != "" {
		fmt.Printf("Training with %s\n", dog)
	}
	fmt.Println()
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()
}

func (r *REPL) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"status", "Program progress and the next open session"},
		{"week [n]", "Show a week's calendar and backlog"},
		{"select <n>", "Make week n the current week"},
		{"move <session> <from> <to> [swap] [light]", "Move a session to another day"},
		{"miss <session>", "Park a session in the backlog"},
		{"replan <session> <day> [light]", "Reschedule a backlog session"},
		{"reshuffle [n]", "Auto-redistribute a week's sessions"},
		{"reset [n]", "Restore a week's default layout"},
		{"complete <session> <score 1-5> [notes...]", "Log a finished session"},
		{"notes <n> <text...>", "Save week notes"},
		{"save", "Flush the state document now"},
		{"exit, quit", "Save and leave"},
	}
	for _, cmd := range commands {
		fmt.Printf("  %-44s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Println()
	fmt.Println("Days: Ma Di Wo Do Vr Za Zo; sessions look like w3-s2.")
	fmt.Println()
	return nil
}

func (r *REPL) cmdExit(args []string) error {
	return io.EOF
}

func (r *REPL) cmdSave(args []string) error {
	r.dirty = true
	if err := r.flush(); err != nil {
		return err
	}
	fmt.Println("Saved.")
	return nil
}

func (r *REPL) cmdStatus(args []string) error {
	st := r.state
	completed := planner.CompletedCount(st)
	unlocked := planner.UnlockedWeeks(completed)

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("=== Progress ==="))
	fmt.Printf("Completed: %d sessions (%d%%)\n", completed, planner.CompletionPercent(st))
	fmt.Printf("Unlocked:  %d of 8 weeks\n", unlocked)
	fmt.Printf("Current:   week %d\n", st.Program.CurrentWeek)
	if next := planner.NextOpenSession(st); next != nil {
		fmt.Printf("Next up:   %s\n", next)
	} else {
		fmt.Printf("Next up:   all unlocked sessions done\n")
	}
	fmt.Println()
	return nil
}

func (r *REPL) cmdWeek(args []string) error {
	weekID := r.state.UI.SelectedWeekID
	if len(args) > 0 {
		parsed, err := parseWeekArg(args[0])
		if err != nil {
			return err
		}
		weekID = parsed
	}
	week := r.state.Week(weekID)
	if week == nil {
		return fmt.Errorf("unknown week %s", weekID)
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("\n%s %s\n", cyan(week.ID.String()), week.Title)

	for _, day := range types.Days {
		ids := week.Calendar.On(day)
		if len(ids) == 0 {
			fmt.Printf("  %s %s\n", day, gray("-"))
			continue
		}
		labels := make([]string, 0, len(ids))
		for _, id := range ids {
			labels = append(labels, sessionLabel(r.state, id))
		}
		fmt.Printf("  %s %s\n", day, strings.Join(labels, ", "))
	}
	if len(week.Backlog) > 0 {
		labels := make([]string, 0, len(week.Backlog))
		for _, id := range week.Backlog {
			labels = append(labels, id.String())
		}
		fmt.Printf("  Backlog: %s\n", strings.Join(labels, ", "))
	}
	if week.Notes != "" {
		fmt.Printf("  Notes: %s\n", week.Notes)
	}
	r.printWarnings(planner.ValidateWeek(week, r.state.SessionsByID))
	fmt.Println()
	return nil
}

func (r *REPL) cmdSelect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <week>")
	}
	weekID, err := parseWeekArg(args[0])
	if err != nil {
		return err
	}
	result := planner.SetCurrentWeek(r.state, weekID)
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Current week is now %s\n", weekID)
	return nil
}

func (r *REPL) cmdMove(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: move <session> <from> <to> [swap] [light]")
	}
	id, err := types.ParseSessionID(args[0])
	if err != nil {
		return err
	}
	from, ok := types.ParseDay(args[1])
	if !ok {
		return fmt.Errorf("unknown day %q", args[1])
	}
	to, ok := types.ParseDay(args[2])
	if !ok {
		return fmt.Errorf("unknown day %q", args[2])
	}
	strategy := planner.StrategyAppend
	opts := planner.Options{}
	for _, flag := range args[3:] {
		switch flag {
		case "swap":
			strategy = planner.StrategySwap
		case "light":
			opts.LightVersion = true
		default:
			return fmt.Errorf("unknown modifier %q", flag)
		}
	}

	result := planner.MoveSession(r.state, id, from, to, strategy, opts)
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Moved %s to %s\n", id, to)
	r.printWarnings(result.Warnings)
	return nil
}

func (r *REPL) cmdMiss(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: miss <session>")
	}
	id, err := types.ParseSessionID(args[0])
	if err != nil {
		return err
	}
	result := planner.MarkSessionMissed(r.state, id, "")
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Parked %s in the backlog\n", id)
	r.printWarnings(result.Warnings)
	return nil
}

func (r *REPL) cmdReplan(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: replan <session> <day> [light]")
	}
	id, err := types.ParseSessionID(args[0])
	if err != nil {
		return err
	}
	day, ok := types.ParseDay(args[1])
	if !ok {
		return fmt.Errorf("unknown day %q", args[1])
	}
	opts := planner.Options{}
	if len(args) > 2 && args[2] == "light" {
		opts.LightVersion = true
	}

	result := planner.ReplanFromBacklog(r.state, id, day, opts)
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Replanned %s onto %s\n", id, day)
	r.printWarnings(result.Warnings)
	return nil
}

func (r *REPL) cmdReshuffle(args []string) error {
	weekID := r.state.UI.SelectedWeekID
	if len(args) > 0 {
		parsed, err := parseWeekArg(args[0])
		if err != nil {
			return err
		}
		weekID = parsed
	}
	result := planner.AutoReshuffleWeek(r.state, weekID)
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	if len(result.Moved) == 0 {
		fmt.Println("Nothing moved; layout already fits.")
	}
	for _, move := range result.Moved {
		fmt.Printf("Moved %s: %s -> %s\n", move.SessionID, move.From, move.To)
	}
	r.printWarnings(result.Warnings)
	return nil
}

func (r *REPL) cmdReset(args []string) error {
	weekID := r.state.UI.SelectedWeekID
	if len(args) > 0 {
		parsed, err := parseWeekArg(args[0])
		if err != nil {
			return err
		}
		weekID = parsed
	}
	result := planner.ResetWeek(r.state, weekID)
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Restored default layout for %s\n", weekID)
	r.printWarnings(result.Warnings)
	return nil
}

func (r *REPL) cmdComplete(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: complete <session> <score 1-5> [notes...]")
	}
	id, err := types.ParseSessionID(args[0])
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(args[1])
	if err != nil || score < 1 || score > 5 {
		return fmt.Errorf("score must be 1..5")
	}

	result := planner.CompleteSession(r.state, id, planner.CompletePayload{
		Date:         time.Now().Format("2006-01-02"),
		SuccessScore: score,
		Notes:        strings.Join(args[2:], " "),
	})
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Completed %s (%d/5)\n", green("✓"), id, score)
	return nil
}

func (r *REPL) cmdNotes(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: notes <week> <text...>")
	}
	weekID, err := parseWeekArg(args[0])
	if err != nil {
		return err
	}
	result := planner.SaveWeekNotes(r.state, weekID, strings.Join(args[1:], " "))
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	r.markDirty()
	fmt.Printf("Notes saved for %s\n", weekID)
	return nil
}

func (r *REPL) printWarnings(warnings []planner.Warning) {
	if len(warnings) == 0 {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, warning := range warnings {
		fmt.Printf("  %s %s\n", yellow("⚠"), warning.Message)
	}
}

func sessionLabel(st *types.PlannerState, id types.SessionID) string {
	session := st.Session(id)
	if session == nil {
		return id.String()
	}
	label := fmt.Sprintf("%s (%s)", id, session.Difficulty)
	if session.Status == types.StatusDone {
		label += " ✓"
	}
	if session.IsLightVersion {
		label += " light"
	}
	return label
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
