package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdberg/spoor/internal/config"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/track"
)

var (
	completeDate       string
	completeSurface    string
	completeWeather    string
	completeScore      int
	completeFocus      string
	completeNotes      string
	completePhoto      string
	completeNoseDown   bool
	completeCalmPace   bool
	completeFoundTurn  bool
	completeDistracted bool
)

var completeCmd = &cobra.Command{
	Use:   "complete <session>",
	Short: "Record a finished session with its evaluation",
	Long: `Mark a session done and record the evaluation in the log. Completing the
same session twice on the same date overwrites the earlier evaluation.

Surface must be one of gras, bos, zand, mix, asfalt, grind. Focus is
laag, middel, or hoog.

Example:
  spoor complete w1-s1 --score 4 --surface gras --nose-down --notes "rustig gewerkt"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		id := parseSessionArg(args[0])

		payload, err := evaluationPayload(cmd.Flags().Changed("found-turn"))
		if err != nil {
			fail("%v", err)
		}

		result := planner.CompleteSession(st, id, payload)
		applyAndSave(ctx, store, st, result)

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Completed %s (%d/5)\n", green("✓"), id, completeScore)
		if result.Log != nil {
			fmt.Printf("  Logged as %s\n", result.Log.ID)
		}
		if next := planner.NextOpenSession(st); next != nil {
			label := next.String()
			if session := st.Session(*next); session != nil {
				label = fmt.Sprintf("%s - %s", next, session.Title)
			}
			fmt.Printf("  Next up: %s\n", label)
		}
	},
}

// evaluationPayload validates the complete flags and assembles the engine
// payload. An empty --date means today. foundTurnSet reports whether
// --found-turn was passed at all; when it was not, the engine decides
// applicability from the track itself.
func evaluationPayload(foundTurnSet bool) (planner.CompletePayload, error) {
	date := completeDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !config.IsISODate(date) {
		return planner.CompletePayload{}, fmt.Errorf("date %q is not a valid YYYY-MM-DD date", date)
	}
	if completeScore < 1 || completeScore > 5 {
		return planner.CompletePayload{}, fmt.Errorf("score must be between 1 and 5, got %d", completeScore)
	}
	if completeSurface != "" && !track.KnownSurface(completeSurface) {
		return planner.CompletePayload{}, fmt.Errorf("unknown surface %q (expected gras, bos, zand, mix, asfalt, or grind)", completeSurface)
	}
	switch completeFocus {
	case "", "laag", "middel", "hoog":
	default:
		return planner.CompletePayload{}, fmt.Errorf("unknown focus %q (expected laag, middel, or hoog)", completeFocus)
	}

	payload := planner.CompletePayload{
		Date:         date,
		Surface:      completeSurface,
		Weather:      completeWeather,
		SuccessScore: completeScore,
		Focus:        completeFocus,
		Notes:        completeNotes,
		PhotoRef:     completePhoto,
		NoseDown:     completeNoseDown,
		CalmPace:     completeCalmPace,
		Distracted:   completeDistracted,
	}
	if foundTurnSet {
		payload.FoundTurn = &completeFoundTurn
	}
	return payload, nil
}

func init() {
	completeCmd.Flags().StringVar(&completeDate, "date", "", "Session date (YYYY-MM-DD, default today)")
	completeCmd.Flags().StringVar(&completeSurface, "surface", "", "Surface actually used (default: the track's surface)")
	completeCmd.Flags().StringVar(&completeWeather, "weather", "", "Weather during the session")
	completeCmd.Flags().IntVar(&completeScore, "score", 3, "Success score 1-5")
	completeCmd.Flags().StringVar(&completeFocus, "focus", "", "Dog's focus: laag, middel, hoog")
	completeCmd.Flags().StringVar(&completeNotes, "notes", "", "Free-text notes")
	completeCmd.Flags().StringVar(&completePhoto, "photo", "", "Photo reference")
	completeCmd.Flags().BoolVar(&completeNoseDown, "nose-down", false, "Dog kept its nose down")
	completeCmd.Flags().BoolVar(&completeCalmPace, "calm-pace", false, "Dog worked at a calm pace")
	completeCmd.Flags().BoolVar(&completeFoundTurn, "found-turn", false, "Dog worked out the turn")
	completeCmd.Flags().BoolVar(&completeDistracted, "distracted", false, "Dog was distracted")
	rootCmd.AddCommand(completeCmd)
}
