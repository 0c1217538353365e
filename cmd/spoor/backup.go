package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvdberg/spoor/internal/storage"
	"github.com/mvdberg/spoor/internal/types"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the state document and the log to dated JSON files",
	Long: `Write two snapshot files into the backup directory: the full state
document (restorable by pointing --state at it with the file backend)
and the session log on its own, for spreadsheets and the like.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, st, err := loadState(ctx)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			fail("cannot create backup directory: %v", err)
		}

		stamp := time.Now().Format("2006-01-02")
		statePath := filepath.Join(backupDir, fmt.Sprintf("spoor-state-%s.json", stamp))
		logsPath := filepath.Join(backupDir, fmt.Sprintf("spoor-logs-%s.json", stamp))

		doc := backupDocument(st)

		// The two exports are independent; write them concurrently.
		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			return writeJSON(statePath, doc)
		})
		g.Go(func() error {
			return writeJSON(logsPath, st.Logs)
		})
		if err := g.Wait(); err != nil {
			fail("backup failed: %v", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Backed up to:\n  %s\n  %s\n", green("✓"), statePath, logsPath)
	},
}

// backupDocument wraps the state in the same envelope the file backend
// writes, so a backup restores by pointing --state at it.
func backupDocument(st *types.PlannerState) storage.Document {
	return storage.Document{
		Version: storage.DocVersion,
		SavedAt: time.Now().UTC(),
		State:   st,
	}
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".spoor-backup-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "out", "backups", "Directory to write backup files into")
	rootCmd.AddCommand(backupCmd)
}
