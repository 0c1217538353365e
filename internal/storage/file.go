package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/types"
)

// FileStore persists the state document as a single JSON file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// document behind.
type FileStore struct {
	path string

	// migratePlan, when set, lets Load transparently migrate a legacy
	// major-1 document by rebuilding state from this plan.
	migratePlan *plan.Plan
}

// NewFile creates a file-backed store. The plan may be nil; legacy
// documents then load as ErrIncompatible instead of migrating.
func NewFile(path string, migratePlan *plan.Plan) *FileStore {
	return &FileStore{path: path, migratePlan: migratePlan}
}

// Load reads and validates the state document. Returns ErrNotFound when
// no document exists, ErrIncompatible when one exists but can not be
// trusted.
func (f *FileStore) Load(ctx context.Context) (*types.PlannerState, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state document: %w", err)
	}

	// Probe the version before committing to a document layout.
	var header struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	if NewerThanSupported(header.Version) {
		return nil, fmt.Errorf("%w: document version %s is newer than %s", ErrIncompatible, header.Version, DocVersion)
	}
	if MajorVersion(header.Version) <= 1 {
		return f.loadLegacy(data, header.Version)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	if err := ValidateState(doc.State); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	return doc.State, nil
}

func (f *FileStore) loadLegacy(data []byte, version string) (*types.PlannerState, error) {
	if f.migratePlan == nil {
		return nil, fmt.Errorf("%w: legacy document version %q and no plan to migrate with", ErrIncompatible, version)
	}
	var legacy LegacyDocument
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	st, err := MigrateLegacy(&legacy, f.migratePlan)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	return st, nil
}

// Save writes the state document atomically. It refuses to overwrite a
// document stamped with a different document id.
func (f *FileStore) Save(ctx context.Context, st *types.PlannerState) error {
	if err := f.guardDocumentID(st); err != nil {
		return err
	}

	doc := Document{
		Version: DocVersion,
		SavedAt: time.Now().UTC(),
		State:   st,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".spoor-state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state document: %w", err)
	}
	return nil
}

// guardDocumentID compares the incoming document id with whatever is on
// disk. Both sides carrying different non-empty ids means this save
// targets someone else's program.
func (f *FileStore) guardDocumentID(st *types.PlannerState) error {
	if st.Program.DocumentID == "" {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		// Missing or unreadable is fine; Save replaces it anyway.
		return nil
	}
	var existing Document
	if err := json.Unmarshal(data, &existing); err != nil || existing.State == nil {
		return nil
	}
	onDisk := existing.State.Program.DocumentID
	if onDisk != "" && onDisk != st.Program.DocumentID {
		return fmt.Errorf("%w: on disk %s, saving %s", ErrDocumentMismatch, onDisk, st.Program.DocumentID)
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *FileStore) Close() error {
	return nil
}

// Path returns the document location, used by backup.
func (f *FileStore) Path() string {
	return f.path
}
