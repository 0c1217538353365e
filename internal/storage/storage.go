// Package storage persists the planner state document. The engine never
// talks to a storage medium directly; it hands the whole PlannerState to a
// Store and gets it back. Backends: a versioned JSON file (this package)
// and sqlite (the sqlite subpackage).
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/mvdberg/spoor/internal/types"
)

// DocVersion is the state document version this binary reads and writes.
// Major 1 was the legacy flat session-log layout and is routed through
// migration on load.
const DocVersion = "2.0.0"

var (
	// ErrNotFound means no state document exists yet; callers rebuild from
	// the plan.
	ErrNotFound = errors.New("planner state not found")

	// ErrIncompatible means a document exists but can not be trusted:
	// unreadable, structurally invalid, or written by a newer version.
	ErrIncompatible = errors.New("incompatible planner state document")

	// ErrDocumentMismatch means a save would overwrite a state document
	// belonging to a different program instance.
	ErrDocumentMismatch = errors.New("state document belongs to a different program")
)

// Store loads and saves the planner state as one transactional unit.
type Store interface {
	Load(ctx context.Context) (*types.PlannerState, error)
	Save(ctx context.Context, st *types.PlannerState) error
	Close() error
}

// Document is the persisted envelope around the planner state.
type Document struct {
	Version string              `json:"version"`
	SavedAt time.Time           `json:"savedAt"`
	State   *types.PlannerState `json:"state"`
}

// ValidateState checks the required top-level keys of a loaded state
// before it is trusted. A document failing this is rebuilt from the plan,
// not repaired.
func ValidateState(st *types.PlannerState) error {
	if st == nil {
		return fmt.Errorf("state is missing")
	}
	if st.Program.ID == "" {
		return fmt.Errorf("program is missing")
	}
	if st.WeeksByID == nil {
		return fmt.Errorf("weeksById is missing")
	}
	if st.SessionsByID == nil {
		return fmt.Errorf("sessionsById is missing")
	}
	if st.Logs == nil {
		return fmt.Errorf("logs is not an array")
	}
	if st.UI.SelectedWeekID == 0 {
		return fmt.Errorf("ui selection is missing")
	}
	return nil
}

// MajorVersion extracts the major version of a document version string,
// or 0 when it is not parseable.
func MajorVersion(version string) int {
	canon := canonicalVersion(version)
	if !semver.IsValid(canon) {
		return 0
	}
	major := strings.TrimPrefix(semver.Major(canon), "v")
	n := 0
	for _, r := range major {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// NewerThanSupported reports whether the document was written by a binary
// newer than this one.
func NewerThanSupported(version string) bool {
	canon := canonicalVersion(version)
	if !semver.IsValid(canon) {
		return false
	}
	return semver.Compare(canon, canonicalVersion(DocVersion)) > 0
}

// canonicalVersion maps stored version strings ("1.0", "2.0.0") onto the
// "vMAJOR[.MINOR[.PATCH]]" form semver understands.
func canonicalVersion(version string) string {
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
