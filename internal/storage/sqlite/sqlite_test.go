package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/storage"
	"github.com/mvdberg/spoor/internal/types"
)

func testPlan() *plan.Plan {
	p := &plan.Plan{}
	for w := 1; w <= plan.TotalWeeks; w++ {
		week := plan.WeekDef{WeekNumber: w, Theme: fmt.Sprintf("Week %d", w)}
		for s := 1; s <= plan.SessionsPerWeek; s++ {
			week.Sessions = append(week.Sessions, plan.SessionDef{
				Title: fmt.Sprintf("Sessie %d.%d", w, s),
				Track: "10 m gras met 1 bocht",
			})
		}
		p.Weeks = append(p.Weeks, week)
	}
	return p
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "spoor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestState(t *testing.T) *types.PlannerState {
	t.Helper()
	st := planner.NewState(testPlan(), planner.Preferences{DogName: "Saar"})
	st.Program.DocumentID = "doc-sqlite-1"
	return st
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	st := newTestState(t)

	planner.MoveSession(st, types.SessionID{Week: 1, Ordinal: 1}, types.Tuesday, types.Sunday, planner.StrategyAppend, planner.Options{})
	planner.CompleteSession(st, types.SessionID{Week: 1, Ordinal: 2}, planner.CompletePayload{
		Date: "2026-01-08", SuccessScore: 4, Focus: "hoog", NoseDown: true,
	})

	require.NoError(t, store.Save(ctx, st))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, loaded)
}

func TestSQLiteLoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteDocumentGuard(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := newTestState(t)
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, first))

	other := newTestState(t)
	other.Program.DocumentID = "doc-sqlite-2"
	err := store.Save(ctx, other)
	assert.ErrorIs(t, err, storage.ErrDocumentMismatch)
}

// The log table is keyed by the deterministic log id, so re-saving after a
// same-date re-completion updates the row instead of adding one.
func TestSQLiteLogUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	st := newTestState(t)
	id := types.SessionID{Week: 1, Ordinal: 1}

	planner.CompleteSession(st, id, planner.CompletePayload{Date: "2026-01-06", SuccessScore: 2})
	require.NoError(t, store.Save(ctx, st))

	planner.CompleteSession(st, id, planner.CompletePayload{Date: "2026-01-06", SuccessScore: 5, Notes: "beter"})
	require.NoError(t, store.Save(ctx, st))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Logs, 1)
	assert.Equal(t, 5, loaded.Logs[0].SuccessScore)
	assert.Equal(t, "beter", loaded.Logs[0].Notes)
}

// Logs come back ordered by date then id regardless of insertion order.
func TestSQLiteLogOrdering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	st := newTestState(t)

	planner.CompleteSession(st, types.SessionID{Week: 1, Ordinal: 2}, planner.CompletePayload{Date: "2026-01-10"})
	planner.CompleteSession(st, types.SessionID{Week: 1, Ordinal: 1}, planner.CompletePayload{Date: "2026-01-06"})
	require.NoError(t, store.Save(ctx, st))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Logs, 2)
	assert.Equal(t, "2026-01-06", loaded.Logs[0].Date)
	assert.Equal(t, "2026-01-10", loaded.Logs[1].Date)
}

func TestSQLiteFoundTurnNullability(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	p := testPlan()
	p.Weeks[0].Sessions[0].Track = "10 m recht spoor" // no turn
	st := planner.NewState(p, planner.Preferences{})
	st.Program.DocumentID = "doc-sqlite-3"

	planner.CompleteSession(st, types.SessionID{Week: 1, Ordinal: 1}, planner.CompletePayload{Date: "2026-01-06"})
	planner.CompleteSession(st, types.SessionID{Week: 1, Ordinal: 2}, planner.CompletePayload{Date: "2026-01-07"})
	require.NoError(t, store.Save(ctx, st))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Logs, 2)
	assert.Nil(t, loaded.Logs[0].Observations.FoundTurn)
	require.NotNil(t, loaded.Logs[1].Observations.FoundTurn)
	assert.False(t, *loaded.Logs[1].Observations.FoundTurn)
}

func TestSQLiteInMemory(t *testing.T) {
	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	st := newTestState(t)
	require.NoError(t, store.Save(ctx, st))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Program.ID, loaded.Program.ID)
}
