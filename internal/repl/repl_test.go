package repl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdberg/spoor/internal/plan"
	"github.com/mvdberg/spoor/internal/planner"
	"github.com/mvdberg/spoor/internal/types"
)

// memStore records saves without touching a disk.
type memStore struct {
	saves int
	last  *types.PlannerState
}

func (m *memStore) Load(ctx context.Context) (*types.PlannerState, error) {
	return m.last, nil
}

func (m *memStore) Save(ctx context.Context, st *types.PlannerState) error {
	m.saves++
	m.last = st
	return nil
}

func (m *memStore) Close() error { return nil }

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

func newTestREPL(t *testing.T) (*REPL, *memStore) {
	t.Helper()
	store := &memStore{}
	st := planner.NewState(testPlan(), planner.Preferences{DogName: "Saar"})
	r, err := New(&Config{Store: store, State: st})
	require.NoError(t, err)
	r.ctx = context.Background()
	return r, store
}

func TestNewRequiresStoreAndState(t *testing.T) {
	_, err := New(&Config{State: &types.PlannerState{}})
	assert.Error(t, err)
	_, err = New(&Config{Store: &memStore{}})
	assert.Error(t, err)
}

func TestProcessInputUnknownCommand(t *testing.T) {
	r, store := newTestREPL(t)
	require.NoError(t, r.processInput("frobnicate"))
	assert.Zero(t, store.saves)
}

func TestProcessInputMove(t *testing.T) {
	r, store := newTestREPL(t)
	require.NoError(t, r.processInput("move w1-s1 Di Wo"))

	day, ok := r.state.Week(1).Calendar.DayOf(types.SessionID{Week: 1, Ordinal: 1})
	require.True(t, ok)
	assert.Equal(t, types.Wednesday, day)
	assert.Equal(t, 1, store.saves)
}

func TestProcessInputMoveModifiers(t *testing.T) {
	r, _ := newTestREPL(t)
	require.NoError(t, r.processInput("move w1-s1 Di Do swap light"))

	id := types.SessionID{Week: 1, Ordinal: 1}
	displaced := types.SessionID{Week: 1, Ordinal: 2}
	day, _ := r.state.Week(1).Calendar.DayOf(id)
	assert.Equal(t, types.Thursday, day)
	day, _ = r.state.Week(1).Calendar.DayOf(displaced)
	assert.Equal(t, types.Tuesday, day)
	assert.True(t, r.state.Session(id).IsLightVersion)
}

func TestProcessInputMoveRejectsBadArgs(t *testing.T) {
	r, store := newTestREPL(t)
	assert.Error(t, r.processInput("move"))
	assert.Error(t, r.processInput("move w1-s1 Di"))
	assert.Error(t, r.processInput("move nonsense Di Wo"))
	assert.Error(t, r.processInput("move w1-s1 Di Funday"))
	assert.Error(t, r.processInput("move w9-s9 Di Wo"))
	assert.Zero(t, store.saves)
}

func TestProcessInputMissAndReplan(t *testing.T) {
	r, _ := newTestREPL(t)
	id := types.SessionID{Week: 1, Ordinal: 2}

	require.NoError(t, r.processInput("miss w1-s2"))
	assert.True(t, r.state.Week(1).InBacklog(id))

	require.NoError(t, r.processInput("replan w1-s2 Zo light"))
	day, ok := r.state.Week(1).Calendar.DayOf(id)
	require.True(t, ok)
	assert.Equal(t, types.Sunday, day)
	assert.True(t, r.state.Session(id).IsLightVersion)
}

func TestProcessInputReplanWithoutBacklogFails(t *testing.T) {
	r, _ := newTestREPL(t)
	assert.Error(t, r.processInput("replan w1-s1 Zo"))
}

func TestProcessInputComplete(t *testing.T) {
	r, _ := newTestREPL(t)
	require.NoError(t, r.processInput("complete w1-s1 4 rustig gewerkt"))

	id := types.SessionID{Week: 1, Ordinal: 1}
	assert.Equal(t, types.StatusDone, r.state.Session(id).Status)
	require.Len(t, r.state.Logs, 1)
	assert.Equal(t, 4, r.state.Logs[0].SuccessScore)
	assert.Equal(t, "rustig gewerkt", r.state.Logs[0].Notes)

	assert.Error(t, r.processInput("complete w1-s1 9"))
	assert.Error(t, r.processInput("complete w1-s1"))
}

func TestProcessInputSelectAndNotes(t *testing.T) {
	r, _ := newTestREPL(t)
	require.NoError(t, r.processInput("select 3"))
	assert.Equal(t, types.WeekID(3), r.state.UI.SelectedWeekID)

	require.NoError(t, r.processInput("notes 3 veel wind vandaag"))
	assert.Equal(t, "veel wind vandaag", r.state.Week(3).Notes)
}

func TestProcessInputResetAndReshuffle(t *testing.T) {
	r, _ := newTestREPL(t)
	require.NoError(t, r.processInput("move w1-s1 Di Zo"))
	require.NoError(t, r.processInput("reshuffle 1"))
	require.NoError(t, r.processInput("reset 1"))

	day, _ := r.state.Week(1).Calendar.DayOf(types.SessionID{Week: 1, Ordinal: 1})
	assert.Equal(t, types.Tuesday, day)
}

// Quick successive mutations coalesce: the throttle lets the first flush
// through, later ones ride along until the next allowance or the exit save.
func TestAutosaveThrottling(t *testing.T) {
	store := &memStore{}
	st := planner.NewState(testPlan(), planner.Preferences{})
	r, err := New(&Config{Store: store, State: st, SaveInterval: time.Hour})
	require.NoError(t, err)
	r.ctx = context.Background()

	require.NoError(t, r.processInput("move w1-s1 Di Wo"))
	require.NoError(t, r.processInput("move w1-s1 Wo Vr"))
	require.NoError(t, r.processInput("move w1-s1 Vr Zo"))
	assert.Equal(t, 1, store.saves)
	assert.True(t, r.dirty)

	// The exit flush writes the pending changes unconditionally.
	require.NoError(t, r.flush())
	assert.Equal(t, 2, store.saves)
	assert.False(t, r.dirty)
}
