package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/schema"
)

func sessionRoster() []schema.Employee {
	return []schema.Employee{
		{
			ID: "e1", Name: "Ada", Performance: schema.RatingMedium, Potential: schema.RatingMedium,
			GridPos: 5, Flags: []string{"key_talent"}, Notes: "solid quarter",
		},
		{
			ID: "e2", Name: "Grace", Performance: schema.RatingHigh, Potential: schema.RatingHigh,
			GridPos: 9,
		},
	}
}

func TestCreateAndSnapshot(t *testing.T) {
	store := NewStore()
	record := store.Create("alice", sessionRoster())

	assert.NotEmpty(t, record.SessionID)
	assert.Equal(t, "alice", record.UserID)
	assert.Len(t, record.Original, 2)
	assert.Len(t, record.Current, 2)
	assert.Empty(t, record.Events)

	snap, err := store.Snapshot("alice")
	require.NoError(t, err)
	assert.Equal(t, record.SessionID, snap.SessionID)

	// Snapshots are detached copies.
	snap.Current[0].Notes = "scribble"
	again, err := store.Snapshot("alice")
	require.NoError(t, err)
	assert.Equal(t, "solid quarter", again.Current[0].Notes)
}

func TestCreateReplacesExistingSession(t *testing.T) {
	store := NewStore()
	first := store.Create("alice", sessionRoster())
	second := store.Create("alice", sessionRoster())

	assert.NotEqual(t, first.SessionID, second.SessionID)

	snap, err := store.Snapshot("alice")
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, snap.SessionID)
}

func TestLookupErrors(t *testing.T) {
	store := NewStore()

	_, err := store.Snapshot("nobody")
	assert.True(t, errors.Is(err, ErrNoActiveSession))

	assert.True(t, errors.Is(store.Delete("nobody"), ErrNoActiveSession))

	store.Create("alice", sessionRoster())
	_, err = store.MoveEmployee("alice", "ghost", schema.RatingHigh, schema.RatingHigh)
	assert.True(t, errors.Is(err, ErrEmployeeNotFound))
}

func TestMoveEmployee(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	emp, err := store.MoveEmployee("alice", "e1", schema.RatingHigh, schema.RatingHigh)
	require.NoError(t, err)
	assert.Equal(t, 9, emp.GridPos)
	assert.True(t, emp.ModifiedInSession)

	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schema.EventMove, events[0].Kind)
	assert.Equal(t, 5, events[0].FromPosition)
	assert.Equal(t, 9, events[0].ToPosition)
}

func TestMoveEmployeeInvalidRating(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.MoveEmployee("alice", "e1", schema.Rating("stellar"), schema.RatingHigh)
	assert.True(t, errors.Is(err, ErrInvalidRating))
}

func TestMoveNetZeroCancelsEvent(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.MoveEmployee("alice", "e1", schema.RatingHigh, schema.RatingLow)
	require.NoError(t, err)

	// Move back to the original cell: the log must end up empty.
	emp, err := store.MoveEmployee("alice", "e1", schema.RatingMedium, schema.RatingMedium)
	require.NoError(t, err)
	assert.False(t, emp.ModifiedInSession)

	events, err := store.Events("alice")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMoveTwiceKeepsSingleSpanningEvent(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.MoveEmployee("alice", "e1", schema.RatingHigh, schema.RatingLow)
	require.NoError(t, err)
	_, err = store.MoveEmployee("alice", "e1", schema.RatingLow, schema.RatingHigh)
	require.NoError(t, err)

	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1, "two moves collapse into one slot")
	assert.Equal(t, schema.RatingMedium, events[0].FromPerformance, "event spans from the original snapshot")
	assert.Equal(t, schema.RatingLow, events[0].ToPerformance)
}

func TestFlagLifecycle(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.AddFlag("alice", "e2", "bogus")
	assert.True(t, errors.Is(err, ErrInvalidFlag))

	emp, err := store.AddFlag("alice", "e2", "ready_now")
	require.NoError(t, err)
	assert.True(t, emp.HasFlag("ready_now"))
	assert.True(t, emp.ModifiedInSession)

	// Adding an existing flag changes nothing.
	_, err = store.AddFlag("alice", "e2", "ready_now")
	require.NoError(t, err)
	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schema.EventFlagAdd, events[0].Kind)
	assert.Equal(t, "ready_now", events[0].Flag)

	// Removing the flag added in-session cancels the addition.
	emp, err = store.RemoveFlag("alice", "e2", "ready_now")
	require.NoError(t, err)
	assert.False(t, emp.HasFlag("ready_now"))
	assert.False(t, emp.ModifiedInSession)

	events, err = store.Events("alice")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFlagRemoveThenReAddCancels(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	// e1 imports with key_talent. Remove it, then put it back.
	_, err := store.RemoveFlag("alice", "e1", "key_talent")
	require.NoError(t, err)
	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schema.EventFlagRemove, events[0].Kind)

	emp, err := store.AddFlag("alice", "e1", "key_talent")
	require.NoError(t, err)
	assert.True(t, emp.HasFlag("key_talent"))
	assert.False(t, emp.ModifiedInSession)

	events, err = store.Events("alice")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNotesAndPlanNetZero(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.UpdateNotes("alice", "e1", "needs stretch project")
	require.NoError(t, err)
	_, err = store.UpdatePlan("alice", "e1", "rotate to platform team")
	require.NoError(t, err)

	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Restore the original notes: only the plan event survives.
	emp, err := store.UpdateNotes("alice", "e1", "solid quarter")
	require.NoError(t, err)
	assert.True(t, emp.ModifiedInSession, "plan still differs from the snapshot")

	events, err = store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schema.EventPlanUpdate, events[0].Kind)
	assert.Equal(t, "", events[0].Before)
	assert.Equal(t, "rotate to platform team", events[0].After)
}

func TestNoteUpdateReplacesSlot(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())

	_, err := store.UpdateNotes("alice", "e1", "draft one")
	require.NoError(t, err)
	_, err = store.UpdateNotes("alice", "e1", "draft two")
	require.NoError(t, err)

	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "solid quarter", events[0].Before, "before text tracks the snapshot, not the last edit")
	assert.Equal(t, "draft two", events[0].After)
}

func TestRestoreRoundTrip(t *testing.T) {
	store := NewStore()
	store.Create("alice", sessionRoster())
	_, err := store.MoveEmployee("alice", "e1", schema.RatingHigh, schema.RatingHigh)
	require.NoError(t, err)

	snap, err := store.Snapshot("alice")
	require.NoError(t, err)
	require.NoError(t, store.Delete("alice"))

	store.Restore(snap)
	events, err := store.Events("alice")
	require.NoError(t, err)
	require.Len(t, events, 1)

	// Net-zero cancellation still works against the restored snapshot.
	_, err = store.MoveEmployee("alice", "e1", schema.RatingMedium, schema.RatingMedium)
	require.NoError(t, err)
	events, err = store.Events("alice")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestConcurrentMutations(t *testing.T) {
	store := NewStore()
	roster := make([]schema.Employee, 50)
	for i := range roster {
		roster[i] = schema.Employee{
			ID:          fmt.Sprintf("e%d", i),
			Performance: schema.RatingMedium,
			Potential:   schema.RatingMedium,
			GridPos:     5,
		}
	}
	store.Create("alice", roster)
	store.Create("bob", roster)

	var wg sync.WaitGroup
	for i := range 50 {
		id := fmt.Sprintf("e%d", i)
		wg.Go(func() {
			_, _ = store.MoveEmployee("alice", id, schema.RatingHigh, schema.RatingHigh)
		})
		wg.Go(func() {
			_, _ = store.UpdateNotes("bob", id, "touched")
		})
	}
	wg.Wait()

	aliceEvents, err := store.Events("alice")
	require.NoError(t, err)
	assert.Len(t, aliceEvents, 50)

	bobEvents, err := store.Events("bob")
	require.NoError(t, err)
	assert.Len(t, bobEvents, 50)
}
