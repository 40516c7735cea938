package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redraft-dev/redraft/internal/events"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetRun(t *testing.T) {
	db := openTestDB(t)

	run := &Run{
		ID:          "run-1",
		Request:     "write a haiku",
		MaxAttempts: 3,
	}
	require.NoError(t, db.CreateRun(run))

	got, err := db.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "write a haiku", got.Request)
	assert.Equal(t, RunStatusRunning, got.Status)
	assert.Equal(t, 3, got.MaxAttempts)
	assert.Nil(t, got.CompletedAt)
}

func TestGetRun_Missing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetRun("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateRun_DuplicateID(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.CreateRun(&Run{ID: "run-1", Request: "r", MaxAttempts: 1}))
	require.Error(t, db.CreateRun(&Run{ID: "run-1", Request: "r", MaxAttempts: 1}))
}

func TestFinishRun(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.CreateRun(&Run{ID: "run-1", Request: "r", MaxAttempts: 3}))

	require.NoError(t, db.FinishRun("run-1", RunStatusApproved, 2, "final draft", "", ""))

	got, err := db.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, RunStatusApproved, got.Status)
	assert.Equal(t, 2, got.AttemptsUsed)
	assert.Equal(t, "final draft", got.Output)
	assert.NotNil(t, got.CompletedAt)
}

func TestFinishRun_Missing(t *testing.T) {
	db := openTestDB(t)
	require.Error(t, db.FinishRun("nope", RunStatusApproved, 1, "", "", ""))
}

func TestRecordAndListAttempts(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.CreateRun(&Run{ID: "run-1", Request: "r", MaxAttempts: 3}))

	require.NoError(t, db.RecordAttempt(&Attempt{RunID: "run-1", Number: 1, Accepted: false, Feedback: "too short"}))
	require.NoError(t, db.RecordAttempt(&Attempt{RunID: "run-1", Number: 2, Accepted: true}))

	attempts, err := db.ListAttempts("run-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.False(t, attempts[0].Accepted)
	assert.Equal(t, "too short", attempts[0].Feedback)
	assert.True(t, attempts[1].Accepted)
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.CreateRun(&Run{ID: "run-1", Request: "first", MaxAttempts: 1}))
	require.NoError(t, db.CreateRun(&Run{ID: "run-2", Request: "second", MaxAttempts: 1}))

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestListRuns_Limit(t *testing.T) {
	db := openTestDB(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.CreateRun(&Run{ID: id, Request: "r", MaxAttempts: 1}))
	}

	runs, err := db.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecorderHandler(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.CreateRun(&Run{ID: "run-1", Request: "r", MaxAttempts: 3}))

	bus := events.NewBus()
	bus.Subscribe(RecorderHandler(RecorderConfig{DB: db}))

	bus.Emit(events.NewEvent(events.AttemptReviewed, "run-1").WithAttempt(1).WithPayload(map[string]any{
		"accepted": false,
		"feedback": "needs citations",
	}))
	// Non-attempt events are ignored
	bus.Emit(events.NewEvent(events.RunApproved, "run-1"))

	attempts, err := db.ListAttempts("run-1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "needs citations", attempts[0].Feedback)
}

func TestRecorderHandler_ErrorCallback(t *testing.T) {
	db := openTestDB(t)
	// No run row: the attempt insert violates the foreign key

	var gotErr error
	handler := RecorderHandler(RecorderConfig{DB: db, OnError: func(err error) { gotErr = err }})

	handler(events.NewEvent(events.AttemptReviewed, "ghost").WithAttempt(1).WithPayload(map[string]any{
		"accepted": false,
	}))

	require.Error(t, gotErr)
}
