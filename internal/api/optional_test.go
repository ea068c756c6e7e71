package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateTaskRequestDistinguishesAbsentAndNull(t *testing.T) {
	var absent UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "x"}`), &absent))
	require.False(t, absent.DueDate.Set)
	require.False(t, absent.TeamID.Set)

	var cleared UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date": null, "team_id": null}`), &cleared))
	require.True(t, cleared.DueDate.Set)
	require.False(t, cleared.DueDate.Valid)
	require.True(t, cleared.TeamID.Set)
	require.False(t, cleared.TeamID.Valid)

	var set UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date": "2026-03-10", "team_id": 7}`), &set))
	require.True(t, set.DueDate.Valid)
	require.Equal(t, "2026-03-10", set.DueDate.Value)
	require.True(t, set.TeamID.Valid)
	require.Equal(t, int64(7), set.TeamID.Value)
}

func TestOptionalInt64RejectsGarbage(t *testing.T) {
	var req UpdateTaskRequest
	require.Error(t, json.Unmarshal([]byte(`{"team_id": "seven"}`), &req))
}
