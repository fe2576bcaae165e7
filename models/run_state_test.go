package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunState_Progress(t *testing.T) {
	tests := []struct {
		name  string
		state RunState
		want  float64
	}{
		{name: "zero total", state: RunState{}, want: 0},
		{name: "halfway", state: RunState{Counters: Counters{Copied: 2, Skipped: 2, Failed: 1, Total: 10}}, want: 0.5},
		{name: "complete", state: RunState{Counters: Counters{Copied: 10, Total: 10}}, want: 1},
		{name: "clamped above one", state: RunState{Counters: Counters{Copied: 12, Total: 10}}, want: 1},
		{name: "delete failures do not count", state: RunState{Counters: Counters{Copied: 5, DeleteFailed: 3, Total: 10}}, want: 0.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, test.state.Progress(), 1e-9)
		})
	}
}

func TestRunState_JSONShape(t *testing.T) {
	state := RunState{
		RunID:     "run-1",
		Status:    StatusRunning,
		Counters:  Counters{Copied: 1, Total: 4},
		Guard:     GuardOutcome{Allowed: false, Reason: "no source files found"},
		StartedAt: time.Now(),
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// counters flatten into the top-level record
	assert.Equal(t, float64(1), raw["copied"])
	assert.Equal(t, float64(4), raw["total"])
	assert.Equal(t, "running", raw["status"])

	// an unfinished run has no finished_at key
	_, present := raw["finished_at"]
	assert.False(t, present)

	guard, ok := raw["guard"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, guard["allowed"])
}
