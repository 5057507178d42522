package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobPending, JobRunning, true},
		{JobPending, JobFailed, true},
		{JobPending, JobCompleted, false},
		{JobRunning, JobCompleted, true},
		{JobRunning, JobFailed, true},
		{JobRunning, JobPending, false},
		{JobFailed, JobPending, true},
		{JobFailed, JobRunning, false},
		{JobCompleted, JobPending, false},
		{JobCompleted, JobFailed, false},
		{JobCompleted, JobRunning, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransition(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.True(t, JobCompleted.Terminal())
	assert.False(t, JobPending.Terminal())
	assert.False(t, JobRunning.Terminal())
	assert.False(t, JobFailed.Terminal())
}

func TestMarkStartedKeepsOriginalTimestamp(t *testing.T) {
	job := &ProductionJob{Status: JobPending}

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	job.MarkStarted(first)
	assert.Equal(t, JobRunning, job.Status)
	assert.Equal(t, first, *job.StartedAt)

	// Retry after a failure keeps the first started_at.
	later := first.Add(2 * time.Hour)
	job.MarkStarted(later)
	assert.Equal(t, first, *job.StartedAt)
}

func TestMarkFinished(t *testing.T) {
	job := &ProductionJob{Status: JobRunning}

	done := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	job.MarkFinished(JobCompleted, done)

	assert.Equal(t, JobCompleted, job.Status)
	assert.Equal(t, done, *job.FinishedAt)
}
