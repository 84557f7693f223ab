package main

import (
	"testing"
	"time"

	"freader/internal/library"

	"github.com/stretchr/testify/assert"
)

func TestWithProgress(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var saved, reading, finished library.Book
	withProgress(&saved, 0, now)
	withProgress(&reading, 1, now)
	withProgress(&finished, 2, now)

	assert.Nil(t, saved.StartedReading)
	assert.True(t, reading.IsReading())
	assert.True(t, finished.IsFinished())
	assert.True(t, finished.FinishedReading.After(*finished.StartedReading))
	assert.GreaterOrEqual(t, finished.Rating, 1.0)
	assert.LessOrEqual(t, finished.Rating, library.MaxRating)
}

func TestRootCmd_RejectsBadCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--count", "99"})
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}
