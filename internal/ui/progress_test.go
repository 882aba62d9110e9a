package ui

import (
	"math"
	"testing"

	"estlint/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.js"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageDecode, Status: driver.StatusWorking})
	if got := m.rows[0].status; got != "decoding" {
		t.Errorf("status = %q, want %q", got, "decoding")
	}

	// Файл, которого не было в начальном списке, добавляется на лету.
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageLoad, Status: driver.StatusQueued})
	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.rows))
	}
	if m.rows[1].path != "b.js" || m.rows[1].status != "queued" {
		t.Errorf("row[1] = %+v, want b.js/queued", m.rows[1])
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusCached})
	if got := m.rows[0].status; got != "cached" {
		t.Errorf("status = %q, want %q", got, "cached")
	}
}

func TestCompletionWeights(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.js", "b.js"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusDone})
	if got := m.completion(); got != 0.5 {
		t.Errorf("completion = %v, want 0.5", got)
	}

	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageLint, Status: driver.StatusWorking})
	if got := m.completion(); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("completion = %v, want 0.9", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageDecode, driver.StatusWorking, "decoding"},
		{driver.StageLint, driver.StatusWorking, "linting"},
		{driver.StageLint, driver.StatusDone, "done"},
		{driver.StageLint, driver.StatusError, "error"},
		{driver.StageLint, driver.StatusCached, "cached"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%v, %v) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.js", 20); got != "short.js" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	if got := truncate("a/very/long/path/name.js", 10); len(got) > 10 {
		t.Errorf("truncate() = %q, longer than 10 columns", got)
	}
}
