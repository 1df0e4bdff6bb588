package task

import "testing"

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status    Status
		known     bool
		done      bool
		startable bool
	}{
		{StatusPending, true, false, true},
		{StatusInProgress, true, false, false},
		{StatusDone, true, true, false},
		{StatusDeferred, true, false, false},
		{Status("blocked-on-review"), false, false, false},
		{Status("completed"), false, false, false}, // only the built-in spelling counts
	}

	for _, tt := range tests {
		if got := tt.status.Known(); got != tt.known {
			t.Errorf("%q.Known() = %v, want %v", tt.status, got, tt.known)
		}
		if got := tt.status.Done(); got != tt.done {
			t.Errorf("%q.Done() = %v, want %v", tt.status, got, tt.done)
		}
		if got := tt.status.Startable(); got != tt.startable {
			t.Errorf("%q.Startable() = %v, want %v", tt.status, got, tt.startable)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("  Done "); got != StatusDone {
		t.Errorf("NormalizeStatus = %q, want %q", got, StatusDone)
	}
	if got := NormalizeStatus("IN-PROGRESS"); got != StatusInProgress {
		t.Errorf("NormalizeStatus = %q, want %q", got, StatusInProgress)
	}
	if got := NormalizeStatus("   "); got != Status("") {
		t.Errorf("NormalizeStatus of blank = %q, want empty", got)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityMedium.Rank() {
		t.Error("high should outrank medium")
	}
	if PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Error("medium should outrank low")
	}
	if Priority("urgent").Rank() >= PriorityLow.Rank() {
		t.Error("unrecognized priority should rank below low")
	}
	if Priority("urgent").IsValid() {
		t.Error("unrecognized priority should not be valid")
	}
}
