package room

import (
	"encoding/json"
	"testing"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseWaiting, "waiting"},
		{PhaseReadyCheck, "ready-check"},
		{PhaseCountdown, "countdown"},
		{PhasePlaying, "playing"},
		{PhaseFinished, "finished"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPhase_MarshalsAsWireString(t *testing.T) {
	data, err := json.Marshal(PhaseReadyCheck)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"ready-check"` {
		t.Errorf("Expected %q on the wire, got %s", "ready-check", data)
	}
}
