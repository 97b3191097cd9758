package room

import (
	"math/rand"
	"testing"
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/game"
)

func newTestRoom() *Room {
	return NewRoom("TEST01", game.DefaultSettings(), rand.New(rand.NewSource(7)))
}

// seatTwo fills both slots and returns their connection ids.
func seatTwo(t *testing.T, r *Room) (string, string) {
	t.Helper()
	if _, err := r.AddPlayer("conn-a", "alice"); err != nil {
		t.Fatalf("Failed to seat first player: %v", err)
	}
	if _, err := r.AddPlayer("conn-b", "bob"); err != nil {
		t.Fatalf("Failed to seat second player: %v", err)
	}
	return "conn-a", "conn-b"
}

// startPlaying drives the room waiting -> ready-check -> countdown ->
// playing with a synthetic clock.
func startPlaying(t *testing.T, r *Room) (string, string) {
	t.Helper()
	a, b := seatTwo(t, r)

	now := time.Now()
	r.SetReady(a, true, now)
	if _, started := r.SetReady(b, true, now); !started {
		t.Fatal("Countdown should start once both players are ready")
	}

	_, _, started := r.AdvanceCountdown(now.Add(6 * time.Second))
	if !started {
		t.Fatal("Countdown should have elapsed")
	}
	if r.Phase() != PhasePlaying {
		t.Fatalf("Expected playing phase, got %v", r.Phase())
	}
	return a, b
}

func TestRoom_JoinTransitions(t *testing.T) {
	r := newTestRoom()

	if r.Phase() != PhaseWaiting {
		t.Fatalf("New room should be waiting, got %v", r.Phase())
	}

	slot, err := r.AddPlayer("conn-a", "alice")
	if err != nil {
		t.Fatalf("First join failed: %v", err)
	}
	if slot != game.SlotLeft {
		t.Errorf("First joiner should take slot 0, got %d", slot)
	}
	if r.Phase() != PhaseWaiting {
		t.Errorf("One player keeps the room waiting, got %v", r.Phase())
	}

	slot, err = r.AddPlayer("conn-b", "bob")
	if err != nil {
		t.Fatalf("Second join failed: %v", err)
	}
	if slot != game.SlotRight {
		t.Errorf("Second joiner should take slot 1, got %d", slot)
	}
	if r.Phase() != PhaseReadyCheck {
		t.Errorf("Two players should trigger ready-check, got %v", r.Phase())
	}
}

func TestRoom_AddPlayer_Full(t *testing.T) {
	r := newTestRoom()
	seatTwo(t, r)

	if _, err := r.AddPlayer("conn-c", "carol"); err != ErrRoomFull {
		t.Fatalf("Expected ErrRoomFull, got %v", err)
	}
	if r.PlayerCount() != 2 {
		t.Errorf("Failed join must not mutate the room, count = %d", r.PlayerCount())
	}
}

func TestRoom_RemovePlayer_ResetsToWaiting(t *testing.T) {
	r := newTestRoom()
	a, b := startPlaying(t, r)

	removed, remaining := r.RemovePlayer(a)
	if !removed || remaining != 1 {
		t.Fatalf("Expected removal with 1 remaining, got removed=%v remaining=%d", removed, remaining)
	}
	if r.Phase() != PhaseWaiting {
		t.Errorf("Expected phase reset to waiting, got %v", r.Phase())
	}

	snap := r.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].ID != b {
		t.Errorf("Expected only %s to remain", b)
	}
	if snap.Players[0].Score != 0 {
		t.Errorf("Survivor score must be untouched, got %d", snap.Players[0].Score)
	}
}

func TestRoom_RemoveUnknownPlayer(t *testing.T) {
	r := newTestRoom()
	seatTwo(t, r)

	removed, remaining := r.RemovePlayer("conn-ghost")
	if removed {
		t.Error("Unknown connection must not remove anyone")
	}
	if remaining != 2 {
		t.Errorf("Expected 2 players, got %d", remaining)
	}
	if r.Phase() != PhaseReadyCheck {
		t.Errorf("Phase must be untouched, got %v", r.Phase())
	}
}

func TestRoom_SetReady_Gating(t *testing.T) {
	r := newTestRoom()

	// Before two players, ready is a silent no-op.
	r.AddPlayer("conn-a", "alice")
	if applied, _ := r.SetReady("conn-a", true, time.Now()); applied {
		t.Error("Ready outside ready-check must be ignored")
	}

	r.AddPlayer("conn-b", "bob")
	now := time.Now()

	// One ready is not enough.
	if _, started := r.SetReady("conn-a", true, now); started {
		t.Error("Countdown must wait for both players")
	}

	// Backing out before the second ready prevents the countdown.
	r.SetReady("conn-a", false, now)
	if _, started := r.SetReady("conn-b", true, now); started {
		t.Error("Countdown must not start after a player un-readies")
	}

	// Both ready starts the countdown and clears the flags.
	if _, started := r.SetReady("conn-a", true, now); !started {
		t.Fatal("Both ready should start the countdown")
	}
	if r.Phase() != PhaseCountdown {
		t.Fatalf("Expected countdown phase, got %v", r.Phase())
	}

	snap := r.Snapshot()
	if snap.Countdown != game.DefaultSettings().CountdownSeconds {
		t.Errorf("Expected countdown %d, got %d", game.DefaultSettings().CountdownSeconds, snap.Countdown)
	}
	for _, p := range snap.Players {
		if p.Ready {
			t.Errorf("Ready flags must clear when the countdown starts (player %s)", p.Name)
		}
	}
}

func TestRoom_AdvanceCountdown(t *testing.T) {
	r := newTestRoom()
	a, b := seatTwo(t, r)

	start := time.Now()
	r.SetReady(a, true, start)
	r.SetReady(b, true, start)

	// Within the first second the displayed value is unchanged.
	changed, remaining, started := r.AdvanceCountdown(start.Add(200 * time.Millisecond))
	if changed || started {
		t.Errorf("Expected no change at 0.2s, got changed=%v started=%v", changed, started)
	}

	changed, remaining, started = r.AdvanceCountdown(start.Add(1500 * time.Millisecond))
	if !changed || remaining != 4 || started {
		t.Errorf("Expected countdown 4 at 1.5s, got changed=%v remaining=%d started=%v",
			changed, remaining, started)
	}

	// Repeating the same instant must be idempotent.
	changed, _, _ = r.AdvanceCountdown(start.Add(1500 * time.Millisecond))
	if changed {
		t.Error("Same tick value must not re-report a change")
	}

	_, remaining, started = r.AdvanceCountdown(start.Add(5 * time.Second))
	if !started || remaining > 0 {
		t.Errorf("Expected game start at 5s, got remaining=%d started=%v", remaining, started)
	}
	if r.Phase() != PhasePlaying {
		t.Errorf("Expected playing phase, got %v", r.Phase())
	}

	snap := r.Snapshot()
	s := game.DefaultSettings()
	if snap.Ball.X != s.CanvasWidth/2 || snap.Ball.Y != s.CanvasHeight/2 {
		t.Errorf("Ball must be re-centered for the new game, got (%v, %v)", snap.Ball.X, snap.Ball.Y)
	}
}

func TestRoom_MovePaddle_PhaseGate(t *testing.T) {
	r := newTestRoom()
	a, _ := seatTwo(t, r)

	if r.MovePaddle(a, true) {
		t.Error("Paddle move outside playing must be ignored")
	}

	r2 := newTestRoom()
	a2, _ := startPlaying(t, r2)
	if !r2.MovePaddle(a2, true) {
		t.Error("Paddle move during playing must apply")
	}

	// Hammer the paddle against both bounds; position stays clamped.
	s := game.DefaultSettings()
	maxPos := s.CanvasHeight - s.PaddleHeight
	for i := 0; i < 100; i++ {
		r2.MovePaddle(a2, true)
	}
	if pos := r2.Snapshot().Players[0].Position; pos != 0 {
		t.Errorf("Expected paddle clamped at 0, got %v", pos)
	}
	for i := 0; i < 100; i++ {
		r2.MovePaddle(a2, false)
	}
	if pos := r2.Snapshot().Players[0].Position; pos != maxPos {
		t.Errorf("Expected paddle clamped at %v, got %v", maxPos, pos)
	}
}

func TestRoom_StepPhysics_RequiresPlaying(t *testing.T) {
	r := newTestRoom()
	seatTwo(t, r)

	if stepped, _ := r.StepPhysics(); stepped {
		t.Error("Physics must not run outside the playing phase")
	}
}

// Pinning both paddles against the top edge guarantees misses around
// the canvas center, so the game runs to completion.
func TestRoom_PlayToFinish(t *testing.T) {
	r := newTestRoom()
	a, b := startPlaying(t, r)

	s := game.DefaultSettings()
	for i := 0; i < 100; i++ {
		r.MovePaddle(a, true)
		r.MovePaddle(b, true)
	}

	var sawScore bool
	finished := false
	for i := 0; i < 100000 && !finished; i++ {
		// Keep the paddles pinned; spin can still steer the ball high.
		r.MovePaddle(a, true)
		r.MovePaddle(b, true)

		stepped, done := r.StepPhysics()
		if !stepped {
			t.Fatal("Physics step refused to run while playing")
		}
		finished = done

		snap := r.Snapshot()
		total := snap.Players[0].Score + snap.Players[1].Score
		if total > 0 {
			sawScore = true
		}
		if snap.Ball.Y < -1000 || snap.Ball.Y > s.CanvasHeight+1000 {
			t.Fatalf("Ball escaped vertically at tick %d: %v", i, snap.Ball.Y)
		}
	}

	if !sawScore {
		t.Fatal("Expected at least one score")
	}
	if !finished {
		t.Fatal("Game never finished")
	}
	if r.Phase() != PhaseFinished {
		t.Fatalf("Expected finished phase, got %v", r.Phase())
	}

	snap := r.Snapshot()
	winner := snap.Players[0].Score
	if snap.Players[1].Score > winner {
		winner = snap.Players[1].Score
	}
	if winner != s.WinningScore {
		t.Errorf("Winner should hold exactly the winning score, got %d", winner)
	}

	// Finished is terminal: further steps and moves are ignored.
	if stepped, _ := r.StepPhysics(); stepped {
		t.Error("Physics must stop once finished")
	}
	if r.MovePaddle(a, true) {
		t.Error("Paddle moves must stop once finished")
	}
}
