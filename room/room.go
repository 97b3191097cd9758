package room

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/game"
)

// MaxPlayers is fixed: one paddle per side.
const MaxPlayers = 2

var (
	ErrRoomFull = errors.New("room is full")
)

// Room is one isolated game session. All fields behind the mutex; the
// gateway handlers and the tick scheduler both mutate a room, so every
// operation takes the lock for its full duration.
type Room struct {
	Code      string
	CreatedAt time.Time

	mutex          sync.Mutex
	settings       game.Settings
	rng            *rand.Rand
	players        []*game.Player // slot == index; 0 left, 1 right
	ball           *game.Ball
	phase          Phase
	countdown      int
	countdownStart time.Time
	lastActive     time.Time
}

// Snapshot is the full serializable room state broadcast to clients.
type Snapshot struct {
	RoomCode  string        `json:"roomCode"`
	Players   []game.Player `json:"players"`
	Ball      game.Ball     `json:"ball"`
	GameState Phase         `json:"gameState"`
	Countdown int           `json:"countdown"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewRoom creates an empty waiting room with a freshly randomized
// ball. The rng is owned by the room and only used under its lock.
func NewRoom(code string, settings game.Settings, rng *rand.Rand) *Room {
	now := time.Now()
	return &Room{
		Code:       code,
		CreatedAt:  now,
		settings:   settings,
		rng:        rng,
		ball:       game.NewBall(settings, rng),
		phase:      PhaseWaiting,
		lastActive: now,
	}
}

// AddPlayer seats a connection in the next free slot and returns the
// slot index. Reaching two players moves the room to ready-check.
func (r *Room) AddPlayer(connID, name string) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.players) >= MaxPlayers {
		return 0, ErrRoomFull
	}

	slot := len(r.players)
	r.players = append(r.players, game.NewPlayer(connID, name, r.settings))

	if len(r.players) == MaxPlayers {
		r.phase = PhaseReadyCheck
	}
	r.lastActive = time.Now()
	return slot, nil
}

// RemovePlayer drops the player owning connID. When one player
// remains the phase resets to waiting; scores and ball are left as-is
// so the survivor keeps their progress on the scoreboard. Returns
// whether a player was removed and how many remain.
func (r *Room) RemovePlayer(connID string) (bool, int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, p := range r.players {
		if p.ID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			if len(r.players) > 0 {
				r.phase = PhaseWaiting
			}
			r.lastActive = time.Now()
			return true, len(r.players)
		}
	}
	return false, len(r.players)
}

// SetReady records a ready flag during ready-check and reports whether
// the countdown started. Outside ready-check it is a silent no-op.
// Both ready flags are cleared when the countdown starts so a rematch
// requires re-readying.
func (r *Room) SetReady(connID string, ready bool, now time.Time) (applied, countdownStarted bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase != PhaseReadyCheck {
		return false, false
	}

	player := r.findPlayer(connID)
	if player == nil {
		return false, false
	}
	player.Ready = ready
	r.lastActive = now

	if len(r.players) == MaxPlayers {
		allReady := true
		for _, p := range r.players {
			if !p.Ready {
				allReady = false
				break
			}
		}
		if allReady {
			r.phase = PhaseCountdown
			r.countdown = r.settings.CountdownSeconds
			r.countdownStart = now
			for _, p := range r.players {
				p.Ready = false
			}
			return true, true
		}
	}
	return true, false
}

// MovePaddle applies one paddle step for connID. Only valid while
// playing; anything else is silently ignored.
func (r *Room) MovePaddle(connID string, up bool) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase != PhasePlaying {
		return false
	}
	player := r.findPlayer(connID)
	if player == nil {
		return false
	}
	game.MovePaddle(player, up, r.settings)
	r.lastActive = time.Now()
	return true
}

// AdvanceCountdown recomputes the remaining countdown from the start
// timestamp. It reports whether the displayed value changed and
// whether the countdown expired, in which case the room is now playing
// with a freshly randomized ball.
func (r *Room) AdvanceCountdown(now time.Time) (changed bool, remaining int, started bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase != PhaseCountdown {
		return false, 0, false
	}

	elapsed := now.Sub(r.countdownStart).Seconds()
	remaining = int(math.Ceil(float64(r.settings.CountdownSeconds) - elapsed))

	if remaining != r.countdown {
		r.countdown = remaining
		changed = true
	}

	if remaining <= 0 {
		r.phase = PhasePlaying
		r.countdown = 0
		game.ResetBall(r.ball, r.settings, r.rng)
		started = true
	}
	r.lastActive = now
	return changed, remaining, started
}

// StepPhysics runs one simulation tick. Requires playing phase with
// both players seated; otherwise a no-op. Returns whether the step ran
// and whether it ended the game.
func (r *Room) StepPhysics() (stepped, finished bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase != PhasePlaying || len(r.players) != MaxPlayers {
		return false, false
	}

	conceded := game.Step(r.ball, r.players[game.SlotLeft], r.players[game.SlotRight], r.settings)
	if conceded != game.NoScore {
		scorer := MaxPlayers - 1 - conceded
		r.players[scorer].Score++
		game.ResetBall(r.ball, r.settings, r.rng)
	}

	for _, p := range r.players {
		if p.Score >= r.settings.WinningScore {
			r.phase = PhaseFinished
			finished = true
		}
	}
	r.lastActive = time.Now()
	return true, finished
}

// Phase returns the current state-machine position.
func (r *Room) Phase() Phase {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.phase
}

// HasPlayer reports whether connID owns a seat in this room.
func (r *Room) HasPlayer(connID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.findPlayer(connID) != nil
}

// PlayerIDs returns the connection ids of the seated players in slot
// order, for broadcasting.
func (r *Room) PlayerIDs() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (r *Room) PlayerCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.players)
}

// Snapshot copies the full room state for serialization. Players are
// copied by value so the caller never aliases live state.
func (r *Room) Snapshot() Snapshot {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	players := make([]game.Player, len(r.players))
	for i, p := range r.players {
		players[i] = *p
	}
	return Snapshot{
		RoomCode:  r.Code,
		Players:   players,
		Ball:      *r.ball,
		GameState: r.phase,
		Countdown: r.countdown,
		CreatedAt: r.CreatedAt,
	}
}

// expired reports whether the sweeper should reclaim this room.
func (r *Room) expired(now time.Time, linger, maxAge time.Duration) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase == PhaseFinished && now.Sub(r.lastActive) > linger {
		return true
	}
	return now.Sub(r.CreatedAt) > maxAge
}

// findPlayer must be called with the lock held.
func (r *Room) findPlayer(connID string) *game.Player {
	for _, p := range r.players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}
