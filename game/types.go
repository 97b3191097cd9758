package game

// MaxNameLength caps user-supplied display names.
const MaxNameLength = 20

// Slot indices: slot 0 defends the left edge, slot 1 the right edge.
// The order is join order and determines scoring direction.
const (
	SlotLeft  = 0
	SlotRight = 1
)

// Player is one seat in a room. It is owned by its room and must only
// be touched while the room lock is held.
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
	Score    int     `json:"score"`
	Ready    bool    `json:"ready"`
}

// Ball carries position and velocity in canvas coordinates. X grows
// rightward, Y grows downward.
type Ball struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
}

// NewPlayer seats a player at the vertical center of the canvas.
func NewPlayer(id, name string, s Settings) *Player {
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return &Player{
		ID:       id,
		Name:     name,
		Position: s.CanvasHeight/2 - s.PaddleHeight/2,
	}
}
