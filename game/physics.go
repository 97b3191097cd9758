package game

import (
	"math"
	"math/rand"
)

// spinFactor scales the angular-influence term added to the ball's
// vertical velocity on paddle contact, proportional to the offset from
// the paddle center. It is deliberately unclamped: repeated steep hits
// can grow the vertical speed without bound.
const spinFactor = 0.1

// NoScore is returned by Step when the ball stayed in play.
const NoScore = -1

// NewBall places a ball at the canvas center with both velocity signs
// randomized at the configured speed magnitude.
func NewBall(s Settings, rng *rand.Rand) *Ball {
	return &Ball{
		X:         s.CanvasWidth / 2,
		Y:         s.CanvasHeight / 2,
		VelocityX: s.BallSpeed * randomSign(rng),
		VelocityY: s.BallSpeed * randomSign(rng),
	}
}

// ResetBall re-centers the ball after a score. Direction is
// re-randomized on both axes and does not depend on who scored.
func ResetBall(b *Ball, s Settings, rng *rand.Rand) {
	fresh := NewBall(s, rng)
	*b = *fresh
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return 1
	}
	return -1
}

// Step advances the simulation by one tick: integration, wall bounce,
// paddle collision, and goal detection. It mutates the ball and
// returns the slot that conceded (SlotLeft when the ball left the left
// edge, meaning the right player scored) or NoScore. The caller owns
// score bookkeeping and the ball reset.
//
// Collision is plain AABB against the paddle fronts; a fast ball can
// tunnel through a paddle in one tick.
func Step(b *Ball, left, right *Player, s Settings) int {
	b.X += b.VelocityX
	b.Y += b.VelocityY

	// Top/bottom wall bounce.
	if b.Y <= 0 || b.Y >= s.CanvasHeight-s.BallSize {
		b.VelocityY = -b.VelocityY
	}

	if left != nil && right != nil {
		// Left paddle: force the ball rightward and add spin from the
		// contact offset.
		if b.X <= s.PaddleWidth &&
			b.Y >= left.Position && b.Y <= left.Position+s.PaddleHeight {
			b.VelocityX = math.Abs(b.VelocityX)
			b.VelocityY += (b.Y - (left.Position + s.PaddleHeight/2)) * spinFactor
		}

		// Right paddle: mirror image.
		if b.X >= s.CanvasWidth-s.PaddleWidth-s.BallSize &&
			b.Y >= right.Position && b.Y <= right.Position+s.PaddleHeight {
			b.VelocityX = -math.Abs(b.VelocityX)
			b.VelocityY += (b.Y - (right.Position + s.PaddleHeight/2)) * spinFactor
		}
	}

	if b.X < 0 {
		return SlotLeft
	}
	if b.X > s.CanvasWidth {
		return SlotRight
	}
	return NoScore
}

// MovePaddle shifts a paddle by one paddle-speed increment in the
// given direction and clamps it to the canvas.
func MovePaddle(p *Player, up bool, s Settings) {
	if up {
		p.Position = math.Max(0, p.Position-s.PaddleSpeed)
	} else {
		p.Position = math.Min(s.CanvasHeight-s.PaddleHeight, p.Position+s.PaddleSpeed)
	}
}
