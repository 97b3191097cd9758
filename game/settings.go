package game

// Settings is the immutable game configuration shared by every room.
// It is serialized to clients verbatim on join so they can size their
// canvas to match the authoritative simulation.
type Settings struct {
	CanvasWidth      float64 `json:"canvasWidth"`
	CanvasHeight     float64 `json:"canvasHeight"`
	PaddleWidth      float64 `json:"paddleWidth"`
	PaddleHeight     float64 `json:"paddleHeight"`
	BallSize         float64 `json:"ballSize"`
	BallSpeed        float64 `json:"ballSpeed"`
	PaddleSpeed      float64 `json:"paddleSpeed"`
	WinningScore     int     `json:"winningScore"`
	CountdownSeconds int     `json:"countdownSeconds"`
	TickRate         int     `json:"tickRate"`
}

// DefaultSettings returns the standard configuration: an 800x400
// canvas, 10x80 paddles, and a first-to-five game.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:      800,
		CanvasHeight:     400,
		PaddleWidth:      10,
		PaddleHeight:     80,
		BallSize:         10,
		BallSpeed:        5,
		PaddleSpeed:      8,
		WinningScore:     5,
		CountdownSeconds: 5,
		TickRate:         60,
	}
}
