package room

// Phase is the room's state-machine position. Using a closed enum
// keeps transition logic exhaustive and makes illegal phases
// unrepresentable.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseReadyCheck
	PhaseCountdown
	PhasePlaying
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseWaiting:    "waiting",
	PhaseReadyCheck: "ready-check",
	PhaseCountdown:  "countdown",
	PhasePlaying:    "playing",
	PhaseFinished:   "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the phase under its wire name, e.g.
// "ready-check".
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}
