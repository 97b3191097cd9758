package network

import "encoding/json"

// Wire event names. One JSON envelope per WebSocket text message.
const (
	// Client -> server.
	EventJoinRoom    = "join-room"
	EventPlayerReady = "player-ready"
	EventPaddleMove  = "paddle-move"

	// Server -> client.
	EventRoomJoined      = "room-joined"
	EventRoomError       = "room-error"
	EventRoomUpdate      = "room-update"
	EventCountdownUpdate = "countdown-update"
	EventGameStart       = "game-start"
	EventGameUpdate      = "game-update"
	EventPlayerLeft      = "player-left"
)

// Envelope wraps every message on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinRequest asks to join the room with the given code, or to create
// a fresh room when the code is empty or unknown.
type JoinRequest struct {
	RoomCode   string `json:"roomCode,omitempty"`
	PlayerName string `json:"playerName"`
}

type ReadyRequest struct {
	Ready bool `json:"ready"`
}

type PaddleMoveRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

// JoinedPayload confirms a join to the joining connection only.
type JoinedPayload struct {
	RoomCode     string      `json:"roomCode"`
	PlayerID     int         `json:"playerId"` // slot index: 0 left, 1 right
	GameSettings interface{} `json:"gameSettings"`
}

type CountdownPayload struct {
	Countdown int `json:"countdown"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
