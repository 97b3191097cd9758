package broadcast

import (
	"errors"

	"github.com/AnthonyMuncherz/pingpong-game/room"
	"github.com/AnthonyMuncherz/pingpong-game/session"
)

var ErrRoomNotFound = errors.New("room not found")

// Broadcaster fans one event out to every connection in a room.
// Delivery is fire-and-forget: an unreachable client is the
// transport's problem, not the simulation's.
type Broadcaster interface {
	BroadcastToRoom(roomCode, event string, payload interface{}) error
}

// RoomBroadcaster resolves a room's seated players to their live
// sessions and sends to each.
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomCode, event string, payload interface{}) error {
	r, exists := b.roomManager.GetRoom(roomCode)
	if !exists {
		return ErrRoomNotFound
	}

	for _, connID := range r.PlayerIDs() {
		s, ok := b.sessionManager.Get(connID)
		if !ok {
			continue
		}
		if err := s.Send(event, payload); err != nil {
			// The read loop notices the dead connection and runs the
			// disconnect path; nothing to retry here.
			continue
		}
	}
	return nil
}
