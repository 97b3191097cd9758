package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AnthonyMuncherz/pingpong-game/broadcast"
	"github.com/AnthonyMuncherz/pingpong-game/game"
	"github.com/AnthonyMuncherz/pingpong-game/logger"
	"github.com/AnthonyMuncherz/pingpong-game/monitor"
	"github.com/AnthonyMuncherz/pingpong-game/network"
	"github.com/AnthonyMuncherz/pingpong-game/room"
	"github.com/AnthonyMuncherz/pingpong-game/session"
)

// GameServer is the connection gateway: it upgrades WebSockets,
// translates inbound envelopes into registry/room operations, and
// pushes room snapshots back out. All game state lives in the rooms;
// the gateway itself is stateless per message.
type GameServer struct {
	addr           string
	settings       game.Settings
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	monitor        *monitor.Monitor
	shutdownChan   chan struct{}
}

// NewGameServer wires the gateway. mon may be nil.
func NewGameServer(addr string, settings game.Settings, rm *room.Manager, sm *session.Manager, b broadcast.Broadcaster, mon *monitor.Monitor) *GameServer {
	return &GameServer{
		addr:           addr,
		settings:       settings,
		roomManager:    rm,
		sessionManager: sm,
		broadcaster:    b,
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *GameServer) Start() error {
	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn))
}

func (s *GameServer) handleConnection(conn network.Connection) {
	sess := session.NewSession(uuid.New().String(), conn)
	s.sessionManager.Add(sess)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.ID)

	defer func() {
		logger.Log.Infof("Connection closed, session ID: %s", sess.ID)
		s.handleDisconnect(sess)
		s.sessionManager.Remove(sess.ID)
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		conn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := conn.ReadEnvelope()
			if err != nil {
				return
			}
			s.handleEnvelope(sess, env)
		}
	}
}

// handleEnvelope dispatches one inbound message. Unknown events are
// logged and dropped; nothing a client sends is fatal to the process.
func (s *GameServer) handleEnvelope(sess *session.Session, env *network.Envelope) {
	if s.monitor != nil {
		s.monitor.IncMessagesReceived()
	}
	sess.Touch()

	switch env.Event {
	case network.EventJoinRoom:
		s.handleJoin(sess, env.Data)
	case network.EventPlayerReady:
		s.handleReady(sess, env.Data)
	case network.EventPaddleMove:
		s.handlePaddleMove(sess, env.Data)
	default:
		logger.Log.Infof("Unknown event %q from session %s", env.Event, sess.ID)
	}
}

// handleJoin seats the connection in the requested room, or creates a
// fresh one when no code is given or the code is unknown. A full room
// is the one failure surfaced to the sender.
func (s *GameServer) handleJoin(sess *session.Session, data json.RawMessage) {
	var req network.JoinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	if sess.RoomCode != "" {
		// Already seated; one room per connection.
		return
	}

	var r *room.Room
	if req.RoomCode != "" {
		if existing, ok := s.roomManager.GetRoom(req.RoomCode); ok {
			r = existing
		}
	}
	if r == nil {
		created, err := s.roomManager.CreateRoom()
		if err != nil {
			logger.Log.Errorf("Failed to create room: %v", err)
			sess.Send(network.EventRoomError, network.ErrorPayload{Message: "could not create room"})
			return
		}
		r = created
		logger.Log.Infof("New room created: %s", r.Code)
	}

	slot, err := r.AddPlayer(sess.ID, req.PlayerName)
	if err != nil {
		sess.Send(network.EventRoomError, network.ErrorPayload{Message: "room is full"})
		return
	}

	sess.RoomCode = r.Code
	sess.Name = req.PlayerName

	sess.Send(network.EventRoomJoined, network.JoinedPayload{
		RoomCode:     r.Code,
		PlayerID:     slot,
		GameSettings: s.settings,
	})
	s.broadcaster.BroadcastToRoom(r.Code, network.EventRoomUpdate, r.Snapshot())
}

func (s *GameServer) handleReady(sess *session.Session, data json.RawMessage) {
	var req network.ReadyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	r, ok := s.roomManager.FindByConnection(sess.ID)
	if !ok {
		return
	}

	applied, started := r.SetReady(sess.ID, req.Ready, time.Now())
	if !applied {
		return
	}
	if started {
		logger.Log.Infof("Countdown started in room: %s", r.Code)
	}
	s.broadcaster.BroadcastToRoom(r.Code, network.EventRoomUpdate, r.Snapshot())
}

func (s *GameServer) handlePaddleMove(sess *session.Session, data json.RawMessage) {
	var req network.PaddleMoveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	r, ok := s.roomManager.FindByConnection(sess.ID)
	if !ok {
		return
	}

	if r.MovePaddle(sess.ID, req.Direction == "up") {
		s.broadcaster.BroadcastToRoom(r.Code, network.EventGameUpdate, r.Snapshot())
	}
}

// handleDisconnect removes the player from their room. The last
// player out deletes the room; otherwise the survivors learn about it
// and the room falls back to waiting.
func (s *GameServer) handleDisconnect(sess *session.Session) {
	r, ok := s.roomManager.FindByConnection(sess.ID)
	if !ok {
		return
	}

	removed, remaining := r.RemovePlayer(sess.ID)
	if !removed {
		return
	}
	sess.RoomCode = ""

	if remaining == 0 {
		s.roomManager.RemoveIfEmpty(r.Code)
		logger.Log.Infof("Room deleted: %s", r.Code)
		return
	}
	s.broadcaster.BroadcastToRoom(r.Code, network.EventPlayerLeft, r.Snapshot())
}
