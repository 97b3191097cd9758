package rpc

import (
	"net"
	"net/rpc"

	"github.com/AnthonyMuncherz/pingpong-game/logger"
	"github.com/AnthonyMuncherz/pingpong-game/models"
	"github.com/AnthonyMuncherz/pingpong-game/room"
	"github.com/AnthonyMuncherz/pingpong-game/services"
	"github.com/AnthonyMuncherz/pingpong-game/session"
)

// Server manages the admin RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational read-only views over net/rpc.
type AdminService struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
	matches        *services.MatchService
}

func NewAdminService(rm *room.Manager, sm *session.Manager, matches *services.MatchService) *AdminService {
	return &AdminService{
		roomManager:    rm,
		sessionManager: sm,
		matches:        matches,
	}
}

type StatusArgs struct{}

type StatusReply struct {
	Rooms    int
	Sessions int
}

func (a *AdminService) Status(args *StatusArgs, reply *StatusReply) error {
	reply.Rooms = a.roomManager.Count()
	reply.Sessions = a.sessionManager.Count()
	return nil
}

type ListRoomsArgs struct{}

type RoomInfo struct {
	Code    string
	Phase   string
	Players int
}

type ListRoomsReply struct {
	Rooms []RoomInfo
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	for _, r := range a.roomManager.Rooms() {
		reply.Rooms = append(reply.Rooms, RoomInfo{
			Code:    r.Code,
			Phase:   r.Phase().String(),
			Players: r.PlayerCount(),
		})
	}
	return nil
}

type LeaderboardArgs struct {
	Limit int
}

type LeaderboardReply struct {
	Winners []models.WinnerRow
}

func (a *AdminService) Leaderboard(args *LeaderboardArgs, reply *LeaderboardReply) error {
	limit := args.Limit
	if limit <= 0 {
		limit = 10
	}
	winners, err := a.matches.TopWinners(limit)
	if err != nil {
		return err
	}
	reply.Winners = winners
	return nil
}
