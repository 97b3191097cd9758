package main

import (
	"net/rpc"
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/broadcast"
	"github.com/AnthonyMuncherz/pingpong-game/config"
	"github.com/AnthonyMuncherz/pingpong-game/game"
	"github.com/AnthonyMuncherz/pingpong-game/logger"
	"github.com/AnthonyMuncherz/pingpong-game/monitor"
	"github.com/AnthonyMuncherz/pingpong-game/persistence"
	adminrpc "github.com/AnthonyMuncherz/pingpong-game/rpc"
	"github.com/AnthonyMuncherz/pingpong-game/room"
	"github.com/AnthonyMuncherz/pingpong-game/scheduler"
	"github.com/AnthonyMuncherz/pingpong-game/server"
	"github.com/AnthonyMuncherz/pingpong-game/services"
	"github.com/AnthonyMuncherz/pingpong-game/session"
	"github.com/AnthonyMuncherz/pingpong-game/timer"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Init(cfg.Debug)
	defer logger.Sync()

	settings := game.Settings{
		CanvasWidth:      cfg.Game.CanvasWidth,
		CanvasHeight:     cfg.Game.CanvasHeight,
		PaddleWidth:      cfg.Game.PaddleWidth,
		PaddleHeight:     cfg.Game.PaddleHeight,
		BallSize:         cfg.Game.BallSize,
		BallSpeed:        cfg.Game.BallSpeed,
		PaddleSpeed:      cfg.Game.PaddleSpeed,
		WinningScore:     cfg.Game.WinningScore,
		CountdownSeconds: cfg.Game.CountdownSeconds,
		TickRate:         cfg.Game.TickRate,
	}

	db := openDatabase(cfg)
	if db != nil {
		defer db.Close()
	}

	roomManager := room.NewManager(settings)
	sessionManager := session.NewManager()
	broadcaster := broadcast.NewRoomBroadcaster(roomManager, sessionManager)
	matches := services.NewMatchService(db)

	mon := monitor.NewMonitor("pingpong")
	mon.StartServer(cfg.Server.MetricsAddress)

	rpcServer, err := adminrpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	rpc.Register(adminrpc.NewAdminService(roomManager, sessionManager, matches))
	go rpcServer.Start()
	defer rpcServer.Stop()

	// Reclaim abandoned rooms in the background.
	timers := timer.NewManager()
	linger := time.Duration(cfg.Game.RoomLingerMinutes) * time.Minute
	maxAge := time.Duration(cfg.Game.RoomMaxAgeMinutes) * time.Minute
	timers.AddTimer(time.Minute, time.Minute, func() {
		if n := roomManager.SweepStale(linger, maxAge); n > 0 {
			logger.Log.Infof("Swept %d stale rooms", n)
		}
	})

	sched := scheduler.New(roomManager, broadcaster, matches, mon, settings.TickRate)
	sched.Start()
	defer sched.Stop()

	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, settings,
		roomManager, sessionManager, broadcaster, mon)

	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

// openDatabase picks the persistence backend from config. An empty
// driver runs the server without persistence; match records are simply
// not written.
func openDatabase(cfg *config.Config) persistence.Database {
	pg := cfg.Database.Postgres

	switch cfg.Database.Driver {
	case "gorm":
		db, err := persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful (gorm).")
		return db
	case "postgres":
		db, err := persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful (postgres).")
		return db
	case "":
		logger.Log.Info("No database configured; match records disabled.")
		return nil
	default:
		logger.Log.Fatalf("Unknown database driver: %s", cfg.Database.Driver)
		return nil
	}
}
