// Package scheduler drives every room at a fixed tick rate. The loop
// itself is only a ticker; all per-tick work lives in Tick so tests
// can advance simulated time directly.
package scheduler

import (
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/broadcast"
	"github.com/AnthonyMuncherz/pingpong-game/logger"
	"github.com/AnthonyMuncherz/pingpong-game/monitor"
	"github.com/AnthonyMuncherz/pingpong-game/network"
	"github.com/AnthonyMuncherz/pingpong-game/room"
	"github.com/AnthonyMuncherz/pingpong-game/services"
)

type Scheduler struct {
	roomManager *room.Manager
	broadcaster broadcast.Broadcaster
	matches     *services.MatchService
	monitor     *monitor.Monitor
	interval    time.Duration
	stopChan    chan struct{}
}

// New builds a scheduler ticking at the given rate (ticks per second).
// matches and mon may be nil.
func New(rm *room.Manager, b broadcast.Broadcaster, matches *services.MatchService, mon *monitor.Monitor, tickRate int) *Scheduler {
	return &Scheduler{
		roomManager: rm,
		broadcaster: b,
		matches:     matches,
		monitor:     mon,
		interval:    time.Second / time.Duration(tickRate),
		stopChan:    make(chan struct{}),
	}
}

// Start launches the tick loop in its own goroutine.
func (s *Scheduler) Start() {
	go s.loop()
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			start := time.Now()
			s.Tick(now)
			if s.monitor != nil {
				s.monitor.ObserveTickDuration(time.Since(start))
			}
		case <-s.stopChan:
			return
		}
	}
}

// Tick advances every room once for the given wall-clock instant.
// Rooms outside countdown/playing are skipped entirely, so idle rooms
// cost nothing between events.
func (s *Scheduler) Tick(now time.Time) {
	rooms := s.roomManager.Rooms()

	for _, r := range rooms {
		switch r.Phase() {
		case room.PhaseCountdown:
			s.tickCountdown(r, now)
		case room.PhasePlaying:
			s.tickPlaying(r)
		}
	}

	if s.monitor != nil {
		s.monitor.SetActiveRooms(len(rooms))
	}
}

func (s *Scheduler) tickCountdown(r *room.Room, now time.Time) {
	changed, remaining, started := r.AdvanceCountdown(now)

	if changed {
		s.broadcaster.BroadcastToRoom(r.Code, network.EventCountdownUpdate,
			network.CountdownPayload{Countdown: remaining})
	}
	if started {
		logger.Log.Infow("game started", "room", r.Code)
		s.broadcaster.BroadcastToRoom(r.Code, network.EventGameStart, r.Snapshot())
	}
}

func (s *Scheduler) tickPlaying(r *room.Room) {
	stepped, finished := r.StepPhysics()
	if !stepped {
		return
	}

	s.broadcaster.BroadcastToRoom(r.Code, network.EventGameUpdate, r.Snapshot())

	if finished {
		logger.Log.Infow("game finished", "room", r.Code)
		if s.matches != nil {
			s.matches.RecordFinished(r.Snapshot())
		}
	}
}
