package services

import (
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/game"
	"github.com/AnthonyMuncherz/pingpong-game/logger"
	"github.com/AnthonyMuncherz/pingpong-game/models"
	"github.com/AnthonyMuncherz/pingpong-game/persistence"
	"github.com/AnthonyMuncherz/pingpong-game/room"
)

// MatchService writes finished games to storage. A nil database turns
// every call into a no-op so the server runs fine without Postgres.
type MatchService struct {
	db persistence.Database
}

func NewMatchService(db persistence.Database) *MatchService {
	return &MatchService{db: db}
}

// RecordFinished persists a match record built from the final room
// snapshot. A write failure is logged, never surfaced to gameplay.
func (s *MatchService) RecordFinished(snap room.Snapshot) {
	if s.db == nil || len(snap.Players) != 2 {
		return
	}

	left := snap.Players[game.SlotLeft]
	right := snap.Players[game.SlotRight]

	winner := game.SlotLeft
	if right.Score > left.Score {
		winner = game.SlotRight
	}

	now := time.Now()
	record := models.MatchRecord{
		RoomCode:   snap.RoomCode,
		LeftName:   left.Name,
		RightName:  right.Name,
		LeftScore:  left.Score,
		RightScore: right.Score,
		WinnerSlot: winner,
		Duration:   int(now.Sub(snap.CreatedAt).Seconds()),
		FinishedAt: now,
	}

	if err := s.db.SaveMatch(record); err != nil {
		logger.Log.Errorf("failed to save match record for room %s: %v", snap.RoomCode, err)
	}
}

// TopWinners proxies the leaderboard query for the admin RPC.
func (s *MatchService) TopWinners(limit int) ([]models.WinnerRow, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.TopWinners(limit)
}
