package models

import (
	"time"
)

// MatchRecord is one finished game, written when a room reaches the
// finished phase. Live room state is never persisted.
type MatchRecord struct {
	RoomCode   string    `json:"room_code"`
	LeftName   string    `json:"left_name"`
	RightName  string    `json:"right_name"`
	LeftScore  int       `json:"left_score"`
	RightScore int       `json:"right_score"`
	WinnerSlot int       `json:"winner_slot"` // 0 left, 1 right
	Duration   int       `json:"duration"`    // seconds from room creation
	FinishedAt time.Time `json:"finished_at"`
}

// WinnerRow is one leaderboard entry aggregated from match records.
type WinnerRow struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}
