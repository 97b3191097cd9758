package persistence

import (
	"errors"

	"github.com/AnthonyMuncherz/pingpong-game/models"
)

// Database stores finished-match records. Two implementations exist:
// the GORM one used by default and a raw database/sql one selectable
// via config.
type Database interface {
	SaveMatch(record models.MatchRecord) error
	TopWinners(limit int) ([]models.WinnerRow, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")
