package models

import (
	"gorm.io/gorm"
)

// GormMatch is the GORM mapping of MatchRecord.
type GormMatch struct {
	gorm.Model
	RoomCode   string `gorm:"index;not null"`
	LeftName   string `gorm:"not null"`
	RightName  string `gorm:"not null"`
	LeftScore  int    `gorm:"not null"`
	RightScore int    `gorm:"not null"`
	WinnerSlot int    `gorm:"not null"`
	Duration   int    `gorm:"default:0"` // seconds
}
