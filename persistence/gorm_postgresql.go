package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AnthonyMuncherz/pingpong-game/models"
)

// GormPostgreSQL implements Database through GORM.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gl := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gl})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormMatch{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (p *GormPostgreSQL) SaveMatch(record models.MatchRecord) error {
	match := models.GormMatch{
		RoomCode:   record.RoomCode,
		LeftName:   record.LeftName,
		RightName:  record.RightName,
		LeftScore:  record.LeftScore,
		RightScore: record.RightScore,
		WinnerSlot: record.WinnerSlot,
		Duration:   record.Duration,
	}
	return p.db.Create(&match).Error
}

func (p *GormPostgreSQL) TopWinners(limit int) ([]models.WinnerRow, error) {
	var rows []models.WinnerRow

	err := p.db.Raw(`
        SELECT
            CASE WHEN winner_slot = 0 THEN left_name ELSE right_name END AS name,
            COUNT(*) AS wins
        FROM gorm_matches
        WHERE deleted_at IS NULL
        GROUP BY 1
        ORDER BY wins DESC
        LIMIT ?`, limit,
	).Scan(&rows).Error

	return rows, err
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
