package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/AnthonyMuncherz/pingpong-game/models"
)

// PostgreSQL is the raw database/sql implementation of Database, for
// deployments that prefer plain SQL over GORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	p := &PostgreSQL{db: db}
	if err := p.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgreSQL) createTables() error {
	_, err := p.db.Exec(`
        CREATE TABLE IF NOT EXISTS matches (
            id          BIGSERIAL PRIMARY KEY,
            room_code   VARCHAR(6) NOT NULL,
            left_name   VARCHAR(20) NOT NULL,
            right_name  VARCHAR(20) NOT NULL,
            left_score  INT NOT NULL,
            right_score INT NOT NULL,
            winner_slot INT NOT NULL,
            duration    INT NOT NULL DEFAULT 0,
            finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
        CREATE INDEX IF NOT EXISTS idx_matches_room_code ON matches (room_code);
    `)
	return err
}

func (p *PostgreSQL) SaveMatch(record models.MatchRecord) error {
	_, err := p.db.Exec(`
        INSERT INTO matches
            (room_code, left_name, right_name, left_score, right_score, winner_slot, duration, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.RoomCode, record.LeftName, record.RightName,
		record.LeftScore, record.RightScore, record.WinnerSlot,
		record.Duration, record.FinishedAt,
	)
	return err
}

func (p *PostgreSQL) TopWinners(limit int) ([]models.WinnerRow, error) {
	rows, err := p.db.Query(`
        SELECT
            CASE WHEN winner_slot = 0 THEN left_name ELSE right_name END AS name,
            COUNT(*) AS wins
        FROM matches
        GROUP BY 1
        ORDER BY wins DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.WinnerRow
	for rows.Next() {
		var row models.WinnerRow
		if err := rows.Scan(&row.Name, &row.Wins); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
