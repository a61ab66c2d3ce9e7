//go:build database

package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"codeberg.org/tslocum/bgengine"
	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS game (
	id      serial PRIMARY KEY,
	started bigint NOT NULL,
	ended   bigint NOT NULL,
	winner  integer NOT NULL,
	replay  text NOT NULL DEFAULT ''
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	started INTEGER NOT NULL,
	ended   INTEGER NOT NULL,
	winner  INTEGER NOT NULL,
	replay  TEXT NOT NULL DEFAULT ''
);
`

// Games are stored in PostgreSQL when the data source is a postgres:// URL,
// otherwise the data source is the path to a SQLite database.
var (
	db     *pgx.Conn
	sqlDB  *sql.DB
	dbLock = &sync.Mutex{}
)

func connectDB(dataSource string) error {
	dbLock.Lock()
	defer dbLock.Unlock()

	var err error
	if strings.HasPrefix(dataSource, "postgres://") || strings.HasPrefix(dataSource, "postgresql://") {
		db, err = pgx.Connect(context.Background(), dataSource)
		return err
	}

	sqlDB, err = sql.Open("sqlite", dataSource)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

func closeDB() {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db != nil {
		db.Close(context.Background())
		db = nil
	}
	if sqlDB != nil {
		sqlDB.Close()
		sqlDB = nil
	}
}

func testDBConnection() error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if sqlDB != nil {
		return sqlDB.Ping()
	} else if db == nil {
		return nil
	}
	_, err := db.Exec(context.Background(), "SELECT 1=1")
	return err
}

func initDB() {
	dbLock.Lock()
	defer dbLock.Unlock()

	var err error
	switch {
	case sqlDB != nil:
		_, err = sqlDB.Exec(sqliteSchema)
	case db != nil:
		_, err = db.Exec(context.Background(), postgresSchema)
	default:
		return
	}
	if err != nil {
		log.Fatalf("failed to initialize database: %s", err)
	}
}

func recordGameResult(started time.Time, ended time.Time, winner bgengine.Player, replay []byte) error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if started.IsZero() || winner == bgengine.NoPlayer {
		return nil
	}
	if ended.IsZero() {
		ended = time.Now()
	}

	switch {
	case sqlDB != nil:
		_, err := sqlDB.Exec("INSERT INTO game (started, ended, winner, replay) VALUES (?, ?, ?, ?)", started.Unix(), ended.Unix(), int(winner), string(replay))
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
	case db != nil:
		_, err := db.Exec(context.Background(), "INSERT INTO game (started, ended, winner, replay) VALUES ($1, $2, $3, $4)", started.Unix(), ended.Unix(), int(winner), string(replay))
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
	}
	return nil
}

func gameRecords(limit int) ([]*gameRecord, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	var records []*gameRecord
	scan := func(scanner interface{ Scan(dest ...any) error }) error {
		r := &gameRecord{}
		var winner int
		err := scanner.Scan(&r.ID, &r.Started, &r.Ended, &winner)
		if err != nil {
			return fmt.Errorf("scan game: %w", err)
		}
		r.Winner = bgengine.Player(winner)
		records = append(records, r)
		return nil
	}

	switch {
	case sqlDB != nil:
		rows, err := sqlDB.Query("SELECT id, started, ended, winner FROM game ORDER BY id DESC LIMIT ?", limit)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			if err := scan(rows); err != nil {
				return nil, err
			}
		}
		return records, rows.Err()
	case db != nil:
		rows, err := db.Query(context.Background(), "SELECT id, started, ended, winner FROM game ORDER BY id DESC LIMIT $1", limit)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			if err := scan(rows); err != nil {
				return nil, err
			}
		}
		return records, rows.Err()
	}
	return nil, nil
}

func replayByID(id int) ([]byte, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	if id <= 0 {
		return nil, fmt.Errorf("please specify an id")
	}

	var replay string
	var err error
	switch {
	case sqlDB != nil:
		err = sqlDB.QueryRow("SELECT replay FROM game WHERE id = ?", id).Scan(&replay)
	case db != nil:
		err = db.QueryRow(context.Background(), "SELECT replay FROM game WHERE id = $1", id).Scan(&replay)
	default:
		return nil, nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("select replay: %w", err)
	}
	return []byte(replay), nil
}
