// Package postgres stores tournaments as JSONB documents in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

// Config holds PostgreSQL connection settings
type Config struct {
	// DSN is a lib/pq connection string or URL
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// DefaultConfig returns sensible defaults for the postgres backend
func DefaultConfig() Config {
	return Config{
		DSN:          "postgres://localhost:5432/rrdoubles?sslmode=disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
	code       TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS players (
	tournament_code TEXT NOT NULL,
	id              TEXT NOT NULL,
	order_num       INTEGER NOT NULL,
	data            JSONB NOT NULL,
	PRIMARY KEY (tournament_code, id)
);
CREATE TABLE IF NOT EXISTS schedules (
	tournament_code TEXT PRIMARY KEY,
	data            JSONB NOT NULL
);`

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New connects to the database and creates the schema if needed
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	return saveTournament(ctx, s.db, t)
}

func saveTournament(ctx context.Context, exec execer, t *model.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO tournaments (code, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (code) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		string(t.Code), string(data))
	if err != nil {
		return fmt.Errorf("failed to save tournament %s: %w", t.Code, err)
	}
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM tournaments WHERE code = $1`, string(code)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", code, err)
	}

	var t model.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, code model.TournamentCode) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, query := range []string{
			`DELETE FROM players WHERE tournament_code = $1`,
			`DELETE FROM schedules WHERE tournament_code = $1`,
			`DELETE FROM tournaments WHERE code = $1`,
		} {
			if _, err := tx.ExecContext(ctx, query, string(code)); err != nil {
				return fmt.Errorf("failed to delete tournament %s: %w", code, err)
			}
		}
		return nil
	})
}

func (s *Storage) TournamentExists(ctx context.Context, code model.TournamentCode) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tournaments WHERE code = $1)`, string(code)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tournament %s: %w", code, err)
	}
	return exists, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, code model.TournamentCode, players []*model.Player) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return replaceRoster(ctx, tx, code, players)
	})
}

func (s *Storage) SaveTournamentWithRoster(ctx context.Context, t *model.Tournament, players []*model.Player) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := saveTournament(ctx, tx, t); err != nil {
			return err
		}
		return replaceRoster(ctx, tx, t.Code, players)
	})
}

func replaceRoster(ctx context.Context, tx *sql.Tx, code model.TournamentCode, players []*model.Player) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE tournament_code = $1`, string(code)); err != nil {
		return fmt.Errorf("failed to clear roster %s: %w", code, err)
	}
	if len(players) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO players (tournament_code, id, order_num, data) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("failed to prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, string(code), string(p.ID), p.OrderNum, string(data)); err != nil {
			return fmt.Errorf("failed to insert player %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Storage) GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM players WHERE tournament_code = $1 ORDER BY order_num`, string(code))
	if err != nil {
		return nil, fmt.Errorf("failed to list roster %s: %w", code, err)
	}
	defer rows.Close()

	players := make([]*model.Player, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		var p model.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortRoster(players)
	return players, nil
}

// Schedule operations

func (s *Storage) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	return saveSchedule(ctx, s.db, schedule)
}

func (s *Storage) SaveTournamentWithSchedule(ctx context.Context, t *model.Tournament, schedule *model.Schedule) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := saveTournament(ctx, tx, t); err != nil {
			return err
		}
		return saveSchedule(ctx, tx, schedule)
	})
}

func saveSchedule(ctx context.Context, exec execer, schedule *model.Schedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO schedules (tournament_code, data) VALUES ($1, $2)
		ON CONFLICT (tournament_code) DO UPDATE SET data = EXCLUDED.data`,
		string(schedule.TournamentCode), string(data))
	if err != nil {
		return fmt.Errorf("failed to save schedule %s: %w", schedule.TournamentCode, err)
	}
	return nil
}

func (s *Storage) GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM schedules WHERE tournament_code = $1`, string(code)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule %s: %w", code, err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *Storage) DeleteSchedule(ctx context.Context, code model.TournamentCode) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE tournament_code = $1`, string(code))
	if err != nil {
		return fmt.Errorf("failed to delete schedule %s: %w", code, err)
	}
	return nil
}

// inTx runs fn in a transaction, committing on success and rolling back on error or panic
func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	return fn(tx)
}
