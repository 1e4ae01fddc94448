// Package bolt is an embedded, single-file storage backend built on storm's
// key/value API over bbolt.
package bolt

import (
	"context"
	"errors"
	"fmt"

	"github.com/asdine/storm"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

// Bucket names
const (
	tournamentsBucket = "tournaments"
	rostersBucket     = "rosters"
	schedulesBucket   = "schedules"
)

// Config holds the embedded database settings
type Config struct {
	// Path is the database file, created if missing
	Path string
}

// DefaultConfig returns sensible defaults for the bolt backend
func DefaultConfig() Config {
	return Config{Path: "rrdoubles.db"}
}

// Storage is a bbolt-backed implementation of the storage interface.
// Values are encoded with storm's default JSON codec.
type Storage struct {
	db *storm.DB
}

// New opens (or creates) the database at cfg.Path
func New(cfg Config) (*Storage, error) {
	db, err := storm.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open bolt database %s: %w", cfg.Path, err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database file
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	return s.db.Set(tournamentsBucket, string(t.Code), t)
}

func (s *Storage) GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error) {
	var t model.Tournament
	if err := s.db.Get(tournamentsBucket, string(code), &t); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, code model.TournamentCode) error {
	tx, err := s.db.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, bucket := range []string{tournamentsBucket, rostersBucket, schedulesBucket} {
		if err := ignoreNotFound(tx.Delete(bucket, string(code))); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) TournamentExists(ctx context.Context, code model.TournamentCode) (bool, error) {
	_, err := s.db.GetBytes(tournamentsBucket, string(code))
	if err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, code model.TournamentCode, players []*model.Player) error {
	return s.db.Set(rostersBucket, string(code), players)
}

func (s *Storage) GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error) {
	var players []*model.Player
	if err := s.db.Get(rostersBucket, string(code), &players); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return []*model.Player{}, nil
		}
		return nil, err
	}
	storage.SortRoster(players)
	return players, nil
}

func (s *Storage) SaveTournamentWithRoster(ctx context.Context, t *model.Tournament, players []*model.Player) error {
	tx, err := s.db.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Set(tournamentsBucket, string(t.Code), t); err != nil {
		return err
	}
	if err := tx.Set(rostersBucket, string(t.Code), players); err != nil {
		return err
	}
	return tx.Commit()
}

// Schedule operations

func (s *Storage) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	return s.db.Set(schedulesBucket, string(schedule.TournamentCode), schedule)
}

func (s *Storage) GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := s.db.Get(schedulesBucket, string(code), &schedule); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, model.ErrScheduleNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (s *Storage) SaveTournamentWithSchedule(ctx context.Context, t *model.Tournament, schedule *model.Schedule) error {
	tx, err := s.db.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Set(tournamentsBucket, string(t.Code), t); err != nil {
		return err
	}
	if err := tx.Set(schedulesBucket, string(schedule.TournamentCode), schedule); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) DeleteSchedule(ctx context.Context, code model.TournamentCode) error {
	return ignoreNotFound(s.db.Delete(schedulesBucket, string(code)))
}

// ignoreNotFound treats a missing bucket or key as already deleted
func ignoreNotFound(err error) error {
	if errors.Is(err, storm.ErrNotFound) {
		return nil
	}
	return err
}
