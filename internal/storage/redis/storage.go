package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Tournaments and schedules are JSON strings. A roster is a hash of player
// ID to player JSON, always rewritten inside MULTI/EXEC.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tournamentKey(t.Code), data, s.cfg.TournamentTTL).Err()
}

func (s *Storage) GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error) {
	data, err := s.client.Get(ctx, tournamentKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, err
	}

	var t model.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, code model.TournamentCode) error {
	return s.client.Del(ctx, tournamentKey(code), rosterKey(code), scheduleKey(code)).Err()
}

func (s *Storage) TournamentExists(ctx context.Context, code model.TournamentCode) (bool, error) {
	exists, err := s.client.Exists(ctx, tournamentKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, code model.TournamentCode, players []*model.Player) error {
	fields, err := rosterFields(players)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.queueRoster(ctx, pipe, code, fields)
		return nil
	})
	return err
}

func (s *Storage) GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error) {
	entries, err := s.client.HGetAll(ctx, rosterKey(code)).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(entries))
	for _, data := range entries {
		var p model.Player
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	storage.SortRoster(players)
	return players, nil
}

func (s *Storage) SaveTournamentWithRoster(ctx context.Context, t *model.Tournament, players []*model.Player) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	fields, err := rosterFields(players)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tournamentKey(t.Code), data, s.cfg.TournamentTTL)
		s.queueRoster(ctx, pipe, t.Code, fields)
		return nil
	})
	return err
}

func (s *Storage) queueRoster(ctx context.Context, pipe redis.Pipeliner, code model.TournamentCode, fields []any) {
	key := rosterKey(code)
	pipe.Del(ctx, key)
	if len(fields) == 0 {
		return
	}
	pipe.HSet(ctx, key, fields...)
	if s.cfg.TournamentTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.TournamentTTL)
	}
}

// rosterFields flattens players into HSET field/value arguments
func rosterFields(players []*model.Player) ([]any, error) {
	fields := make([]any, 0, len(players)*2)
	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		fields = append(fields, string(p.ID), string(data))
	}
	return fields, nil
}

// Schedule operations

func (s *Storage) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, scheduleKey(schedule.TournamentCode), data, s.cfg.TournamentTTL).Err()
}

func (s *Storage) GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error) {
	data, err := s.client.Get(ctx, scheduleKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScheduleNotFound
		}
		return nil, err
	}

	var schedule model.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *Storage) DeleteSchedule(ctx context.Context, code model.TournamentCode) error {
	return s.client.Del(ctx, scheduleKey(code)).Err()
}

func (s *Storage) SaveTournamentWithSchedule(ctx context.Context, t *model.Tournament, schedule *model.Schedule) error {
	tournamentData, err := json.Marshal(t)
	if err != nil {
		return err
	}
	scheduleData, err := json.Marshal(schedule)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tournamentKey(t.Code), tournamentData, s.cfg.TournamentTTL)
		pipe.Set(ctx, scheduleKey(schedule.TournamentCode), scheduleData, s.cfg.TournamentTTL)
		return nil
	})
	return err
}
