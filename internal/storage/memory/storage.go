package memory

import (
	"context"
	"sync"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	tournaments map[model.TournamentCode]*model.Tournament
	rosters     map[model.TournamentCode][]*model.Player
	schedules   map[model.TournamentCode]*model.Schedule
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tournaments: make(map[model.TournamentCode]*model.Tournament),
		rosters:     make(map[model.TournamentCode][]*model.Player),
		schedules:   make(map[model.TournamentCode]*model.Schedule),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.Code] = t.Clone()
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[code]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (s *Storage) DeleteTournament(ctx context.Context, code model.TournamentCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tournaments, code)
	delete(s.rosters, code)
	delete(s.schedules, code)
	return nil
}

func (s *Storage) TournamentExists(ctx context.Context, code model.TournamentCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tournaments[code]
	return ok, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, code model.TournamentCode, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[code] = model.CloneRoster(players)
	return nil
}

func (s *Storage) GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := model.CloneRoster(s.rosters[code])
	storage.SortRoster(players)
	return players, nil
}

func (s *Storage) SaveTournamentWithRoster(ctx context.Context, t *model.Tournament, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.Code] = t.Clone()
	s.rosters[t.Code] = model.CloneRoster(players)
	return nil
}

// Schedule operations

func (s *Storage) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[schedule.TournamentCode] = schedule.Clone()
	return nil
}

func (s *Storage) GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[code]
	if !ok {
		return nil, model.ErrScheduleNotFound
	}
	return schedule.Clone(), nil
}

func (s *Storage) DeleteSchedule(ctx context.Context, code model.TournamentCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.schedules, code)
	return nil
}

func (s *Storage) SaveTournamentWithSchedule(ctx context.Context, t *model.Tournament, schedule *model.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.Code] = t.Clone()
	s.schedules[schedule.TournamentCode] = schedule.Clone()
	return nil
}
