package storage

import (
	"context"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Tournament operations
	SaveTournament(ctx context.Context, t *model.Tournament) error
	GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error)
	// DeleteTournament removes the tournament along with its roster and schedule
	DeleteTournament(ctx context.Context, code model.TournamentCode) error
	TournamentExists(ctx context.Context, code model.TournamentCode) (bool, error)

	// Roster operations. A roster is always replaced as a whole so waitlist
	// renumbering is never observed half-applied.
	SaveRoster(ctx context.Context, code model.TournamentCode, players []*model.Player) error
	// GetRoster returns players ordered by signup order; an unknown code yields an empty roster
	GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error)
	// SaveTournamentWithRoster writes both records in one atomic unit
	SaveTournamentWithRoster(ctx context.Context, t *model.Tournament, players []*model.Player) error

	// Schedule operations
	SaveSchedule(ctx context.Context, schedule *model.Schedule) error
	GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error)
	DeleteSchedule(ctx context.Context, code model.TournamentCode) error
	// SaveTournamentWithSchedule writes both records in one atomic unit
	SaveTournamentWithSchedule(ctx context.Context, t *model.Tournament, schedule *model.Schedule) error
}
