// Package tournament is the service layer around the scheduling engine. It
// loads and persists tournaments, keeps the roster and waitlist consistent,
// and turns divisions and teams into scheduler input.
//
// All mutations of one tournament are serialized by an in-process lock, and
// each one ends with a single roster write.
package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/doubles-roundrobin/internal/dependencies/clock"
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/scheduler"
	"github.com/mcoot/doubles-roundrobin/internal/services/waitlist"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

const (
	// CodeLength is the length of generated tournament codes
	CodeLength = 6
	// CodeAlphabet is the characters used in tournament codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultName is used when a tournament is created without one
	DefaultName = "Round Robin"
)

// Controller manages tournaments, rosters and schedules
type Controller struct {
	storage   storage.Storage
	scheduler *scheduler.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	locks     *codeLocks
	notifier  Notifier
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	scheduler *scheduler.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		scheduler: scheduler,
		clock:     clock,
		random:    random,
		logger:    logger,
		locks:     newCodeLocks(),
		notifier:  nopNotifier{},
	}
}

// CreateParams are the settings for a new tournament
type CreateParams struct {
	Name       string
	Courts     int
	Mode       model.Mode // Defaults to rotating
	MaxPlayers int        // Defaults to MaxPlayersLimit
	NumRounds  int
}

// SettingsUpdate holds optional changes to a tournament's settings
type SettingsUpdate struct {
	Name       *string
	Courts     *int
	Mode       *model.Mode
	MaxPlayers *int
	NumRounds  *int
	Started    *bool
}

// CreateTournament creates a tournament under a fresh code
func (c *Controller) CreateTournament(ctx context.Context, params CreateParams) (*model.Tournament, error) {
	if params.Mode == "" {
		params.Mode = model.ModeRotating
	}
	if params.MaxPlayers == 0 {
		params.MaxPlayers = model.MaxPlayersLimit
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = DefaultName
	}

	if err := validateSettings(params.Courts, params.Mode, params.MaxPlayers, params.NumRounds); err != nil {
		return nil, err
	}

	// Generate unique tournament code
	var code model.TournamentCode
	for {
		code = model.TournamentCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.TournamentExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	t := &model.Tournament{
		Code:       code,
		Name:       name,
		Courts:     params.Courts,
		Mode:       params.Mode,
		MaxPlayers: params.MaxPlayers,
		NumRounds:  params.NumRounds,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		c.logger.Error("failed to save tournament",
			slog.String("code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("tournament created",
		slog.String("code", string(code)),
		slog.String("mode", string(t.Mode)),
		slog.Int("courts", t.Courts),
		slog.Int("max_players", t.MaxPlayers),
	)

	return t, nil
}

// GetTournament retrieves a tournament by code
func (c *Controller) GetTournament(ctx context.Context, code model.TournamentCode) (*model.Tournament, error) {
	return c.storage.GetTournament(ctx, code)
}

// DeleteTournament removes a tournament with its roster and schedule
func (c *Controller) DeleteTournament(ctx context.Context, code model.TournamentCode) error {
	unlock := c.locks.lock(code)
	defer unlock()

	exists, err := c.storage.TournamentExists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrTournamentNotFound
	}

	if err := c.storage.DeleteTournament(ctx, code); err != nil {
		return err
	}
	c.logger.Info("tournament deleted", slog.String("code", string(code)))
	c.notifier.Notify(Event{Type: EventDeleted, Code: code})
	return nil
}

// UpdateSettings applies a settings change. Raising the capacity promotes
// waitlisted players into the free spots; lowering it never demotes anyone.
func (c *Controller) UpdateSettings(ctx context.Context, code model.TournamentCode, update SettingsUpdate) (*model.Tournament, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if name := strings.TrimSpace(*update.Name); name != "" {
			t.Name = name
		}
	}
	if update.Courts != nil {
		t.Courts = *update.Courts
	}
	if update.Mode != nil {
		t.Mode = *update.Mode
	}
	if update.MaxPlayers != nil {
		t.MaxPlayers = *update.MaxPlayers
	}
	if update.NumRounds != nil {
		t.NumRounds = *update.NumRounds
	}
	if update.Started != nil {
		t.Started = *update.Started
	}

	if err := validateSettings(t.Courts, t.Mode, t.MaxPlayers, t.NumRounds); err != nil {
		return nil, err
	}
	for _, d := range t.Divisions {
		if d.CourtEnd > t.Courts {
			return nil, fmt.Errorf("%w: division %q uses court %d", model.ErrInvalidCourtRange, d.Name, d.CourtEnd)
		}
	}

	promoted := 0
	for waitlist.ActiveCount(roster) < t.MaxPlayers && waitlist.PromoteNext(roster) != nil {
		promoted++
	}

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventTournament); err != nil {
		return nil, err
	}

	c.logger.Info("tournament settings updated",
		slog.String("code", string(code)),
		slog.Int("courts", t.Courts),
		slog.String("mode", string(t.Mode)),
		slog.Int("max_players", t.MaxPlayers),
		slog.Bool("started", t.Started),
		slog.Int("promoted", promoted),
	)

	return t, nil
}

func validateSettings(courts int, mode model.Mode, maxPlayers, numRounds int) error {
	if courts < 1 {
		return model.ErrInvalidCourts
	}
	if !mode.Valid() {
		return model.ErrInvalidMode
	}
	if maxPlayers < 1 || maxPlayers > model.MaxPlayersLimit {
		return model.ErrInvalidCapacity
	}
	if numRounds < 0 {
		return model.ErrInvalidRounds
	}
	return nil
}

// load fetches the tournament and its roster concurrently
func (c *Controller) load(ctx context.Context, code model.TournamentCode) (*model.Tournament, []*model.Player, error) {
	var (
		t      *model.Tournament
		roster []*model.Player
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = c.storage.GetTournament(gctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = c.storage.GetRoster(gctx, code)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return t, roster, nil
}

// commit checks the waitlist invariant, writes tournament and roster together
// and publishes a change event
func (c *Controller) commit(ctx context.Context, t *model.Tournament, roster []*model.Player, kind EventType) error {
	if err := waitlist.Validate(roster); err != nil {
		c.logger.Error("refusing to save corrupt waitlist",
			slog.String("code", string(t.Code)),
			slog.String("error", err.Error()),
		)
		return err
	}
	if err := c.storage.SaveTournamentWithRoster(ctx, t, roster); err != nil {
		c.logger.Error("failed to save roster",
			slog.String("code", string(t.Code)),
			slog.String("error", err.Error()),
		)
		return err
	}
	c.notifier.Notify(Event{Type: kind, Code: t.Code})
	return nil
}
