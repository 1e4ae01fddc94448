package tournament

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/rs/xid"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/waitlist"
)

// RosterChange reports the players affected by a roster mutation
type RosterChange struct {
	Player   *model.Player // The player acted on, nil after a removal
	Promoted *model.Player // Player moved off the waitlist, if any
}

// GetRoster returns the tournament's players in signup order
func (c *Controller) GetRoster(ctx context.Context, code model.TournamentCode) ([]*model.Player, error) {
	_, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// AddPlayer signs a player up. The player takes an active spot while the
// tournament is under capacity and joins the back of the waitlist otherwise.
func (c *Controller) AddPlayer(ctx context.Context, code model.TournamentCode, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidPlayerName
	}

	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if t.Started {
		return nil, model.ErrTournamentStarted
	}

	orderNum := 0
	for _, p := range roster {
		orderNum = max(orderNum, p.OrderNum+1)
	}

	player := &model.Player{
		ID:             model.PlayerID(xid.New().String()),
		TournamentCode: code,
		Name:           name,
		OrderNum:       orderNum,
		CreatedAt:      c.clock.Now(),
	}
	waitlist.Admit(roster, t.MaxPlayers).Apply(player)
	roster = append(roster, player)

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return nil, err
	}

	if player.IsWaitlisted() {
		c.logger.Info("player waitlisted",
			slog.String("code", string(code)),
			slog.String("player_id", string(player.ID)),
			slog.Int("position", player.WaitlistPosition),
		)
	} else {
		c.logger.Info("player admitted",
			slog.String("code", string(code)),
			slog.String("player_id", string(player.ID)),
		)
	}

	return player, nil
}

// RenamePlayer changes a player's display name
func (c *Controller) RenamePlayer(ctx context.Context, code model.TournamentCode, id model.PlayerID, name string) (*model.Player, error) {
	change, err := c.UpdatePlayer(ctx, code, id, PlayerUpdate{Name: &name})
	if err != nil {
		return nil, err
	}
	return change.Player, nil
}

// RemovePlayer drops a player from the roster and from any registered team.
// Removing an active player promotes the head of the waitlist.
func (c *Controller) RemovePlayer(ctx context.Context, code model.TournamentCode, id model.PlayerID) (RosterChange, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return RosterChange{}, err
	}
	if t.Started {
		return RosterChange{}, model.ErrTournamentStarted
	}

	roster, promoted, err := waitlist.Remove(roster, id)
	if err != nil {
		return RosterChange{}, err
	}
	t.Teams = slices.DeleteFunc(t.Teams, func(team model.RegisteredTeam) bool {
		return team.Players.Has(id)
	})

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return RosterChange{}, err
	}

	c.logger.Info("player removed",
		slog.String("code", string(code)),
		slog.String("player_id", string(id)),
	)
	c.logPromotion(code, promoted)

	return RosterChange{Promoted: promoted}, nil
}

// SetPlaying toggles whether a player takes part. Sitting out an active
// player promotes the head of the waitlist; a player coming back is
// re-admitted and may land on the waitlist if the tournament is full.
func (c *Controller) SetPlaying(ctx context.Context, code model.TournamentCode, id model.PlayerID, playing bool) (RosterChange, error) {
	return c.UpdatePlayer(ctx, code, id, PlayerUpdate{IsPlaying: &playing})
}

// PlayerUpdate holds optional changes to one player. A non-nil empty
// DivisionID unassigns the player.
type PlayerUpdate struct {
	Name       *string
	DivisionID *string
	IsPlaying  *bool
}

// UpdatePlayer applies every field of update in one write. Nothing is saved
// unless all of them are valid.
func (c *Controller) UpdatePlayer(ctx context.Context, code model.TournamentCode, id model.PlayerID, update PlayerUpdate) (RosterChange, error) {
	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return RosterChange{}, model.ErrInvalidPlayerName
		}
	}

	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return RosterChange{}, err
	}
	player := findPlayer(roster, id)
	if player == nil {
		return RosterChange{}, model.ErrPlayerNotFound
	}
	if update.DivisionID != nil && *update.DivisionID != "" && t.GetDivision(*update.DivisionID) == nil {
		return RosterChange{}, model.ErrDivisionNotFound
	}

	if update.Name != nil {
		player.Name = name
	}
	if update.DivisionID != nil {
		player.DivisionID = *update.DivisionID
	}

	var promoted *model.Player
	if update.IsPlaying != nil {
		if *update.IsPlaying {
			if !player.IsPlaying && !player.IsWaitlisted() {
				waitlist.Admit(roster, t.MaxPlayers).Apply(player)
			}
		} else {
			promoted, err = waitlist.Deactivate(roster, id)
			if err != nil {
				return RosterChange{}, err
			}
		}
	}

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return RosterChange{}, err
	}

	c.logger.Info("player updated",
		slog.String("code", string(code)),
		slog.String("player_id", string(id)),
		slog.String("division_id", player.DivisionID),
		slog.Bool("playing", player.IsPlaying),
		slog.Int("waitlist_position", player.WaitlistPosition),
	)
	c.logPromotion(code, promoted)

	return RosterChange{Player: player, Promoted: promoted}, nil
}

// ApproveWaitlisted promotes a specific waitlisted player out of turn,
// raising the tournament's capacity by one to make room
func (c *Controller) ApproveWaitlisted(ctx context.Context, code model.TournamentCode, id model.PlayerID) (*model.Player, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := waitlist.Approve(roster, id); err != nil {
		return nil, err
	}
	t.MaxPlayers = min(model.MaxPlayersLimit, t.MaxPlayers+1)

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return nil, err
	}

	player := findPlayer(roster, id)
	c.logger.Info("waitlisted player approved",
		slog.String("code", string(code)),
		slog.String("player_id", string(id)),
		slog.Int("max_players", t.MaxPlayers),
	)
	return player, nil
}

// ApproveAll promotes the whole waitlist, raising capacity to fit
func (c *Controller) ApproveAll(ctx context.Context, code model.TournamentCode) (int, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return 0, err
	}

	count, err := waitlist.ApproveAll(roster)
	if err != nil {
		return 0, err
	}
	t.MaxPlayers = min(model.MaxPlayersLimit, t.MaxPlayers+count)

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return 0, err
	}

	c.logger.Info("waitlist approved",
		slog.String("code", string(code)),
		slog.Int("promoted", count),
		slog.Int("max_players", t.MaxPlayers),
	)
	return count, nil
}

func (c *Controller) logPromotion(code model.TournamentCode, promoted *model.Player) {
	if promoted == nil {
		return
	}
	c.logger.Info("player promoted from waitlist",
		slog.String("code", string(code)),
		slog.String("player_id", string(promoted.ID)),
	)
}

func findPlayer(roster []*model.Player, id model.PlayerID) *model.Player {
	for _, p := range roster {
		if p.ID == id {
			return p
		}
	}
	return nil
}
