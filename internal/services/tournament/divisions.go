package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/rs/xid"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// divisionColors are handed out in order to divisions created without a color
var divisionColors = []string{"#3b82f6", "#ef4444", "#22c55e", "#f59e0b", "#a855f7", "#14b8a6"}

// DivisionParams describes a division to create or update
type DivisionParams struct {
	Name       string
	CourtStart int
	CourtEnd   int
	Color      string
}

// AddDivision reserves a court range for a new division
func (c *Controller) AddDivision(ctx context.Context, code model.TournamentCode, params DivisionParams) (*model.Division, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, err := c.storage.GetTournament(ctx, code)
	if err != nil {
		return nil, err
	}

	d := model.Division{
		ID:         xid.New().String(),
		Name:       strings.TrimSpace(params.Name),
		CourtStart: params.CourtStart,
		CourtEnd:   params.CourtEnd,
		Color:      params.Color,
	}
	if d.Color == "" {
		d.Color = divisionColors[len(t.Divisions)%len(divisionColors)]
	}
	if err := validateDivision(t, d); err != nil {
		return nil, err
	}

	t.Divisions = append(t.Divisions, d)
	t.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, t, EventTournament); err != nil {
		return nil, err
	}

	c.logger.Info("division added",
		slog.String("code", string(code)),
		slog.String("division_id", d.ID),
		slog.Int("court_start", d.CourtStart),
		slog.Int("court_end", d.CourtEnd),
	)
	return &d, nil
}

// UpdateDivision replaces a division's name, courts and color.
// An empty color keeps the current one.
func (c *Controller) UpdateDivision(ctx context.Context, code model.TournamentCode, id string, params DivisionParams) (*model.Division, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, err := c.storage.GetTournament(ctx, code)
	if err != nil {
		return nil, err
	}
	existing := t.GetDivision(id)
	if existing == nil {
		return nil, model.ErrDivisionNotFound
	}

	updated := *existing
	updated.Name = strings.TrimSpace(params.Name)
	updated.CourtStart = params.CourtStart
	updated.CourtEnd = params.CourtEnd
	if params.Color != "" {
		updated.Color = params.Color
	}
	if err := validateDivision(t, updated); err != nil {
		return nil, err
	}

	*existing = updated
	t.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, t, EventTournament); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDivision removes a division and unassigns its players
func (c *Controller) DeleteDivision(ctx context.Context, code model.TournamentCode, id string) error {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return err
	}
	if t.GetDivision(id) == nil {
		return model.ErrDivisionNotFound
	}

	t.Divisions = slices.DeleteFunc(t.Divisions, func(d model.Division) bool { return d.ID == id })
	unassigned := 0
	for _, p := range roster {
		if p.DivisionID == id {
			p.DivisionID = ""
			unassigned++
		}
	}

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventTournament); err != nil {
		return err
	}

	c.logger.Info("division deleted",
		slog.String("code", string(code)),
		slog.String("division_id", id),
		slog.Int("unassigned", unassigned),
	)
	return nil
}

// AssignDivision moves a player into a division; an empty divisionID unassigns
func (c *Controller) AssignDivision(ctx context.Context, code model.TournamentCode, playerID model.PlayerID, divisionID string) (*model.Player, error) {
	change, err := c.UpdatePlayer(ctx, code, playerID, PlayerUpdate{DivisionID: &divisionID})
	if err != nil {
		return nil, err
	}
	return change.Player, nil
}

// Assignment places one player in a division; an empty DivisionID unassigns
type Assignment struct {
	PlayerID   model.PlayerID
	DivisionID string
}

// AssignDivisions applies a batch of assignments in one write and returns
// how many were applied. Entries without a player are skipped; any unknown
// player or division rejects the whole batch.
func (c *Controller) AssignDivisions(ctx context.Context, code model.TournamentCode, assignments []Assignment) (int, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return 0, err
	}

	targets := make([]*model.Player, len(assignments))
	for i, a := range assignments {
		if a.PlayerID == "" {
			continue
		}
		targets[i] = findPlayer(roster, a.PlayerID)
		if targets[i] == nil {
			return 0, fmt.Errorf("%w: %s", model.ErrPlayerNotFound, a.PlayerID)
		}
		if a.DivisionID != "" && t.GetDivision(a.DivisionID) == nil {
			return 0, fmt.Errorf("%w: %s", model.ErrDivisionNotFound, a.DivisionID)
		}
	}

	applied := 0
	for i, p := range targets {
		if p == nil {
			continue
		}
		p.DivisionID = assignments[i].DivisionID
		applied++
	}

	t.UpdatedAt = c.clock.Now()
	if err := c.commit(ctx, t, roster, EventRoster); err != nil {
		return 0, err
	}

	c.logger.Info("divisions assigned",
		slog.String("code", string(code)),
		slog.Int("count", applied),
	)
	return applied, nil
}

// validateDivision checks d against the tournament's courts and every other division
func validateDivision(t *model.Tournament, d model.Division) error {
	if d.Name == "" {
		return model.ErrInvalidDivision
	}
	if d.CourtStart < 1 || d.CourtEnd < d.CourtStart || d.CourtEnd > t.Courts {
		return fmt.Errorf("%w: courts %d-%d with %d available",
			model.ErrInvalidCourtRange, d.CourtStart, d.CourtEnd, t.Courts)
	}
	for _, other := range t.Divisions {
		if other.ID != d.ID && other.Overlaps(d) {
			return fmt.Errorf("%w: %q", model.ErrDivisionOverlap, other.Name)
		}
	}
	return nil
}

// AddTeam registers a fixed partnership for fixed mode
func (c *Controller) AddTeam(ctx context.Context, code model.TournamentCode, p1, p2 model.PlayerID, name string) (*model.RegisteredTeam, error) {
	if p1 == "" || p2 == "" || p1 == p2 {
		return nil, model.ErrInvalidTeam
	}

	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}

	first, second := findPlayer(roster, p1), findPlayer(roster, p2)
	if first == nil || second == nil {
		return nil, model.ErrPlayerNotFound
	}
	if t.TeamOf(p1) != nil || t.TeamOf(p2) != nil {
		return nil, model.ErrTeamConflict
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = first.Name + " & " + second.Name
	}
	team := model.RegisteredTeam{
		ID:      xid.New().String(),
		Name:    name,
		Players: model.Team{p1, p2},
	}

	t.Teams = append(t.Teams, team)
	t.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, t, EventTournament); err != nil {
		return nil, err
	}

	c.logger.Info("team registered",
		slog.String("code", string(code)),
		slog.String("team_id", team.ID),
	)
	return &team, nil
}

// RemoveTeam deletes a registered team; its players become unpartnered
func (c *Controller) RemoveTeam(ctx context.Context, code model.TournamentCode, id string) error {
	unlock := c.locks.lock(code)
	defer unlock()

	t, err := c.storage.GetTournament(ctx, code)
	if err != nil {
		return err
	}

	before := len(t.Teams)
	t.Teams = slices.DeleteFunc(t.Teams, func(team model.RegisteredTeam) bool { return team.ID == id })
	if len(t.Teams) == before {
		return model.ErrTeamNotFound
	}

	t.UpdatedAt = c.clock.Now()
	return c.save(ctx, t, EventTournament)
}
