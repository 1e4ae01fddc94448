package tournament

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/scheduler"
)

// GenerateSchedule builds and stores a new schedule from the active roster,
// replacing any previous one. A positive numRounds is saved as the
// tournament's requested round count; zero uses the saved count.
func (c *Controller) GenerateSchedule(ctx context.Context, code model.TournamentCode, numRounds int) (*model.Schedule, error) {
	if numRounds < 0 {
		return nil, model.ErrInvalidRounds
	}

	unlock := c.locks.lock(code)
	defer unlock()

	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if numRounds > 0 {
		t.NumRounds = numRounds
	}

	active := activePlayers(roster)
	plans := buildPlans(t, active)
	if err := checkPlans(t, plans); err != nil {
		return nil, err
	}

	divisions := c.scheduler.Partition(t.Mode, plans, t.NumRounds)
	rounds := scheduler.Merge(divisions, idlePlayers(active, divisions))
	if len(rounds) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	for i := range rounds {
		for j := range rounds[i].Matches {
			rounds[i].Matches[j].ID = xid.New().String()
		}
	}

	now := c.clock.Now()
	schedule := &model.Schedule{
		TournamentCode: code,
		Mode:           t.Mode,
		Rounds:         rounds,
		GeneratedAt:    now,
	}
	t.ScheduleGenerated = true
	t.UpdatedAt = now
	if err := c.storage.SaveTournamentWithSchedule(ctx, t, schedule); err != nil {
		c.logger.Error("failed to save schedule",
			slog.String("code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.notifier.Notify(Event{Type: EventSchedule, Code: code})

	c.logger.Info("schedule generated",
		slog.String("code", string(code)),
		slog.String("mode", string(t.Mode)),
		slog.Int("players", len(active)),
		slog.Int("divisions", len(divisions)),
		slog.Int("rounds", len(rounds)),
	)

	return schedule, nil
}

// GetSchedule retrieves the stored schedule for a tournament
func (c *Controller) GetSchedule(ctx context.Context, code model.TournamentCode) (*model.Schedule, error) {
	return c.storage.GetSchedule(ctx, code)
}

// SuggestRounds estimates how many rounds a schedule for the current roster
// needs. With divisions, the largest division estimate wins.
func (c *Controller) SuggestRounds(ctx context.Context, code model.TournamentCode) (scheduler.Estimate, error) {
	t, roster, err := c.load(ctx, code)
	if err != nil {
		return scheduler.Estimate{}, err
	}

	var best scheduler.Estimate
	for _, plan := range buildPlans(t, activePlayers(roster)) {
		est := scheduler.EstimateRounds(len(plan.Players), plan.Courts(), t.Mode)
		if best.Description == "" || est.Rounds > best.Rounds {
			best = est
		}
	}
	if best.Description == "" {
		best = scheduler.EstimateRounds(0, t.Courts, t.Mode)
	}
	return best, nil
}

// activePlayers returns the active players in roster order
func activePlayers(roster []*model.Player) []*model.Player {
	var active []*model.Player
	for _, p := range roster {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// buildPlans splits active players into scheduler input. Without divisions
// the whole tournament is one plan over all courts; with divisions each gets
// its assigned players and unassigned players are left out.
func buildPlans(t *model.Tournament, active []*model.Player) []scheduler.DivisionPlan {
	if len(t.Divisions) == 0 {
		plan := scheduler.DivisionPlan{CourtStart: 1, CourtEnd: t.Courts}
		for _, p := range active {
			plan.Players = append(plan.Players, p.ID)
		}
		plan.Teams = teamsFor(t, plan.Players)
		return []scheduler.DivisionPlan{plan}
	}

	plans := make([]scheduler.DivisionPlan, 0, len(t.Divisions))
	for _, d := range t.Divisions {
		plan := scheduler.DivisionPlan{
			DivisionID: d.ID,
			CourtStart: d.CourtStart,
			CourtEnd:   d.CourtEnd,
		}
		for _, p := range active {
			if p.DivisionID == d.ID {
				plan.Players = append(plan.Players, p.ID)
			}
		}
		plan.Teams = teamsFor(t, plan.Players)
		plans = append(plans, plan)
	}
	return plans
}

// teamsFor returns fixed-mode teams covering players: registered teams whose
// members are both present, then the remaining players paired in order
func teamsFor(t *model.Tournament, players []model.PlayerID) []model.Team {
	if t.Mode != model.ModeFixed {
		return nil
	}

	present := make(map[model.PlayerID]bool, len(players))
	for _, p := range players {
		present[p] = true
	}

	var teams []model.Team
	paired := make(map[model.PlayerID]bool)
	for _, rt := range t.Teams {
		if present[rt.Players[0]] && present[rt.Players[1]] {
			teams = append(teams, rt.Players)
			paired[rt.Players[0]] = true
			paired[rt.Players[1]] = true
		}
	}

	var leftover []model.PlayerID
	for _, p := range players {
		if !paired[p] {
			leftover = append(leftover, p)
		}
	}
	return append(teams, scheduler.ConsecutiveTeams(leftover)...)
}

// checkPlans rejects rosters the engine would silently skip
func checkPlans(t *model.Tournament, plans []scheduler.DivisionPlan) error {
	schedulable := 0
	for _, plan := range plans {
		n := len(plan.Players)
		if n < 4 {
			continue
		}
		if t.Mode == model.ModeFixed && n%2 != 0 {
			if plan.DivisionID == "" {
				return model.ErrOddPlayerCount
			}
			return fmt.Errorf("%w: division %q has %d players",
				model.ErrOddPlayerCount, t.GetDivision(plan.DivisionID).Name, n)
		}
		schedulable++
	}
	if schedulable == 0 {
		return model.ErrInsufficientPlayers
	}
	return nil
}

// idlePlayers returns active players not covered by any scheduled division
func idlePlayers(active []*model.Player, divisions []scheduler.DivisionSchedule) []model.PlayerID {
	scheduled := make(map[model.PlayerID]bool)
	for _, d := range divisions {
		for _, p := range d.Players {
			scheduled[p] = true
		}
	}

	var idle []model.PlayerID
	for _, p := range active {
		if !scheduled[p.ID] {
			idle = append(idle, p.ID)
		}
	}
	return idle
}
