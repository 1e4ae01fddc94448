package tournament

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/rankings"
)

// RecordScore enters the final score of a scheduled match and marks it
// completed. Entering a score again overwrites the previous one.
func (c *Controller) RecordScore(ctx context.Context, code model.TournamentCode, matchID string, team1, team2 int) (*model.Match, error) {
	if team1 < 0 || team2 < 0 {
		return nil, model.ErrInvalidScore
	}

	unlock := c.locks.lock(code)
	defer unlock()

	t, err := c.storage.GetTournament(ctx, code)
	if err != nil {
		return nil, err
	}
	schedule, err := c.storage.GetSchedule(ctx, code)
	if err != nil {
		return nil, err
	}
	match := schedule.FindMatch(matchID)
	if match == nil {
		return nil, model.ErrMatchNotFound
	}

	match.Score = &model.MatchScore{Team1: team1, Team2: team2}
	match.Completed = true

	t.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveTournamentWithSchedule(ctx, t, schedule); err != nil {
		c.logger.Error("failed to save score",
			slog.String("code", string(code)),
			slog.String("match_id", matchID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.notifier.Notify(Event{Type: EventScore, Code: code})

	c.logger.Info("score recorded",
		slog.String("code", string(code)),
		slog.String("match_id", matchID),
		slog.Int("team1", team1),
		slog.Int("team2", team2),
	)
	return match, nil
}

// Rankings returns standings for the active roster from the entered scores.
// Without a schedule every player has an empty record.
func (c *Controller) Rankings(ctx context.Context, code model.TournamentCode) ([]rankings.Standing, error) {
	t, roster, err := c.load(ctx, code)
	if err != nil {
		return nil, err
	}
	schedule, err := c.storage.GetSchedule(ctx, code)
	if err != nil && !errors.Is(err, model.ErrScheduleNotFound) {
		return nil, err
	}
	return rankings.Compute(roster, t.Divisions, schedule), nil
}
