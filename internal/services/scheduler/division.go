package scheduler

import (
	"cmp"
	"slices"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// DivisionPlan is the input for scheduling one division on its court range
type DivisionPlan struct {
	DivisionID string
	CourtStart int
	CourtEnd   int
	Players    []model.PlayerID
	Teams      []model.Team // Fixed mode only; empty pairs players consecutively
}

// Courts returns the number of courts in the plan's range
func (p DivisionPlan) Courts() int {
	return p.CourtEnd - p.CourtStart + 1
}

// DivisionSchedule is one division's rounds, with courts already shifted
// into the division's range
type DivisionSchedule struct {
	DivisionID string
	Players    []model.PlayerID
	Rounds     []model.Round
}

// Partition schedules each division independently on its own courts.
//
// Divisions with fewer than 4 players, or for which the mode yields no
// rounds, are skipped. When numRounds is positive each division is
// truncated or cyclically extended to exactly that many rounds.
func (s *Service) Partition(mode model.Mode, plans []DivisionPlan, numRounds int) []DivisionSchedule {
	out := make([]DivisionSchedule, 0, len(plans))
	for _, plan := range plans {
		if len(plan.Players) < 4 || plan.Courts() <= 0 {
			continue
		}
		rounds := s.Generate(mode, plan.Players, plan.Courts(), plan.Teams)
		if len(rounds) == 0 {
			continue
		}

		offset := plan.CourtStart - 1
		for i := range rounds {
			for j := range rounds[i].Matches {
				rounds[i].Matches[j].Court += offset
				rounds[i].Matches[j].DivisionID = plan.DivisionID
			}
		}

		out = append(out, DivisionSchedule{
			DivisionID: plan.DivisionID,
			Players:    plan.Players,
			Rounds:     Reconcile(rounds, numRounds),
		})
	}
	return out
}

// Reconcile fits rounds to target: truncating when there are too many, or
// repeating earlier rounds in order when there are too few. Round numbers
// are reassigned 1..target. A non-positive target returns rounds unchanged.
func Reconcile(rounds []model.Round, target int) []model.Round {
	if target <= 0 || len(rounds) == 0 || len(rounds) == target {
		return rounds
	}
	if len(rounds) > target {
		return rounds[:target]
	}

	natural := len(rounds)
	out := make([]model.Round, 0, target)
	out = append(out, rounds...)
	for i := natural; i < target; i++ {
		r := rounds[i%natural].Clone()
		r.Number = i + 1
		out = append(out, r)
	}
	return out
}

// Merge combines per-division schedules into tournament rounds.
//
// Round k holds every division's round k, matches ordered by court. A
// division that has run out of rounds sits all its players. Idle players,
// such as those not assigned to any scheduled division, sit every round.
func Merge(divisions []DivisionSchedule, idle []model.PlayerID) []model.Round {
	total := 0
	for _, d := range divisions {
		total = max(total, len(d.Rounds))
	}

	rounds := make([]model.Round, 0, total)
	for k := 0; k < total; k++ {
		round := model.Round{Number: k + 1}
		for _, d := range divisions {
			if k >= len(d.Rounds) {
				round.Sitting = append(round.Sitting, d.Players...)
				continue
			}
			round.Matches = append(round.Matches, d.Rounds[k].Matches...)
			round.Sitting = append(round.Sitting, d.Rounds[k].Sitting...)
		}
		round.Sitting = append(round.Sitting, idle...)
		slices.SortStableFunc(round.Matches, func(a, b model.Match) int {
			return cmp.Compare(a.Court, b.Court)
		})
		rounds = append(rounds, round)
	}
	return rounds
}
