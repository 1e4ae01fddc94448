// Package scheduler turns a player list into rounds of doubles matches.
//
// Two pairing modes are supported. Rotating mode reshuffles partners every
// round, greedily covering as many distinct partnerships as it can while
// keeping games played even. Fixed mode keeps partners constant and plays a
// full round robin between teams using the circle method. Both are pure,
// synchronous computations; the only shared input is the injected random
// source, which makes results reproducible under a fixed seed.
package scheduler

import (
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// Service generates schedules. A Service is not safe for concurrent use
// when its random source is not.
type Service struct {
	random random.Random
}

// New creates a new scheduler Service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// Generate dispatches to the scheduler for the given mode.
// Teams are only consulted in fixed mode.
func (s *Service) Generate(mode model.Mode, players []model.PlayerID, courts int, teams []model.Team) []model.Round {
	switch mode {
	case model.ModeFixed:
		return s.Fixed(players, courts, teams)
	default:
		return s.Rotating(players, courts)
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
