package scheduler

import (
	"fmt"
	"math"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// rotatingSlack is the extra fraction of rounds the greedy rotating
// scheduler typically needs beyond the theoretical minimum
const rotatingSlack = 0.3

// Estimate is a suggested round count for a player/court configuration
type Estimate struct {
	Rounds      int
	MinRounds   int
	Description string
}

// EstimateRounds suggests how many rounds a schedule will need.
// It does not generate a schedule.
func EstimateRounds(numPlayers, courts int, mode model.Mode) Estimate {
	if numPlayers < 4 {
		return Estimate{Description: "Need at least 4 players"}
	}
	maxCourts := min(courts, numPlayers/4)
	if maxCourts <= 0 {
		return Estimate{Description: "Need at least 1 court"}
	}

	if mode == model.ModeFixed {
		teams := numPlayers / 2
		matchups := teams * (teams - 1) / 2
		rounds := ceilDiv(matchups, maxCourts)
		return Estimate{
			Rounds:    rounds,
			MinRounds: rounds,
			Description: fmt.Sprintf("%d rounds for %d teams to each play every other team once",
				rounds, teams),
		}
	}

	pairs := numPlayers * (numPlayers - 1) / 2
	minRounds := ceilDiv(pairs, maxCourts*2)
	rounds := minRounds + int(math.Ceil(float64(minRounds)*rotatingSlack))
	return Estimate{
		Rounds:    rounds,
		MinRounds: minRounds,
		Description: fmt.Sprintf("~%d-%d rounds for every player to partner with every other player",
			minRounds, rounds),
	}
}
