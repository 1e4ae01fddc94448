package redis

import (
	"fmt"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// Key prefix for all tournament data
const keyPrefix = "rrdoubles"

// tournamentKey returns the Redis key for a Tournament
func tournamentKey(code model.TournamentCode) string {
	return fmt.Sprintf("%s:tournament:%s", keyPrefix, code)
}

// rosterKey returns the Redis key for a tournament's player list
func rosterKey(code model.TournamentCode) string {
	return fmt.Sprintf("%s:roster:%s", keyPrefix, code)
}

// scheduleKey returns the Redis key for a tournament's generated Schedule
func scheduleKey(code model.TournamentCode) string {
	return fmt.Sprintf("%s:schedule:%s", keyPrefix, code)
}
