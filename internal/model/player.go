package model

import "time"

// PlayerID uniquely identifies a player within the system
type PlayerID string

// Player is a roster record for one tournament signup
type Player struct {
	ID             PlayerID
	TournamentCode TournamentCode
	Name           string
	IsPlaying      bool
	// WaitlistPosition is the 1-based rank in the overflow queue, 0 when not waitlisted
	WaitlistPosition int
	DivisionID       string // Empty when unassigned
	OrderNum         int    // Signup order, used for stable roster ordering
	CreatedAt        time.Time
}

// IsWaitlisted returns true if the player is queued on the waitlist
func (p *Player) IsWaitlisted() bool {
	return p.WaitlistPosition > 0
}

// IsActive returns true if the player holds an active roster spot and is playing
func (p *Player) IsActive() bool {
	return !p.IsWaitlisted() && p.IsPlaying
}

// CloneRoster returns a copy of the roster with each player record copied
func CloneRoster(players []*Player) []*Player {
	out := make([]*Player, len(players))
	for i, p := range players {
		cp := *p
		out[i] = &cp
	}
	return out
}
