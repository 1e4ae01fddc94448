package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintSchedule outputs a schedule, naming players from names where known
func (o *Output) PrintSchedule(s response.Schedule, names map[string]string) {
	if o.format == "json" {
		o.printJSON(s)
		return
	}
	o.printSchedule(s, names)
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Tournament:
		o.printTournament(v)
	case response.Roster:
		o.printRoster(v)
	case response.Player:
		o.printPlayer(v)
	case response.PlayerChange:
		o.printPlayerChange(v)
	case response.Approved:
		fmt.Fprintf(o.w, "Approved %d waitlisted players\n", v.Approved)
	case response.Assigned:
		fmt.Fprintf(o.w, "Assigned %d players\n", v.Assigned)
	case response.Match:
		fmt.Fprintf(o.w, "Match %s on court %d: %s\n", v.ID, v.Court, matchResult(v))
	case response.Rankings:
		o.printRankings(v)
	case response.Division:
		o.printDivision(v)
	case response.Team:
		fmt.Fprintf(o.w, "Team: %s (%s)\n", v.Name, v.ID)
	case response.Estimate:
		o.printEstimate(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case WatchEvent:
		fmt.Fprintf(o.w, "%s: %s changed\n", v.Code, v.Type)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// WatchEvent is one change notification from the event stream
type WatchEvent struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printTournament(t response.Tournament) {
	fmt.Fprintf(o.w, "Tournament: %s (%s)\n", t.Name, t.Code)
	fmt.Fprintf(o.w, "Mode: %s\n", t.Mode)
	fmt.Fprintf(o.w, "Courts: %d\n", t.Courts)
	fmt.Fprintf(o.w, "Max Players: %d\n", t.MaxPlayers)
	if t.NumRounds > 0 {
		fmt.Fprintf(o.w, "Rounds: %d\n", t.NumRounds)
	}
	if len(t.Divisions) > 0 {
		fmt.Fprintf(o.w, "Divisions (%d):\n", len(t.Divisions))
		for _, d := range t.Divisions {
			fmt.Fprintf(o.w, "  - %s (%s) courts %d-%d\n", d.Name, d.ID, d.CourtStart, d.CourtEnd)
		}
	}
	if len(t.Teams) > 0 {
		fmt.Fprintf(o.w, "Teams (%d):\n", len(t.Teams))
		for _, tm := range t.Teams {
			fmt.Fprintf(o.w, "  - %s (%s)\n", tm.Name, tm.ID)
		}
	}
	if t.ScheduleGenerated {
		fmt.Fprintln(o.w, "Schedule: generated")
	}
	if t.Started {
		fmt.Fprintln(o.w, "Started: yes")
	}
}

func (o *Output) printRoster(r response.Roster) {
	fmt.Fprintf(o.w, "Active: %d/%d  Waitlisted: %d\n", r.Active, r.MaxPlayers, r.Waitlisted)
	for _, p := range r.Players {
		fmt.Fprintf(o.w, "  - %s (%s)%s\n", p.Name, p.ID, playerStatus(p))
	}
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)%s\n", p.Name, p.ID, playerStatus(p))
}

func (o *Output) printPlayerChange(c response.PlayerChange) {
	if c.Player != nil {
		o.printPlayer(*c.Player)
	}
	if c.Promoted != nil {
		fmt.Fprintf(o.w, "Promoted from waitlist: %s (%s)\n", c.Promoted.Name, c.Promoted.ID)
	}
}

func playerStatus(p response.Player) string {
	var tags []string
	switch {
	case p.WaitlistPosition > 0:
		tags = append(tags, fmt.Sprintf("waitlist #%d", p.WaitlistPosition))
	case !p.IsPlaying:
		tags = append(tags, "sitting out")
	}
	if p.DivisionID != "" {
		tags = append(tags, "division "+p.DivisionID)
	}
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}

func (o *Output) printDivision(d response.Division) {
	fmt.Fprintf(o.w, "Division: %s (%s)\n", d.Name, d.ID)
	fmt.Fprintf(o.w, "Courts: %d-%d\n", d.CourtStart, d.CourtEnd)
	fmt.Fprintf(o.w, "Color: %s\n", d.Color)
}

func (o *Output) printEstimate(e response.Estimate) {
	fmt.Fprintln(o.w, e.Description)
	if e.Rounds > 0 {
		fmt.Fprintf(o.w, "Suggested rounds: %d (minimum %d)\n", e.Rounds, e.MinRounds)
	}
}

func (o *Output) printSchedule(s response.Schedule, names map[string]string) {
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	fmt.Fprintf(o.w, "Schedule (%s, %d rounds)\n", s.Mode, len(s.Rounds))
	for _, r := range s.Rounds {
		fmt.Fprintf(o.w, "\nRound %d\n", r.Number)
		for _, m := range r.Matches {
			line := fmt.Sprintf("  Court %d: %s & %s  vs  %s & %s", m.Court,
				name(m.Team1[0]), name(m.Team1[1]), name(m.Team2[0]), name(m.Team2[1]))
			if m.Completed {
				line += "  " + matchResult(m)
			}
			if m.ID != "" {
				line += "  (" + m.ID + ")"
			}
			fmt.Fprintln(o.w, line)
		}
		if len(r.Sitting) > 0 {
			sitting := make([]string, len(r.Sitting))
			for i, id := range r.Sitting {
				sitting[i] = name(id)
			}
			fmt.Fprintf(o.w, "  Sitting: %s\n", strings.Join(sitting, ", "))
		}
	}
}

// matchResult formats a match score, or "unplayed" before one is entered
func matchResult(m response.Match) string {
	if !m.Completed || m.Team1Score == nil || m.Team2Score == nil {
		return "unplayed"
	}
	return fmt.Sprintf("%d-%d", *m.Team1Score, *m.Team2Score)
}

func (o *Output) printRankings(r response.Rankings) {
	if len(r.Rankings) == 0 {
		fmt.Fprintln(o.w, "No active players")
		return
	}
	fmt.Fprintf(o.w, "%-4s %-20s %4s %4s %6s %5s  %s\n", "#", "Player", "W", "L", "Diff", "GP", "Division")
	for i, s := range r.Rankings {
		fmt.Fprintf(o.w, "%-4d %-20s %4d %4d %+6d %5d  %s\n",
			i+1, s.Name, s.Wins, s.Losses, s.PointDifferential, s.GamesPlayed, s.DivisionName)
	}
}
