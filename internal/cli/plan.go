package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/scheduler"
)

// planOptions are the inputs to an offline schedule
type planOptions struct {
	mode    model.Mode
	players []string
	count   int
	courts  int
	rounds  int
	seed    uint64
	teams   []string
}

func newPlanCmd() *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan <rotating|fixed> [player]...",
		Short: "Print a schedule for a list of players without a server",
		Long: heredoc.Doc(`
			plan generates a schedule locally. Players are given as arguments,
			or numbered automatically with --players.

			In rotating mode partners change every round so that everyone
			partners with as many different players as possible. In fixed mode
			players are paired once (in the order given, or with --team) and
			every team meets every other team exactly once.
		`),
		Example: heredoc.Doc(`
			rrdoubles plan rotating --players 8 --courts 2
			rrdoubles plan fixed Ann Bob Cat Dan Eve Fay --team Ann,Eve
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.mode = model.Mode(args[0])
			opts.players = args[1:]

			s, err := opts.plan()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintSchedule(response.ScheduleFromModel(s), nil)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.count, "players", 0, "Number of players to generate names for")
	cmd.Flags().IntVar(&opts.courts, "courts", 1, "Number of courts")
	cmd.Flags().IntVar(&opts.rounds, "rounds", 0, "Number of rounds (default: natural length)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for a reproducible schedule (default: random)")
	cmd.Flags().StringArrayVar(&opts.teams, "team", nil, "Fixed team as two comma-separated players, repeatable")

	return cmd
}

// plan builds the schedule described by the options
func (o planOptions) plan() (*model.Schedule, error) {
	if !o.mode.Valid() {
		return nil, fmt.Errorf("unknown mode %q: use rotating or fixed", o.mode)
	}
	if o.courts < 1 {
		return nil, model.ErrInvalidCourts
	}
	if o.rounds < 0 {
		return nil, model.ErrInvalidRounds
	}

	players := make([]model.PlayerID, 0, len(o.players))
	for _, name := range o.players {
		players = append(players, model.PlayerID(name))
	}
	for i := range o.count {
		players = append(players, model.PlayerID("P"+strconv.Itoa(i+1)))
	}
	if len(players) < 4 {
		return nil, model.ErrInsufficientPlayers
	}
	seen := make(map[model.PlayerID]bool, len(players))
	for _, p := range players {
		if seen[p] {
			return nil, fmt.Errorf("player %s listed twice", p)
		}
		seen[p] = true
	}

	var teams []model.Team
	if o.mode == model.ModeFixed {
		if len(players)%2 != 0 {
			return nil, model.ErrOddPlayerCount
		}
		var err error
		if teams, err = parseTeams(o.teams, players); err != nil {
			return nil, err
		}
	}

	var rnd random.Random = random.New()
	if o.seed != 0 {
		rnd = random.NewSeeded(o.seed)
	}
	svc := scheduler.New(rnd)

	plan := scheduler.DivisionPlan{CourtStart: 1, CourtEnd: o.courts, Players: players, Teams: teams}
	divisions := svc.Partition(o.mode, []scheduler.DivisionPlan{plan}, o.rounds)

	return &model.Schedule{
		Mode:        o.mode,
		Rounds:      scheduler.Merge(divisions, nil),
		GeneratedAt: time.Now(),
	}, nil
}

// parseTeams turns "a,b" flags into teams; remaining players are paired in order
func parseTeams(specs []string, players []model.PlayerID) ([]model.Team, error) {
	known := make(map[model.PlayerID]bool, len(players))
	for _, p := range players {
		known[p] = true
	}

	used := map[model.PlayerID]bool{}
	var teams []model.Team
	for _, spec := range specs {
		a, b, ok := strings.Cut(spec, ",")
		t := model.Team{model.PlayerID(strings.TrimSpace(a)), model.PlayerID(strings.TrimSpace(b))}
		if !ok || t[0] == t[1] {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidTeam, spec)
		}
		for _, p := range t {
			if !known[p] {
				return nil, fmt.Errorf("%w: %s", model.ErrPlayerNotFound, p)
			}
			if used[p] {
				return nil, fmt.Errorf("%w: %s", model.ErrTeamConflict, p)
			}
			used[p] = true
		}
		teams = append(teams, t)
	}

	var rest []model.PlayerID
	for _, p := range players {
		if !used[p] {
			rest = append(rest, p)
		}
	}
	return append(teams, scheduler.ConsecutiveTeams(rest)...), nil
}

func newEstimateCmd() *cobra.Command {
	var (
		players int
		courts  int
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Suggest a round count for a number of players and courts",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model.Mode(mode)
			if !m.Valid() {
				return fmt.Errorf("unknown mode %q: use rotating or fixed", mode)
			}

			est := scheduler.EstimateRounds(players, courts, m)
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(response.EstimateFromModel(est))
			return nil
		},
	}

	cmd.Flags().IntVar(&players, "players", 8, "Number of active players")
	cmd.Flags().IntVar(&courts, "courts", 1, "Number of courts")
	cmd.Flags().StringVar(&mode, "mode", string(model.ModeRotating), "Pairing mode: rotating, fixed")

	return cmd
}
