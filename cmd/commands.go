package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/render"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/source"
	app "github.com/tmarshall07/usau-rankings-algorithm/internal/app"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/config"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/season"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// timeNow is replaced in tests.
var timeNow = time.Now

// errCustomRejected marks a custom run whose input was rejected.
var errCustomRejected = errors.New("custom rating rejected")

// cli holds state shared by every command.
type cli struct {
	out        io.Writer
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "usau-rankings",
		Short:         "Rate ultimate teams with the USAU strength of opponent algorithm",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(c.rankCmd())
	root.AddCommand(c.customCmd())
	root.AddCommand(c.generateCmd())
	root.AddCommand(c.versionCmd())
	return root
}

// load reads the configuration and applies the log level.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	c.cfg = cfg
	return nil
}

// service builds the rating service from the configuration.
func (c *cli) service() *app.Service {
	workers := c.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return app.New(
		app.WithLogger(logger.Named("rankings")),
		app.WithWorkerCount(workers),
		app.WithRatingOptions(c.cfg.RatingOptions()...),
	)
}

func (c *cli) loader() *source.Loader {
	return source.NewLoader(
		source.WithLogger(logger.Named("source")),
		source.WithSchemaValidation(c.cfg.SchemaValidation),
	)
}

// flush writes the metrics textfile when one is configured.
func (c *cli) flush() error {
	if c.cfg.MetricsFile == "" {
		return nil
	}
	return metrics.WriteTextfile(c.cfg.MetricsFile)
}

// ratingFlags binds flags that override rating settings.
type ratingFlags struct {
	division      string
	noDateWeight  bool
	noScoreWeight bool
	maxIterations int
	workers       int
	format        string
}

// bind registers every rating flag.
func (f *ratingFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.division, "division", "", "division: mixed, mens, womens, college-mens, college-womens")
	cmd.Flags().BoolVar(&f.noDateWeight, "no-date-weight", false, "disable date weighting")
	cmd.Flags().BoolVar(&f.noScoreWeight, "no-score-weight", false, "disable score weighting")
	f.bindRun(cmd)
}

// bindRun registers the flags that matter when weighting is off.
func (f *ratingFlags) bindRun(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "cap on rating rounds")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "goroutines per rating round (0 uses every CPU)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: table, json, yaml")
}

// apply copies changed flags into cfg and validates the result.
func (f *ratingFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("division") {
		cfg.Division = f.division
	}
	if f.noDateWeight {
		cfg.EnableDateWeight = false
	}
	if f.noScoreWeight {
		cfg.EnableScoreWeight = false
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = f.maxIterations
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("format") {
		cfg.OutputFormat = f.format
	}
	return cfg.Validate()
}

func (c *cli) rankCmd() *cobra.Command {
	var (
		rf   ratingFlags
		top  int
		team string
		full bool
	)
	cmd := &cobra.Command{
		Use:   "rank <games-file>",
		Short: "Rate teams from a JSON, YAML or CSV games file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rf.apply(cmd, c.cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				c.cfg.TopN = top
			}
			ctx := cmd.Context()

			ds, err := c.loader().LoadGames(ctx, args[0])
			if err != nil {
				return err
			}
			svc := c.service()
			report, err := svc.Rank(ctx, ds.Teams, ds.Games)
			if err != nil {
				return err
			}
			logger.Named("rankings").Debug(ctx, "service stats", logger.Any("stats", svc.GetStats(ctx)))

			format, err := render.ParseFormat(c.cfg.OutputFormat)
			if err != nil {
				return err
			}
			if full {
				err = render.WriteResult(cmd.OutOrStdout(), format, report.Result)
			} else {
				var entries []types.Entry
				entries, err = selectEntries(ctx, svc, report, team, c.cfg.TopN)
				if err != nil {
					return err
				}
				err = render.WriteStandings(cmd.OutOrStdout(), format, standings(report, entries))
			}
			if err != nil {
				return err
			}
			return c.flush()
		},
	}
	rf.bind(cmd)
	cmd.Flags().IntVar(&top, "top", 0, "print only the top N teams (0 prints all)")
	cmd.Flags().StringVar(&team, "team", "", "print only this team's rank")
	cmd.Flags().BoolVar(&full, "full", false, "print every team's game records (json or yaml)")
	cmd.MarkFlagsMutuallyExclusive("top", "team", "full")
	return cmd
}

// selectEntries picks the standings to print: one team, the top n when n is
// positive, or every rated team.
func selectEntries(ctx context.Context, svc *app.Service, report *app.Report, team string, n int) ([]types.Entry, error) {
	switch {
	case team != "":
		e, err := svc.TeamRank(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", team, err)
		}
		return []types.Entry{e}, nil
	case n > 0:
		return svc.TopN(ctx, n)
	default:
		return report.Standings, nil
	}
}

// standings converts a report and the selected entries to printable form.
func standings(report *app.Report, entries []types.Entry) *render.Standings {
	return &render.Standings{
		RunID:        report.RunID.String(),
		Division:     string(report.Division),
		Iterations:   report.Result.Iterations,
		Converged:    report.Result.Converged,
		Entries:      entries,
		InvalidTeams: report.Result.InvalidTeams,
		InvalidGames: report.Result.InvalidGames,
		Diagnostics:  report.Result.Diagnostics,
	}
}

func (c *cli) customCmd() *cobra.Command {
	var rf ratingFlags
	cmd := &cobra.Command{
		Use:   "custom <rows-file>",
		Short: "Rate raw score rows without a team list; weighting is off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rf.apply(cmd, c.cfg); err != nil {
				return err
			}
			ctx := cmd.Context()

			rows, err := c.loader().LoadRows(ctx, args[0])
			if err != nil {
				return err
			}
			res := c.service().Custom(ctx, rows)

			format, err := render.ParseFormat(c.cfg.OutputFormat)
			if err != nil {
				return err
			}
			if err := render.WriteCustom(cmd.OutOrStdout(), format, &res); err != nil {
				return err
			}
			if err := c.flush(); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("%w: %s", errCustomRejected, res.Message)
			}
			return nil
		},
	}
	rf.bindRun(cmd)
	return cmd
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		teams, rounds, year int
		seed                int64
		division, output    string
		missing             float64
		verify              bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic season as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := model.ParseDivision(division)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("year") {
				year = rating.RankingsYear(d, timeNow())
			}

			s, err := season.NewGenerator(
				season.WithTeams(teams),
				season.WithRounds(rounds),
				season.WithSeed(seed),
				season.WithDivision(d),
				season.WithYear(year),
				season.WithMissingScoreRate(missing),
				season.WithLogger(logger.Named("season")),
			).Generate(cmd.Context())
			if err != nil {
				return err
			}

			if verify {
				if err := c.verifySeason(cmd, s, d); err != nil {
					return err
				}
			}

			ds := &source.Dataset{Teams: s.Teams, Games: s.Games}
			if output == "" || output == "-" {
				return source.EncodeGames(cmd.OutOrStdout(), source.FormatJSON, ds)
			}
			format, err := source.FormatOf(output)
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := source.EncodeGames(f, format, ds); err != nil {
				_ = f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			return f.Close()
		},
	}
	cmd.Flags().IntVar(&teams, "teams", 16, "number of teams")
	cmd.Flags().IntVar(&rounds, "rounds", 8, "games per team")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&year, "year", 0, "season year (default: current rankings year)")
	cmd.Flags().StringVar(&division, "division", "mixed", "division whose calendar dates the games")
	cmd.Flags().Float64Var(&missing, "missing-rate", 0, "share of games without a reported score")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .yaml); stdout when empty")
	cmd.Flags().BoolVar(&verify, "verify", false, "rate the season and report how often ratings order teams like their hidden strengths")
	return cmd
}

// verifySeason rates a generated season and writes the pairwise agreement
// between ratings and hidden strengths to stderr.
func (c *cli) verifySeason(cmd *cobra.Command, s *season.Season, d model.Division) error {
	opts := append(c.cfg.RatingOptions(), rating.WithDivision(d), rating.WithLogger(logger.Named("engine")))
	res, err := rating.NewEngine(opts...).Run(cmd.Context(), s.Teams, s.Games)
	if err != nil {
		return fmt.Errorf("verify season: %w", err)
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "agreement %.3f over %d rated teams in %d rounds\n",
		season.Agreement(s.Strength, res.Teams), len(res.Teams), res.Iterations)
	return err
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
