package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/cache"
	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/ingest/sleeper"
	"github.com/Haynesmodel/DarlingDraft/internal/logging"
	"github.com/Haynesmodel/DarlingDraft/internal/merge"
	"github.com/Haynesmodel/DarlingDraft/internal/publisher"
	"github.com/Haynesmodel/DarlingDraft/internal/schedule"
	"github.com/Haynesmodel/DarlingDraft/internal/store"
	"github.com/Haynesmodel/DarlingDraft/internal/store/repository"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	appName    = "h2h-sync"
	appVersion = "1.0.0"
)

// Exit codes.
const (
	exitOK = iota
	exitSchema
	exitConfig
	exitMappingIncomplete
	exitRuntime
	exitUsage
)

const sideEffectTimeout = 30 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	defer logger.Sync()

	s := newSyncer(ctx, opts, logger, stdout)
	defer s.Close()

	return exitCode(s.Run(ctx), stderr)
}

// syncer runs one invocation of the tool.
type syncer struct {
	opts   Options
	logger *zap.Logger
	stdout io.Writer

	redis *cache.RedisCache
	api   *sleeper.Client
}

func newSyncer(ctx context.Context, opts Options, logger *zap.Logger, stdout io.Writer) *syncer {
	s := &syncer{opts: opts, logger: logger, stdout: stdout}

	clientOpts := []sleeper.Option{sleeper.WithLogger(logger)}
	if opts.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache or events", zap.Error(err))
		} else {
			s.redis = rc
			clientOpts = append(clientOpts, sleeper.WithCache(rc, opts.CacheTTL))
		}
	}
	s.api = sleeper.New(opts.APIBase, clientOpts...)

	return s
}

func (s *syncer) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
}

func (s *syncer) Run(ctx context.Context) error {
	s.logger.Info("starting",
		zap.String("app", appName),
		zap.String("version", appVersion),
		zap.String("league", s.opts.LeagueID),
		zap.Int("season", s.opts.Season),
	)

	if s.opts.ListTeams {
		return s.listTeams(ctx)
	}

	records, err := history.Load(s.opts.InputPath)
	if err != nil {
		return err
	}

	mapping, err := history.LoadMapping(s.opts.MapPath)
	if err != nil {
		return err
	}

	teams, err := sleeper.ListTeams(ctx, s.api, s.opts.LeagueID)
	if err != nil {
		return err
	}

	names, err := mapping.Resolve(teams)
	if err != nil {
		return err
	}

	engine := merge.NewEngine(s.api, schedule.NewCalendar(), merge.NewLogReporter(s.logger))
	state, summary, err := engine.Merge(ctx, merge.NewState(records), merge.Request{
		LeagueID:   s.opts.LeagueID,
		Season:     s.opts.Season,
		Weeks:      s.opts.Weeks,
		OnlyPlayed: s.opts.OnlyPlayed,
		Cutoff:     s.opts.Cutoff,
		Names:      names,
	})
	if err != nil {
		return err
	}

	final := history.Sort(state.Records, s.opts.Sort, s.opts.Season)
	if err := history.Save(s.opts.OutputPath, final); err != nil {
		return err
	}

	s.logger.Info("wrote store",
		zap.String("path", s.opts.OutputPath),
		zap.Int("records", len(final)),
		zap.Int("appended", summary.Count()),
		zap.Int("weeks_processed", summary.WeeksProcessed),
		zap.Int("weeks_skipped", summary.WeeksSkipped),
		zap.Int("matchups_skipped", summary.MatchupsSkipped),
	)

	s.mirror(ctx, final)
	s.publish(ctx, summary)

	fmt.Fprintf(s.stdout, "Done. Appended %d new games. Wrote: %s. Sort mode: %s. Only-played: %t. Cutoff: %s\n",
		summary.Count(), s.opts.OutputPath, s.opts.Sort, s.opts.OnlyPlayed, s.opts.CutoffLabel())

	return nil
}

func (s *syncer) listTeams(ctx context.Context) error {
	teams, err := sleeper.ListTeams(ctx, s.api, s.opts.LeagueID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(teams); err != nil {
		return fmt.Errorf("encode teams: %w", err)
	}

	buf.WriteString("\nTip: create a mapping JSON like:\n")
	writeTemplate(&buf, teams)

	_, err = s.stdout.Write(buf.Bytes())
	return err
}

// writeTemplate prints an empty mapping in roster order.
func writeTemplate(buf *bytes.Buffer, teams []sleeper.TeamDescriptor) {
	tmpl := history.Template(teams)
	if len(teams) == 0 {
		buf.WriteString("{}\n")
		return
	}

	buf.WriteString("{\n")
	for i, t := range teams {
		key, _ := json.Marshal(fmt.Sprint(t.RosterID))
		value, _ := json.Marshal(tmpl[fmt.Sprint(t.RosterID)])
		fmt.Fprintf(buf, "  %s: %s", key, value)
		if i < len(teams)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
}

// mirror copies the written store into Postgres. Failures are logged only.
func (s *syncer) mirror(ctx context.Context, games []history.GameRecord) {
	if s.opts.PGDSN == "" {
		return
	}
	log := s.logger.Named("mirror")

	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()

	db, err := store.NewDatabase(ctx, s.opts.PGDSN)
	if err != nil {
		log.Warn("postgres unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Warn("ensure schema failed", zap.Error(err))
		return
	}

	inserted, err := repository.NewGameRepository(db).UpsertGames(ctx, games)
	if err != nil {
		log.Warn("mirror failed", zap.Error(err))
		return
	}
	log.Info("mirrored games", zap.Int("inserted", inserted), zap.Int("total", len(games)))
}

// publish announces appended games on the Redis stream. Failures are logged only.
func (s *syncer) publish(ctx context.Context, summary merge.Summary) {
	if s.redis == nil || summary.Count() == 0 {
		return
	}
	log := s.logger.Named("publisher")

	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()

	output, err := filepath.Abs(s.opts.OutputPath)
	if err != nil {
		output = s.opts.OutputPath
	}

	id, err := publisher.NewRedisStreamPublisher(s.redis.Client()).PublishAppendedGames(ctx, publisher.SyncEvent{
		RunID:    uuid.NewString(),
		LeagueID: s.opts.LeagueID,
		Season:   s.opts.Season,
		Appended: summary.Count(),
		Games:    summary.Appended,
		Output:   output,
	})
	if err != nil {
		log.Warn("publish failed", zap.Error(err))
		return
	}
	log.Info("published sync event", zap.String("stream", publisher.AppendedGamesStream), zap.String("id", id))
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var (
		schemaErr  *history.SchemaError
		configErr  *history.ConfigError
		mappingErr *history.MappingIncompleteError
	)

	switch {
	case errors.As(err, &schemaErr):
		fmt.Fprintf(stderr, "Error: %v\n", schemaErr)
		return exitSchema

	case errors.As(err, &configErr):
		fmt.Fprintf(stderr, "Error: %v\n", configErr)
		return exitConfig

	case errors.As(err, &mappingErr):
		fmt.Fprintln(stderr, "The following roster_ids are missing a canonical name in your mapping:")
		for _, m := range mappingErr.Missing {
			fmt.Fprintf(stderr, "  roster_id=%d  display_name=%s  username=%s  sleeper_team_name=%s\n",
				m.RosterID, m.DisplayName, m.Username, m.PlatformTeamName)
		}
		fmt.Fprintln(stderr, "Please update your mapping JSON and re-run.")
		return exitMappingIncomplete

	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}
}
