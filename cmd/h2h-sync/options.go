package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/ingest/sleeper"
	"github.com/Haynesmodel/DarlingDraft/internal/schedule"
	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
)

const (
	defaultWeeks    = "1-14"
	defaultCacheTTL = 15 * time.Minute
)

// Options is the parsed and validated command line.
type Options struct {
	LeagueID   string        `flag:"league" validate:"required"`
	Season     int           `flag:"season" validate:"required,gt=0"`
	InputPath  string        `flag:"h2h" validate:"required"`
	OutputPath string        `flag:"out" validate:"required"`
	MapPath    string        `flag:"map"`
	ListTeams  bool          `flag:"list-teams"`
	WeeksSpec  string        `flag:"weeks" validate:"required"`
	OnlyPlayed bool          `flag:"only-played"`
	CutoffSpec string        `flag:"cutoff-date"`
	SortMode   string        `flag:"sort-mode" validate:"oneof=none season global"`
	APIBase    string        `flag:"api-base" validate:"required,url"`
	RedisURL   string        `flag:"redis-url"`
	CacheTTL   time.Duration `flag:"cache-ttl" validate:"gte=0"`
	PGDSN      string        `flag:"pg-dsn"`
	LogLevel   string        `flag:"log-level"`

	Weeks  []int
	Cutoff time.Time
	Sort   history.SortMode
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return "--" + name
		}
		return f.Name
	})
	return v
}

// parseOptions reads args (without the program name). getenv supplies
// environment defaults.
func parseOptions(args []string, getenv func(string) string, output io.Writer) (Options, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	var opts Options
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.LeagueID, "league", "", "Sleeper league ID")
	fs.IntVar(&opts.Season, "season", schedule.DefaultSeason, "Season to fetch")
	fs.StringVar(&opts.InputPath, "h2h", "", "Path to existing H2H.json")
	fs.StringVar(&opts.OutputPath, "out", "", "Path to write updated H2H.json")
	fs.StringVar(&opts.MapPath, "map", "", "Path to team mapping JSON (roster_id -> canonical team name)")
	fs.BoolVar(&opts.ListTeams, "list-teams", false, "Only list teams from Sleeper and exit")
	fs.StringVar(&opts.WeeksSpec, "weeks", defaultWeeks, "Weeks to fetch, e.g. '1-8' or '1,2,3,6,9'")
	fs.BoolVar(&opts.OnlyPlayed, "only-played", true, "Include only games that have happened and are not 0-0")
	fs.StringVar(&opts.CutoffSpec, "cutoff-date", "", "YYYY-MM-DD cap on which Sundays count as played (default today)")
	fs.StringVar(&opts.SortMode, "sort-mode", string(history.SortSeason), "Sort mode: none|season|global")
	fs.StringVar(&opts.APIBase, "api-base", env("SLEEPER_API_BASE", sleeper.BaseURL), "Sleeper API base URL")
	fs.StringVar(&opts.RedisURL, "redis-url", env("REDIS_URL", ""), "Redis URL for response cache and sync events")
	fs.DurationVar(&opts.CacheTTL, "cache-ttl", defaultCacheTTL, "TTL for cached Sleeper responses")
	fs.StringVar(&opts.PGDSN, "pg-dsn", env("H2H_PG_DSN", ""), "Postgres DSN to mirror appended games into")
	fs.StringVar(&opts.LogLevel, "log-level", env("LOG_LEVEL", "info"), "Log level")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := validate.Struct(opts); err != nil {
		return opts, describeValidation(err)
	}

	weeks, err := parseWeeks(opts.WeeksSpec)
	if err != nil {
		return opts, err
	}
	opts.Weeks = weeks

	if opts.CutoffSpec != "" {
		cutoff, err := dateparse.ParseIn(opts.CutoffSpec, time.UTC)
		if err != nil {
			return opts, fmt.Errorf("invalid --cutoff-date %q: %w", opts.CutoffSpec, err)
		}
		opts.Cutoff = schedule.Truncate(cutoff)
	}

	opts.Sort, err = history.ParseSortMode(opts.SortMode)
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// CutoffLabel is how the cutoff is reported in the summary line.
func (o Options) CutoffLabel() string {
	if o.CutoffSpec == "" {
		return "today"
	}
	return o.CutoffSpec
}

// parseWeeks accepts comma-separated week numbers and inclusive ranges
// ("1-14", "1,2,3,6,9", "1-3,8"). The result is ascending and distinct.
func parseWeeks(spec string) ([]int, error) {
	seen := make(map[int]bool)
	var weeks []int

	add := func(w int) {
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(token, "-")
		from, err := parseWeek(lo, token)
		if err != nil {
			return nil, err
		}
		to := from
		if isRange {
			if to, err = parseWeek(hi, token); err != nil {
				return nil, err
			}
			if to < from {
				return nil, fmt.Errorf("invalid --weeks range %q: end before start", token)
			}
		}

		for w := from; w <= to; w++ {
			add(w)
		}
	}

	if len(weeks) == 0 {
		return nil, fmt.Errorf("--weeks %q selects no weeks", spec)
	}

	slices.Sort(weeks)
	return weeks, nil
}

func parseWeek(s, token string) (int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid --weeks entry %q", token)
	}
	if w < 1 {
		return 0, fmt.Errorf("invalid --weeks entry %q: weeks start at 1", token)
	}
	return w, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", "|")))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a URL, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
