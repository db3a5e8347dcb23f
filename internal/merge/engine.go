package merge

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/ingest/sleeper"
	"github.com/Haynesmodel/DarlingDraft/internal/schedule"
)

// MatchupSource fetches one week of raw matchups.
type MatchupSource interface {
	FetchMatchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error)
}

// Request describes one merge pass.
type Request struct {
	LeagueID   string
	Season     int
	Weeks      []int
	OnlyPlayed bool
	// Cutoff is the last date counted as played. Zero means today.
	Cutoff time.Time
	// Names maps roster_id to canonical team name.
	Names map[int]string
}

// State is the store plus the keys already in it. It is threaded through
// Merge rather than held by the engine.
type State struct {
	Records []history.GameRecord
	Seen    history.KeySet
}

// NewState indexes existing records.
func NewState(records []history.GameRecord) State {
	return State{Records: records, Seen: history.KeysOf(records)}
}

// Summary reports what a merge pass did.
type Summary struct {
	Appended        []history.GameRecord
	WeeksProcessed  int
	WeeksSkipped    int
	MatchupsSkipped int
}

// Count is the number of appended records.
func (s Summary) Count() int {
	return len(s.Appended)
}

// Engine turns weekly matchups into new game records.
type Engine struct {
	source   MatchupSource
	calendar *schedule.Calendar
	reporter Reporter
	now      func() time.Time
}

// NewEngine constructs an engine. A nil reporter discards progress.
func NewEngine(source MatchupSource, calendar *schedule.Calendar, reporter Reporter) *Engine {
	if calendar == nil {
		calendar = schedule.NewCalendar()
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Engine{
		source:   source,
		calendar: calendar,
		reporter: reporter,
		now:      time.Now,
	}
}

// Merge processes the requested weeks in ascending order and returns the
// grown state. The input state is not modified. Only API errors and an
// unsupported season abort the pass; the season is checked the first time a
// week has pairs, so a run over empty weeks succeeds.
func (e *Engine) Merge(ctx context.Context, state State, req Request) (State, Summary, error) {
	var summary Summary

	cutoff := req.Cutoff
	if cutoff.IsZero() {
		cutoff = e.now()
	}
	cutoff = schedule.Truncate(cutoff)

	next := State{
		Records: slices.Clone(state.Records),
		Seen:    state.Seen.Clone(),
	}
	if next.Seen == nil {
		next.Seen = history.KeysOf(next.Records)
	}

	weeks := normalizeWeeks(req.Weeks)
	for idx, week := range weeks {
		if err := ctx.Err(); err != nil {
			return state, Summary{}, err
		}

		e.reporter.OnWeekStart(week, idx, len(weeks))

		matchups, err := e.source.FetchMatchups(ctx, req.LeagueID, week)
		if err != nil {
			return state, Summary{}, fmt.Errorf("fetch matchups for week %d: %w", week, err)
		}

		pairs := sleeper.PairMatchups(matchups)
		if len(pairs) == 0 {
			summary.WeeksSkipped++
			e.reporter.OnWeekSkipped(week, "no paired matchups yet")
			continue
		}

		gameDate, err := e.calendar.GameDate(req.Season, week)
		if err != nil {
			return state, Summary{}, err
		}
		if req.OnlyPlayed && gameDate.After(cutoff) {
			summary.WeeksSkipped++
			e.reporter.OnWeekSkipped(week, fmt.Sprintf("game date %s is after cutoff %s",
				gameDate.Format(schedule.DateLayout), cutoff.Format(schedule.DateLayout)))
			continue
		}

		summary.WeeksProcessed++
		for _, pair := range pairs {
			game, reason, ok := e.buildGame(next.Seen, req, week, gameDate, pair)
			if !ok {
				summary.MatchupsSkipped++
				e.reporter.OnMatchupSkipped(week, pair.A.RosterID, pair.B.RosterID, reason)
				continue
			}

			key, _ := game.Key()
			next.Records = append(next.Records, game)
			next.Seen.Add(key)
			summary.Appended = append(summary.Appended, game)
			e.reporter.OnGameAppended(game)
		}
	}

	return next, summary, nil
}

// buildGame applies the per-matchup rules. reason explains a skip.
func (e *Engine) buildGame(seen history.KeySet, req Request, week int, gameDate time.Time, pair sleeper.Pair) (history.GameRecord, SkipReason, bool) {
	teamA, okA := req.Names[pair.A.RosterID]
	teamB, okB := req.Names[pair.B.RosterID]
	if !okA || !okB {
		return history.GameRecord{}, SkipUnmapped, false
	}

	scoreA := history.Round2(pair.A.Score())
	scoreB := history.Round2(pair.B.Score())
	if req.OnlyPlayed && scoreA == 0 && scoreB == 0 {
		return history.GameRecord{}, SkipUnplayed, false
	}

	if seen.Has(history.NewKey(req.Season, week, teamA, teamB)) {
		return history.GameRecord{}, SkipDuplicate, false
	}

	return history.NewRegularGame(req.Season, week, gameDate.Format(schedule.DateLayout),
		teamA, teamB, scoreA, scoreB), "", true
}

// normalizeWeeks returns the distinct weeks in ascending order.
func normalizeWeeks(weeks []int) []int {
	out := slices.Clone(weeks)
	slices.Sort(out)
	return slices.Compact(out)
}
