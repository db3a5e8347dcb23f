package merge

import (
	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"go.uber.org/zap"
)

// SkipReason says why a paired matchup produced no record.
type SkipReason string

const (
	SkipUnmapped  SkipReason = "missing mapping"
	SkipUnplayed  SkipReason = "not yet played (0-0)"
	SkipDuplicate SkipReason = "already recorded"
)

// Reporter receives progress callbacks from Engine.Merge.
type Reporter interface {
	OnWeekStart(week int, index int, total int)
	OnWeekSkipped(week int, reason string)
	OnMatchupSkipped(week int, rosterA int, rosterB int, reason SkipReason)
	OnGameAppended(game history.GameRecord)
}

type nopReporter struct{}

func (nopReporter) OnWeekStart(int, int, int)                  {}
func (nopReporter) OnWeekSkipped(int, string)                  {}
func (nopReporter) OnMatchupSkipped(int, int, int, SkipReason) {}
func (nopReporter) OnGameAppended(history.GameRecord)          {}

// LogReporter writes progress to a zap logger. Mapping misses are warnings,
// everything else is debug or info.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter wraps logger.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger.Named("merge")}
}

func (r *LogReporter) OnWeekStart(week int, index int, total int) {
	r.logger.Debug("processing week", zap.Int("week", week), zap.Int("index", index+1), zap.Int("total", total))
}

func (r *LogReporter) OnWeekSkipped(week int, reason string) {
	r.logger.Info("skipping week", zap.Int("week", week), zap.String("reason", reason))
}

func (r *LogReporter) OnMatchupSkipped(week int, rosterA int, rosterB int, reason SkipReason) {
	fields := []zap.Field{
		zap.Int("week", week),
		zap.Int("roster_a", rosterA),
		zap.Int("roster_b", rosterB),
		zap.String("reason", string(reason)),
	}
	if reason == SkipUnmapped {
		r.logger.Warn("skipping matchup due to missing mapping", fields...)
		return
	}
	r.logger.Debug("skipping matchup", fields...)
}

func (r *LogReporter) OnGameAppended(game history.GameRecord) {
	r.logger.Info("appended game",
		zap.Int("week", game.WeekOrZero()),
		zap.String("date", game.Date),
		zap.String("team_a", game.TeamA),
		zap.Float64("score_a", game.ScoreA),
		zap.String("team_b", game.TeamB),
		zap.Float64("score_b", game.ScoreB),
	)
}
