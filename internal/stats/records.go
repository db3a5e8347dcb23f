package stats

import (
	"slices"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
)

// CombinedScore is a game ranked by total points.
type CombinedScore struct {
	Season int     `json:"season"`
	Date   string  `json:"date"`
	TeamA  string  `json:"teamA"`
	TeamB  string  `json:"teamB"`
	ScoreA float64 `json:"scoreA"`
	ScoreB float64 `json:"scoreB"`
	Total  float64 `json:"total"`
}

// SingleScore is the higher side of a game.
type SingleScore struct {
	Season int     `json:"season"`
	Date   string  `json:"date"`
	Team   string  `json:"team"`
	Score  float64 `json:"score"`
}

// HighestCombinedScore returns the game with the most total points, or nil.
func HighestCombinedScore(records []history.GameRecord, regularOnly bool) *CombinedScore {
	var best *CombinedScore
	for _, g := range records {
		if regularOnly && !IsRegularGame(g) {
			continue
		}
		total := round(g.ScoreA+g.ScoreB, 2)
		if best == nil || total > best.Total {
			best = &CombinedScore{
				Season: g.Season, Date: g.Date,
				TeamA: g.TeamA, TeamB: g.TeamB,
				ScoreA: g.ScoreA, ScoreB: g.ScoreB,
				Total: total,
			}
		}
	}
	return best
}

// HighestSingleScore returns the highest score by one team, or nil.
func HighestSingleScore(records []history.GameRecord, regularOnly bool) *SingleScore {
	var best *SingleScore
	for _, g := range records {
		if regularOnly && !IsRegularGame(g) {
			continue
		}
		team, score := g.TeamA, g.ScoreA
		if g.ScoreB > g.ScoreA {
			team, score = g.TeamB, g.ScoreB
		}
		if best == nil || score > best.Score {
			best = &SingleScore{Season: g.Season, Date: g.Date, Team: team, Score: score}
		}
	}
	return best
}

// Blowout is a regular-season game ranked by winning margin.
type Blowout struct {
	Season int     `json:"season"`
	Date   string  `json:"date"`
	Winner string  `json:"winner"`
	Loser  string  `json:"loser"`
	ScoreW float64 `json:"scoreW"`
	ScoreL float64 `json:"scoreL"`
	Margin float64 `json:"margin"`
}

// TopRegularBlowouts returns up to limit regular-season games with the
// largest margins. Ties in score count side A as the winner.
func TopRegularBlowouts(records []history.GameRecord, limit int) []Blowout {
	rows := make([]Blowout, 0, len(records))
	for _, g := range records {
		if !IsRegularGame(g) {
			continue
		}
		b := Blowout{Season: g.Season, Date: g.Date}
		if g.ScoreA >= g.ScoreB {
			b.Winner, b.Loser, b.ScoreW, b.ScoreL = g.TeamA, g.TeamB, g.ScoreA, g.ScoreB
		} else {
			b.Winner, b.Loser, b.ScoreW, b.ScoreL = g.TeamB, g.TeamA, g.ScoreB, g.ScoreA
		}
		b.Margin = round(b.ScoreW-b.ScoreL, 2)
		rows = append(rows, b)
	}

	slices.SortStableFunc(rows, func(x, y Blowout) int {
		switch {
		case y.Margin > x.Margin:
			return 1
		case y.Margin < x.Margin:
			return -1
		}
		return 0
	})

	if limit < 0 {
		limit = 0
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
