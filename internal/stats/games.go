// Package stats computes head-to-head analytics over H2H.json records.
package stats

import (
	"cmp"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
)

// IsRegularGame reports whether g is a regular-season game.
func IsRegularGame(g history.GameRecord) bool {
	return g.Type == history.TypeRegular
}

// IsPlayoffGame reports whether g has a non-regular type or a playoff round.
func IsPlayoffGame(g history.GameRecord) bool {
	return (g.Type != "" && g.Type != history.TypeRegular) || g.Round != ""
}

// Side identifies the winning side of a game.
type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)

// Winner returns which side outscored the other; ties are SideNone.
func Winner(g history.GameRecord) Side {
	switch {
	case g.ScoreA > g.ScoreB:
		return SideA
	case g.ScoreB > g.ScoreA:
		return SideB
	default:
		return SideNone
	}
}

// Margin is the absolute score difference.
func Margin(g history.GameRecord) float64 {
	return math.Abs(g.ScoreA - g.ScoreB)
}

// Moment pins a game in time.
type Moment struct {
	Season int    `json:"season"`
	Date   string `json:"date"`
}

func bySeasonDate(a, b history.GameRecord) int {
	if c := cmp.Compare(a.Season, b.Season); c != 0 {
		return c
	}
	return cmp.Compare(a.Date, b.Date)
}

// round is for derived figures (totals, margins, percentages) where summed
// floats drift; decimal keeps 0.1+0.2 style noise out of the output.
func round(x float64, places int) float64 {
	return decimal.NewFromFloat(x).Round(int32(places)).InexactFloat64()
}

func filter(records []history.GameRecord, keep func(history.GameRecord) bool) []history.GameRecord {
	out := make([]history.GameRecord, 0, len(records))
	for _, g := range records {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
