package stats

import (
	"slices"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
)

// Standing is one team's regular-season line.
type Standing struct {
	Team          string  `json:"team"`
	Wins          int     `json:"w"`
	Losses        int     `json:"l"`
	Ties          int     `json:"t"`
	PointsFor     float64 `json:"pf"`
	PointsAgainst float64 `json:"pa"`
	Games         int     `json:"n"`
	Diff          float64 `json:"diff"`
	WinPct        float64 `json:"winPct"`
}

// SeasonStandings tallies regular-season games of one season, ordered by
// wins minus losses, then points for, then win percentage.
func SeasonStandings(records []history.GameRecord, season int) []Standing {
	rows := make(map[string]*Standing)
	var order []string

	row := func(team string) *Standing {
		if r, ok := rows[team]; ok {
			return r
		}
		r := &Standing{Team: team}
		rows[team] = r
		order = append(order, team)
		return r
	}

	for _, g := range records {
		if !IsRegularGame(g) || g.Season != season {
			continue
		}

		a, b := row(g.TeamA), row(g.TeamB)
		a.PointsFor += g.ScoreA
		a.PointsAgainst += g.ScoreB
		a.Games++
		b.PointsFor += g.ScoreB
		b.PointsAgainst += g.ScoreA
		b.Games++

		switch Winner(g) {
		case SideA:
			a.Wins++
			b.Losses++
		case SideB:
			b.Wins++
			a.Losses++
		default:
			a.Ties++
			b.Ties++
		}
	}

	out := make([]Standing, 0, len(order))
	for _, team := range order {
		r := *rows[team]
		r.Diff = round(r.PointsFor-r.PointsAgainst, 2)
		if r.Games > 0 {
			r.WinPct = round((float64(r.Wins)+0.5*float64(r.Ties))/float64(r.Games), 3)
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(x, y Standing) int {
		if d := (y.Wins - y.Losses) - (x.Wins - x.Losses); d != 0 {
			return d
		}
		if y.PointsFor != x.PointsFor {
			if y.PointsFor > x.PointsFor {
				return 1
			}
			return -1
		}
		switch {
		case y.WinPct > x.WinPct:
			return 1
		case y.WinPct < x.WinPct:
			return -1
		}
		return 0
	})

	return out
}
