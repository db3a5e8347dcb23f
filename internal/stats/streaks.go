package stats

import (
	"slices"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
)

// Streak is a run of consecutive wins. Start and End are nil when Length is 0.
type Streak struct {
	Length int     `json:"length"`
	Start  *Moment `json:"start"`
	End    *Moment `json:"end"`
}

// LongestWinStreak finds team's longest winning run in season/date order.
// A tie or loss ends a streak; the earliest of equally long streaks wins.
func LongestWinStreak(records []history.GameRecord, team string, regularOnly bool) Streak {
	games := filter(records, func(g history.GameRecord) bool {
		return (!regularOnly || IsRegularGame(g)) && (g.TeamA == team || g.TeamB == team)
	})
	slices.SortStableFunc(games, bySeasonDate)

	var (
		best     Streak
		curLen   int
		curStart *Moment
	)

	for _, g := range games {
		winner := Winner(g)
		won := (g.TeamA == team && winner == SideA) || (g.TeamB == team && winner == SideB)
		if !won {
			curLen = 0
			curStart = nil
			continue
		}

		curLen++
		if curLen == 1 {
			curStart = &Moment{Season: g.Season, Date: g.Date}
		}
		if curLen > best.Length {
			best = Streak{
				Length: curLen,
				Start:  curStart,
				End:    &Moment{Season: g.Season, Date: g.Date},
			}
		}
	}

	return best
}
