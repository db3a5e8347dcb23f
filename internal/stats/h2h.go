package stats

import "github.com/Haynesmodel/DarlingDraft/internal/history"

// Rivalry is the all-time record between two teams.
type Rivalry struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
	WinsA int    `json:"wA"`
	WinsB int    `json:"wB"`
	Ties  int    `json:"ties"`
	Games int    `json:"n"`
}

// HeadToHead counts meetings between teamA and teamB from teamA's side.
func HeadToHead(records []history.GameRecord, teamA, teamB string, regularOnly bool) Rivalry {
	r := Rivalry{TeamA: teamA, TeamB: teamB}

	for _, g := range records {
		meeting := (g.TeamA == teamA && g.TeamB == teamB) || (g.TeamA == teamB && g.TeamB == teamA)
		if !meeting || (regularOnly && !IsRegularGame(g)) {
			continue
		}

		r.Games++
		switch winner := Winner(g); {
		case winner == SideNone:
			r.Ties++
		case (winner == SideA && g.TeamA == teamA) || (winner == SideB && g.TeamB == teamA):
			r.WinsA++
		default:
			r.WinsB++
		}
	}

	return r
}
