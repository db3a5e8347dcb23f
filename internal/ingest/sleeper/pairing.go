package sleeper

// PairMatchups groups a week's matchups by matchup_id and keeps only groups
// of exactly two. Byes, missing opponents and entries without a matchup_id
// are dropped. Pairs come out in first-seen matchup_id order.
func PairMatchups(matchups []Matchup) []Pair {
	groups := make(map[int][]Matchup)
	var order []int

	for _, m := range matchups {
		if m.MatchupID == nil {
			continue
		}
		id := *m.MatchupID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], m)
	}

	pairs := make([]Pair, 0, len(order))
	for _, id := range order {
		items := groups[id]
		if len(items) != 2 {
			continue
		}
		pairs = append(pairs, Pair{A: items[0], B: items[1]})
	}

	return pairs
}
