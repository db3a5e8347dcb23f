package sleeper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestPairMatchups(t *testing.T) {
	tests := []struct {
		name     string
		matchups []Matchup
		want     []Pair
	}{
		{
			name:     "empty week",
			matchups: nil,
			want:     []Pair{},
		},
		{
			name: "first-seen order and original relative order",
			matchups: []Matchup{
				{MatchupID: intPtr(2), RosterID: 3},
				{MatchupID: intPtr(1), RosterID: 1},
				{MatchupID: intPtr(2), RosterID: 4},
				{MatchupID: intPtr(1), RosterID: 2},
			},
			want: []Pair{
				{A: Matchup{MatchupID: intPtr(2), RosterID: 3}, B: Matchup{MatchupID: intPtr(2), RosterID: 4}},
				{A: Matchup{MatchupID: intPtr(1), RosterID: 1}, B: Matchup{MatchupID: intPtr(1), RosterID: 2}},
			},
		},
		{
			name: "unpaired, oversized and null groups dropped",
			matchups: []Matchup{
				{MatchupID: intPtr(1), RosterID: 1},
				{MatchupID: nil, RosterID: 2},
				{MatchupID: intPtr(2), RosterID: 3},
				{MatchupID: intPtr(2), RosterID: 4},
				{MatchupID: intPtr(2), RosterID: 5},
				{MatchupID: intPtr(3), RosterID: 6},
				{MatchupID: intPtr(3), RosterID: 7},
			},
			want: []Pair{
				{A: Matchup{MatchupID: intPtr(3), RosterID: 6}, B: Matchup{MatchupID: intPtr(3), RosterID: 7}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PairMatchups(tt.matchups))
		})
	}
}
