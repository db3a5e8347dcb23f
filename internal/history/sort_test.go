package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func game(season, week int, date, a, b string) GameRecord {
	return NewRegularGame(season, week, date, a, b, 1, 2)
}

func teams(records []GameRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.TeamA+"-"+r.TeamB)
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	for _, m := range []string{"none", "season", "global"} {
		got, err := ParseSortMode(m)
		require.NoError(t, err)
		require.Equal(t, SortMode(m), got)
	}

	_, err := ParseSortMode("alpha")
	require.Error(t, err)
	_, err = ParseSortMode("")
	require.Error(t, err)
}

func TestSort(t *testing.T) {
	records := []GameRecord{
		game(2025, 2, "2025-09-14", "C", "D"),
		game(2023, 5, "2023-10-08", "X", "Y"),
		game(2025, 1, "2025-09-07", "B", "A"),
		game(2021, 1, "2021-09-12", "P", "Q"),
		game(2025, 1, "2025-09-07", "A", "Z"),
	}

	t.Run("none", func(t *testing.T) {
		got := Sort(records, SortNone, 2025)
		require.Equal(t, teams(records), teams(got))
	})

	t.Run("season keeps other seasons in place", func(t *testing.T) {
		got := Sort(records, SortSeason, 2025)
		require.Equal(t, []string{"X-Y", "P-Q", "A-Z", "B-A", "C-D"}, teams(got))
	})

	t.Run("global", func(t *testing.T) {
		got := Sort(records, SortGlobal, 2025)
		require.Equal(t, []string{"P-Q", "X-Y", "A-Z", "B-A", "C-D"}, teams(got))
	})

	t.Run("input untouched", func(t *testing.T) {
		Sort(records, SortGlobal, 2025)
		require.Equal(t, "C-D", teams(records)[0])
	})
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	first := NewRegularGame(2025, 1, "2025-09-07", "A", "B", 10, 20)
	second := NewRegularGame(2025, 1, "2025-09-07", "A", "B", 30, 40)

	got := Sort([]GameRecord{first, second}, SortGlobal, 2025)
	require.Equal(t, 10.0, got[0].ScoreA)
	require.Equal(t, 30.0, got[1].ScoreA)
}

func TestSort_SeasonModeLeavesStringSeasonsWithOthers(t *testing.T) {
	var records []GameRecord
	require.NoError(t, json.Unmarshal([]byte(`[
		{"season":"2025","date":"2025-09-14","teamA":"S","teamB":"T","scoreA":1,"scoreB":2,"week":2,"type":"Regular"},
		{"season":2025,"date":"2025-09-14","teamA":"C","teamB":"D","scoreA":1,"scoreB":2,"week":2,"type":"Regular"},
		{"season":2025.0,"date":"2025-09-07","teamA":"A","teamB":"B","scoreA":1,"scoreB":2,"week":1,"type":"Regular"}
	]`), &records))

	got := Sort(records, SortSeason, 2025)
	require.Equal(t, []string{"S-T", "A-B", "C-D"}, teams(got))

	key, ok := records[0].Key()
	require.True(t, ok, "string seasons still dedupe")
	require.Equal(t, NewKey(2025, 2, "S", "T"), key)
}
