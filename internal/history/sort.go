package history

import (
	"cmp"
	"fmt"
	"slices"
)

// SortMode selects how the store is ordered before it is written.
type SortMode string

const (
	SortNone   SortMode = "none"
	SortSeason SortMode = "season"
	SortGlobal SortMode = "global"
)

// SortModes lists the accepted modes.
var SortModes = []SortMode{SortNone, SortSeason, SortGlobal}

// ParseSortMode validates a mode name.
func ParseSortMode(s string) (SortMode, error) {
	for _, m := range SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("sort-mode must be none|season|global, got %q", s)
}

// Sort returns the records in persistence order. The input is not modified.
//
// SortSeason keeps records of other seasons first in their original order
// and sorts the target season by (date, week, teamA, teamB). Only a numeric
// season matches the target; "2025" stays with the others. SortGlobal
// sorts everything by (season, date, week, teamA, teamB). Both are stable.
func Sort(records []GameRecord, mode SortMode, season int) []GameRecord {
	switch mode {
	case SortSeason:
		others := make([]GameRecord, 0, len(records))
		target := make([]GameRecord, 0)
		for _, r := range records {
			if r.seasonNumber && r.Season == season {
				target = append(target, r)
			} else {
				others = append(others, r)
			}
		}
		slices.SortStableFunc(target, compareWithinSeason)
		return append(others, target...)
	case SortGlobal:
		out := slices.Clone(records)
		slices.SortStableFunc(out, func(a, b GameRecord) int {
			if c := cmp.Compare(a.Season, b.Season); c != 0 {
				return c
			}
			return compareWithinSeason(a, b)
		})
		return out
	default:
		return slices.Clone(records)
	}
}

func compareWithinSeason(a, b GameRecord) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(a.WeekOrZero(), b.WeekOrZero()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TeamA, b.TeamA); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamB, b.TeamB)
}
