package schedule

import (
	"fmt"
	"time"
)

// DefaultSeason is the season the sync targets when none is given.
const DefaultSeason = 2025

// DateLayout is the on-disk date format for game records.
const DateLayout = "2006-01-02"

// weekOneSundays anchors each supported season to its week 1 Sunday.
var weekOneSundays = map[int]time.Time{
	2025: time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC),
}

// InvalidSeasonError is returned for a season with no week 1 anchor.
type InvalidSeasonError struct {
	Season int
}

func (e *InvalidSeasonError) Error() string {
	return fmt.Sprintf("no schedule anchor for season %d (supported: %v)", e.Season, SupportedSeasons())
}

// Calendar maps (season, week) to the Sunday that week's games are played.
type Calendar struct {
	anchors map[int]time.Time
}

// NewCalendar returns a calendar over the built-in season anchors.
func NewCalendar() *Calendar {
	return &Calendar{anchors: weekOneSundays}
}

// GameDate returns the date of the given 1-indexed week.
func (c *Calendar) GameDate(season, week int) (time.Time, error) {
	anchor, ok := c.anchors[season]
	if !ok {
		return time.Time{}, &InvalidSeasonError{Season: season}
	}
	return anchor.AddDate(0, 0, 7*(week-1)), nil
}

// SupportedSeasons lists the anchored seasons.
func SupportedSeasons() []int {
	seasons := make([]int, 0, len(weekOneSundays))
	for s := range weekOneSundays {
		seasons = append(seasons, s)
	}
	return seasons
}

// Truncate drops the clock portion of t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
