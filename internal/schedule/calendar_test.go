package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendar_GameDate(t *testing.T) {
	cal := NewCalendar()

	tests := []struct {
		week int
		want string
	}{
		{1, "2025-09-07"},
		{2, "2025-09-14"},
		{6, "2025-10-12"},
		{14, "2025-12-07"},
	}

	for _, tt := range tests {
		got, err := cal.GameDate(DefaultSeason, tt.week)
		require.NoError(t, err)
		require.Equal(t, tt.want, got.Format(DateLayout))
		require.Equal(t, time.Sunday, got.Weekday())
	}
}

func TestCalendar_InvalidSeason(t *testing.T) {
	cal := NewCalendar()
	_, err := cal.GameDate(2025, 1)
	require.NoError(t, err)

	_, err = cal.GameDate(2024, 1)
	var seasonErr *InvalidSeasonError
	require.True(t, errors.As(err, &seasonErr))
	require.Equal(t, 2024, seasonErr.Season)
}

func TestTruncate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	got := Truncate(time.Date(2025, time.October, 12, 23, 30, 0, 0, loc))
	require.Equal(t, time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC), got)
}
