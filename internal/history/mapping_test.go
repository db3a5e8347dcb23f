package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Haynesmodel/DarlingDraft/internal/ingest/sleeper"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping(t *testing.T) {
	_, err := LoadMapping("")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))

	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1":"Alpha","2":"Beta"}`), 0o644))

	mapping, err := LoadMapping(path)
	require.NoError(t, err)
	require.Equal(t, TeamMapping{"1": "Alpha", "2": "Beta"}, mapping)
}

func TestTeamMapping_Resolve(t *testing.T) {
	teams := []sleeper.TeamDescriptor{
		{RosterID: 1, DisplayName: "alpha"},
		{RosterID: 2, DisplayName: "bravo", Username: "b", PlatformTeamName: "Bees"},
		{RosterID: 3, DisplayName: "charlie"},
	}

	names, err := TeamMapping{"1": "Alpha", "2": "Beta", "3": "Gamma"}.Resolve(teams)
	require.NoError(t, err)
	require.Equal(t, map[int]string{1: "Alpha", 2: "Beta", 3: "Gamma"}, names)

	_, err = TeamMapping{"1": "Alpha", "2": "   "}.Resolve(teams)
	var incomplete *MappingIncompleteError
	require.True(t, errors.As(err, &incomplete))
	require.Len(t, incomplete.Missing, 2)
	require.Equal(t, MissingRoster{RosterID: 2, DisplayName: "bravo", Username: "b", PlatformTeamName: "Bees"}, incomplete.Missing[0])
	require.Equal(t, 3, incomplete.Missing[1].RosterID)
	require.Contains(t, err.Error(), "2, 3")
}

func TestTemplate(t *testing.T) {
	tmpl := Template([]sleeper.TeamDescriptor{{RosterID: 1}, {RosterID: 12}})
	require.Equal(t, TeamMapping{"1": "", "12": ""}, tmpl)
}
