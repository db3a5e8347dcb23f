package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Haynesmodel/DarlingDraft/internal/ingest/sleeper"
)

// TeamMapping maps a Sleeper roster_id (as a string) to the canonical team
// name used in H2H.json.
type TeamMapping map[string]string

// ConfigError means a required input was not supplied.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// MissingRoster describes a roster with no canonical name.
type MissingRoster struct {
	RosterID         int
	DisplayName      string
	Username         string
	PlatformTeamName string
}

// MappingIncompleteError lists every roster the mapping fails to name.
type MappingIncompleteError struct {
	Missing []MissingRoster
}

func (e *MappingIncompleteError) Error() string {
	ids := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		ids = append(ids, strconv.Itoa(m.RosterID))
	}
	return fmt.Sprintf("mapping has no canonical name for roster_ids %s", strings.Join(ids, ", "))
}

// LoadMapping reads a roster_id -> name JSON object.
func LoadMapping(path string) (TeamMapping, error) {
	if path == "" {
		return nil, &ConfigError{Msg: "--map is required when appending data"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping %s: %w", path, err)
	}

	var mapping TeamMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	if mapping == nil {
		mapping = TeamMapping{}
	}

	return mapping, nil
}

// Template returns an empty mapping with one entry per team, for operators
// to fill in.
func Template(teams []sleeper.TeamDescriptor) TeamMapping {
	tmpl := make(TeamMapping, len(teams))
	for _, t := range teams {
		tmpl[strconv.Itoa(t.RosterID)] = ""
	}
	return tmpl
}

// Resolve returns roster_id -> canonical name for every team. It fails with
// a MappingIncompleteError naming all teams whose entry is missing or blank.
func (m TeamMapping) Resolve(teams []sleeper.TeamDescriptor) (map[int]string, error) {
	names := make(map[int]string, len(teams))
	var missing []MissingRoster

	for _, t := range teams {
		name := m[strconv.Itoa(t.RosterID)]
		if strings.TrimSpace(name) == "" {
			missing = append(missing, MissingRoster{
				RosterID:         t.RosterID,
				DisplayName:      t.DisplayName,
				Username:         t.Username,
				PlatformTeamName: t.PlatformTeamName,
			})
			continue
		}
		names[t.RosterID] = name
	}

	if len(missing) > 0 {
		return nil, &MappingIncompleteError{Missing: missing}
	}

	return names, nil
}
