package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// TypeRegular marks regular-season games.
	TypeRegular = "Regular"
)

// GameRecord is one head-to-head game in H2H.json.
//
// Records read from disk keep their original JSON and are written back
// verbatim, so fields this package does not know about survive a rewrite.
type GameRecord struct {
	Season int
	Date   string
	TeamA  string
	TeamB  string
	ScoreA float64
	ScoreB float64
	Week   *int
	Round  string
	Type   string

	seasonValid bool
	// seasonNumber is false when season was stored as a JSON string.
	seasonNumber bool
	raw          json.RawMessage
}

type recordJSON struct {
	Season int     `json:"season"`
	Date   string  `json:"date"`
	TeamA  string  `json:"teamA"`
	TeamB  string  `json:"teamB"`
	ScoreA float64 `json:"scoreA"`
	ScoreB float64 `json:"scoreB"`
	Week   *int    `json:"week"`
	Round  string  `json:"round"`
	Type   string  `json:"type"`
}

// NewRegularGame builds a freshly observed regular-season record.
func NewRegularGame(season, week int, date, teamA, teamB string, scoreA, scoreB float64) GameRecord {
	w := week
	return GameRecord{
		Season:       season,
		Date:         date,
		TeamA:        teamA,
		TeamB:        teamB,
		ScoreA:       scoreA,
		ScoreB:       scoreB,
		Week:         &w,
		Round:        "",
		Type:         TypeRegular,
		seasonValid:  true,
		seasonNumber: true,
	}
}

// WeekOrZero returns the week, treating a missing week as 0.
func (g GameRecord) WeekOrZero() int {
	if g.Week == nil {
		return 0
	}
	return *g.Week
}

// Key returns the identity key. ok is false when the record has no usable
// season, in which case it cannot collide with anything the merge produces.
func (g GameRecord) Key() (Key, bool) {
	if !g.seasonValid {
		return Key{}, false
	}
	return NewKey(g.Season, g.WeekOrZero(), g.TeamA, g.TeamB), true
}

// MarshalJSON writes the original bytes for loaded records.
func (g GameRecord) MarshalJSON() ([]byte, error) {
	if g.raw != nil {
		return g.raw, nil
	}
	return json.Marshal(recordJSON{
		Season: g.Season,
		Date:   g.Date,
		TeamA:  g.TeamA,
		TeamB:  g.TeamB,
		ScoreA: g.ScoreA,
		ScoreB: g.ScoreB,
		Week:   g.Week,
		Round:  g.Round,
		Type:   g.Type,
	})
}

// UnmarshalJSON decodes a record leniently: numeric strings are accepted for
// numbers and anything unreadable falls back to the zero value.
func (g *GameRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("game record is not an object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("game record is null")
	}

	*g = GameRecord{}
	g.Season, g.seasonValid = extractInt(fields, "season")
	g.seasonNumber = g.seasonValid && !isJSONString(fields["season"])
	g.Date = extractString(fields, "date")
	g.TeamA = extractString(fields, "teamA")
	g.TeamB = extractString(fields, "teamB")
	g.ScoreA = extractFloat(fields, "scoreA")
	g.ScoreB = extractFloat(fields, "scoreB")
	if week, ok := extractInt(fields, "week"); ok {
		g.Week = &week
	}
	g.Round = extractString(fields, "round")
	g.Type = extractString(fields, "type")

	g.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// Round2 formats x with two fixed decimals and parses the result back, so the
// exact binary value decides the direction (2.675 -> 2.67, 0.125 -> 0.12).
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}

func extractString(fields map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

func extractNumber(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n != "" {
		return n.String(), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, true
	}

	return "", false
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func extractInt(fields map[string]json.RawMessage, key string) (int, bool) {
	s, ok := extractNumber(fields, key)
	if !ok {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

func extractFloat(fields map[string]json.RawMessage, key string) float64 {
	s, ok := extractNumber(fields, key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
