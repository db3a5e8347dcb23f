package sleeper

// User is a league member as returned by /league/{id}/users.
type User struct {
	UserID      string                 `json:"user_id"`
	Username    *string                `json:"username"`
	DisplayName *string                `json:"display_name"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Roster is a league team slot as returned by /league/{id}/rosters.
// OwnerID is nil for orphaned rosters.
type Roster struct {
	RosterID int                    `json:"roster_id"`
	OwnerID  *string                `json:"owner_id"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Matchup is one roster's entry for a week, from /league/{id}/matchups/{week}.
type Matchup struct {
	MatchupID *int     `json:"matchup_id"`
	RosterID  int      `json:"roster_id"`
	Points    *float64 `json:"points"`
}

// Score returns the matchup points, or 0 when Sleeper sent none.
func (m Matchup) Score() float64 {
	if m.Points == nil {
		return 0
	}
	return *m.Points
}

// Pair is two matchups sharing a matchup_id, in the order Sleeper returned them.
type Pair struct {
	A Matchup
	B Matchup
}

// TeamDescriptor joins a roster with its owning user.
type TeamDescriptor struct {
	RosterID         int     `json:"roster_id"`
	OwnerUserID      *string `json:"owner_user_id"`
	DisplayName      string  `json:"display_name"`
	Username         string  `json:"username"`
	PlatformTeamName string  `json:"sleeper_team_name"`
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// extractString returns m[key] if it is a string, "" otherwise.
func extractString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
