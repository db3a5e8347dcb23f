package sleeper

import (
	"context"
	"fmt"
	"sort"
)

// LeagueSource is the subset of the API needed to resolve teams.
type LeagueSource interface {
	FetchUsers(ctx context.Context, leagueID string) ([]User, error)
	FetchRosters(ctx context.Context, leagueID string) ([]Roster, error)
}

// ListTeams joins users and rosters into one descriptor per roster,
// ordered by roster_id.
func ListTeams(ctx context.Context, api LeagueSource, leagueID string) ([]TeamDescriptor, error) {
	users, err := api.FetchUsers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	rosters, err := api.FetchRosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch rosters: %w", err)
	}

	usersByID := make(map[string]User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	teams := make([]TeamDescriptor, 0, len(rosters))
	for _, r := range rosters {
		var user User
		if r.OwnerID != nil {
			user = usersByID[*r.OwnerID]
		}
		teams = append(teams, describe(r, user))
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].RosterID < teams[j].RosterID
	})

	return teams, nil
}

// describe applies the name fallbacks: display name falls back to username,
// team name falls back from roster metadata to user metadata.
func describe(r Roster, user User) TeamDescriptor {
	username := stringValue(user.Username)

	displayName := stringValue(user.DisplayName)
	if displayName == "" {
		displayName = username
	}

	teamName := extractString(r.Metadata, "team_name")
	if teamName == "" {
		teamName = extractString(user.Metadata, "team_name")
	}

	return TeamDescriptor{
		RosterID:         r.RosterID,
		OwnerUserID:      r.OwnerID,
		DisplayName:      displayName,
		Username:         username,
		PlatformTeamName: teamName,
	}
}
