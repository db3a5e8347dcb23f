package sleeper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLeague struct {
	users      []User
	rosters    []Roster
	usersErr   error
	rostersErr error
}

func (f *fakeLeague) FetchUsers(ctx context.Context, leagueID string) ([]User, error) {
	return f.users, f.usersErr
}

func (f *fakeLeague) FetchRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	return f.rosters, f.rostersErr
}

func strPtr(s string) *string { return &s }

func TestListTeams_Fallbacks(t *testing.T) {
	league := &fakeLeague{
		users: []User{
			{UserID: "u1", Username: strPtr("alpha"), DisplayName: strPtr("Alpha Dog"),
				Metadata: map[string]interface{}{"team_name": "User Team"}},
			{UserID: "u2", Username: strPtr("bravo")},
			{UserID: "u3", Username: strPtr("charlie"), DisplayName: strPtr(""),
				Metadata: map[string]interface{}{"team_name": "Charlie FC"}},
		},
		rosters: []Roster{
			{RosterID: 3, OwnerID: strPtr("u3")},
			{RosterID: 1, OwnerID: strPtr("u1"), Metadata: map[string]interface{}{"team_name": "Roster Team"}},
			{RosterID: 4, OwnerID: strPtr("ghost")},
			{RosterID: 2, OwnerID: strPtr("u2"), Metadata: map[string]interface{}{"team_name": 7}},
			{RosterID: 5},
		},
	}

	teams, err := ListTeams(context.Background(), league, "L1")
	require.NoError(t, err)
	require.Len(t, teams, 5)

	for i, team := range teams {
		require.Equal(t, i+1, team.RosterID)
	}

	require.Equal(t, "Alpha Dog", teams[0].DisplayName)
	require.Equal(t, "alpha", teams[0].Username)
	require.Equal(t, "Roster Team", teams[0].PlatformTeamName)

	require.Equal(t, "bravo", teams[1].DisplayName)
	require.Equal(t, "", teams[1].PlatformTeamName)

	require.Equal(t, "charlie", teams[2].DisplayName)
	require.Equal(t, "Charlie FC", teams[2].PlatformTeamName)

	require.Equal(t, "", teams[3].DisplayName)
	require.Equal(t, "", teams[3].Username)
	require.Equal(t, "ghost", *teams[3].OwnerUserID)

	require.Nil(t, teams[4].OwnerUserID)
}

func TestListTeams_PropagatesErrors(t *testing.T) {
	boom := &HTTPStatusError{URL: "x", StatusCode: 404}

	_, err := ListTeams(context.Background(), &fakeLeague{usersErr: boom}, "L1")
	require.True(t, IsNotFound(err))

	transport := &TransportError{URL: "x", Err: errors.New("dial")}
	_, err = ListTeams(context.Background(), &fakeLeague{rostersErr: transport}, "L1")
	var te *TransportError
	require.True(t, errors.As(err, &te))
}
