package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
)

func TestDraftRepository_StateLifecycle(t *testing.T) {
	repo := NewDraftRepository()

	_, ok, err := repo.GetState(t.Context())
	require.NoError(t, err)
	require.False(t, ok)

	state := draft.State{ID: "draft-1", Mode: draft.ModeAuction, NumTeams: 12, Active: true}
	require.NoError(t, repo.SaveState(t.Context(), state))

	got, ok, err := repo.GetState(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "draft-1", got.ID)

	require.NoError(t, repo.DeleteState(t.Context()))
	_, ok, err = repo.GetState(t.Context())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDraftRepository_TeamsKeepInsertionOrder(t *testing.T) {
	repo := NewDraftRepository()

	require.NoError(t, repo.SaveTeam(t.Context(), draft.Team{ID: "t1", Name: "Alpha", IsUserTeam: true}))
	require.NoError(t, repo.SaveTeam(t.Context(), draft.Team{ID: "t2", Name: "Bravo"}))
	require.NoError(t, repo.SaveTeam(t.Context(), draft.Team{ID: "t3", Name: "Charlie"}))

	teams, err := repo.ListTeams(t.Context())
	require.NoError(t, err)
	require.Len(t, teams, 3)
	require.Equal(t, "t1", teams[0].ID)
	require.Equal(t, "t3", teams[2].ID)

	// Updating an existing team must not duplicate it.
	require.NoError(t, repo.SaveTeam(t.Context(), draft.Team{ID: "t2", Name: "Bravo Renamed"}))
	teams, err = repo.ListTeams(t.Context())
	require.NoError(t, err)
	require.Len(t, teams, 3)
	require.Equal(t, "Bravo Renamed", teams[1].Name)

	user, ok, err := repo.GetUserTeam(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "t1", user.ID)
}

func TestDraftRepository_PickLifecycle(t *testing.T) {
	repo := NewDraftRepository()

	price := 17
	require.NoError(t, repo.SavePick(t.Context(), draft.Pick{ID: "pk1", TeamID: "t1", PlayerID: "h1", Price: &price, PickNumber: 1}))
	require.NoError(t, repo.SavePick(t.Context(), draft.Pick{ID: "pk2", TeamID: "t2", PlayerID: "h2", PickNumber: 2}))

	pick, ok, err := repo.GetPick(t.Context(), "pk1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "h1", pick.PlayerID)
	require.Equal(t, 17, *pick.Price)

	picks, err := repo.ListPicks(t.Context())
	require.NoError(t, err)
	require.Len(t, picks, 2)

	byTeam, err := repo.ListPicksByTeam(t.Context(), "t2")
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	require.Equal(t, "pk2", byTeam[0].ID)

	require.NoError(t, repo.DeletePick(t.Context(), "pk1"))
	_, ok, err = repo.GetPick(t.Context(), "pk1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.DeleteAllPicks(t.Context()))
	picks, err = repo.ListPicks(t.Context())
	require.NoError(t, err)
	require.Empty(t, picks)
}

func TestDraftRepository_DeleteAllTeams(t *testing.T) {
	repo := NewDraftRepository()
	require.NoError(t, repo.SaveTeam(t.Context(), draft.Team{ID: "t1", Name: "Alpha"}))

	require.NoError(t, repo.DeleteAllTeams(t.Context()))

	teams, err := repo.ListTeams(t.Context())
	require.NoError(t, err)
	require.Empty(t, teams)
}
