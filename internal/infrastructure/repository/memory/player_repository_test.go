package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

func testPool() []player.Player {
	return []player.Player{
		{ID: "h1", Name: "Hitter One", Kind: player.KindHitter},
		{ID: "h2", Name: "Hitter Two", Kind: player.KindHitter},
		{ID: "p1", Name: "Pitcher One", Kind: player.KindPitcher},
	}
}

func TestPlayerRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := NewPlayerRepository(testPool())

	got, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "h1", got[0].ID)
	require.Equal(t, "p1", got[2].ID)
}

func TestPlayerRepository_ListByKind(t *testing.T) {
	repo := NewPlayerRepository(testPool())

	hitters, err := repo.ListByKind(t.Context(), player.KindHitter)
	require.NoError(t, err)
	require.Len(t, hitters, 2)

	pitchers, err := repo.ListByKind(t.Context(), player.KindPitcher)
	require.NoError(t, err)
	require.Len(t, pitchers, 1)
	require.Equal(t, "p1", pitchers[0].ID)
}

func TestPlayerRepository_DraftLifecycle(t *testing.T) {
	repo := NewPlayerRepository(testPool())

	require.NoError(t, repo.SetDrafted(t.Context(), "h1", "pick-1"))

	p, ok, err := repo.GetByID(t.Context(), "h1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, p.Drafted)
	require.Equal(t, "pick-1", p.PickID)

	byPick, ok, err := repo.GetByPickID(t.Context(), "pick-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "h1", byPick.ID)

	undrafted, err := repo.ListUndrafted(t.Context())
	require.NoError(t, err)
	require.Len(t, undrafted, 2)

	count, err := repo.CountDraftedByKind(t.Context(), player.KindHitter)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, repo.ClearDrafted(t.Context(), "h1"))
	p, _, err = repo.GetByID(t.Context(), "h1")
	require.NoError(t, err)
	require.False(t, p.Drafted)
	require.Empty(t, p.PickID)
}

func TestPlayerRepository_ClearAllDrafted(t *testing.T) {
	repo := NewPlayerRepository(testPool())
	require.NoError(t, repo.SetDrafted(t.Context(), "h1", "pick-1"))
	require.NoError(t, repo.SetDrafted(t.Context(), "p1", "pick-2"))

	require.NoError(t, repo.ClearAllDrafted(t.Context()))

	undrafted, err := repo.ListUndrafted(t.Context())
	require.NoError(t, err)
	require.Len(t, undrafted, 3)
}

func TestPlayerRepository_UpdateValues(t *testing.T) {
	repo := NewPlayerRepository(testPool())

	err := repo.UpdateValues(t.Context(), []player.ValueUpdate{
		{PlayerID: "h1", SGP: 3.2, DollarValue: 24, Breakdown: map[string]float64{"hr": 1.1}},
		{PlayerID: "ghost", SGP: 9, DollarValue: 99},
	})
	require.NoError(t, err)

	p, _, err := repo.GetByID(t.Context(), "h1")
	require.NoError(t, err)
	require.Equal(t, 3.2, p.SGP)
	require.Equal(t, 24.0, p.DollarValue)
	require.Equal(t, 1.1, p.Breakdown["hr"])

	// Unknown IDs are skipped, not created.
	_, ok, err := repo.GetByID(t.Context(), "ghost")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPlayerRepository_GetByPickID_EmptyNeverMatches(t *testing.T) {
	repo := NewPlayerRepository(testPool())

	_, ok, err := repo.GetByPickID(t.Context(), "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSeedPlayers_Shape(t *testing.T) {
	players := SeedPlayers()
	require.NotEmpty(t, players)

	hitters := 0
	pitchers := 0
	for _, p := range players {
		require.NoError(t, p.Validate())
		switch p.Kind {
		case player.KindHitter:
			hitters++
		case player.KindPitcher:
			pitchers++
		}
	}
	require.Greater(t, hitters, 0)
	require.Greater(t, pitchers, 0)
}
