package usecase

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/infrastructure/repository/memory"
)

func newPlayerService(t *testing.T, players []player.Player) (*PlayerService, *memory.PlayerRepository) {
	t.Helper()

	repo := memory.NewPlayerRepository(players)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlayerService(repo, logger), repo
}

func TestListPlayers_SortAndFilter(t *testing.T) {
	players := []player.Player{
		{ID: "h1", Name: "Hitter One", Kind: player.KindHitter, DollarValue: 10},
		{ID: "h2", Name: "Hitter Two", Kind: player.KindHitter, DollarValue: 30},
		{ID: "p1", Name: "Pitcher One", Kind: player.KindPitcher, DollarValue: 20},
	}
	service, repo := newPlayerService(t, players)

	t.Run("sorted by value descending", func(t *testing.T) {
		got, err := service.ListPlayers(t.Context(), PlayerFilter{})
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(got) != 3 || got[0].ID != "h2" || got[1].ID != "p1" || got[2].ID != "h1" {
			t.Fatalf("unexpected order: %v", got)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		got, err := service.ListPlayers(t.Context(), PlayerFilter{Kind: player.KindPitcher})
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(got) != 1 || got[0].ID != "p1" {
			t.Fatalf("unexpected pitchers: %v", got)
		}
	})

	t.Run("undrafted only", func(t *testing.T) {
		if err := repo.SetDrafted(t.Context(), "h2", "pick-1"); err != nil {
			t.Fatalf("set drafted: %v", err)
		}
		got, err := service.ListPlayers(t.Context(), PlayerFilter{UndraftedOnly: true})
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		for _, p := range got {
			if p.ID == "h2" {
				t.Fatalf("drafted player listed as undrafted")
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		got, err := service.ListPlayers(t.Context(), PlayerFilter{Limit: 1})
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("limit ignored, got %d players", len(got))
		}
	})
}

func TestListPlayers_EqualValueTiebreak(t *testing.T) {
	players := []player.Player{
		{ID: "b", Name: "Beta", Kind: player.KindHitter, DollarValue: 5},
		{ID: "a", Name: "Alpha", Kind: player.KindHitter, DollarValue: 5},
	}
	service, _ := newPlayerService(t, players)

	got, err := service.ListPlayers(t.Context(), PlayerFilter{})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("tied values should order by id, got %v", got)
	}
}

func TestGetPlayer(t *testing.T) {
	service, _ := newPlayerService(t, []player.Player{
		{ID: "h1", Name: "Hitter One", Kind: player.KindHitter},
	})

	p, err := service.GetPlayer(t.Context(), "h1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Name != "Hitter One" {
		t.Fatalf("unexpected player: %+v", p)
	}

	if _, err := service.GetPlayer(t.Context(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetNote(t *testing.T) {
	service, repo := newPlayerService(t, []player.Player{
		{ID: "h1", Name: "Hitter One", Kind: player.KindHitter},
	})

	if err := service.SetNote(t.Context(), "h1", "sleeper"); err != nil {
		t.Fatalf("set note: %v", err)
	}
	p, _, err := repo.GetByID(t.Context(), "h1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Note != "sleeper" {
		t.Fatalf("note = %q, want sleeper", p.Note)
	}

	if err := service.SetNote(t.Context(), "h1", ""); err != nil {
		t.Fatalf("clear note: %v", err)
	}
	p, _, err = repo.GetByID(t.Context(), "h1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Note != "" {
		t.Fatalf("note not cleared: %q", p.Note)
	}

	if err := service.SetNote(t.Context(), "ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSurplus(t *testing.T) {
	service, _ := newPlayerService(t, []player.Player{
		{
			ID:          "h1",
			Name:        "Hitter One",
			Kind:        player.KindHitter,
			SGP:         4,
			DollarValue: 30,
			Breakdown:   map[string]float64{"r": 2, "hr": 1, "rbi": 1},
		},
	})

	surplus, err := service.Surplus(t.Context(), "h1", 22)
	if err != nil {
		t.Fatalf("surplus: %v", err)
	}

	// $8 of surplus splits along the breakdown weights.
	if got := surplus["r"]; math.Abs(got-4) > 1e-9 {
		t.Fatalf("r surplus = %v, want 4", got)
	}
	if got := surplus["hr"]; math.Abs(got-2) > 1e-9 {
		t.Fatalf("hr surplus = %v, want 2", got)
	}

	if _, err := service.Surplus(t.Context(), "ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
