package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/valuation"
)

// PlayerService covers the player-pool reads and the note annotation the
// draft room edits directly.
type PlayerService struct {
	playerRepo player.Repository
	logger     *slog.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerService{playerRepo: playerRepo, logger: logger}
}

// PlayerFilter narrows ListPlayers. Zero value lists everyone.
type PlayerFilter struct {
	Kind          player.Kind
	UndraftedOnly bool
	Limit         int
}

// ListPlayers returns players sorted by dollar value descending.
func (s *PlayerService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	var (
		players []player.Player
		err     error
	)
	switch {
	case filter.Kind != "" && filter.UndraftedOnly:
		players, err = s.playerRepo.ListUndraftedByKind(ctx, filter.Kind)
	case filter.Kind != "":
		players, err = s.playerRepo.ListByKind(ctx, filter.Kind)
	case filter.UndraftedOnly:
		players, err = s.playerRepo.ListUndrafted(ctx)
	default:
		players, err = s.playerRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].DollarValue != players[j].DollarValue {
			return players[i].DollarValue > players[j].DollarValue
		}
		return players[i].ID < players[j].ID
	})

	if filter.Limit > 0 && len(players) > filter.Limit {
		players = players[:filter.Limit]
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}

// SetNote stores a free-text annotation on a player. An empty note
// clears it.
func (s *PlayerService) SetNote(ctx context.Context, playerID, note string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SetNote")
	defer span.End()

	if _, ok, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	if err := s.playerRepo.SetNote(ctx, playerID, note); err != nil {
		return fmt.Errorf("set note: %w", err)
	}

	s.logger.DebugContext(ctx, "player note updated", "player_id", playerID)
	return nil
}

// Surplus reports how much value a pick returned over its price, spread
// across categories in proportion to the player's score breakdown.
func (s *PlayerService) Surplus(ctx context.Context, playerID string, pricePaid int) (map[string]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Surplus")
	defer span.End()

	p, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return valuation.CategorySurplus(p.Breakdown, p.SGP, p.DollarValue, pricePaid), nil
}
