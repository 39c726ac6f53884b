package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

const playerSelectColumns = `
	id, name, mlb_team, positions, player_type,
	pa, ab, h, r, hr, rbi, sb, avg, obp, slg,
	ip, w, sv, k, era, whip,
	sgp, sgp_breakdown, dollar_value,
	is_drafted, draft_pick_id, note`

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersToDomain(rows)
}

func (r *PlayerRepository) ListByKind(ctx context.Context, kind player.Kind) ([]player.Player, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE player_type = $1 ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, string(kind)); err != nil {
		return nil, fmt.Errorf("select players by kind: %w", err)
	}

	return playersToDomain(rows)
}

func (r *PlayerRepository) ListUndrafted(ctx context.Context) ([]player.Player, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE NOT is_drafted ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select undrafted players: %w", err)
	}

	return playersToDomain(rows)
}

func (r *PlayerRepository) ListUndraftedByKind(ctx context.Context, kind player.Kind) ([]player.Player, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE NOT is_drafted AND player_type = $1 ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, string(kind)); err != nil {
		return nil, fmt.Errorf("select undrafted players by kind: %w", err)
	}

	return playersToDomain(rows)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}

	return p, true, nil
}

func (r *PlayerRepository) GetByPickID(ctx context.Context, pickID string) (player.Player, bool, error) {
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE draft_pick_id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, pickID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by pick id: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}

	return p, true, nil
}

func (r *PlayerRepository) CountDraftedByKind(ctx context.Context, kind player.Kind) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE is_drafted AND player_type = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, string(kind)); err != nil {
		return 0, fmt.Errorf("count drafted players: %w", err)
	}

	return count, nil
}

func (r *PlayerRepository) UpdateValues(ctx context.Context, updates []player.ValueUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin value update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `UPDATE players SET sgp = $2, sgp_breakdown = $3, dollar_value = $4 WHERE id = $1`

	for _, u := range updates {
		breakdown, err := sonic.Marshal(u.Breakdown)
		if err != nil {
			return fmt.Errorf("encode sgp breakdown for %s: %w", u.PlayerID, err)
		}
		if _, err := tx.ExecContext(ctx, query, u.PlayerID, u.SGP, breakdown, u.DollarValue); err != nil {
			return fmt.Errorf("update values for %s: %w", u.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit value updates: %w", err)
	}

	return nil
}

func (r *PlayerRepository) SetDrafted(ctx context.Context, playerID, pickID string) error {
	query := `UPDATE players SET is_drafted = TRUE, draft_pick_id = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, playerID, pickID); err != nil {
		return fmt.Errorf("mark player drafted: %w", err)
	}

	return nil
}

func (r *PlayerRepository) ClearDrafted(ctx context.Context, playerID string) error {
	query := `UPDATE players SET is_drafted = FALSE, draft_pick_id = NULL WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("clear drafted flag: %w", err)
	}

	return nil
}

func (r *PlayerRepository) ClearAllDrafted(ctx context.Context) error {
	query := `UPDATE players SET is_drafted = FALSE, draft_pick_id = NULL WHERE is_drafted`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear all drafted flags: %w", err)
	}

	return nil
}

func (r *PlayerRepository) SetNote(ctx context.Context, playerID, note string) error {
	query := `UPDATE players SET note = NULLIF($2, '') WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, playerID, note); err != nil {
		return fmt.Errorf("set player note: %w", err)
	}

	return nil
}
