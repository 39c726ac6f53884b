package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetState(ctx context.Context) (draft.State, bool, error) {
	query := `SELECT id, league_name, mode, num_teams, budget_per_team, current_pick,
		is_active, values_stale, team_order, created_at, updated_at
		FROM draft_state LIMIT 1`

	var row draftStateTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return draft.State{}, false, nil
		}
		return draft.State{}, false, fmt.Errorf("select draft state: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) SaveState(ctx context.Context, state draft.State) error {
	query := `INSERT INTO draft_state
		(id, league_name, mode, num_teams, budget_per_team, current_pick,
		 is_active, values_stale, team_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
		 league_name = EXCLUDED.league_name,
		 mode = EXCLUDED.mode,
		 num_teams = EXCLUDED.num_teams,
		 budget_per_team = EXCLUDED.budget_per_team,
		 current_pick = EXCLUDED.current_pick,
		 is_active = EXCLUDED.is_active,
		 values_stale = EXCLUDED.values_stale,
		 team_order = EXCLUDED.team_order,
		 updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		state.ID, state.LeagueName, string(state.Mode), state.NumTeams, state.BudgetPerTeam,
		state.CurrentPick, state.Active, state.ValuesStale, pq.StringArray(state.Order),
		state.CreatedAt, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert draft state: %w", err)
	}

	return nil
}

func (r *DraftRepository) DeleteState(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_state`); err != nil {
		return fmt.Errorf("delete draft state: %w", err)
	}
	return nil
}

func (r *DraftRepository) ListTeams(ctx context.Context) ([]draft.Team, error) {
	query := `SELECT id, name, budget, is_user_team, pick_ids, created_at FROM teams ORDER BY created_at, id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]draft.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DraftRepository) GetTeam(ctx context.Context, teamID string) (draft.Team, bool, error) {
	query := `SELECT id, name, budget, is_user_team, pick_ids, created_at FROM teams WHERE id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return draft.Team{}, false, nil
		}
		return draft.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) GetUserTeam(ctx context.Context) (draft.Team, bool, error) {
	query := `SELECT id, name, budget, is_user_team, pick_ids, created_at FROM teams WHERE is_user_team LIMIT 1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return draft.Team{}, false, nil
		}
		return draft.Team{}, false, fmt.Errorf("select user team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) SaveTeam(ctx context.Context, team draft.Team) error {
	query := `INSERT INTO teams (id, name, budget, is_user_team, pick_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		 name = EXCLUDED.name,
		 budget = EXCLUDED.budget,
		 is_user_team = EXCLUDED.is_user_team,
		 pick_ids = EXCLUDED.pick_ids`

	_, err := r.db.ExecContext(ctx, query,
		team.ID, team.Name, team.Budget, team.IsUserTeam, pq.StringArray(team.PickIDs), team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}

	return nil
}

func (r *DraftRepository) DeleteAllTeams(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams`); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	return nil
}

func (r *DraftRepository) ListPicks(ctx context.Context) ([]draft.Pick, error) {
	query := `SELECT id, team_id, player_id, price, pick_number, round_number, pick_in_round, picked_at
		FROM draft_picks ORDER BY pick_number`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	return picksToDomain(rows), nil
}

func (r *DraftRepository) ListPicksByTeam(ctx context.Context, teamID string) ([]draft.Pick, error) {
	query := `SELECT id, team_id, player_id, price, pick_number, round_number, pick_in_round, picked_at
		FROM draft_picks WHERE team_id = $1 ORDER BY pick_number`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select picks by team: %w", err)
	}

	return picksToDomain(rows), nil
}

func (r *DraftRepository) GetPick(ctx context.Context, pickID string) (draft.Pick, bool, error) {
	query := `SELECT id, team_id, player_id, price, pick_number, round_number, pick_in_round, picked_at
		FROM draft_picks WHERE id = $1`

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, pickID); err != nil {
		if isNotFound(err) {
			return draft.Pick{}, false, nil
		}
		return draft.Pick{}, false, fmt.Errorf("select pick by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) SavePick(ctx context.Context, pick draft.Pick) error {
	query := `INSERT INTO draft_picks
		(id, team_id, player_id, price, pick_number, round_number, pick_in_round, picked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
		 team_id = EXCLUDED.team_id,
		 player_id = EXCLUDED.player_id,
		 price = EXCLUDED.price,
		 pick_number = EXCLUDED.pick_number,
		 round_number = EXCLUDED.round_number,
		 pick_in_round = EXCLUDED.pick_in_round`

	var price any
	if pick.Price != nil {
		price = *pick.Price
	}

	_, err := r.db.ExecContext(ctx, query,
		pick.ID, pick.TeamID, pick.PlayerID, price,
		pick.PickNumber, pick.RoundNumber, pick.PickInRound, pick.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("upsert pick: %w", err)
	}

	return nil
}

func (r *DraftRepository) DeletePick(ctx context.Context, pickID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_picks WHERE id = $1`, pickID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	return nil
}

func (r *DraftRepository) DeleteAllPicks(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_picks`); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}
	return nil
}
