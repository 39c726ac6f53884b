package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
)

type draftStateTableModel struct {
	ID            string         `db:"id"`
	LeagueName    string         `db:"league_name"`
	Mode          string         `db:"mode"`
	NumTeams      int            `db:"num_teams"`
	BudgetPerTeam int            `db:"budget_per_team"`
	CurrentPick   int            `db:"current_pick"`
	IsActive      bool           `db:"is_active"`
	ValuesStale   bool           `db:"values_stale"`
	TeamOrder     pq.StringArray `db:"team_order"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m draftStateTableModel) toDomain() draft.State {
	return draft.State{
		ID:            m.ID,
		LeagueName:    m.LeagueName,
		Mode:          draft.Mode(m.Mode),
		NumTeams:      m.NumTeams,
		BudgetPerTeam: m.BudgetPerTeam,
		CurrentPick:   m.CurrentPick,
		Active:        m.IsActive,
		ValuesStale:   m.ValuesStale,
		Order:         []string(m.TeamOrder),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type teamTableModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Budget     int            `db:"budget"`
	IsUserTeam bool           `db:"is_user_team"`
	PickIDs    pq.StringArray `db:"pick_ids"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (m teamTableModel) toDomain() draft.Team {
	return draft.Team{
		ID:         m.ID,
		Name:       m.Name,
		Budget:     m.Budget,
		IsUserTeam: m.IsUserTeam,
		PickIDs:    []string(m.PickIDs),
		CreatedAt:  m.CreatedAt,
	}
}

type pickTableModel struct {
	ID          string        `db:"id"`
	TeamID      string        `db:"team_id"`
	PlayerID    string        `db:"player_id"`
	Price       sql.NullInt64 `db:"price"`
	PickNumber  int           `db:"pick_number"`
	RoundNumber int           `db:"round_number"`
	PickInRound int           `db:"pick_in_round"`
	Timestamp   time.Time     `db:"picked_at"`
}

func (m pickTableModel) toDomain() draft.Pick {
	p := draft.Pick{
		ID:          m.ID,
		TeamID:      m.TeamID,
		PlayerID:    m.PlayerID,
		PickNumber:  m.PickNumber,
		RoundNumber: m.RoundNumber,
		PickInRound: m.PickInRound,
		Timestamp:   m.Timestamp,
	}
	if m.Price.Valid {
		price := int(m.Price.Int64)
		p.Price = &price
	}
	return p
}

func picksToDomain(rows []pickTableModel) []draft.Pick {
	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
