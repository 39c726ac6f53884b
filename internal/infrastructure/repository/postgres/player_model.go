package postgres

import (
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

type playerTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	MLBTeam     string         `db:"mlb_team"`
	Positions   pq.StringArray `db:"positions"`
	PlayerType  string         `db:"player_type"`
	PA          float64        `db:"pa"`
	AB          float64        `db:"ab"`
	H           float64        `db:"h"`
	R           float64        `db:"r"`
	HR          float64        `db:"hr"`
	RBI         float64        `db:"rbi"`
	SB          float64        `db:"sb"`
	AVG         float64        `db:"avg"`
	OBP         float64        `db:"obp"`
	SLG         float64        `db:"slg"`
	IP          float64        `db:"ip"`
	W           float64        `db:"w"`
	SV          float64        `db:"sv"`
	K           float64        `db:"k"`
	ERA         float64        `db:"era"`
	WHIP        float64        `db:"whip"`
	SGP         float64        `db:"sgp"`
	Breakdown   []byte         `db:"sgp_breakdown"`
	DollarValue float64        `db:"dollar_value"`
	IsDrafted   bool           `db:"is_drafted"`
	PickID      sql.NullString `db:"draft_pick_id"`
	Note        sql.NullString `db:"note"`
}

func (m playerTableModel) toDomain() (player.Player, error) {
	p := player.Player{
		ID:        m.ID,
		Name:      m.Name,
		MLBTeam:   m.MLBTeam,
		Positions: []string(m.Positions),
		Kind:      player.Kind(m.PlayerType),
		Batting: player.BattingStats{
			PA:  m.PA,
			AB:  m.AB,
			H:   m.H,
			R:   m.R,
			HR:  m.HR,
			RBI: m.RBI,
			SB:  m.SB,
			AVG: m.AVG,
			OBP: m.OBP,
			SLG: m.SLG,
		},
		Pitching: player.PitchingStats{
			IP:   m.IP,
			W:    m.W,
			SV:   m.SV,
			K:    m.K,
			ERA:  m.ERA,
			WHIP: m.WHIP,
		},
		SGP:         m.SGP,
		DollarValue: m.DollarValue,
		Drafted:     m.IsDrafted,
		PickID:      m.PickID.String,
		Note:        m.Note.String,
	}

	if len(m.Breakdown) > 0 {
		if err := sonic.Unmarshal(m.Breakdown, &p.Breakdown); err != nil {
			return player.Player{}, fmt.Errorf("decode sgp breakdown for %s: %w", m.ID, err)
		}
	}

	return p, nil
}

func playersToDomain(rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
