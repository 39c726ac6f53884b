package player

import "fmt"

// Kind separates the two valuation pools. Every player belongs to exactly one.
type Kind string

const (
	KindHitter  Kind = "hitter"
	KindPitcher Kind = "pitcher"
)

var AllKinds = map[Kind]struct{}{
	KindHitter:  {},
	KindPitcher: {},
}

// BattingStats holds a projected season batting line.
type BattingStats struct {
	PA  float64
	AB  float64
	H   float64
	R   float64
	HR  float64
	RBI float64
	SB  float64
	AVG float64
	OBP float64
	SLG float64
}

// PitchingStats holds a projected season pitching line.
type PitchingStats struct {
	IP   float64
	W    float64
	SV   float64
	K    float64
	ERA  float64
	WHIP float64
}

// Player is one entry in the draftable pool: projections in, computed value
// out. SGP, Breakdown and DollarValue are owned by the valuation engine;
// Drafted and PickID are owned by the draft ledger.
type Player struct {
	ID        string
	Name      string
	MLBTeam   string
	Positions []string
	Kind      Kind

	Batting  BattingStats
	Pitching PitchingStats

	SGP         float64
	Breakdown   map[string]float64
	DollarValue float64

	Drafted bool
	PickID  string

	Note string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllKinds[p.Kind]; !ok {
		return fmt.Errorf("invalid player kind: %s", p.Kind)
	}

	return nil
}

// Stat returns the projected value for a category code ("r", "era", ...).
// Unknown codes return zero so valuation never special-cases missing
// projections.
func (p Player) Stat(code string) float64 {
	switch code {
	case "r":
		return p.Batting.R
	case "hr":
		return p.Batting.HR
	case "rbi":
		return p.Batting.RBI
	case "sb":
		return p.Batting.SB
	case "avg":
		return p.Batting.AVG
	case "obp":
		return p.Batting.OBP
	case "slg":
		return p.Batting.SLG
	case "w":
		return p.Pitching.W
	case "sv":
		return p.Pitching.SV
	case "k":
		return p.Pitching.K
	case "era":
		return p.Pitching.ERA
	case "whip":
		return p.Pitching.WHIP
	default:
		return 0
	}
}

// CanPlay reports whether the player is eligible for a roster slot,
// including composite slots.
func (p Player) CanPlay(slot string) bool {
	return CanFillSlot(p.Positions, slot, p.Kind)
}
