package league

import (
	"fmt"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/player"
)

// Settings is the immutable league configuration handed into every core
// operation. Nothing in the engine reads configuration from anywhere else.
type Settings struct {
	Name          string
	NumTeams      int
	BudgetPerTeam int
	MinBid        int

	// RosterSlots maps slot codes (C, 1B, CI, UTIL, SP, P, BN, ...) to the
	// number of slots per team.
	RosterSlots map[string]int

	HittingCategories  []string
	PitchingCategories []string

	// HitterBudgetPct splits each pool's share of the league budget.
	HitterBudgetPct float64

	UsePositionalAdjustments bool

	Mode          draft.Mode
	RoundsPerTeam int
}

// Default returns a standard 12-team 5x5 auction league.
func Default() Settings {
	return Settings{
		Name:          "My League",
		NumTeams:      12,
		BudgetPerTeam: 260,
		MinBid:        1,
		RosterSlots: map[string]int{
			"C":    1,
			"1B":   1,
			"2B":   1,
			"3B":   1,
			"SS":   1,
			"CI":   0,
			"MI":   0,
			"OF":   3,
			"UTIL": 1,
			"SP":   2,
			"RP":   2,
			"P":    2,
			"BN":   3,
		},
		HittingCategories:        []string{"R", "HR", "RBI", "SB", "AVG"},
		PitchingCategories:       []string{"W", "SV", "K", "ERA", "WHIP"},
		HitterBudgetPct:          0.68,
		UsePositionalAdjustments: true,
		Mode:                     draft.ModeAuction,
		RoundsPerTeam:            23,
	}
}

func (s Settings) Validate() error {
	if s.NumTeams <= 0 {
		return fmt.Errorf("league needs at least one team")
	}
	if s.BudgetPerTeam < 0 {
		return fmt.Errorf("budget per team cannot be negative")
	}
	if s.MinBid < 0 {
		return fmt.Errorf("minimum bid cannot be negative")
	}
	if s.HitterBudgetPct < 0 || s.HitterBudgetPct > 1 {
		return fmt.Errorf("hitter budget pct must be within [0,1], got %v", s.HitterBudgetPct)
	}
	if _, ok := draft.AllModes[s.Mode]; !ok {
		return fmt.Errorf("invalid draft mode: %s", s.Mode)
	}

	return nil
}

// TotalLeagueBudget is the dollars available across all teams.
func (s Settings) TotalLeagueBudget() int {
	return s.NumTeams * s.BudgetPerTeam
}

// HitterSlotsPerTeam counts hitter roster slots per team, bench excluded.
func (s Settings) HitterSlotsPerTeam() int {
	total := 0
	for _, slot := range player.HitterSlotPriority {
		total += s.RosterSlots[slot]
	}
	return total
}

// PitcherSlotsPerTeam counts pitcher roster slots per team, bench excluded.
func (s Settings) PitcherSlotsPerTeam() int {
	total := 0
	for _, slot := range player.PitcherSlotPriority {
		total += s.RosterSlots[slot]
	}
	return total
}

func (s Settings) TotalRosterSlots() int {
	return s.HitterSlotsPerTeam() + s.PitcherSlotsPerTeam()
}

// TotalHittersDrafted is the league-wide hitter pool size.
func (s Settings) TotalHittersDrafted() int {
	return s.HitterSlotsPerTeam() * s.NumTeams
}

// TotalPitchersDrafted is the league-wide pitcher pool size.
func (s Settings) TotalPitchersDrafted() int {
	return s.PitcherSlotsPerTeam() * s.NumTeams
}

// SlotsPerTeamForKind dispatches on the player kind once instead of
// branching on strings at call sites.
func (s Settings) SlotsPerTeamForKind(kind player.Kind) int {
	if kind == player.KindPitcher {
		return s.PitcherSlotsPerTeam()
	}
	return s.HitterSlotsPerTeam()
}

// CategoriesForKind returns the active category codes for a pool.
func (s Settings) CategoriesForKind(kind player.Kind) []string {
	if kind == player.KindPitcher {
		return s.PitchingCategories
	}
	return s.HittingCategories
}

// BudgetShare splits a budget between the two pools.
func (s Settings) BudgetShare(kind player.Kind, budget float64) float64 {
	if kind == player.KindPitcher {
		return budget * (1 - s.HitterBudgetPct)
	}
	return budget * s.HitterBudgetPct
}

// PositionalDemand estimates how many players at each base position will be
// drafted league-wide. Composite slots split their demand across their
// constituent positions: CI between 1B/3B, MI between 2B/SS, generic P
// between SP/RP. UTIL demand stays in overall pool sizing because UTIL
// players are valued at their primary position.
func (s Settings) PositionalDemand() map[string]int {
	demand := make(map[string]int)

	for _, pos := range []string{"C", "1B", "2B", "3B", "SS", "OF", "SP", "RP"} {
		demand[pos] = s.RosterSlots[pos] * s.NumTeams
	}

	if ci := s.RosterSlots["CI"] * s.NumTeams; ci > 0 {
		demand["1B"] += ci / 2
		demand["3B"] += ci - ci/2
	}
	if mi := s.RosterSlots["MI"] * s.NumTeams; mi > 0 {
		demand["2B"] += mi / 2
		demand["SS"] += mi - mi/2
	}
	if p := s.RosterSlots["P"] * s.NumTeams; p > 0 {
		demand["SP"] += p / 2
		demand["RP"] += p - p/2
	}

	return demand
}
