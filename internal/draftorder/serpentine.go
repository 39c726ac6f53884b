// Package draftorder derives snake-draft turn order purely from the pick
// counter. Nothing here is stateful: undoing a pick rewinds the counter
// and every answer below comes out right with no extra bookkeeping.
package draftorder

import "fmt"

// Slot is one position in the full serpentine order.
type Slot struct {
	Round       int
	PickInRound int
	TeamID      string
}

// FullOrder generates the complete serpentine order: odd rounds walk the
// stored order, even rounds walk it backwards.
func FullOrder(order []string, rounds int) []Slot {
	numTeams := len(order)
	slots := make([]Slot, 0, numTeams*rounds)

	for round := 1; round <= rounds; round++ {
		for pickInRound := 1; pickInRound <= numTeams; pickInRound++ {
			slots = append(slots, Slot{
				Round:       round,
				PickInRound: pickInRound,
				TeamID:      teamAt(order, round, pickInRound),
			})
		}
	}

	return slots
}

// Position converts a total pick counter into the 1-based round and
// position within the round of the NEXT pick.
func Position(numTeams, picksMade int) (round, pickInRound int) {
	if numTeams <= 0 {
		return 1, 1
	}
	return picksMade/numTeams + 1, picksMade%numTeams + 1
}

// CurrentDrafter returns the team on the clock after picksMade picks, or
// false when the order is empty.
func CurrentDrafter(order []string, picksMade int) (string, bool) {
	numTeams := len(order)
	if numTeams == 0 {
		return "", false
	}

	round, pickInRound := Position(numTeams, picksMade)
	return teamAt(order, round, pickInRound), true
}

// IsTeamsTurn reports whether teamID is on the clock.
func IsTeamsTurn(order []string, picksMade int, teamID string) bool {
	current, ok := CurrentDrafter(order, picksMade)
	return ok && current == teamID
}

// PicksUntilTurn counts how many picks happen before teamID is on the
// clock (0 when it already is). The forward search is bounded at 2N+1
// slots, which always covers the team's next turn in a serpentine order.
// Returns false for teams not in the order.
func PicksUntilTurn(order []string, picksMade int, teamID string) (int, bool) {
	numTeams := len(order)
	if numTeams == 0 {
		return 0, false
	}

	found := false
	for _, id := range order {
		if id == teamID {
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	maxSearch := numTeams*2 + 1
	for away := 0; away < maxSearch; away++ {
		round, pickInRound := Position(numTeams, picksMade+away)
		if teamAt(order, round, pickInRound) == teamID {
			return away, true
		}
	}

	return 0, false
}

// OverallPickNumber converts a 1-based round/pick pair to the overall
// 1-based pick number.
func OverallPickNumber(round, pickInRound, numTeams int) int {
	return (round-1)*numTeams + pickInRound
}

// FormatPick renders a pick for display, e.g.
// "Round 3, Pick 7 (31st overall)".
func FormatPick(round, pickInRound, numTeams int) string {
	overall := OverallPickNumber(round, pickInRound, numTeams)
	return fmt.Sprintf("Round %d, Pick %d (%d%s overall)", round, pickInRound, overall, ordinalSuffix(overall))
}

func teamAt(order []string, round, pickInRound int) string {
	numTeams := len(order)
	if round%2 == 1 {
		return order[pickInRound-1]
	}
	return order[numTeams-pickInRound]
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
