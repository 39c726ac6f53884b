package player

// Composite roster slots mapped to their constituent base positions.
// UTIL and P have no constituents: UTIL accepts any hitter, P any pitcher.
var CompositeSlots = map[string][]string{
	"CI":   {"1B", "3B"},
	"MI":   {"2B", "SS"},
	"UTIL": nil,
	"P":    nil,
}

// Roster slots a league can configure, ordered most restrictive first.
// The needs engine assigns players to slots in this order so a catcher
// lands at C before UTIL swallows him.
var (
	HitterSlotPriority  = []string{"C", "1B", "2B", "3B", "SS", "OF", "CI", "MI", "UTIL"}
	PitcherSlotPriority = []string{"SP", "RP", "P"}
)

// ScarcityPositions are the positions the scarcity report covers.
var ScarcityPositions = []string{"C", "1B", "2B", "3B", "SS", "CI", "MI", "OF", "SP", "RP"}

// ExpandSlot returns the base positions a composite slot spans. Base
// positions come back as a single-element slice; UTIL/P come back empty
// because their eligibility is kind-wide.
func ExpandSlot(slot string) []string {
	if constituents, ok := CompositeSlots[slot]; ok {
		return constituents
	}
	return []string{slot}
}

// CanFillSlot reports whether a player with the given eligible positions
// and kind can occupy a roster slot.
func CanFillSlot(positions []string, slot string, kind Kind) bool {
	if slot == "UTIL" && kind == KindHitter {
		return true
	}
	if slot == "P" && kind == KindPitcher {
		return true
	}
	if constituents, ok := CompositeSlots[slot]; ok {
		for _, base := range constituents {
			if containsPosition(positions, base) {
				return true
			}
		}
		return false
	}

	return containsPosition(positions, slot)
}

func containsPosition(positions []string, want string) bool {
	for _, pos := range positions {
		if pos == want {
			return true
		}
	}
	return false
}
