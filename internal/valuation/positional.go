package valuation

import (
	"sort"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

// ValuePoolPositional is ValuePool with position-aware replacement levels.
//
// Instead of one pool-wide replacement player, each position with
// league-wide demand gets its own replacement: the Nth-best eligible player
// where N is that position's demand. A player's score is the best score
// across the positions they are eligible for, so a catcher is measured
// against the thin catcher pool rather than against first basemen.
// Denominators stay pool-wide: the standings-gain unit for a category does
// not depend on where a player fields.
func ValuePoolPositional(pool []player.Player, poolSize int, budget float64, cats []Category, minBid int, demand map[string]int) []Result {
	if len(pool) == 0 {
		return nil
	}

	ranked := rankByPreliminaryValue(pool)

	cut := poolSize
	if cut > len(ranked) {
		cut = len(ranked)
	}
	draftable := ranked[:cut]
	if len(draftable) == 0 {
		return nil
	}
	overallReplacement := draftable[len(draftable)-1]

	denoms := sgpDenominators(draftable, cats)
	replacements := positionalReplacements(ranked, demand)

	results := make([]Result, 0, len(ranked))
	for _, p := range draftable {
		sgp, breakdown := bestPositionalSGP(p, cats, replacements, demand, overallReplacement, denoms)
		results = append(results, Result{
			PlayerID:  p.ID,
			SGP:       sgp,
			Breakdown: breakdown,
		})
	}

	assignDollarValues(results, budget, minBid)

	for _, p := range ranked[cut:] {
		results = append(results, Result{
			PlayerID:    p.ID,
			SGP:         0,
			Breakdown:   zeroBreakdown(cats),
			DollarValue: float64(minBid),
		})
	}

	return results
}

// positionalReplacements finds the replacement-level player per position:
// rank the whole pool's eligible players and take the one at the position's
// demand index (or the worst eligible when supply runs short).
func positionalReplacements(ranked []player.Player, demand map[string]int) map[string]player.Player {
	replacements := make(map[string]player.Player)

	for pos, need := range demand {
		if need <= 0 {
			continue
		}

		var eligible []player.Player
		for _, p := range ranked {
			if player.CanFillSlot(p.Positions, pos, p.Kind) {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		idx := need
		if idx > len(eligible) {
			idx = len(eligible)
		}
		replacements[pos] = eligible[idx-1]
	}

	return replacements
}

// bestPositionalSGP scores a player at every eligible position with a
// computed replacement level and keeps the best total. Players with no
// eligible replacement (e.g. DH-only in a league without a UTIL demand
// entry) fall back to the overall pool replacement.
func bestPositionalSGP(
	p player.Player,
	cats []Category,
	replacements map[string]player.Player,
	demand map[string]int,
	overall player.Player,
	denoms map[string]float64,
) (float64, map[string]float64) {
	positions := eligibleDemandPositions(p, demand)

	var (
		found         bool
		bestSGP       float64
		bestBreakdown map[string]float64
	)

	for _, pos := range positions {
		replacement, ok := replacements[pos]
		if !ok {
			continue
		}
		sgp, breakdown := playerSGP(p, cats, replacement, denoms)
		if !found || sgp > bestSGP {
			found = true
			bestSGP = sgp
			bestBreakdown = breakdown
		}
	}

	if !found {
		return playerSGP(p, cats, overall, denoms)
	}

	return bestSGP, bestBreakdown
}

// eligibleDemandPositions lists the demanded positions a player can fill,
// highest demand first so fallbacks prefer the deepest slot.
func eligibleDemandPositions(p player.Player, demand map[string]int) []string {
	var positions []string
	for pos, need := range demand {
		if need <= 0 {
			continue
		}
		if player.CanFillSlot(p.Positions, pos, p.Kind) {
			positions = append(positions, pos)
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		if demand[positions[i]] != demand[positions[j]] {
			return demand[positions[i]] > demand[positions[j]]
		}
		return positions[i] < positions[j]
	})

	return positions
}
