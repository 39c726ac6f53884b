package valuation

import (
	"math"
	"sort"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

// Result carries one player's computed valuation. Breakdown maps category
// codes to their SGP contribution and always sums to SGP.
type Result struct {
	PlayerID    string
	SGP         float64
	Breakdown   map[string]float64
	DollarValue float64
}

// ValuePool computes SGP and dollar values for a pool of same-kind players.
//
// poolSize is the number of players expected to be drafted from this pool;
// the last of the top poolSize players by preliminary value sets the
// replacement level. budget is the dollars allocated to this pool. The
// routine never fails: degenerate pools fall back to unit denominators,
// zero contributions and minimum bids.
func ValuePool(pool []player.Player, poolSize int, budget float64, cats []Category, minBid int) []Result {
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
	replacement := draftable[len(draftable)-1]

	denoms := sgpDenominators(draftable, cats)

	results := make([]Result, 0, len(ranked))
	for _, p := range draftable {
		sgp, breakdown := playerSGP(p, cats, replacement, denoms)
		results = append(results, Result{
			PlayerID:  p.ID,
			SGP:       sgp,
			Breakdown: breakdown,
		})
	}

	assignDollarValues(results, budget, minBid)

	// Everyone below the cutoff is replacement fodder: zero score, minimum bid.
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

// rankByPreliminaryValue sorts a copy of the pool descending by the coarse
// heuristic value, breaking ties by ID for deterministic cutoffs.
func rankByPreliminaryValue(pool []player.Player) []player.Player {
	ranked := make([]player.Player, len(pool))
	copy(ranked, pool)

	prelim := make(map[string]float64, len(ranked))
	for _, p := range ranked {
		prelim[p.ID] = PreliminaryValue(p)
	}

	sort.Slice(ranked, func(i, j int) bool {
		vi, vj := prelim[ranked[i].ID], prelim[ranked[j].ID]
		if vi != vj {
			return vi > vj
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// PreliminaryValue is the coarse ranking heuristic that decides who falls
// inside the draftable pool before replacement level is known. The
// constants are tuned for standard 5x5 scoring and are not principled
// beyond that; they only order players, they never reach the final values.
func PreliminaryValue(p player.Player) float64 {
	if p.Kind == player.KindPitcher {
		value := p.Pitching.W / 15.0
		value += p.Pitching.SV / 30.0
		value += p.Pitching.K / 200.0
		if p.Pitching.IP > 0 && p.Pitching.ERA > 0 {
			value += (4.50 - p.Pitching.ERA) * (p.Pitching.IP / 200.0)
		}
		if p.Pitching.IP > 0 && p.Pitching.WHIP > 0 {
			value += (1.35 - p.Pitching.WHIP) * (p.Pitching.IP / 200.0) * 5
		}
		return value
	}

	value := p.Batting.R / 100.0
	value += p.Batting.HR / 30.0
	value += p.Batting.RBI / 100.0
	value += p.Batting.SB / 20.0
	if p.Batting.AB > 0 {
		value += (p.Batting.AVG - 0.250) * (p.Batting.AB / 500.0) * 10
	}
	return value
}

// sgpDenominators computes one standings-gain unit per category: the
// sample standard deviation across the draftable pool, in the weighted
// form each category kind requires. Degenerate samples (fewer than two
// values, zero variance) default to 1.0 so division is always safe.
func sgpDenominators(draftable []player.Player, cats []Category) map[string]float64 {
	denoms := make(map[string]float64, len(cats))

	for _, cat := range cats {
		var values []float64

		switch cat.Kind {
		case Rate:
			for _, p := range draftable {
				if p.Batting.AB > 0 {
					values = append(values, p.Batting.H)
				}
			}
		case Ratio:
			for _, p := range draftable {
				stat := p.Stat(cat.Code)
				if p.Pitching.IP > 0 && stat > 0 {
					values = append(values, stat*p.Pitching.IP)
				}
			}
		default:
			for _, p := range draftable {
				values = append(values, p.Stat(cat.Code))
			}
		}

		denom := 1.0
		if len(values) >= 2 {
			if sd := sampleStdev(values); sd > 0 {
				denom = sd
			}
		}
		denoms[cat.Code] = denom
	}

	return denoms
}

// playerSGP scores one player against the replacement level across all
// categories and returns the total plus the per-category breakdown.
func playerSGP(p player.Player, cats []Category, replacement player.Player, denoms map[string]float64) (float64, map[string]float64) {
	total := 0.0
	breakdown := make(map[string]float64, len(cats))

	for _, cat := range cats {
		denom := denoms[cat.Code]
		if denom == 0 {
			denom = 1.0
		}

		var sgp float64
		switch cat.Kind {
		case Rate:
			replacementAVG := replacement.Stat(cat.Code)
			if p.Batting.AB > 0 && replacementAVG > 0 {
				expectedHits := p.Batting.AB * replacementAVG
				sgp = (p.Batting.H - expectedHits) / denom
			}
		case Ratio:
			stat := p.Stat(cat.Code)
			if p.Pitching.IP > 0 && stat > 0 {
				sgp = (replacement.Stat(cat.Code) - stat) * p.Pitching.IP / denom
			}
		default:
			sgp = (p.Stat(cat.Code) - replacement.Stat(cat.Code)) / denom
		}

		breakdown[cat.Code] = sgp
		total += sgp
	}

	return total, breakdown
}

// assignDollarValues converts draftable-pool SGP into auction dollars.
// Positive scores share the budget left after reserving minimum bids for
// non-positive scores; every value is floored at the minimum bid.
func assignDollarValues(results []Result, budget float64, minBid int) {
	totalPositive := 0.0
	nonPositive := 0
	for _, r := range results {
		if r.SGP > 0 {
			totalPositive += r.SGP
		} else {
			nonPositive++
		}
	}

	if totalPositive <= 0 {
		for i := range results {
			results[i].DollarValue = float64(minBid)
		}
		return
	}

	adjustedBudget := budget - float64(nonPositive*minBid)
	dollarsPerSGP := adjustedBudget / totalPositive

	for i := range results {
		if results[i].SGP > 0 {
			results[i].DollarValue = math.Max(float64(minBid), results[i].SGP*dollarsPerSGP)
		} else {
			results[i].DollarValue = float64(minBid)
		}
	}
}

func zeroBreakdown(cats []Category) map[string]float64 {
	breakdown := make(map[string]float64, len(cats))
	for _, cat := range cats {
		breakdown[cat.Code] = 0
	}
	return breakdown
}

func sampleStdev(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / (n - 1))
}
