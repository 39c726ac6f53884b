package valuation

import "math"

// DefaultSGPSpread is the assumed standings-position width of one SGP
// band when projecting category standings.
const DefaultSGPSpread = 2.0

// CategorySurplus distributes a player's value surplus (dollar value minus
// price paid) across categories in proportion to each category's SGP
// contribution. A zero-SGP player splits the surplus evenly.
func CategorySurplus(breakdown map[string]float64, totalSGP, dollarValue float64, pricePaid int) map[string]float64 {
	if len(breakdown) == 0 {
		return map[string]float64{}
	}

	totalSurplus := dollarValue - float64(pricePaid)

	out := make(map[string]float64, len(breakdown))
	if totalSGP == 0 {
		even := totalSurplus / float64(len(breakdown))
		for cat := range breakdown {
			out[cat] = even
		}
		return out
	}

	for cat, sgp := range breakdown {
		out[cat] = (sgp / totalSGP) * totalSurplus
	}
	return out
}

// EstimateStandingsPosition maps a team's category SGP total to a projected
// league standing: zero SGP lands at mid-rank, each spread worth of SGP
// moves one rank, clamped to [1, numTeams].
func EstimateStandingsPosition(sgp float64, numTeams int, spread float64) int {
	if numTeams <= 0 {
		return 1
	}
	if spread <= 0 {
		spread = DefaultSGPSpread
	}

	mid := float64(numTeams+1) / 2.0
	position := int(math.Round(mid - sgp/spread))

	if position < 1 {
		return 1
	}
	if position > numTeams {
		return numTeams
	}
	return position
}
