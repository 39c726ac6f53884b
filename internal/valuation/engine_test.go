package valuation

import (
	"math"
	"testing"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

func hitterCategories() []Category {
	return Categories(player.KindHitter, []string{"R", "HR", "RBI", "SB", "AVG"})
}

func pitcherCategories() []Category {
	return Categories(player.KindPitcher, []string{"W", "SV", "K", "ERA", "WHIP"})
}

func testHitter(id string, ab, h, r, hr, rbi, sb float64) player.Player {
	avg := 0.0
	if ab > 0 {
		avg = h / ab
	}
	return player.Player{
		ID:        id,
		Name:      "Hitter " + id,
		Positions: []string{"OF"},
		Kind:      player.KindHitter,
		Batting: player.BattingStats{
			AB:  ab,
			H:   h,
			R:   r,
			HR:  hr,
			RBI: rbi,
			SB:  sb,
			AVG: avg,
		},
	}
}

func testPitcher(id string, ip, w, sv, k, era, whip float64) player.Player {
	return player.Player{
		ID:        id,
		Name:      "Pitcher " + id,
		Positions: []string{"SP"},
		Kind:      player.KindPitcher,
		Pitching: player.PitchingStats{
			IP:   ip,
			W:    w,
			SV:   sv,
			K:    k,
			ERA:  era,
			WHIP: whip,
		},
	}
}

func hitterPool() []player.Player {
	return []player.Player{
		testHitter("h1", 600, 190, 110, 40, 120, 20),
		testHitter("h2", 580, 170, 95, 32, 100, 12),
		testHitter("h3", 560, 155, 85, 25, 88, 8),
		testHitter("h4", 540, 145, 75, 18, 72, 15),
		testHitter("h5", 520, 135, 65, 12, 60, 5),
		testHitter("h6", 500, 125, 55, 8, 50, 3),
		testHitter("h7", 480, 115, 45, 5, 40, 2),
		testHitter("h8", 300, 70, 30, 3, 25, 1),
	}
}

func resultByID(t *testing.T, results []Result, id string) Result {
	t.Helper()
	for _, r := range results {
		if r.PlayerID == id {
			return r
		}
	}
	t.Fatalf("no result for player %s", id)
	return Result{}
}

func TestValuePool_EmptyPool(t *testing.T) {
	if got := ValuePool(nil, 10, 1000, hitterCategories(), 1); got != nil {
		t.Fatalf("expected nil results for empty pool, got %v", got)
	}
}

func TestValuePool_BreakdownSumsToTotal(t *testing.T) {
	results := ValuePool(hitterPool(), 6, 1000, hitterCategories(), 1)

	for _, r := range results {
		sum := 0.0
		for _, v := range r.Breakdown {
			sum += v
		}
		if math.Abs(sum-r.SGP) > 1e-9 {
			t.Fatalf("player %s breakdown sums to %v, total is %v", r.PlayerID, sum, r.SGP)
		}
	}
}

func TestValuePool_BudgetConserved(t *testing.T) {
	const budget = 1000.0
	results := ValuePool(hitterPool(), 6, budget, hitterCategories(), 1)

	total := 0.0
	for _, r := range results {
		total += r.DollarValue
	}

	// The draftable pool absorbs the budget; h7 and h8 sit outside the
	// cutoff and add one minimum bid each.
	want := budget + 2
	if math.Abs(total-want) > 1e-6 {
		t.Fatalf("total value %v, want %v", total, want)
	}
}

func TestValuePool_TopPlayerOutearnsReplacement(t *testing.T) {
	results := ValuePool(hitterPool(), 6, 1000, hitterCategories(), 1)

	top := resultByID(t, results, "h1")
	replacement := resultByID(t, results, "h6")

	if top.SGP <= replacement.SGP {
		t.Fatalf("top hitter SGP %v should exceed replacement %v", top.SGP, replacement.SGP)
	}
	if top.DollarValue <= replacement.DollarValue {
		t.Fatalf("top hitter value %v should exceed replacement %v", top.DollarValue, replacement.DollarValue)
	}

	// The replacement player defines the level, so every category nets zero.
	if math.Abs(replacement.SGP) > 1e-9 {
		t.Fatalf("replacement player SGP should be zero, got %v", replacement.SGP)
	}
}

func TestValuePool_OutsideCutoffGetsMinimumBid(t *testing.T) {
	results := ValuePool(hitterPool(), 6, 1000, hitterCategories(), 1)

	for _, id := range []string{"h7", "h8"} {
		r := resultByID(t, results, id)
		if r.SGP != 0 {
			t.Fatalf("player %s outside cutoff should have zero SGP, got %v", id, r.SGP)
		}
		if r.DollarValue != 1 {
			t.Fatalf("player %s outside cutoff should be a dollar player, got %v", id, r.DollarValue)
		}
		for cat, v := range r.Breakdown {
			if v != 0 {
				t.Fatalf("player %s category %s should be zero, got %v", id, cat, v)
			}
		}
	}
}

func TestValuePool_MinimumBidFloor(t *testing.T) {
	results := ValuePool(hitterPool(), 6, 1000, hitterCategories(), 1)

	for _, r := range results {
		if r.DollarValue < 1 {
			t.Fatalf("player %s valued below minimum bid: %v", r.PlayerID, r.DollarValue)
		}
	}
}

func TestValuePool_IdenticalStatsAllMinimumBid(t *testing.T) {
	pool := []player.Player{
		testHitter("a", 500, 140, 70, 20, 80, 10),
		testHitter("b", 500, 140, 70, 20, 80, 10),
		testHitter("c", 500, 140, 70, 20, 80, 10),
	}

	results := ValuePool(pool, 3, 100, hitterCategories(), 1)

	// Identical stats mean nobody beats replacement, so no positive SGP
	// exists and every player bottoms out at the minimum bid.
	for _, r := range results {
		if r.SGP != 0 {
			t.Fatalf("player %s should have zero SGP, got %v", r.PlayerID, r.SGP)
		}
		if r.DollarValue != 1 {
			t.Fatalf("player %s should be a dollar player, got %v", r.PlayerID, r.DollarValue)
		}
	}
}

func TestValuePool_ZeroAtBatsSkipsRateCategory(t *testing.T) {
	pool := hitterPool()
	pool = append(pool, testHitter("nozb", 0, 0, 50, 10, 40, 6))

	results := ValuePool(pool, len(pool), 1000, hitterCategories(), 1)

	r := resultByID(t, results, "nozb")
	if r.Breakdown["avg"] != 0 {
		t.Fatalf("zero-AB hitter should contribute nothing to avg, got %v", r.Breakdown["avg"])
	}
}

func TestValuePool_RatioCategoriesInvert(t *testing.T) {
	pool := []player.Player{
		testPitcher("ace", 210, 17, 0, 230, 2.80, 1.02),
		testPitcher("mid1", 180, 12, 0, 170, 3.60, 1.18),
		testPitcher("mid2", 170, 11, 0, 155, 3.90, 1.22),
		testPitcher("mid3", 160, 9, 0, 140, 4.10, 1.28),
		testPitcher("repl", 150, 7, 0, 120, 4.60, 1.38),
	}

	results := ValuePool(pool, 5, 400, pitcherCategories(), 1)

	ace := resultByID(t, results, "ace")
	if ace.Breakdown["era"] <= 0 {
		t.Fatalf("low-ERA ace should gain era SGP, got %v", ace.Breakdown["era"])
	}
	if ace.Breakdown["whip"] <= 0 {
		t.Fatalf("low-WHIP ace should gain whip SGP, got %v", ace.Breakdown["whip"])
	}
}

func TestValuePool_ZeroInningsSkipsRatioCategories(t *testing.T) {
	pool := []player.Player{
		testPitcher("ace", 210, 17, 0, 230, 2.80, 1.02),
		testPitcher("mid", 180, 12, 0, 170, 3.60, 1.18),
		testPitcher("noip", 0, 0, 20, 0, 0, 0),
	}

	results := ValuePool(pool, 3, 200, pitcherCategories(), 1)

	r := resultByID(t, results, "noip")
	if r.Breakdown["era"] != 0 || r.Breakdown["whip"] != 0 {
		t.Fatalf("zero-IP pitcher should skip ratio categories, got era=%v whip=%v", r.Breakdown["era"], r.Breakdown["whip"])
	}
}

func TestValuePool_PoolSmallerThanPoolSize(t *testing.T) {
	pool := []player.Player{
		testHitter("a", 600, 190, 110, 40, 120, 20),
		testHitter("b", 500, 130, 60, 10, 55, 4),
	}

	results := ValuePool(pool, 10, 100, hitterCategories(), 1)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestPreliminaryValue_OrdersByProduction(t *testing.T) {
	stud := testHitter("stud", 600, 190, 110, 40, 120, 20)
	scrub := testHitter("scrub", 480, 110, 40, 4, 35, 2)

	if PreliminaryValue(stud) <= PreliminaryValue(scrub) {
		t.Fatalf("stud should outrank scrub")
	}

	ace := testPitcher("ace", 210, 17, 0, 230, 2.80, 1.02)
	swing := testPitcher("swing", 90, 4, 0, 70, 4.80, 1.45)

	if PreliminaryValue(ace) <= PreliminaryValue(swing) {
		t.Fatalf("ace should outrank swingman")
	}
}

func TestSampleStdev(t *testing.T) {
	if got := sampleStdev([]float64{5}); got != 0 {
		t.Fatalf("single sample stdev should be 0, got %v", got)
	}

	got := sampleStdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("stdev = %v, want %v", got, want)
	}
}

func TestCategories_KindDispatch(t *testing.T) {
	cats := hitterCategories()
	for _, cat := range cats {
		switch cat.Code {
		case "avg":
			if cat.Kind != Rate {
				t.Fatalf("avg should be a rate category")
			}
		default:
			if cat.Kind != Counting {
				t.Fatalf("%s should be a counting category", cat.Code)
			}
		}
	}

	for _, cat := range pitcherCategories() {
		switch cat.Code {
		case "era", "whip":
			if cat.Kind != Ratio {
				t.Fatalf("%s should be a ratio category", cat.Code)
			}
		default:
			if cat.Kind != Counting {
				t.Fatalf("%s should be a counting category", cat.Code)
			}
		}
	}
}
