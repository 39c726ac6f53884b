package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/platform/cache"
	"github.com/rotodraft/rotodraft/internal/valuation"
)

const (
	// DefaultScarcityThreshold is the dollar value a player must reach to
	// count as a quality option when measuring positional scarcity.
	DefaultScarcityThreshold = 5.0

	// helpsCategoryThreshold is the per-category SGP a player must carry
	// for a weak category to list them as helping it.
	helpsCategoryThreshold = 0.3

	recommendationLimit = 15
)

// ScarcityLevel labels how thin a position has become.
type ScarcityLevel string

const (
	ScarcityCritical ScarcityLevel = "critical"
	ScarcityMedium   ScarcityLevel = "medium"
	ScarcityLow      ScarcityLevel = "low"
)

func (l ScarcityLevel) urgencyBoost() float64 {
	switch l {
	case ScarcityCritical:
		return 0.3
	case ScarcityMedium:
		return 0.15
	case ScarcityLow:
		return 0.05
	default:
		return 0
	}
}

// SlotState reports one roster slot after greedy assignment.
type SlotState struct {
	Position  string
	Required  int
	Filled    int
	Remaining int
	Players   []string
}

// PositionScarcity reports one thin position league-wide.
type PositionScarcity struct {
	Position string
	Count    int
	Level    ScarcityLevel
	Players  []string
}

// CategoryBalance summarizes a team's projected category strength.
type CategoryBalance struct {
	SGPTotals       map[string]float64
	RawStats        map[string]float64
	Standings       map[string]int
	Recommendations []CategoryRecommendation
	HittingCats     []string
	PitchingCats    []string
	NumTeams        int
}

// CategoryRecommendation is a prioritized weak-category warning.
type CategoryRecommendation struct {
	Category string
	Standing int
	Message  string
}

// Recommendation is one undrafted player scored against team needs.
type Recommendation struct {
	PlayerID        string
	PlayerName      string
	DollarValue     float64
	CompositeScore  float64
	PositionUrgency float64
	CategoryFit     float64
	ValueSurplus    float64
	FillsPositions  []string
	HelpsCategories []string
}

// NeedsAnalysis bundles everything the draft room shows for one team.
type NeedsAnalysis struct {
	Slots           []SlotState
	Recommendations []Recommendation
	Balance         CategoryBalance
	AllStandings    map[string]map[string]int
}

// NeedsService answers "what does this team still need": roster slot
// coverage, league scarcity, category balance, and scored player
// recommendations. It only reads; valuations must already be current.
type NeedsService struct {
	playerRepo player.Repository
	draftRepo  draft.Repository
	logger     *slog.Logger

	// Standings fan out over every team, so results are cached keyed by
	// the pick counter. Any mutation advances the counter and naturally
	// misses the cache.
	standingsCache *cache.Store
}

// NewNeedsService builds the analysis service. Pass a nil standingsCache to
// disable standings caching.
func NewNeedsService(playerRepo player.Repository, draftRepo draft.Repository, standingsCache *cache.Store, logger *slog.Logger) *NeedsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NeedsService{
		playerRepo:     playerRepo,
		draftRepo:      draftRepo,
		logger:         logger,
		standingsCache: standingsCache,
	}
}

// RosterNeeds assigns a team's drafted players to roster slots greedily,
// most restrictive position first, and reports per-slot fill state.
func (s *NeedsService) RosterNeeds(ctx context.Context, settings league.Settings, teamID string) ([]SlotState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.RosterNeeds")
	defer span.End()

	team, ok, err := s.draftRepo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	roster, err := s.teamRoster(ctx, team)
	if err != nil {
		return nil, err
	}

	return assignRosterSlots(settings, roster), nil
}

// assignRosterSlots is the greedy slot filler. Catcher is claimed before
// corner infield before utility so flexible players are not burned on
// slots a specialist must hold.
func assignRosterSlots(settings league.Settings, roster []player.Player) []SlotState {
	var hitters, pitchers []player.Player
	for _, p := range roster {
		if p.Kind == player.KindHitter {
			hitters = append(hitters, p)
		} else {
			pitchers = append(pitchers, p)
		}
	}

	states := make([]SlotState, 0, len(player.HitterSlotPriority)+len(player.PitcherSlotPriority))
	states = append(states, fillSlots(settings, player.HitterSlotPriority, hitters, player.KindHitter)...)
	states = append(states, fillSlots(settings, player.PitcherSlotPriority, pitchers, player.KindPitcher)...)

	return states
}

func fillSlots(settings league.Settings, priority []string, candidates []player.Player, kind player.Kind) []SlotState {
	assigned := make(map[string]bool, len(candidates))
	states := make([]SlotState, 0, len(priority))

	for _, slot := range priority {
		required := settings.RosterSlots[slot]
		if required == 0 {
			continue
		}

		state := SlotState{Position: slot, Required: required}
		for i := 0; i < required; i++ {
			for _, p := range candidates {
				if assigned[p.ID] {
					continue
				}
				if !player.CanFillSlot(p.Positions, slot, kind) {
					continue
				}
				assigned[p.ID] = true
				state.Players = append(state.Players, p.Name)
				state.Filled++
				break
			}
		}
		state.Remaining = state.Required - state.Filled
		states = append(states, state)
	}

	return states
}

// Scarcity counts undrafted players at or above the value threshold for
// each position of interest. Composite positions count anyone eligible
// for a constituent. Positions with more than three quality players left
// are not reported.
func (s *NeedsService) Scarcity(ctx context.Context, threshold float64) (map[string]PositionScarcity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.Scarcity")
	defer span.End()

	if threshold <= 0 {
		threshold = DefaultScarcityThreshold
	}

	undrafted, err := s.playerRepo.ListUndrafted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list undrafted: %w", err)
	}

	report := make(map[string]PositionScarcity)
	for _, pos := range player.ScarcityPositions {
		kind := player.KindHitter
		if pos == "SP" || pos == "RP" || pos == "P" {
			kind = player.KindPitcher
		}

		var names []string
		for _, p := range undrafted {
			if p.Kind != kind || p.DollarValue < threshold {
				continue
			}
			if player.CanFillSlot(p.Positions, pos, kind) {
				names = append(names, p.Name)
			}
		}

		level, reported := scarcityLevel(len(names))
		if !reported {
			continue
		}
		report[pos] = PositionScarcity{
			Position: pos,
			Count:    len(names),
			Level:    level,
			Players:  names,
		}
	}

	return report, nil
}

func scarcityLevel(count int) (ScarcityLevel, bool) {
	switch {
	case count <= 1:
		return ScarcityCritical, true
	case count == 2:
		return ScarcityMedium, true
	case count == 3:
		return ScarcityLow, true
	default:
		return "", false
	}
}

// BestAvailable lists the top undrafted players per scarcity position,
// ranked by dollar value.
func (s *NeedsService) BestAvailable(ctx context.Context, topN int) (map[string][]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.BestAvailable")
	defer span.End()

	if topN <= 0 {
		topN = 5
	}

	undrafted, err := s.playerRepo.ListUndrafted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list undrafted: %w", err)
	}
	sort.Slice(undrafted, func(i, j int) bool { return undrafted[i].DollarValue > undrafted[j].DollarValue })

	best := make(map[string][]player.Player, len(player.ScarcityPositions))
	for _, pos := range player.ScarcityPositions {
		kind := player.KindHitter
		if pos == "SP" || pos == "RP" || pos == "P" {
			kind = player.KindPitcher
		}

		var top []player.Player
		for _, p := range undrafted {
			if p.Kind != kind || !player.CanFillSlot(p.Positions, pos, kind) {
				continue
			}
			top = append(top, p)
			if len(top) == topN {
				break
			}
		}
		best[pos] = top
	}

	return best, nil
}

// TeamCategoryBalance sums a roster's per-category SGP and raw stats,
// maps each category total to an estimated league standing, and flags
// categories projected at or beyond the weak rank.
func (s *NeedsService) TeamCategoryBalance(ctx context.Context, settings league.Settings, teamID string) (CategoryBalance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.TeamCategoryBalance")
	defer span.End()

	team, ok, err := s.draftRepo.GetTeam(ctx, teamID)
	if err != nil {
		return CategoryBalance{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return CategoryBalance{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	roster, err := s.teamRoster(ctx, team)
	if err != nil {
		return CategoryBalance{}, err
	}

	return analyzeCategoryBalance(settings, roster), nil
}

func analyzeCategoryBalance(settings league.Settings, roster []player.Player) CategoryBalance {
	balance := CategoryBalance{
		SGPTotals:    make(map[string]float64),
		RawStats:     make(map[string]float64),
		Standings:    make(map[string]int),
		HittingCats:  settings.HittingCategories,
		PitchingCats: settings.PitchingCategories,
		NumTeams:     settings.NumTeams,
	}

	cats := append(lowerAll(settings.HittingCategories), lowerAll(settings.PitchingCategories)...)
	for _, cat := range cats {
		balance.SGPTotals[cat] = 0
		balance.RawStats[cat] = 0
	}

	for _, p := range roster {
		for cat, sgp := range p.Breakdown {
			balance.SGPTotals[cat] += sgp
		}
		for _, cat := range cats {
			balance.RawStats[cat] += p.Stat(cat)
		}
	}

	weakRank := settings.NumTeams/2 + 1
	for _, cat := range cats {
		standing := valuation.EstimateStandingsPosition(balance.SGPTotals[cat], settings.NumTeams, valuation.DefaultSGPSpread)
		balance.Standings[cat] = standing
		if standing >= weakRank {
			balance.Recommendations = append(balance.Recommendations, CategoryRecommendation{
				Category: strings.ToUpper(cat),
				Standing: standing,
				Message:  fmt.Sprintf("Projected %s of %d teams in %s. Target %s contributors.", ordinal(standing), settings.NumTeams, strings.ToUpper(cat), strings.ToUpper(cat)),
			})
		}
	}

	sort.Slice(balance.Recommendations, func(i, j int) bool {
		if balance.Recommendations[i].Standing != balance.Recommendations[j].Standing {
			return balance.Recommendations[i].Standing > balance.Recommendations[j].Standing
		}
		return balance.Recommendations[i].Category < balance.Recommendations[j].Category
	})

	return balance
}

// Recommendations scores every undrafted player who fills at least one
// open slot for the team. Composite weighting is 35% position urgency,
// 35% weak-category fit, 30% value surplus.
func (s *NeedsService) Recommendations(ctx context.Context, settings league.Settings, teamID string, limit int) ([]Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.Recommendations")
	defer span.End()

	if limit <= 0 {
		limit = recommendationLimit
	}

	slots, err := s.RosterNeeds(ctx, settings, teamID)
	if err != nil {
		return nil, err
	}
	balance, err := s.TeamCategoryBalance(ctx, settings, teamID)
	if err != nil {
		return nil, err
	}
	scarcity, err := s.Scarcity(ctx, DefaultScarcityThreshold)
	if err != nil {
		return nil, err
	}

	undrafted, err := s.playerRepo.ListUndrafted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list undrafted: %w", err)
	}
	if len(undrafted) == 0 {
		return nil, nil
	}

	maxValue := 0.0
	for _, p := range undrafted {
		if p.DollarValue > maxValue {
			maxValue = p.DollarValue
		}
	}

	weak := weakCategories(balance)
	unfilled := unfilledSlots(slots)

	recs := make([]Recommendation, 0, len(undrafted))
	for _, p := range undrafted {
		fills := fillablePositions(p, unfilled)
		if len(fills) == 0 {
			continue
		}

		urgency := 0.0
		for _, pos := range fills {
			if u := positionUrgency(pos, slots, scarcity); u > urgency {
				urgency = u
			}
		}

		fit := categoryFit(p, weak)

		surplus := 0.0
		if maxValue > 0 {
			surplus = p.DollarValue / maxValue
		}

		recs = append(recs, Recommendation{
			PlayerID:        p.ID,
			PlayerName:      p.Name,
			DollarValue:     p.DollarValue,
			CompositeScore:  0.35*urgency + 0.35*fit + 0.30*surplus,
			PositionUrgency: urgency,
			CategoryFit:     fit,
			ValueSurplus:    surplus,
			FillsPositions:  fills,
			HelpsCategories: helpfulCategories(p, weak),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CompositeScore != recs[j].CompositeScore {
			return recs[i].CompositeScore > recs[j].CompositeScore
		}
		return recs[i].PlayerID < recs[j].PlayerID
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	return recs, nil
}

func unfilledSlots(slots []SlotState) []string {
	var open []string
	for _, s := range slots {
		if s.Remaining > 0 {
			open = append(open, s.Position)
		}
	}
	return open
}

func fillablePositions(p player.Player, unfilled []string) []string {
	var fills []string
	for _, pos := range unfilled {
		if player.CanFillSlot(p.Positions, pos, p.Kind) {
			fills = append(fills, pos)
		}
	}
	return fills
}

func positionUrgency(pos string, slots []SlotState, scarcity map[string]PositionScarcity) float64 {
	var state *SlotState
	for i := range slots {
		if slots[i].Position == pos {
			state = &slots[i]
			break
		}
	}
	if state == nil || state.Required == 0 {
		return 0
	}

	urgency := float64(state.Remaining) / float64(state.Required)
	if info, ok := scarcity[pos]; ok {
		urgency += info.Level.urgencyBoost()
	}
	if urgency > 1 {
		urgency = 1
	}
	return urgency
}

// categoryFit is the share of a player's positive SGP coming from the
// team's weak categories, clamped to [0, 1].
func categoryFit(p player.Player, weak []string) float64 {
	if len(p.Breakdown) == 0 || len(weak) == 0 {
		return 0
	}

	weakSGP := 0.0
	for _, cat := range weak {
		weakSGP += p.Breakdown[strings.ToLower(cat)]
	}
	if weakSGP <= 0 {
		return 0
	}

	totalPositive := 0.0
	for _, v := range p.Breakdown {
		if v > 0 {
			totalPositive += v
		}
	}
	if totalPositive <= 0 {
		return 0
	}

	fit := weakSGP / totalPositive
	if fit > 1 {
		fit = 1
	}
	return fit
}

func helpfulCategories(p player.Player, weak []string) []string {
	var helps []string
	for _, cat := range weak {
		if p.Breakdown[strings.ToLower(cat)] >= helpsCategoryThreshold {
			helps = append(helps, strings.ToUpper(cat))
		}
	}
	return helps
}

func weakCategories(balance CategoryBalance) []string {
	weakRank := balance.NumTeams/2 + 1
	var weak []string
	for cat, standing := range balance.Standings {
		if standing >= weakRank {
			weak = append(weak, cat)
		}
	}
	sort.Strings(weak)
	return weak
}

// AllTeamStandings ranks every team in every category by summed SGP.
// Higher SGP ranks better; ratio categories are already inverted in the
// per-player scores. Team analyses run concurrently and the final table
// is cached against the current pick counter.
func (s *NeedsService) AllTeamStandings(ctx context.Context, settings league.Settings) (map[string]map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.AllTeamStandings")
	defer span.End()

	if s.standingsCache == nil {
		return s.computeAllTeamStandings(ctx, settings)
	}

	cacheKey := ""
	if state, ok, err := s.draftRepo.GetState(ctx); err != nil {
		return nil, fmt.Errorf("get draft state: %w", err)
	} else if ok {
		cacheKey = fmt.Sprintf("standings:%s:%d", state.ID, state.CurrentPick)
	}

	value, err := s.standingsCache.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		return s.computeAllTeamStandings(ctx, settings)
	})
	if err != nil {
		return nil, err
	}

	return value.(map[string]map[string]int), nil
}

func (s *NeedsService) computeAllTeamStandings(ctx context.Context, settings league.Settings) (map[string]map[string]int, error) {
	teams, err := s.draftRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return map[string]map[string]int{}, nil
	}

	var mu sync.Mutex
	teamSGPs := make(map[string]map[string]float64, len(teams))

	workers := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for _, t := range teams {
		team := t
		workers.Go(func(ctx context.Context) error {
			roster, err := s.teamRoster(ctx, team)
			if err != nil {
				return err
			}
			balance := analyzeCategoryBalance(settings, roster)

			mu.Lock()
			teamSGPs[team.Name] = balance.SGPTotals
			mu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}

	cats := append(lowerAll(settings.HittingCategories), lowerAll(settings.PitchingCategories)...)
	standings := make(map[string]map[string]int, len(teams))

	for _, cat := range cats {
		type teamScore struct {
			name string
			sgp  float64
		}
		scores := make([]teamScore, 0, len(teams))
		for name, sgps := range teamSGPs {
			scores = append(scores, teamScore{name: name, sgp: sgps[cat]})
		}
		sort.Slice(scores, func(i, j int) bool {
			if scores[i].sgp != scores[j].sgp {
				return scores[i].sgp > scores[j].sgp
			}
			return scores[i].name < scores[j].name
		})

		for rank, sc := range scores {
			if standings[sc.name] == nil {
				standings[sc.name] = make(map[string]int, len(cats))
			}
			standings[sc.name][cat] = rank + 1
		}
	}

	return standings, nil
}

// AnalyzeTeamNeeds is the aggregate entry point: slot states, scored
// recommendations, category balance, and the comparative standings table.
func (s *NeedsService) AnalyzeTeamNeeds(ctx context.Context, settings league.Settings, teamID string) (NeedsAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NeedsService.AnalyzeTeamNeeds")
	defer span.End()

	slots, err := s.RosterNeeds(ctx, settings, teamID)
	if err != nil {
		return NeedsAnalysis{}, err
	}
	balance, err := s.TeamCategoryBalance(ctx, settings, teamID)
	if err != nil {
		return NeedsAnalysis{}, err
	}
	recs, err := s.Recommendations(ctx, settings, teamID, recommendationLimit)
	if err != nil {
		return NeedsAnalysis{}, err
	}
	standings, err := s.AllTeamStandings(ctx, settings)
	if err != nil {
		return NeedsAnalysis{}, err
	}

	return NeedsAnalysis{
		Slots:           slots,
		Recommendations: recs,
		Balance:         balance,
		AllStandings:    standings,
	}, nil
}

func (s *NeedsService) teamRoster(ctx context.Context, team draft.Team) ([]player.Player, error) {
	roster := make([]player.Player, 0, len(team.PickIDs))
	for _, pickID := range team.PickIDs {
		p, ok, err := s.playerRepo.GetByPickID(ctx, pickID)
		if err != nil {
			return nil, fmt.Errorf("get player for pick %s: %w", pickID, err)
		}
		if ok {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
