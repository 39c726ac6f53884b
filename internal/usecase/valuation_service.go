package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/platform/resilience"
	"github.com/rotodraft/rotodraft/internal/valuation"
)

// RecalculateScope selects which players a revaluation covers.
type RecalculateScope string

const (
	// ScopeFull revalues every player against full-draft pool sizes and the
	// whole league budget.
	ScopeFull RecalculateScope = "full"
	// ScopeRemaining revalues only undrafted players against remaining
	// roster slots and remaining budgets.
	ScopeRemaining RecalculateScope = "remaining"
)

// ValuationService runs the replacement-level engine over the stored player
// pools and writes results back. The hitter and pitcher pools are
// independent, so they are valued on a small worker pool.
type ValuationService struct {
	playerRepo player.Repository
	draftRepo  draft.Repository
	logger     *slog.Logger
	flight     resilience.SingleFlight
}

func NewValuationService(playerRepo player.Repository, draftRepo draft.Repository, logger *slog.Logger) *ValuationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValuationService{
		playerRepo: playerRepo,
		draftRepo:  draftRepo,
		logger:     logger,
	}
}

// Recalculate dispatches on scope. Returns the number of players whose
// values were updated.
func (s *ValuationService) Recalculate(ctx context.Context, settings league.Settings, scope RecalculateScope) (int, error) {
	switch scope {
	case ScopeRemaining:
		return s.RecalculateRemaining(ctx, settings)
	case ScopeFull, "":
		return s.RecalculateAll(ctx, settings)
	default:
		return 0, fmt.Errorf("%w: unknown recalculate scope %q", ErrInvalidInput, scope)
	}
}

// RecalculateAll values the full hitter and pitcher pools against the
// complete league budget and full-draft pool sizes.
func (s *ValuationService) RecalculateAll(ctx context.Context, settings league.Settings) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.RecalculateAll")
	defer span.End()

	if err := settings.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	count, err, _ := s.flight.Do("valuation:full", func() (any, error) {
		return s.recalculateAllOnce(ctx, settings)
	})
	if err != nil {
		return 0, err
	}
	return count.(int), nil
}

func (s *ValuationService) recalculateAllOnce(ctx context.Context, settings league.Settings) (int, error) {
	jobs := []poolValuationJob{
		{
			kind:     player.KindHitter,
			poolSize: settings.TotalHittersDrafted(),
			budget:   settings.BudgetShare(player.KindHitter, float64(settings.TotalLeagueBudget())),
		},
		{
			kind:     player.KindPitcher,
			poolSize: settings.TotalPitchersDrafted(),
			budget:   settings.BudgetShare(player.KindPitcher, float64(settings.TotalLeagueBudget())),
		},
	}

	for i := range jobs {
		pool, err := s.playerRepo.ListByKind(ctx, jobs[i].kind)
		if err != nil {
			return 0, fmt.Errorf("list %s pool: %w", jobs[i].kind, err)
		}
		jobs[i].pool = pool
		jobs[i].positional = settings.UsePositionalAdjustments
	}

	count, err := s.runValuationJobs(ctx, settings, jobs)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "full revaluation finished", "players_updated", count)
	return count, nil
}

// RecalculateRemaining values only undrafted players. Pool sizes shrink to
// the league-wide roster slots still open per kind and the budget shrinks
// to the sum of every team's remaining dollars, split by the configured
// hitter percentage. This is what keeps values tracking scarcity as the
// draft progresses.
func (s *ValuationService) RecalculateRemaining(ctx context.Context, settings league.Settings) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.RecalculateRemaining")
	defer span.End()

	if err := settings.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	count, err, _ := s.flight.Do("valuation:remaining", func() (any, error) {
		return s.recalculateRemainingOnce(ctx, settings)
	})
	if err != nil {
		return 0, err
	}
	return count.(int), nil
}

func (s *ValuationService) recalculateRemainingOnce(ctx context.Context, settings league.Settings) (int, error) {
	remainingHitters, err := s.remainingSlots(ctx, settings, player.KindHitter)
	if err != nil {
		return 0, err
	}
	remainingPitchers, err := s.remainingSlots(ctx, settings, player.KindPitcher)
	if err != nil {
		return 0, err
	}

	remainingBudget, err := s.remainingLeagueBudget(ctx, settings)
	if err != nil {
		return 0, err
	}

	jobs := []poolValuationJob{
		{
			kind:     player.KindHitter,
			poolSize: remainingHitters,
			budget:   settings.BudgetShare(player.KindHitter, remainingBudget),
		},
		{
			kind:     player.KindPitcher,
			poolSize: remainingPitchers,
			budget:   settings.BudgetShare(player.KindPitcher, remainingBudget),
		},
	}

	for i := range jobs {
		pool, err := s.playerRepo.ListUndraftedByKind(ctx, jobs[i].kind)
		if err != nil {
			return 0, fmt.Errorf("list undrafted %s pool: %w", jobs[i].kind, err)
		}
		jobs[i].pool = pool
	}

	count, err := s.runValuationJobs(ctx, settings, jobs)
	if err != nil {
		return 0, err
	}

	if state, ok, stateErr := s.draftRepo.GetState(ctx); stateErr == nil && ok && state.ValuesStale {
		state.ValuesStale = false
		if saveErr := s.draftRepo.SaveState(ctx, state); saveErr != nil {
			return 0, fmt.Errorf("clear stale flag: %w", saveErr)
		}
	} else if stateErr != nil {
		return 0, fmt.Errorf("get draft state: %w", stateErr)
	}

	s.logger.InfoContext(ctx, "remaining-pool revaluation finished",
		"players_updated", count,
		"hitter_slots", remainingHitters,
		"pitcher_slots", remainingPitchers,
		"remaining_budget", remainingBudget,
	)

	return count, nil
}

type poolValuationJob struct {
	kind       player.Kind
	pool       []player.Player
	poolSize   int
	budget     float64
	positional bool

	results []valuation.Result
	err     error
}

// runValuationJobs values each pool on a bounded worker pool, then applies
// all updates sequentially so repository writes stay single-writer.
func (s *ValuationService) runValuationJobs(ctx context.Context, settings league.Settings, jobs []poolValuationJob) (int, error) {
	workers, err := ants.NewPool(len(jobs))
	if err != nil {
		return 0, fmt.Errorf("create valuation worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i := range jobs {
		job := &jobs[i]
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			cats := valuation.Categories(job.kind, settings.CategoriesForKind(job.kind))
			if job.positional {
				job.results = valuation.ValuePoolPositional(job.pool, job.poolSize, job.budget, cats, settings.MinBid, settings.PositionalDemand())
			} else {
				job.results = valuation.ValuePool(job.pool, job.poolSize, job.budget, cats, settings.MinBid)
			}
		})
		if submitErr != nil {
			wg.Done()
			return 0, fmt.Errorf("submit valuation job: %w", submitErr)
		}
	}
	wg.Wait()

	total := 0
	for i := range jobs {
		if len(jobs[i].results) == 0 {
			continue
		}
		updates := make([]player.ValueUpdate, 0, len(jobs[i].results))
		for _, r := range jobs[i].results {
			updates = append(updates, player.ValueUpdate{
				PlayerID:    r.PlayerID,
				SGP:         r.SGP,
				Breakdown:   r.Breakdown,
				DollarValue: r.DollarValue,
			})
		}
		if err := s.playerRepo.UpdateValues(ctx, updates); err != nil {
			return 0, fmt.Errorf("update %s values: %w", jobs[i].kind, err)
		}
		total += len(updates)
	}

	return total, nil
}

func (s *ValuationService) remainingSlots(ctx context.Context, settings league.Settings, kind player.Kind) (int, error) {
	totalSlots := settings.SlotsPerTeamForKind(kind) * settings.NumTeams

	_, ok, err := s.draftRepo.GetState(ctx)
	if err != nil {
		return 0, fmt.Errorf("get draft state: %w", err)
	}
	if !ok {
		return totalSlots, nil
	}

	drafted, err := s.playerRepo.CountDraftedByKind(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("count drafted %s: %w", kind, err)
	}

	remaining := totalSlots - drafted
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *ValuationService) remainingLeagueBudget(ctx context.Context, settings league.Settings) (float64, error) {
	teams, err := s.draftRepo.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		// No draft yet, the whole league budget is still on the table.
		return float64(settings.TotalLeagueBudget()), nil
	}

	picks, err := s.draftRepo.ListPicks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list picks: %w", err)
	}

	spentByTeam := make(map[string]int, len(teams))
	for _, p := range picks {
		if p.Price != nil {
			spentByTeam[p.TeamID] += *p.Price
		}
	}

	total := 0
	for _, t := range teams {
		total += t.Budget - spentByTeam[t.ID]
	}

	return float64(total), nil
}
