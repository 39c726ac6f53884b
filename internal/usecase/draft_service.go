package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/draftorder"
	"github.com/rotodraft/rotodraft/internal/platform/id"
)

// DraftService owns the draft ledger lifecycle: initialization, pick
// recording, undo, and the derived queries the draft room needs. Every
// mutation that changes who is drafted triggers a remaining-pool
// revaluation so dollar values track scarcity.
type DraftService struct {
	playerRepo player.Repository
	draftRepo  draft.Repository
	valuation  *ValuationService
	idGen      id.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewDraftService(playerRepo player.Repository, draftRepo draft.Repository, valuation *ValuationService, idGen id.Generator, logger *slog.Logger) *DraftService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftService{
		playerRepo: playerRepo,
		draftRepo:  draftRepo,
		valuation:  valuation,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// InitializeDraft tears down any prior draft and creates a fresh one: a
// full set of teams with the first one owned by the user, a zeroed pick
// counter, and for snake drafts a fixed serpentine order.
func (s *DraftService) InitializeDraft(ctx context.Context, settings league.Settings, userTeamName string) (draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.InitializeDraft")
	defer span.End()

	if err := settings.Validate(); err != nil {
		return draft.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if userTeamName == "" {
		userTeamName = "My Team"
	}

	if err := s.clearLedger(ctx); err != nil {
		return draft.State{}, err
	}

	order := make([]string, 0, settings.NumTeams)
	createdAt := s.now()
	for i := 0; i < settings.NumTeams; i++ {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return draft.State{}, fmt.Errorf("generate team id: %w", err)
		}

		team := draft.Team{
			ID:         teamID,
			Name:       fmt.Sprintf("Team %d", i+1),
			Budget:     settings.BudgetPerTeam,
			IsUserTeam: i == 0,
			CreatedAt:  createdAt,
		}
		if team.IsUserTeam {
			team.Name = userTeamName
		}

		if err := s.draftRepo.SaveTeam(ctx, team); err != nil {
			return draft.State{}, fmt.Errorf("save team %q: %w", team.Name, err)
		}
		order = append(order, teamID)
	}

	stateID, err := s.idGen.NewID()
	if err != nil {
		return draft.State{}, fmt.Errorf("generate draft id: %w", err)
	}

	state := draft.State{
		ID:            stateID,
		LeagueName:    settings.Name,
		Mode:          settings.Mode,
		NumTeams:      settings.NumTeams,
		BudgetPerTeam: settings.BudgetPerTeam,
		CurrentPick:   0,
		Active:        true,
		Order:         order,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if state.Mode != draft.ModeSnake {
		state.Order = nil
	}
	if err := state.Validate(); err != nil {
		return draft.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.draftRepo.SaveState(ctx, state); err != nil {
		return draft.State{}, fmt.Errorf("save draft state: %w", err)
	}

	if _, err := s.valuation.RecalculateAll(ctx, settings); err != nil {
		return draft.State{}, fmt.Errorf("initial valuation: %w", err)
	}

	s.logger.InfoContext(ctx, "draft initialized",
		"league", settings.Name,
		"mode", state.Mode,
		"teams", settings.NumTeams,
	)

	return state, nil
}

// DraftPlayer records one pick after running the full validation chain:
// an active draft must exist, the player must be undrafted, auction picks
// must carry an affordable price, and snake picks must come from the team
// on the clock. On success the pick is committed and the remaining pool
// is revalued.
func (s *DraftService) DraftPlayer(ctx context.Context, settings league.Settings, playerID, teamID string, price *int) (draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftPlayer")
	defer span.End()

	state, err := s.requireActiveDraft(ctx)
	if err != nil {
		return draft.Pick{}, err
	}

	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return draft.Pick{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return draft.Pick{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if p.Drafted {
		return draft.Pick{}, fmt.Errorf("%w: %s", ErrAlreadyDrafted, p.Name)
	}

	team, ok, err := s.draftRepo.GetTeam(ctx, teamID)
	if err != nil {
		return draft.Pick{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return draft.Pick{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	pick := draft.Pick{
		TeamID:     team.ID,
		PlayerID:   p.ID,
		PickNumber: state.CurrentPick + 1,
		Timestamp:  s.now(),
	}

	switch state.Mode {
	case draft.ModeAuction:
		if price == nil {
			return draft.Pick{}, fmt.Errorf("%w: auction drafts need a winning bid", ErrPriceRequired)
		}
		if *price < settings.MinBid {
			return draft.Pick{}, fmt.Errorf("%w: bid $%d is under the $%d minimum", ErrBelowMinimumBid, *price, settings.MinBid)
		}
		remaining, err := s.teamRemainingBudget(ctx, team)
		if err != nil {
			return draft.Pick{}, err
		}
		if *price > remaining {
			return draft.Pick{}, fmt.Errorf("%w: bid $%d exceeds %s's remaining $%d", ErrInsufficientBudget, *price, team.Name, remaining)
		}
		pick.Price = price
	case draft.ModeSnake:
		if price != nil {
			return draft.Pick{}, fmt.Errorf("%w: snake picks do not carry a price", ErrInvalidInput)
		}
		if !draftorder.IsTeamsTurn(state.Order, state.CurrentPick, team.ID) {
			onClock, _ := draftorder.CurrentDrafter(state.Order, state.CurrentPick)
			return draft.Pick{}, fmt.Errorf("%w: team %s picks now, not %s", ErrNotTeamsTurn, onClock, team.ID)
		}
		pick.RoundNumber, pick.PickInRound = draftorder.Position(state.NumTeams, state.CurrentPick)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return draft.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}
	pick.ID = pickID

	if err := s.draftRepo.SavePick(ctx, pick); err != nil {
		return draft.Pick{}, fmt.Errorf("save pick: %w", err)
	}
	if err := s.playerRepo.SetDrafted(ctx, p.ID, pick.ID); err != nil {
		return draft.Pick{}, fmt.Errorf("mark player drafted: %w", err)
	}

	team.PickIDs = append(team.PickIDs, pick.ID)
	if err := s.draftRepo.SaveTeam(ctx, team); err != nil {
		return draft.Pick{}, fmt.Errorf("save team: %w", err)
	}

	state.CurrentPick++
	state.ValuesStale = true
	state.UpdatedAt = s.now()
	if err := s.draftRepo.SaveState(ctx, state); err != nil {
		return draft.Pick{}, fmt.Errorf("save draft state: %w", err)
	}

	if _, err := s.valuation.RecalculateRemaining(ctx, settings); err != nil {
		return draft.Pick{}, fmt.Errorf("revalue after pick: %w", err)
	}

	s.logger.InfoContext(ctx, "player drafted",
		"player", p.Name,
		"team", team.Name,
		"pick_number", pick.PickNumber,
	)

	return pick, nil
}

// UndoPick removes a recorded pick and hands back the player it returned
// to the pool. The pick counter only rewinds when the undone pick is the
// most recent one; undoing an earlier pick leaves a gap rather than
// renumbering history. Returns false with no error when the pick does
// not exist.
func (s *DraftService) UndoPick(ctx context.Context, settings league.Settings, pickID string) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.UndoPick")
	defer span.End()

	state, err := s.requireActiveDraft(ctx)
	if err != nil {
		return player.Player{}, false, err
	}

	pick, ok, err := s.draftRepo.GetPick(ctx, pickID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get pick: %w", err)
	}
	if !ok {
		return player.Player{}, false, nil
	}

	if err := s.playerRepo.ClearDrafted(ctx, pick.PlayerID); err != nil {
		return player.Player{}, false, fmt.Errorf("clear drafted flag: %w", err)
	}

	if team, ok, err := s.draftRepo.GetTeam(ctx, pick.TeamID); err != nil {
		return player.Player{}, false, fmt.Errorf("get team: %w", err)
	} else if ok {
		team.PickIDs = removeString(team.PickIDs, pick.ID)
		if err := s.draftRepo.SaveTeam(ctx, team); err != nil {
			return player.Player{}, false, fmt.Errorf("save team: %w", err)
		}
	}

	if err := s.draftRepo.DeletePick(ctx, pick.ID); err != nil {
		return player.Player{}, false, fmt.Errorf("delete pick: %w", err)
	}

	if pick.PickNumber == state.CurrentPick {
		state.CurrentPick--
	}
	state.ValuesStale = true
	state.UpdatedAt = s.now()
	if err := s.draftRepo.SaveState(ctx, state); err != nil {
		return player.Player{}, false, fmt.Errorf("save draft state: %w", err)
	}

	if _, err := s.valuation.RecalculateRemaining(ctx, settings); err != nil {
		return player.Player{}, false, fmt.Errorf("revalue after undo: %w", err)
	}

	undrafted, ok, err := s.playerRepo.GetByID(ctx, pick.PlayerID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get undone player: %w", err)
	}
	if !ok {
		return player.Player{}, false, fmt.Errorf("%w: player %s", ErrNotFound, pick.PlayerID)
	}

	s.logger.InfoContext(ctx, "pick undone", "pick_id", pick.ID, "pick_number", pick.PickNumber)
	return undrafted, true, nil
}

// UndoLastPick undoes the highest-numbered recorded pick. Returns false
// when no picks have been made.
func (s *DraftService) UndoLastPick(ctx context.Context, settings league.Settings) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.UndoLastPick")
	defer span.End()

	if _, err := s.requireActiveDraft(ctx); err != nil {
		return player.Player{}, false, err
	}

	picks, err := s.draftRepo.ListPicks(ctx)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("list picks: %w", err)
	}
	if len(picks) == 0 {
		return player.Player{}, false, nil
	}

	last := picks[0]
	for _, p := range picks[1:] {
		if p.PickNumber > last.PickNumber {
			last = p
		}
	}

	return s.UndoPick(ctx, settings, last.ID)
}

// ResetDraft deletes the state, all teams, and all picks, and clears every
// drafted flag. The ledger returns to uninitialized.
func (s *DraftService) ResetDraft(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ResetDraft")
	defer span.End()

	if err := s.clearLedger(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "draft reset")
	return nil
}

// State returns the current draft state. ok is false when no draft has
// been initialized.
func (s *DraftService) State(ctx context.Context) (draft.State, bool, error) {
	return s.draftRepo.GetState(ctx)
}

// PickRecord is one draft history row with the player and team resolved.
type PickRecord struct {
	Pick       draft.Pick
	PlayerName string
	TeamName   string
}

// DraftHistory lists picks newest-first, capped at limit when positive.
func (s *DraftService) DraftHistory(ctx context.Context, limit int) ([]PickRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftHistory")
	defer span.End()

	picks, err := s.draftRepo.ListPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	sort.Slice(picks, func(i, j int) bool { return picks[i].PickNumber > picks[j].PickNumber })
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}

	teams, err := s.draftRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	records := make([]PickRecord, 0, len(picks))
	for _, pick := range picks {
		rec := PickRecord{Pick: pick, TeamName: teamNames[pick.TeamID]}
		if p, ok, err := s.playerRepo.GetByID(ctx, pick.PlayerID); err != nil {
			return nil, fmt.Errorf("get player %s: %w", pick.PlayerID, err)
		} else if ok {
			rec.PlayerName = p.Name
		}
		records = append(records, rec)
	}

	return records, nil
}

// MaxBid is the auction bid ceiling for one team. ReservedForRoster is
// the budget held back to pay the minimum bid for every open spot other
// than the one being bid on.
type MaxBid struct {
	TeamID            string
	RemainingBudget   int
	SpotsToFill       int
	ReservedForRoster int
	MaxBid            int
}

// CalculateMaxBid returns the most a team can bid on one player while
// still reserving the minimum bid for every other open roster spot. With
// one spot left the whole remaining budget is in play.
func (s *DraftService) CalculateMaxBid(ctx context.Context, settings league.Settings, teamID string) (MaxBid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CalculateMaxBid")
	defer span.End()

	team, ok, err := s.draftRepo.GetTeam(ctx, teamID)
	if err != nil {
		return MaxBid{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return MaxBid{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	remaining, err := s.teamRemainingBudget(ctx, team)
	if err != nil {
		return MaxBid{}, err
	}

	spotsNeeded := settings.TotalRosterSlots() - len(team.PickIDs)
	if spotsNeeded < 0 {
		spotsNeeded = 0
	}

	result := MaxBid{TeamID: team.ID, RemainingBudget: remaining, SpotsToFill: spotsNeeded}
	if spotsNeeded == 0 {
		result.MaxBid = remaining
		return result, nil
	}

	result.ReservedForRoster = (spotsNeeded - 1) * settings.MinBid
	maxBid := remaining - result.ReservedForRoster
	floor := settings.MinBid
	if remaining < floor {
		floor = remaining
	}
	if maxBid < floor {
		maxBid = floor
	}
	if maxBid > remaining {
		maxBid = remaining
	}
	result.MaxBid = maxBid

	return result, nil
}

// BidImpact projects what winning a bid at the given price would leave a
// team to spend on the rest of its roster.
type BidImpact struct {
	TeamID              string
	Bid                 int
	BudgetAfter         int
	SpotsAfter          int
	MaxBidAfter         int
	AvgPerPlayerAfter   float64
	ExceedsMaxBid       bool
	LeavesMinimumOnly   bool
	RemainingBeforePick int
}

// CalculateBidImpact answers "what does my budget look like if I win this
// player at this price". It never mutates the ledger.
func (s *DraftService) CalculateBidImpact(ctx context.Context, settings league.Settings, teamID string, bid int) (BidImpact, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CalculateBidImpact")
	defer span.End()

	if bid < 0 {
		return BidImpact{}, fmt.Errorf("%w: bid cannot be negative", ErrInvalidInput)
	}

	current, err := s.CalculateMaxBid(ctx, settings, teamID)
	if err != nil {
		return BidImpact{}, err
	}

	impact := BidImpact{
		TeamID:              teamID,
		Bid:                 bid,
		RemainingBeforePick: current.RemainingBudget,
		ExceedsMaxBid:       bid > current.MaxBid,
	}

	impact.BudgetAfter = current.RemainingBudget - bid
	impact.SpotsAfter = current.SpotsToFill - 1
	if impact.SpotsAfter < 0 {
		impact.SpotsAfter = 0
	}

	if impact.SpotsAfter > 0 {
		impact.MaxBidAfter = impact.BudgetAfter - (impact.SpotsAfter-1)*settings.MinBid
		if impact.MaxBidAfter < 0 {
			impact.MaxBidAfter = 0
		}
		avg := float64(impact.BudgetAfter) / float64(impact.SpotsAfter)
		impact.AvgPerPlayerAfter = math.Round(avg*10) / 10
		impact.LeavesMinimumOnly = impact.BudgetAfter <= impact.SpotsAfter*settings.MinBid
	} else {
		impact.MaxBidAfter = impact.BudgetAfter
	}

	return impact, nil
}

// OnClock reports the team currently drafting in a snake draft and how
// many picks away the requested team is.
type OnClock struct {
	Round        int
	PickInRound  int
	OverallPick  int
	TeamID       string
	TeamName     string
	PicksUntilMe int
	Description  string
}

// CurrentTurn derives the on-clock position for snake drafts from the
// pick counter alone. forTeamID, when set, fills PicksUntilMe.
func (s *DraftService) CurrentTurn(ctx context.Context, forTeamID string) (OnClock, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CurrentTurn")
	defer span.End()

	state, err := s.requireActiveDraft(ctx)
	if err != nil {
		return OnClock{}, err
	}
	if state.Mode != draft.ModeSnake {
		return OnClock{}, fmt.Errorf("%w: turn order applies only to snake drafts", ErrInvalidInput)
	}

	round, pickInRound := draftorder.Position(state.NumTeams, state.CurrentPick)
	teamID, _ := draftorder.CurrentDrafter(state.Order, state.CurrentPick)

	turn := OnClock{
		Round:       round,
		PickInRound: pickInRound,
		OverallPick: draftorder.OverallPickNumber(round, pickInRound, state.NumTeams),
		TeamID:      teamID,
		Description: draftorder.FormatPick(round, pickInRound, state.NumTeams),
	}

	if team, ok, err := s.draftRepo.GetTeam(ctx, teamID); err != nil {
		return OnClock{}, fmt.Errorf("get team: %w", err)
	} else if ok {
		turn.TeamName = team.Name
	}

	if forTeamID != "" {
		if n, ok := draftorder.PicksUntilTurn(state.Order, state.CurrentPick, forTeamID); ok {
			turn.PicksUntilMe = n
		}
	}

	return turn, nil
}

// TeamBudget is the per-team budget summary used by status views.
type TeamBudget struct {
	TeamID     string
	TeamName   string
	IsUserTeam bool
	Budget     int
	Spent      int
	Remaining  int
	Roster     int
	SpotsOpen  int
}

// Status summarizes the whole ledger: remaining open slots per kind and
// each team's budget position.
type Status struct {
	State            draft.State
	Initialized      bool
	HitterSlotsOpen  int
	PitcherSlotsOpen int
	TotalSlotsOpen   int
	RemainingBudget  int
	Teams            []TeamBudget
}

// DraftStatus reports remaining league slots per kind, remaining budget
// across all teams, and each team's position.
func (s *DraftService) DraftStatus(ctx context.Context, settings league.Settings) (Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftStatus")
	defer span.End()

	status := Status{}

	state, ok, err := s.draftRepo.GetState(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("get draft state: %w", err)
	}
	status.State = state
	status.Initialized = ok

	draftedHitters, err := s.playerRepo.CountDraftedByKind(ctx, player.KindHitter)
	if err != nil {
		return Status{}, fmt.Errorf("count drafted hitters: %w", err)
	}
	draftedPitchers, err := s.playerRepo.CountDraftedByKind(ctx, player.KindPitcher)
	if err != nil {
		return Status{}, fmt.Errorf("count drafted pitchers: %w", err)
	}

	status.HitterSlotsOpen = max(0, settings.TotalHittersDrafted()-draftedHitters)
	status.PitcherSlotsOpen = max(0, settings.TotalPitchersDrafted()-draftedPitchers)
	status.TotalSlotsOpen = status.HitterSlotsOpen + status.PitcherSlotsOpen

	teams, err := s.draftRepo.ListTeams(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("list teams: %w", err)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	for _, t := range teams {
		picks, err := s.draftRepo.ListPicksByTeam(ctx, t.ID)
		if err != nil {
			return Status{}, fmt.Errorf("list picks for %s: %w", t.Name, err)
		}
		spent := draft.Spent(picks)
		tb := TeamBudget{
			TeamID:     t.ID,
			TeamName:   t.Name,
			IsUserTeam: t.IsUserTeam,
			Budget:     t.Budget,
			Spent:      spent,
			Remaining:  t.Budget - spent,
			Roster:     len(picks),
			SpotsOpen:  max(0, settings.TotalRosterSlots()-len(picks)),
		}
		status.RemainingBudget += tb.Remaining
		status.Teams = append(status.Teams, tb)
	}

	return status, nil
}

func (s *DraftService) requireActiveDraft(ctx context.Context) (draft.State, error) {
	state, ok, err := s.draftRepo.GetState(ctx)
	if err != nil {
		return draft.State{}, fmt.Errorf("get draft state: %w", err)
	}
	if !ok || !state.Active {
		return draft.State{}, ErrNoActiveDraft
	}
	return state, nil
}

func (s *DraftService) teamRemainingBudget(ctx context.Context, team draft.Team) (int, error) {
	picks, err := s.draftRepo.ListPicksByTeam(ctx, team.ID)
	if err != nil {
		return 0, fmt.Errorf("list picks for %s: %w", team.Name, err)
	}
	return team.Budget - draft.Spent(picks), nil
}

func (s *DraftService) clearLedger(ctx context.Context) error {
	if err := s.playerRepo.ClearAllDrafted(ctx); err != nil {
		return fmt.Errorf("clear drafted flags: %w", err)
	}
	if err := s.draftRepo.DeleteAllPicks(ctx); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}
	if err := s.draftRepo.DeleteAllTeams(ctx); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	if err := s.draftRepo.DeleteState(ctx); err != nil {
		return fmt.Errorf("delete draft state: %w", err)
	}
	return nil
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
