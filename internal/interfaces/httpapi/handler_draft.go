package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/usecase"
)

func (h *Handler) InitializeDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitializeDraft")
	defer span.End()

	var req initializeDraftRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.InitializeDraft(ctx, h.settings, req.UserTeamName)
	if err != nil {
		h.logger.WarnContext(ctx, "initialize draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stateToDTO(state))
}

func (h *Handler) DraftPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftPlayer")
	defer span.End()

	var req draftPlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pick, err := h.draftService.DraftPlayer(ctx, h.settings, req.PlayerID, req.TeamID, req.Price)
	if err != nil {
		h.logger.WarnContext(ctx, "draft player failed",
			"player_id", req.PlayerID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(pick))
}

func (h *Handler) UndoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoPick")
	defer span.End()

	pickID := strings.TrimSpace(r.PathValue("pickID"))
	undrafted, undone, err := h.draftService.UndoPick(ctx, h.settings, pickID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo pick failed", "pick_id", pickID, "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := undoResponse{PickID: pickID, Undone: undone}
	if undone {
		dto := playerToDTO(undrafted)
		resp.Player = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, resp)
}

func (h *Handler) UndoLastPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastPick")
	defer span.End()

	undrafted, undone, err := h.draftService.UndoLastPick(ctx, h.settings)
	if err != nil {
		h.logger.WarnContext(ctx, "undo last pick failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := undoResponse{Undone: undone}
	if undone {
		dto := playerToDTO(undrafted)
		resp.Player = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, resp)
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	if err := h.draftService.ResetDraft(ctx); err != nil {
		h.logger.WarnContext(ctx, "reset draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) DraftStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftStatus")
	defer span.End()

	status, err := h.draftService.DraftStatus(ctx, h.settings)
	if err != nil {
		h.logger.WarnContext(ctx, "draft status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := draftStatusDTO{
		Initialized:      status.Initialized,
		HitterSlotsOpen:  status.HitterSlotsOpen,
		PitcherSlotsOpen: status.PitcherSlotsOpen,
		TotalSlotsOpen:   status.TotalSlotsOpen,
		RemainingBudget:  status.RemainingBudget,
	}
	if status.Initialized {
		state := stateToDTO(status.State)
		dto.State = &state
	}
	for _, t := range status.Teams {
		dto.Teams = append(dto.Teams, teamBudgetDTO{
			TeamID:     t.TeamID,
			TeamName:   t.TeamName,
			IsUserTeam: t.IsUserTeam,
			Budget:     t.Budget,
			Spent:      t.Spent,
			Remaining:  t.Remaining,
			Roster:     t.Roster,
			SpotsOpen:  t.SpotsOpen,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) DraftHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftHistory")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	records, err := h.draftService.DraftHistory(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "draft history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, pickRecordDTO{
			Pick:       pickToDTO(rec.Pick),
			PlayerName: rec.PlayerName,
			TeamName:   rec.TeamName,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CurrentTurn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentTurn")
	defer span.End()

	forTeamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	turn, err := h.draftService.CurrentTurn(ctx, forTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "current turn failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onClockDTO{
		Round:        turn.Round,
		PickInRound:  turn.PickInRound,
		OverallPick:  turn.OverallPick,
		TeamID:       turn.TeamID,
		TeamName:     turn.TeamName,
		PicksUntilMe: turn.PicksUntilMe,
		Description:  turn.Description,
	})
}

func (h *Handler) MaxBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MaxBid")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	result, err := h.draftService.CalculateMaxBid(ctx, h.settings, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "max bid failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, maxBidDTO{
		TeamID:            result.TeamID,
		RemainingBudget:   result.RemainingBudget,
		SpotsToFill:       result.SpotsToFill,
		ReservedForRoster: result.ReservedForRoster,
		MaxBid:            result.MaxBid,
	})
}

func (h *Handler) BidImpact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BidImpact")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req bidImpactRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	impact, err := h.draftService.CalculateBidImpact(ctx, h.settings, teamID, req.Bid)
	if err != nil {
		h.logger.WarnContext(ctx, "bid impact failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bidImpactDTO{
		TeamID:            impact.TeamID,
		Bid:               impact.Bid,
		BudgetAfter:       impact.BudgetAfter,
		SpotsAfter:        impact.SpotsAfter,
		MaxBidAfter:       impact.MaxBidAfter,
		AvgPerPlayerAfter: impact.AvgPerPlayerAfter,
		ExceedsMaxBid:     impact.ExceedsMaxBid,
		LeavesMinimumOnly: impact.LeavesMinimumOnly,
	})
}

type initializeDraftRequest struct {
	UserTeamName string `json:"userTeamName" validate:"max=100"`
}

type draftPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	TeamID   string `json:"teamId" validate:"required"`
	Price    *int   `json:"price,omitempty" validate:"omitempty,min=0"`
}

type bidImpactRequest struct {
	Bid int `json:"bid" validate:"min=0"`
}

type undoResponse struct {
	PickID string     `json:"pickId,omitempty"`
	Undone bool       `json:"undone"`
	Player *playerDTO `json:"player,omitempty"`
}

type stateDTO struct {
	ID            string   `json:"id"`
	LeagueName    string   `json:"leagueName"`
	Mode          string   `json:"mode"`
	NumTeams      int      `json:"numTeams"`
	BudgetPerTeam int      `json:"budgetPerTeam"`
	CurrentPick   int      `json:"currentPick"`
	Active        bool     `json:"active"`
	ValuesStale   bool     `json:"valuesStale"`
	Order         []string `json:"order,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type pickDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"teamId"`
	PlayerID    string `json:"playerId"`
	Price       *int   `json:"price,omitempty"`
	PickNumber  int    `json:"pickNumber"`
	RoundNumber int    `json:"roundNumber,omitempty"`
	PickInRound int    `json:"pickInRound,omitempty"`
	Timestamp   string `json:"pickedAt"`
}

type pickRecordDTO struct {
	Pick       pickDTO `json:"pick"`
	PlayerName string  `json:"playerName"`
	TeamName   string  `json:"teamName"`
}

type draftStatusDTO struct {
	Initialized      bool            `json:"initialized"`
	State            *stateDTO       `json:"state,omitempty"`
	HitterSlotsOpen  int             `json:"hitterSlotsOpen"`
	PitcherSlotsOpen int             `json:"pitcherSlotsOpen"`
	TotalSlotsOpen   int             `json:"totalSlotsOpen"`
	RemainingBudget  int             `json:"remainingBudget"`
	Teams            []teamBudgetDTO `json:"teams"`
}

type teamBudgetDTO struct {
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	IsUserTeam bool   `json:"isUserTeam"`
	Budget     int    `json:"budget"`
	Spent      int    `json:"spent"`
	Remaining  int    `json:"remaining"`
	Roster     int    `json:"roster"`
	SpotsOpen  int    `json:"spotsOpen"`
}

type onClockDTO struct {
	Round        int    `json:"round"`
	PickInRound  int    `json:"pickInRound"`
	OverallPick  int    `json:"overallPick"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	PicksUntilMe int    `json:"picksUntilMe,omitempty"`
	Description  string `json:"description"`
}

type maxBidDTO struct {
	TeamID            string `json:"teamId"`
	RemainingBudget   int    `json:"remainingBudget"`
	SpotsToFill       int    `json:"spotsToFill"`
	ReservedForRoster int    `json:"reservedForRoster"`
	MaxBid            int    `json:"maxBid"`
}

type bidImpactDTO struct {
	TeamID            string  `json:"teamId"`
	Bid               int     `json:"bid"`
	BudgetAfter       int     `json:"budgetAfter"`
	SpotsAfter        int     `json:"spotsAfter"`
	MaxBidAfter       int     `json:"maxBidAfter"`
	AvgPerPlayerAfter float64 `json:"avgPerPlayerAfter"`
	ExceedsMaxBid     bool    `json:"exceedsMaxBid"`
	LeavesMinimumOnly bool    `json:"leavesMinimumOnly"`
}

func stateToDTO(state draft.State) stateDTO {
	return stateDTO{
		ID:            state.ID,
		LeagueName:    state.LeagueName,
		Mode:          string(state.Mode),
		NumTeams:      state.NumTeams,
		BudgetPerTeam: state.BudgetPerTeam,
		CurrentPick:   state.CurrentPick,
		Active:        state.Active,
		ValuesStale:   state.ValuesStale,
		Order:         append([]string(nil), state.Order...),
		CreatedAt:     state.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     state.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func pickToDTO(pick draft.Pick) pickDTO {
	return pickDTO{
		ID:          pick.ID,
		TeamID:      pick.TeamID,
		PlayerID:    pick.PlayerID,
		Price:       pick.Price,
		PickNumber:  pick.PickNumber,
		RoundNumber: pick.RoundNumber,
		PickInRound: pick.PickInRound,
		Timestamp:   pick.Timestamp.UTC().Format(time.RFC3339),
	}
}
