package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotodraft/rotodraft/internal/usecase"
)

func (h *Handler) RosterNeeds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RosterNeeds")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	slots, err := h.needsService.RosterNeeds(ctx, h.settings, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "roster needs failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]slotStateDTO, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotStateToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Recommendations")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	recs, err := h.needsService.Recommendations(ctx, h.settings, teamID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "recommendations failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]recommendationDTO, 0, len(recs))
	for _, rec := range recs {
		items = append(items, recommendationToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CategoryBalance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CategoryBalance")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	balance, err := h.needsService.TeamCategoryBalance(ctx, h.settings, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "category balance failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, balanceToDTO(balance))
}

func (h *Handler) AnalyzeTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	analysis, err := h.needsService.AnalyzeTeamNeeds(ctx, h.settings, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "team analysis failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := needsAnalysisDTO{
		Balance:      balanceToDTO(analysis.Balance),
		AllStandings: analysis.AllStandings,
	}
	for _, s := range analysis.Slots {
		dto.Slots = append(dto.Slots, slotStateToDTO(s))
	}
	for _, rec := range analysis.Recommendations {
		dto.Recommendations = append(dto.Recommendations, recommendationToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) Scarcity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Scarcity")
	defer span.End()

	threshold := 0.0
	if raw := strings.TrimSpace(r.URL.Query().Get("threshold")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid threshold %q", usecase.ErrInvalidInput, raw))
			return
		}
		threshold = parsed
	}

	report, err := h.needsService.Scarcity(ctx, threshold)
	if err != nil {
		h.logger.WarnContext(ctx, "scarcity failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make(map[string]scarcityDTO, len(report))
	for pos, info := range report {
		items[pos] = scarcityDTO{
			Position: info.Position,
			Count:    info.Count,
			Level:    string(info.Level),
			Players:  info.Players,
		}
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AllTeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllTeamStandings")
	defer span.End()

	standings, err := h.needsService.AllTeamStandings(ctx, h.settings)
	if err != nil {
		h.logger.WarnContext(ctx, "standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) BestAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BestAvailable")
	defer span.End()

	topN := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("top")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid top %q", usecase.ErrInvalidInput, raw))
			return
		}
		topN = parsed
	}

	best, err := h.needsService.BestAvailable(ctx, topN)
	if err != nil {
		h.logger.WarnContext(ctx, "best available failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make(map[string][]playerDTO, len(best))
	for pos, players := range best {
		dtos := make([]playerDTO, 0, len(players))
		for _, p := range players {
			dtos = append(dtos, playerToDTO(p))
		}
		items[pos] = dtos
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type slotStateDTO struct {
	Position  string   `json:"position"`
	Required  int      `json:"required"`
	Filled    int      `json:"filled"`
	Remaining int      `json:"remaining"`
	Players   []string `json:"players"`
}

type scarcityDTO struct {
	Position string   `json:"position"`
	Count    int      `json:"count"`
	Level    string   `json:"level"`
	Players  []string `json:"players"`
}

type recommendationDTO struct {
	PlayerID        string   `json:"playerId"`
	PlayerName      string   `json:"playerName"`
	DollarValue     float64  `json:"dollarValue"`
	CompositeScore  float64  `json:"compositeScore"`
	PositionUrgency float64  `json:"positionUrgency"`
	CategoryFit     float64  `json:"categoryFit"`
	ValueSurplus    float64  `json:"valueSurplus"`
	FillsPositions  []string `json:"fillsPositions"`
	HelpsCategories []string `json:"helpsCategories,omitempty"`
}

type categoryRecommendationDTO struct {
	Category string `json:"category"`
	Standing int    `json:"standing"`
	Message  string `json:"message"`
}

type balanceDTO struct {
	SGPTotals       map[string]float64          `json:"sgpTotals"`
	RawStats        map[string]float64          `json:"rawStats"`
	Standings       map[string]int              `json:"standings"`
	Recommendations []categoryRecommendationDTO `json:"recommendations"`
	NumTeams        int                         `json:"numTeams"`
}

type needsAnalysisDTO struct {
	Slots           []slotStateDTO            `json:"slots"`
	Recommendations []recommendationDTO       `json:"recommendations"`
	Balance         balanceDTO                `json:"balance"`
	AllStandings    map[string]map[string]int `json:"allStandings"`
}

func slotStateToDTO(s usecase.SlotState) slotStateDTO {
	return slotStateDTO{
		Position:  s.Position,
		Required:  s.Required,
		Filled:    s.Filled,
		Remaining: s.Remaining,
		Players:   s.Players,
	}
}

func recommendationToDTO(rec usecase.Recommendation) recommendationDTO {
	return recommendationDTO{
		PlayerID:        rec.PlayerID,
		PlayerName:      rec.PlayerName,
		DollarValue:     rec.DollarValue,
		CompositeScore:  rec.CompositeScore,
		PositionUrgency: rec.PositionUrgency,
		CategoryFit:     rec.CategoryFit,
		ValueSurplus:    rec.ValueSurplus,
		FillsPositions:  rec.FillsPositions,
		HelpsCategories: rec.HelpsCategories,
	}
}

func balanceToDTO(balance usecase.CategoryBalance) balanceDTO {
	dto := balanceDTO{
		SGPTotals: balance.SGPTotals,
		RawStats:  balance.RawStats,
		Standings: balance.Standings,
		NumTeams:  balance.NumTeams,
	}
	for _, rec := range balance.Recommendations {
		dto.Recommendations = append(dto.Recommendations, categoryRecommendationDTO{
			Category: rec.Category,
			Standing: rec.Standing,
			Message:  rec.Message,
		})
	}
	return dto
}
