package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/usecase"
)

type Handler struct {
	settings         league.Settings
	playerService    *usecase.PlayerService
	draftService     *usecase.DraftService
	valuationService *usecase.ValuationService
	needsService     *usecase.NeedsService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	settings league.Settings,
	playerService *usecase.PlayerService,
	draftService *usecase.DraftService,
	valuationService *usecase.ValuationService,
	needsService *usecase.NeedsService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		settings:         settings,
		playerService:    playerService,
		draftService:     draftService,
		valuationService: valuationService,
		needsService:     needsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter := usecase.PlayerFilter{
		Kind:          player.Kind(strings.TrimSpace(r.URL.Query().Get("kind"))),
		UndraftedOnly: r.URL.Query().Get("undrafted") == "true",
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw))
			return
		}
		filter.Limit = limit
	}
	if filter.Kind != "" {
		if _, ok := player.AllKinds[filter.Kind]; !ok {
			writeError(ctx, w, fmt.Errorf("%w: invalid player kind %q", usecase.ErrInvalidInput, filter.Kind))
			return
		}
	}

	players, err := h.playerService.ListPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	p, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) SetPlayerNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPlayerNote")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req setNoteRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.SetNote(ctx, playerID, req.Note); err != nil {
		h.logger.WarnContext(ctx, "set player note failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"player_id": playerID})
}

func (h *Handler) GetPlayerSurplus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSurplus")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	price := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("price")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid price %q", usecase.ErrInvalidInput, raw))
			return
		}
		price = parsed
	}

	surplus, err := h.playerService.Surplus(ctx, playerID, price)
	if err != nil {
		h.logger.WarnContext(ctx, "player surplus failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, surplus)
}

func (h *Handler) RecalculateValues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateValues")
	defer span.End()

	scope := usecase.RecalculateScope(strings.TrimSpace(r.URL.Query().Get("scope")))
	count, err := h.valuationService.Recalculate(ctx, h.settings, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate values failed", "scope", scope, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"players_updated": count})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeRequest(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type setNoteRequest struct {
	Note string `json:"note" validate:"max=2000"`
}

type playerDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	MLBTeam     string             `json:"mlbTeam"`
	Positions   []string           `json:"positions"`
	Kind        string             `json:"kind"`
	SGP         float64            `json:"sgp"`
	Breakdown   map[string]float64 `json:"sgpBreakdown,omitempty"`
	DollarValue float64            `json:"dollarValue"`
	Drafted     bool               `json:"drafted"`
	Note        string             `json:"note,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		MLBTeam:     p.MLBTeam,
		Positions:   append([]string(nil), p.Positions...),
		Kind:        string(p.Kind),
		SGP:         p.SGP,
		Breakdown:   p.Breakdown,
		DollarValue: p.DollarValue,
		Drafted:     p.Drafted,
		Note:        p.Note,
	}
}
