package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/infrastructure/repository/memory"
	"github.com/rotodraft/rotodraft/internal/platform/id"
	"github.com/rotodraft/rotodraft/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := league.Default()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	draftRepo := memory.NewDraftRepository()

	valuationService := usecase.NewValuationService(playerRepo, draftRepo, logger)
	playerService := usecase.NewPlayerService(playerRepo, logger)
	draftService := usecase.NewDraftService(playerRepo, draftRepo, valuationService, id.NewRandomGenerator(), logger)
	needsService := usecase.NewNeedsService(playerRepo, draftRepo, nil, logger)

	if _, err := valuationService.RecalculateAll(t.Context(), settings); err != nil {
		t.Fatalf("initial valuation: %v", err)
	}

	handler := NewHandler(settings, playerService, draftService, valuationService, needsService, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %s %s response: %v", method, path, err)
	}
	return rec, envelope
}

// draftedTeamIDs reads the user team and one rival out of the status
// endpoint after a draft has been initialized.
func draftedTeamIDs(t *testing.T, router http.Handler) (string, string) {
	t.Helper()

	rec, body := doJSON(t, router, http.MethodGet, "/v1/draft/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("draft status = %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	teams, _ := data["teams"].([]any)
	if len(teams) < 2 {
		t.Fatalf("expected at least two teams, got %d", len(teams))
	}

	userTeam := ""
	otherTeam := ""
	for _, raw := range teams {
		team, _ := raw.(map[string]any)
		teamID, _ := team["teamId"].(string)
		if isUser, _ := team["isUserTeam"].(bool); isUser {
			userTeam = teamID
		} else if otherTeam == "" {
			otherTeam = teamID
		}
	}
	if userTeam == "" || otherTeam == "" {
		t.Fatalf("missing team ids in status payload")
	}
	return userTeam, otherTeam
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected healthz body: %v", body)
	}
}

func TestRouter_ListPlayers(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/players?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list players status = %d", rec.Code)
	}
	items, _ := body["data"].([]any)
	if len(items) != 5 {
		t.Fatalf("expected 5 players, got %d", len(items))
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/players?kind=goalie", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid kind should 400, got %d", rec.Code)
	}
}

func TestRouter_GetPlayer_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/players/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown player status = %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("unexpected error status: %v", got)
	}
}

func TestRouter_DraftFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/draft/initialize", `{"userTeamName":"Rotisserie Royals"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("initialize status = %d: %v", rec.Code, body)
	}
	state, _ := body["data"].(map[string]any)
	if state["mode"] != "auction" {
		t.Fatalf("unexpected draft mode: %v", state["mode"])
	}

	userTeam, otherTeam := draftedTeamIDs(t, router)

	rec, body = doJSON(t, router, http.MethodPost, "/v1/draft/picks", `{"playerId":"h-of-01","teamId":"`+userTeam+`","price":42}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("draft player status = %d: %v", rec.Code, body)
	}
	pick, _ := body["data"].(map[string]any)
	if pick["playerId"] != "h-of-01" {
		t.Fatalf("unexpected pick: %v", pick)
	}
	if price, _ := pick["price"].(float64); price != 42 {
		t.Fatalf("unexpected pick price: %v", pick["price"])
	}

	// The same player cannot go twice.
	rec, _ = doJSON(t, router, http.MethodPost, "/v1/draft/picks", `{"playerId":"h-of-01","teamId":"`+otherTeam+`","price":10}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("double draft status = %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/v1/draft/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("draft status = %d", rec.Code)
	}
	status, _ := body["data"].(map[string]any)
	if status["initialized"] != true {
		t.Fatalf("draft should be initialized: %v", status)
	}

	rec, body = doJSON(t, router, http.MethodDelete, "/v1/draft/picks/last", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("undo last status = %d", rec.Code)
	}
	undo, _ := body["data"].(map[string]any)
	if undo["undone"] != true {
		t.Fatalf("expected pick undone: %v", undo)
	}
	released, _ := undo["player"].(map[string]any)
	if released["id"] != "h-of-01" {
		t.Fatalf("undo should report the released player: %v", undo)
	}
}

func TestRouter_DraftWithoutInitialize(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/draft/picks", `{"playerId":"h-of-01","teamId":"team-1","price":5}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("pick without draft status = %d: %v", rec.Code, body)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error status: %v", got)
	}
}

func TestRouter_NeedsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	if rec, _ := doJSON(t, router, http.MethodPost, "/v1/draft/initialize", `{}`); rec.Code != http.StatusCreated {
		t.Fatalf("initialize status = %d", rec.Code)
	}

	userTeam, _ := draftedTeamIDs(t, router)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/teams/"+userTeam+"/roster-needs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("roster needs status = %d: %v", rec.Code, body)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/scarcity", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("scarcity status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/best-available?top=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("best available status = %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/v1/teams/ghost/recommendations", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown team status = %d: %v", rec.Code, body)
	}
}
