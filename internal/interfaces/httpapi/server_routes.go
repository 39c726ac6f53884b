package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}/note", handler.SetPlayerNote)
	mux.HandleFunc("GET /v1/players/{playerID}/surplus", handler.GetPlayerSurplus)
	mux.HandleFunc("POST /v1/values/recalculate", handler.RecalculateValues)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/draft/initialize", handler.InitializeDraft)
	mux.HandleFunc("POST /v1/draft/picks", handler.DraftPlayer)
	mux.HandleFunc("DELETE /v1/draft/picks/last", handler.UndoLastPick)
	mux.HandleFunc("DELETE /v1/draft/picks/{pickID}", handler.UndoPick)
	mux.HandleFunc("POST /v1/draft/reset", handler.ResetDraft)
	mux.HandleFunc("GET /v1/draft/status", handler.DraftStatus)
	mux.HandleFunc("GET /v1/draft/history", handler.DraftHistory)
	mux.HandleFunc("GET /v1/draft/turn", handler.CurrentTurn)
	mux.HandleFunc("GET /v1/draft/teams/{teamID}/max-bid", handler.MaxBid)
	mux.HandleFunc("POST /v1/draft/teams/{teamID}/bid-impact", handler.BidImpact)
}

func registerNeedsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/roster-needs", handler.RosterNeeds)
	mux.HandleFunc("GET /v1/teams/{teamID}/recommendations", handler.Recommendations)
	mux.HandleFunc("GET /v1/teams/{teamID}/category-balance", handler.CategoryBalance)
	mux.HandleFunc("GET /v1/teams/{teamID}/analysis", handler.AnalyzeTeam)
	mux.HandleFunc("GET /v1/scarcity", handler.Scarcity)
	mux.HandleFunc("GET /v1/standings", handler.AllTeamStandings)
	mux.HandleFunc("GET /v1/best-available", handler.BestAvailable)
}
