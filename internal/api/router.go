package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/follgramer/DiamantesProPlayers/internal/api/handler"
	"github.com/follgramer/DiamantesProPlayers/internal/api/middleware"
	"github.com/follgramer/DiamantesProPlayers/internal/api/sse"
	"github.com/follgramer/DiamantesProPlayers/internal/services/leaderboard"
	"github.com/follgramer/DiamantesProPlayers/internal/services/ledger"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	LedgerService      *ledger.Service
	LeaderboardService *leaderboard.Service
	Hub                *sse.Hub

	// APIKey, when non-empty, is required on every route except health
	APIKey string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	ledgerHandler := handler.NewLedgerHandler(cfg.LedgerService)
	accountHandler := handler.NewAccountHandler(cfg.LedgerService, cfg.LeaderboardService)

	apiKeyMiddleware := middleware.APIKey(cfg.APIKey)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no API key)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Ledger operations
	ops := api.PathPrefix("/ledger").Subrouter()
	ops.Use(apiKeyMiddleware)
	ops.HandleFunc("/initialize-user", ledgerHandler.InitializeUser).Methods(http.MethodPost)
	ops.HandleFunc("/add-tickets", ledgerHandler.AddTickets).Methods(http.MethodPost)
	ops.HandleFunc("/send-tickets", ledgerHandler.SendTickets).Methods(http.MethodPost)

	// Read-only projections
	reads := api.NewRoute().Subrouter()
	reads.Use(apiKeyMiddleware)
	reads.HandleFunc("/accounts/{player_id}", accountHandler.Get).Methods(http.MethodGet)
	reads.HandleFunc("/leaderboard", accountHandler.Leaderboard).Methods(http.MethodGet)
	reads.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
