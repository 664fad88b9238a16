package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/follgramer/DiamantesProPlayers/internal/api/apierr"
	"github.com/follgramer/DiamantesProPlayers/internal/api/response"
	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/services/leaderboard"
	"github.com/follgramer/DiamantesProPlayers/internal/services/ledger"
)

// AccountHandler handles the read-only account projections
type AccountHandler struct {
	ledger      *ledger.Service
	leaderboard *leaderboard.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerService *ledger.Service, leaderboardService *leaderboard.Service) *AccountHandler {
	return &AccountHandler{
		ledger:      ledgerService,
		leaderboard: leaderboardService,
	}
}

// Get handles GET /api/v1/accounts/{player_id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]

	acct, err := h.ledger.GetAccount(r.Context(), model.PlayerID(playerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(*acct))
}

// Leaderboard handles GET /api/v1/leaderboard?limit=N
func (h *AccountHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	accounts, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromAccounts(accounts))
}
