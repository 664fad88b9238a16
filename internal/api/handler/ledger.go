package handler

import (
	"encoding/json"
	"net/http"

	"github.com/follgramer/DiamantesProPlayers/internal/api/apierr"
	"github.com/follgramer/DiamantesProPlayers/internal/api/request"
	"github.com/follgramer/DiamantesProPlayers/internal/api/response"
	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/services/ledger"
)

// LedgerHandler handles the ledger operation endpoints
type LedgerHandler struct {
	ledger *ledger.Service
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledgerService,
	}
}

// InitializeUser handles POST /api/v1/ledger/initialize-user
func (h *LedgerHandler) InitializeUser(w http.ResponseWriter, r *http.Request) {
	var req request.InitializeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.ledger.InitializeUser(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LedgerResponseFromResult(result))
}

// AddTickets handles POST /api/v1/ledger/add-tickets
func (h *LedgerHandler) AddTickets(w http.ResponseWriter, r *http.Request) {
	var req request.AddTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Amount == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("amount is required"))
		return
	}

	result, err := h.ledger.AddTickets(r.Context(), model.PlayerID(req.PlayerID), *req.Amount, req.RequestID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LedgerResponseFromResult(result))
}

// SendTickets handles POST /api/v1/ledger/send-tickets
func (h *LedgerHandler) SendTickets(w http.ResponseWriter, r *http.Request) {
	var req request.SendTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Amount == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("amount is required"))
		return
	}

	result, err := h.ledger.SendTicketsToID(r.Context(), model.PlayerID(req.PlayerID), *req.Amount, req.RequestID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LedgerResponseFromResult(result))
}
