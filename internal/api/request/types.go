package request

// InitializeUserRequest is the payload for POST /ledger/initialize-user
type InitializeUserRequest struct {
	PlayerID string `json:"playerId"`
}

// AddTicketsRequest is the payload for POST /ledger/add-tickets.
// RequestID is optional; retries carrying the same ID are credited once.
type AddTicketsRequest struct {
	PlayerID  string `json:"playerId"`
	Amount    *int64 `json:"amount"`
	RequestID string `json:"requestId,omitempty"`
}

// SendTicketsRequest is the payload for POST /ledger/send-tickets
type SendTicketsRequest struct {
	PlayerID  string `json:"playerId"`
	Amount    *int64 `json:"amount"`
	RequestID string `json:"requestId,omitempty"`
}
