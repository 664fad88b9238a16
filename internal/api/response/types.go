package response

import (
	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/services/ledger"
)

// Account represents a ledger account in API responses
type Account struct {
	PlayerID string `json:"playerId"`
	Tickets  int64  `json:"tickets"`
	Passes   int64  `json:"passes"`
}

// AccountFromModel converts a model.PlayerAccount to a response Account
func AccountFromModel(a model.PlayerAccount) Account {
	return Account{
		PlayerID: string(a.PlayerID),
		Tickets:  a.Tickets,
		Passes:   a.Passes,
	}
}

// LedgerResponse is the envelope returned by all ledger operations
type LedgerResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	PassEarned bool    `json:"passEarned"`
	User       Account `json:"user"`
}

// LedgerResponseFromResult converts a ledger.Result
func LedgerResponseFromResult(r *ledger.Result) LedgerResponse {
	return LedgerResponse{
		Success:    true,
		Message:    r.Message,
		PassEarned: r.PassEarned,
		User:       AccountFromModel(r.Account),
	}
}

// LeaderboardEntry is one ranked row in the leaderboard
type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	Account Account `json:"account"`
}

// LeaderboardResponse is the leaderboard projection
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromAccounts converts ranked accounts
func LeaderboardFromAccounts(accounts []*model.PlayerAccount) LeaderboardResponse {
	entries := make([]LeaderboardEntry, len(accounts))
	for i, a := range accounts {
		entries[i] = LeaderboardEntry{
			Rank:    i + 1,
			Account: AccountFromModel(*a),
		}
	}
	return LeaderboardResponse{Entries: entries}
}
