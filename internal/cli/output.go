package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case LedgerResult:
		o.printLedgerResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	PlayerID string `json:"playerId"`
	Tickets  int64  `json:"tickets"`
	Passes   int64  `json:"passes"`
}

// LedgerResult is the envelope returned by ledger operations
type LedgerResult struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	PassEarned bool    `json:"passEarned"`
	User       Account `json:"user"`
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	Account Account `json:"account"`
}

// Leaderboard is the leaderboard response
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Player:  %s\n", a.PlayerID)
	fmt.Printf("Tickets: %d\n", a.Tickets)
	fmt.Printf("Passes:  %d\n", a.Passes)
}

func (o *Output) printLedgerResult(r LedgerResult) {
	fmt.Println(r.Message)
	if r.PassEarned {
		fmt.Println("Pass earned this call!")
	}
	o.printAccount(r.User)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("No accounts yet")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("%3d. %-20s passes=%d tickets=%d\n",
			e.Rank, e.Account.PlayerID, e.Account.Passes, e.Account.Tickets)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
