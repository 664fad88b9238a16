package model

// PlayerID uniquely identifies a player across the system.
// It is a user-chosen alphanumeric string persisted on the client.
type PlayerID string

const (
	// TicketsPerPass is the conversion rate: every 1000 tickets
	// accumulated rolls over into one pass.
	TicketsPerPass = 1000

	// MinPlayerIDLength is the minimum accepted player ID length.
	MinPlayerIDLength = 5

	// MaxAmount caps a single credit. It keeps the rollover arithmetic
	// in ApplyTickets far from the int64 range: a larger amount could
	// wrap Tickets negative and erase Passes.
	MaxAmount = 1_000_000_000
)

// PlayerAccount is the persisted ledger record for one player.
// Tickets always holds the remainder after pass conversion, so
// 0 <= Tickets < TicketsPerPass after every committed write.
// Passes never decreases.
type PlayerAccount struct {
	PlayerID PlayerID `json:"playerId"`
	Tickets  int64    `json:"tickets"`
	Passes   int64    `json:"passes"`
}

// NewAccount returns a fresh zero-valued account for a player.
func NewAccount(id PlayerID) PlayerAccount {
	return PlayerAccount{PlayerID: id}
}

// ApplyTickets returns a copy of the account with delta tickets added
// and the rollover applied, plus the number of passes earned by this
// delta alone. It is a pure function: callers may invoke it repeatedly
// on the same input (the atomic update primitive does exactly that on
// conflict).
func (a PlayerAccount) ApplyTickets(delta int64) (PlayerAccount, int64) {
	raw := a.Tickets + delta
	earned := raw / TicketsPerPass
	a.Tickets = raw % TicketsPerPass
	a.Passes += earned
	return a, earned
}

// ValidatePlayerID checks the player ID shape shared by all ledger
// operations.
func ValidatePlayerID(id PlayerID) error {
	if len(id) < MinPlayerIDLength {
		return ErrInvalidPlayerID
	}
	return nil
}
