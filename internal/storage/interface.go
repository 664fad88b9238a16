package storage

import (
	"context"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
)

// CommitResult is the outcome of one committed ledger transaction.
// It is what UpdateAccount persists and, when a request ID is supplied,
// what a deduplicated retry replays instead of re-applying the mutation.
type CommitResult struct {
	Account    model.PlayerAccount `json:"account"`
	PassEarned bool                `json:"passEarned"`
}

// UpdateFunc computes the next committed state from the current one.
// Absent accounts are presented as a fresh zero account with exists=false.
// It must be pure: the store re-invokes it when a concurrent write
// interleaves with the read-modify-write cycle.
type UpdateFunc func(current model.PlayerAccount, exists bool) (CommitResult, error)

// Storage defines the interface for ledger persistence
type Storage interface {
	// GetAccount returns the account for id, or model.ErrAccountNotFound.
	GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error)

	// UpdateAccount applies mutate atomically to the account for id.
	// Concurrent updates against the same id never lose writes: each
	// commit observes the effect of every prior commit. When the store
	// cannot converge within its retry budget it fails with
	// model.ErrTxAborted and no partial state is left behind.
	//
	// A non-empty requestID deduplicates retried calls: the first commit
	// records its result under (id, requestID) in the same atomic step,
	// and subsequent calls with the same pair replay that result. The
	// returned bool reports whether this call performed the write (false
	// on a dedup replay).
	UpdateAccount(ctx context.Context, id model.PlayerID, requestID string, mutate UpdateFunc) (CommitResult, bool, error)

	// TopAccounts returns up to limit accounts ordered by passes
	// descending, then tickets descending.
	TopAccounts(ctx context.Context, limit int) ([]*model.PlayerAccount, error)
}
