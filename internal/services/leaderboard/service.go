package leaderboard

import (
	"context"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
)

const (
	// DefaultLimit is used when a caller does not ask for a size
	DefaultLimit = 25

	// MaxLimit caps a single leaderboard page
	MaxLimit = 100
)

// Service is the read-only leaderboard projection over the ledger
// store: accounts ordered by passes descending, then tickets
// descending. It never mutates ledger state.
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard service
func New(store storage.Storage) *Service {
	return &Service{storage: store}
}

// Top returns the highest-ranked accounts. limit <= 0 selects
// DefaultLimit; anything above MaxLimit is clamped.
func (s *Service) Top(ctx context.Context, limit int) ([]*model.PlayerAccount, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.storage.TopAccounts(ctx, limit)
}
