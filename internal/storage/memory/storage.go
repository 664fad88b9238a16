package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
)

// DefaultDedupTTL bounds how long a recorded request ID is replayable.
const DefaultDedupTTL = 24 * time.Hour

// Storage is an in-memory implementation of the storage interface.
// The mutex serializes read-modify-write cycles, which makes
// UpdateAccount trivially atomic.
type Storage struct {
	mu sync.RWMutex

	accounts map[model.PlayerID]model.PlayerAccount
	dedup    map[dedupKey]dedupEntry

	dedupTTL time.Duration
}

type dedupKey struct {
	playerID  model.PlayerID
	requestID string
}

type dedupEntry struct {
	result    storage.CommitResult
	expiresAt time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[model.PlayerID]model.PlayerAccount),
		dedup:    make(map[dedupKey]dedupEntry),
		dedupTTL: DefaultDedupTTL,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &acct, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, id model.PlayerID, requestID string, mutate storage.UpdateFunc) (storage.CommitResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sweepDedup(now)

	if requestID != "" {
		if entry, ok := s.dedup[dedupKey{playerID: id, requestID: requestID}]; ok {
			return entry.result, false, nil
		}
	}

	current, exists := s.accounts[id]
	if !exists {
		current = model.NewAccount(id)
	}
	// The stored record always mirrors its key, even if a previous
	// writer left it partial.
	current.PlayerID = id

	result, err := mutate(current, exists)
	if err != nil {
		return storage.CommitResult{}, false, err
	}
	result.Account.PlayerID = id

	s.accounts[id] = result.Account
	if requestID != "" {
		s.dedup[dedupKey{playerID: id, requestID: requestID}] = dedupEntry{
			result:    result,
			expiresAt: now.Add(s.dedupTTL),
		}
	}

	return result, true, nil
}

// sweepDedup drops expired replay records so request IDs that are never
// retried do not accumulate. Callers must hold the write lock.
func (s *Storage) sweepDedup(now time.Time) {
	for key, entry := range s.dedup {
		if !now.Before(entry.expiresAt) {
			delete(s.dedup, key)
		}
	}
}

func (s *Storage) TopAccounts(ctx context.Context, limit int) ([]*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*model.PlayerAccount, 0, len(s.accounts))
	for _, acct := range s.accounts {
		a := acct
		accounts = append(accounts, &a)
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Passes != accounts[j].Passes {
			return accounts[i].Passes > accounts[j].Passes
		}
		if accounts[i].Tickets != accounts[j].Tickets {
			return accounts[i].Tickets > accounts[j].Tickets
		}
		// Ties break on player ID descending, matching the reverse
		// lexical order Redis uses for equal sorted-set scores.
		return accounts[i].PlayerID > accounts[j].PlayerID
	})

	if limit > 0 && limit < len(accounts) {
		accounts = accounts[:limit]
	}
	return accounts, nil
}
