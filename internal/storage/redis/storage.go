package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Account updates use WATCH/MULTI optimistic transactions: the account
// key (and dedup key, when present) is watched, the mutation is applied
// to the value read under the watch, and EXEC fails if a concurrent
// writer touched the key first. The leaderboard sorted set is written in
// the same MULTI so the projection never drifts from the record.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("redis get account: %w", err)
	}

	var acct model.PlayerAccount
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("decode account %q: %w", id, err)
	}
	return &acct, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, id model.PlayerID, requestID string, mutate storage.UpdateFunc) (storage.CommitResult, bool, error) {
	acctKey := accountKey(id)

	watchKeys := []string{acctKey}
	var reqKey string
	if requestID != "" {
		reqKey = dedupKey(id, requestID)
		watchKeys = append(watchKeys, reqKey)
	}

	var result storage.CommitResult
	var applied bool

	txf := func(tx *redis.Tx) error {
		if reqKey != "" {
			data, err := tx.Get(ctx, reqKey).Bytes()
			if err == nil {
				// A previous commit already recorded this request;
				// replay its result without writing anything.
				if err := json.Unmarshal(data, &result); err != nil {
					return fmt.Errorf("decode dedup record %q: %w", reqKey, err)
				}
				applied = false
				return nil
			}
			if !errors.Is(err, redis.Nil) {
				return err
			}
		}

		current := model.NewAccount(id)
		exists := false
		data, err := tx.Get(ctx, acctKey).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &current); err != nil {
				return fmt.Errorf("decode account %q: %w", id, err)
			}
			exists = true
		case errors.Is(err, redis.Nil):
			// lazily created below
		default:
			return err
		}
		// The stored record always mirrors its key
		current.PlayerID = id

		res, err := mutate(current, exists)
		if err != nil {
			return err
		}
		res.Account.PlayerID = id

		payload, err := json.Marshal(res.Account)
		if err != nil {
			return fmt.Errorf("encode account %q: %w", id, err)
		}

		var dedupPayload []byte
		if reqKey != "" {
			dedupPayload, err = json.Marshal(res)
			if err != nil {
				return fmt.Errorf("encode dedup record %q: %w", reqKey, err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, acctKey, payload, 0)
			pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
				Score:  leaderboardScore(res.Account),
				Member: string(id),
			})
			if reqKey != "" {
				pipe.Set(ctx, reqKey, dedupPayload, s.cfg.DedupTTL)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = res
		applied = true
		return nil
	}

	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, watchKeys...)
		if err == nil {
			return result, applied, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return storage.CommitResult{}, false, fmt.Errorf("redis update account: %w", err)
		}
		// Conflicting concurrent write; back off and retry
		if err := s.backoff(ctx, attempt); err != nil {
			return storage.CommitResult{}, false, err
		}
	}

	return storage.CommitResult{}, false, model.ErrTxAborted
}

// backoff sleeps for a jittered, attempt-scaled delay or until ctx ends.
func (s *Storage) backoff(ctx context.Context, attempt int) error {
	base := s.cfg.RetryBackoff * time.Duration(attempt+1)
	delay := base/2 + time.Duration(rand.Int63n(int64(base)))

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Storage) TopAccounts(ctx context.Context, limit int) ([]*model.PlayerAccount, error) {
	if limit <= 0 {
		return []*model.PlayerAccount{}, nil
	}

	ids, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis leaderboard range: %w", err)
	}
	if len(ids) == 0 {
		return []*model.PlayerAccount{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = accountKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis fetch accounts: %w", err)
	}

	accounts := make([]*model.PlayerAccount, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index member without a record
		}
		var acct model.PlayerAccount
		if err := json.Unmarshal([]byte(val.(string)), &acct); err != nil {
			continue // skip invalid data
		}
		accounts = append(accounts, &acct)
	}

	return accounts, nil
}

// leaderboardScore maps an account to a single sortable score.
// Tickets are always below TicketsPerPass, so passes dominate and
// tickets break ties, matching "passes desc, then tickets desc".
func leaderboardScore(acct model.PlayerAccount) float64 {
	return float64(acct.Passes*model.TicketsPerPass + acct.Tickets)
}
