package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
)

// EventSink receives committed account updates for live projections.
// Implementations must not block the caller.
type EventSink interface {
	AccountUpdated(res storage.CommitResult)
}

// Service implements the ledger operations: initializing accounts and
// crediting tickets with automatic pass rollover. All mutations go
// through the storage layer's atomic update primitive, so concurrent
// calls against the same player never lose updates.
type Service struct {
	storage storage.Storage
	sink    EventSink
	logger  *slog.Logger
}

// Result is the outcome of a ledger operation returned to callers.
type Result struct {
	Account    model.PlayerAccount
	PassEarned bool
	Message    string
}

// New creates a new ledger service. sink may be nil when no live
// projection is wired.
func New(store storage.Storage, sink EventSink, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		sink:    sink,
		logger:  logger,
	}
}

// InitializeUser creates the account for playerID with zero balances if
// it does not exist, and returns the existing account unchanged if it
// does. Creation goes through the atomic update primitive, so two
// concurrent initializations of a brand-new player resolve to a single
// record.
func (s *Service) InitializeUser(ctx context.Context, playerID model.PlayerID) (*Result, error) {
	if err := model.ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	created := false
	res, applied, err := s.apply(ctx, playerID, "", func(current model.PlayerAccount, exists bool) (storage.CommitResult, error) {
		created = !exists
		return storage.CommitResult{Account: current}, nil
	})
	if err != nil {
		return nil, err
	}

	msg := "Account already exists"
	if created {
		msg = "Account initialized"
		s.logger.Info("account initialized", slog.String("player_id", string(playerID)))
	}
	s.publish(res, applied)

	return &Result{Account: res.Account, Message: msg}, nil
}

// AddTickets credits amount tickets to playerID, rolling tickets over
// into passes every model.TicketsPerPass. amount may be zero, which
// touches (and lazily creates) the account without changing balances.
// A non-empty requestID makes retries of the same logical call
// idempotent.
func (s *Service) AddTickets(ctx context.Context, playerID model.PlayerID, amount int64, requestID string) (*Result, error) {
	if err := model.ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, model.ErrInvalidAmount
	}
	if amount > model.MaxAmount {
		return nil, model.ErrAmountTooLarge
	}

	res, applied, err := s.credit(ctx, playerID, amount, requestID)
	if err != nil {
		return nil, err
	}

	msg := "Tickets added"
	if res.PassEarned {
		msg = "Tickets added and pass earned!"
	}
	s.publish(res, applied)

	return &Result{Account: res.Account, PassEarned: res.PassEarned, Message: msg}, nil
}

// SendTicketsToID credits amount tickets to playerID. Unlike AddTickets
// it rejects a zero amount.
func (s *Service) SendTicketsToID(ctx context.Context, playerID model.PlayerID, amount int64, requestID string) (*Result, error) {
	if err := model.ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, model.ErrZeroAmount
	}
	if amount > model.MaxAmount {
		return nil, model.ErrAmountTooLarge
	}

	res, applied, err := s.credit(ctx, playerID, amount, requestID)
	if err != nil {
		return nil, err
	}

	msg := "Tickets sent"
	if res.PassEarned {
		msg = "Tickets sent and pass earned!"
	}
	s.publish(res, applied)

	return &Result{Account: res.Account, PassEarned: res.PassEarned, Message: msg}, nil
}

// GetAccount reads an account without mutating it.
func (s *Service) GetAccount(ctx context.Context, playerID model.PlayerID) (*model.PlayerAccount, error) {
	if err := model.ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	return s.storage.GetAccount(ctx, playerID)
}

func (s *Service) credit(ctx context.Context, playerID model.PlayerID, amount int64, requestID string) (storage.CommitResult, bool, error) {
	res, applied, err := s.apply(ctx, playerID, requestID, func(current model.PlayerAccount, exists bool) (storage.CommitResult, error) {
		next, earned := current.ApplyTickets(amount)
		return storage.CommitResult{Account: next, PassEarned: earned > 0}, nil
	})
	if err != nil {
		return storage.CommitResult{}, false, err
	}

	if !applied {
		s.logger.Info("duplicate request replayed",
			slog.String("player_id", string(playerID)),
			slog.String("request_id", requestID))
	}
	return res, applied, nil
}

// apply runs the atomic update, normalizing a panic inside the mutation
// to an error instead of letting it escape to the transport layer.
func (s *Service) apply(ctx context.Context, playerID model.PlayerID, requestID string, mutate storage.UpdateFunc) (res storage.CommitResult, applied bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during ledger mutation",
				slog.String("player_id", string(playerID)),
				slog.Any("panic", r))
			err = fmt.Errorf("ledger mutation failed: %v", r)
		}
	}()

	return s.storage.UpdateAccount(ctx, playerID, requestID, mutate)
}

// publish forwards a committed result to the event sink. Replayed
// (deduplicated) calls are not re-published.
func (s *Service) publish(res storage.CommitResult, applied bool) {
	if s.sink == nil || !applied {
		return
	}
	s.sink.AccountUpdated(res)
}
