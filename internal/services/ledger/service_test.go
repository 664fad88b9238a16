package ledger

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
	"github.com/follgramer/DiamantesProPlayers/internal/storage/memory"
	"github.com/follgramer/DiamantesProPlayers/internal/testutil"
)

// recordingSink captures published account updates
type recordingSink struct {
	mu      sync.Mutex
	updates []storage.CommitResult
}

func (r *recordingSink) AccountUpdated(res storage.CommitResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, res)
}

func (r *recordingSink) all() []storage.CommitResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]storage.CommitResult(nil), r.updates...)
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	sink    *recordingSink
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.sink = &recordingSink{}
	s.service = New(s.storage, s.sink, testutil.NopLogger())
	s.ctx = context.Background()
}

// InitializeUser

func (s *ServiceSuite) TestInitializeUserCreates() {
	res, err := s.service.InitializeUser(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal("Account initialized", res.Message)
	s.Equal(model.PlayerID("alice-1"), res.Account.PlayerID)
	s.Equal(int64(0), res.Account.Tickets)
	s.Equal(int64(0), res.Account.Passes)
	s.False(res.PassEarned)
}

func (s *ServiceSuite) TestInitializeUserIsIdempotent() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 500, "")
	s.Require().NoError(err)

	res, err := s.service.InitializeUser(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal("Account already exists", res.Message)
	s.Equal(int64(500), res.Account.Tickets, "existing balances must not be reset")
}

func (s *ServiceSuite) TestInitializeUserConcurrentCreation() {
	const n = 20

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			res, err := s.service.InitializeUser(s.ctx, "fresh-player")
			s.NoError(err)
			s.Equal(int64(0), res.Account.Tickets)
			s.Equal(int64(0), res.Account.Passes)
		}()
	}
	wg.Wait()

	got, err := s.storage.GetAccount(s.ctx, "fresh-player")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("fresh-player"), got.PlayerID)
	s.Equal(int64(0), got.Tickets)
	s.Equal(int64(0), got.Passes)
}

func (s *ServiceSuite) TestInitializeUserRejectsShortID() {
	_, err := s.service.InitializeUser(s.ctx, "abcd")
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}

// AddTickets

func (s *ServiceSuite) TestAddTicketsBoundary() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 999, "")
	s.Require().NoError(err)

	res, err := s.service.AddTickets(s.ctx, "alice-1", 1, "")
	s.Require().NoError(err)
	s.Equal(int64(0), res.Account.Tickets)
	s.Equal(int64(1), res.Account.Passes)
	s.True(res.PassEarned)
	s.Equal("Tickets added and pass earned!", res.Message)
}

func (s *ServiceSuite) TestAddTicketsMultiplePassesInOneCall() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 999, "")
	s.Require().NoError(err)

	res, err := s.service.AddTickets(s.ctx, "alice-1", 2001, "")
	s.Require().NoError(err)
	s.Equal(int64(0), res.Account.Tickets)
	s.Equal(int64(3), res.Account.Passes)
	s.True(res.PassEarned)
}

func (s *ServiceSuite) TestAddTicketsZeroAmount() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 700, "")
	s.Require().NoError(err)

	res, err := s.service.AddTickets(s.ctx, "alice-1", 0, "")
	s.Require().NoError(err)
	s.Equal(int64(700), res.Account.Tickets)
	s.False(res.PassEarned)
	s.Equal("Tickets added", res.Message)
}

func (s *ServiceSuite) TestAddTicketsRejectsNegative() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", -5, "")
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *ServiceSuite) TestAddTicketsRejectsOversizedAmount() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 2500, "")
	s.Require().NoError(err)

	// An overflowing credit must not commit: tickets+delta wrapping
	// negative would also zero the earned passes.
	_, err = s.service.AddTickets(s.ctx, "alice-1", math.MaxInt64, "")
	s.ErrorIs(err, model.ErrAmountTooLarge)

	_, err = s.service.AddTickets(s.ctx, "alice-1", model.MaxAmount+1, "")
	s.ErrorIs(err, model.ErrAmountTooLarge)

	got, err := s.storage.GetAccount(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal(int64(500), got.Tickets)
	s.Equal(int64(2), got.Passes)

	// The cap itself is accepted
	res, err := s.service.AddTickets(s.ctx, "alice-1", model.MaxAmount, "")
	s.Require().NoError(err)
	s.GreaterOrEqual(res.Account.Tickets, int64(0))
	s.Less(res.Account.Tickets, int64(model.TicketsPerPass))
	s.GreaterOrEqual(res.Account.Passes, int64(2))
}

func (s *ServiceSuite) TestAddTicketsInvalidIDNoSideEffect() {
	_, err := s.service.AddTickets(s.ctx, "abcd", 10, "")
	s.ErrorIs(err, model.ErrInvalidPlayerID)

	_, err = s.storage.GetAccount(s.ctx, "abcd")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestAddTicketsRolloverInvariant() {
	var total int64
	for _, amount := range []int64{0, 1, 999, 1000, 1001, 2500, 37} {
		res, err := s.service.AddTickets(s.ctx, "alice-1", amount, "")
		s.Require().NoError(err)
		total += amount

		s.GreaterOrEqual(res.Account.Tickets, int64(0))
		s.Less(res.Account.Tickets, int64(model.TicketsPerPass))
		s.Equal(total, res.Account.Tickets+model.TicketsPerPass*res.Account.Passes)
	}
}

func (s *ServiceSuite) TestAddTicketsNoLostUpdates() {
	const n = 50

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.service.AddTickets(s.ctx, "alice-1", 1, "")
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.storage.GetAccount(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal(int64(n), got.Tickets+model.TicketsPerPass*got.Passes)
}

func (s *ServiceSuite) TestAddTicketsRequestIDDeduplicates() {
	first, err := s.service.AddTickets(s.ctx, "alice-1", 999, "req-1")
	s.Require().NoError(err)
	s.False(first.PassEarned)

	retry, err := s.service.AddTickets(s.ctx, "alice-1", 999, "req-1")
	s.Require().NoError(err)
	s.Equal(first.Account, retry.Account)
	s.Equal(first.PassEarned, retry.PassEarned)

	got, err := s.storage.GetAccount(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal(int64(999), got.Tickets)
	s.Equal(int64(0), got.Passes)
}

// SendTicketsToID

func (s *ServiceSuite) TestSendTicketsRejectsZero() {
	_, err := s.service.SendTicketsToID(s.ctx, "alice-1", 0, "")
	s.ErrorIs(err, model.ErrZeroAmount)

	_, err = s.service.SendTicketsToID(s.ctx, "alice-1", -1, "")
	s.ErrorIs(err, model.ErrZeroAmount)
}

func (s *ServiceSuite) TestSendTicketsRejectsOversizedAmount() {
	// sendTicketsToId targets arbitrary player IDs, so the overflow
	// guard is what keeps one caller from wiping another's passes.
	_, err := s.service.SendTicketsToID(s.ctx, "bobby-1", 5000, "")
	s.Require().NoError(err)

	_, err = s.service.SendTicketsToID(s.ctx, "bobby-1", math.MaxInt64, "")
	s.ErrorIs(err, model.ErrAmountTooLarge)

	got, err := s.storage.GetAccount(s.ctx, "bobby-1")
	s.Require().NoError(err)
	s.Equal(int64(0), got.Tickets)
	s.Equal(int64(5), got.Passes)
}

func (s *ServiceSuite) TestSendTicketsCredits() {
	res, err := s.service.SendTicketsToID(s.ctx, "alice-1", 1500, "")
	s.Require().NoError(err)
	s.Equal(int64(500), res.Account.Tickets)
	s.Equal(int64(1), res.Account.Passes)
	s.True(res.PassEarned)
	s.Equal("Tickets sent and pass earned!", res.Message)
}

// GetAccount

func (s *ServiceSuite) TestGetAccountNotFound() {
	_, err := s.service.GetAccount(s.ctx, "nobody-here")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Event publication

func (s *ServiceSuite) TestCommitsArePublished() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 1000, "")
	s.Require().NoError(err)

	updates := s.sink.all()
	s.Require().Len(updates, 1)
	s.Equal(model.PlayerID("alice-1"), updates[0].Account.PlayerID)
	s.True(updates[0].PassEarned)
}

func (s *ServiceSuite) TestReplayedCommitsAreNotRepublished() {
	_, err := s.service.AddTickets(s.ctx, "alice-1", 10, "req-1")
	s.Require().NoError(err)
	_, err = s.service.AddTickets(s.ctx, "alice-1", 10, "req-1")
	s.Require().NoError(err)

	s.Len(s.sink.all(), 1)
}

func (s *ServiceSuite) TestValidationFailuresAreNotPublished() {
	_, err := s.service.AddTickets(s.ctx, "abcd", 10, "")
	s.Require().Error(err)
	s.Empty(s.sink.all())
}
