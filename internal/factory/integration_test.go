package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

// Test: full reward flow from account creation to leaderboard ranking
func (s *IntegrationSuite) TestCompleteRewardFlow() {
	// Step 1: Player opens the app and initializes an account
	res, err := s.app.LedgerService.InitializeUser(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal(int64(0), res.Account.Tickets)

	// Step 2: Player watches rewarded videos, earning 20 tickets each
	for i := 0; i < 49; i++ {
		res, err = s.app.LedgerService.AddTickets(s.ctx, "alice-1", 20, "")
		s.Require().NoError(err)
		s.False(res.PassEarned)
	}

	// Step 3: The 50th video crosses the pass threshold
	res, err = s.app.LedgerService.AddTickets(s.ctx, "alice-1", 20, "")
	s.Require().NoError(err)
	s.True(res.PassEarned)
	s.Equal(int64(0), res.Account.Tickets)
	s.Equal(int64(1), res.Account.Passes)

	// Step 4: A second player earns a smaller balance
	_, err = s.app.LedgerService.SendTicketsToID(s.ctx, "bobby-1", 300, "")
	s.Require().NoError(err)

	// Step 5: The leaderboard ranks pass holders first
	top, err := s.app.LeaderboardService.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("alice-1"), top[0].PlayerID)
	s.Equal(model.PlayerID("bobby-1"), top[1].PlayerID)
}

// Test: a client retry with the same request ID does not double-credit
func (s *IntegrationSuite) TestRetryWithRequestID() {
	_, err := s.app.LedgerService.AddTickets(s.ctx, "alice-1", 500, "watch-abc123")
	s.Require().NoError(err)

	// The client timed out and retried the same logical call
	res, err := s.app.LedgerService.AddTickets(s.ctx, "alice-1", 500, "watch-abc123")
	s.Require().NoError(err)
	s.Equal(int64(500), res.Account.Tickets)

	got, err := s.app.MemoryStorage.GetAccount(s.ctx, "alice-1")
	s.Require().NoError(err)
	s.Equal(int64(500), got.Tickets)
}
