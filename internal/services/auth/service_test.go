package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cornhole/internal/dependencies/mocks"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/remote/remotetest"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/storage/memory"
	"github.com/mcoot/cornhole/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	server  *remotetest.Server
	clock   *mocks.MockClock
	store   *localstore.Manager
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.server = remotetest.New(s.T())
	s.server.AddUser(model.RosterEntry{ID: "u1", Name: "Alice", Board: "Backyard"}, "1234",
		testutil.Token(s.T(), s.clock.Now().Add(time.Hour)))

	logger := testutil.NopLogger()
	s.store = localstore.New(memory.New(), s.clock, localstore.DefaultConfig(), logger)
	client := remote.NewClient(remote.Config{BaseURL: s.server.URL})
	s.service = New(client, s.store, NewJWTValidator(s.clock), logger)
}

// Login tests

func (s *ServiceSuite) TestLoginCachesCredential() {
	profile, err := s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)
	s.Equal(model.Profile{ID: "u1", Name: "Alice", Board: "Backyard"}, *profile)

	cred, err := s.store.Credential(s.ctx)
	s.Require().NoError(err)
	s.Equal(*profile, cred.Profile)
	s.NotEmpty(cred.Token)
}

func (s *ServiceSuite) TestLoginTrimsName() {
	profile, err := s.service.Login(s.ctx, "  Alice ", "1234")
	s.Require().NoError(err)
	s.Equal("Alice", profile.Name)
}

func (s *ServiceSuite) TestLoginValidation() {
	_, err := s.service.Login(s.ctx, " ", "1234")
	s.ErrorIs(err, model.ErrPlayerMissing)

	_, err = s.service.Login(s.ctx, "Alice", "")
	s.ErrorIs(err, model.ErrEmptyPasscode)

	_, err = s.store.Credential(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestLoginRejectedCachesNothing() {
	_, err := s.service.Login(s.ctx, "Alice", "0000")
	s.ErrorIs(err, model.ErrRemoteRejected)

	_, err = s.store.Credential(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestLoginFailureKeepsExistingSession() {
	_, err := s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "Alice", "bad")
	s.Require().Error(err)

	profile, err := s.service.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("Alice", profile.Name)
}

func (s *ServiceSuite) TestConcurrentLoginRejected() {
	release := s.server.Block()
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := s.service.Login(s.ctx, "Alice", "1234")
		done <- err
	}()

	select {
	case <-s.server.Arrived():
	case <-time.After(5 * time.Second):
		s.FailNow("first login never reached the server")
	}

	_, err := s.service.Login(s.ctx, "Alice", "1234")
	s.ErrorIs(err, model.ErrExchangeInFlight)

	release()
	s.Require().NoError(<-done)

	// The guard is released once the first exchange completes
	_, err = s.service.Login(s.ctx, "Alice", "1234")
	s.NoError(err)
}

// Current tests

func (s *ServiceSuite) TestCurrentWithoutSession() {
	_, err := s.service.Current(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestCurrentPurgesExpiredSession() {
	_, err := s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)

	_, err = s.service.Current(s.ctx)
	s.ErrorIs(err, model.ErrInvalidSession)

	_, err = s.store.Credential(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestCurrentPurgesUndecodableToken() {
	s.Require().NoError(s.store.SaveCredential(s.ctx, model.Credential{
		Token:   "garbage",
		Profile: model.Profile{ID: "u1", Name: "Alice"},
	}))

	_, err := s.service.Current(s.ctx)
	s.ErrorIs(err, model.ErrInvalidSession)

	_, err = s.store.Credential(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestIdentify() {
	profile, err := s.service.Identify(s.ctx)
	s.Require().NoError(err)
	s.Nil(profile)

	_, err = s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)

	profile, err = s.service.Identify(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(profile)
	s.Equal(model.PlayerID("u1"), profile.ID)

	s.clock.Advance(2 * time.Hour)
	profile, err = s.service.Identify(s.ctx)
	s.Require().NoError(err)
	s.Nil(profile)
}

// Logout tests

func (s *ServiceSuite) TestLogout() {
	_, err := s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.ctx))

	_, err = s.service.Current(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ServiceSuite) TestLogoutWithoutSession() {
	s.NoError(s.service.Logout(s.ctx))
}

// UpdateBoard tests

func (s *ServiceSuite) TestUpdateBoard() {
	_, err := s.service.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)

	profile, err := s.service.UpdateBoard(s.ctx, "Garage")
	s.Require().NoError(err)
	s.Equal("Garage", profile.Board)

	s.Equal("Garage", s.server.Board("u1"))
	current, err := s.service.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("Garage", current.Board)
}

func (s *ServiceSuite) TestUpdateBoardRemoteFailureLeavesProfile() {
	s.Require().NoError(s.store.SaveCredential(s.ctx, model.Credential{
		Token:   testutil.Token(s.T(), s.clock.Now().Add(time.Hour)),
		Profile: model.Profile{ID: "ghost", Name: "Ghost", Board: "Old"},
	}))

	_, err := s.service.UpdateBoard(s.ctx, "New")
	s.ErrorIs(err, model.ErrRemoteRejected)

	current, err := s.service.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("Old", current.Board)
}

func (s *ServiceSuite) TestUpdateBoardRequiresSession() {
	_, err := s.service.UpdateBoard(s.ctx, "Garage")
	s.ErrorIs(err, model.ErrNoSession)
}
