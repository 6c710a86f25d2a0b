package factory

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/remote/remotetest"
	redisstorage "github.com/mcoot/cornhole/internal/storage/redis"
	"github.com/mcoot/cornhole/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	server *remotetest.Server
	app    *TestApp
	ctx    context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = remotetest.New(s.T())
	s.app = NewTestApp(s.server.URL)

	token := testutil.Token(s.T(), s.app.MockClock.Now().Add(2*time.Hour))
	s.server.AddUser(model.RosterEntry{ID: "u1", Name: "Alice", Board: "Backyard"}, "1234", token)
	s.server.AddUser(model.RosterEntry{ID: "u2", Name: "Bob"}, "5678", token)
	s.server.AddUser(model.RosterEntry{ID: "u3", Name: "Carol"}, "0000", token)
}

// playGame plays a game between the named players where player one wins
// every round 3 to 1, then ends it
func (s *IntegrationSuite) playGame(p1, p2 string, rounds int) *model.GameRecord {
	entry1, ok, err := s.app.RosterService.Lookup(s.ctx, p1)
	s.Require().NoError(err)
	s.Require().True(ok)
	entry2, ok, err := s.app.RosterService.Lookup(s.ctx, p2)
	s.Require().NoError(err)
	s.Require().True(ok)

	gc := s.app.GameController
	session := gc.NewSession()
	s.Require().NoError(gc.Start(s.ctx, session, entry1, entry2, ""))

	for range rounds {
		ok, err := gc.Throw(s.ctx, session, model.Slot1, model.ThrowIn)
		s.Require().NoError(err)
		s.Require().True(ok)
		ok, err = gc.Throw(s.ctx, session, model.Slot2, model.ThrowOn)
		s.Require().NoError(err)
		s.Require().True(ok)
		_, err = gc.EndRound(s.ctx, session)
		s.Require().NoError(err)
	}

	s.app.MockClock.Advance(time.Minute)
	record, err := gc.EndGame(s.ctx, session)
	s.Require().NoError(err)
	return record
}

// Test: login, play, archive, upload and stats end to end
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Log in and fetch the roster
	profile, err := s.app.AuthService.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)
	s.Equal("Backyard", profile.Board)

	result, err := s.app.RosterService.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Len(result.Players, 3)

	// Step 2: Play two games, one of which Alice is not in
	record := s.playGame("Alice", "Bob", 3)
	s.Equal("Alice", record.Winner)
	s.Equal(6, record.Player1.Score)
	s.Equal("Backyard", record.Board)
	s.playGame("Bob", "Carol", 1)

	archive, err := s.app.LocalStore.Archive(s.ctx)
	s.Require().NoError(err)
	s.Len(archive, 2)

	// Step 3: Upload only Alice's game
	uploaded, err := s.app.UploadGateway.Upload(s.ctx, profile.Name)
	s.Require().NoError(err)
	s.Equal(1, uploaded.Submitted)

	uploads := s.server.Uploads()
	s.Require().Len(uploads, 1)
	s.Require().Len(uploads[0], 1)
	s.Equal("Bob", uploads[0][0].Player2.Name)

	// Step 4: Stats reflect the archive
	summary, err := s.app.StatsService.User(s.ctx, "Bob")
	s.Require().NoError(err)
	s.Equal(2, summary.GamesPlayed)
	s.Equal(1, summary.Wins)
	s.Equal(1, summary.Losses)
}

// Test: an expired login is purged when the next game starts
func (s *IntegrationSuite) TestExpiredSessionPurgedOnStart() {
	_, err := s.app.AuthService.Login(s.ctx, "Alice", "1234")
	s.Require().NoError(err)
	_, err = s.app.RosterService.Refresh(s.ctx)
	s.Require().NoError(err)

	s.app.MockClock.Advance(3 * time.Hour)

	gc := s.app.GameController
	session := gc.NewSession()
	s.Require().NoError(gc.Start(s.ctx, session,
		model.RosterEntry{ID: "u1", Name: "Alice"}, model.RosterEntry{ID: "u2", Name: "Bob"}, ""))

	s.Nil(session.Owner)
	_, err = s.app.LocalStore.Credential(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)

	// The archive is unaffected by the purge
	_, err = gc.EndGame(s.ctx, session)
	s.Require().NoError(err)
	archive, err := s.app.LocalStore.Archive(s.ctx)
	s.Require().NoError(err)
	s.Len(archive, 1)
}

// Test: a failed upload can be retried once the record store recovers
func (s *IntegrationSuite) TestUploadRetryAfterFailure() {
	_, err := s.app.RosterService.Refresh(s.ctx)
	s.Require().NoError(err)
	s.playGame("Alice", "Bob", 1)

	s.server.FailUploads(http.StatusServiceUnavailable)
	_, err = s.app.UploadGateway.Upload(s.ctx, "Alice")
	s.Require().ErrorIs(err, model.ErrRemoteRejected)

	last, err := s.app.LocalStore.LastUpload(s.ctx)
	s.Require().NoError(err)
	s.True(last.IsZero())

	s.server.FailUploads(0)
	_, err = s.app.UploadGateway.Upload(s.ctx, "Alice")
	s.Require().NoError(err)

	last, err = s.app.LocalStore.LastUpload(s.ctx)
	s.Require().NoError(err)
	s.True(last.Equal(s.app.MockClock.Now()))
}

// Test: the production factory wires Redis storage end to end
func TestNewWithRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)
	server := remotetest.New(t)
	server.AddUser(model.RosterEntry{ID: "u1", Name: "Alice"}, "1234", testutil.Token(t, time.Now().Add(time.Hour)))

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		StorageType:  StorageTypeRedis,
		RedisConfig:  &redisCfg,
		RemoteConfig: remote.Config{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if _, err := app.AuthService.Login(ctx, "Alice", "1234"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !mini.Exists("cornhole:offlineToken") {
		t.Fatal("expected token to be stored in redis")
	}

	profile, err := app.AuthService.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if profile.Name != "Alice" {
		t.Fatalf("profile name = %q, want Alice", profile.Name)
	}
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	if _, err := New(Config{StorageType: "sqlite"}); err == nil {
		t.Fatal("expected error for unknown storage type")
	}
	if _, err := New(Config{StorageType: StorageTypeRedis}); err == nil {
		t.Fatal("expected error when redis config is missing")
	}
}
