package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cornhole/internal/storage"
	"github.com/mcoot/cornhole/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.StoreSuite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.Store = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestKeysArePrefixed() {
	s.Require().NoError(s.storage.Set(s.Ctx, "gameHistory", "[]"))

	s.True(s.mini.Exists("cornhole:gameHistory"))
	s.False(s.mini.Exists("gameHistory"))
}

func (s *StorageSuite) TestEmptyPrefixUsesLogicalKey() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = ""
	store := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer func() { _ = store.Close() }()

	s.Require().NoError(store.Set(s.Ctx, "allUsers", "[]"))
	s.True(s.mini.Exists("allUsers"))
}

func (s *StorageSuite) TestValuesDoNotExpire() {
	s.Require().NoError(s.storage.Set(s.Ctx, "offlineToken", "tok"))

	s.mini.FastForward(365 * 24 * time.Hour)

	v, err := s.storage.Get(s.Ctx, "offlineToken")
	s.Require().NoError(err)
	s.Equal("tok", v)
}

func (s *StorageSuite) TestGetWhenServerDown() {
	s.mini.Close()

	_, err := s.storage.Get(s.Ctx, "userProfile")
	s.Require().Error(err)
	s.NotErrorIs(err, storage.ErrNotFound)
	s.mini = nil
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestNewConnectsToServer(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
