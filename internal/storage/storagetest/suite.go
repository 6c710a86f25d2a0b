// Package storagetest holds behaviour tests shared by every storage.Store
// implementation.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cornhole/internal/storage"
)

// StoreSuite exercises the Store contract. Embed it and set Store in SetupTest.
type StoreSuite struct {
	suite.Suite
	Store storage.Store
	Ctx   context.Context
}

func (s *StoreSuite) TestSetAndGet() {
	s.Require().NoError(s.Store.Set(s.Ctx, "userProfile", `{"id":"1"}`))

	v, err := s.Store.Get(s.Ctx, "userProfile")
	s.Require().NoError(err)
	s.Equal(`{"id":"1"}`, v)
}

func (s *StoreSuite) TestGetMissingKey() {
	_, err := s.Store.Get(s.Ctx, "nonexistent")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StoreSuite) TestSetOverwrites() {
	s.Require().NoError(s.Store.Set(s.Ctx, "offlineToken", "a"))
	s.Require().NoError(s.Store.Set(s.Ctx, "offlineToken", "b"))

	v, err := s.Store.Get(s.Ctx, "offlineToken")
	s.Require().NoError(err)
	s.Equal("b", v)
}

func (s *StoreSuite) TestRemove() {
	s.Require().NoError(s.Store.Set(s.Ctx, "gameHistory", "[]"))
	s.Require().NoError(s.Store.Remove(s.Ctx, "gameHistory"))

	_, err := s.Store.Get(s.Ctx, "gameHistory")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StoreSuite) TestRemoveMissingKeyIsNoop() {
	s.NoError(s.Store.Remove(s.Ctx, "nonexistent"))
}

func (s *StoreSuite) TestEmptyValueIsStored() {
	s.Require().NoError(s.Store.Set(s.Ctx, "tempRoundData", ""))

	v, err := s.Store.Get(s.Ctx, "tempRoundData")
	s.Require().NoError(err)
	s.Equal("", v)
}
