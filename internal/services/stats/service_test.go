package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cornhole/internal/dependencies/mocks"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/storage/memory"
	"github.com/mcoot/cornhole/internal/testutil"
)

func sampleArchive() []model.GameRecord {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 18, 0, 0, 0, time.UTC) }
	return []model.GameRecord{
		{
			Date: day(1), TotalRounds: 2, Winner: "Alice",
			Player1: model.GamePlayer{Name: "Alice", Score: 5},
			Player2: model.GamePlayer{Name: "Bob", Score: 0},
			Rounds: []model.RoundRecord{
				{RoundNumber: 1, Player1RoundScore: 7, Player2RoundScore: 4, Player1RoundBagsIn: 2, Player1RoundBagsOn: 1, Player2RoundBagsIn: 1, Player2RoundBagsOn: 1},
				{RoundNumber: 2, Player1RoundScore: 3, Player2RoundScore: 1, Player1RoundBagsIn: 1, Player2RoundBagsOn: 1},
			},
		},
		{
			Date: day(2), TotalRounds: 2, Winner: "Carol",
			Player1: model.GamePlayer{Name: "Carol", Score: 6},
			Player2: model.GamePlayer{Name: "Alice", Score: 0},
			Rounds: []model.RoundRecord{
				{RoundNumber: 1, Player1RoundScore: 6, Player2RoundScore: 0, Player1RoundBagsIn: 2},
				{RoundNumber: 2, Player1RoundScore: 2, Player2RoundScore: 2, Player1RoundBagsOn: 2, Player2RoundBagsOn: 2},
			},
		},
		{
			Date: day(3), TotalRounds: 1, Winner: model.TieWinner,
			Player1: model.GamePlayer{Name: "Bob", Score: 0},
			Player2: model.GamePlayer{Name: "Carol", Score: 0},
			Rounds: []model.RoundRecord{
				{RoundNumber: 1, Player1RoundScore: 3, Player2RoundScore: 3, Player1RoundBagsIn: 1, Player2RoundBagsIn: 1},
			},
		},
	}
}

func TestForUser(t *testing.T) {
	s, err := ForUser(sampleArchive(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 0, s.Ties)
	assert.Equal(t, 4, s.RoundsPlayed)
	// Net points: 3 + 2 in game one, nothing in game two
	assert.Equal(t, 5, s.TotalPoints)
	assert.Equal(t, 3, s.BagsIn)
	assert.Equal(t, 3, s.BagsOn)
	assert.InDelta(t, 1.25, s.PointsPerRound, 0.001)
	assert.InDelta(t, 0.75, s.BagsInPerRound, 0.001)
	assert.InDelta(t, 50.0, s.InPercentage, 0.001)
}

func TestForUserCountsTies(t *testing.T) {
	s, err := ForUser(sampleArchive(), "Bob")
	require.NoError(t, err)

	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 1, s.Ties)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 3, s.RoundsPlayed)
	assert.Equal(t, 0, s.TotalPoints)
}

func TestForUserRoundsToTwoPlaces(t *testing.T) {
	s, err := ForUser(sampleArchive(), "Carol")
	require.NoError(t, err)

	// 6 net points over 3 rounds, 3 bags in over 3 rounds
	assert.InDelta(t, 2.0, s.PointsPerRound, 0.001)
	assert.InDelta(t, 1.0, s.BagsInPerRound, 0.001)
	assert.InDelta(t, 60.0, s.InPercentage, 0.001)

	archive := sampleArchive()
	archive[0].TotalRounds = 3
	s, err = ForUser(archive, "Alice")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.PointsPerRound, 0.001)
	assert.InDelta(t, 0.6, s.BagsInPerRound, 0.001)
}

func TestForUserWithoutGames(t *testing.T) {
	_, err := ForUser(sampleArchive(), "Dave")
	assert.ErrorIs(t, err, model.ErrNoGamesForUser)

	_, err = ForUser(nil, "Alice")
	assert.ErrorIs(t, err, model.ErrNoGamesForUser)
}

func TestServiceReadsArchive(t *testing.T) {
	ctx := context.Background()
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	store := localstore.New(memory.New(), clk, localstore.DefaultConfig(), logger)
	for _, g := range sampleArchive() {
		require.NoError(t, store.CommitGame(ctx, g))
	}

	s, err := New(store, logger).User(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 2, s.GamesPlayed)
	assert.InDelta(t, 1.25, s.PointsPerRound, 0.001)
}
