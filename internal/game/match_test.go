package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(playerID int64) MatchRequest {
	return MatchRequest{PlayerID: playerID}
}

func TestFindOrEnqueueRandom_FirstRequestQueues(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	g := e.FindOrEnqueueRandom(request(1))
	assert.Nil(t, g)
	assert.Equal(t, 1, e.WaitingCount())
	assert.Equal(t, 0, e.ActiveGames())
}

func TestFindOrEnqueueRandom_BasicMatch(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(request(1)))

	g := e.FindOrEnqueueRandom(request(2))
	require.NotNil(t, g)

	assert.Equal(t, KindRandom, g.Kind)
	assert.True(t, g.Started)
	assert.Equal(t, []int64{1, 2}, g.Players) // waiting player seats first
	assert.Contains(t, g.Players, g.CurrentPlayer)
	assert.Equal(t, DefaultCategories(), g.Categories)
	assert.Equal(t, 0, e.WaitingCount())

	// Both sides are indexed to the same game
	assert.Equal(t, g.ID, e.GetGameForPlayer(1).ID)
	assert.Equal(t, g.ID, e.GetGameForPlayer(2).ID)
}

// If A's and B's preferences mutually qualify, the match succeeds
// regardless of which of the two asks first.
func TestFindOrEnqueueRandom_Symmetry(t *testing.T) {
	t.Parallel()

	reqA := MatchRequest{
		PlayerID: 1,
		Gender:   GenderMale,
		Age:      25,
		Prefs:    SearchPrefs{Gender: GenderFemale, AgeMin: 20, AgeMax: 30},
	}
	reqB := MatchRequest{
		PlayerID: 2,
		Gender:   GenderFemale,
		Age:      27,
		Prefs:    SearchPrefs{Gender: GenderMale},
	}

	e1 := newTestEngine(1)
	require.Nil(t, e1.FindOrEnqueueRandom(reqA))
	g := e1.FindOrEnqueueRandom(reqB)
	require.NotNil(t, g)
	assert.ElementsMatch(t, []int64{1, 2}, g.Players)

	e2 := newTestEngine(2)
	require.Nil(t, e2.FindOrEnqueueRandom(reqB))
	g = e2.FindOrEnqueueRandom(reqA)
	require.NotNil(t, g)
	assert.ElementsMatch(t, []int64{1, 2}, g.Players)
}

func TestFindOrEnqueueRandom_GenderPreferenceRejects(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 1, Gender: GenderMale}))

	// Requester wants a female opponent; the waiting player is male
	g := e.FindOrEnqueueRandom(MatchRequest{
		PlayerID: 2,
		Prefs:    SearchPrefs{Gender: GenderFemale},
	})
	assert.Nil(t, g)
	assert.Equal(t, 2, e.WaitingCount())
}

func TestFindOrEnqueueRandom_GenderAnyMatchesEveryone(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 1, Gender: GenderMale}))

	g := e.FindOrEnqueueRandom(MatchRequest{
		PlayerID: 2,
		Prefs:    SearchPrefs{Gender: GenderAny},
	})
	assert.NotNil(t, g)
}

func TestFindOrEnqueueRandom_AgeBounds(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 1, Age: 17}))

	// Candidate is below the requested minimum age
	g := e.FindOrEnqueueRandom(MatchRequest{
		PlayerID: 2,
		Prefs:    SearchPrefs{AgeMin: 18},
	})
	assert.Nil(t, g)

	// A player without a stated age passes age filters
	g = e.FindOrEnqueueRandom(MatchRequest{
		PlayerID: 3,
		Prefs:    SearchPrefs{AgeMin: 18, AgeMax: 30},
	})
	assert.NotNil(t, g)
	assert.ElementsMatch(t, []int64{1, 3}, g.Players)
}

func TestFindOrEnqueueRandom_CandidatePreferenceCheckedToo(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	// Waiting player only wants female opponents
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{
		PlayerID: 1,
		Prefs:    SearchPrefs{Gender: GenderFemale},
	}))

	g := e.FindOrEnqueueRandom(MatchRequest{PlayerID: 2, Gender: GenderMale})
	assert.Nil(t, g)

	g = e.FindOrEnqueueRandom(MatchRequest{PlayerID: 3, Gender: GenderFemale})
	require.NotNil(t, g)
	assert.ElementsMatch(t, []int64{1, 3}, g.Players)
}

func TestFindOrEnqueueRandom_CategoryIntersection(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{
		PlayerID:   1,
		Categories: CategorySet{CategoryExtreme},
	}))

	// No overlap: funny vs extreme
	g := e.FindOrEnqueueRandom(MatchRequest{
		PlayerID:   2,
		Categories: CategorySet{CategoryFunny},
	})
	assert.Nil(t, g)

	g = e.FindOrEnqueueRandom(MatchRequest{
		PlayerID:   3,
		Categories: CategorySet{CategoryExtreme, CategoryFunny},
	})
	require.NotNil(t, g)
	assert.Equal(t, CategorySet{CategoryExtreme}, g.Categories)
}

// A non-premium request queued first loses to a premium request queued
// later when a third compatible player shows up.
func TestFindOrEnqueueRandom_PremiumPriority(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 1}))
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 2, IsPremium: true}))

	g := e.FindOrEnqueueRandom(MatchRequest{PlayerID: 3})
	require.NotNil(t, g)
	assert.ElementsMatch(t, []int64{2, 3}, g.Players)

	// The non-premium player is still waiting
	assert.Equal(t, 1, e.WaitingCount())
	assert.Nil(t, e.GetGameForPlayer(1))
}

// Within the same tier the earliest-enqueued request wins.
func TestFindOrEnqueueRandom_FIFOWithinTier(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 1, IsPremium: true}))
	require.Nil(t, e.FindOrEnqueueRandom(MatchRequest{PlayerID: 2, IsPremium: true}))

	g := e.FindOrEnqueueRandom(MatchRequest{PlayerID: 3})
	require.NotNil(t, g)
	assert.ElementsMatch(t, []int64{1, 3}, g.Players)
}

func TestFindOrEnqueueRandom_IdempotentReentry(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(request(1)))
	g := e.FindOrEnqueueRandom(request(2))
	require.NotNil(t, g)

	// Asking again returns the same game instead of re-queueing
	again := e.FindOrEnqueueRandom(request(2))
	require.NotNil(t, again)
	assert.Equal(t, g.ID, again.ID)
	assert.Equal(t, 0, e.WaitingCount())
}

func TestFindOrEnqueueRandom_WaitingReentryKeepsPosition(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(request(1)))

	// Searching again while queued must not create a duplicate entry
	require.Nil(t, e.FindOrEnqueueRandom(request(1)))
	assert.Equal(t, 1, e.WaitingCount())
}

func TestCancelWait(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)
	require.Nil(t, e.FindOrEnqueueRandom(request(1)))

	assert.True(t, e.CancelWait(1))
	assert.Equal(t, 0, e.WaitingCount())

	// Nothing left to cancel
	assert.False(t, e.CancelWait(1))
	assert.False(t, e.CancelWait(99))

	// The cancelled player is no longer matchable
	assert.Nil(t, e.FindOrEnqueueRandom(request(2)))
}
