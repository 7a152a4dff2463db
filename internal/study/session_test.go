package study_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/study"
	"github.com/vytor/ladderflash/internal/testutil/mocks"
)

func card(id string, levels int) models.Card {
	c := models.Card{ID: id, Title: "card " + id}
	for i := 0; i < levels; i++ {
		c.Levels = append(c.Levels, models.Level{
			Index:   i,
			Content: models.LevelContent{Question: fmt.Sprintf("%s q%d", id, i), Answer: fmt.Sprintf("%s a%d", id, i)},
		})
	}
	return c
}

func queue(ids ...string) []models.Card {
	out := make([]models.Card, len(ids))
	for i, id := range ids {
		out[i] = card(id, 3)
	}
	return out
}

func newSession(t *testing.T) (*study.Session, *mocks.MockSyncer) {
	t.Helper()
	syncer := &mocks.MockSyncer{}
	return study.NewSession(syncer, study.WithLogger(logger.Discard())), syncer
}

func TestSignature_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b study.Signature
		want bool
	}{
		{"both empty", nil, study.Signature{}, true},
		{"same ids same order", study.Signature{"c1", "c2"}, study.Signature{"c1", "c2"}, true},
		{"reordered", study.Signature{"c1", "c2"}, study.Signature{"c2", "c1"}, false},
		{"added", study.Signature{"c1"}, study.Signature{"c1", "c2"}, false},
		{"replaced", study.Signature{"c1", "c2"}, study.Signature{"c3", "c4"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestSignatureOf_IgnoresContent(t *testing.T) {
	a := queue("c1", "c2")
	b := queue("c1", "c2")
	b[1].Levels[0].Content.Question = "edited"
	b[1].ActiveLevel = 2

	assert.True(t, study.SignatureOf(a).Equal(study.SignatureOf(b)))
}

func TestLoad_FirstLoadResetsCursor(t *testing.T) {
	s, _ := newSession(t)

	assert.True(t, s.Load(queue("c1", "c2", "c3")))
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 3, s.Total())

	cur, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, "c1", cur.ID)
}

func TestLoad_EmptyAndNil(t *testing.T) {
	s, _ := newSession(t)

	assert.False(t, s.Load(nil), "empty to empty is not a reset")
	assert.Empty(t, s.Cards())
	assert.False(t, s.IsCompleted(), "an empty queue is never completed")
	assert.Equal(t, 0, s.Progress())

	_, ok := s.CurrentCard()
	assert.False(t, ok)
}

// Scenario A.
func TestRate_AdvancesToNextCard(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, "c1", models.RatingGood).Return(nil)
	s.Load(queue("c1", "c2", "c3"))

	assert.True(t, s.Rate(context.Background(), models.RatingGood))

	assert.Equal(t, 1, s.CurrentIndex())
	cur, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, "c2", cur.ID)
	syncer.AssertExpectations(t)
}

// Scenario B / P1.
func TestLoad_SameSignaturePreservesCursor(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1", "c2"))
	s.Rate(context.Background(), models.RatingGood)
	require.Equal(t, 1, s.CurrentIndex())

	refreshed := queue("c1", "c2")
	refreshed[1].Levels[0].Content.Question = "edited elsewhere"
	refreshed[1].ActiveLevel = 1

	assert.False(t, s.Load(refreshed))
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, 1, s.Reviewed(), "counters survive a content refresh")

	cur, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, "edited elsewhere", cur.Levels[0].Content.Question, "content is refreshed in place")
	assert.Equal(t, 1, cur.ActiveLevel)
}

// Scenario C / P2.
func TestLoad_DifferentSignatureResetsCursor(t *testing.T) {
	tests := []struct {
		name string
		next []models.Card
	}{
		{"different deck", queue("c3", "c4")},
		{"reordered", queue("c2", "c1")},
		{"card added", queue("c1", "c2", "c3")},
		{"card removed", queue("c1")},
		{"emptied", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, syncer := newSession(t)
			syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			s.Load(queue("c1", "c2"))
			s.Rate(context.Background(), models.RatingEasy)
			require.Equal(t, 1, s.CurrentIndex())

			assert.True(t, s.Load(tt.next))
			assert.Equal(t, 0, s.CurrentIndex())
			assert.Equal(t, len(tt.next), s.Total())
			assert.Equal(t, 0, s.Reviewed())
		})
	}
}

// P3.
func TestRate_AdvancesEvenWhenSyncFails(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("network down"))
	s.Load(queue("c1", "c2", "c3"))

	for i := 1; i <= 3; i++ {
		assert.True(t, s.Rate(context.Background(), models.RatingHard))
		assert.Equal(t, i, s.CurrentIndex())
	}
	syncer.AssertNumberOfCalls(t, "SubmitReview", 3)
}

// Scenario E / P5.
func TestRate_LastCardCompletesSession(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1", "c2", "c3"))

	for i := 0; i < 3; i++ {
		require.False(t, s.IsCompleted())
		s.Rate(context.Background(), models.RatingGood)
	}

	assert.Equal(t, 3, s.CurrentIndex())
	assert.True(t, s.IsCompleted())
	assert.Equal(t, 100, s.Progress())
	_, ok := s.CurrentCard()
	assert.False(t, ok)
}

func TestRate_NoCurrentCardIsNoop(t *testing.T) {
	s, syncer := newSession(t)

	assert.False(t, s.Rate(context.Background(), models.RatingGood), "nothing loaded")

	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1"))
	s.Rate(context.Background(), models.RatingGood)

	assert.False(t, s.Rate(context.Background(), models.RatingGood), "queue exhausted")
	assert.Equal(t, 1, s.CurrentIndex())
	syncer.AssertNumberOfCalls(t, "SubmitReview", 1)
}

func TestRate_InvalidRatingIsNoop(t *testing.T) {
	s, syncer := newSession(t)
	s.Load(queue("c1"))

	assert.False(t, s.Rate(context.Background(), models.Rating(17)))
	assert.Equal(t, 0, s.CurrentIndex())
	syncer.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestRate_CountersAndStreak(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cards := queue("c1", "c2", "c3")
	cards[0].Streak = 4
	cards[1].Streak = 2
	s.Load(cards)

	s.Rate(context.Background(), models.RatingEasy)
	s.Rate(context.Background(), models.RatingAgain)
	s.Rate(context.Background(), models.RatingHard)

	assert.Equal(t, 3, s.Reviewed())
	assert.Equal(t, 2, s.Correct())

	after := s.Cards()
	assert.Equal(t, 5, after[0].Streak)
	assert.Equal(t, 0, after[1].Streak, "again resets the streak")
	assert.Equal(t, 1, after[2].Streak)
}

func TestProgress_UsesTotalCapturedAtLoad(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1", "c2", "c3"))

	assert.Equal(t, 0, s.Progress())
	s.Rate(context.Background(), models.RatingGood)
	assert.Equal(t, 33, s.Progress())
	s.Rate(context.Background(), models.RatingGood)
	assert.Equal(t, 67, s.Progress())
}

// Scenario D / P4.
func TestLevelUp_AtTopIsNoop(t *testing.T) {
	s, syncer := newSession(t)
	c := card("c1", 2)
	c.ActiveLevel = 1
	s.Load([]models.Card{c})

	assert.False(t, s.LevelUp(context.Background()))

	cur, _ := s.CurrentCard()
	assert.Equal(t, 1, cur.ActiveLevel)
	syncer.AssertNotCalled(t, "SetActiveLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestLevelDown_AtBottomIsNoop(t *testing.T) {
	s, syncer := newSession(t)
	s.Load([]models.Card{card("c1", 3)})

	assert.False(t, s.LevelDown(context.Background()))

	cur, _ := s.CurrentCard()
	assert.Equal(t, 0, cur.ActiveLevel)
	syncer.AssertNotCalled(t, "SetActiveLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestLevelUp_UpdatesOnlyCurrentCard(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SetActiveLevel", mock.Anything, "c1", 1).Return(nil).Once()
	syncer.On("SetActiveLevel", mock.Anything, "c1", 2).Return(nil).Once()
	s.Load(queue("c1", "c2"))

	assert.True(t, s.LevelUp(context.Background()))
	assert.True(t, s.LevelUp(context.Background()))
	assert.False(t, s.LevelUp(context.Background()), "three levels, already at the top")

	cards := s.Cards()
	assert.Equal(t, 2, cards[0].ActiveLevel)
	assert.Equal(t, 0, cards[1].ActiveLevel)
	assert.Equal(t, 0, s.CurrentIndex(), "leveling never advances")
	syncer.AssertExpectations(t)
}

func TestLevelChange_KeepsLocalStateWhenSyncFails(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SetActiveLevel", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("timeout"))
	c := card("c1", 3)
	c.ActiveLevel = 2
	s.Load([]models.Card{c})

	assert.True(t, s.LevelDown(context.Background()))

	cur, _ := s.CurrentCard()
	assert.Equal(t, 1, cur.ActiveLevel)
}

func TestLevelBounds_HoldUnderRandomWalk(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SetActiveLevel", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load([]models.Card{card("c1", 4)})

	moves := []bool{true, true, true, true, true, false, false, false, false, false, false, true}
	for _, up := range moves {
		if up {
			s.LevelUp(context.Background())
		} else {
			s.LevelDown(context.Background())
		}
		cur, _ := s.CurrentCard()
		assert.GreaterOrEqual(t, cur.ActiveLevel, 0)
		assert.LessOrEqual(t, cur.ActiveLevel, 3)
	}
}

func TestLevelChange_NoCurrentCardIsNoop(t *testing.T) {
	s, _ := newSession(t)

	assert.False(t, s.LevelUp(context.Background()))
	assert.False(t, s.LevelDown(context.Background()))
}

func TestLevelChangeSurvivesContentRefresh(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SetActiveLevel", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1", "c2"))

	s.Rate(context.Background(), models.RatingGood)
	s.LevelUp(context.Background())

	// The remote now reports the new level for c2.
	refreshed := queue("c1", "c2")
	refreshed[1].ActiveLevel = 1
	s.Load(refreshed)

	cur, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, "c2", cur.ID)
	assert.Equal(t, 1, cur.ActiveLevel)
}

func TestReset_NextLoadIsFirstLoad(t *testing.T) {
	s, syncer := newSession(t)
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Load(queue("c1", "c2"))
	s.Rate(context.Background(), models.RatingGood)

	s.Reset()
	assert.Empty(t, s.Cards())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.Total())
	assert.Empty(t, s.Signature())

	assert.True(t, s.Load(queue("c1", "c2")), "same ids after a reset still restart the session")
}

func TestCurrentCard_ReturnsCopy(t *testing.T) {
	s, _ := newSession(t)
	s.Load(queue("c1"))

	cur, _ := s.CurrentCard()
	cur.ActiveLevel = 2
	cur.Levels[0].Content.Question = "mutated"

	again, _ := s.CurrentCard()
	assert.Equal(t, 0, again.ActiveLevel)
	assert.Equal(t, "c1 q0", again.Levels[0].Content.Question)
}

func TestReload_UsesDeckAndLimit(t *testing.T) {
	syncer := &mocks.MockSyncer{}
	loader := &mocks.MockQueueLoader{}
	s := study.NewSession(syncer, study.WithDeck("d1"), study.WithLimit(5), study.WithLogger(logger.Discard()))

	loader.On("ReviewQueue", mock.Anything, "d1", 5).Return(queue("c1", "c2"), nil).Once()

	reset, err := s.Reload(context.Background(), loader)
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Len(t, s.Cards(), 2)
	loader.AssertExpectations(t)
}

func TestReload_ErrorLeavesStateUntouched(t *testing.T) {
	syncer := &mocks.MockSyncer{}
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	loader := &mocks.MockQueueLoader{}
	s := study.NewSession(syncer, study.WithLogger(logger.Discard()))
	s.Load(queue("c1", "c2"))
	s.Rate(context.Background(), models.RatingGood)

	loader.On("ReviewQueue", mock.Anything, "", 10).Return(nil, stderrors.New("offline"))

	_, err := s.Reload(context.Background(), loader)
	require.Error(t, err)
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Len(t, s.Cards(), 2)
}

func TestRestart_ReloadsFromScratch(t *testing.T) {
	syncer := &mocks.MockSyncer{}
	syncer.On("SubmitReview", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	loader := &mocks.MockQueueLoader{}
	s := study.NewSession(syncer, study.WithLogger(logger.Discard()))
	s.Load(queue("c1", "c2"))
	s.Rate(context.Background(), models.RatingGood)

	loader.On("ReviewQueue", mock.Anything, "", 10).Return(queue("c1", "c2"), nil)

	require.NoError(t, s.Restart(context.Background(), loader))
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.Reviewed())
}

func TestNilSyncerIsAllowed(t *testing.T) {
	s := study.NewSession(nil, study.WithLogger(logger.Discard()))
	s.Load(queue("c1"))

	assert.True(t, s.LevelUp(context.Background()))
	assert.True(t, s.Rate(context.Background(), models.RatingEasy))
	assert.True(t, s.IsCompleted())
}

func TestLoad_ClampsActiveLevelIntoLadder(t *testing.T) {
	s, syncer := newSession(t)
	stale := card("c1", 2)
	stale.ActiveLevel = 4
	s.Load([]models.Card{stale, card("c2", 1)})

	current, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, 1, current.ActiveLevel)
	level, ok := current.CurrentLevel()
	require.True(t, ok)
	assert.Equal(t, "c1 q1", level.Content.Question)

	syncer.On("SetActiveLevel", mock.Anything, "c1", 0).Return(nil).Once()
	require.True(t, s.LevelDown(context.Background()))
	syncer.AssertExpectations(t)
}
