package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ladderflash/internal/models"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Rating
		wantErr bool
	}{
		{"again", models.RatingAgain, false},
		{"A", models.RatingAgain, false},
		{"hard", models.RatingHard, false},
		{" good ", models.RatingGood, false},
		{"e", models.RatingEasy, false},
		{"perfect", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := models.ParseRating(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRating_IsCorrect(t *testing.T) {
	assert.False(t, models.RatingAgain.IsCorrect())
	assert.True(t, models.RatingHard.IsCorrect())
	assert.True(t, models.RatingGood.IsCorrect())
	assert.True(t, models.RatingEasy.IsCorrect())
	assert.False(t, models.Rating(42).IsCorrect(), "out-of-range ratings are never correct")
}

func TestRating_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Rating models.Rating `json:"rating"`
	}{models.RatingHard})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":"hard"}`, string(payload))

	var in struct {
		Rating models.Rating `json:"rating"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"easy"}`), &in))
	assert.Equal(t, models.RatingEasy, in.Rating)

	assert.Error(t, json.Unmarshal([]byte(`{"rating":"meh"}`), &in))
	_, err = json.Marshal(struct{ R models.Rating }{models.Rating(9)})
	assert.Error(t, err)
}

func ladder(n int) []models.Level {
	levels := make([]models.Level, n)
	for i := range levels {
		levels[i] = models.Level{Index: i, Content: models.LevelContent{Question: "q", Answer: "a"}}
	}
	return levels
}

func TestCard_LevelBounds(t *testing.T) {
	card := models.Card{ID: "c1", Levels: ladder(2), ActiveLevel: 1}
	assert.False(t, card.CanLevelUp())
	assert.True(t, card.CanLevelDown())

	card.ActiveLevel = 0
	assert.True(t, card.CanLevelUp())
	assert.False(t, card.CanLevelDown())
}

func TestCard_CurrentLevelFallsBackToFirst(t *testing.T) {
	card := models.Card{Levels: []models.Level{
		{Index: 0, Content: models.LevelContent{Question: "easy"}},
		{Index: 1, Content: models.LevelContent{Question: "hard"}},
	}, ActiveLevel: 1}

	lvl, ok := card.CurrentLevel()
	require.True(t, ok)
	assert.Equal(t, "hard", lvl.Content.Question)

	card.ActiveLevel = 7
	lvl, ok = card.CurrentLevel()
	require.True(t, ok)
	assert.Equal(t, "easy", lvl.Content.Question)

	_, ok = models.Card{}.CurrentLevel()
	assert.False(t, ok)
}

func TestCard_CloneIsDeep(t *testing.T) {
	orig := models.Card{ID: "c1", Levels: ladder(2)}
	clone := orig.Clone()
	clone.Levels[0].Content.Question = "edited"

	assert.Equal(t, "q", orig.Levels[0].Content.Question)
}

func TestCard_ClampActiveLevel(t *testing.T) {
	levels := []models.Level{{Index: 0}, {Index: 1}, {Index: 2}}
	tests := []struct {
		name    string
		card    models.Card
		want    int
		changed bool
	}{
		{"in range", models.Card{Levels: levels, ActiveLevel: 1}, 1, false},
		{"above top", models.Card{Levels: levels, ActiveLevel: 7}, 2, true},
		{"negative", models.Card{Levels: levels, ActiveLevel: -1}, 0, true},
		{"empty ladder", models.Card{ActiveLevel: 3}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.card
			assert.Equal(t, tt.changed, c.ClampActiveLevel())
			assert.Equal(t, tt.want, c.ActiveLevel)
		})
	}
}
