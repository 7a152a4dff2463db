package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository/sqlite"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func insertUser(s *suite.Suite, db *sql.DB, id string) {
	err := sqlite.NewUserRepository(db).Insert(context.Background(), models.User{
		ID:           id,
		Email:        id + "@example.com",
		Username:     id,
		PasswordHash: "hash",
		CreatedAt:    baseTime,
	})
	require.NoError(s.T(), err)
}

func insertDeck(s *suite.Suite, db *sql.DB, userID, id string) {
	err := sqlite.NewDeckRepository(db).Insert(context.Background(), models.Deck{
		ID:        id,
		UserID:    userID,
		Title:     "Deck " + id,
		CreatedAt: baseTime,
	})
	require.NoError(s.T(), err)
}

func newCard(id, deckID string, levels int, createdAt time.Time) models.Card {
	c := models.Card{ID: id, DeckID: deckID, Title: "Card " + id, MaxLevel: levels, CreatedAt: createdAt}
	for i := 0; i < levels; i++ {
		c.Levels = append(c.Levels, models.Level{
			Index:   i,
			Content: models.LevelContent{Question: fmt.Sprintf("%s q%d", id, i), Answer: fmt.Sprintf("%s a%d", id, i)},
		})
	}
	return c
}
