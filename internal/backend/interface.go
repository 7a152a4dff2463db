package backend

import (
	"context"

	"github.com/vytor/ladderflash/internal/models"
)

// ClientInterface defines the remote card service operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Register(ctx context.Context, email, password, username string) (*models.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Decks(ctx context.Context) ([]models.Deck, error)
	CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error)
	DeckWithCards(ctx context.Context, deckID string) (*models.DeckWithCards, error)
	CreateCard(ctx context.Context, deckID, title string, levels []models.LevelContent) (*models.Card, error)
	Card(ctx context.Context, cardID string) (*models.Card, error)
	ReviewQueue(ctx context.Context, deckID string, limit int) ([]models.Card, error)
	SubmitReview(ctx context.Context, cardID string, rating models.Rating) error
	SetActiveLevel(ctx context.Context, cardID string, level int) error
	DeleteLevel(ctx context.Context, cardID string, index int) error
	UpsertLevel(ctx context.Context, cardID string, index int, content models.LevelContent) error
	SetMaxLevel(ctx context.Context, cardID string, count int) error
	Stats(ctx context.Context) (*models.Statistics, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
