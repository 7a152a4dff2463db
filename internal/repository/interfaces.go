package repository

import (
	"context"

	"github.com/vytor/ladderflash/internal/models"
)

// UserRepository handles account data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) error
	Get(ctx context.Context, userID, id string) (*models.Deck, error)
	List(ctx context.Context, userID string) ([]models.Deck, error)
	Count(ctx context.Context, userID string) (int, error)
}

// CardRepository handles card and level ladder data access
type CardRepository interface {
	InsertWithLevels(ctx context.Context, card models.Card) error
	Get(ctx context.Context, userID, id string) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID string) ([]models.Card, error)
	ReviewQueue(ctx context.Context, filter models.QueueFilter) ([]models.Card, error)
	Count(ctx context.Context, userID string) (int, error)
	SetActiveLevel(ctx context.Context, id string, level int) error
	UpsertLevel(ctx context.Context, id string, index int, content models.LevelContent) error
	DeleteLevel(ctx context.Context, id string, index int) (bool, error)
	SetMaxLevel(ctx context.Context, id string, count int) error
}

// ReviewRepository handles review history data access
type ReviewRepository interface {
	// Record stores the review and the card's updated counters atomically.
	Record(ctx context.Context, review models.Review, progress models.ReviewProgress) (int64, error)
	// ActivityByDay counts the user's reviews per UTC day (YYYY-MM-DD).
	ActivityByDay(ctx context.Context, userID string) (map[string]int, error)
}
