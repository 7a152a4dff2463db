package models

import "time"

type Deck struct {
	ID          string    `json:"deck_id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CardCount   int       `json:"cards_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeckWithCards struct {
	Deck
	Cards []Card `json:"cards"`
}

// QueueFilter narrows the review queue.
type QueueFilter struct {
	UserID string
	DeckID string
	Limit  int
}
