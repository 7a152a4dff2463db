package services

import (
	"time"

	"github.com/vytor/ladderflash/internal/repository"
)

func NewStatsServiceAt(decks repository.DeckRepository, cards repository.CardRepository, reviews repository.ReviewRepository, now func() time.Time) StatsService {
	return newStatsService(decks, cards, reviews, now)
}

func NewReviewServiceAt(cards repository.CardRepository, reviews repository.ReviewRepository, limit int, now func() time.Time) ReviewService {
	return &reviewService{cards: cards, reviews: reviews, defaultLimit: limit, now: now}
}
