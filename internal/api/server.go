package api

import (
	"context"

	"github.com/vytor/ladderflash/internal/services"
)

// Pinger reports storage liveness for the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	AuthService   services.AuthService
	DeckService   services.DeckService
	CardService   services.CardService
	ReviewService services.ReviewService
	StatsService  services.StatsService
	DB            Pinger
}
