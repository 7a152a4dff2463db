package study

import (
	"context"
	"math"

	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

// QueueLoader fetches the ordered review queue for a deck ("" for all decks).
type QueueLoader interface {
	ReviewQueue(ctx context.Context, deckID string, limit int) ([]models.Card, error)
}

// Syncer pushes session decisions to the remote service. Calls are
// best-effort: a returned error is logged by the session and never undoes
// the local change.
type Syncer interface {
	SubmitReview(ctx context.Context, cardID string, rating models.Rating) error
	SetActiveLevel(ctx context.Context, cardID string, level int) error
}

type nopSyncer struct{}

func (nopSyncer) SubmitReview(context.Context, string, models.Rating) error { return nil }
func (nopSyncer) SetActiveLevel(context.Context, string, int) error         { return nil }

// Session is one study run over a queue of cards.
//
// A Session is owned by a single goroutine; it holds no locks. Only Load,
// Reset and the rating/leveling operations mutate it.
type Session struct {
	deckID string
	limit  int
	syncer Syncer
	log    *logger.Logger

	cards        []models.Card
	signature    Signature
	currentIndex int
	totalCount   int
	correctCount int
	reviewed     int
}

// Option configures a Session.
type Option func(*Session)

// WithDeck restricts reloads to one deck.
func WithDeck(deckID string) Option {
	return func(s *Session) {
		s.deckID = deckID
	}
}

// WithLimit caps how many cards a reload asks for.
func WithLimit(limit int) Option {
	return func(s *Session) {
		s.limit = limit
	}
}

// WithLogger overrides the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession creates an empty session dispatching remote calls to syncer.
func NewSession(syncer Syncer, opts ...Option) *Session {
	if syncer == nil {
		syncer = nopSyncer{}
	}
	s := &Session{
		syncer: syncer,
		limit:  10,
		log:    logger.Default().WithPrefix("study"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load merges an externally supplied queue into the session. The card list
// is always replaced so content edits show up immediately and each card's
// active level is clamped into its ladder; the cursor is
// reset only when the queue signature changes (or on first load). It
// reports whether the cursor was reset.
func (s *Session) Load(cards []models.Card) bool {
	next := make([]models.Card, len(cards))
	for i, c := range cards {
		next[i] = c.Clone()
		if next[i].ClampActiveLevel() {
			s.log.Warn("card %s active level %d outside its %d levels, using %d",
				c.ID, c.ActiveLevel, len(c.Levels), next[i].ActiveLevel)
		}
	}
	sig := SignatureOf(next)

	reset := needsReset(s.signature, sig)
	s.cards = next
	s.signature = sig

	if reset {
		s.currentIndex = 0
		s.totalCount = len(next)
		s.correctCount = 0
		s.reviewed = 0
		s.log.Debug("queue changed, session restarted with %d cards", len(next))
	} else {
		s.log.Debug("queue unchanged, cursor kept at %d/%d", s.currentIndex, len(next))
	}
	return reset
}

// Reload fetches the queue through loader and merges it with Load.
func (s *Session) Reload(ctx context.Context, loader QueueLoader) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("study").WithField("deck_id", s.deckID)
	cards, err := loader.ReviewQueue(ctx, s.deckID, s.limit)
	if err != nil {
		log.Error("failed to load review queue: %v", err)
		return false, err
	}
	log.Debug("loaded %d cards", len(cards))
	return s.Load(cards), nil
}

// Reset discards the queue, cursor and counters. The next Load counts as
// a first load. Outstanding remote calls are not cancelled.
func (s *Session) Reset() {
	s.cards = nil
	s.signature = nil
	s.currentIndex = 0
	s.totalCount = 0
	s.correctCount = 0
	s.reviewed = 0
}

// Restart resets the session and loads a fresh queue.
func (s *Session) Restart(ctx context.Context, loader QueueLoader) error {
	s.Reset()
	_, err := s.Reload(ctx, loader)
	return err
}

// CurrentCard returns the card under the cursor, or false once the queue
// is exhausted or empty.
func (s *Session) CurrentCard() (models.Card, bool) {
	if s.currentIndex < 0 || s.currentIndex >= len(s.cards) {
		return models.Card{}, false
	}
	return s.cards[s.currentIndex].Clone(), true
}

// IsCompleted is true only when a non-empty queue has been worked through.
// An empty queue is not completed.
func (s *Session) IsCompleted() bool {
	return len(s.cards) > 0 && s.currentIndex >= len(s.cards)
}

// Progress is the rounded percentage of the total captured when the queue
// was (re)started, so content refreshes never make it jump.
func (s *Session) Progress() int {
	if s.totalCount == 0 {
		return 0
	}
	return int(math.Round(float64(s.currentIndex) / float64(s.totalCount) * 100))
}

func (s *Session) CurrentIndex() int { return s.currentIndex }

// Total is the queue length captured at load time.
func (s *Session) Total() int { return s.totalCount }

// Correct counts non-"again" ratings in this session.
func (s *Session) Correct() int { return s.correctCount }

// Reviewed counts ratings in this session.
func (s *Session) Reviewed() int { return s.reviewed }

// Cards returns a copy of the current queue.
func (s *Session) Cards() []models.Card {
	out := make([]models.Card, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Clone()
	}
	return out
}

// Signature returns the signature of the current queue.
func (s *Session) Signature() Signature {
	out := make(Signature, len(s.signature))
	copy(out, s.signature)
	return out
}
