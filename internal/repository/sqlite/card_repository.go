package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

var cardColumns = []string{
	"c.id", "c.deck_id", "c.title", "c.active_level", "c.max_level",
	"c.streak", "c.times_reviewed", "c.times_correct", "c.last_reviewed_at", "c.created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	var lastReviewed sql.NullTime
	err := row.Scan(&c.ID, &c.DeckID, &c.Title, &c.ActiveLevel, &c.MaxLevel,
		&c.Streak, &c.TimesReviewed, &c.TimesCorrect, &lastReviewed, &c.CreatedAt)
	c.LastReviewedAt = timePtr(lastReviewed)
	return c, err
}

func (r *cardRepository) InsertWithLevels(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, deck_id=%s, levels=%d", c.ID, c.DeckID, len(c.Levels))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, title, active_level, max_level, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, c.ID, c.DeckID, c.Title, c.ActiveLevel, c.MaxLevel, utc(c.CreatedAt))
		if err != nil {
			log.Error("failed to insert card: %v", err)
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO card_levels (card_id, level_index, question, answer) VALUES (?, ?, ?, ?)`)
		if err != nil {
			log.Error("failed to prepare level insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, l := range c.Levels {
			if _, err := stmt.ExecContext(ctx, c.ID, l.Index, l.Content.Question, l.Content.Answer); err != nil {
				log.Error("failed to insert level %d: %v", l.Index, err)
				return err
			}
		}
		return nil
	})
}

func (r *cardRepository) Get(ctx context.Context, userID, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Where(squirrel.Eq{"c.id": id, "d.user_id": userID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}

	cards := []models.Card{c}
	if err := r.attachLevels(ctx, cards); err != nil {
		return nil, err
	}
	return &cards[0], nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%s", deckID)

	query := sqlBuilder.Select(cardColumns...).
		From("cards c").
		Where(squirrel.Eq{"c.deck_id": deckID}).
		OrderBy("c.created_at ASC", "c.rowid ASC")
	return r.query(ctx, query)
}

// ReviewQueue returns the user's studyable cards, never-reviewed first, then
// least recently reviewed, then in creation order. Cards without levels are
// skipped.
func (r *cardRepository) ReviewQueue(ctx context.Context, filter models.QueueFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("loading review queue: user_id=%s, deck_id=%s, limit=%d", filter.UserID, filter.DeckID, filter.Limit)

	query := sqlBuilder.Select(cardColumns...).
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Where(squirrel.Eq{"d.user_id": filter.UserID}).
		Where("EXISTS (SELECT 1 FROM card_levels l WHERE l.card_id = c.id)")

	if filter.DeckID != "" {
		query = query.Where(squirrel.Eq{"c.deck_id": filter.DeckID})
	}

	query = query.OrderBy(
		"c.last_reviewed_at IS NOT NULL",
		"c.last_reviewed_at ASC",
		"c.created_at ASC",
		"c.rowid ASC",
	)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	return r.query(ctx, query)
}

func (r *cardRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachLevels(ctx, cards); err != nil {
		return nil, err
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

// attachLevels fills each card's ladder in index order with a single query.
func (r *cardRepository) attachLevels(ctx context.Context, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	ids := make([]string, len(cards))
	pos := make(map[string]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		pos[c.ID] = i
		cards[i].Levels = []models.Level{}
	}

	query, args, err := sqlBuilder.Select("card_id", "level_index", "question", "answer").
		From("card_levels").
		Where(squirrel.Eq{"card_id": ids}).
		OrderBy("card_id", "level_index").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query levels: %v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cardID string
		var l models.Level
		if err := rows.Scan(&cardID, &l.Index, &l.Content.Question, &l.Content.Answer); err != nil {
			log.Error("failed to scan level row: %v", err)
			return err
		}
		i := pos[cardID]
		cards[i].Levels = append(cards[i].Levels, l)
	}
	return rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE d.user_id = ?
`, userID).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to count cards: %v", err)
	}
	return n, err
}

func (r *cardRepository) SetActiveLevel(ctx context.Context, id string, level int) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("setting active level: id=%s, level=%d", id, level)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET active_level = ? WHERE id = ?`, level, id)
	if err != nil {
		log.Error("failed to set active level: %v", err)
	}
	return err
}

func (r *cardRepository) UpsertLevel(ctx context.Context, id string, index int, content models.LevelContent) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("upserting level: id=%s, index=%d", id, index)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO card_levels (card_id, level_index, question, answer)
VALUES (?, ?, ?, ?)
ON CONFLICT(card_id, level_index) DO UPDATE SET question = excluded.question, answer = excluded.answer
`, id, index, content.Question, content.Answer)
	if err != nil {
		log.Error("failed to upsert level: %v", err)
	}
	return err
}

// DeleteLevel reports false when the card has no level at index.
func (r *cardRepository) DeleteLevel(ctx context.Context, id string, index int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting level: id=%s, index=%d", id, index)

	res, err := r.db.ExecContext(ctx, `DELETE FROM card_levels WHERE card_id = ? AND level_index = ?`, id, index)
	if err != nil {
		log.Error("failed to delete level: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetMaxLevel records the ladder length and pulls the active level back
// inside it.
func (r *cardRepository) SetMaxLevel(ctx context.Context, id string, count int) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("setting max level: id=%s, count=%d", id, count)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET max_level = ?, active_level = MAX(0, MIN(active_level, ? - 1))
WHERE id = ?
`, count, count, id)
	if err != nil {
		log.Error("failed to set max level: %v", err)
	}
	return err
}
