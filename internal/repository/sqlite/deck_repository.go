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

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, user_id=%s", d.ID, d.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, user_id, title, description, color, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, d.ID, d.UserID, d.Title, d.Description, d.Color, utc(d.CreatedAt))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
	}
	return err
}

func (r *deckRepository) selectDecks() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"d.id", "d.user_id", "d.title", "d.description", "d.color", "d.created_at",
		"COUNT(c.id) AS cards_count",
	).
		From("decks d").
		LeftJoin("cards c ON c.deck_id = d.id").
		GroupBy("d.id")
}

func (r *deckRepository) Get(ctx context.Context, userID, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	query, args, err := r.selectDecks().
		Where(squirrel.Eq{"d.id": id, "d.user_id": userID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var d models.Deck
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Color, &d.CreatedAt, &d.CardCount)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: user_id=%s", userID)

	query, args, err := r.selectDecks().
		Where(squirrel.Eq{"d.user_id": userID}).
		OrderBy("d.created_at ASC", "d.rowid ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Color, &d.CreatedAt, &d.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("deck_repo").Error("failed to count decks: %v", err)
	}
	return n, err
}
