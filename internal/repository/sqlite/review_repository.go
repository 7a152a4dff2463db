package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Record(ctx context.Context, rv models.Review, p models.ReviewProgress) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("recording review: card_id=%s, rating=%s, level=%d", rv.CardID, rv.Rating, rv.Level)

	reviewedAt := utc(rv.ReviewedAt)
	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO reviews (card_id, rating, level, reviewed_at, reviewed_on)
VALUES (?, ?, ?, ?, ?)
`, rv.CardID, rv.Rating.String(), rv.Level, reviewedAt, reviewedAt.Format(models.DayLayout))
		if err != nil {
			log.Error("failed to insert review: %v", err)
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
UPDATE cards
SET streak = ?, times_reviewed = ?, times_correct = ?, last_reviewed_at = ?
WHERE id = ?
`, p.Streak, p.TimesReviewed, p.TimesCorrect, nullTime(p.LastReviewedAt), rv.CardID)
		if err != nil {
			log.Error("failed to update card progress: %v", err)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Debug("review recorded: id=%d", id)
	return id, nil
}

func (r *reviewRepository) ActivityByDay(ctx context.Context, userID string) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("loading activity: user_id=%s", userID)

	query, args, err := sqlBuilder.Select("rv.reviewed_on", "COUNT(*)").
		From("reviews rv").
		Join("cards c ON c.id = rv.card_id").
		Join("decks d ON d.id = c.deck_id").
		Where("d.user_id = ?", userID).
		GroupBy("rv.reviewed_on").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	activity := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			log.Error("failed to scan activity row: %v", err)
			return nil, err
		}
		activity[day] = n
	}
	return activity, rows.Err()
}
