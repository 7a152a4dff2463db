// Package editor replaces a card's level ladder on the remote service.
package editor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

// LevelStore is the subset of the remote contract the editor needs.
type LevelStore interface {
	DeleteLevel(ctx context.Context, cardID string, index int) error
	UpsertLevel(ctx context.Context, cardID string, index int, content models.LevelContent) error
	SetMaxLevel(ctx context.Context, cardID string, count int) error
}

type Editor struct {
	store LevelStore
	log   *logger.Logger
}

func New(store LevelStore) *Editor {
	return &Editor{
		store: store,
		log:   logger.Default().WithPrefix("editor"),
	}
}

// Clean trims every entry and drops those with a blank question or answer.
func Clean(entries []models.LevelContent) []models.LevelContent {
	cleaned := make([]models.LevelContent, 0, len(entries))
	for _, e := range entries {
		q := strings.TrimSpace(e.Question)
		a := strings.TrimSpace(e.Answer)
		if q == "" || a == "" {
			continue
		}
		cleaned = append(cleaned, models.LevelContent{Question: q, Answer: a})
	}
	return cleaned
}

// ReplaceLevels deletes every level the card currently has, recreates the
// cleaned entries at indices 0..M-1 and records M as the card's max level.
// Each batch runs concurrently and starts only after the previous one
// finished. The sequence is not atomic: a failure part way through leaves the
// remote ladder as the completed steps left it and is returned to the caller.
func (e *Editor) ReplaceLevels(ctx context.Context, card models.Card, entries []models.LevelContent) ([]models.Level, error) {
	if strings.TrimSpace(card.ID) == "" {
		return nil, errors.NewValidationError("card", "no card selected")
	}
	cleaned := Clean(entries)
	if len(cleaned) == 0 {
		return nil, errors.NewValidationError("levels", "at least one level needs both a question and an answer")
	}
	if len(cleaned) > models.MaxLevels {
		return nil, errors.NewValidationError("levels", fmt.Sprintf("at most %d levels allowed", models.MaxLevels))
	}

	log := e.log.WithFields(map[string]any{
		"card_id": card.ID,
		"old":     len(card.Levels),
		"new":     len(cleaned),
	})
	log.Debug("replacing level ladder")

	deletes, dctx := errgroup.WithContext(ctx)
	for _, level := range card.Levels {
		index := level.Index
		deletes.Go(func() error {
			if err := e.store.DeleteLevel(dctx, card.ID, index); err != nil {
				return fmt.Errorf("delete level %d: %w", index, err)
			}
			return nil
		})
	}
	if err := deletes.Wait(); err != nil {
		log.Error("level replacement failed: %v", err)
		return nil, err
	}

	upserts, uctx := errgroup.WithContext(ctx)
	for i, content := range cleaned {
		i, content := i, content
		upserts.Go(func() error {
			if err := e.store.UpsertLevel(uctx, card.ID, i, content); err != nil {
				return fmt.Errorf("upsert level %d: %w", i, err)
			}
			return nil
		})
	}
	if err := upserts.Wait(); err != nil {
		log.Error("level replacement failed: %v", err)
		return nil, err
	}

	if err := e.store.SetMaxLevel(ctx, card.ID, len(cleaned)); err != nil {
		log.Error("level replacement failed: %v", err)
		return nil, fmt.Errorf("set max level: %w", err)
	}

	levels := make([]models.Level, len(cleaned))
	for i, content := range cleaned {
		levels[i] = models.Level{Index: i, Content: content}
	}
	log.Info("level ladder replaced")
	return levels, nil
}
