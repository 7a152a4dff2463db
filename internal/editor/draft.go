package editor

import (
	"strings"

	"github.com/vytor/ladderflash/internal/models"
)

// Draft is a level ladder being edited before it is saved. Selected tracks
// the entry currently shown for editing.
type Draft struct {
	Entries  []models.LevelContent
	Selected int
}

// NewDraft starts with a single empty entry.
func NewDraft() *Draft {
	return &Draft{Entries: []models.LevelContent{{}}}
}

// FromCard copies the card's levels in index order.
func FromCard(card models.Card) *Draft {
	if len(card.Levels) == 0 {
		return NewDraft()
	}
	entries := make([]models.LevelContent, len(card.Levels))
	for i, l := range card.Levels {
		entries[i] = l.Content
	}
	return &Draft{Entries: entries}
}

// Add appends an empty entry and selects it. It reports false once the
// ladder is full.
func (d *Draft) Add() bool {
	if len(d.Entries) >= models.MaxLevels {
		return false
	}
	d.Entries = append(d.Entries, models.LevelContent{})
	d.Selected = len(d.Entries) - 1
	return true
}

// Remove drops entry i. The last remaining entry cannot be removed.
func (d *Draft) Remove(i int) bool {
	if len(d.Entries) <= 1 || i < 0 || i >= len(d.Entries) {
		return false
	}
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	if d.Selected >= len(d.Entries) {
		d.Selected = len(d.Entries) - 1
	}
	return true
}

// Patch overwrites entry i; empty arguments leave that side unchanged.
func (d *Draft) Patch(i int, question, answer string) bool {
	if i < 0 || i >= len(d.Entries) {
		return false
	}
	if question != "" {
		d.Entries[i].Question = question
	}
	if answer != "" {
		d.Entries[i].Answer = answer
	}
	return true
}

// CanSave reports whether at least one entry has both sides filled.
func (d *Draft) CanSave() bool {
	for _, e := range d.Entries {
		if strings.TrimSpace(e.Question) != "" && strings.TrimSpace(e.Answer) != "" {
			return true
		}
	}
	return false
}

// Cleaned returns the entries that would be saved.
func (d *Draft) Cleaned() []models.LevelContent {
	return Clean(d.Entries)
}
