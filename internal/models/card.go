package models

import "time"

// MaxLevels caps the length of a card's level ladder.
const MaxLevels = 10

// LevelContent is the prompt/answer pair shown at one difficulty level.
type LevelContent struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Level is one rung of a card's ladder. Index 0 is the easiest.
type Level struct {
	Index   int          `json:"level_index"`
	Content LevelContent `json:"content"`
}

// Card is a knowledge card as seen by a study session.
type Card struct {
	ID             string     `json:"card_id"`
	DeckID         string     `json:"deck_id"`
	Title          string     `json:"title"`
	Levels         []Level    `json:"levels"`
	ActiveLevel    int        `json:"active_level"`
	MaxLevel       int        `json:"max_level"`
	Streak         int        `json:"streak"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CanLevelUp reports whether a harder level exists above the active one.
func (c Card) CanLevelUp() bool {
	return c.ActiveLevel < len(c.Levels)-1
}

// CanLevelDown reports whether an easier level exists below the active one.
func (c Card) CanLevelDown() bool {
	return c.ActiveLevel > 0
}

// ClampActiveLevel pulls ActiveLevel into [0, len(Levels)-1], or 0 for an
// empty ladder. It reports whether the level changed.
func (c *Card) ClampActiveLevel() bool {
	clamped := min(c.ActiveLevel, len(c.Levels)-1)
	clamped = max(clamped, 0)
	if clamped == c.ActiveLevel {
		return false
	}
	c.ActiveLevel = clamped
	return true
}

// CurrentLevel returns the level matching ActiveLevel, falling back to the
// first level when the ladder has no such index.
func (c Card) CurrentLevel() (Level, bool) {
	for _, l := range c.Levels {
		if l.Index == c.ActiveLevel {
			return l, true
		}
	}
	if len(c.Levels) > 0 {
		return c.Levels[0], true
	}
	return Level{}, false
}

// Clone returns a deep copy so in-place updates never leak across snapshots.
func (c Card) Clone() Card {
	out := c
	if c.Levels != nil {
		out.Levels = make([]Level, len(c.Levels))
		copy(out.Levels, c.Levels)
	}
	if c.LastReviewedAt != nil {
		t := *c.LastReviewedAt
		out.LastReviewedAt = &t
	}
	return out
}

// ReviewProgress holds the advisory counters updated by a rating.
type ReviewProgress struct {
	Streak         int
	TimesReviewed  int
	TimesCorrect   int
	LastReviewedAt *time.Time
}

// Review is a stored rating outcome.
type Review struct {
	ID         int64     `json:"id"`
	CardID     string    `json:"card_id"`
	Rating     Rating    `json:"rating"`
	Level      int       `json:"level"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
