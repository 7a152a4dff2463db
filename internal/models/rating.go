package models

import (
	"fmt"
	"strings"
)

// Rating is the learner's recall judgment for one card.
type Rating int

const (
	RatingAgain Rating = iota
	RatingHard
	RatingGood
	RatingEasy
)

var ratingNames = [...]string{"again", "hard", "good", "easy"}

// Ratings lists every valid rating in ascending order.
var Ratings = []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

func (r Rating) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r]
}

// IsCorrect reports whether the rating counts as a successful recall.
// Only "again" is a miss.
func (r Rating) IsCorrect() bool {
	return r.Valid() && r != RatingAgain
}

// ParseRating accepts the lowercase names and their first letters.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "again", "a":
		return RatingAgain, nil
	case "hard", "h":
		return RatingHard, nil
	case "good", "g":
		return RatingGood, nil
	case "easy", "e":
		return RatingEasy, nil
	}
	return 0, fmt.Errorf("unknown rating %q", s)
}

func (r Rating) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
