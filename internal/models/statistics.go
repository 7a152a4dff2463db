package models

// DayLayout keys per-day review activity (UTC calendar days).
const DayLayout = "2006-01-02"

// Statistics is the dashboard summary for one user.
type Statistics struct {
	CardsStudiedToday int   `json:"cards_studied_today"`
	CurrentStreak     int   `json:"current_streak"`
	TotalCards        int   `json:"total_cards"`
	TotalDecks        int   `json:"total_decks"`
	WeeklyActivity    []int `json:"weekly_activity"` // oldest day first, today last
}
