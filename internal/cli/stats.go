package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		stats, err := e.client.Stats(cmd.Context())
		if err != nil {
			return err
		}
		e.printf("Studied today:  %d\n", stats.CardsStudiedToday)
		e.printf("Day streak:     %d\n", stats.CurrentStreak)
		e.printf("Cards:          %d in %d decks\n", stats.TotalCards, stats.TotalDecks)
		e.printf("\nLast 7 days\n")
		for _, line := range activityLines(stats.WeeklyActivity, time.Now().UTC()) {
			e.printf("%s\n", line)
		}
		return nil
	},
}

// activityLines renders one bar per day; weekly holds the oldest day first
// and ends at today.
func activityLines(weekly []int, today time.Time) []string {
	lines := make([]string, 0, len(weekly))
	for i, n := range weekly {
		day := today.AddDate(0, 0, i-len(weekly)+1)
		bar := strings.Repeat("#", min(n, 40))
		lines = append(lines, fmt.Sprintf("%s  %3d %s", day.Format("Mon 02"), n, bar))
	}
	return lines
}
