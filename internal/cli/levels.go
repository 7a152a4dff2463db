package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vytor/ladderflash/internal/editor"
	"github.com/vytor/ladderflash/internal/models"
)

const entrySeparator = "::"

var editLevelsCmd = &cobra.Command{
	Use:   "edit-levels <card-id>",
	Short: "Rewrite a card's level ladder",
	Long: `edit-levels loads the card's current ladder, applies --set, --remove and
--add in that order, and saves the result. Saving deletes every existing
level and recreates the ladder from index 0.`,
	Example: `  study edit-levels 9a2e... --set "0=What is 2+2?::4" --add "What is 12*12?::144"
  study edit-levels 9a2e... --set "1=::new answer only" --remove 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		sets, _ := cmd.Flags().GetStringArray("set")
		adds, _ := cmd.Flags().GetStringArray("add")
		removes, _ := cmd.Flags().GetIntSlice("remove")

		card, err := e.client.Card(ctx, args[0])
		if err != nil {
			return err
		}

		draft := editor.FromCard(*card)
		if err := applyEdits(draft, sets, removes, adds); err != nil {
			return err
		}
		if !draft.CanSave() {
			return fmt.Errorf("nothing to save: every level needs both a question and an answer")
		}

		levels, err := editor.New(e.client).ReplaceLevels(ctx, *card, draft.Entries)
		if err != nil {
			return fmt.Errorf("save levels: %w", err)
		}
		active := card.ActiveLevel
		if active >= len(levels) {
			active = len(levels) - 1
		}
		e.printf("Saved %d levels for %s\n", len(levels), card.Title)
		printLevels(e, levels, active)
		return nil
	},
}

func init() {
	editLevelsCmd.Flags().StringArray("set", nil, `Replace level i as "i=question::answer"; an empty side is kept (repeatable)`)
	editLevelsCmd.Flags().StringArray("add", nil, `Append a level as "question::answer" (repeatable)`)
	editLevelsCmd.Flags().IntSlice("remove", nil, "Remove level i (repeatable)")
}

// parseEntry splits "question::answer". Either side may be empty; the
// editor drops incomplete entries when saving.
func parseEntry(raw string) (models.LevelContent, error) {
	question, answer, ok := strings.Cut(raw, entrySeparator)
	if !ok {
		return models.LevelContent{}, fmt.Errorf("level %q: expected question%sanswer", raw, entrySeparator)
	}
	return models.LevelContent{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}, nil
}

// parseSet splits "i=question::answer".
func parseSet(raw string) (int, models.LevelContent, error) {
	rawIndex, rest, ok := strings.Cut(raw, "=")
	if !ok {
		return 0, models.LevelContent{}, fmt.Errorf("set %q: expected index=question%sanswer", raw, entrySeparator)
	}
	index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		return 0, models.LevelContent{}, fmt.Errorf("set %q: invalid index %q", raw, rawIndex)
	}
	content, err := parseEntry(rest)
	if err != nil {
		return 0, models.LevelContent{}, err
	}
	return index, content, nil
}

// applyEdits patches, removes and appends entries on draft. Indices in sets
// and removes refer to the ladder before any removal.
func applyEdits(draft *editor.Draft, sets []string, removes []int, adds []string) error {
	for _, raw := range sets {
		index, content, err := parseSet(raw)
		if err != nil {
			return err
		}
		if !draft.Patch(index, content.Question, content.Answer) {
			return fmt.Errorf("set %q: no level %d (ladder has %d)", raw, index, len(draft.Entries))
		}
	}

	ordered := append([]int(nil), removes...)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
	for i, index := range ordered {
		if i > 0 && ordered[i-1] == index {
			continue
		}
		if !draft.Remove(index) {
			return fmt.Errorf("remove %d: no such level or it is the last one", index)
		}
	}

	for _, raw := range adds {
		content, err := parseEntry(raw)
		if err != nil {
			return err
		}
		if !draft.Add() {
			return fmt.Errorf("add %q: a card holds at most %d levels", raw, models.MaxLevels)
		}
		draft.Patch(draft.Selected, content.Question, content.Answer)
	}
	return nil
}
