package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/ladderflash/internal/models"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List your decks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		decks, err := e.client.Decks(cmd.Context())
		if err != nil {
			return err
		}
		if len(decks) == 0 {
			e.printf("No decks yet. Create one with: study new-deck --title NAME\n")
			return nil
		}
		tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tCARDS")
		for _, d := range decks {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", d.ID, d.Title, d.CardCount)
		}
		return tw.Flush()
	},
}

var deckCmd = &cobra.Command{
	Use:   "deck <deck-id>",
	Short: "Show a deck with its cards and levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		deck, err := e.client.DeckWithCards(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		e.printf("%s (%d cards)\n", deck.Title, len(deck.Cards))
		if deck.Description != "" {
			e.printf("%s\n", deck.Description)
		}
		for _, c := range deck.Cards {
			e.printf("\n%s  %s  level %d/%d  reviewed %d\n", c.ID, c.Title, c.ActiveLevel+1, len(c.Levels), c.TimesReviewed)
			printLevels(e, c.Levels, c.ActiveLevel)
		}
		return nil
	},
}

var newDeckCmd = &cobra.Command{
	Use:   "new-deck",
	Short: "Create a deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")

		deck, err := e.client.CreateDeck(cmd.Context(), models.Deck{Title: title, Description: description, Color: color})
		if err != nil {
			return fmt.Errorf("create deck: %w", err)
		}
		e.printf("Created deck %s (%s)\n", deck.Title, deck.ID)
		return nil
	},
}

var newCardCmd = &cobra.Command{
	Use:   "new-card <deck-id>",
	Short: "Create a card with one or more levels",
	Example: `  study new-card 3f1c... --title "Capitals" \
    --level "Capital of France?::Paris" \
    --level "Capital of Australia?::Canberra"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		raw, _ := cmd.Flags().GetStringArray("level")

		levels := make([]models.LevelContent, 0, len(raw))
		for _, r := range raw {
			content, err := parseEntry(r)
			if err != nil {
				return err
			}
			levels = append(levels, content)
		}

		card, err := e.client.CreateCard(cmd.Context(), args[0], title, levels)
		if err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		e.printf("Created card %s (%s) with %d levels\n", card.Title, card.ID, len(card.Levels))
		return nil
	},
}

func init() {
	newDeckCmd.Flags().String("title", "", "Deck title")
	newDeckCmd.Flags().String("description", "", "Deck description")
	newDeckCmd.Flags().String("color", "", "Deck color as #RRGGBB")
	_ = newDeckCmd.MarkFlagRequired("title")

	newCardCmd.Flags().String("title", "", "Card title")
	newCardCmd.Flags().StringArray("level", nil, `Level as "question::answer", easiest first (repeatable)`)
	_ = newCardCmd.MarkFlagRequired("title")
	_ = newCardCmd.MarkFlagRequired("level")
}

func printLevels(e *env, levels []models.Level, active int) {
	for _, l := range levels {
		marker := " "
		if l.Index == active {
			marker = "*"
		}
		e.printf("  %s %d. %s :: %s\n", marker, l.Index, l.Content.Question, l.Content.Answer)
	}
}
