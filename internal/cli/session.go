package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vytor/ladderflash/internal/jobs"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/study"
	"github.com/vytor/ladderflash/internal/worker"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an interactive review session",
	Long: `session loads the review queue and shows one card at a time.

  Enter        reveal the answer
  a h g e      rate again, hard, good or easy (after revealing)
  + -          make the card harder or easier
  r            reload the queue (keeps your place if it did not change)
  q            quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		deckID, _ := cmd.Flags().GetString("deck")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = e.cfg.QueueLimit
		}

		pool := worker.NewPool(e.cfg.SyncWorkerCount, e.cfg.SyncQueueSize)
		pool.Start(context.WithoutCancel(cmd.Context()))
		// flush pending reviews before exiting
		defer pool.Stop()

		session := study.NewSession(
			jobs.NewWorkerQueue(pool, e.client),
			study.WithDeck(deckID),
			study.WithLimit(limit),
			study.WithLogger(e.log.WithPrefix("study")),
		)
		return newRunner(session, e.client, cmd.InOrStdin(), e.out).Run(cmd.Context())
	},
}

func init() {
	sessionCmd.Flags().String("deck", "", "Only review cards from this deck")
	sessionCmd.Flags().Int("limit", 0, "Cards per session (defaults to QUEUE_LIMIT)")
}

// runner is the line-oriented front end of a study.Session.
type runner struct {
	session  *study.Session
	loader   study.QueueLoader
	in       *bufio.Scanner
	out      io.Writer
	revealed bool
}

func newRunner(session *study.Session, loader study.QueueLoader, in io.Reader, out io.Writer) *runner {
	return &runner{
		session: session,
		loader:  loader,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loads the queue and processes commands until q or end of input.
func (r *runner) Run(ctx context.Context) error {
	if _, err := r.session.Reload(ctx, r.loader); err != nil {
		return fmt.Errorf("load review queue: %w", err)
	}
	r.show()

	for r.in.Scan() {
		if quit := r.handle(ctx, strings.TrimSpace(r.in.Text())); quit {
			return nil
		}
	}
	return r.in.Err()
}

func (r *runner) handle(ctx context.Context, input string) bool {
	switch input {
	case "q", "quit":
		r.summary()
		return true
	case "r":
		r.reload(ctx)
		return false
	}

	if _, ok := r.session.CurrentCard(); !ok {
		fmt.Fprintln(r.out, "Nothing to review. r to reload, q to quit.")
		return false
	}

	switch input {
	case "":
		if r.revealed {
			fmt.Fprintln(r.out, "Rate the card: a, h, g or e.")
			return false
		}
		r.reveal()
	case "+", "-":
		var moved bool
		if input == "+" {
			moved = r.session.LevelUp(ctx)
		} else {
			moved = r.session.LevelDown(ctx)
		}
		if !moved {
			fmt.Fprintln(r.out, "No level in that direction.")
			return false
		}
		r.revealed = false
		r.show()
	default:
		rating, err := models.ParseRating(input)
		if err != nil {
			fmt.Fprintf(r.out, "Unknown command %q.\n", input)
			return false
		}
		if !r.revealed {
			fmt.Fprintln(r.out, "Press Enter to reveal the answer first.")
			return false
		}
		r.session.Rate(ctx, rating)
		r.revealed = false
		r.show()
	}
	return false
}

func (r *runner) reload(ctx context.Context) {
	reset, err := r.session.Reload(ctx, r.loader)
	if err != nil {
		fmt.Fprintf(r.out, "Reload failed: %v\n", err)
		return
	}
	if reset {
		fmt.Fprintln(r.out, "Queue changed, starting over.")
		r.revealed = false
	}
	r.show()
}

func (r *runner) show() {
	card, ok := r.session.CurrentCard()
	if !ok {
		if r.session.IsCompleted() {
			fmt.Fprintf(r.out, "Session complete: %d/%d correct. r to reload, q to quit.\n",
				r.session.Correct(), r.session.Reviewed())
		} else {
			fmt.Fprintln(r.out, "No cards to review. r to reload, q to quit.")
		}
		return
	}

	fmt.Fprintf(r.out, "\n[%d/%d %d%%] %s  level %d/%d\n",
		r.session.CurrentIndex()+1, r.session.Total(), r.session.Progress(),
		card.Title, card.ActiveLevel+1, len(card.Levels))
	if level, ok := card.CurrentLevel(); ok {
		fmt.Fprintf(r.out, "Q: %s\n", level.Content.Question)
	}
	if r.revealed {
		r.reveal()
	}
}

func (r *runner) reveal() {
	card, _ := r.session.CurrentCard()
	if level, ok := card.CurrentLevel(); ok {
		fmt.Fprintf(r.out, "A: %s\n", level.Content.Answer)
	}
	fmt.Fprintln(r.out, "[a]gain [h]ard [g]ood [e]asy  +/- level  r reload  q quit")
	r.revealed = true
}

func (r *runner) summary() {
	fmt.Fprintf(r.out, "Reviewed %d cards, %d correct.\n", r.session.Reviewed(), r.session.Correct())
}
