package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/spacedrep"
	"github.com/abhisek/laban/internal/store"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Review saved flashcard decks with spaced repetition",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks and how many cards are due",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		decks, err := b.sqlite.DeckRepo().ListDecks(cmd.Context())
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "Chưa có bộ thẻ nào. Tạo bằng `laban study flashcards --topic ...`.")
			return nil
		}

		now := time.Now()
		fmt.Fprintf(out, "%-36s  %-14s  %-24s  %5s  %5s  %5s\n", "ID", "Môn", "Chủ đề", "Thẻ", "Ôn", "Thuộc")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, d := range decks {
			sum := spacedrep.NewScheduler(d.ReviewStates()).Summary(now)
			fmt.Fprintf(out, "%-36s  %-14s  %-24s  %5d  %5d  %5d\n",
				d.ID, truncateText(d.Subject, 14), truncateText(d.Topic, 24), len(d.Cards),
				sum[spacedrep.ReviewDue]+sum[spacedrep.ReviewOverdue], sum[spacedrep.ReviewGraduated])
		}
		return nil
	},
}

var deckReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Review the due cards of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		repo := b.sqlite.DeckRepo()
		deck, err := repo.GetDeck(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deck %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get deck: %w", err)
		}

		all, _ := cmd.Flags().GetBool("all")
		reviewed := reviewDeck(cmd.InOrStdin(), cmd.OutOrStdout(), deck, all, time.Now())
		if reviewed == 0 {
			return nil
		}
		if err := repo.UpdateDeck(ctx, deck); err != nil {
			return fmt.Errorf("save review: %w", err)
		}
		return nil
	},
}

// reviewDeck quizzes the due cards (every card with all) and writes the
// new schedules back onto deck. It returns how many cards were reviewed.
func reviewDeck(in io.Reader, w io.Writer, deck *store.Deck, all bool, now time.Time) int {
	sched := spacedrep.NewScheduler(deck.ReviewStates())
	byID := make(map[string]store.Card, len(deck.Cards))
	var ids []string
	for _, c := range deck.Cards {
		byID[c.ID] = c
		if all {
			ids = append(ids, c.ID)
		}
	}
	if !all {
		ids = sched.DueCards(now)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "Không có thẻ nào cần ôn hôm nay.")
		return 0
	}

	scanner := bufio.NewScanner(in)
	var reviewed, remembered int
	for i, id := range ids {
		c := byID[id]
		fmt.Fprintf(w, "── Thẻ %d/%d ──\n%s\n", i+1, len(ids), c.Front)
		if c.Hint != "" {
			fmt.Fprintf(w, "(gợi ý: %s)\n", c.Hint)
		}
		fmt.Fprint(w, "Nhấn Enter để lật thẻ...")
		if !scanner.Scan() {
			break
		}
		fmt.Fprintf(w, "→ %s\nBạn nhớ không? [y/n]: ", c.Back)
		if !scanner.Scan() {
			break
		}
		ok := strings.EqualFold(strings.TrimSpace(scanner.Text()), "y")
		sched.RecordReview(id, ok, now)
		reviewed++
		if ok {
			remembered++
		}
		fmt.Fprintln(w)
	}

	deck.ApplyReviewStates(sched.States())
	fmt.Fprintf(w, "Đã ôn %d thẻ, nhớ %d.\n", reviewed, remembered)
	return reviewed
}

// truncateText cuts s to n runes, marking the cut with an ellipsis.
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	deckReviewCmd.Flags().Bool("all", false, "Review every card, not only the due ones")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckReviewCmd)
}
