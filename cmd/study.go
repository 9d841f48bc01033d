package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/spacedrep"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "AI study tools: flashcards, writing, homework, mindmaps, lessons, speaking",
}

// runStudy opens the backend, runs fn with a study service and prints
// either JSON (--json) or the tool's own rendering. AI failures print the
// student-facing fallback message.
func runStudy[Out any](cmd *cobra.Command, fn func(context.Context, *backend, *study.Service) (Out, error), render func(io.Writer, Out)) error {
	ctx := cmd.Context()
	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	st, err := resolveStudent(cmd, b)
	if err != nil {
		return err
	}
	out, err := fn(study.WithStudent(ctx, st.Name), b, b.studyService(ctx))
	if err != nil {
		fmt.Fprintln(os.Stderr, study.FallbackMessage(err))
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	render(w, out)
	return nil
}

// textArg returns the flag value, or the contents of the file it names
// when prefixed with '@' ("-" reads stdin).
func textArg(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if !strings.HasPrefix(v, "@") {
		return v, nil
	}
	path := strings.TrimPrefix(v, "@")
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read --%s: %w", name, err)
	}
	return string(data), nil
}

var studyFlashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate a flashcard deck and save it for spaced review",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		return runStudy(cmd, func(ctx context.Context, b *backend, svc *study.Service) (*store.Deck, error) {
			deck, err := svc.Flashcards(ctx, study.FlashcardInput{Subject: subject, Topic: topic, Count: count})
			if err != nil {
				return nil, err
			}
			saved := newStoredDeck(deck, time.Now())
			if err := b.sqlite.DeckRepo().SaveDeck(ctx, saved); err != nil {
				return nil, fmt.Errorf("save deck: %w", err)
			}
			return saved, nil
		}, func(w io.Writer, d *store.Deck) {
			fmt.Fprintf(w, "%s — %s (%d thẻ)\n\n", d.Subject, d.Topic, len(d.Cards))
			for _, c := range d.Cards {
				fmt.Fprintf(w, "%3s. %s\n     → %s\n", c.ID, c.Front, c.Back)
			}
			fmt.Fprintf(w, "\nĐã lưu bộ thẻ %s. Ôn tập: laban deck review %s\n", d.ID, d.ID)
		})
	},
}

// newStoredDeck turns a generated deck into a stored one with every card
// scheduled from now.
func newStoredDeck(d *study.Deck, now time.Time) *store.Deck {
	out := &store.Deck{Subject: d.Subject, Topic: d.Topic}
	for _, c := range d.Cards {
		out.Cards = append(out.Cards, store.Card{
			Front:  c.Front,
			Back:   c.Back,
			Hint:   c.Hint,
			Review: spacedrep.NewCardState(now),
		})
	}
	return out
}

var studyWritingCmd = &cobra.Command{
	Use:   "writing",
	Short: "Review an essay (--essay @file.txt reads a file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		prompt, _ := cmd.Flags().GetString("prompt")
		essay, err := textArg(cmd, "essay")
		if err != nil {
			return err
		}
		return runStudy(cmd, func(ctx context.Context, _ *backend, svc *study.Service) (*study.WritingFeedback, error) {
			return svc.ReviewWriting(ctx, study.WritingInput{Subject: subject, Prompt: prompt, Essay: essay})
		}, func(w io.Writer, f *study.WritingFeedback) {
			fmt.Fprintf(w, "Điểm: %.1f/10\n\n%s\n", f.Score, f.Summary)
			printList(w, "Điểm mạnh", f.Strengths)
			printList(w, "Cần cải thiện", f.Improvements)
			if len(f.Corrections) > 0 {
				fmt.Fprintln(w, "\nSửa lỗi:")
				for _, c := range f.Corrections {
					fmt.Fprintf(w, "  • %q → %q (%s)\n", c.Original, c.Suggested, c.Reason)
				}
			}
		})
	},
}

var studyHomeworkCmd = &cobra.Command{
	Use:   "homework",
	Short: "Solve a homework problem step by step",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		problem, err := textArg(cmd, "problem")
		if err != nil {
			return err
		}
		return runStudy(cmd, func(ctx context.Context, _ *backend, svc *study.Service) (*study.Solution, error) {
			return svc.SolveHomework(ctx, study.HomeworkInput{Subject: subject, Problem: problem})
		}, func(w io.Writer, s *study.Solution) {
			fmt.Fprintln(w, "Các bước:")
			for i, step := range s.Steps {
				fmt.Fprintf(w, "  %d. %s\n", i+1, step)
			}
			fmt.Fprintf(w, "\nĐáp án: %s\n", s.Answer)
			if s.Explanation != "" {
				fmt.Fprintf(w, "\n%s\n", s.Explanation)
			}
			printList(w, "Kiến thức", s.Concepts)
		})
	},
}

var studyMindmapCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Draw a mindmap of a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		depth, _ := cmd.Flags().GetInt("depth")
		return runStudy(cmd, func(ctx context.Context, _ *backend, svc *study.Service) (*study.MindmapNode, error) {
			return svc.Mindmap(ctx, study.MindmapInput{Topic: topic, Depth: depth})
		}, func(w io.Writer, root *study.MindmapNode) {
			fmt.Fprint(w, root.Render())
			fmt.Fprintf(w, "\n%d nút\n", root.Count())
		})
	},
}

var studyLessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate a lesson, then take its quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		grade, _ := cmd.Flags().GetInt("grade")
		skipQuiz, _ := cmd.Flags().GetBool("no-quiz")

		return runStudy(cmd, func(ctx context.Context, _ *backend, svc *study.Service) (*study.Lesson, error) {
			return svc.Lesson(ctx, study.LessonInput{Subject: subject, Topic: topic, Grade: grade})
		}, func(w io.Writer, l *study.Lesson) {
			printLesson(w, l)
			if !skipQuiz && len(l.Quiz) > 0 {
				takeLessonQuiz(cmd.InOrStdin(), w, l)
			}
		})
	},
}

func printLesson(w io.Writer, l *study.Lesson) {
	fmt.Fprintf(w, "%s\n%s\n\n%s\n", l.Title, strings.Repeat("═", 60), l.Summary)
	for _, s := range l.Sections {
		fmt.Fprintf(w, "\n■ %s\n%s\n", s.Heading, s.Body)
	}
	printList(w, "Ghi nhớ", l.KeyPoints)
}

var studySpeakingCmd = &cobra.Command{
	Use:   "speaking",
	Short: "Evaluate a transcript of a spoken answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetString("prompt")
		transcript, err := textArg(cmd, "transcript")
		if err != nil {
			return err
		}
		return runStudy(cmd, func(ctx context.Context, _ *backend, svc *study.Service) (*study.SpeakingFeedback, error) {
			return svc.EvaluateSpeaking(ctx, study.SpeakingInput{Prompt: prompt, Transcript: transcript})
		}, func(w io.Writer, f *study.SpeakingFeedback) {
			fmt.Fprintf(w, "Điểm: %.1f/10\n\n", f.Score)
			fmt.Fprintf(w, "Độ trôi chảy: %s\nTừ vựng:      %s\nNgữ pháp:     %s\n", f.Fluency, f.Vocabulary, f.Grammar)
			printList(w, "Gợi ý", f.Suggestions)
			if f.Improved != "" {
				fmt.Fprintf(w, "\nPhiên bản tốt hơn:\n%s\n", f.Improved)
			}
		})
	},
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}

func init() {
	studyFlashcardsCmd.Flags().String("subject", "", "Subject, e.g. Sinh học")
	studyFlashcardsCmd.Flags().String("topic", "", "Topic (required)")
	studyFlashcardsCmd.Flags().Int("count", 10, "Number of cards")

	studyWritingCmd.Flags().String("subject", "Ngữ văn", "Subject")
	studyWritingCmd.Flags().String("prompt", "", "Essay prompt")
	studyWritingCmd.Flags().String("essay", "", "Essay text, or @file / @- for stdin (required)")

	studyHomeworkCmd.Flags().String("subject", "", "Subject")
	studyHomeworkCmd.Flags().String("problem", "", "Problem text, or @file / @- (required)")

	studyMindmapCmd.Flags().String("topic", "", "Topic (required)")
	studyMindmapCmd.Flags().Int("depth", 3, "Levels below the root (1-3)")

	studyLessonCmd.Flags().String("subject", "", "Subject")
	studyLessonCmd.Flags().String("topic", "", "Topic (required)")
	studyLessonCmd.Flags().Int("grade", 10, "Grade 10-12")
	studyLessonCmd.Flags().Bool("no-quiz", false, "Skip the check quiz")

	studySpeakingCmd.Flags().String("prompt", "", "Speaking prompt")
	studySpeakingCmd.Flags().String("transcript", "", "Transcript, or @file / @- (required)")

	for _, c := range []*cobra.Command{studyFlashcardsCmd, studyWritingCmd, studyHomeworkCmd, studyMindmapCmd, studyLessonCmd, studySpeakingCmd} {
		c.Flags().Bool("json", false, "Print the raw result as JSON")
		c.Flags().String("name", "", "Student name for the interaction log (defaults to the profile)")
		studyCmd.AddCommand(c)
	}
}

// takeLessonQuiz asks each quiz item on in and prints the grade. Answers
// may be a letter or the option text.
func takeLessonQuiz(in io.Reader, w io.Writer, l *study.Lesson) {
	scanner := bufio.NewScanner(in)
	picks := make([]string, 0, len(l.Quiz))

	fmt.Fprintf(w, "\n── Kiểm tra nhanh (%d câu) ──\n", len(l.Quiz))
	for i, q := range l.Quiz {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Question)
		for j, o := range q.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'A'+j, o)
		}
		fmt.Fprint(w, "Trả lời: ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			break
		}
		picks = append(picks, scanner.Text())
	}

	g := study.GradeQuiz(l, picks)
	fmt.Fprintln(w)
	for i, it := range g.Items {
		mark := "✓"
		if !it.Correct {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %d. %s", mark, i+1, it.Answer)
		if exp := l.Quiz[i].Explanation; !it.Correct && exp != "" {
			fmt.Fprintf(w, " — %s", exp)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nKết quả: %d/%d (%.0f%%)\n", g.Correct, g.Total, g.Percent())
}
