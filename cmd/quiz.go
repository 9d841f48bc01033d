package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/metrics"
	"github.com/abhisek/laban/internal/report"
	"github.com/abhisek/laban/internal/textmatch"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <instrument>",
	Short: "Take an instrument in the terminal, or grade a given answer string",
	Long: `Take one instrument question by question, or pass --answers to grade a
full answer sequence at once (e.g. --answers ABNA... for MBTI).

Instruments may be named loosely: "holland", "riasec", "hanh-vi" and
"tri tue" all resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("answers", "", "Grade this answer sequence instead of asking")
	quizCmd.Flags().String("name", "", "Student name (defaults to the saved profile)")
	quizCmd.Flags().String("class", "", "Student class")
	quizCmd.Flags().String("school", "", "Student school")
	quizCmd.Flags().Bool("no-save", false, "Do not store the result")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sc, err := assessment.Find(args[0])
	if err != nil {
		return err
	}

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	student, err := resolveStudent(cmd, b)
	if err != nil {
		return err
	}

	var res *assessment.Result
	if raw, _ := cmd.Flags().GetString("answers"); raw != "" {
		res, err = assessment.Grade(sc, assessment.ParseAnswers(raw), student, time.Now())
	} else {
		res, err = askQuiz(sc, student, os.Stdin, cmd.OutOrStdout())
	}
	if errors.Is(err, errQuizAbandoned) {
		fmt.Fprintln(cmd.OutOrStdout(), "Đã bỏ bài. Kết quả không được lưu.")
		return nil
	}
	metrics.ObserveGrade(sc.Instrument(), res, err)
	if err != nil {
		return err
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if err := b.results.Save(ctx, *res); err != nil {
			metrics.ResultSaveFailures.Inc()
			slog.Warn("failed to save result", "instrument", res.Instrument, "err", err)
			fmt.Fprintln(os.Stderr, "Không lưu được kết quả:", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Passport(*res, report.PassportOptions{}))
	fmt.Fprintf(cmd.OutOrStdout(), "Mã kết quả: %s\n", res.ID)
	return nil
}

// resolveStudent merges flags over the saved profile.
func resolveStudent(cmd *cobra.Command, b *backend) (assessment.Student, error) {
	var st assessment.Student
	saved, err := b.sqlite.ProfileRepo().Latest(cmd.Context())
	if err != nil {
		return st, fmt.Errorf("load profile: %w", err)
	}
	if saved != nil {
		st = *saved
	}
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		st.Name = v
	}
	if v, _ := cmd.Flags().GetString("class"); v != "" {
		st.Class = v
	}
	if v, _ := cmd.Flags().GetString("school"); v != "" {
		st.School = v
	}
	return st, nil
}

var errQuizAbandoned = errors.New("quiz abandoned")

// askQuiz runs a Session over line-based input. Answers may be the option
// key or the option text itself; "q" abandons.
func askQuiz(sc assessment.Scorer, student assessment.Student, in io.Reader, out io.Writer) (*assessment.Result, error) {
	session := assessment.NewSession(sc)
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "%s — %d câu. Gõ q để thoát.\n\n", sc.Instrument().DisplayName(), len(sc.Questions()))

	for !session.Done() {
		q, _ := session.Current()
		done, total := session.Progress()
		opts := assessment.AnswerOptions(sc.Instrument(), q)

		fmt.Fprintf(out, "── Câu %d/%d ──\n", done+1, total)
		fmt.Fprintln(out, q.Text)
		for _, o := range opts {
			fmt.Fprintf(out, "  %s) %s\n", o.Key, o.Text)
		}

		fmt.Fprint(out, "\nTrả lời: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return nil, errQuizAbandoned
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			return nil, errQuizAbandoned
		}

		if err := session.Answer(answerFor(opts, line)); err != nil {
			fmt.Fprintf(out, "✗ %v\n\n", err)
			continue
		}
		fmt.Fprintln(out)
	}
	return session.Finish(student, time.Now())
}

// answerFor maps a typed line to an option key, accepting the key itself or
// the option text under textmatch rules.
func answerFor(opts []assessment.Option, line string) assessment.Answer {
	for _, o := range opts {
		if strings.EqualFold(o.Key, line) {
			return assessment.Answer(o.Key)
		}
	}
	texts := make([]string, len(opts))
	for i, o := range opts {
		texts[i] = o.Text
	}
	if i := textmatch.IndexOf(texts, line); i >= 0 {
		return assessment.Answer(opts[i].Key)
	}
	return assessment.Answer(line)
}
