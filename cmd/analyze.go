package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/study"
	"github.com/abhisek/laban/internal/textmatch"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI career and study guidance from the student's latest results",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		all, err := b.results.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		results := lo.Filter(all, func(r assessment.Result, _ int) bool {
			return st.Name == "" || textmatch.Equal(r.Student.Name, st.Name)
		})

		rep, err := b.analyzer(ctx).Analyze(study.WithStudent(ctx, st.Name), guidance.Input{Student: st, Results: results})
		if errors.Is(err, guidance.ErrNoResults) {
			fmt.Fprintln(cmd.OutOrStdout(), "Bạn cần hoàn thành ít nhất một bài trắc nghiệm trước khi phân tích.")
			return nil
		}
		if err != nil {
			return errors.New(study.FallbackMessage(err))
		}

		w := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		fmt.Fprintf(w, "%s\n", rep.Summary)
		printList(w, "Điểm mạnh", rep.Strengths)
		printList(w, "Cần phát triển", rep.GrowthAreas)
		if len(rep.Careers) > 0 {
			fmt.Fprintln(w, "\nNghề nghiệp phù hợp:")
			for _, c := range rep.Careers {
				fmt.Fprintf(w, "  • %s — %s\n", c.Name, c.Reason)
			}
		}
		if len(rep.Majors) > 0 {
			fmt.Fprintln(w, "\nNgành học gợi ý:")
			for _, m := range rep.Majors {
				fmt.Fprintf(w, "  • %s — %s\n", m.Name, m.Reason)
				for _, u := range m.Universities {
					fmt.Fprintf(w, "      ◦ %s\n", u)
				}
			}
		}
		printList(w, "Lời khuyên học tập", rep.StudyAdvice)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("name", "", "Analyze this student's results (defaults to the profile)")
	analyzeCmd.Flags().Bool("json", false, "Print the report as JSON")
}
