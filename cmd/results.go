package cmd

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/report"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/textmatch"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect stored results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Summarize every stored result",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		all, err := b.results.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		filtered, err := filterResults(cmd, all)
		if err != nil {
			return err
		}
		return report.WriteSummary(cmd.OutOrStdout(), filtered)
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one result as a passport page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		res, err := b.results.Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("result %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Passport(*res, report.PassportOptions{}))
		return nil
	},
}

var resultsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the full passport: the latest result of each instrument",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		all, err := b.results.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		filtered, err := filterResults(cmd, all)
		if err != nil {
			return err
		}
		latest := guidance.Latest(filtered)
		if len(latest) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Chưa có kết quả nào.")
			return nil
		}
		for _, r := range latest {
			fmt.Fprintln(cmd.OutOrStdout(), report.Passport(r, report.PassportOptions{}))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d bài đã hoàn thành\n", len(latest), len(assessment.Instruments()))
		return nil
	},
}

// filterResults applies the --instrument and --student flags.
func filterResults(cmd *cobra.Command, all []assessment.Result) ([]assessment.Result, error) {
	instName, _ := cmd.Flags().GetString("instrument")
	student, _ := cmd.Flags().GetString("student")

	var inst assessment.Instrument
	if instName != "" {
		sc, err := assessment.Find(instName)
		if err != nil {
			return nil, err
		}
		inst = sc.Instrument()
	}
	return lo.Filter(all, func(r assessment.Result, _ int) bool {
		if inst != "" && r.Instrument != inst {
			return false
		}
		return student == "" || textmatch.Equal(r.Student.Name, student)
	}), nil
}

func init() {
	for _, c := range []*cobra.Command{resultsListCmd, resultsReportCmd} {
		c.Flags().StringP("instrument", "i", "", "Only this instrument")
		c.Flags().StringP("student", "s", "", "Only this student (accents and case ignored)")
	}

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsReportCmd)
}
