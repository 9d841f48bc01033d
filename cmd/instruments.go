package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the instruments and their categories",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-18s  %5s  %s\n", "Name", "Display", "Câu", "Categories")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, sc := range assessment.Scorers() {
			inst := sc.Instrument()
			var cats []string
			for _, c := range sc.Alphabet() {
				cats = append(cats, fmt.Sprintf("%s=%s", c, assessment.Describe(inst, c)))
			}
			fmt.Fprintf(out, "%-8s  %-18s  %5d  %s\n",
				inst, inst.DisplayName(), len(sc.Questions()), strings.Join(cats, ", "))
		}

		fmt.Fprintf(out, "\nQuestion bank %s\n", assessment.BankVersion)
	},
}
