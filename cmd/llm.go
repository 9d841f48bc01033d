package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
)

const purposeHelp = "flashcards, writing, homework, mindmap, lesson, speaking, chat, guidance"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI requests, token usage and study-tool logs",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		events, err := b.sqlite.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Kind: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeEventTable(cmd.OutOrStdout(), events)
		return nil
	},
}

func writeEventTable(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-19s  %-11s  %-26s  %6s  %6s  %7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Outcome")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, e := range events {
		outcome := e.Outcome
		if outcome == "" {
			outcome = "ok"
			if !e.Success {
				outcome = "error"
			}
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-11s  %-26s  %6d  %6d  %7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncateText(e.Model, 26),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			outcome,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		e, err := b.sqlite.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func writeEvent(w io.Writer, e *store.LLMEventRecord) {
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	if e.Student != "" {
		fmt.Fprintf(w, "Student:   %s\n", e.Student)
	}
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	if e.Outcome != "" {
		fmt.Fprintf(w, "Outcome:   %s\n", e.Outcome)
	}
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	section := func(title, body string) {
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", sep, title, sep)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, body)
	}
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		events := b.sqlite.EventRepo()
		byPurpose, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func writeUsage(w io.Writer, byPurpose []store.LLMPurposeUsage, byModel []store.LLMModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}
	rule := strings.Repeat("─", 80)

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Fail", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, rule)
	var calls, failures, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-12s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		failures += u.Failures
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s  %6d  %6d  %10d  %10d  %10d\n", "TOTAL", calls, failures, in, out, in+out)

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule)

	var total float64
	var unpriced []string
	for _, mu := range byModel {
		cost := "?"
		if p := llm.LookupCost(mu.Model); p != nil {
			c := p.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncateText(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}
	fmt.Fprintln(w, rule)
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

var llmLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List study-tool interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("purpose")

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		items, err := b.interactions.List(cmd.Context(), store.QueryOpts{Limit: limit, Kind: kind})
		if err != nil {
			return fmt.Errorf("list interactions: %w", err)
		}
		writeInteractions(cmd.OutOrStdout(), items)
		return nil
	},
}

func writeInteractions(w io.Writer, items []store.Interaction) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No interactions logged.")
		return
	}
	fmt.Fprintf(w, "%-16s  %-11s  %-18s  %-2s  %s\n", "Time", "Kind", "Student", "OK", "Input")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for _, in := range items {
		ok := "✓"
		if !in.Success {
			ok = "✗"
		}
		input := strings.Join(strings.Fields(in.Input), " ")
		fmt.Fprintf(w, "%-16s  %-11s  %-18s  %-2s  %s\n",
			in.Timestamp.Local().Format("2006-01-02 15:04"),
			in.Kind,
			truncateText(in.Student, 18),
			ok,
			truncateText(input, 36),
		)
	}
}

func init() {
	for _, c := range []*cobra.Command{llmListCmd, llmLogCmd} {
		c.Flags().IntP("limit", "n", 20, "Number of rows to show")
		c.Flags().StringP("purpose", "p", "", "Filter by purpose ("+purposeHelp+")")
	}

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmLogCmd)
}
