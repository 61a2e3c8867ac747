package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls, token usage and cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failed {
			events = lo.Reject(events, func(e store.LLMEvent, _ int) bool { return e.Success })
		}
		if len(events) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-14s  %-28s  %7s  %7s  %7s  %s\n",
			"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Status")
		fmt.Println(strings.Repeat("─", 104))
		for _, e := range events {
			status := "ok"
			if !e.Success {
				status = "error: " + truncate(e.ErrorMessage, 30)
			}
			fmt.Printf("%-5d  %-19s  %-14s  %-28s  %7d  %7d  %7d  %s\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens, e.LatencyMs, status)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the captured request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("event %d: %w", id, err)
		}

		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		}
		if cost := llm.LookupCost(e.Model); cost != nil {
			fields = append(fields, [2]string{"Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens))})
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Printf("%-9s %s\n", f[0]+":", f[1])
		}

		printSection("REQUEST", e.RequestBody)
		printSection("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		printPurposeUsage(byPurpose)
		fmt.Println()
		printModelCost(byModel)
		return nil
	},
}

func printPurposeUsage(rows []store.PurposeUsage) {
	rule := strings.Repeat("─", 70)
	fmt.Println("Tokens by purpose")
	fmt.Println(rule)
	fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	fmt.Println(rule)
	for _, r := range rows {
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
			r.Purpose, r.Calls, r.InputTokens, r.OutputTokens, r.InputTokens+r.OutputTokens, r.AvgLatencyMs)
	}
	fmt.Println(rule)

	calls := lo.SumBy(rows, func(r store.PurposeUsage) int { return r.Calls })
	in := lo.SumBy(rows, func(r store.PurposeUsage) int { return r.InputTokens })
	out := lo.SumBy(rows, func(r store.PurposeUsage) int { return r.OutputTokens })
	fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "All", calls, in, out, in+out)
}

func printModelCost(rows []store.ModelUsage) {
	priced, unpriced := lo.FilterReject(rows, func(r store.ModelUsage, _ int) bool {
		return llm.LookupCost(r.Model) != nil
	})

	rule := strings.Repeat("─", 70)
	fmt.Println("Estimated cost (USD)")
	fmt.Println(rule)
	fmt.Printf("%-32s  %6s  %10s  %10s  %s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule)

	var total float64
	for _, r := range priced {
		c := llm.LookupCost(r.Model).Cost(r.InputTokens, r.OutputTokens)
		total += c
		fmt.Printf("%-32s  %6d  %10d  %10d  %s\n", truncate(r.Model, 32), r.Calls, r.InputTokens, r.OutputTokens, formatCost(c))
	}
	for _, r := range unpriced {
		fmt.Printf("%-32s  %6d  %10d  %10d  %s\n", truncate(r.Model, 32), r.Calls, r.InputTokens, r.OutputTokens, "?")
	}
	fmt.Println(rule)
	fmt.Printf("%-32s  %6s  %10s  %10s  %s\n", "All", "", "", "", formatCost(total))

	if len(unpriced) > 0 {
		names := lo.Map(unpriced, func(r store.ModelUsage, _ int) string { return r.Model })
		fmt.Printf("\nNo price known for %s; the total excludes them.\n", strings.Join(names, ", "))
	}
}

func printSection(title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (summary, quiz-gen)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
