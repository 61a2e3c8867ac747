package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past quiz attempts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().ListAttempts(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts found.")
			return nil
		}

		fmt.Printf("%-8s  %-16s  %-12s  %-7s  %-8s  %s\n",
			"ID", "Date", "Video", "Score", "Percent", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for _, a := range attempts {
			fmt.Printf("%-8s  %-16s  %-12s  %-7s  %-8s  %s\n",
				a.ID[:8],
				a.CreatedAt.Local().Format("2006-01-02 15:04"),
				a.VideoID,
				fmt.Sprintf("%d/%d", a.Correct, a.Total),
				quizsession.FormatScore(a.Score),
				truncate(a.Title, 40),
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the graded report of an attempt",
	Long:  "Show the graded report of an attempt. The id may be shortened to any unambiguous prefix.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := s.AttemptRepo().GetAttempt(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var r quizsession.GradeReport
		if err := json.Unmarshal(a.Report, &r); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}

		fmt.Printf("ID:     %s\n", a.ID)
		fmt.Printf("Time:   %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Video:  https://www.youtube.com/watch?v=%s\n", a.VideoID)
		if a.Title != "" {
			fmt.Printf("Title:  %s\n", a.Title)
		}
		fmt.Println()
		fmt.Println(report.Text(r))

		missed := lo.Filter(r.Results, func(res quizsession.QuestionResult, _ int) bool {
			return res.Verdict != quizsession.VerdictCorrect
		})
		if len(missed) > 0 {
			nums := lo.Map(missed, func(res quizsession.QuestionResult, _ int) string {
				return fmt.Sprintf("%d", res.Number)
			})
			fmt.Printf("Review questions: %s\n", strings.Join(nums, ", "))
		}

		for _, flag := range []string{"pdf", "txt"} {
			path, _ := cmd.Flags().GetString(flag)
			if path == "" {
				continue
			}
			if err := report.ExportFile(path, r); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyViewCmd.Flags().String("pdf", "", "Export the report as PDF to this path")
	historyViewCmd.Flags().String("txt", "", "Export the report as plain text to this path")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
