package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate [youtube-url]",
	Short: "Generate a quiz from a video or a saved summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaryFile, _ := cmd.Flags().GetString("summary-file")
		if (summaryFile == "") == (len(args) == 0) {
			return fmt.Errorf("pass either a YouTube URL or --summary-file")
		}

		ctx := cmd.Context()
		d, err := buildDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		var text string
		if summaryFile != "" {
			data, err := os.ReadFile(summaryFile)
			if err != nil {
				return fmt.Errorf("read summary: %w", err)
			}
			text = string(data)
		} else {
			s, err := d.pipe.Summarize(ctx, args[0], false)
			if err != nil {
				return err
			}
			text = s.Text
		}

		res, err := d.pipe.Generate(ctx, text)
		if err != nil {
			return err
		}
		for _, r := range res.Repairs() {
			fmt.Fprintln(cmd.ErrOrStderr(), "repaired", r)
		}
		fmt.Fprint(cmd.OutOrStdout(), quiz.Format(res.Questions))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("summary-file", "", "Read the summary from this file instead of a video")
}
