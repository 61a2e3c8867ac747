package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <youtube-url>",
	Short: "Print the summary of a YouTube video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := buildDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		refresh, _ := cmd.Flags().GetBool("refresh")
		s, err := d.pipe.Summarize(ctx, args[0], refresh)
		if err != nil {
			return err
		}

		if out, _ := cmd.Flags().GetString("output"); out != "" {
			path, err := d.pipe.SaveSummary(s.Text, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Summary saved to %s\n", path)
		}
		if s.Cached {
			fmt.Fprintln(cmd.ErrOrStderr(), "(cached summary, use --refresh to regenerate)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Text)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringP("output", "o", "", "Also save the summary to this file")
	summarizeCmd.Flags().Bool("refresh", false, "Ignore the cached summary and summarize again")
}
