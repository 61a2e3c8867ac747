package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive TUI (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp builds the pipeline and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.Options{Pipeline: d.pipe})
}
