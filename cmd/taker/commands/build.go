package commands

import "github.com/spf13/cobra"

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [target]",
		Short: "Update the Makefile and run make",
		Long: "Update the Makefile and run make for the given target, or the default\n" +
			"target when none is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := cmd.Flags().GetInt("jobs")
			if err != nil {
				return err
			}

			var target string
			if len(args) == 1 {
				target = args[0]
			}
			return c.app.Build(cmd.Context(), target, jobs)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel jobs (0 uses the configured value or the number of CPUs)")
	return cmd
}
