package commands

import (
	"github.com/spf13/cobra"
	"go.seclens.dev/seclens/internal/core/domain"
)

func (c *CLI) newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results [scan|assess]",
		Short: "Print the cached result tree, refreshing it on a miss",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(args)
			if err != nil {
				return err
			}
			if mode == domain.ModeAssess {
				return printResult(cmd, c.app.AssessResults(cmd.Context()))
			}
			return printResult(cmd, c.app.ScanResults(cmd.Context()))
		},
	}
}

func (c *CLI) newLibrariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "Print the library results for the assess application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printResult(cmd, c.app.Libraries(cmd.Context()))
		},
	}
}

func (c *CLI) newAdviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice <scan-id>",
		Short: "Print remediation advice for one scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.app.Advice(cmd.Context(), args[0])
			if res.Failed() {
				return res.Err()
			}
			cmd.Println(res.Data)
			return nil
		},
	}
}
