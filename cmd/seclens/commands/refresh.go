package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [scan|assess]",
		Short: "Force a synchronous refresh of the result tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(args)
			if err != nil {
				return err
			}
			return printResult(cmd, c.app.Refresh(cmd.Context(), mode))
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [scan|assess]",
		Short: "Stream refreshed result trees until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(args)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), mode, cmd.OutOrStdout())
		},
	}
}
