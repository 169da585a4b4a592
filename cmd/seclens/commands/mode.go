package commands

import (
	"github.com/spf13/cobra"
	"go.seclens.dev/seclens/internal/core/domain"
)

func (c *CLI) newModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [scan|assess]",
		Short: "Print the active domain, or switch to another one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Println(string(c.app.ActiveMode()))
				return nil
			}
			target := domain.Mode(args[0])
			if err := c.app.SwitchMode(cmd.Context(), target); err != nil {
				return err
			}
			cmd.Println(string(c.app.ActiveMode()))
			return nil
		},
	}
}
