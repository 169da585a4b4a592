package commands

import (
	"github.com/spf13/cobra"
	"go.seclens.dev/seclens/internal/core/domain"
)

func (c *CLI) newMarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark <status>",
		Short: "Mark traces with a new status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traces, _ := cmd.Flags().GetStringSlice("trace")
			subStatus, _ := cmd.Flags().GetString("sub-status")
			note, _ := cmd.Flags().GetString("note")
			return printResult(cmd, c.app.MarkAs(cmd.Context(), domain.Mark{
				TraceIDs:  traces,
				Status:    args[0],
				SubStatus: subStatus,
				Note:      note,
			}))
		},
	}
	cmd.Flags().StringSlice("trace", nil, "Trace id to mark (repeatable)")
	cmd.Flags().String("sub-status", "", "Sub-status qualifying the new status")
	cmd.Flags().String("note", "", "Note recorded with the status change")
	_ = cmd.MarkFlagRequired("trace")
	return cmd
}
