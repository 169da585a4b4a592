package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// inspect refetches the detail for a single node and prints the patched
// tree, exercising the same in-place update the editor panel uses.
func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <trace|cve|usage> <id>",
		Short: "Refresh one node's detail inside the cached tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "trace":
				return printResult(cmd, c.app.TraceDetail(cmd.Context(), args[1]))
			case "cve":
				return printResult(cmd, c.app.CVEOverview(cmd.Context(), args[1]))
			case "usage":
				unmapped, _ := cmd.Flags().GetBool("unmapped")
				return printResult(cmd, c.app.LibraryUsage(cmd.Context(), args[1], unmapped))
			default:
				return zerr.With(zerr.New("unknown inspect target"), "target", args[0])
			}
		},
	}
	cmd.Flags().Bool("unmapped", false, "Target the unmapped level of the library tree")
	return cmd
}
