package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove tags on traces or a library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			traces, _ := cmd.Flags().GetStringSlice("trace")
			library, _ := cmd.Flags().GetString("library")
			unmapped, _ := cmd.Flags().GetBool("unmapped")
			add, _ := cmd.Flags().GetStringSlice("add")
			remove, _ := cmd.Flags().GetStringSlice("remove")

			if len(add) == 0 && len(remove) == 0 {
				return zerr.New("nothing to do: pass --add or --remove")
			}

			if library != "" {
				return printResult(cmd, c.app.TagLibrary(cmd.Context(), library, unmapped, add, remove))
			}
			if len(traces) == 0 {
				return zerr.New("pass --trace or --library to select a target")
			}
			return printResult(cmd, c.app.Tag(cmd.Context(), traces, add, remove))
		},
	}
	cmd.Flags().StringSlice("trace", nil, "Trace id to tag (repeatable)")
	cmd.Flags().String("library", "", "Library hash to tag instead of traces")
	cmd.Flags().Bool("unmapped", false, "Target the unmapped level of the library tree")
	cmd.Flags().StringSlice("add", nil, "Tag to add (repeatable)")
	cmd.Flags().StringSlice("remove", nil, "Tag to remove (repeatable)")
	return cmd
}
