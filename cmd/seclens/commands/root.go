// Package commands implements the CLI commands for the seclens result cache.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.seclens.dev/seclens/internal/app"
	"go.seclens.dev/seclens/internal/build"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for seclens.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "seclens",
		Short:         "Cached security analysis results for the open workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the settings file")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "Workspace folder name used to resolve the project (defaults to the current directory name)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.applyGlobalFlags

	rootCmd.AddCommand(c.newResultsCmd())
	rootCmd.AddCommand(c.newLibrariesCmd())
	rootCmd.AddCommand(c.newAdviceCmd())
	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newModeCmd())
	rootCmd.AddCommand(c.newMarkCmd())
	rootCmd.AddCommand(c.newTagCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if config, _ := cmd.Flags().GetString("config"); config != "" {
		c.app.SetConfigPath(config)
	}

	workspace, _ := cmd.Flags().GetString("workspace")
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, "failed to resolve working directory")
		}
		workspace = filepath.Base(wd)
	}
	c.app.SetWorkspace(workspace)
	return nil
}

// parseMode maps a positional mode argument, defaulting to scan.
func parseMode(args []string) (domain.Mode, error) {
	if len(args) == 0 {
		return domain.ModeScan, nil
	}
	mode := domain.Mode(args[0])
	if mode != domain.ModeScan && mode != domain.ModeAssess {
		return domain.ModeNone, zerr.With(zerr.New("unknown mode"), "mode", args[0])
	}
	return mode, nil
}

// printResult renders a successful result as indented JSON, or surfaces
// the failure to the caller.
func printResult[T any](cmd *cobra.Command, res domain.Result[T]) error {
	if res.Failed() {
		return res.Err()
	}
	payload, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(payload))
	return nil
}
