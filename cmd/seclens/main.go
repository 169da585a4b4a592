// Package main is the entry point for the seclens result cache CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/cmd/seclens/commands"
	"go.seclens.dev/seclens/internal/app"
	"go.seclens.dev/seclens/internal/core/domain"
	_ "go.seclens.dev/seclens/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.App.Dispose(context.Background())

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrModeSwitchDeclined) {
			// The user kept the current domain; not a failure.
			return 0
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
