// Package main is the entry point for the fairway route planner.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/cmd/fairway/commands"
	"go.trai.ch/fairway/internal/app"
	_ "go.trai.ch/fairway/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, provideComponents))
}

// provideComponents builds the dependency graph. The cleanup closes what the
// components hold open.
func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return c, func() {
		if cerr := c.Close(); cerr != nil && c.Logger != nil {
			c.Logger.Warn("failed to release resources: " + cerr.Error())
		}
	}, nil
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Components are built lazily, after global flags reached the environment.
	var (
		components *app.Components
		cleanup    = func() {}
	)
	defer func() { cleanup() }()

	load := func(ctx context.Context) (commands.Application, error) {
		c, done, err := provider(ctx)
		if err != nil {
			return nil, err
		}
		components, cleanup = c, done
		for _, opt := range opts {
			opt(components.App)
		}
		return components.App, nil
	}

	// 2. Interface - CLI
	cli := commands.New(load)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if components == nil || components.Logger == nil {
			// Logger is not available if initialization failed or never ran
			_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
