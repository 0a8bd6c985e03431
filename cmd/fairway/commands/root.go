// Package commands implements the CLI commands for fairway.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
	"go.trai.ch/fairway/internal/app"
	"go.trai.ch/fairway/internal/build"
	"go.trai.ch/fairway/internal/core/domain"
)

// Application represents the application logic interface.
type Application interface {
	PlanTrip(ctx context.Context, req domain.RouteRequest, opts app.PlanOptions) error
	Serve(ctx context.Context, addr string) error
	LockStatus(ctx context.Context, id int64, at time.Time) (*domain.LockReport, error)
	LocksNearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error)
}

// Loader builds the Application. It runs after flags are parsed so that global
// flags reach the configuration.
type Loader func(ctx context.Context) (Application, error)

// CLI represents the command line interface for fairway.
type CLI struct {
	load    Loader
	rootCmd *cobra.Command
	now     func() time.Time
	setenv  func(key, value string) error
}

// New creates a new CLI instance.
func New(load Loader) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fairway",
		Short:         "Lock-aware route planning for inland waterways",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log tier timings and diagnostics")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		load:    load,
		rootCmd: rootCmd,
		now:     time.Now,
		setenv:  os.Setenv,
	}
	rootCmd.PersistentPreRunE = c.applyGlobalFlags

	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newLocksCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetClock replaces the clock used for default timestamps. Used for testing.
func (c *CLI) SetClock(now func() time.Time) {
	c.now = now
}

// SetEnvSetter replaces os.Setenv. Used for testing.
func (c *CLI) SetEnvSetter(setenv func(key, value string) error) {
	c.setenv = setenv
}

// applyGlobalFlags hands explicitly set global flags to the config loader.
func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		if err := c.setenv(domain.ConfigEnvVar, path); err != nil {
			return err
		}
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		if err := c.setenv("FAIRWAY_LOG_VERBOSE", strconv.FormatBool(v)); err != nil {
			return err
		}
	}
	if flags.Changed("log-json") {
		v, _ := flags.GetBool("log-json")
		if err := c.setenv("FAIRWAY_LOG_JSON", strconv.FormatBool(v)); err != nil {
			return err
		}
	}
	return nil
}
