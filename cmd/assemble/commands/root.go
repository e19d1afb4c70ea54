// Package commands implements the CLI commands for the assemble build tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/assemble/internal/app"
	"go.trai.ch/assemble/internal/build"
)

// CLI represents the command line interface for assemble.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "assemble",
		Short:         "An incremental build system for application targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to assemble.yaml or a directory to search from")
	flags.StringP("mode", "m", "debug", "Build mode: debug, profile or release")
	flags.StringP("platform", "p", "", "Target platform (defaults to the host platform)")
	flags.String("flavor", "", "Build flavor")
	flags.String("build-dir", "", "Override the configured build directory")
	flags.String("cache-dir", "", "Override the configured cache directory")
	flags.Bool("json", false, "Write logs as JSON")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(jsonOutput, verbose)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newDescribeCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// options reads the environment selection shared by all commands.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	var opts app.Options
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Mode, _ = flags.GetString("mode")
	opts.Platform, _ = flags.GetString("platform")
	opts.Flavor, _ = flags.GetString("flavor")
	opts.BuildDir, _ = flags.GetString("build-dir")
	opts.CacheDir, _ = flags.GetString("cache-dir")
	return opts
}

// addBuildFlags registers the flags of commands that run targets.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 1, "Number of targets to run in parallel")
	cmd.Flags().BoolP("force", "f", false, "Ignore stamps and run every target")
}

func buildOptions(cmd *cobra.Command) app.Options {
	opts := options(cmd)
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	opts.Force, _ = cmd.Flags().GetBool("force")
	return opts
}
