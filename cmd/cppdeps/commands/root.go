// Package commands implements the CLI commands for cppdeps.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/cppdeps/internal/app"
	"go.trai.ch/cppdeps/internal/build"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/engine/linker"
)

// CLI represents the command line interface for cppdeps.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	v        *viper.Viper
	shutdown func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions) (func(context.Context) error, error)
	Resolve(ctx context.Context, opts app.ResolveOptions) error
	Link(ctx context.Context, opts app.LinkOptions) (linker.Report, error)
	Mappings(ctx context.Context, opts app.MappingsOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	v := viper.New()
	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c := &CLI{
		app: a,
		v:   v,
	}

	rootCmd := &cobra.Command{
		Use:               "cppdeps",
		Short:             "Resolve C++ dependencies to CMake link targets",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.configure,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.shutdown == nil {
				return nil
			}
			return c.shutdown(cmd.Context())
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to "+domain.ConfigFileName+" (default: search from the working directory up)")
	rootCmd.PersistentFlags().String("log-format", "pretty", "Log format: pretty or json")
	rootCmd.PersistentFlags().Bool("trace", false, "Log the duration of every resolution step")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newMappingsCmd())
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

// configure binds the executing command's flags so that flags win over CPPDEPS_* variables,
// then applies the global options.
func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	shutdown, err := c.app.Configure(app.GlobalOptions{
		LogFormat: c.v.GetString("log-format"),
		Trace:     c.v.GetBool("trace"),
	})
	if err != nil {
		return err
	}
	c.shutdown = shutdown
	return nil
}

// addProjectFlags registers the flags shared by every command that resolves a manifest.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "m", "", "Dependency manifest (default: "+domain.DefaultManifestName+" next to the config)")
	cmd.Flags().StringSliceP("prefix", "p", nil, "CMake prefix to search for package configs (repeatable)")
	cmd.Flags().String("snapshot", "", "Resolve against a recorded environment snapshot instead of CMake prefixes")
}

// projectOptions reads the project flags after they were bound by configure.
func (c *CLI) projectOptions() (app.ProjectOptions, error) {
	dir, err := os.Getwd()
	if err != nil {
		return app.ProjectOptions{}, err
	}

	return app.ProjectOptions{
		Dir:        dir,
		ConfigPath: c.v.GetString("config"),
		Manifest:   c.v.GetString("manifest"),
		Prefixes:   c.v.GetStringSlice("prefix"),
		Snapshot:   c.v.GetString("snapshot"),
	}, nil
}
