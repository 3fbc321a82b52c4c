// Package cli implements the metadex command-line interface.
//
// This package provides commands for building the component-library
// metadata index from a JSONL manifest, validating a manifest without
// touching the network, and cleaning up generated files. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Clone each manifest entry, extract pyproject metadata, and
//     write per-library JSON files plus the global index
//   - validate: Check manifest entries for malformed or duplicate data
//   - clean: Remove the clone scratch directory and generated outputs
//
// # Configuration
//
// Options resolve in the usual viper order: command-line flags, then
// METADEX_* environment variables, then an optional .metadex.yaml file,
// then built-in defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the metadex CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (build,
// validate, clean), loads configuration, and configures logging based on
// the --verbose flag before any command runs.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		cfgFile string
	)

	root := &cobra.Command{
		Use:          "metadex",
		Short:        "metadex builds a metadata index for component libraries",
		Long:         `metadex reads a JSONL manifest of component libraries, checks each one out with git, extracts the [project] table from its pyproject.toml, and writes per-library metadata files plus a global index.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig(cfgFile)

			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("metadex %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .metadex.yaml)")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newCleanCmd())

	return root.ExecuteContext(ctx)
}
