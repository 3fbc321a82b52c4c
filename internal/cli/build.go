package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/componentforge/metadex/pkg/pipeline"
	"github.com/componentforge/metadex/pkg/source/git"
)

// newBuildCmd creates the build command, the main entry point of the
// tool. It clones every library in the manifest, extracts project
// metadata, and writes the per-library files and the global index.
func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate per-library metadata files and the global index",
		Long: `Build reads the JSONL manifest, checks out each library with git at its
configured ref, extracts the [project] table from pyproject.toml (filling
placeholders when the file is missing), and writes one metadata file per
library plus an index of all of them.

The run is fail-fast: the first clone, parse, or write failure aborts it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			applyBuildFlags(cmd, &cfg)
			logger := loggerFromContext(cmd.Context())

			client := git.NewClient(cfg.GitPath)
			if err := client.Validate(); err != nil {
				return err
			}

			logger.Info("building metadata index", "manifest", cfg.ManifestPath)
			prog := newProgress(logger)

			runner := pipeline.NewRunner(client, logger)
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				ManifestPath: cfg.ManifestPath,
				IndexPath:    cfg.OutputIndex,
				MetadataDir:  cfg.MetadataDir,
				CloneRoot:    cfg.CloneRoot,
				KeepClones:   cfg.KeepClones,
			})
			if err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Generated %d metadata files in '%s'", result.Count, cfg.MetadataDir))

			printSuccess("Generated %d metadata files", result.Count)
			if result.MissingProject > 0 {
				printWarning("%d libraries had no pyproject.toml", result.MissingProject)
			}
			for _, id := range result.Duplicates {
				printWarning("duplicate library_id %q: last write wins", id)
			}
			printFile(result.IndexPath)
			return nil
		},
	}

	cmd.Flags().String("manifest", pipeline.DefaultManifestPath, "JSONL manifest file to read")
	cmd.Flags().StringP("index", "o", pipeline.DefaultIndexPath, "output path for the global index")
	cmd.Flags().String("metadata-dir", pipeline.DefaultMetadataDir, "output directory for per-library files")
	cmd.Flags().String("clone-root", pipeline.DefaultCloneRoot, "scratch directory for checkouts")
	cmd.Flags().String("git", "git", "git binary to invoke")
	cmd.Flags().Bool("keep-clones", false, "keep checkout directories after processing")

	return cmd
}

// applyBuildFlags overlays explicitly-set flags onto cfg, so flags beat
// environment and config-file values.
func applyBuildFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.ManifestPath, _ = flags.GetString("manifest")
	}
	if flags.Changed("index") {
		cfg.OutputIndex, _ = flags.GetString("index")
	}
	if flags.Changed("metadata-dir") {
		cfg.MetadataDir, _ = flags.GetString("metadata-dir")
	}
	if flags.Changed("clone-root") {
		cfg.CloneRoot, _ = flags.GetString("clone-root")
	}
	if flags.Changed("git") {
		cfg.GitPath, _ = flags.GetString("git")
	}
	if flags.Changed("keep-clones") {
		cfg.KeepClones, _ = flags.GetBool("keep-clones")
	}
}
