package cli

import (
	"github.com/spf13/cobra"

	"github.com/componentforge/metadex/pkg/errors"
	"github.com/componentforge/metadex/pkg/manifest"
	"github.com/componentforge/metadex/pkg/pipeline"
	"github.com/componentforge/metadex/pkg/source/git"
)

// newValidateCmd creates the validate command. It checks the manifest
// without cloning anything: required fields, safe IDs and paths, URL
// schemes, and duplicate library IDs, plus git binary availability.
// Unlike build, duplicates are treated as errors here so operators can
// enforce uniqueness ahead of a run.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the manifest and environment without cloning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cmd.Flags().Changed("manifest") {
				cfg.ManifestPath, _ = cmd.Flags().GetString("manifest")
			}

			client := git.NewClient(cfg.GitPath)
			if err := client.Validate(); err != nil {
				printError("git: %v", errors.UserMessage(err))
				return err
			}
			printSuccess("git binary found")

			entries, err := manifest.ReadFile(cfg.ManifestPath)
			if err != nil {
				printError("manifest: %v", errors.UserMessage(err))
				return err
			}
			printSuccess("%d manifest entries parsed", len(entries))

			if dups := manifest.Duplicates(entries); len(dups) > 0 {
				for _, id := range dups {
					printError("duplicate library_id: %s", id)
				}
				return errors.New(errors.ErrCodeDuplicateLibrary, "%d duplicate library IDs in %s", len(dups), cfg.ManifestPath)
			}
			printSuccess("no duplicate library IDs")

			printDetail("manifest: %s", cfg.ManifestPath)
			return nil
		},
	}

	cmd.Flags().String("manifest", pipeline.DefaultManifestPath, "JSONL manifest file to read")

	return cmd
}
