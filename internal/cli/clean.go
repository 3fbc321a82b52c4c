package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/componentforge/metadex/pkg/errors"
)

// newCleanCmd creates the clean command. By default it removes the
// clone scratch directory; --all also removes the generated metadata
// directory and index file.
func newCleanCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the clone scratch directory and, with --all, generated outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			if err := removePath(cfg.CloneRoot); err != nil {
				return err
			}
			printSuccess("Removed clone root")
			printDetail("directory: %s", cfg.CloneRoot)

			if !all {
				return nil
			}

			if err := removePath(cfg.MetadataDir); err != nil {
				return err
			}
			if err := removePath(cfg.OutputIndex); err != nil {
				return err
			}
			printSuccess("Removed generated outputs")
			printDetail("directory: %s", cfg.MetadataDir)
			printDetail("index: %s", cfg.OutputIndex)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also remove the metadata directory and index file")

	return cmd
}

// removePath deletes path recursively, treating absence as success.
func removePath(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "remove %s", path)
	}
	return nil
}
