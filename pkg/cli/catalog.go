package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/softbind/internal/catalog"
	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/shell"
)

func newExportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [db]",
		Short: "Write the registered models to a SQLite catalog",
		Long:  "Write the registered models to a SQLite catalog (default " + config.DefaultCatalogPath + ").",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultCatalogPath
			if len(args) == 1 {
				path = args[0]
			}

			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			c, err := catalog.Open(path)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Save(cmd.Context(), store.Models()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d models to %s\n", store.Len(), path)
			return nil
		},
	}
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [db]",
		Short: "Print a SQLite catalog as a manifest",
		Long: `Read a SQLite catalog (default ` + config.DefaultCatalogPath + `) and print its
models as a YAML manifest. Function bodies must be known to this binary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultCatalogPath
			if len(args) == 1 {
				path = args[0]
			}

			c, err := openExisting(path)
			if err != nil {
				return err
			}
			defer c.Close()

			models, err := c.Load(cmd.Context(), shell.Bodies())
			if err != nil {
				return err
			}
			return writeManifest(cmd.OutOrStdout(), models)
		},
	}
}

// openExisting opens a catalog without creating an empty one at path.
func openExisting(path string) (*catalog.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog.Open(path)
}
