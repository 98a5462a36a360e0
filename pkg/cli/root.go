// Package cli implements the softbind command line.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/manifest"
	"github.com/funvibe/softbind/internal/registry"
	"github.com/funvibe/softbind/internal/shell"
)

// options holds the persistent flags.
type options struct {
	manifest string
	catalog  string
	verbose  bool
}

// NewRootCommand builds the softbind command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "softbind",
		Short: "Model registry with a ported ash token classifier",
		Long: `softbind stores constant tables, enumerations and function models and
resolves them into callables. The bundled function model is a port of the
busybox ash xxreadtoken dispatch step.

Models come from, in order of preference:
  --catalog <db>      a SQLite catalog written by "softbind export"
  --manifest <file>   a softbind.yaml / softbind.toml manifest
  a manifest found in the current directory or one of its parents
  the built-in shell models`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Verbose = opts.verbose
		},
	}

	root.PersistentFlags().StringVarP(&opts.manifest, "manifest", "m", "", "model manifest (YAML or TOML)")
	root.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "SQLite model catalog")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "trace resolutions on stderr")

	root.AddCommand(
		newCheckCommand(opts),
		newLexCommand(opts),
		newModelsCommand(opts),
		newExportCommand(opts),
		newImportCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// loadStore builds the model store selected by the flags.
func loadStore(cmd *cobra.Command, opts *options) (*registry.Store, error) {
	store, err := openStore(cmd, opts)
	if err != nil {
		return nil, err
	}
	if config.Verbose {
		store.Logger = log.New(cmd.ErrOrStderr(), "softbind: ", 0)
	}
	return store, nil
}

func openStore(cmd *cobra.Command, opts *options) (*registry.Store, error) {
	if opts.catalog != "" {
		c, err := openExisting(opts.catalog)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return c.LoadStore(cmd.Context(), shell.Bodies())
	}

	path := opts.manifest
	if path == "" {
		found, err := manifest.FindManifest(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return shell.NewStore()
	}

	if config.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "softbind: using manifest %s\n", path)
	}
	m, err := manifest.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	store := registry.NewStore()
	if err := m.Register(store, shell.Bodies()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}
