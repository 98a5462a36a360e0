package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/funvibe/softbind/internal/manifest"
	"github.com/funvibe/softbind/internal/registry"
)

func newModelsCommand(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the registered models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			if asYAML {
				return writeManifest(cmd.OutOrStdout(), store.Models())
			}
			return listModels(cmd.OutOrStdout(), store.Models())
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the models as a manifest")
	return cmd
}

func listModels(w io.Writer, models []registry.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tDETAIL")
	for _, m := range models {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ModelID(), m.Kind(), modelDetail(m))
	}
	return tw.Flush()
}

func modelDetail(m registry.Model) string {
	switch m := m.(type) {
	case *registry.Constants:
		names := make([]string, 0, len(m.Values))
		for name := range m.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("%d values: %s", len(names), strings.Join(names, " "))
	case *registry.Enum:
		return fmt.Sprintf("%d values", len(m.Values))
	case *registry.Function:
		from := make([]string, 0, len(m.Imports))
		for _, imp := range m.Imports {
			from = append(from, imp.From)
		}
		return fmt.Sprintf("body %s, %d parameters, imports [%s]",
			m.BodyName(), len(m.Parameters), strings.Join(from, " "))
	}
	return ""
}

func writeManifest(w io.Writer, models []registry.Model) error {
	data, err := manifest.FromModels(models).Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
