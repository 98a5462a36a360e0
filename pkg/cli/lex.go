package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/shell"
)

func newLexCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lex [text...]",
		Short: "Split shell input into tokens",
		Long: `Split shell input into tokens with the resolved xxreadtoken model.
The arguments are joined with spaces; without arguments the input is read
from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				input = string(data)
			}

			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			scan, err := shell.Tokenize(store, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, lx := range scan.Lexemes {
				fmt.Fprintln(out, lx)
			}
			if config.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "softbind: %d tokens, %d lines, %d prompts\n",
					len(scan.Lexemes), scan.Lines, scan.Prompts)
			}
			return nil
		},
	}
}
