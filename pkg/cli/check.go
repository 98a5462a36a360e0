package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/registry"
	"github.com/funvibe/softbind/internal/report"
	"github.com/funvibe/softbind/internal/shell"
)

// checkCases are the classification scenarios run by "softbind check".
var checkCases = []struct {
	input   string
	want    shell.Token
	pending string
}{
	{"(", shell.TLP, ""},
	{"|", shell.TPIPE, ""},
	{"|x", shell.TPIPE, "x"},
	{"||", shell.TOR, ""},
	{"", shell.TEOF, ""},
	{"&&", shell.TAND, ""},
	{"&x", shell.TBACKGND, "x"},
	{";;", shell.TENDCASE, ""},
	{"\n", shell.TNL, ""},
}

func newCheckCommand(opts *options) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the token classifier against the reference scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			r := report.New(cmd.OutOrStdout())
			if plain {
				r = report.NewPlain(cmd.OutOrStdout())
			}
			runChecks(store, r)
			if !r.Summary() {
				return fmt.Errorf("%d of %d checks failed", r.Failed, r.Passed+r.Failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "never color the output")
	return cmd
}

func runChecks(store *registry.Store, r *report.Reporter) {
	call, err := store.Resolve(config.ReadTokenID, nil)
	if err != nil {
		r.Error("resolve "+config.ReadTokenID, err)
		return
	}

	for _, tc := range checkCases {
		label := fmt.Sprintf("%s(%q)", call.Label, tc.input)
		src := shell.NewStringSource(tc.input)
		args := shell.StreamArgs(src)
		args["readtoken1"] = shell.ReadToken1Func(shell.NewWordReader(src).ReadToken1)

		res, err := call.Call(args)
		if err != nil {
			r.Error(label, err)
			continue
		}
		r.Equal(label, int(tc.want), res)
		r.Equal(label+" pending", tc.pending, src.Remaining())
	}
}
