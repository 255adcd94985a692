package main

import (
	"strings"

	"github.com/born-ml/scan/ops"
	"github.com/born-ml/scan/tensor"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List supported operator and type combinations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(formatCatalog(ops.Supported()))
		},
	}
}

// formatCatalog renders one line per operator: "op: in->out in->out ...".
func formatCatalog(entries []ops.Entry) string {
	byOp := lo.GroupBy(entries, func(e ops.Entry) tensor.Op { return e.Op })
	var sb strings.Builder
	for _, op := range tensor.Ops {
		pairs := lo.Map(byOp[op], func(e ops.Entry, _ int) string {
			return e.Input.String() + "->" + e.Output.String()
		})
		sb.WriteString(op.String())
		sb.WriteString(": ")
		sb.WriteString(strings.Join(pairs, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
