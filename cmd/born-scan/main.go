// Package main provides born-scan, a command line front end to the scan
// engine.
//
// Usage:
//
//	born-scan run --op sum --dims 2,3 --axis 1 1 2 3 4 5 6
//	born-scan run --op max --dtype float64 --keys 0,0,1,1 4 2 7 1
//	born-scan ops
package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "born-scan",
		Short:        "Running reductions over dense N-D arrays",
		SilenceUsage: true,
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newVersionCmd(), newOpsCmd(), newRunCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("born-scan %s\n", version)
		},
	}
}
