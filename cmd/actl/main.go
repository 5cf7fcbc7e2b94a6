// actl is the command-line surface for Atlassian label management. The
// atui TUI dispatches every operation through this binary, and it works
// standalone for scripting:
//
//	actl ctag list 'space = "DOCS"' --tree
//	actl ctag add 'space = "DOCS"' foo,bar
//	actl ctag update 'space = "DOCS"' old:new
//	actl ctag remove 'space = "DOCS"' foo,bar --dry-run
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocasazza/atui/pkg/version"
)

var (
	flagDryRun  bool
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "actl",
		Short:         "Atlassian command-line utility for engineers and administrators",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Log actions instead of executing them")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
	root.AddCommand(newCtagCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
