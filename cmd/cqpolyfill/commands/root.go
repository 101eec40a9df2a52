package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tdewolff-labs/cqpolyfill/logger"
	"github.com/tdewolff-labs/cqpolyfill/version"
)

// NewRootCommand builds the cqpolyfill command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:   "cqpolyfill",
		Short: "CSS container-query polyfill transpiler",
		Long: `cqpolyfill rewrites @container rules, container/container-name/
container-type declarations and cq* units into plain CSS, printing the
container-query descriptors a host applies at layout time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				base, err := zap.NewDevelopment()
				if err == nil {
					logger.Configure(base)
				}
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log transpile progress and warnings")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a cqpolyfill config file")

	root.AddCommand(newTranspileCommand(&configPath))
	root.AddCommand(newDescribeCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.VersionString)
		},
	}
}
