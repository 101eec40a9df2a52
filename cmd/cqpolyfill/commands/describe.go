package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdewolff-labs/cqpolyfill"
)

func newDescribeCommand() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "List the container-query descriptors a stylesheet would allocate",
		Long: `Runs the same transpile pass "transpile" does, but prints only the
descriptor table (id, container name, referenced features, element
selector, enclosing descriptor) without writing the rewritten source
anywhere. Useful for checking how a stylesheet's @container rules
would be discovered before wiring a host around them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var source []byte
			var err error
			if len(args) == 1 {
				source, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
			} else {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			result := cqpolyfill.TranspileStyleSheet(string(source), baseURL)
			printDescriptorSummary(os.Stdout, len(source), len(result.Source), result.Descriptors, result.Diagnostics)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "resolve url() tokens against this base URL")
	return cmd
}
