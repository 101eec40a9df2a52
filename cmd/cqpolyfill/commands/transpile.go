package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tdewolff-labs/cqpolyfill"
)

func newTranspileCommand(configPath *string) *cobra.Command {
	var baseURL string
	var outputPath string
	var asHTML bool
	var whereUnsupported bool

	cmd := &cobra.Command{
		Use:   "transpile [file]",
		Short: "Rewrite @container rules and cq* units in a stylesheet or HTML document",
		Long: `Reads a stylesheet or HTML document (a file argument, or stdin when
omitted) and rewrites every @container rule, container/container-name/
container-type declaration and container-relative unit. A ".html"/".htm"
file, or --html, is treated as HTML: every inline <style> element is
rewritten in place instead of the whole input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.BaseURL
			}
			color.NoColor = !cfg.Color

			var source []byte
			var path string
			if len(args) == 1 {
				path = args[0]
				source, err = os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
			} else {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			return runTranspile(source, path, baseURL, outputPath, asHTML, whereUnsupported)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "resolve url() tokens against this base URL")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the rewritten document here instead of stdout")
	cmd.Flags().BoolVar(&asHTML, "html", false, "treat the input as HTML and rewrite its inline <style> elements")
	cmd.Flags().BoolVar(&whereUnsupported, "where-unsupported", false,
		"target a CSS engine without :where() support; selectors must pre-attach a :not(.container-query-polyfill) sentinel")

	return cmd
}

func runTranspile(source []byte, path, baseURL, outputPath string, asHTML, whereUnsupported bool) error {
	var opts []cqpolyfill.Option
	if whereUnsupported {
		opts = append(opts, cqpolyfill.WithWhereUnsupported())
	}
	if asHTML || isHTMLPath(path) {
		return runTranspileHTML(source, baseURL, outputPath, opts...)
	}
	return runTranspileCSS(string(source), baseURL, outputPath, opts...)
}

func isHTMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

func runTranspileCSS(source, baseURL, outputPath string, opts ...cqpolyfill.Option) error {
	result := cqpolyfill.TranspileStyleSheet(source, baseURL, opts...)

	if err := writeOutput(outputPath, result.Source); err != nil {
		return err
	}

	printDescriptorSummary(os.Stderr, len(source), len(result.Source), result.Descriptors, result.Diagnostics)
	return nil
}

func runTranspileHTML(source []byte, baseURL, outputPath string, opts ...cqpolyfill.Option) error {
	var buf bytes.Buffer
	descriptors, err := transpileHTML(bytes.NewReader(source), &buf, baseURL, opts...)
	if err != nil {
		return err
	}

	if err := writeOutput(outputPath, buf.String()); err != nil {
		return err
	}

	printDescriptorSummary(os.Stderr, len(source), buf.Len(), descriptors, nil)
	return nil
}

func writeOutput(outputPath, content string) error {
	if outputPath == "" {
		fmt.Fprintln(os.Stdout, content)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printDescriptorSummary renders the table go-pretty produces for the
// "describe" view (id, container name, feature set, element selector)
// alongside a colorized byte-count line, shared by both the "transpile"
// and "describe" subcommands.
func printDescriptorSummary(w io.Writer, sourceLen, outputLen int, descriptors []*cqpolyfill.Descriptor, diagnostics error) {
	sizeLine := fmt.Sprintf("%s -> %s (%+d bytes)",
		humanize.Bytes(uint64(sourceLen)), humanize.Bytes(uint64(outputLen)), outputLen-sourceLen)

	if diagnostics != nil {
		color.New(color.FgYellow).Fprintf(w, "%d descriptor(s), with warnings: %v\n", len(descriptors), diagnostics)
	} else {
		color.New(color.FgGreen).Fprintf(w, "%d descriptor(s)\n", len(descriptors))
	}
	fmt.Fprintln(w, sizeLine)

	if len(descriptors) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"id", "name", "features", "selector", "parent"})
	for _, d := range descriptors {
		tbl.AppendRow(table.Row{d.ID, descriptorName(d), descriptorFeatures(d), d.ElementSelector, descriptorParentID(d)})
	}
	tbl.Render()
}

func descriptorName(d *cqpolyfill.Descriptor) string {
	if d.Rule.Name == "" {
		return "(unnamed)"
	}
	return d.Rule.Name
}

func descriptorFeatures(d *cqpolyfill.Descriptor) string {
	names := make([]string, 0, len(d.Rule.Features))
	for feat := range d.Rule.Features {
		names = append(names, feat.String())
	}
	return strings.Join(names, ", ")
}

func descriptorParentID(d *cqpolyfill.Descriptor) string {
	if d.Parent == nil {
		return ""
	}
	return d.Parent.ID
}
