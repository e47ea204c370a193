package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/course"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
	"github.com/coursegraph/coursegraph/pkg/render"
)

// vizCommand creates the viz command.
func (c *CLI) vizCommand() *cobra.Command {
	var noCache, detailed bool
	var format, output string
	var completed []string

	cmd := &cobra.Command{
		Use:   "viz [catalog-file]",
		Short: "Render the prerequisite graph",
		Long: `Viz renders the prerequisite graph as DOT, SVG, PNG, or PDF. With
--completed, finished courses are greyed out and the currently eligible
courses highlighted.

Examples:
  coursegraph viz catalog.toml -o graph.svg
  coursegraph viz catalog.toml --format dot
  coursegraph viz catalog.toml -c CS101 -o progress.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.catalogPath(args)
			if err != nil {
				return err
			}
			format, err := resolveFormat(format, output)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				CatalogPath: path,
				SkipOrder:   true,
				Logger:      c.Logger,
			}
			if completed != nil {
				opts.Completed = completed
			}
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			renderOpts := render.Options{Detailed: detailed}
			if completed != nil {
				renderOpts.Completed = course.NewSet(completed...)
				renderOpts.Eligible = course.NewSet(result.Eligible...)
			}
			dot := render.ToDOT(result.Graph, renderOpts)

			data, err := renderFormat(dot, format)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", format, err)
			}
			printSuccess("Rendered %d courses", result.Stats.CourseCount)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include prerequisite expressions in labels")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png, pdf (default from file extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringSliceVarP(&completed, "completed", "c", nil, "completed course IDs to highlight progress")

	return cmd
}

// resolveFormat picks the output format from the flag or the output file
// extension, defaulting to DOT for stdout.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		if idx := strings.LastIndex(output, "."); idx >= 0 {
			format = output[idx+1:]
		} else {
			format = "dot"
		}
	}
	switch format {
	case "dot", "svg", "png", "pdf":
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %q (must be one of: dot, svg, png, pdf)", format)
}

func renderFormat(dot, format string) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return render.RenderSVG(dot)
	case "png":
		return render.RenderPNG(dot)
	case "pdf":
		svg, err := render.RenderSVG(dot)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	}
	return nil, fmt.Errorf("invalid format: %q", format)
}
