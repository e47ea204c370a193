package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// catalogPath resolves the catalog file from the command argument or the
// config default.
func (c *CLI) catalogPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if c.Config.Catalog != "" {
		return c.Config.Catalog, nil
	}
	return "", fmt.Errorf("no catalog given: pass a file or set catalog in the config")
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var noCache, refresh bool

	cmd := &cobra.Command{
		Use:   "validate [catalog-file]",
		Short: "Parse a catalog and report every problem",
		Long: `Validate parses every prerequisite entry of a catalog, resolves all
course references, and reports every problem at once: unparsable
prerequisite texts and references to courses the catalog doesn't define.

Examples:
  coursegraph validate catalog.toml
  coursegraph validate courses.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.catalogPath(args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				CatalogPath: path,
				SkipOrder:   true,
				Refresh:     refresh,
				Logger:      c.Logger,
			})
			if err != nil {
				var buildErr *catalog.BuildError
				if errors.As(err, &buildErr) {
					printBuildError(buildErr)
					return fmt.Errorf("catalog is invalid")
				}
				return err
			}
			prog.done(fmt.Sprintf("Validated %d courses", result.Stats.CourseCount))

			printSuccess("Catalog is valid")
			printStats(result.Stats.CourseCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
			printNextStep("Compute a study order", "coursegraph order "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// printBuildError lists every malformed entry and unknown reference.
func printBuildError(buildErr *catalog.BuildError) {
	if len(buildErr.Malformed) > 0 {
		printError("%d course(s) with unparsable prerequisites", len(buildErr.Malformed))
		for _, id := range sortedKeys(buildErr.Malformed) {
			printDetail("%s: %v", id, buildErr.Malformed[id])
		}
	}
	if len(buildErr.Unknown) > 0 {
		printError("%d course(s) referencing unknown courses", len(buildErr.Unknown))
		for _, id := range sortedKeys(buildErr.Unknown) {
			printDetail("%s %s %s", id, iconArrow, strings.Join(buildErr.Unknown[id], ", "))
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
