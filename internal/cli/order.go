package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var noCache, refresh bool
	var output string

	cmd := &cobra.Command{
		Use:   "order [catalog-file]",
		Short: "Print a prerequisite-respecting course order",
		Long: `Order computes a study plan: a sequence over all courses in which every
course appears after all of its prerequisites. Ties are broken by course
ID, so the same catalog always yields the same plan.

If the catalog contains a prerequisite cycle, the cycle is printed and
the command fails.

Examples:
  coursegraph order catalog.toml
  coursegraph order catalog.toml -o plan.txt`,
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

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				CatalogPath: path,
				Refresh:     refresh,
				Logger:      c.Logger,
			})
			if err != nil {
				var cycleErr *catalog.CycleError
				if errors.As(err, &cycleErr) {
					printError("Prerequisite cycle: %s", strings.Join(cycleErr.Cycle, " "+iconArrow+" "))
					return fmt.Errorf("catalog contains a cycle")
				}
				var buildErr *catalog.BuildError
				if errors.As(err, &buildErr) {
					printBuildError(buildErr)
					return fmt.Errorf("catalog is invalid")
				}
				return err
			}

			plan := strings.Join(result.Order, "\n") + "\n"
			if output != "" {
				if err := os.WriteFile(output, []byte(plan), 0644); err != nil {
					return fmt.Errorf("write plan: %w", err)
				}
				printSuccess("Wrote study plan for %d courses", len(result.Order))
				printFile(output)
			} else {
				fmt.Print(plan)
			}
			printStats(result.Stats.CourseCount, result.Stats.EdgeCount, result.CacheInfo.OrderHit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
