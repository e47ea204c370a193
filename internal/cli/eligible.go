package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// eligibleCommand creates the eligible command.
func (c *CLI) eligibleCommand() *cobra.Command {
	var noCache, refresh bool
	var completed []string

	cmd := &cobra.Command{
		Use:   "eligible [catalog-file]",
		Short: "List the courses a student may take next",
		Long: `Eligible evaluates every course's prerequisite rule against the
student's completed courses and lists the ones whose requirements are
met. Courses already completed are excluded. Completed courses the
catalog doesn't know (transfer credit) still count toward prerequisites.

Examples:
  coursegraph eligible catalog.toml --completed CS101 --completed MATH101
  coursegraph eligible catalog.toml -c CS101,MATH101`,
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

			if completed == nil {
				completed = []string{}
			}
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				CatalogPath: path,
				Completed:   completed,
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

			if len(result.Eligible) == 0 {
				printInfo("No courses are currently available")
				return nil
			}
			for _, id := range result.Eligible {
				fmt.Println(id)
			}
			printDetail("%d of %d courses available", len(result.Eligible), result.Stats.CourseCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().StringSliceVarP(&completed, "completed", "c", nil, "completed course IDs (repeatable or comma-separated)")

	return cmd
}
