package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/integrations/catalogue"
)

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var baseURL, output string
	var depts []string
	var refresh, plain bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a catalog from a catalogue service",
		Long: `Fetch downloads course and prerequisite data from a catalogue service
and writes it as a local catalog file that the other commands consume.

By default all departments are fetched; restrict with --dept.

Examples:
  coursegraph fetch --base-url https://catalogue.example.edu/api -o catalog.txt
  coursegraph fetch --dept CS --dept MATH -o catalog.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = c.Config.Catalogue.BaseURL
			}
			if baseURL == "" {
				return fmt.Errorf("no catalogue service: pass --base-url or set catalogue.base_url in the config")
			}

			client, err := catalogue.NewClient(baseURL, c.Config.Catalogue.TTL.Duration)
			if err != nil {
				return err
			}

			entries, err := c.fetchEntries(cmd.Context(), client, depts, refresh, plain)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("catalogue returned no courses")
			}

			content := formatFlatCatalog(entries)
			if output == "" {
				fmt.Print(content)
				return nil
			}
			if err := os.WriteFile(output, []byte(content), 0644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			printSuccess("Fetched %d courses", len(entries))
			printFile(output)
			printNextStep("Validate the catalog", "coursegraph validate "+output)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "catalogue service API root")
	cmd.Flags().StringSliceVar(&depts, "dept", nil, "departments to fetch (default: all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output catalog file (stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable the interactive progress display")

	return cmd
}

// fetchEntries downloads the catalog, with an interactive progress view
// on a terminal and plain logging otherwise.
func (c *CLI) fetchEntries(ctx context.Context, client *catalogue.Client, depts []string, refresh, plain bool) (map[string]string, error) {
	if len(depts) == 0 {
		all, err := client.Departments(ctx, refresh)
		if err != nil {
			return nil, err
		}
		depts = all
	}
	if len(depts) == 0 {
		return nil, fmt.Errorf("catalogue lists no departments")
	}
	sort.Strings(depts)

	if plain || !isTerminal(os.Stdout) {
		return c.fetchPlain(ctx, client, depts, refresh)
	}
	return runFetchTUI(ctx, client, depts, refresh)
}

func (c *CLI) fetchPlain(ctx context.Context, client *catalogue.Client, depts []string, refresh bool) (map[string]string, error) {
	entries := make(map[string]string)
	for _, dept := range depts {
		prog := newProgress(c.Logger)
		courses, err := client.FetchDepartment(ctx, dept, refresh)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", dept, err)
		}
		for _, course := range courses {
			entries[course.Code] = course.Prerequisites
		}
		prog.done(fmt.Sprintf("Fetched %s (%d courses)", dept, len(courses)))
	}
	return entries, nil
}

// formatFlatCatalog renders entries as a flat-text catalog, sorted by
// course code so the output is diff-friendly.
func formatFlatCatalog(entries map[string]string) string {
	codes := make([]string, 0, len(entries))
	for code := range entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	for _, code := range codes {
		b.WriteString(code)
		b.WriteString(" : ")
		b.WriteString(entries[code])
		b.WriteString("\n")
	}
	return b.String()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
