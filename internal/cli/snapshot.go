package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/graphio"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
	"github.com/coursegraph/coursegraph/pkg/store"
)

// snapshotCommand creates the snapshot command group.
func (c *CLI) snapshotCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage stored catalog snapshots",
		Long: `Snapshot stores validated catalogs in MongoDB so several versions
(e.g. fall and winter terms) can be kept and compared. Requires a
MongoDB connection via --mongo-uri or mongo.uri in the config.`,
	}

	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string")

	cmd.AddCommand(c.snapshotSaveCommand(&mongoURI))
	cmd.AddCommand(c.snapshotListCommand(&mongoURI))
	cmd.AddCommand(c.snapshotDeleteCommand(&mongoURI))

	return cmd
}

// snapshotStore connects to the configured MongoDB snapshot store.
func (c *CLI) snapshotStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		mongoURI = c.Config.Mongo.URI
	}
	if mongoURI == "" {
		return nil, fmt.Errorf("no snapshot store: pass --mongo-uri or set mongo.uri in the config")
	}
	return store.NewMongoStore(ctx, mongoURI)
}

// snapshotSaveCommand creates the "snapshot save" subcommand.
func (c *CLI) snapshotSaveCommand(mongoURI *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [catalog-file]",
		Short: "Validate a catalog and store it as a snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.catalogPath(args)
			if err != nil {
				return err
			}
			if name == "" {
				name = path
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				CatalogPath: path,
				SkipOrder:   true,
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}

			st, err := c.snapshotStore(cmd.Context(), *mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			snap := store.NewSnapshot(name, graphio.FromGraph(result.Graph))
			if err := st.Save(cmd.Context(), snap); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}

			printSuccess("Saved snapshot %s", snap.ID)
			printDetail("name: %s", snap.Name)
			printStats(result.Stats.CourseCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name (default: catalog path)")
	return cmd
}

// snapshotListCommand creates the "snapshot list" subcommand.
func (c *CLI) snapshotListCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.snapshotStore(cmd.Context(), *mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			snaps, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots stored")
				return nil
			}
			for _, snap := range snaps {
				fmt.Printf("%s  %s  %s  %d courses\n",
					snap.ID,
					snap.CreatedAt.Format("2006-01-02 15:04"),
					snap.Name,
					len(snap.Catalog.Courses))
			}
			return nil
		},
	}
}

// snapshotDeleteCommand creates the "snapshot delete" subcommand.
func (c *CLI) snapshotDeleteCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <snapshot-id>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.snapshotStore(cmd.Context(), *mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}
