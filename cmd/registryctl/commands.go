package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okatech-org/admin.ga-sub001/internal/core"
	"github.com/okatech-org/admin.ga-sub001/internal/core/consistency"
	"github.com/okatech-org/admin.ga-sub001/internal/core/hierarchy"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/core/query"
	"github.com/okatech-org/admin.ga-sub001/internal/core/relation"
	"github.com/okatech-org/admin.ga-sub001/internal/snapshot"
)

var errInconsistent = errors.New("hierarchy is inconsistent")

// withSnapshot loads the entities and hands them to fn, whose result is
// rendered.
func (c *cli) withSnapshot(fn func(entities []model.EntityRecord, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := c.open(cmd)
		if err != nil {
			return err
		}
		defer s.Close(cmd.Context())

		entities, err := s.wiring.Registry.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		out, err := fn(entities, args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), c.output, out)
	}
}

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Analyze the snapshot and print the full report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			run, err := s.wiring.Registry.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, run)
		},
	}
}

func (c *cli) checkCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the consistency report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report model.ConsistencyReport
			run := c.withSnapshot(func(entities []model.EntityRecord, _ []string) (interface{}, error) {
				report = consistency.Analyze(entities)
				return report, nil
			})
			if err := run(cmd, args); err != nil {
				return err
			}
			if strict && !report.Consistent {
				return errors.Wrapf(errInconsistent, "%d orphans, %d cycles", len(report.Orphans), len(report.Cycles))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when orphans or cycles are found")
	return cmd
}

func (c *cli) forestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forest",
		Short: "Print the organizational forest",
		Args:  cobra.NoArgs,
		RunE: c.withSnapshot(func(entities []model.EntityRecord, _ []string) (interface{}, error) {
			return hierarchy.BuildForest(entities), nil
		}),
	}
}

func (c *cli) relationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations",
		Short: "Print the typed parent-child relations",
		Args:  cobra.NoArgs,
		RunE: c.withSnapshot(func(entities []model.EntityRecord, _ []string) (interface{}, error) {
			return relation.DeriveRelations(entities), nil
		}),
	}
}

func (c *cli) traversalCmd(name, short string) *cobra.Command {
	traverse := query.AncestorsOf
	if name == "descendants" {
		traverse = query.DescendantsOf
	}
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: c.withSnapshot(func(entities []model.EntityRecord, args []string) (interface{}, error) {
			return traverse(args[0], entities)
		}),
	}
}

func (c *cli) filterCmd() *cobra.Command {
	var (
		criteria  model.Criteria
		entType   string
		group     string
		level     int
		principal bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List the entities matching every given predicate",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.withSnapshot(func(entities []model.EntityRecord, _ []string) (interface{}, error) {
		criteria.Type = model.EntityType(entType)
		criteria.Group = model.Group(group)
		if cmd.Flags().Changed("level") {
			criteria.Level = &level
		}
		if cmd.Flags().Changed("principal") {
			criteria.IsPrincipal = &principal
		}
		return query.FilterEntities(entities, criteria)
	})

	f := cmd.Flags()
	f.StringVar(&entType, "type", "", "entity type, e.g. ministry")
	f.StringVar(&group, "group", "", "administrative group, e.g. ministries")
	f.StringVar(&criteria.City, "city", "", "city, case-insensitive")
	f.StringVar(&criteria.Province, "province", "", "province, case-insensitive")
	f.IntVar(&level, "level", 0, "hierarchical level")
	f.BoolVar(&principal, "principal", false, "principal entities only (--principal=false for the others)")
	f.StringVar(&criteria.ParentID, "parent", "", "direct parent id")
	f.StringVar(&criteria.NameContains, "name", "", "substring of the name, case-insensitive")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the --snapshot file into Memgraph as entity nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.snapshotPath == "" {
				return errors.New("import requires --snapshot")
			}
			entities, err := snapshot.Load(c.snapshotPath)
			if err != nil {
				return err
			}

			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			graph, err := s.wiring.GraphFor(cmd.Context(), s.cfg, s.log, c.connect)
			if err != nil {
				return err
			}
			written, err := graph.SaveEntities(cmd.Context(), entities)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, map[string]int{"imported": written})
		},
	}
}

func (c *cli) publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Write the derived relations to Memgraph as REPORTS_TO edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			registry := s.wiring.Registry
			if registry.Sink == nil {
				graph, err := s.wiring.GraphFor(cmd.Context(), s.cfg, s.log, c.connect)
				if err != nil {
					return err
				}
				registry.Sink = graph
			}

			written, err := registry.Publish(cmd.Context())
			if err != nil {
				if errors.Is(err, core.ErrNoSink) {
					return errors.New("publish requires a Memgraph connection")
				}
				return err
			}
			return render(cmd.OutOrStdout(), c.output, map[string]int{"published": written})
		},
	}
}
