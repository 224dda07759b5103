package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okatech-org/admin.ga-sub001/internal/app"
	"github.com/okatech-org/admin.ga-sub001/internal/config"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
)

type cli struct {
	configPath   string
	snapshotPath string
	output       string
	connect      app.Connector
}

// newRootCmd builds the command tree. A nil connector dials Memgraph.
func newRootCmd(connect app.Connector) *cobra.Command {
	if connect == nil {
		connect = app.ConnectMemgraph
	}
	c := &cli{connect: connect}

	root := &cobra.Command{
		Use:   "registryctl",
		Short: "Analyze the hierarchy of the administrative entity registry",
		Long: `registryctl builds the organizational forest of the administrative
registry, derives typed parent-child relations and reports structural
anomalies such as orphan references and parent cycles.

The snapshot is read from --snapshot, or from the source configured in
config.toml when the flag is absent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(c.output)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "config/config.toml", "path to the TOML configuration")
	flags.StringVarP(&c.snapshotPath, "snapshot", "s", "", "snapshot file (.yaml, .json or .toml)")
	flags.StringVarP(&c.output, "output", "o", formatJSON, "output format: json or yaml")

	root.AddCommand(
		c.reportCmd(),
		c.checkCmd(),
		c.forestCmd(),
		c.relationsCmd(),
		c.traversalCmd("ancestors", "List the parent chain of an entity, nearest first"),
		c.traversalCmd("descendants", "List every entity below an entity, breadth-first"),
		c.filterCmd(),
		c.importCmd(),
		c.publishCmd(),
	)
	return root
}

type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	wiring *app.Wiring
}

func (s *session) Close(ctx context.Context) {
	_ = s.wiring.Close(ctx)
}

// open resolves the configuration and wires the registry. The --snapshot flag
// overrides the configured source.
func (c *cli) open(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.snapshotPath != "" {
		cfg.Snapshot.Source = config.SourceFile
		cfg.Snapshot.Path = c.snapshotPath
	}

	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	wiring, err := app.Build(cmd.Context(), cfg, log, c.connect)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot source")
	}
	return &session{cfg: cfg, log: log, wiring: wiring}, nil
}
