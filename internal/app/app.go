// Package app builds the snapshot source and relation sink selected by the
// configuration. Both binaries share it.
package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/okatech-org/admin.ga-sub001/internal/config"
	"github.com/okatech-org/admin.ga-sub001/internal/core"
	"github.com/okatech-org/admin.ga-sub001/internal/driver"
	"github.com/okatech-org/admin.ga-sub001/internal/snapshot"
)

// Connector opens a graph driver. Tests replace it to avoid a live database.
type Connector func(ctx context.Context, cfg config.MemgraphConfig, log *logrus.Logger) (driver.GraphDriver, error)

func ConnectMemgraph(ctx context.Context, cfg config.MemgraphConfig, log *logrus.Logger) (driver.GraphDriver, error) {
	return driver.NewMemgraphDriver(ctx, cfg.URI, cfg.User, cfg.Password, log)
}

// Wiring holds the registry together with the driver it owns, if any.
type Wiring struct {
	Registry *core.Registry
	Graph    *driver.GraphSource
	driver   driver.GraphDriver
}

// Build creates the registry for cfg. The file source has no sink; the
// memgraph source doubles as the relation sink.
func Build(ctx context.Context, cfg *config.Config, log *logrus.Logger, connect Connector) (*Wiring, error) {
	switch cfg.Snapshot.Source {
	case config.SourceFile:
		src := snapshot.NewFileSource(cfg.Snapshot.Path)
		return &Wiring{Registry: core.NewRegistry(src, nil, log)}, nil

	case config.SourceMemgraph:
		d, err := connect(ctx, cfg.Memgraph, log)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(ctx); err != nil {
			_ = d.Close(ctx)
			return nil, errors.Wrap(err, "failed to build indices")
		}
		graph := driver.NewGraphSource(d, log)
		return &Wiring{
			Registry: core.NewRegistry(graph, graph, log),
			Graph:    graph,
			driver:   d,
		}, nil
	}
	return nil, errors.Errorf("unknown snapshot source %q", cfg.Snapshot.Source)
}

// GraphFor returns a graph source for cfg regardless of the configured
// snapshot source, reusing the open driver when there is one.
func (w *Wiring) GraphFor(ctx context.Context, cfg *config.Config, log *logrus.Logger, connect Connector) (*driver.GraphSource, error) {
	if w.Graph != nil {
		return w.Graph, nil
	}
	d, err := connect(ctx, cfg.Memgraph, log)
	if err != nil {
		return nil, err
	}
	w.driver = d
	w.Graph = driver.NewGraphSource(d, log)
	return w.Graph, nil
}

func (w *Wiring) Close(ctx context.Context) error {
	if w.driver == nil {
		return nil
	}
	return w.driver.Close(ctx)
}
