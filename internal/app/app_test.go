package app

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okatech-org/admin.ga-sub001/internal/config"
	"github.com/okatech-org/admin.ga-sub001/internal/driver"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
)

type fakeDriver struct {
	indexed bool
	closed  bool
}

func (f *fakeDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	return neo4j.EagerResult{}, nil
}

func (f *fakeDriver) BuildIndices(ctx context.Context) error {
	f.indexed = true
	return nil
}

func (f *fakeDriver) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func connectTo(d driver.GraphDriver, err error) Connector {
	return func(ctx context.Context, cfg config.MemgraphConfig, log *logrus.Logger) (driver.GraphDriver, error) {
		return d, err
	}
}

func TestBuild_FileSource(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Path = "registry.yaml"

	w, err := Build(context.Background(), cfg, logger.Discard(), connectTo(nil, errors.New("unused")))
	require.NoError(t, err)
	assert.Equal(t, "file", w.Registry.Source.Name())
	assert.Nil(t, w.Registry.Sink)
	assert.NoError(t, w.Close(context.Background()))
}

func TestBuild_Memgraph(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Source = config.SourceMemgraph
	fake := &fakeDriver{}

	w, err := Build(context.Background(), cfg, logger.Discard(), connectTo(fake, nil))
	require.NoError(t, err)
	assert.True(t, fake.indexed)
	assert.Equal(t, "memgraph", w.Registry.Source.Name())
	assert.NotNil(t, w.Registry.Sink)

	g, err := w.GraphFor(context.Background(), cfg, logger.Discard(), connectTo(nil, errors.New("unused")))
	require.NoError(t, err)
	assert.Same(t, w.Graph, g)

	require.NoError(t, w.Close(context.Background()))
	assert.True(t, fake.closed)
}

func TestBuild_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Source = config.SourceMemgraph
	_, err := Build(context.Background(), cfg, logger.Discard(), connectTo(nil, errors.New("refused")))
	assert.EqualError(t, err, "refused")

	cfg.Snapshot.Source = "ftp"
	_, err = Build(context.Background(), cfg, logger.Discard(), nil)
	assert.Error(t, err)
}
