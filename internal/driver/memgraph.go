package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	Logger *logrus.Logger
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string, log *logrus.Logger) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create driver for %s", uri)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrapf(err, "failed to connect to %s", uri)
	}

	log.WithField("uri", uri).Info("Connected to Memgraph")
	return &MemgraphDriver{Driver: driver, Logger: log}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, errors.Wrap(err, "failed to execute query")
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	return createIndices(ctx, d, d.Logger)
}

type queryExecutor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
}

// createIndices runs every index statement. Failures are logged and skipped
// because Memgraph rejects an index that already exists.
func createIndices(ctx context.Context, exec queryExecutor, log *logrus.Logger) error {
	for _, q := range IndexQueries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := exec.ExecuteQuery(ctx, q, nil); err != nil {
			log.WithError(err).WithField("query", q).Warn("Failed to create index")
		}
	}
	return nil
}
