//go:build integration

package integration

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okatech-org/admin.ga-sub001/internal/core"
	"github.com/okatech-org/admin.ga-sub001/internal/core/coretest"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/driver"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
)

// prefixedSource narrows a graph snapshot to the entities of one test run.
type prefixedSource struct {
	*driver.GraphSource
	prefix string
}

func (s prefixedSource) LoadEntities(ctx context.Context) ([]model.EntityRecord, error) {
	all, err := s.GraphSource.LoadEntities(ctx)
	if err != nil {
		return nil, err
	}
	var mine []model.EntityRecord
	for _, e := range all {
		if strings.HasPrefix(e.ID, s.prefix) {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

func prefixed(prefix string, entities []model.EntityRecord) []model.EntityRecord {
	out := make([]model.EntityRecord, len(entities))
	for i, e := range entities {
		e.ID = prefix + e.ID
		if e.ParentID != "" {
			e.ParentID = prefix + e.ParentID
		}
		out[i] = e
	}
	return out
}

func TestMemgraphRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	ctx := context.Background()
	log := logger.Discard()
	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), log)
	require.NoError(t, err)
	defer d.Close(ctx)
	require.NoError(t, d.BuildIndices(ctx))

	prefix := uuid.New().String()[:8] + "-"
	t.Cleanup(func() {
		_, _ = d.ExecuteQuery(ctx, `MATCH (n:AdminEntity) WHERE n.id STARTS WITH $prefix DETACH DELETE n`,
			map[string]interface{}{"prefix": prefix})
	})

	graph := driver.NewGraphSource(d, log)
	entities := prefixed(prefix, coretest.Registry())
	written, err := graph.SaveEntities(ctx, entities)
	require.NoError(t, err)
	assert.Equal(t, len(entities), written)

	registry := core.NewRegistry(prefixedSource{GraphSource: graph, prefix: prefix}, graph, log)

	run, err := registry.Analyze(ctx)
	require.NoError(t, err)
	assert.True(t, run.Report.Consistency.Consistent)
	assert.Equal(t, 10, run.Report.Summary.TotalEntities)
	assert.Equal(t, 4, run.Report.Forest.MaxDepth())

	published, err := registry.Publish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, published)

	// Publishing twice merges the same edges.
	res, err := d.ExecuteQuery(ctx,
		`MATCH (c:AdminEntity)-[r:REPORTS_TO]->(p:AdminEntity) WHERE c.id STARTS WITH $prefix RETURN count(r) AS edges`,
		map[string]interface{}{"prefix": prefix})
	require.NoError(t, err)
	before, _ := res.Records[0].Get("edges")

	_, err = registry.Publish(ctx)
	require.NoError(t, err)
	res, err = d.ExecuteQuery(ctx,
		`MATCH (c:AdminEntity)-[r:REPORTS_TO]->(p:AdminEntity) WHERE c.id STARTS WITH $prefix RETURN count(r) AS edges`,
		map[string]interface{}{"prefix": prefix})
	require.NoError(t, err)
	after, _ := res.Records[0].Get("edges")
	assert.Equal(t, int64(9), after)
	assert.Equal(t, before, after)
}
