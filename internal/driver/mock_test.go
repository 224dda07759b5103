package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/okatech-org/admin.ga-sub001/internal/logger"
)

type MockDriver struct {
	Queries     []string
	QueryParams map[string]interface{}
	MockResult  neo4j.EagerResult
	Err         error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return createIndices(ctx, m, logger.Discard())
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
