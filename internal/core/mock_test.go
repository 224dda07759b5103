package core

import (
	"context"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

type MockSource struct {
	Entities []model.EntityRecord
	Err      error
	Calls    int
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) LoadEntities(ctx context.Context) ([]model.EntityRecord, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entities, nil
}

type MockSink struct {
	Saved []model.Relation
	Err   error
}

func (m *MockSink) SaveRelations(ctx context.Context, relations []model.Relation) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.Saved = append(m.Saved, relations...)
	return len(relations), nil
}
