package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// GraphSource reads entity snapshots from (:AdminEntity) nodes and writes
// derived relations back as [:REPORTS_TO] edges.
type GraphSource struct {
	Driver GraphDriver
	Logger *logrus.Logger
}

func NewGraphSource(driver GraphDriver, log *logrus.Logger) *GraphSource {
	return &GraphSource{Driver: driver, Logger: log}
}

func (s *GraphSource) Name() string {
	return "memgraph"
}

func (s *GraphSource) LoadEntities(ctx context.Context) ([]model.EntityRecord, error) {
	res, err := s.Driver.ExecuteQuery(ctx, LoadEntitiesQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entities")
	}

	entities := make([]model.EntityRecord, 0, len(res.Records))
	for _, rec := range res.Records {
		entities = append(entities, recordToEntity(rec))
	}
	s.Logger.WithField("entities", len(entities)).Debug("Loaded snapshot from graph")
	return entities, nil
}

// SaveEntities upserts entity nodes by id.
func (s *GraphSource) SaveEntities(ctx context.Context, entities []model.EntityRecord) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	rows := make([]map[string]interface{}, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, map[string]interface{}{
			"id":                 e.ID,
			"code":               e.Code,
			"name":               e.Name,
			"type":               string(e.Type),
			"group":              string(e.Group),
			"hierarchical_level": int64(e.Level),
			"parent_id":          nullable(e.ParentID),
			"is_principal":       e.IsPrincipal,
			"city":               nullable(e.City),
			"province":           nullable(e.Province),
			"phone":              nullable(e.Phone),
			"email":              nullable(e.Email),
		})
	}

	res, err := s.Driver.ExecuteQuery(ctx, SaveEntitiesQuery, map[string]interface{}{"entities": rows})
	if err != nil {
		return 0, errors.Wrap(err, "failed to save entities")
	}
	return writtenCount(res), nil
}

// SaveRelations merges one REPORTS_TO edge per relation. Pairs whose
// endpoints are missing from the graph are skipped by the query.
func (s *GraphSource) SaveRelations(ctx context.Context, relations []model.Relation) (int, error) {
	if len(relations) == 0 {
		return 0, nil
	}
	rows := make([]map[string]interface{}, 0, len(relations))
	for _, r := range relations {
		rows = append(rows, map[string]interface{}{
			"parent_id":     r.ParentID,
			"child_id":      r.ChildID,
			"relation_type": string(r.Type),
			"level":         int64(r.Level),
			"description":   r.Description,
		})
	}

	res, err := s.Driver.ExecuteQuery(ctx, SaveRelationsQuery, map[string]interface{}{"relations": rows})
	if err != nil {
		return 0, errors.Wrap(err, "failed to save relations")
	}

	written := writtenCount(res)
	if written < len(relations) {
		s.Logger.WithFields(logrus.Fields{
			"derived": len(relations),
			"written": written,
		}).Warn("Some relations reference entities missing from the graph")
	}
	return written, nil
}

func recordToEntity(rec *neo4j.Record) model.EntityRecord {
	return model.EntityRecord{
		ID:          stringValue(rec, "id"),
		Code:        stringValue(rec, "code"),
		Name:        stringValue(rec, "name"),
		Type:        model.EntityType(stringValue(rec, "type")),
		Group:       model.Group(stringValue(rec, "group")),
		Level:       intValue(rec, "hierarchical_level"),
		ParentID:    stringValue(rec, "parent_id"),
		IsPrincipal: boolValue(rec, "is_principal"),
		City:        stringValue(rec, "city"),
		Province:    stringValue(rec, "province"),
		Phone:       stringValue(rec, "phone"),
		Email:       stringValue(rec, "email"),
	}
}

func stringValue(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func intValue(rec *neo4j.Record, key string) int {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func boolValue(rec *neo4j.Record, key string) bool {
	v, _ := rec.Get(key)
	b, _ := v.(bool)
	return b
}

func writtenCount(res neo4j.EagerResult) int {
	if len(res.Records) == 0 {
		return 0
	}
	return intValue(res.Records[0], "written")
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
