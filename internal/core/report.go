package core

import (
	"github.com/okatech-org/admin.ga-sub001/internal/core/consistency"
	"github.com/okatech-org/admin.ga-sub001/internal/core/hierarchy"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/core/relation"
	"github.com/okatech-org/admin.ga-sub001/internal/core/summary"
)

// GenerateReport derives the forest, relations, consistency report and
// summary from one snapshot. Each part is computed independently from the
// same input and nothing is cached.
func GenerateReport(entities []model.EntityRecord) model.FullReport {
	return model.FullReport{
		Forest:      hierarchy.BuildForest(entities),
		Relations:   relation.DeriveRelations(entities),
		Consistency: consistency.Analyze(entities),
		Summary:     summary.Summarize(entities),
	}
}
