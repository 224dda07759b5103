package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okatech-org/admin.ga-sub001/internal/core/coretest"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

func TestClassify_Precedence(t *testing.T) {
	d := NewDeriver()

	tests := []struct {
		name  string
		child model.EntityRecord
		want  model.RelationType
		rule  string
	}{
		{"internal division beats top tier", model.EntityRecord{Type: model.TypeGeneralSecretariat, Group: model.GroupMinistries}, model.RelationAttachment, "internal_division"},
		{"cabinet", model.EntityRecord{Type: model.TypeCabinet}, model.RelationAttachment, "internal_division"},
		{"general directorate beats prefecture group", model.EntityRecord{Type: model.TypeGeneralDirectorate, Group: model.GroupMinistries}, model.RelationSupervision, "general_directorate"},
		{"general inspectorate", model.EntityRecord{Type: model.TypeGeneralInspectorate}, model.RelationSupervision, "general_directorate"},
		{"prefecture beats top tier", model.EntityRecord{Type: model.TypePrefecture, Group: model.GroupMinistries}, model.RelationCoordination, "prefecture"},
		{"governorate", model.EntityRecord{Type: model.TypeGovernorate, Group: model.GroupTerritorialAdministrations}, model.RelationCoordination, "prefecture"},
		{"ministry group", model.EntityRecord{Type: model.TypeMinistry, Group: model.GroupMinistries}, model.RelationSupervision, "top_tier"},
		{"unknown type in top tier", model.EntityRecord{Type: "bureau", Group: model.GroupMinistries}, model.RelationSupervision, "top_tier"},
		{"default", model.EntityRecord{Type: model.TypeAgency, Group: model.GroupPublicEstablishments}, model.RelationAttachment, "default"},
		{"missing type and group", model.EntityRecord{}, model.RelationAttachment, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := d.Classify(tt.child)
			assert.Equal(t, tt.want, rule.Type)
			assert.Equal(t, tt.rule, rule.Name)
			assert.NotEmpty(t, rule.Description)
		})
	}
}

func TestDeriveRelations_Registry(t *testing.T) {
	relations := DeriveRelations(coretest.Registry())

	require.Len(t, relations, 9)
	assert.Equal(t, model.Relation{
		ParentID:    "PR",
		ChildID:     "PM",
		Type:        model.RelationAttachment,
		Level:       1,
		Description: DefaultRule.Description,
	}, relations[0])

	byChild := make(map[string]model.Relation)
	for _, r := range relations {
		byChild[r.ChildID] = r
	}
	assert.Equal(t, model.RelationSupervision, byChild["MINT"].Type)
	assert.Equal(t, model.RelationAttachment, byChild["SG-MINT"].Type)
	assert.Equal(t, model.RelationSupervision, byChild["DGDI"].Type)
	assert.Equal(t, model.RelationCoordination, byChild["GOV-HO"].Type)
	assert.Equal(t, model.RelationCoordination, byChild["PREF-PASSA"].Type)
	assert.Equal(t, model.RelationAttachment, byChild["CHU-LBV"].Type)
	assert.Equal(t, 4, byChild["PREF-PASSA"].Level)
}

func TestDeriveRelations_OneTuplePerResolvableParent(t *testing.T) {
	entities := coretest.Broken()
	relations := DeriveRelations(entities)

	pairs := make(map[model.Edge]int)
	for _, r := range relations {
		pairs[r.Edge()]++
	}
	for edge, count := range pairs {
		assert.Equal(t, 1, count, "pair %v", edge)
	}

	// 9 registry links, CYC-A, CYC-B, CYC-CHILD and the SELF loop; the
	// orphan yields nothing.
	assert.Len(t, relations, 13)
	assert.Contains(t, pairs, model.Edge{ParentID: "SELF", ChildID: "SELF"})
	assert.NotContains(t, pairs, model.Edge{ParentID: "MISSING", ChildID: "DIR-X"})
	// The duplicate MSAN record carries no parent and is ignored anyway.
	assert.Equal(t, 1, pairs[model.Edge{ParentID: "PM", ChildID: "MSAN"}])
}

func TestDeriveRelations_NoParents(t *testing.T) {
	assert.Empty(t, DeriveRelations([]model.EntityRecord{{ID: "P"}}))
	assert.Empty(t, DeriveRelations(nil))
}

func TestNewDeriver_CustomRules(t *testing.T) {
	d := NewDeriver(Rule{
		Name:        "embassy",
		Type:        model.RelationCoordination,
		Description: "Diplomatic mission",
		Match:       func(c model.EntityRecord) bool { return c.Type == model.TypeEmbassy },
	})

	relations := d.Derive([]model.EntityRecord{
		{ID: "MAE", Type: model.TypeMinistry},
		{ID: "AMB-FR", Type: model.TypeEmbassy, ParentID: "MAE"},
		{ID: "DG", Type: model.TypeGeneralDirectorate, ParentID: "MAE"},
	})

	require.Len(t, relations, 2)
	assert.Equal(t, model.RelationCoordination, relations[0].Type)
	// Only the custom table applies, so the general directorate falls back.
	assert.Equal(t, model.RelationAttachment, relations[1].Type)
	assert.Equal(t, DefaultRule.Description, relations[1].Description)
}
