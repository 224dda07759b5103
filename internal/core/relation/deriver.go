package relation

import (
	"github.com/okatech-org/admin.ga-sub001/internal/core/common"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Rule classifies a child entity. Rules are evaluated in table order and the
// first match wins.
type Rule struct {
	Name        string
	Type        model.RelationType
	Description string
	Match       func(child model.EntityRecord) bool
}

// DefaultRules is the classification table. Order is part of the contract.
var DefaultRules = []Rule{
	{
		Name:        "internal_division",
		Type:        model.RelationAttachment,
		Description: "Internal division attached to its parent body",
		Match:       func(c model.EntityRecord) bool { return c.Type.IsInternalDivision() },
	},
	{
		Name:        "general_directorate",
		Type:        model.RelationSupervision,
		Description: "General directorate under the technical supervision of its parent",
		Match:       func(c model.EntityRecord) bool { return c.Type.IsGeneralDirectorate() },
	},
	{
		Name:        "prefecture",
		Type:        model.RelationCoordination,
		Description: "Territorial office coordinated by its parent administration",
		Match:       func(c model.EntityRecord) bool { return c.Type.IsPrefecture() },
	},
	{
		Name:        "top_tier",
		Type:        model.RelationSupervision,
		Description: "Ministry placed under the authority of its parent institution",
		Match:       func(c model.EntityRecord) bool { return c.Group == model.TopAdministrativeTier },
	},
}

// DefaultRule applies when nothing in the table matches.
var DefaultRule = Rule{
	Name:        "default",
	Type:        model.RelationAttachment,
	Description: "Attached to its parent entity",
}

type Deriver struct {
	Rules    []Rule
	Fallback Rule
}

// NewDeriver returns a deriver over rules, or over DefaultRules when none are
// given.
func NewDeriver(rules ...Rule) *Deriver {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Deriver{
		Rules:    rules,
		Fallback: DefaultRule,
	}
}

// Classify returns the first rule matching child.
func (d *Deriver) Classify(child model.EntityRecord) Rule {
	for _, r := range d.Rules {
		if r.Match != nil && r.Match(child) {
			return r
		}
	}
	return d.Fallback
}

// Derive emits one relation per entity whose ParentID resolves, in input
// order. A (parent, child) pair is never emitted twice.
func (d *Deriver) Derive(entities []model.EntityRecord) []model.Relation {
	snap := common.NewSnapshot(entities)
	relations := make([]model.Relation, 0, snap.Len())
	seen := make(map[model.Edge]struct{}, snap.Len())

	for _, child := range snap.Entities {
		parent, ok := snap.Parent(child)
		if !ok {
			continue
		}
		edge := model.Edge{ParentID: parent.ID, ChildID: child.ID}
		if _, dup := seen[edge]; dup {
			continue
		}
		seen[edge] = struct{}{}

		rule := d.Classify(child)
		relations = append(relations, model.Relation{
			ParentID:    parent.ID,
			ChildID:     child.ID,
			Type:        rule.Type,
			Level:       child.Level,
			Description: rule.Description,
		})
	}
	return relations
}

// DeriveRelations classifies with DefaultRules.
func DeriveRelations(entities []model.EntityRecord) []model.Relation {
	return NewDeriver().Derive(entities)
}
