package model

type RelationType string

const (
	RelationAttachment   RelationType = "attachment"
	RelationSupervision  RelationType = "supervision"
	RelationCoordination RelationType = "coordination"
)

// Relation is a typed parent -> child link derived from a resolvable ParentID.
// Level is the child's hierarchical level.
type Relation struct {
	ParentID    string       `json:"parent_id" yaml:"parent_id"`
	ChildID     string       `json:"child_id" yaml:"child_id"`
	Type        RelationType `json:"relation_type" yaml:"relation_type"`
	Level       int          `json:"level" yaml:"level"`
	Description string       `json:"description" yaml:"description"`
}

func (r Relation) Edge() Edge {
	return Edge{ParentID: r.ParentID, ChildID: r.ChildID}
}

// Edge is an untyped parent -> child pair.
type Edge struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
}
