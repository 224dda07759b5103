package hierarchy

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okatech-org/admin.ga-sub001/internal/core/common"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// BuildForest assembles the entity snapshot into trees. Every entity appears
// exactly once: entities with no parent or an unresolved one become roots,
// and entities trapped in parent cycles are promoted to roots in input order.
// Broken references never cause a failure.
func BuildForest(entities []model.EntityRecord) model.Forest {
	return build(common.NewSnapshot(entities))
}

func build(snap *common.Snapshot) model.Forest {
	forest := model.Forest{Roots: []*model.Node{}}
	placed := mapset.NewThreadUnsafeSet[string]()

	for _, e := range snap.Entities {
		if !snap.IsRoot(e) {
			continue
		}
		if e.HasParent() {
			forest.Detached = append(forest.Detached, e.ID)
		}
		forest.Roots = append(forest.Roots, attach(snap, e, 0, placed))
	}

	// Whatever is left hangs off a cycle and has no natural root.
	for _, e := range snap.Entities {
		if placed.Contains(e.ID) {
			continue
		}
		forest.Detached = append(forest.Detached, e.ID)
		forest.Roots = append(forest.Roots, attach(snap, e, 0, placed))
	}

	return forest
}

func attach(snap *common.Snapshot, e model.EntityRecord, depth int, placed mapset.Set[string]) *model.Node {
	placed.Add(e.ID)
	node := &model.Node{Entity: e, Depth: depth}
	for _, childID := range snap.Children(e.ID) {
		if placed.Contains(childID) {
			continue
		}
		child, _ := snap.Get(childID)
		node.Children = append(node.Children, attach(snap, child, depth+1, placed))
	}
	return node
}

// Edges returns the parent -> child pairs materialized by the forest, in
// depth-first order.
func Edges(forest model.Forest) []model.Edge {
	var edges []model.Edge
	forest.Walk(func(n *model.Node) bool {
		for _, c := range n.Children {
			edges = append(edges, model.Edge{ParentID: n.Entity.ID, ChildID: c.Entity.ID})
		}
		return true
	})
	return edges
}

// Flatten turns a forest back into records whose ParentID follows the forest
// edges. Roots lose any parent reference they carried.
func Flatten(forest model.Forest) []model.EntityRecord {
	var out []model.EntityRecord
	var visit func(n *model.Node, parentID string)
	visit = func(n *model.Node, parentID string) {
		e := n.Entity
		e.ParentID = parentID
		out = append(out, e)
		for _, c := range n.Children {
			visit(c, e.ID)
		}
	}
	for _, r := range forest.Roots {
		visit(r, "")
	}
	return out
}

// BuildFromRelations rebuilds a forest using relations as the only source of
// parent links. Entity ParentID values are ignored; a child named by several
// relations keeps the first one.
func BuildFromRelations(entities []model.EntityRecord, relations []model.Relation) model.Forest {
	parents := make(map[string]string, len(relations))
	for _, r := range relations {
		if _, ok := parents[r.ChildID]; !ok {
			parents[r.ChildID] = r.ParentID
		}
	}

	rewired := make([]model.EntityRecord, len(entities))
	for i, e := range entities {
		e.ParentID = parents[e.ID]
		rewired[i] = e
	}
	return BuildForest(rewired)
}
