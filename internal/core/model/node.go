package model

// Node is one entity placed in the forest together with the children
// attached beneath it.
type Node struct {
	Entity   EntityRecord `json:"entity"`
	Depth    int          `json:"depth"`
	Children []*Node      `json:"children,omitempty"`
}

// Forest is the set of independent trees built from a snapshot.
// Detached lists the ids promoted to roots because their parent reference
// was unresolved or part of a cycle.
type Forest struct {
	Roots    []*Node  `json:"roots"`
	Detached []string `json:"detached,omitempty"`
}

// Walk visits every node depth-first in child order. Returning false from fn
// skips the node's children.
func (f Forest) Walk(fn func(n *Node) bool) {
	for _, r := range f.Roots {
		walk(r, fn)
	}
}

func walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Count returns the number of nodes in the forest.
func (f Forest) Count() int {
	count := 0
	f.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// MaxDepth returns the depth of the deepest node, or -1 for an empty forest.
func (f Forest) MaxDepth() int {
	maxDepth := -1
	f.Walk(func(n *Node) bool {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
		return true
	})
	return maxDepth
}

// Find returns the node holding the entity with the given id.
func (f Forest) Find(id string) (*Node, bool) {
	var found *Node
	f.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Entity.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
