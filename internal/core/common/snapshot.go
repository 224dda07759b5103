package common

import (
	"github.com/okatech-org/admin.ga-sub001/internal/core/dedupe"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Snapshot indexes an immutable list of entity records. Every core component
// builds its own Snapshot from the caller's input; nothing is cached between
// calls.
type Snapshot struct {
	// Entities holds one record per id in input order (first-wins).
	Entities []model.EntityRecord
	Dedupe   dedupe.Result

	byID     map[string]int
	children map[string][]string
}

func NewSnapshot(entities []model.EntityRecord) *Snapshot {
	res := dedupe.FirstWins(entities)
	s := &Snapshot{
		Entities: res.Unique,
		Dedupe:   res,
		byID:     make(map[string]int, len(res.Unique)),
		children: make(map[string][]string),
	}
	for i, e := range s.Entities {
		s.byID[e.ID] = i
	}
	for _, e := range s.Entities {
		if e.HasParent() {
			s.children[e.ParentID] = append(s.children[e.ParentID], e.ID)
		}
	}
	return s
}

func (s *Snapshot) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *Snapshot) Get(id string) (model.EntityRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.EntityRecord{}, false
	}
	return s.Entities[i], true
}

// Children returns the ids whose ParentID equals id, in input order. The
// returned slice must not be modified.
func (s *Snapshot) Children(id string) []string {
	return s.children[id]
}

// Parent returns the entity e's ParentID resolves to, if any.
func (s *Snapshot) Parent(e model.EntityRecord) (model.EntityRecord, bool) {
	if !e.HasParent() {
		return model.EntityRecord{}, false
	}
	return s.Get(e.ParentID)
}

// IsRoot reports whether e has no parent or an unresolved one.
func (s *Snapshot) IsRoot(e model.EntityRecord) bool {
	return !e.HasParent() || !s.Has(e.ParentID)
}

func (s *Snapshot) Len() int {
	return len(s.Entities)
}
