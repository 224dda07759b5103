package query

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/okatech-org/admin.ga-sub001/internal/core/common"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// DescendantsOf returns every entity reachable from id by following child
// links, breadth-first in input order. The entity itself is never included,
// even when a cycle leads back to it.
func DescendantsOf(id string, entities []model.EntityRecord) ([]model.EntityRecord, error) {
	snap, err := lookup(id, entities)
	if err != nil {
		return nil, err
	}

	result := []model.EntityRecord{}
	visited := mapset.NewThreadUnsafeSet[string](id)
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, childID := range snap.Children(current) {
			if !visited.Add(childID) {
				continue
			}
			child, _ := snap.Get(childID)
			result = append(result, child)
			queue = append(queue, childID)
		}
	}
	return result, nil
}

// AncestorsOf returns the parent chain of id, nearest first. The walk ends at
// the first unresolved ParentID or as soon as an id repeats, so it terminates
// on cyclic data.
func AncestorsOf(id string, entities []model.EntityRecord) ([]model.EntityRecord, error) {
	snap, err := lookup(id, entities)
	if err != nil {
		return nil, err
	}

	result := []model.EntityRecord{}
	seen := mapset.NewThreadUnsafeSet[string](id)
	current, _ := snap.Get(id)

	for {
		parent, ok := snap.Parent(current)
		if !ok || !seen.Add(parent.ID) {
			break
		}
		result = append(result, parent)
		current = parent
	}
	return result, nil
}

// FilterEntities returns the entities matching every supplied predicate, in
// input order.
func FilterEntities(entities []model.EntityRecord, criteria model.Criteria) ([]model.EntityRecord, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	snap := common.NewSnapshot(entities)
	result := []model.EntityRecord{}
	for _, e := range snap.Entities {
		if criteria.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// FindByCode returns the first entity carrying code.
func FindByCode(entities []model.EntityRecord, code string) (model.EntityRecord, error) {
	if code == "" {
		return model.EntityRecord{}, errors.Wrap(model.ErrInvalidCriteria, "code is required")
	}
	for _, e := range common.NewSnapshot(entities).Entities {
		if e.Code == code {
			return e, nil
		}
	}
	return model.EntityRecord{}, errors.Wrapf(model.ErrEntityNotFound, "code %q", code)
}

func lookup(id string, entities []model.EntityRecord) (*common.Snapshot, error) {
	if id == "" {
		return nil, errors.Wrap(model.ErrInvalidCriteria, "id is required")
	}
	snap := common.NewSnapshot(entities)
	if !snap.Has(id) {
		return nil, errors.Wrapf(model.ErrEntityNotFound, "id %q", id)
	}
	return snap, nil
}
