package consistency

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okatech-org/admin.ga-sub001/internal/core/common"
	"github.com/okatech-org/admin.ga-sub001/internal/core/dedupe"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Analyze inspects the snapshot for structural anomalies and computes
// aggregate statistics. Broken hierarchies are reported, never rejected, and
// the input is left untouched.
func Analyze(entities []model.EntityRecord) model.ConsistencyReport {
	snap := common.NewSnapshot(entities)

	report := model.ConsistencyReport{
		Orphans:         FindOrphans(snap),
		Cycles:          FindCycles(snap),
		LevelInversions: FindLevelInversions(snap),
		DuplicateIDs:    nonNil(snap.Dedupe.Duplicates),
		DuplicateCodes:  nonNil(dedupe.Codes(snap.Entities)),
		BlankIDs:        nonNil(snap.Dedupe.Blank),
		Statistics:      ComputeStatistics(snap),
	}
	report.Consistent = len(report.Orphans) == 0 && len(report.Cycles) == 0
	return report
}

// FindOrphans lists every entity whose ParentID is set but does not resolve.
func FindOrphans(snap *common.Snapshot) []model.Orphan {
	orphans := []model.Orphan{}
	for _, e := range snap.Entities {
		if e.HasParent() && !snap.Has(e.ParentID) {
			orphans = append(orphans, model.Orphan{EntityID: e.ID, MissingParentID: e.ParentID})
		}
	}
	return orphans
}

// FindCycles walks each entity's parent chain once. A walk that comes back to
// an id on its own path closes a cycle; a walk that reaches an id finished by
// an earlier walk stops, so shared ancestors are never mistaken for loops and
// each cycle is reported once.
func FindCycles(snap *common.Snapshot) []model.Cycle {
	cycles := []model.Cycle{}
	visited := mapset.NewThreadUnsafeSet[string]()

	for _, start := range snap.Entities {
		if visited.Contains(start.ID) {
			continue
		}

		var path []string
		inProgress := make(map[string]int)
		current, ok := start, true

		for ok {
			if visited.Contains(current.ID) {
				break
			}
			if idx, onPath := inProgress[current.ID]; onPath {
				cycle := make(model.Cycle, 0, len(path)-idx+1)
				cycle = append(cycle, path[idx:]...)
				cycle = append(cycle, current.ID)
				cycles = append(cycles, cycle)
				break
			}
			inProgress[current.ID] = len(path)
			path = append(path, current.ID)
			current, ok = snap.Parent(current)
		}

		for _, id := range path {
			visited.Add(id)
		}
	}
	return cycles
}

// FindLevelInversions flags children whose level does not exceed their
// parent's. Self-parents are left to FindCycles.
func FindLevelInversions(snap *common.Snapshot) []model.LevelInversion {
	inversions := []model.LevelInversion{}
	for _, e := range snap.Entities {
		parent, ok := snap.Parent(e)
		if !ok || parent.ID == e.ID {
			continue
		}
		if e.Level <= parent.Level {
			inversions = append(inversions, model.LevelInversion{
				ChildID:     e.ID,
				ParentID:    parent.ID,
				ChildLevel:  e.Level,
				ParentLevel: parent.Level,
			})
		}
	}
	return inversions
}

func ComputeStatistics(snap *common.Snapshot) model.Statistics {
	stats := model.Statistics{
		ByGroup: make(map[model.Group]int),
		ByLevel: make(map[int]int),
		ByType:  make(map[model.EntityType]int),
	}
	groups := mapset.NewThreadUnsafeSet[model.Group]()
	cities := mapset.NewThreadUnsafeSet[string]()

	for _, e := range snap.Entities {
		if e.Group == "" {
			stats.ByGroup[model.GroupUnspecified]++
		} else {
			stats.ByGroup[e.Group]++
			groups.Add(e.Group)
		}
		stats.ByLevel[e.Level]++
		if e.Type != "" {
			stats.ByType[e.Type]++
		}
		if e.IsPrincipal {
			stats.PrincipalCount++
		}
		if e.City != "" {
			cities.Add(e.City)
		}
	}

	// Distinct counts ignore records that leave the attribute blank.
	stats.DistinctGroups = groups.Cardinality()
	stats.DistinctLevels = len(stats.ByLevel)
	stats.DistinctCities = cities.Cardinality()
	return stats
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
