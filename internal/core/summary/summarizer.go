package summary

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okatech-org/admin.ga-sub001/internal/core/common"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Summarize computes the headline counters of a snapshot. Blank cities,
// provinces and groups are not counted as distinct values.
func Summarize(entities []model.EntityRecord) model.Summary {
	snap := common.NewSnapshot(entities)

	levels := mapset.NewThreadUnsafeSet[int]()
	groups := mapset.NewThreadUnsafeSet[model.Group]()
	cities := mapset.NewThreadUnsafeSet[string]()
	provinces := mapset.NewThreadUnsafeSet[string]()

	s := model.Summary{TotalEntities: snap.Len()}
	for _, e := range snap.Entities {
		if e.IsPrincipal {
			s.PrincipalEntities++
		}
		if snap.IsRoot(e) {
			s.RootCount++
		}
		levels.Add(e.Level)
		if e.Group != "" {
			groups.Add(e.Group)
		}
		if e.City != "" {
			cities.Add(e.City)
		}
		if e.Province != "" {
			provinces.Add(e.Province)
		}
	}

	s.DistinctLevels = levels.Cardinality()
	s.DistinctGroups = groups.Cardinality()
	s.DistinctCities = cities.Cardinality()
	s.DistinctProvinces = provinces.Cardinality()
	return s
}
