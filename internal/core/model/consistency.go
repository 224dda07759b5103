package model

// Orphan is an entity whose declared parent does not resolve.
type Orphan struct {
	EntityID        string `json:"entity_id"`
	MissingParentID string `json:"missing_parent_id"`
}

// Cycle is a closed parent chain; the first and last ids are equal.
type Cycle []string

// LevelInversion flags a child whose hierarchical level does not exceed its
// parent's. It does not affect the consistency verdict.
type LevelInversion struct {
	ChildID     string `json:"child_id"`
	ParentID    string `json:"parent_id"`
	ChildLevel  int    `json:"child_level"`
	ParentLevel int    `json:"parent_level"`
}

type Statistics struct {
	ByGroup        map[Group]int      `json:"by_group"`
	ByLevel        map[int]int        `json:"by_level"`
	ByType         map[EntityType]int `json:"by_type"`
	PrincipalCount int                `json:"principal_count"`
	DistinctGroups int                `json:"distinct_groups"`
	DistinctLevels int                `json:"distinct_levels"`
	DistinctCities int                `json:"distinct_cities"`
}

type ConsistencyReport struct {
	Consistent      bool             `json:"consistent"`
	Orphans         []Orphan         `json:"orphans"`
	Cycles          []Cycle          `json:"cycles"`
	LevelInversions []LevelInversion `json:"level_inversions"`
	DuplicateIDs    []DuplicateID    `json:"duplicate_ids"`
	DuplicateCodes  []DuplicateCode  `json:"duplicate_codes"`
	BlankIDs        []int            `json:"blank_ids"`
	Statistics      Statistics       `json:"statistics"`
}

// AnomalyCounts tallies every reported anomaly by kind.
func (r ConsistencyReport) AnomalyCounts() map[AnomalyKind]int {
	return map[AnomalyKind]int{
		AnomalyOrphanReference: len(r.Orphans),
		AnomalyCycleDetected:   len(r.Cycles),
		AnomalyLevelInversion:  len(r.LevelInversions),
		AnomalyDuplicateID:     len(r.DuplicateIDs),
		AnomalyDuplicateCode:   len(r.DuplicateCodes),
		AnomalyBlankID:         len(r.BlankIDs),
	}
}
