package model

import "time"

type Summary struct {
	TotalEntities     int `json:"total_entities"`
	PrincipalEntities int `json:"principal_entities"`
	DistinctLevels    int `json:"distinct_levels"`
	DistinctGroups    int `json:"distinct_groups"`
	DistinctCities    int `json:"distinct_cities"`
	DistinctProvinces int `json:"distinct_provinces"`
	RootCount         int `json:"root_count"`
}

// FullReport is the aggregate produced for one snapshot.
type FullReport struct {
	Forest      Forest            `json:"forest"`
	Relations   []Relation        `json:"relations"`
	Consistency ConsistencyReport `json:"consistency"`
	Summary     Summary           `json:"summary"`
}

// AnalysisRun wraps a report with the identity of the run that produced it.
type AnalysisRun struct {
	ID          string     `json:"id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Source      string     `json:"source"`
	Report      FullReport `json:"report"`
}
