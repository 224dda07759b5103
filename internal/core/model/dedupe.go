package model

// DuplicateID describes an id that occurs more than once in a snapshot.
// Positions are input indexes; the first one is the record that was kept.
type DuplicateID struct {
	ID        string `json:"id"`
	Positions []int  `json:"positions"`
}

// DuplicateCode describes a human-readable code shared by several entities.
type DuplicateCode struct {
	Code      string   `json:"code"`
	EntityIDs []string `json:"entity_ids"`
}
