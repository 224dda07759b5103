package dedupe

import (
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Result is a snapshot reduced to one record per id under the first-wins
// policy, along with everything that was set aside.
type Result struct {
	Unique     []model.EntityRecord
	Duplicates []model.DuplicateID
	// Blank holds the input positions of records without an id.
	Blank []int
}

// FirstWins keeps the first record seen for each id, in input order. Later
// records with the same id are reported and ignored. The input is not
// modified.
func FirstWins(entities []model.EntityRecord) Result {
	res := Result{Unique: make([]model.EntityRecord, 0, len(entities))}
	positions := make(map[string][]int)
	var order []string

	for i, e := range entities {
		if e.ID == "" {
			res.Blank = append(res.Blank, i)
			continue
		}
		seen, exists := positions[e.ID]
		positions[e.ID] = append(seen, i)
		if exists {
			if len(seen) == 1 {
				order = append(order, e.ID)
			}
			continue
		}
		res.Unique = append(res.Unique, e)
	}

	for _, id := range order {
		res.Duplicates = append(res.Duplicates, model.DuplicateID{
			ID:        id,
			Positions: positions[id],
		})
	}
	return res
}
