package dedupe

import (
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Codes reports human-readable codes carried by more than one entity.
// Entities without a code are ignored.
func Codes(entities []model.EntityRecord) []model.DuplicateCode {
	byCode := make(map[string][]string)
	var order []string

	for _, e := range entities {
		if e.Code == "" {
			continue
		}
		ids := byCode[e.Code]
		if len(ids) == 1 {
			order = append(order, e.Code)
		}
		byCode[e.Code] = append(ids, e.ID)
	}

	var dups []model.DuplicateCode
	for _, code := range order {
		dups = append(dups, model.DuplicateCode{Code: code, EntityIDs: byCode[code]})
	}
	return dups
}
