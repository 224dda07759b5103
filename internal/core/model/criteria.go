package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("entity_type", func(fl validator.FieldLevel) bool {
		return EntityType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("entity_group", func(fl validator.FieldLevel) bool {
		return Group(fl.Field().String()).Valid()
	})
	return v
}

// Criteria holds optional filter predicates. Zero-valued fields are wildcards;
// every supplied predicate must match.
type Criteria struct {
	Type         EntityType `json:"type,omitempty" form:"type" validate:"omitempty,entity_type"`
	Group        Group      `json:"group,omitempty" form:"group" validate:"omitempty,entity_group"`
	City         string     `json:"city,omitempty" form:"city"`
	Province     string     `json:"province,omitempty" form:"province"`
	Level        *int       `json:"level,omitempty" form:"level" validate:"omitempty,min=0"`
	IsPrincipal  *bool      `json:"is_principal,omitempty" form:"is_principal"`
	ParentID     string     `json:"parent_id,omitempty" form:"parent_id"`
	NameContains string     `json:"name_contains,omitempty" form:"name_contains" validate:"omitempty,max=256"`
}

// Validate returns ErrInvalidCriteria wrapped with the first failing field.
func (c Criteria) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.Wrapf(ErrInvalidCriteria, "%s: %v fails %q", fe.Field(), fe.Value(), fe.Tag())
	}
	return errors.Wrap(ErrInvalidCriteria, err.Error())
}

// Matches reports whether e satisfies every supplied predicate. City and
// province comparisons ignore case.
func (c Criteria) Matches(e EntityRecord) bool {
	if c.Type != "" && e.Type != c.Type {
		return false
	}
	if c.Group != "" && e.Group != c.Group {
		return false
	}
	if c.City != "" && !strings.EqualFold(e.City, c.City) {
		return false
	}
	if c.Province != "" && !strings.EqualFold(e.Province, c.Province) {
		return false
	}
	if c.Level != nil && e.Level != *c.Level {
		return false
	}
	if c.IsPrincipal != nil && e.IsPrincipal != *c.IsPrincipal {
		return false
	}
	if c.ParentID != "" && e.ParentID != c.ParentID {
		return false
	}
	if c.NameContains != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(c.NameContains)) {
		return false
	}
	return true
}
