package model

import (
	"strings"
	"time"
)

// FilterAny is the preference filter value that imposes no constraint on a
// key. The other accepted values are PrefYes and PrefNo.
const FilterAny = "any"

// SizeFilter bounds the requested ticket range, in millions. A zero on either
// side means unbounded on that side.
type SizeFilter struct {
	MinInvestment float64 `json:"minInvestment"`
	MaxInvestment float64 `json:"maxInvestment"`
}

// Unbounded reports whether the filter constrains neither side.
func (f SizeFilter) Unbounded() bool {
	return f.MinInvestment <= 0 && f.MaxInvestment <= 0
}

// Strategy is a saved, named combination of tri-state preference filters, a
// ticket-size range, and optional country constraints. Strategies are created
// and edited outside the engine; the engine only ever reads a fully formed
// value.
type Strategy struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	PreferenceFilters map[string]string `json:"preferenceFilters"`
	SizeFilter        SizeFilter        `json:"sizeFilter"`
	Countries         []string          `json:"countries,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// NormalizeFilterValue canonicalizes a stored or requested filter value.
// "Y"/"N" in any case become the exact markers; everything else, including
// empty strings and unknown values, degrades to "any" rather than failing.
func NormalizeFilterValue(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case PrefYes:
		return PrefYes
	case PrefNo:
		return PrefNo
	default:
		return FilterAny
	}
}
