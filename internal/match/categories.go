package match

import (
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// matchedSet holds the per-category outcome of one filter pass.
type matchedSet struct {
	byCategory map[model.Category][]model.InvestmentProfile
}

// matchCategories applies the filter evaluator across every profile, category
// by category. Within each category, discovery order is preserved; display
// sorting is a presentation concern, not a matching contract.
func (e *Engine) matchCategories(profiles []model.InvestmentProfile, s *model.Strategy) *matchedSet {
	ms := &matchedSet{
		byCategory: make(map[model.Category][]model.InvestmentProfile, len(model.Categories)),
	}
	for i := range profiles {
		p := &profiles[i]
		if e.Matches(p, s) {
			ms.byCategory[p.Category] = append(ms.byCategory[p.Category], *p)
		}
	}
	return ms
}

func (ms *matchedSet) get(cat model.Category) []model.InvestmentProfile {
	return ms.byCategory[cat]
}

func (ms *matchedSet) counts() Counts {
	return Counts{
		CapitalPartners:     len(ms.byCategory[model.CategoryCapitalPartner]),
		CapitalPartnerTeams: len(ms.byCategory[model.CategoryCapitalPartnerTeam]),
		Sponsors:            len(ms.byCategory[model.CategorySponsor]),
		Agents:              len(ms.byCategory[model.CategoryAgent]),
		Counsel:             len(ms.byCategory[model.CategoryCounsel]),
	}
}

func (ms *matchedSet) results() Results {
	return Results{
		CapitalPartners:     orEmpty(ms.byCategory[model.CategoryCapitalPartner]),
		CapitalPartnerTeams: orEmpty(ms.byCategory[model.CategoryCapitalPartnerTeam]),
		Sponsors:            orEmpty(ms.byCategory[model.CategorySponsor]),
		Agents:              orEmpty(ms.byCategory[model.CategoryAgent]),
		Counsel:             orEmpty(ms.byCategory[model.CategoryCounsel]),
	}
}

// orEmpty keeps the response contract's lists non-null.
func orEmpty(list []model.InvestmentProfile) []model.InvestmentProfile {
	if list == nil {
		return []model.InvestmentProfile{}
	}
	return list
}
