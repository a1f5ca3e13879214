package match

import (
	"strings"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

// Matches reports whether a single profile satisfies the strategy: a strict
// AND over the non-"any" preference filters, the size-overlap test, and the
// optional country constraint. There is no partial-match score.
func (e *Engine) Matches(p *model.InvestmentProfile, s *model.Strategy) bool {
	return e.matchesPreferences(p, s) &&
		matchesSize(p, s.SizeFilter) &&
		matchesCountry(p, s.Countries)
}

// matchesPreferences enforces every cataloged key the strategy constrains.
// "Y" matches only an explicit "Y", "N" only an explicit "N"; an unset
// profile value fails either. Filter keys outside the catalog are ignored:
// profiles can never carry them, so enforcing them would exclude everything.
func (e *Engine) matchesPreferences(p *model.InvestmentProfile, s *model.Strategy) bool {
	for _, key := range e.keys {
		raw, ok := s.PreferenceFilters[key]
		if !ok {
			continue
		}
		want := model.NormalizeFilterValue(raw)
		if want == model.FilterAny {
			continue
		}
		if p.Preferences[key] != want {
			return false
		}
	}
	return true
}

// matchesSize is an overlap test, not an exact-bound test: the profile's own
// range must intersect the requested range. A strategy asking for 10–50
// matches a profile whose range is 5–100. A profile missing the bound a
// constrained side needs fails that side; a fully unbounded filter passes
// everything.
func matchesSize(p *model.InvestmentProfile, f model.SizeFilter) bool {
	if f.MinInvestment > 0 {
		if p.TicketMax == nil || *p.TicketMax < f.MinInvestment {
			return false
		}
	}
	if f.MaxInvestment > 0 {
		if p.TicketMin == nil || *p.TicketMin > f.MaxInvestment {
			return false
		}
	}
	return true
}

// matchesCountry requires membership in the strategy's country list,
// case-insensitively. An empty list imposes no constraint.
func matchesCountry(p *model.InvestmentProfile, countries []string) bool {
	if len(countries) == 0 {
		return true
	}
	have := p.Country()
	for _, want := range countries {
		if strings.EqualFold(strings.TrimSpace(want), have) {
			return true
		}
	}
	return false
}
