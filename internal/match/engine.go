// Package match implements the investment matching engine: normalization of
// raw CRM records into profiles, strategy filter evaluation, per-category
// result sets, and sponsor/capital-side overlap pairings.
package match

import (
	"go.uber.org/zap"

	"github.com/meridian-advisory/dealmatch/internal/crm"
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// Engine evaluates strategies against profile snapshots. It holds only the
// preference key catalog and is safe for concurrent use; every run is a pure
// function of its inputs.
type Engine struct {
	keys       []string
	normalizer *Normalizer
}

// NewEngine creates an Engine with the given preference key catalog. The
// same catalog drives normalization and filter evaluation, so the set of
// matchable keys has one source of truth.
func NewEngine(keys []string) *Engine {
	ks := make([]string, len(keys))
	copy(ks, keys)
	return &Engine{keys: ks, normalizer: NewNormalizer(ks)}
}

// Run normalizes the dataset and evaluates the strategy against it.
func (e *Engine) Run(ds *crm.Dataset, s *model.Strategy) *Response {
	profiles, skipped := e.normalizer.Normalize(ds)
	if skipped > 0 {
		zap.L().Warn("match: skipped records missing identity fields",
			zap.Int("skipped", skipped),
			zap.String("strategy", s.Name),
		)
	}
	return e.RunProfiles(profiles, s)
}

// RunProfiles evaluates the strategy against an already-normalized snapshot.
func (e *Engine) RunProfiles(profiles []model.InvestmentProfile, s *model.Strategy) *Response {
	ms := e.matchCategories(profiles, s)

	pairings := e.buildPairings(
		ms.get(model.CategorySponsor),
		ms.get(model.CategoryCapitalPartner),
		ms.get(model.CategoryCapitalPartnerTeam),
	)

	return &Response{
		Success:  true,
		Counts:   ms.counts(),
		Results:  ms.results(),
		Pairings: Pairings{BySponsor: pairings},
	}
}
