package match

import (
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// Request is the logical matching request accepted at the API boundary. A
// saved strategy can be referenced by id, or the filters supplied inline.
// Malformed numeric bounds degrade to zero (unbounded) rather than failing
// the request.
type Request struct {
	StrategyID        string            `json:"strategy_id,omitempty"`
	PreferenceFilters map[string]string `json:"preferenceFilters,omitempty"`
	TicketRange       TicketRange       `json:"ticketRange,omitempty"`
	CountryFilters    []string          `json:"countryFilters,omitempty"`
}

// TicketRange is the requested investment-size window, in millions.
type TicketRange struct {
	MinInvestment model.FlexAmount `json:"minInvestment"`
	MaxInvestment model.FlexAmount `json:"maxInvestment"`
	Unit          string           `json:"unit,omitempty"`
}

// Strategy converts an inline request into an unsaved strategy value.
func (r *Request) Strategy() model.Strategy {
	return model.Strategy{
		Name:              "ad hoc",
		PreferenceFilters: r.PreferenceFilters,
		SizeFilter: model.SizeFilter{
			MinInvestment: r.TicketRange.MinInvestment.Float(),
			MaxInvestment: r.TicketRange.MaxInvestment.Float(),
		},
		Countries: r.CountryFilters,
	}
}
