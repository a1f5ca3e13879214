package match

import (
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// Counts reports the number of matched profiles per category.
type Counts struct {
	CapitalPartners     int `json:"capital_partners"`
	CapitalPartnerTeams int `json:"capital_partner_teams"`
	Sponsors            int `json:"sponsors"`
	Agents              int `json:"agents"`
	Counsel             int `json:"counsel"`
}

// Results carries the matched profiles per category, in discovery order.
type Results struct {
	CapitalPartners     []model.InvestmentProfile `json:"capital_partners"`
	CapitalPartnerTeams []model.InvestmentProfile `json:"capital_partner_teams"`
	Sponsors            []model.InvestmentProfile `json:"sponsors"`
	Agents              []model.InvestmentProfile `json:"agents,omitempty"`
	Counsel             []model.InvestmentProfile `json:"counsel,omitempty"`
}

// Pairings is the cross-category output, keyed by sponsor.
type Pairings struct {
	BySponsor []SponsorPairing `json:"by_sponsor"`
}

// Response is the full matching contract: per-category counts and result
// sets plus sponsor-centric pairings. Message is set only on failure, and a
// failed response never carries partial results.
type Response struct {
	Success  bool     `json:"success"`
	Counts   Counts   `json:"counts"`
	Results  Results  `json:"results"`
	Pairings Pairings `json:"pairings"`
	Message  string   `json:"message,omitempty"`
}

// Failure builds the envelope returned when an upstream collaborator is
// unavailable.
func Failure(msg string) *Response {
	return &Response{Success: false, Message: msg}
}
