// Package crm loads raw relationship-management records from the flat-file
// store and exposes them, category by category, to the matching engine.
package crm

import (
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// CapitalPartner is a capital provider organization as stored in
// capital_partners.json. Investment bounds are the partner's own appetite.
type CapitalPartner struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Firm          string            `json:"firm,omitempty"`
	Country       string            `json:"country,omitempty"`
	Headquarters  string            `json:"headquarters,omitempty"`
	InvestmentMin model.FlexAmount  `json:"investment_min"`
	InvestmentMax model.FlexAmount  `json:"investment_max"`
	Relationship  string            `json:"relationship,omitempty"`
	Preferences   map[string]string `json:"preferences,omitempty"`
}

// CapitalPartnerTeam is a team or mandate under a capital partner, as stored
// in capital_partner_teams.json. Ticket bounds come from the mandate itself;
// parent identity is resolved through PartnerID at normalization time.
type CapitalPartnerTeam struct {
	ID           string            `json:"id"`
	PartnerID    string            `json:"partner_id"`
	Name         string            `json:"name"`
	TicketMin    model.FlexAmount  `json:"ticket_min"`
	TicketMax    model.FlexAmount  `json:"ticket_max"`
	Relationship string            `json:"relationship,omitempty"`
	Preferences  map[string]string `json:"preferences,omitempty"`
}

// Sponsor is a deal sponsor as stored in sponsors.json. Need bounds describe
// the financing the sponsor is seeking, not an investment appetite.
type Sponsor struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Company      string            `json:"company,omitempty"`
	Country      string            `json:"country,omitempty"`
	NeedMin      model.FlexAmount  `json:"need_min"`
	NeedMax      model.FlexAmount  `json:"need_max"`
	Relationship string            `json:"relationship,omitempty"`
	Preferences  map[string]string `json:"preferences,omitempty"`
}

// Agent is a placement or advisory agent as stored in agents.json.
type Agent struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Firm         string            `json:"firm,omitempty"`
	AgentType    string            `json:"agent_type,omitempty"`
	Country      string            `json:"country,omitempty"`
	Relationship string            `json:"relationship,omitempty"`
	Preferences  map[string]string `json:"preferences,omitempty"`
}

// Counsel is a legal counsel contact as stored in counsel.json.
type Counsel struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Firm         string            `json:"firm,omitempty"`
	Country      string            `json:"country,omitempty"`
	Relationship string            `json:"relationship,omitempty"`
	Preferences  map[string]string `json:"preferences,omitempty"`
}

// Dataset bundles one immutable snapshot of all five categories. It is read
// fresh for every matching request and never mutated during evaluation.
type Dataset struct {
	CapitalPartners []CapitalPartner
	Teams           []CapitalPartnerTeam
	Sponsors        []Sponsor
	Agents          []Agent
	Counsel         []Counsel
}

// Size returns the total record count across all categories.
func (d *Dataset) Size() int {
	return len(d.CapitalPartners) + len(d.Teams) + len(d.Sponsors) +
		len(d.Agents) + len(d.Counsel)
}
