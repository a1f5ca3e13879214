// Package model defines the domain types shared by the matching engine, the
// CRM profile source, and the strategy store.
package model

// Category identifies which CRM entity class a profile was normalized from.
type Category string

const (
	CategoryCapitalPartner     Category = "capital_partner"
	CategoryCapitalPartnerTeam Category = "capital_partner_team"
	CategorySponsor            Category = "sponsor"
	CategoryAgent              Category = "agent"
	CategoryCounsel            Category = "counsel"
)

// Categories lists every matchable category in canonical order.
var Categories = []Category{
	CategoryCapitalPartner,
	CategoryCapitalPartnerTeam,
	CategorySponsor,
	CategoryAgent,
	CategoryCounsel,
}

// Preference markers as stored on a normalized profile. Anything that is not
// an explicit yes or no is dropped during normalization, so absence from the
// Preferences map means "unset", which is distinct from an explicit "N".
const (
	PrefYes = "Y"
	PrefNo  = "N"
)

// Relationship is the qualitative tier attached to a CRM entity. It is used
// only for display ordering, never for matching.
type Relationship string

const (
	RelationshipStrong     Relationship = "Strong"
	RelationshipMedium     Relationship = "Medium"
	RelationshipDeveloping Relationship = "Developing"
	RelationshipCold       Relationship = "Cold"
)

// Rank returns a sortable order for the tier, Strong first. Unknown or empty
// tiers sort last.
func (r Relationship) Rank() int {
	switch r {
	case RelationshipStrong:
		return 0
	case RelationshipMedium:
		return 1
	case RelationshipDeveloping:
		return 2
	case RelationshipCold:
		return 3
	default:
		return 4
	}
}

// InvestmentProfile is the normalized, matchable view of one CRM entity.
// Profiles are rebuilt from raw records on every matching run; they have no
// persisted lifecycle.
type InvestmentProfile struct {
	ProfileID        string   `json:"profile_id"`
	Category         Category `json:"category"`
	EntityID         string   `json:"entity_id"`
	Name             string   `json:"name"`
	OrganizationName string   `json:"organization_name,omitempty"`

	// Ticket bounds in millions. For capital-side profiles this is an
	// investment appetite; for sponsors it is the stated financing need. The
	// two share one shape so the pairing engine can treat them uniformly.
	// A nil bound is open-ended.
	TicketMin *float64 `json:"ticket_min"`
	TicketMax *float64 `json:"ticket_max"`

	// Preferences holds only explicit "Y"/"N" markers for cataloged keys.
	Preferences map[string]string `json:"preferences,omitempty"`

	Relationship Relationship `json:"relationship,omitempty"`

	// Set only on capital_partner_team profiles, linking the team or mandate
	// back to its owning partner organization.
	CapitalPartnerID   string `json:"capital_partner_id,omitempty"`
	CapitalPartnerName string `json:"capital_partner_name,omitempty"`

	// Category-specific display attributes (country, headquarters, agent
	// type). The matcher consults only the country entry.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Country returns the profile's country metadata, if any.
func (p *InvestmentProfile) Country() string {
	return p.Metadata["country"]
}

// HasTicketRange reports whether at least one ticket bound is present.
func (p *InvestmentProfile) HasTicketRange() bool {
	return p.TicketMin != nil || p.TicketMax != nil
}
