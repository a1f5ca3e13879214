package match

import (
	"fmt"
	"strings"

	"github.com/meridian-advisory/dealmatch/internal/crm"
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// Normalizer converts raw CRM records into InvestmentProfiles. The preference
// key catalog is injected so normalization and filtering agree on the set of
// matchable keys.
type Normalizer struct {
	keys []string
}

// NewNormalizer creates a Normalizer with the given preference key catalog.
func NewNormalizer(keys []string) *Normalizer {
	return &Normalizer{keys: keys}
}

// Normalize maps every record in the dataset to a profile, in category order
// and within each category in discovery order. Records missing an id or name
// are skipped; the skip count is returned for the caller to log. That is a
// data-quality condition, not an error.
func (n *Normalizer) Normalize(ds *crm.Dataset) ([]model.InvestmentProfile, int) {
	profiles := make([]model.InvestmentProfile, 0, ds.Size())
	skipped := 0

	partnerNames := make(map[string]string, len(ds.CapitalPartners))
	for i := range ds.CapitalPartners {
		if p := &ds.CapitalPartners[i]; p.ID != "" {
			partnerNames[p.ID] = p.Name
		}
	}

	add := func(p model.InvestmentProfile, ok bool) {
		if !ok {
			skipped++
			return
		}
		profiles = append(profiles, p)
	}

	for i := range ds.CapitalPartners {
		add(n.normalizeCapitalPartner(&ds.CapitalPartners[i]))
	}
	for i := range ds.Teams {
		add(n.normalizeTeam(&ds.Teams[i], partnerNames))
	}
	for i := range ds.Sponsors {
		add(n.normalizeSponsor(&ds.Sponsors[i]))
	}
	for i := range ds.Agents {
		add(n.normalizeAgent(&ds.Agents[i]))
	}
	for i := range ds.Counsel {
		add(n.normalizeCounsel(&ds.Counsel[i]))
	}

	return profiles, skipped
}

func (n *Normalizer) normalizeCapitalPartner(r *crm.CapitalPartner) (model.InvestmentProfile, bool) {
	if r.ID == "" || r.Name == "" {
		return model.InvestmentProfile{}, false
	}
	min, max := ticketBounds(r.InvestmentMin.Ptr(), r.InvestmentMax.Ptr())
	return model.InvestmentProfile{
		ProfileID:        profileID(model.CategoryCapitalPartner, r.ID),
		Category:         model.CategoryCapitalPartner,
		EntityID:         r.ID,
		Name:             r.Name,
		OrganizationName: r.Firm,
		TicketMin:        min,
		TicketMax:        max,
		Preferences:      n.normalizePreferences(r.Preferences),
		Relationship:     model.Relationship(r.Relationship),
		Metadata:         metadata(map[string]string{"country": r.Country, "headquarters": r.Headquarters}),
	}, true
}

func (n *Normalizer) normalizeTeam(r *crm.CapitalPartnerTeam, partnerNames map[string]string) (model.InvestmentProfile, bool) {
	if r.ID == "" || r.Name == "" {
		return model.InvestmentProfile{}, false
	}
	min, max := ticketBounds(r.TicketMin.Ptr(), r.TicketMax.Ptr())
	return model.InvestmentProfile{
		ProfileID:          profileID(model.CategoryCapitalPartnerTeam, r.ID),
		Category:           model.CategoryCapitalPartnerTeam,
		EntityID:           r.ID,
		Name:               r.Name,
		OrganizationName:   partnerNames[r.PartnerID],
		TicketMin:          min,
		TicketMax:          max,
		Preferences:        n.normalizePreferences(r.Preferences),
		Relationship:       model.Relationship(r.Relationship),
		CapitalPartnerID:   r.PartnerID,
		CapitalPartnerName: partnerNames[r.PartnerID],
	}, true
}

// normalizeSponsor reuses the ticket shape for the sponsor's financing need
// so the pairing engine can intersect appetite and need ranges uniformly.
func (n *Normalizer) normalizeSponsor(r *crm.Sponsor) (model.InvestmentProfile, bool) {
	if r.ID == "" || r.Name == "" {
		return model.InvestmentProfile{}, false
	}
	min, max := ticketBounds(r.NeedMin.Ptr(), r.NeedMax.Ptr())
	return model.InvestmentProfile{
		ProfileID:        profileID(model.CategorySponsor, r.ID),
		Category:         model.CategorySponsor,
		EntityID:         r.ID,
		Name:             r.Name,
		OrganizationName: r.Company,
		TicketMin:        min,
		TicketMax:        max,
		Preferences:      n.normalizePreferences(r.Preferences),
		Relationship:     model.Relationship(r.Relationship),
		Metadata:         metadata(map[string]string{"country": r.Country}),
	}, true
}

func (n *Normalizer) normalizeAgent(r *crm.Agent) (model.InvestmentProfile, bool) {
	if r.ID == "" || r.Name == "" {
		return model.InvestmentProfile{}, false
	}
	return model.InvestmentProfile{
		ProfileID:        profileID(model.CategoryAgent, r.ID),
		Category:         model.CategoryAgent,
		EntityID:         r.ID,
		Name:             r.Name,
		OrganizationName: r.Firm,
		Preferences:      n.normalizePreferences(r.Preferences),
		Relationship:     model.Relationship(r.Relationship),
		Metadata:         metadata(map[string]string{"country": r.Country, "agent_type": r.AgentType}),
	}, true
}

func (n *Normalizer) normalizeCounsel(r *crm.Counsel) (model.InvestmentProfile, bool) {
	if r.ID == "" || r.Name == "" {
		return model.InvestmentProfile{}, false
	}
	return model.InvestmentProfile{
		ProfileID:        profileID(model.CategoryCounsel, r.ID),
		Category:         model.CategoryCounsel,
		EntityID:         r.ID,
		Name:             r.Name,
		OrganizationName: r.Firm,
		Preferences:      n.normalizePreferences(r.Preferences),
		Relationship:     model.Relationship(r.Relationship),
		Metadata:         metadata(map[string]string{"country": r.Country}),
	}, true
}

// profileID derives the run-unique identifier from category + entity id.
func profileID(cat model.Category, entityID string) string {
	return fmt.Sprintf("%s:%s", cat, entityID)
}

// ticketBounds drops both bounds when they are inverted: an inverted range
// carries no meaningful signal and must not act as a constraint.
func ticketBounds(min, max *float64) (*float64, *float64) {
	if min != nil && max != nil && *min > *max {
		return nil, nil
	}
	return min, max
}

// normalizePreferences keeps only cataloged keys carrying an explicit yes or
// no marker, case-insensitively. Everything else is unset and therefore
// absent from the result.
func (n *Normalizer) normalizePreferences(raw map[string]string) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var prefs map[string]string
	for _, key := range n.keys {
		switch strings.ToUpper(strings.TrimSpace(raw[key])) {
		case model.PrefYes:
			if prefs == nil {
				prefs = make(map[string]string)
			}
			prefs[key] = model.PrefYes
		case model.PrefNo:
			if prefs == nil {
				prefs = make(map[string]string)
			}
			prefs[key] = model.PrefNo
		}
	}
	return prefs
}

// metadata drops empty values so profiles don't carry blank display fields.
func metadata(kv map[string]string) map[string]string {
	var m map[string]string
	for k, v := range kv {
		if v == "" {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[k] = v
	}
	return m
}
