package match

import (
	"github.com/meridian-advisory/dealmatch/internal/model"
)

// TicketOverlap is the numeric intersection of two ticket ranges. A nil
// bound on a non-empty overlap means unbounded on that side. An empty
// intersection is reported with both bounds null rather than omitted, so
// callers can tell "no computed overlap" from "not evaluated".
type TicketOverlap struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// MatchEntry pairs one matched capital-side profile with a sponsor, carrying
// enough identity for display without a second lookup.
type MatchEntry struct {
	ProfileID          string             `json:"profile_id"`
	EntityID           string             `json:"entity_id"`
	Name               string             `json:"name"`
	OrganizationName   string             `json:"organization_name,omitempty"`
	CapitalPartnerName string             `json:"capital_partner_name,omitempty"`
	TicketMin          *float64           `json:"ticket_min"`
	TicketMax          *float64           `json:"ticket_max"`
	Relationship       model.Relationship `json:"relationship,omitempty"`
	OverlapPreferences []string           `json:"overlap_preferences"`
	OverlapSize        int                `json:"overlap_size"`
	TicketOverlap      TicketOverlap      `json:"ticket_overlap"`
}

// SponsorPairing groups the capital-side matches for one sponsor.
type SponsorPairing struct {
	Sponsor             model.InvestmentProfile `json:"sponsor_profile"`
	CapitalPartners     []MatchEntry            `json:"capital_partners"`
	CapitalPartnerTeams []MatchEntry            `json:"capital_partner_teams"`
}

// buildPairings computes sponsor-centric pairings between every matched
// sponsor and every matched capital-side profile. Zero matched sponsors
// yields zero pairings, which is a valid result, not an error.
func (e *Engine) buildPairings(sponsors, partners, teams []model.InvestmentProfile) []SponsorPairing {
	pairings := make([]SponsorPairing, 0, len(sponsors))
	for i := range sponsors {
		s := &sponsors[i]
		pairings = append(pairings, SponsorPairing{
			Sponsor:             *s,
			CapitalPartners:     e.pairAgainst(s, partners),
			CapitalPartnerTeams: e.pairAgainst(s, teams),
		})
	}
	return pairings
}

// pairAgainst evaluates one sponsor against one capital-side list. A pairing
// is reported only when it is informative: at least one shared "Y" preference
// or a non-empty ticket intersection.
func (e *Engine) pairAgainst(s *model.InvestmentProfile, side []model.InvestmentProfile) []MatchEntry {
	entries := make([]MatchEntry, 0, len(side))
	for i := range side {
		c := &side[i]

		shared := e.sharedPreferences(s, c)
		overlap, nonEmpty := intersectTickets(s.TicketMin, s.TicketMax, c.TicketMin, c.TicketMax)
		if len(shared) == 0 && !nonEmpty {
			continue
		}

		entries = append(entries, MatchEntry{
			ProfileID:          c.ProfileID,
			EntityID:           c.EntityID,
			Name:               c.Name,
			OrganizationName:   c.OrganizationName,
			CapitalPartnerName: capitalPartnerName(c),
			TicketMin:          c.TicketMin,
			TicketMax:          c.TicketMax,
			Relationship:       c.Relationship,
			OverlapPreferences: shared,
			OverlapSize:        len(shared),
			TicketOverlap:      overlap,
		})
	}
	return entries
}

// sharedPreferences returns the catalog keys both profiles affirmatively mark
// "Y". A shared "N" is not a basis for pairing. Catalog order keeps the
// output deterministic across runs.
func (e *Engine) sharedPreferences(a, b *model.InvestmentProfile) []string {
	shared := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		if a.Preferences[key] == model.PrefYes && b.Preferences[key] == model.PrefYes {
			shared = append(shared, key)
		}
	}
	return shared
}

// capitalPartnerName resolves the display name of the owning partner: teams
// carry it explicitly, partners are their own organization.
func capitalPartnerName(c *model.InvestmentProfile) string {
	if c.CapitalPartnerName != "" {
		return c.CapitalPartnerName
	}
	if c.Category == model.CategoryCapitalPartner {
		return c.Name
	}
	return ""
}

// intersectTickets computes the intersection of two ranges, treating a
// missing bound as negative or positive infinity. The boolean reports
// whether the intersection is non-empty; an empty one yields null bounds.
// The operation is symmetric in its two ranges.
func intersectTickets(aMin, aMax, bMin, bMax *float64) (TicketOverlap, bool) {
	lo := maxBound(aMin, bMin)
	hi := minBound(aMax, bMax)
	if lo != nil && hi != nil && *lo > *hi {
		return TicketOverlap{}, false
	}
	return TicketOverlap{Min: lo, Max: hi}, true
}

// maxBound treats nil as -infinity and returns a copy, never an alias into a
// profile.
func maxBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return copyBound(b)
	case b == nil:
		return copyBound(a)
	case *a >= *b:
		return copyBound(a)
	default:
		return copyBound(b)
	}
}

// minBound treats nil as +infinity.
func minBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return copyBound(b)
	case b == nil:
		return copyBound(a)
	case *a <= *b:
		return copyBound(a)
	default:
		return copyBound(b)
	}
}

func copyBound(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
