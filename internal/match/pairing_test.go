package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

func TestIntersectTickets(t *testing.T) {
	tests := []struct {
		name                   string
		aMin, aMax, bMin, bMax *float64
		wantMin, wantMax       *float64
		wantNonEmpty           bool
	}{
		{"partial overlap", fptr(10), fptr(50), fptr(30), fptr(100), fptr(30), fptr(50), true},
		{"disjoint", fptr(10), fptr(20), fptr(30), fptr(40), nil, nil, false},
		{"contained", fptr(10), fptr(100), fptr(30), fptr(40), fptr(30), fptr(40), true},
		{"single point", fptr(10), fptr(30), fptr(30), fptr(50), fptr(30), fptr(30), true},
		{"both fully unbounded", nil, nil, nil, nil, nil, nil, true},
		{"one side unbounded above", fptr(10), nil, fptr(30), fptr(100), fptr(30), fptr(100), true},
		{"one side unbounded below", nil, fptr(50), fptr(30), fptr(100), fptr(30), fptr(50), true},
		{"open overlaps everything", nil, nil, fptr(5), fptr(15), fptr(5), fptr(15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, nonEmpty := intersectTickets(tt.aMin, tt.aMax, tt.bMin, tt.bMax)
			assert.Equal(t, tt.wantNonEmpty, nonEmpty)
			assert.Equal(t, tt.wantMin, got.Min)
			assert.Equal(t, tt.wantMax, got.Max)

			// The intersection must not depend on argument order.
			swapped, swappedNonEmpty := intersectTickets(tt.bMin, tt.bMax, tt.aMin, tt.aMax)
			assert.Equal(t, nonEmpty, swappedNonEmpty)
			assert.Equal(t, got, swapped)
		})
	}
}

func TestIntersectTickets_DoesNotAliasInputs(t *testing.T) {
	aMin, aMax := fptr(10), fptr(50)
	got, nonEmpty := intersectTickets(aMin, aMax, nil, nil)
	require.True(t, nonEmpty)

	*got.Min = 999
	*got.Max = 999
	assert.Equal(t, 10.0, *aMin)
	assert.Equal(t, 50.0, *aMax)
}

func TestBuildPairings(t *testing.T) {
	e := testEngine()

	sponsor := model.InvestmentProfile{
		ProfileID: "sponsor:s1",
		Category:  model.CategorySponsor,
		EntityID:  "s1",
		Name:      "Helios Power",
		TicketMin: fptr(10),
		TicketMax: fptr(50),
		Preferences: map[string]string{
			"energy_infra": model.PrefYes,
			"real_estate":  model.PrefNo,
		},
	}
	partner := model.InvestmentProfile{
		ProfileID:    "capital_partner:p1",
		Category:     model.CategoryCapitalPartner,
		EntityID:     "p1",
		Name:         "Granite Capital",
		TicketMin:    fptr(30),
		TicketMax:    fptr(100),
		Relationship: model.RelationshipStrong,
		Preferences: map[string]string{
			"energy_infra": model.PrefYes,
			"real_estate":  model.PrefNo,
		},
	}

	pairings := e.buildPairings(
		[]model.InvestmentProfile{sponsor},
		[]model.InvestmentProfile{partner},
		nil,
	)
	require.Len(t, pairings, 1)
	require.Len(t, pairings[0].CapitalPartners, 1)
	assert.Empty(t, pairings[0].CapitalPartnerTeams)
	assert.Equal(t, "sponsor:s1", pairings[0].Sponsor.ProfileID)

	entry := pairings[0].CapitalPartners[0]
	assert.Equal(t, "capital_partner:p1", entry.ProfileID)
	assert.Equal(t, "Granite Capital", entry.CapitalPartnerName)
	// A shared "N" does not count toward the overlap.
	assert.Equal(t, []string{"energy_infra"}, entry.OverlapPreferences)
	assert.Equal(t, 1, entry.OverlapSize)
	require.NotNil(t, entry.TicketOverlap.Min)
	require.NotNil(t, entry.TicketOverlap.Max)
	assert.Equal(t, 30.0, *entry.TicketOverlap.Min)
	assert.Equal(t, 50.0, *entry.TicketOverlap.Max)
	assert.Equal(t, model.RelationshipStrong, entry.Relationship)
}

func TestPairAgainst_SkipsUninformativePairs(t *testing.T) {
	e := testEngine()

	sponsor := model.InvestmentProfile{
		ProfileID:   "sponsor:s2",
		Category:    model.CategorySponsor,
		EntityID:    "s2",
		Name:        "Meridian Roads",
		TicketMin:   fptr(10),
		TicketMax:   fptr(20),
		Preferences: map[string]string{"energy_infra": model.PrefYes},
	}
	// Disjoint ticket range and no shared "Y": must be omitted entirely.
	partner := model.InvestmentProfile{
		ProfileID:   "capital_partner:p2",
		Category:    model.CategoryCapitalPartner,
		EntityID:    "p2",
		Name:        "Latitude Partners",
		TicketMin:   fptr(30),
		TicketMax:   fptr(40),
		Preferences: map[string]string{"real_estate": model.PrefYes},
	}

	entries := e.pairAgainst(&sponsor, []model.InvestmentProfile{partner})
	assert.Empty(t, entries)
}

func TestPairAgainst_SharedPreferenceAloneSuffices(t *testing.T) {
	e := testEngine()

	sponsor := model.InvestmentProfile{
		ProfileID:   "sponsor:s3",
		Category:    model.CategorySponsor,
		EntityID:    "s3",
		Name:        "Northwind",
		TicketMin:   fptr(10),
		TicketMax:   fptr(20),
		Preferences: map[string]string{"mezzanine": model.PrefYes},
	}
	partner := model.InvestmentProfile{
		ProfileID:   "capital_partner:p3",
		Category:    model.CategoryCapitalPartner,
		EntityID:    "p3",
		Name:        "Ridgeline",
		TicketMin:   fptr(30),
		TicketMax:   fptr(40),
		Preferences: map[string]string{"mezzanine": model.PrefYes},
	}

	entries := e.pairAgainst(&sponsor, []model.InvestmentProfile{partner})
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"mezzanine"}, entries[0].OverlapPreferences)
	// Empty intersection keeps its placeholder shape.
	assert.Nil(t, entries[0].TicketOverlap.Min)
	assert.Nil(t, entries[0].TicketOverlap.Max)
}

func TestPairAgainst_TicketOverlapAloneSuffices(t *testing.T) {
	e := testEngine()

	sponsor := model.InvestmentProfile{
		ProfileID: "sponsor:s4",
		Category:  model.CategorySponsor,
		EntityID:  "s4",
		Name:      "Beacon",
		TicketMin: fptr(10),
		TicketMax: fptr(50),
	}
	partner := model.InvestmentProfile{
		ProfileID: "capital_partner:p4",
		Category:  model.CategoryCapitalPartner,
		EntityID:  "p4",
		Name:      "Causeway",
		TicketMin: fptr(40),
		TicketMax: fptr(90),
	}

	entries := e.pairAgainst(&sponsor, []model.InvestmentProfile{partner})
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].OverlapSize)
	assert.NotNil(t, entries[0].OverlapPreferences)
	assert.Empty(t, entries[0].OverlapPreferences)
	assert.Equal(t, 40.0, *entries[0].TicketOverlap.Min)
	assert.Equal(t, 50.0, *entries[0].TicketOverlap.Max)
}

func TestSharedPreferences_CatalogOrder(t *testing.T) {
	e := testEngine()

	a := model.InvestmentProfile{Preferences: map[string]string{
		"mezzanine":        model.PrefYes,
		"energy_infra":     model.PrefYes,
		"investment_grade": model.PrefYes,
	}}
	b := model.InvestmentProfile{Preferences: map[string]string{
		"investment_grade": model.PrefYes,
		"energy_infra":     model.PrefYes,
		"mezzanine":        model.PrefYes,
	}}

	for i := 0; i < 20; i++ {
		shared := e.sharedPreferences(&a, &b)
		assert.Equal(t, []string{"energy_infra", "investment_grade", "mezzanine"}, shared)
	}
}

func TestCapitalPartnerName(t *testing.T) {
	team := model.InvestmentProfile{
		Category:           model.CategoryCapitalPartnerTeam,
		Name:               "Infra Credit Desk",
		CapitalPartnerName: "Granite Capital",
	}
	assert.Equal(t, "Granite Capital", capitalPartnerName(&team))

	partner := model.InvestmentProfile{
		Category: model.CategoryCapitalPartner,
		Name:     "Granite Capital",
	}
	assert.Equal(t, "Granite Capital", capitalPartnerName(&partner))

	orphanTeam := model.InvestmentProfile{
		Category: model.CategoryCapitalPartnerTeam,
		Name:     "Unlinked Desk",
	}
	assert.Equal(t, "", capitalPartnerName(&orphanTeam))
}
