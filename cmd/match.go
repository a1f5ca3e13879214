package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/meridian-advisory/dealmatch/internal/match"
	"github.com/meridian-advisory/dealmatch/internal/model"
)

var (
	matchStrategyID string
	matchPrefFlags  []string
	matchMin        float64
	matchMax        float64
	matchCountries  string
	matchJSON       bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a strategy against the CRM records",
	Long:  "Evaluates a saved strategy (--strategy) or an inline one (--prefer/--min/--max/--countries) against the current CRM snapshot and prints matched profiles and sponsor pairings.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		strategy, err := resolveStrategy(cmd)
		if err != nil {
			return err
		}

		engine, err := initEngine()
		if err != nil {
			return err
		}

		ds, err := initSource().Load(ctx)
		if err != nil {
			return eris.Wrap(err, "match: load crm records")
		}

		resp := engine.Run(ds, strategy)

		if matchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		formatMatchSummary(os.Stdout, strategy, resp)
		return nil
	},
}

func resolveStrategy(cmd *cobra.Command) (*model.Strategy, error) {
	if matchStrategyID != "" {
		st, err := initStore(cmd.Context())
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(cmd.Context()); err != nil {
			return nil, err
		}
		s, err := st.GetStrategy(cmd.Context(), matchStrategyID)
		if err != nil {
			return nil, eris.Wrap(err, "match: resolve strategy")
		}
		return s, nil
	}

	filters, err := parsePreferenceFlags(matchPrefFlags)
	if err != nil {
		return nil, err
	}
	return &model.Strategy{
		Name:              "ad hoc",
		PreferenceFilters: filters,
		SizeFilter:        model.SizeFilter{MinInvestment: matchMin, MaxInvestment: matchMax},
		Countries:         splitAndTrim(matchCountries),
	}, nil
}

func formatMatchSummary(out io.Writer, s *model.Strategy, resp *match.Response) {
	pr := message.NewPrinter(language.English)

	fmt.Fprintf(out, "Strategy: %s\n", s.Name)
	fmt.Fprintf(out, "Matched: %d capital partners, %d teams, %d sponsors, %d agents, %d counsel\n\n",
		resp.Counts.CapitalPartners, resp.Counts.CapitalPartnerTeams,
		resp.Counts.Sponsors, resp.Counts.Agents, resp.Counts.Counsel)

	sections := []struct {
		title    string
		profiles []model.InvestmentProfile
	}{
		{"CAPITAL PARTNERS", resp.Results.CapitalPartners},
		{"CAPITAL PARTNER TEAMS", resp.Results.CapitalPartnerTeams},
		{"SPONSORS", resp.Results.Sponsors},
		{"AGENTS", resp.Results.Agents},
		{"COUNSEL", resp.Results.Counsel},
	}
	for _, sec := range sections {
		if len(sec.profiles) == 0 {
			continue
		}
		fmt.Fprintln(out, sec.title)
		formatProfileTable(out, pr, sec.profiles)
		fmt.Fprintln(out)
	}

	if len(resp.Pairings.BySponsor) > 0 {
		fmt.Fprintln(out, "SPONSOR PAIRINGS")
		formatPairings(out, pr, resp.Pairings.BySponsor)
	}
}

// formatProfileTable prints one category. Rows are sorted by relationship
// tier for display only; the response itself stays in discovery order.
func formatProfileTable(out io.Writer, pr *message.Printer, profiles []model.InvestmentProfile) {
	sorted := make([]model.InvestmentProfile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Relationship.Rank() < sorted[j].Relationship.Rank()
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tORGANIZATION\tTICKET\tRELATIONSHIP\tCOUNTRY")
	for _, p := range sorted {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.OrganizationName, formatTicket(pr, p.TicketMin, p.TicketMax),
			p.Relationship, p.Country())
	}
	_ = w.Flush()
}

func formatPairings(out io.Writer, pr *message.Printer, pairings []match.SponsorPairing) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, pg := range pairings {
		_, _ = fmt.Fprintf(w, "%s\t(need %s)\n",
			pg.Sponsor.Name, formatTicket(pr, pg.Sponsor.TicketMin, pg.Sponsor.TicketMax))
		for _, e := range append(pg.CapitalPartners, pg.CapitalPartnerTeams...) {
			_, _ = fmt.Fprintf(w, "  %s\t%s\toverlap %s\tshared %d\n",
				e.Name, e.CapitalPartnerName,
				formatTicket(pr, e.TicketOverlap.Min, e.TicketOverlap.Max),
				e.OverlapSize)
		}
	}
	_ = w.Flush()
}

// formatTicket renders a ticket range in millions, e.g. "$10M-$50M",
// "$25M+" for an open top end, or "open" when neither bound is set.
func formatTicket(pr *message.Printer, min, max *float64) string {
	switch {
	case min == nil && max == nil:
		return "open"
	case max == nil:
		return pr.Sprintf("$%vM+", *min)
	case min == nil:
		return pr.Sprintf("up to $%vM", *max)
	default:
		return pr.Sprintf("$%vM-$%vM", *min, *max)
	}
}

func init() {
	matchCmd.Flags().StringVar(&matchStrategyID, "strategy", "", "saved strategy id")
	matchCmd.Flags().StringArrayVar(&matchPrefFlags, "prefer", nil, "inline preference filter, key=Y|N|any (repeatable)")
	matchCmd.Flags().Float64Var(&matchMin, "min", 0, "minimum investment size in millions (0 = unbounded)")
	matchCmd.Flags().Float64Var(&matchMax, "max", 0, "maximum investment size in millions (0 = unbounded)")
	matchCmd.Flags().StringVar(&matchCountries, "countries", "", "comma-separated country filter")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "emit the full response as JSON")
	rootCmd.AddCommand(matchCmd)
}
