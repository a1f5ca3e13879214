package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Manage saved matching strategies",
}

// -- strategies list --

var strategiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved strategies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		list, err := st.ListStrategies(ctx)
		if err != nil {
			return eris.Wrap(err, "strategies list")
		}

		if len(list) == 0 {
			fmt.Fprintln(os.Stderr, "No strategies saved.")
			return nil
		}

		formatStrategyList(os.Stdout, list)
		return nil
	},
}

// -- strategies create --

var (
	strategyName      string
	strategyPrefFlags []string
	strategyMin       float64
	strategyMax       float64
	strategyCountries string
)

var strategiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Save a new strategy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		filters, err := parsePreferenceFlags(strategyPrefFlags)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		created, err := st.CreateStrategy(ctx, model.Strategy{
			Name:              strategyName,
			PreferenceFilters: filters,
			SizeFilter:        model.SizeFilter{MinInvestment: strategyMin, MaxInvestment: strategyMax},
			Countries:         splitAndTrim(strategyCountries),
		})
		if err != nil {
			return eris.Wrap(err, "strategies create")
		}

		zap.L().Info("strategy created",
			zap.String("id", created.ID),
			zap.String("name", created.Name),
		)
		fmt.Println(created.ID)
		return nil
	},
}

// -- strategies show --

var strategiesShowCmd = &cobra.Command{
	Use:   "show <strategy-id>",
	Short: "Show a strategy as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		s, err := st.GetStrategy(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "strategies show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

// -- strategies delete --

var strategiesDeleteCmd = &cobra.Command{
	Use:   "delete <strategy-id>",
	Short: "Delete a saved strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := st.DeleteStrategy(ctx, args[0]); err != nil {
			return eris.Wrap(err, "strategies delete")
		}

		zap.L().Info("strategy deleted", zap.String("id", args[0]))
		return nil
	},
}

func formatStrategyList(out io.Writer, list []model.Strategy) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tFILTERS\tSIZE\tCOUNTRIES\tCREATED")
	for _, s := range list {
		size := "open"
		if !s.SizeFilter.Unbounded() {
			size = fmt.Sprintf("%g-%g", s.SizeFilter.MinInvestment, s.SizeFilter.MaxInvestment)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			s.ID, s.Name, len(s.PreferenceFilters), size,
			len(s.Countries), s.CreatedAt.Format("2006-01-02"),
		)
	}
	_ = w.Flush()
}

func init() {
	strategiesCreateCmd.Flags().StringVar(&strategyName, "name", "", "strategy name (required)")
	strategiesCreateCmd.Flags().StringArrayVar(&strategyPrefFlags, "prefer", nil, "preference filter, key=Y|N|any (repeatable)")
	strategiesCreateCmd.Flags().Float64Var(&strategyMin, "min", 0, "minimum investment size in millions")
	strategiesCreateCmd.Flags().Float64Var(&strategyMax, "max", 0, "maximum investment size in millions")
	strategiesCreateCmd.Flags().StringVar(&strategyCountries, "countries", "", "comma-separated country filter")
	_ = strategiesCreateCmd.MarkFlagRequired("name")

	strategiesCmd.AddCommand(strategiesListCmd, strategiesCreateCmd, strategiesShowCmd, strategiesDeleteCmd)
	rootCmd.AddCommand(strategiesCmd)
}
