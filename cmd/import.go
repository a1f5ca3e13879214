package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-advisory/dealmatch/internal/crm"
)

var (
	importXLSXPath string
	importCategory string
	importSheet    string
)

// categoryFiles maps the --category flag to the data-directory file the
// records land in.
var categoryFiles = map[string]string{
	"capital_partners":      crm.FileCapitalPartners,
	"capital_partner_teams": crm.FileTeams,
	"sponsors":              crm.FileSponsors,
	"agents":                crm.FileAgents,
	"counsel":               crm.FileCounsel,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CRM records from a spreadsheet",
	Long:  "Reads an XLSX worksheet and writes one category record file into the CRM data directory. Column headers map to record fields; headers prefixed with \"pref:\" become preference markers.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, ok := categoryFiles[importCategory]
		if !ok {
			return eris.Errorf("unknown category %q", importCategory)
		}

		rows, err := crm.ReadXLSX(importXLSXPath, crm.XLSXOptions{SheetName: importSheet})
		if err != nil {
			return eris.Wrap(err, "import xlsx")
		}

		records, err := crm.RowsToRecords(rows)
		if err != nil {
			return eris.Wrap(err, "import xlsx")
		}

		if err := os.MkdirAll(cfg.CRM.DataDir, 0o755); err != nil {
			return eris.Wrap(err, "create data dir")
		}

		out := filepath.Join(cfg.CRM.DataDir, file)
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal records")
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return eris.Wrap(err, "write records")
		}

		zap.L().Info("import complete",
			zap.Int("records", len(records)),
			zap.String("category", importCategory),
			zap.String("file", out),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importXLSXPath, "xlsx", "", "path to XLSX file (required)")
	importCmd.Flags().StringVar(&importCategory, "category", "", "record category (required)")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "worksheet name (default first sheet)")
	_ = importCmd.MarkFlagRequired("xlsx")
	_ = importCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(importCmd)
}
