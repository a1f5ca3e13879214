package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// defaultPreferenceKeys is the built-in preference key catalog. It is the
// single source of truth for the keys the normalizer copies and the filter
// evaluator enforces; both receive the same slice.
var defaultPreferenceKeys = []string{
	"energy_infra",
	"renewables",
	"conventional_power",
	"real_estate",
	"infrastructure",
	"transportation",
	"digital_infra",
	"private_credit",
	"mezzanine",
	"preferred_equity",
	"common_equity",
	"investment_grade",
	"non_investment_grade",
	"construction_risk",
	"emerging_markets",
	"tax_equity",
	"project_finance",
}

// PreferenceKeys returns the preference key catalog: the built-in list, or
// the contents of KeysFile when configured.
func (c MatchingConfig) PreferenceKeys() ([]string, error) {
	if c.KeysFile == "" {
		keys := make([]string, len(defaultPreferenceKeys))
		copy(keys, defaultPreferenceKeys)
		return keys, nil
	}

	data, err := os.ReadFile(c.KeysFile)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read preference keys %s", c.KeysFile)
	}

	var wrapper struct {
		PreferenceKeys []string `yaml:"preference_keys"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "config: parse preference keys %s", c.KeysFile)
	}

	seen := make(map[string]bool, len(wrapper.PreferenceKeys))
	var keys []string
	for _, k := range wrapper.PreferenceKeys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, eris.Errorf("config: preference keys file %s defines no keys", c.KeysFile)
	}
	return keys, nil
}
