package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/meridian-advisory/dealmatch/internal/crm"
	"github.com/meridian-advisory/dealmatch/internal/match"
	"github.com/meridian-advisory/dealmatch/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			path = "dealmatch.db"
		}
		return store.NewSQLite(path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initEngine() (*match.Engine, error) {
	keys, err := cfg.Matching.PreferenceKeys()
	if err != nil {
		return nil, err
	}
	return match.NewEngine(keys), nil
}

func initSource() crm.Source {
	return crm.NewFileSource(cfg.CRM.DataDir)
}

// parsePreferenceFlags turns repeated "key=Y" / "key=N" / "key=any" flag
// values into a filter map.
func parsePreferenceFlags(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(values))
	for _, v := range values {
		key, val, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, eris.Errorf("invalid preference filter %q (want key=Y|N|any)", v)
		}
		filters[key] = strings.TrimSpace(val)
	}
	return filters, nil
}

// splitAndTrim splits a comma-separated flag value, dropping empty entries.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
