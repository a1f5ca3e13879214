package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceKeys_Default(t *testing.T) {
	keys, err := MatchingConfig{}.PreferenceKeys()
	require.NoError(t, err)
	assert.NotEmpty(t, keys)
	assert.Contains(t, keys, "energy_infra")
	assert.Contains(t, keys, "investment_grade")

	// Callers get an independent copy.
	keys[0] = "mutated"
	again, err := MatchingConfig{}.PreferenceKeys()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0])
}

func TestPreferenceKeys_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	yaml := `
preference_keys:
  - solar
  - wind
  - solar
  - "  "
  - storage
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	keys, err := MatchingConfig{KeysFile: path}.PreferenceKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"solar", "wind", "storage"}, keys)
}

func TestPreferenceKeys_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preference_keys: []\n"), 0o644))

	_, err := MatchingConfig{KeysFile: path}.PreferenceKeys()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keys")
}

func TestPreferenceKeys_MissingFile(t *testing.T) {
	_, err := MatchingConfig{KeysFile: "/nonexistent/keys.yaml"}.PreferenceKeys()
	require.Error(t, err)
}
