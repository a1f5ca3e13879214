package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"match", "strategies", "serve", "import"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dealmatch", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestMatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"strategy", "prefer", "min", "max", "countries", "json"} {
		require.NotNil(t, matchCmd.Flags().Lookup(name), "match command should have --%s flag", name)
	}
}

func TestImportCommand_RequiredFlags(t *testing.T) {
	require.NotNil(t, importCmd.Flags().Lookup("xlsx"))
	require.NotNil(t, importCmd.Flags().Lookup("category"))
}

func TestStrategiesCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range strategiesCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "create", "show", "delete"} {
		assert.True(t, names[name], "expected strategies subcommand %q not found", name)
	}
}
