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

	for _, name := range []string{"aggregate", "validate", "report", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ssot-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestAggregateCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"input", "sheet", "intents", "country", "out", "csv", "no-snapshot"} {
		flag := aggregateCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "aggregate should have --%s flag", flagName)
	}
}

func TestValidateCommand_Flags(t *testing.T) {
	flag := validateCmd.Flags().Lookup("input")
	require.NotNil(t, flag, "validate command should have --input flag")
}

func TestReportCommand_Flags(t *testing.T) {
	flag := reportCmd.Flags().Lookup("id")
	require.NotNil(t, flag, "report command should have --id flag")
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
