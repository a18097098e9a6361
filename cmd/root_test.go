package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Shape verifies the root command wiring.
func TestRootCmd_Shape(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "sekretardb", rootCmd.Use)

	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{
		"init", "status", "health", "repair", "reset",
	} {
		assert.Contains(t, names, want)
	}
}

// TestGetInitCmd_Flags verifies the init command flags.
func TestGetInitCmd_Flags(t *testing.T) {
	cmd := getInitCmd()
	require.NotNil(t, cmd)

	assert.NotNil(t, cmd.Flags().Lookup("force"))
	assert.NotNil(t, cmd.Flags().Lookup("skip-seeding"))
}

// TestGetHealthCmd_Flags verifies the health command flags.
func TestGetHealthCmd_Flags(t *testing.T) {
	cmd := getHealthCmd()
	require.NotNil(t, cmd)

	assert.NotNil(t, cmd.Flags().Lookup("detailed"))
	assert.NotNil(t, cmd.Flags().Lookup("performance"))
}

// TestGetRepairCmd_Flags verifies the repair command flags.
func TestGetRepairCmd_Flags(t *testing.T) {
	cmd := getRepairCmd()
	require.NotNil(t, cmd)

	assert.NotNil(t, cmd.Flags().Lookup("auto-fix"))
	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
}

// TestGetResetCmd_Flags verifies the reset command flags.
func TestGetResetCmd_Flags(t *testing.T) {
	cmd := getResetCmd()
	require.NotNil(t, cmd)

	assert.NotNil(t, cmd.Flags().Lookup("confirm"))
	assert.NotNil(t, cmd.Flags().Lookup("keep-data"))
}
