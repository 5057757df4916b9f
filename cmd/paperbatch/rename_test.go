// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameConfig_WriteLogPrecedence(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { _ = renameCmd.Flags().Set("no-log", "false") })

	// Default: the YAML rename log is written.
	assert.True(t, renameConfig(renameCmd).WriteLog)

	// The config key disables it.
	viper.Set("rename.write_log", false)
	assert.False(t, renameConfig(renameCmd).WriteLog)

	// And can enable it explicitly.
	viper.Set("rename.write_log", true)
	assert.True(t, renameConfig(renameCmd).WriteLog)

	// --no-log wins over the config key.
	require.NoError(t, renameCmd.Flags().Set("no-log", "true"))
	assert.False(t, renameConfig(renameCmd).WriteLog)
}
