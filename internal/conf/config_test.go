package conf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	// Run from an empty directory so no carnet.yaml is picked up.
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	settings, err := Load()
	require.NoError(t, err)

	assert.False(t, settings.Debug)
	assert.Equal(t, "clients.db", settings.Main.Path)
	assert.Equal(t, "archive.db", settings.Archive.Path)
	assert.Equal(t, "exports/", settings.Export.Path)
	assert.True(t, settings.Log.Enabled)
}
