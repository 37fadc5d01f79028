package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileUsesBuiltins(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"Electrical", "Plumbing", "Finishing", "Lighting"}, cfg.DropdownDefaults("sourcingTypes"))
	assert.Nil(t, cfg.DropdownDefaults("unknownCategory"))
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DropdownDefaults("sourcingStores"))
}

func TestLoadFileOverridesCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	content := "dropdowns:\n  sourcingTypes: [Carpentry, Masonry]\n  paymentMethods: [Cash, Check]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Carpentry", "Masonry"}, cfg.DropdownDefaults("sourcingTypes"))
	assert.Equal(t, []string{"Cash", "Check"}, cfg.DropdownDefaults("paymentMethods"))
	// Untouched categories keep their built-ins.
	assert.Contains(t, cfg.DropdownDefaults("sourcingStores"), "Wilcon Depot")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dropdowns: ["), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
