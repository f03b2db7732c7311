package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg, v := NormalizeAndValidate(Default())
	assert.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, "F", cfg.Criteria.PriorityPlate)
	assert.Contains(t, cfg.Keywords.Include, "avanza")
}

func TestNormalizeCleansLists(t *testing.T) {
	cfg := Default()
	cfg.Keywords.Include = []string{" Avanza ", "AVANZA", "", "veloz"}
	cfg.Criteria.PriorityPlate = " f "
	cfg.Criteria.Transmission = " Manual "

	out, v := NormalizeAndValidate(cfg)
	require.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, []string{"avanza", "veloz"}, out.Keywords.Include)
	assert.Equal(t, "F", out.Criteria.PriorityPlate)
	assert.Equal(t, "manual", out.Criteria.Transmission)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cfg := Default()
	cfg.Criteria.YearMin = 2022
	cfg.Criteria.YearMax = 2019
	cfg.Criteria.PriceMin = 200_000_000
	cfg.Criteria.PriceMax = 100_000_000

	_, v := NormalizeAndValidate(cfg)
	assert.False(t, v.OK())
	assert.Len(t, v.Errors, 2)
}

func TestValidateRejectsOverlappingKeywords(t *testing.T) {
	cfg := Default()
	cfg.Keywords.Exclude = append(cfg.Keywords.Exclude, "avanza")

	_, v := NormalizeAndValidate(cfg)
	assert.False(t, v.OK())
}

func TestValidateRejectsEnabledSourceWithoutURL(t *testing.T) {
	cfg := Default()
	cfg.Sources.OLX.SearchURL = "  "

	_, v := NormalizeAndValidate(cfg)
	assert.False(t, v.OK())
}

func TestValidateRejectsNoSources(t *testing.T) {
	cfg := Default()
	cfg.Sources.OLX.Enabled = false
	cfg.Sources.Mobil123.Enabled = false
	cfg.Sources.Carmudi.Enabled = false
	cfg.Sources.Jualo.Enabled = false

	_, v := NormalizeAndValidate(cfg)
	assert.False(t, v.OK())
}

func TestValidateWarnsOnAggressiveInterval(t *testing.T) {
	cfg := Default()
	cfg.Polling.IntervalSeconds = 10

	_, v := NormalizeAndValidate(cfg)
	assert.True(t, v.OK())
	assert.NotEmpty(t, v.Warnings)
}

func TestEnsureUserConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)

	// A second call must not overwrite the user's file.
	require.NoError(t, os.WriteFile(path, []byte("polling:\n  interval_seconds: 999\n"), 0o644))
	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	kept, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 999, kept.Polling.IntervalSeconds)
}
