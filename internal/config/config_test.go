package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, uint8(7), cfg.BorderColour)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zx48.yaml")
	cfg := Default()
	cfg.BorderColour = 2
	cfg.DebugBreakpoint = 0x8000
	cfg.KeyMap["ArrowLeft"] = KeyMapping{Row: 3, Col: 4}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint8(2), loaded.BorderColour)
	require.Equal(t, uint16(0x8000), loaded.DebugBreakpoint)
	require.Equal(t, KeyMapping{Row: 3, Col: 4}, loaded.KeyMap["ArrowLeft"])
}

func TestOverrideBorderColourOnlyAppliesWhenSet(t *testing.T) {
	cfg := Default()
	cfg.OverrideBorderColour(5, false)
	require.Equal(t, uint8(7), cfg.BorderColour)

	cfg.OverrideBorderColour(5, true)
	require.Equal(t, uint8(5), cfg.BorderColour)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid yaml"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
