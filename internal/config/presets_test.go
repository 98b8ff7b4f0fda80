package config

import (
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rufio-sh/rufio-hooks/internal/checks"
)

func TestBuiltinPresets_Exist(t *testing.T) {
	for _, name := range []string{"cargo", "pnpm", "meow", "ledger", "terraform"} {
		_, ok := BuiltinPreset(name)
		assert.True(t, ok, "missing builtin preset %q", name)
	}
	assert.Len(t, BuiltinPresetNames(), 5)
}

func TestBuiltinPreset_Unknown(t *testing.T) {
	_, ok := BuiltinPreset("nonexistent")
	assert.False(t, ok)
}

func TestBuiltinPreset_Cargo(t *testing.T) {
	cs, ok := BuiltinPreset("cargo")
	require.True(t, ok)
	require.Len(t, cs, 2)

	assert.Equal(t, "cargo-checks", cs[0].Name)
	assert.Equal(t, "**/*.rs", cs[0].When.PathsChanged)
	assert.Equal(t, checks.CommandsRequired{Patterns: []string{"cargo test", "cargo fmt", "cargo clippy"}}, cs[0].Then)

	assert.Equal(t, "cargo-version-bump", cs[1].Name)
	assert.Equal(t, "package.nix", cs[1].When.PathExists)
	assert.Equal(t, checks.PathsRequired{Paths: []string{"version.toml"}}, cs[1].Then)
}

func TestBuiltinPresets_SatisfyCheckInvariants(t *testing.T) {
	for _, name := range BuiltinPresetNames() {
		cs, ok := BuiltinPreset(name)
		require.True(t, ok)
		require.NotEmpty(t, cs, "preset %q has no checks", name)
		for _, c := range cs {
			assert.NotEmpty(t, c.Name, "preset %q has a check without a name", name)
			assert.NotEmpty(t, c.When.PathsChanged, "preset %q check %q has no trigger pattern", name, c.Name)
			assert.True(t, checks.ValidPattern(c.When.PathsChanged), "preset %q check %q has an invalid trigger pattern", name, c.Name)
			assert.NotNil(t, c.Then, "preset %q check %q has no action", name, c.Name)
		}
	}
}

func TestPresetPath_HonorsXDGConfigHome(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()

	path := PresetPath("cargo")
	assert.Contains(t, path, configHome)
	assert.Contains(t, path, "rufio")
	assert.Contains(t, path, "cargo.yaml")
}
