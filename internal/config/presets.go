package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/rufio-sh/rufio-hooks/internal/checks"
)

// builtinPresets is the fixed catalogue of named check bundles that a
// configuration document can reference by name. Entries are program-defined
// and trusted: they bypass the validation applied to user-declared checks,
// so their invariants are asserted once at construction instead.
var builtinPresets = newBuiltinPresets()

func newBuiltinPresets() map[string][]checks.Check {
	presets := map[string][]checks.Check{
		"cargo": {
			{
				Name: "cargo-checks",
				When: checks.When{PathsChanged: "**/*.rs"},
				Then: checks.CommandsRequired{Patterns: []string{"cargo test", "cargo fmt", "cargo clippy"}},
			},
			{
				Name: "cargo-version-bump",
				When: checks.When{PathsChanged: "**/*.rs", PathExists: "package.nix"},
				Then: checks.PathsRequired{Paths: []string{"version.toml"}},
			},
		},
		"pnpm": {
			{
				Name: "pnpm-checks",
				When: checks.When{PathsChanged: "**/*.ts"},
				Then: checks.CommandsRequired{Patterns: []string{"pnpm lint", "pnpm typecheck", "pnpm test"}},
			},
			{
				Name: "pnpm-version-bump",
				When: checks.When{PathsChanged: "**/*.ts", PathExists: "package.nix"},
				Then: checks.PathsRequired{Paths: []string{"version.toml"}},
			},
		},
		"meow": {
			{
				Name: "meow-fmt",
				When: checks.When{PathsChanged: "**/*.md"},
				Then: checks.CommandsRequired{Patterns: []string{"meow fmt"}},
			},
		},
		"ledger": {
			{
				Name: "ledger-checks",
				When: checks.When{PathsChanged: "**/*.ledger"},
				Then: checks.CommandsRequired{Patterns: []string{"hledger check", "folio validate"}},
			},
		},
		"terraform": {
			{
				Name: "terraform-checks",
				When: checks.When{PathsChanged: "**/*.tf"},
				Then: checks.CommandsRequired{Patterns: []string{"tofu fmt", "tflint", "trivy config ."}},
			},
		},
	}

	for name, cs := range presets {
		for _, c := range cs {
			if c.Name == "" || c.When.PathsChanged == "" || c.Then == nil {
				panic(fmt.Sprintf("builtin preset %q contains an invalid check", name))
			}
		}
	}

	return presets
}

// BuiltinPreset returns the checks of a built-in preset bundle.
func BuiltinPreset(name string) ([]checks.Check, bool) {
	cs, ok := builtinPresets[name]
	return cs, ok
}

// BuiltinPresetNames returns the names of all built-in preset bundles.
func BuiltinPresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	return names
}

// PresetPath returns the expected location of an external preset file:
// <config-home>/rufio/presets/<name>.yaml, where config-home honors
// $XDG_CONFIG_HOME and falls back to $HOME/.config.
func PresetPath(name string) string {
	return filepath.Join(xdg.ConfigHome, appDirName, "presets", name+".yaml")
}

// loadExternalPreset reads a user-supplied preset document. A missing file is
// not an error; the caller decides whether an unresolved preset is fatal.
// External preset checks are trusted like built-ins and not validated.
func loadExternalPreset(name string) ([]checks.Check, bool, error) {
	path := PresetPath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}

	var parsed presetFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, false, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}

	cs := make([]checks.Check, 0, len(parsed.Checks))
	for _, raw := range parsed.Checks {
		cs = append(cs, raw.toCheck())
	}
	return cs, true, nil
}
