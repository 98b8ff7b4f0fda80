package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rufio-sh/rufio-hooks/internal/checks"
)

// ConfigFileName is the name of the per-directory configuration document.
const ConfigFileName = "rufio-hooks.yaml"

// appDirName is the subdirectory of the user configuration home holding
// external preset files.
const appDirName = "rufio"

// rawConfig is the YAML shape of a configuration document.
type rawConfig struct {
	Presets []string   `yaml:"presets"`
	Checks  []rawCheck `yaml:"checks"`
}

// presetFile is the YAML shape of an external preset document: a bare check
// list, no further preset references.
type presetFile struct {
	Checks []rawCheck `yaml:"checks"`
}

type rawCheck struct {
	Name string  `yaml:"name"`
	When rawWhen `yaml:"when"`
	Then rawThen `yaml:"then"`
}

type rawWhen struct {
	PathsChanged string `yaml:"paths_changed"`
	PathExists   string `yaml:"path_exists"`
}

type rawThen struct {
	EnsureCommands []string `yaml:"ensure_commands"`
	EnsureChanged  []string `yaml:"ensure_changed"`
}

// validate enforces the schema rules for user-declared checks. Preset checks
// never pass through here; they are program-defined and trusted.
func (r rawCheck) validate(configPath string) error {
	if r.Name == "" {
		return fmt.Errorf("invalid config at %s: check missing 'name'", configPath)
	}
	if r.When.PathsChanged == "" {
		return fmt.Errorf("invalid config at %s: check %q missing 'when.paths_changed'", configPath, r.Name)
	}

	hasCommands := r.Then.EnsureCommands != nil
	hasChanged := r.Then.EnsureChanged != nil
	if !hasCommands && !hasChanged {
		return fmt.Errorf("invalid config at %s: check %q must have 'then.ensure_commands' or 'then.ensure_changed'", configPath, r.Name)
	}
	if hasCommands && hasChanged {
		return fmt.Errorf("invalid config at %s: check %q cannot have both 'then.ensure_commands' and 'then.ensure_changed'", configPath, r.Name)
	}
	return nil
}

// toCheck converts the raw YAML form into the evaluated sum-type form. When
// an unvalidated (preset-sourced) check carries both actions, ensure_commands
// wins, matching the engine's historical dispatch order; with neither, the
// check has no action and always passes.
func (r rawCheck) toCheck() checks.Check {
	c := checks.Check{
		Name: r.Name,
		When: checks.When{
			PathsChanged: r.When.PathsChanged,
			PathExists:   r.When.PathExists,
		},
	}
	switch {
	case r.Then.EnsureCommands != nil:
		c.Then = checks.CommandsRequired{Patterns: r.Then.EnsureCommands}
	case r.Then.EnsureChanged != nil:
		c.Then = checks.PathsRequired{Paths: r.Then.EnsureChanged}
	}
	return c
}

// LoadedConfig is a resolved configuration: preset checks followed by local
// checks, plus the absolute directory the document was found in. The
// directory anchors relative path_exists gates.
type LoadedConfig struct {
	Checks []checks.Check
	Dir    string
}

// Load reads the configuration document at path, resolves its preset
// references, merges preset checks (in listed order) with local checks (in
// declared order), and validates the local checks.
func Load(path string) ([]checks.Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var parsed rawConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	merged, err := resolvePresets(parsed.Presets, path)
	if err != nil {
		return nil, err
	}

	for _, raw := range parsed.Checks {
		if err := raw.validate(path); err != nil {
			return nil, err
		}
		merged = append(merged, raw.toCheck())
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("invalid config at %s: no checks defined (add 'presets' or 'checks')", path)
	}

	return merged, nil
}

// resolvePresets expands preset names into their check lists, consulting the
// built-in registry first and falling back to an external preset file. An
// unresolved name is fatal and the error names the path where the preset was
// expected.
func resolvePresets(names []string, configPath string) ([]checks.Check, error) {
	var resolved []checks.Check
	for _, name := range names {
		if cs, ok := BuiltinPreset(name); ok {
			resolved = append(resolved, cs...)
			continue
		}

		cs, found, err := loadExternalPreset(name)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("invalid config at %s: preset %q not found at %s", configPath, name, PresetPath(name))
		}
		resolved = append(resolved, cs...)
	}
	return resolved, nil
}

// FindNearest walks upward from startDir looking for the nearest directory
// containing a loadable configuration document, bounded by repoRoot. A
// document that fails to load is skipped so a valid ancestor can still
// provide policy; the directory at repoRoot itself is attempted before the
// walk terminates. Returns nil when no configuration is found.
func FindNearest(startDir, repoRoot string, logger zerolog.Logger) *LoadedConfig {
	current := startDir
	for {
		path := filepath.Join(current, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			cs, err := Load(path)
			if err == nil {
				return &LoadedConfig{Checks: cs, Dir: current}
			}
			logger.Debug().Err(err).Str("path", path).Msg("skipping invalid config during upward search")
		}

		if current == repoRoot {
			return nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Filesystem root.
			return nil
		}
		current = parent

		if !withinDir(current, repoRoot) {
			return nil
		}
	}
}

// withinDir reports whether dir is root or a descendant of root.
func withinDir(dir, root string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
