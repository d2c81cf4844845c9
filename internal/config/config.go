// Package config holds workspace-scoped configuration for the patchloom
// engine: how long the external patch tool is given before it's killed, how
// much context a generated diff carries, and where (if anywhere) the
// snapshot log persists itself to disk.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DefaultContextLines is the number of unchanged lines of context kept
	// on either side of a hunk when generating a unified diff.
	DefaultContextLines = 3

	// DefaultPatchTimeoutSeconds bounds how long an external patch(1)
	// invocation may run before it is killed.
	DefaultPatchTimeoutSeconds = 10

	// DefaultStateDir is the directory, relative to a workspace root, that
	// holds the persisted snapshot log when persistence is enabled.
	DefaultStateDir = ".patchloom"

	// DefaultLogFile is the name of the persisted snapshot log file inside
	// StateDir.
	DefaultLogFile = "log.json"
)

// Config is the engine's tunable behavior. Zero value is not meaningful;
// use Default() to get a usable Config.
type Config struct {
	// ContextLines is how many lines of unchanged context surround each
	// hunk in a generated diff.
	ContextLines int `json:"context_lines"`

	// PatchTimeoutSeconds bounds the external patch tool. Zero disables
	// the timeout.
	PatchTimeoutSeconds int `json:"patch_timeout_seconds"`

	// PreferExternalPatchTool, when true, tries invoking the system
	// patch(1) binary before falling back to the internal apply routine.
	PreferExternalPatchTool bool `json:"prefer_external_patch_tool"`

	// PersistSnapshots, when true, writes the snapshot log to StateDir
	// after every mutating operation and loads it back on open.
	PersistSnapshots bool `json:"persist_snapshots"`

	// StateDir is the directory (relative to the workspace root) that
	// holds the persisted snapshot log.
	StateDir string `json:"state_dir"`

	// LogLevel is one of "debug", "info", "warn", "error", "none".
	LogLevel string `json:"log_level"`

	// LogFile, if non-empty, redirects logger output to this path instead
	// of stderr.
	LogFile string `json:"log_file,omitempty"`
}

// Default returns the engine's baseline configuration.
func Default() *Config {
	return &Config{
		ContextLines:            DefaultContextLines,
		PatchTimeoutSeconds:     DefaultPatchTimeoutSeconds,
		PreferExternalPatchTool: false,
		PersistSnapshots:        false,
		StateDir:                DefaultStateDir,
		LogLevel:                "info",
	}
}

// statePath returns the absolute path to the persisted log file under
// workspaceRoot.
func (c *Config) statePath(workspaceRoot string) string {
	dir := c.StateDir
	if dir == "" {
		dir = DefaultStateDir
	}
	return filepath.Join(workspaceRoot, dir, DefaultLogFile)
}

// Load reads configuration from <workspaceRoot>/<StateDir>/config.json,
// falling back to Default() when no such file exists. A malformed file is
// reported as an error rather than silently ignored.
func Load(workspaceRoot string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(workspaceRoot, DefaultStateDir, "config.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to <workspaceRoot>/<StateDir>/config.json, creating the
// state directory if necessary.
func (c *Config) Save(workspaceRoot string) error {
	dir := filepath.Join(workspaceRoot, c.stateDirOrDefault())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, "config.json.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, "config.json"))
}

func (c *Config) stateDirOrDefault() string {
	if c.StateDir == "" {
		return DefaultStateDir
	}
	return c.StateDir
}

// StatePath exposes the path to the persisted snapshot log for a given
// workspace root.
func (c *Config) StatePath(workspaceRoot string) string {
	return c.statePath(workspaceRoot)
}
