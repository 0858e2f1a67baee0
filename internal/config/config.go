// pattern: Imperative Shell

package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Collision policies for output names that map to the same directory.
const (
	CollisionFail   = "fail"
	CollisionSuffix = "suffix"
)

type Config struct {
	MatchToken   string      `yaml:"match_token"`
	StripToken   string      `yaml:"strip_token"`
	OnCollision  string      `yaml:"on_collision"`
	MetadataFile string      `yaml:"metadata_file"`
	Theme        string      `yaml:"theme"`
	Build        BuildConfig `yaml:"build"`
	Log          LogConfig   `yaml:"log"`
}

type BuildConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Extension string   `yaml:"extension"`
	Command   []string `yaml:"command"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LookPathFunc is the function signature for looking up executables.
type LookPathFunc func(name string) (string, error)

func DefaultConfig() Config {
	return Config{
		MatchToken:   "game",
		StripToken:   "_game",
		OnCollision:  CollisionFail,
		MetadataFile: "metadata.json",
		Theme:        "mocha",
		Build: BuildConfig{
			Enabled:   true,
			Extension: ".go",
			Command:   []string{"go", "build"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom reads a YAML config on top of the defaults. A missing file is not
// an error.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys that were present but left empty.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.MatchToken == "" {
		c.MatchToken = def.MatchToken
	}
	if c.OnCollision == "" {
		c.OnCollision = def.OnCollision
	}
	if c.MetadataFile == "" {
		c.MetadataFile = def.MetadataFile
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Build.Extension == "" {
		c.Build.Extension = def.Build.Extension
	}
	if len(c.Build.Command) == 0 {
		c.Build.Command = def.Build.Command
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	switch c.OnCollision {
	case CollisionFail, CollisionSuffix:
	default:
		return fmt.Errorf("invalid on_collision %q (want %q or %q)", c.OnCollision, CollisionFail, CollisionSuffix)
	}
	if filepath.Base(c.MetadataFile) != c.MetadataFile {
		return fmt.Errorf("metadata_file must be a plain file name, got %q", c.MetadataFile)
	}
	if c.Build.Enabled && len(c.Build.Command) == 0 {
		return fmt.Errorf("build.command must not be empty when build is enabled")
	}
	return nil
}

// BuildTool returns the resolved path of the build command's binary.
func (c *Config) BuildTool() (string, error) {
	return c.BuildToolWith(exec.LookPath)
}

// BuildToolWith resolves the build binary using the provided lookup function.
func (c *Config) BuildToolWith(lookPath LookPathFunc) (string, error) {
	if len(c.Build.Command) == 0 {
		return "", fmt.Errorf("no build command configured")
	}
	path, err := lookPath(c.Build.Command[0])
	if err != nil {
		return "", fmt.Errorf("build tool %q not found: %w", c.Build.Command[0], err)
	}
	return path, nil
}

// DataDir returns the directory holding config.yaml and the run lock.
func DataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gamesync")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gamesync")
	}
	return filepath.Join(home, ".config", "gamesync")
}

func getConfigPath() string {
	return filepath.Join(DataDir(""), "config.yaml")
}
