// Package config provides reading and writing of genie configuration.
// Supports both global (~/.genie/config.yaml) and local (.genie/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// EnvHome overrides the genie home directory (default ~/.genie).
const EnvHome = "GENIE_HOME"

// Dir is the name of genie's directory, both under $HOME and locally.
const Dir = ".genie"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.genie/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .genie/config.yaml
	ScopeLocal
)

// Store holds tag store configuration options.
type Store struct {
	Path        *string `yaml:"path,omitempty"`
	Backend     *string `yaml:"backend,omitempty"`
	LockTimeout *string `yaml:"lock_timeout,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath *int `yaml:"max_path,omitempty"`
	MaxTag  *int `yaml:"max_tag,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultBackend     = "file"
	DefaultLockTimeout = 5 * time.Second
	DefaultMaxPath     = 4096
	DefaultMaxTag      = 256
)

// Validation bounds for configuration values.
const (
	MinMaxPath     = 1
	MaxMaxPath     = 65536
	MinMaxTag      = 1
	MaxMaxTag      = 4096
	MaxLockTimeout = 10 * time.Minute
)

// Backends lists the accepted store.backend values.
var Backends = []string{"file", "sqlite"}

// Config contains configuration for genie.
type Config struct {
	Store  Store  `yaml:"store,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Store.Backend != nil && !validBackend(*c.Store.Backend) {
		return fmt.Errorf("%w: store.backend must be one of %v, got %q",
			ErrInvalidValue, Backends, *c.Store.Backend)
	}
	if c.Store.LockTimeout != nil {
		d, err := time.ParseDuration(*c.Store.LockTimeout)
		if err != nil || d <= 0 || d > MaxLockTimeout {
			return fmt.Errorf("%w: store.lock_timeout must be a duration between 0s and %s, got %q",
				ErrInvalidValue, MaxLockTimeout, *c.Store.LockTimeout)
		}
	}
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxTag != nil {
		v := *c.Limits.MaxTag
		if v < MinMaxTag || v > MaxMaxTag {
			return fmt.Errorf("%w: max_tag must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxTag, MaxMaxTag, v)
		}
	}
	return nil
}

func validBackend(b string) bool {
	for _, v := range Backends {
		if v == b {
			return true
		}
	}
	return false
}

// StorePath returns the configured store location with ~ expanded, or ""
// when unset.
func (c *Config) StorePath() string {
	if c.Store.Path == nil || *c.Store.Path == "" {
		return ""
	}
	p, err := homedir.Expand(*c.Store.Path)
	if err != nil {
		return *c.Store.Path
	}
	return p
}

// Backend returns the store backend (defaults to "file").
func (c *Config) Backend() string {
	if c.Store.Backend == nil || *c.Store.Backend == "" {
		return DefaultBackend
	}
	return *c.Store.Backend
}

// LockTimeout returns how long to wait for the store lock (defaults to 5s).
func (c *Config) LockTimeout() time.Duration {
	if c.Store.LockTimeout == nil {
		return DefaultLockTimeout
	}
	d, err := time.ParseDuration(*c.Store.LockTimeout)
	if err != nil || d <= 0 {
		return DefaultLockTimeout
	}
	return d
}

// MaxPath returns the maximum canonical path length in bytes (defaults to 4096).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxTag returns the maximum tag length in bytes (defaults to 256).
func (c *Config) MaxTag() int {
	if c.Limits.MaxTag == nil {
		return DefaultMaxTag
	}
	return *c.Limits.MaxTag
}

// Home returns genie's home directory: $GENIE_HOME if set, otherwise
// ~/.genie. Returns "" if the home directory cannot be determined.
func Home() string {
	if h := os.Getenv(EnvHome); h != "" {
		if p, err := homedir.Expand(h); err == nil {
			return p
		}
		return h
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir)
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file.
func GlobalPath() string {
	h := Home()
	if h == "" {
		return ""
	}
	return filepath.Join(h, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
