// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP server address configuration by dotted string keys
// (e.g. "store.backend"). This file maps those keys onto the YAML
// structure in config.go. Optional fields are pointers so "not set" (nil)
// stays distinct from an explicit value and defaults apply only to the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"store.path", "store.backend", "store.lock_timeout",
		"limits.max_path", "limits.max_tag",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "store.path":
		return c.StorePath(), nil
	case "store.backend":
		return c.Backend(), nil
	case "store.lock_timeout":
		return c.LockTimeout().String(), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_tag":
		return strconv.Itoa(c.MaxTag()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "store.path":
		v := value
		c.Store.Path = &v
	case "store.backend":
		if !validBackend(value) {
			return fmt.Errorf("%w: store.backend must be one of %v", ErrInvalidValue, Backends)
		}
		v := value
		c.Store.Backend = &v
	case "store.lock_timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 || d > MaxLockTimeout {
			return fmt.Errorf("%w: store.lock_timeout must be a duration such as 5s", ErrInvalidValue)
		}
		v := d.String()
		c.Store.LockTimeout = &v
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPath || n > MaxMaxPath {
			return fmt.Errorf("%w: limits.max_path must be between %d and %d", ErrInvalidValue, MinMaxPath, MaxMaxPath)
		}
		c.Limits.MaxPath = &n
	case "limits.max_tag":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxTag || n > MaxMaxTag {
			return fmt.Errorf("%w: limits.max_tag must be between %d and %d", ErrInvalidValue, MinMaxTag, MaxMaxTag)
		}
		c.Limits.MaxTag = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"store.path":         c.StorePath(),
		"store.backend":      c.Backend(),
		"store.lock_timeout": c.LockTimeout().String(),
		"limits.max_path":    strconv.Itoa(c.MaxPath()),
		"limits.max_tag":     strconv.Itoa(c.MaxTag()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "store.path":
		return c.Store.Path != nil
	case "store.backend":
		return c.Store.Backend != nil
	case "store.lock_timeout":
		return c.Store.LockTimeout != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_tag":
		return c.Limits.MaxTag != nil
	default:
		return false
	}
}
