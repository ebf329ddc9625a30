// Package repo locates genie's tag store.
//
// A store is either global (one per user, under ~/.genie) or local to a
// directory tree (a .genie directory created by "genie init"). Resolution
// order, first match wins:
//
//  1. The --db flag
//  2. The GENIE_DB environment variable
//  3. A .genie directory holding a store, found by walking up from the
//     working directory the way git finds .git
//  4. The store.path config key
//  5. The default under genie's home ($GENIE_HOME or ~/.genie)
//
// The backend follows the same precedence (--backend, GENIE_BACKEND,
// store.backend), except that a location ending in ".db" implies sqlite
// when nothing names a backend explicitly.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/store"
)

// Environment variables consulted by Resolve.
const (
	EnvDB      = "GENIE_DB"
	EnvBackend = "GENIE_BACKEND"
)

const (
	// FileName is the default JSON store filename.
	FileName = "genie.json"
	// DBFileName is the default SQLite store filename.
	DBFileName = "genie.db"
)

// Where a location came from.
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceLocal   = "local"
	SourceConfig  = "config"
	SourceDefault = "default"
)

// ErrNoHome is returned when no home directory can be determined and no
// explicit location was given.
var ErrNoHome = errors.New("cannot determine genie home directory (set GENIE_HOME or --db)")

// Location identifies a store.
type Location struct {
	Path    string
	Backend string
	Source  string
}

// StoreFile returns the default filename for backend.
func StoreFile(backend string) string {
	if backend == store.BackendSQLite {
		return DBFileName
	}
	return FileName
}

// Resolve determines the store location. Empty db and backend mean "not
// given on the command line".
func Resolve(db, backend string, cfg *config.Config) (Location, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	explicitBackend := firstNonEmpty(backend, os.Getenv(EnvBackend))
	if explicitBackend == "" && cfg.IsSet("store.backend") {
		explicitBackend = cfg.Backend()
	}

	var loc Location
	switch {
	case db != "":
		loc = Location{Path: db, Source: SourceFlag}
	case os.Getenv(EnvDB) != "":
		loc = Location{Path: os.Getenv(EnvDB), Source: SourceEnv}
	default:
		if p, err := Discover(explicitBackend); err == nil {
			loc = Location{Path: p, Source: SourceLocal}
		} else if p := cfg.StorePath(); p != "" {
			loc = Location{Path: p, Source: SourceConfig}
		} else {
			home := config.Home()
			if home == "" {
				return Location{}, ErrNoHome
			}
			name := StoreFile(firstNonEmpty(explicitBackend, config.DefaultBackend))
			loc = Location{Path: filepath.Join(home, name), Source: SourceDefault}
		}
	}

	expanded, err := homedir.Expand(loc.Path)
	if err != nil {
		return Location{}, fmt.Errorf("expand store path %s: %w", loc.Path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Location{}, fmt.Errorf("resolve store path %s: %w", loc.Path, err)
	}
	loc.Path = abs

	loc.Backend = explicitBackend
	if loc.Backend == "" {
		loc.Backend = inferBackend(loc.Path)
	}
	if loc.Backend != store.BackendFile && loc.Backend != store.BackendSQLite {
		return Location{}, fmt.Errorf("unknown backend %q (valid: file, sqlite)", loc.Backend)
	}
	return loc, nil
}

func inferBackend(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".db", ".sqlite", ".sqlite3":
		return store.BackendSQLite
	default:
		return store.BackendFile
	}
}

// Discover walks up the directory tree looking for a .genie directory that
// holds a store. With an empty backend either store file matches, the JSON
// file first. Returns the full path to the store if found.
func Discover(backend string) (string, error) {
	var names []string
	switch backend {
	case "":
		names = []string{FileName, DBFileName}
	default:
		names = []string{StoreFile(backend)}
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := config.Home()
	for {
		genieDir := filepath.Join(dir, config.Dir)
		// The global home is not a local store even when it sits on the path
		if genieDir != home {
			for _, n := range names {
				p := filepath.Join(genieDir, n)
				if _, err := os.Stat(p); err == nil {
					return p, nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// Init creates a local store in dir/.genie. An existing store is left
// untouched unless force is set, in which case it is emptied.
func Init(dir, backend string, force bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	if backend == "" {
		backend = config.DefaultBackend
	}
	genieDir := filepath.Join(dir, config.Dir)
	p, err := filepath.Abs(filepath.Join(genieDir, StoreFile(backend)))
	if err != nil {
		return "", fmt.Errorf("resolve store path: %w", err)
	}

	if _, err := os.Stat(p); err == nil && !force {
		return "", fmt.Errorf("store %s already exists (use --force to reinitialise)", p)
	}
	if err := os.MkdirAll(genieDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(backend, p)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	// Saving the empty set creates the file (or truncates it on --force)
	if err := s.Save(context.Background(), nil); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}
	return p, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
