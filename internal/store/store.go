// Package store persists genie's tag index.
//
// The persisted form of the index is a set of unique (path, tag) pairs.
// A Store loads the whole set and saves the whole set; callers never issue
// per-pair writes. Save is atomic: after a crash the store holds either the
// previous set or the new one, never a mixture.
//
// Two backends are provided:
//
//   - FileStore (backend "file"): a JSON document replaced by rename
//   - SQLiteStore (backend "sqlite"): a single table updated in one transaction
//
// Stores do not coordinate between processes on their own. Callers that
// share a store across processes hold a Lock around load-modify-save.
package store

import (
	"context"
	"fmt"

	"github.com/jpl-au/genie/internal/index"
)

// Pair is a single persisted (path, tag) association.
type Pair = index.Pair

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendSQLite}

// Store is the persistence contract used by the tagger service.
type Store interface {
	// Load returns every persisted pair. A store that has never been saved
	// returns an empty slice and no error.
	Load(ctx context.Context) ([]Pair, error)

	// Save replaces the persisted set with pairs. When Save returns nil the
	// new set is durable. When it returns an error the previous set is intact.
	Save(ctx context.Context, pairs []Pair) error

	// Stamp returns an opaque token that changes whenever another writer
	// saves. Equal stamps mean a reload would observe nothing new.
	Stamp(ctx context.Context) (string, error)

	// Path returns the location of the persisted data.
	Path() string

	// Close releases resources. Further calls return ErrClosed.
	Close() error
}

// Open returns a store for backend at path. The parent directory must exist.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: file, sqlite)", backend)
	}
}
