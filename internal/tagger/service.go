// Package tagger provides genie's Query Service: the single entry point for
// tagging files and searching them with boolean tag expressions.
//
// A Service owns one store, the cross-process lock guarding it, and the
// current immutable index snapshot. Every mutation follows the same steps
// while holding the exclusive store lock:
//
//  1. reload the persisted pairs (another process may have written)
//  2. apply the change to a new snapshot
//  3. save the new pair set durably
//  4. publish the new snapshot
//
// If step 3 fails nothing is published and the error is returned, so the
// in-memory view never runs ahead of disk. Searches take the current
// snapshot pointer and evaluate against it without further locking; a
// mutation landing mid-search is simply not visible to that search.
package tagger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/repo"
	"github.com/jpl-au/genie/internal/store"
)

// Options configures Open.
type Options struct {
	// Path is the store location. Required unless Store is set.
	Path string
	// Backend selects the store implementation ("file" or "sqlite").
	Backend string
	// Store, when set, is used instead of opening Path. The service takes
	// ownership and closes it.
	Store store.Store
	// LockTimeout bounds waiting for the store lock. Zero uses the default.
	LockTimeout time.Duration
	// MaxPath and MaxTag limit canonical path and tag length in bytes.
	// Zero means no limit.
	MaxPath int
	MaxTag  int
}

// Service is the Query Service. It is safe for concurrent use.
type Service struct {
	store   store.Store
	lock    *store.Lock
	backend string
	maxPath int
	maxTag  int

	// writeMu serialises mutations and reloads within this process.
	writeMu sync.Mutex

	// mu guards snap and stamp. Readers hold it only to copy the pointer.
	mu    sync.RWMutex
	snap  *index.Index
	stamp string
}

// Stats summarises the index.
type Stats struct {
	Paths int `json:"paths"`
	Tags  int `json:"tags"`
	Pairs int `json:"pairs"`
}

// Open constructs a Service and loads the current index.
func Open(ctx context.Context, opts Options) (*Service, error) {
	s := opts.Store
	backend := opts.Backend
	if backend == "" {
		backend = store.BackendFile
	}
	if s == nil {
		if opts.Path == "" {
			return nil, fmt.Errorf("tagger: no store path given")
		}
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, &store.StorageError{Op: "open", Path: opts.Path, Err: err}
		}
		var err error
		s, err = store.Open(backend, opts.Path)
		if err != nil {
			return nil, err
		}
	}

	svc := &Service{
		store:   s,
		lock:    store.NewLock(s.Path(), opts.LockTimeout),
		backend: backend,
		maxPath: opts.MaxPath,
		maxTag:  opts.MaxTag,
		snap:    index.New(),
	}
	if err := svc.reload(ctx); err != nil {
		_ = svc.Close()
		return nil, err
	}
	return svc, nil
}

// New resolves the store location from flags, environment and config,
// then opens it. db and backend are the --db and --backend flag values
// (empty when not given).
func New(ctx context.Context, db, backend string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}
	loc, err := repo.Resolve(db, backend, cfg)
	if err != nil {
		return nil, err
	}
	return Open(ctx, Options{
		Path:        loc.Path,
		Backend:     loc.Backend,
		LockTimeout: cfg.LockTimeout(),
		MaxPath:     cfg.MaxPath(),
		MaxTag:      cfg.MaxTag(),
	})
}

// Location returns the store path.
func (s *Service) Location() string { return s.store.Path() }

// Backend returns the store backend name.
func (s *Service) Backend() string { return s.backend }

// Close releases the store and the lock file.
func (s *Service) Close() error {
	var result *multierror.Error
	if err := s.store.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.lock.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// current returns the published snapshot.
func (s *Service) current() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) publish(ix *index.Index, stamp string) {
	s.mu.Lock()
	s.snap = ix
	s.stamp = stamp
	s.mu.Unlock()
}

// reload reads the store under the shared lock and publishes the result.
func (s *Service) reload(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	unlock, err := s.lock.RLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	pairs, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	stamp, err := s.store.Stamp(ctx)
	if err != nil {
		return err
	}
	s.publish(index.FromPairs(pairs), stamp)
	return nil
}

// Refresh reloads the index if another writer changed the store since it
// was last loaded. It reports whether a reload happened.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	stamp, err := s.store.Stamp(ctx)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	same := stamp == s.stamp
	s.mu.RUnlock()
	if same {
		return false, nil
	}
	return true, s.reload(ctx)
}

// snapshot returns an up-to-date snapshot for a read operation.
func (s *Service) snapshot(ctx context.Context) (*index.Index, error) {
	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.current(), nil
}

// mutate runs fn against the freshly loaded on-disk state under the
// exclusive lock and persists the result if fn changed anything.
func (s *Service) mutate(ctx context.Context, fn func(*index.Index) (*index.Index, bool)) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	unlock, err := s.lock.Lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	pairs, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	cur := index.FromPairs(pairs)

	next, changed := fn(cur)
	if changed {
		if err := s.store.Save(ctx, next.Pairs()); err != nil {
			return false, err
		}
	}

	stamp, err := s.store.Stamp(ctx)
	if err != nil {
		// The change is durable; the next read reloads.
		stamp = ""
	}
	s.publish(next, stamp)
	return changed, nil
}

// Stats returns counts for the current index.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	ix, err := s.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Paths: ix.NumPaths(), Tags: ix.NumTags(), Pairs: ix.NumPairs()}, nil
}
