// errors.go defines the error taxonomy for persistence failures.
//
// Every I/O failure leaves the store as a *StorageError naming the
// operation and location. Categories callers act on are sentinels wrapped
// inside it, so both errors.As and errors.Is work:
//
//	var se *store.StorageError
//	if errors.As(err, &se) { ... se.Op ... }
//	if errors.Is(err, store.ErrCorrupt) { ... }

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt indicates persisted data exists but cannot be decoded.
	ErrCorrupt = errors.New("store data is corrupt")
	// ErrLocked indicates the store lock could not be acquired in time.
	ErrLocked = errors.New("store is locked by another process")
	// ErrClosed indicates use of a store after Close.
	ErrClosed = errors.New("store is closed")
)

// StorageError describes a failed persistence operation.
type StorageError struct {
	Op   string // load, save, stamp, lock, open, close
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Path: path, Err: err}
}
