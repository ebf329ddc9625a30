// lock.go coordinates store access between processes.
//
// The lock is an advisory flock on "<store>.lock" beside the data file.
// Mutations hold it exclusively for the whole load-modify-save sequence;
// reloads hold it shared. Acquisition polls until the timeout expires or
// the context is cancelled and then fails with ErrLocked.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout bounds how long a caller waits for the store lock.
const DefaultLockTimeout = 5 * time.Second

const lockRetryDelay = 25 * time.Millisecond

// Lock is a cross-process lock for one store.
type Lock struct {
	fl      *flock.Flock
	timeout time.Duration
}

// NewLock returns a lock guarding the store at storePath. A timeout of
// zero or less uses DefaultLockTimeout.
func NewLock(storePath string, timeout time.Duration) *Lock {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &Lock{fl: flock.New(storePath + ".lock"), timeout: timeout}
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.fl.Path() }

// Lock acquires the exclusive lock. The returned function releases it.
func (l *Lock) Lock(ctx context.Context) (func(), error) {
	return l.acquire(ctx, l.fl.TryLockContext)
}

// RLock acquires the shared lock. The returned function releases it.
func (l *Lock) RLock(ctx context.Context) (func(), error) {
	return l.acquire(ctx, l.fl.TryRLockContext)
}

func (l *Lock) acquire(ctx context.Context, try func(context.Context, time.Duration) (bool, error)) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ok, err := try(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, storageErr("lock", l.Path(), fmt.Errorf("%w after %s", ErrLocked, l.timeout))
		}
		return nil, storageErr("lock", l.Path(), err)
	}
	if !ok {
		return nil, storageErr("lock", l.Path(), ErrLocked)
	}
	return func() { _ = l.fl.Unlock() }, nil
}

// Close releases the lock if held and closes the lock file.
func (l *Lock) Close() error {
	return l.fl.Close()
}
