package keyfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"github.com/yndnr/keyman/internal/core/domain"
	"github.com/yndnr/keyman/internal/telemetry/logger"
)

// LockMode selects between shared (read-only) and exclusive locking.
type LockMode int

const (
	// LockExclusive is required for any action that saves the keyfile.
	LockExclusive LockMode = iota
	// LockShared allows other shared holders; used by read-only actions.
	LockShared
)

func (m LockMode) String() string {
	if m == LockExclusive {
		return "exclusive"
	}
	return "shared"
}

// lockRetryDelay is the polling interval while waiting for the lock.
const lockRetryDelay = 50 * time.Millisecond

// Lock is an advisory lock on "<keyfile>.lock".
type Lock struct {
	fl   *flock.Flock
	mode LockMode
}

// LockPath returns the lock file guarding keyfile path.
func LockPath(path string) string {
	return path + ".lock"
}

// AcquireLock takes the lock for path, waiting up to timeout. It fails
// with ErrKeyfileLocked when another process still holds it, and with the
// cancellation cause when parent is cancelled first.
//
// A shared lock whose lock file cannot be created (missing directory,
// no write permission, read-only filesystem) is skipped: readers proceed
// unlocked so an absent keyfile still reads as empty.
func AcquireLock(parent context.Context, path string, mode LockMode, timeout time.Duration) (*Lock, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	fl := flock.New(LockPath(path))

	var (
		ok  bool
		err error
	)
	if mode == LockExclusive {
		ok, err = fl.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = fl.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil && mode == LockShared && lockFileUnavailable(err) {
		logger.L(parent).Debug("reading without lock", "path", fl.Path(), "error", err)
		return &Lock{mode: mode}, nil
	}
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("keyfile: lock %s: %w", fl.Path(), err)
	}
	if !ok {
		if parent.Err() != nil {
			return nil, fmt.Errorf("keyfile: lock %s: %w", fl.Path(), context.Cause(parent))
		}
		return nil, domain.ErrKeyfileLocked.WithDetails(fmt.Sprintf("%s (waited %s)", fl.Path(), timeout))
	}

	return &Lock{fl: fl, mode: mode}, nil
}

// lockFileUnavailable reports whether err means the lock file cannot be
// opened at all, as opposed to the lock being held.
func lockFileUnavailable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.EROFS)
}

// Held reports whether an advisory lock is actually held.
func (l *Lock) Held() bool {
	return l != nil && l.fl != nil
}

// Mode returns the mode the lock was taken in.
func (l *Lock) Mode() LockMode {
	return l.mode
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("keyfile: unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}
