// Package pathlock serializes local invocations that target the same
// filesystem path.
package pathlock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// RetryDelay is the interval between lock attempts.
const RetryDelay = 100 * time.Millisecond

// Lock is a held advisory lock. Release it with Unlock.
type Lock struct {
	fl *flock.Flock
}

// FileFor returns the lock file used for target inside dir.
func FileFor(dir, target string) string {
	sum := sha256.Sum256([]byte(target))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes an exclusive lock for target, waiting until ctx is done.
func Acquire(ctx context.Context, dir, target string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	fl := flock.New(FileFor(dir, target))
	ok, err := fl.TryLockContext(ctx, RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", target, err)
	}
	if !ok {
		return nil, fmt.Errorf("locking %s: lock is held", target)
	}
	return &Lock{fl: fl}, nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	return l.fl.Unlock()
}
