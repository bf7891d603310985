package notestore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName      = ".notes.lock"
	lockRetryInterval = 100 * time.Millisecond
	lockTimeout       = 3 * time.Second
)

// LockRoot захватывает эксклюзивную блокировку каталога, чтобы его не обслуживали два процесса сразу.
// Каталог root должен существовать.
func LockRoot(ctx context.Context, root string) (func() error, error) {
	lk := flock.New(filepath.Join(root, lockFileName))

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := lk.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("lock storage root %s: %w", root, err)
	}
	if !locked {
		return nil, fmt.Errorf("storage root %s is locked by another process", root)
	}

	return lk.Unlock, nil
}
