package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LockFileName is created inside the git directory to serialize mutations.
const LockFileName = "devflow.lock"

// lockRetryInterval is how often Lock retries a held lock.
const lockRetryInterval = 50 * time.Millisecond

// FileLock provides exclusive file-based locking.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created if it doesn't exist.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock acquires an exclusive lock on the file.
// Blocks until the lock is acquired or ctx is done.
func (l *FileLock) Lock(ctx context.Context) error {
	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.TryLock()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TryLock acquires the lock without blocking.
// Returns false if another process holds it.
func (l *FileLock) TryLock() (bool, error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return false, err
	}

	ok, err := tryLockFile(f)
	if err != nil || !ok {
		f.Close()
		return false, err
	}
	l.file = f
	return true, nil
}

// Unlock releases the lock and closes the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}

// Lock takes the per-repository mutation lock for dir and returns its
// release func. It blocks while another devflow process mutates the same
// repository, until ctx is done.
func (c *Client) Lock(ctx context.Context, dir string) (func(), error) {
	gitDir, err := c.GitDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	lock := NewFileLock(filepath.Join(gitDir, LockFileName))
	if err := lock.Lock(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", gitDir, err)
	}
	return func() { _ = lock.Unlock() }, nil
}
