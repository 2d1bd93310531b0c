package archive

import (
	"errors"
	"fmt"
	"os"
)

// ErrLocked is returned when another process already holds the close lock.
var ErrLocked = errors.New("archive lock is held")

// LockFile acquires an exclusive lock by creating the file with O_EXCL. A
// second caller fails fast with ErrLocked instead of waiting; the release
// func removes the lock file.
//
// The file records the holder's pid as a debugging hint for stale locks.
func LockFile(path string) (release func(), err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("lock %s: %w", path, ErrLocked)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()

	return func() { _ = os.Remove(path) }, nil
}
