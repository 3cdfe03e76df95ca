//go:build unix

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isInterrupted reports whether err is a read interrupted by a signal.
// os.File retries these itself; other readers may not.
func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
