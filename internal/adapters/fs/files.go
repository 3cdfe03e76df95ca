package fs

import (
	"fmt"
	"os"

	"github.com/bft-labs/fixpi/internal/domain"
)

// destinationPerm is applied only when the destination has to be created.
const destinationPerm = 0o600

// OpenSource opens path read-only. Regular files, pipes and block devices
// are all accepted; nothing beyond sequential reads is required.
func OpenSource(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q for reading: %w", domain.ErrOpen, path, err)
	}
	return f, nil
}

// OpenDestination opens path write-only, creating it with owner-only
// permissions if needed and truncating it when it is a regular file.
func OpenDestination(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, destinationPerm)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q for writing: %w", domain.ErrOpen, path, err)
	}
	return f, nil
}
