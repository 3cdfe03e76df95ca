//go:build !unix

package fs

func isInterrupted(err error) bool {
	return false
}
