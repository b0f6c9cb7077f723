//go:build unix

package memguard

import "golang.org/x/sys/unix"

// rawWrite issues a single write(2). Errors are ignored: diagnostic
// output is best-effort on the failure path.
func rawWrite(fd int, b []byte) {
	_, _ = unix.Write(fd, b)
}
