//go:build !unix

package memguard

import "os"

// rawWrite falls back to the unbuffered os.File write; fd selects
// between the standard streams.
func rawWrite(fd int, b []byte) {
	f := os.Stderr
	if fd == 1 {
		f = os.Stdout
	}
	_, _ = f.Write(b)
}
