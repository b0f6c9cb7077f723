package memzone

import "os"

// RoundUp returns n rounded up to the nearest multiple of align, which
// must be a power of two.
func RoundUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// Unit returns the protection granularity used to round growth
// targets: the OS page size.
func Unit() uintptr {
	return uintptr(os.Getpagesize())
}
