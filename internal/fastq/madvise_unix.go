//go:build linux || darwin || freebsd

package fastq

import "golang.org/x/sys/unix"

// adviseSequential hints the kernel to read ahead aggressively; records are
// consumed front to back exactly once.
func adviseSequential(b []byte) {
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
}
