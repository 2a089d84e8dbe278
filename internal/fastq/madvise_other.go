//go:build !(linux || darwin || freebsd)

package fastq

func adviseSequential([]byte) {}
