package fastq

import (
	"bytes"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mmapFile reads a read-only mapping of a whole file.
type mmapFile struct {
	*bytes.Reader
	f    *os.File
	data mmap.MMap
}

// openMmap maps path read-only. Empty files cannot be mapped and are
// returned as the plain *os.File.
func openMmap(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() == 0 || !st.Mode().IsRegular() {
		return f, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	adviseSequential(m)
	return &mmapFile{Reader: bytes.NewReader(m), f: f, data: m}, nil
}

// Close unmaps the file and closes it.
func (m *mmapFile) Close() error {
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			_ = m.f.Close()
			return err
		}
		m.data = nil
	}
	if m.f != nil {
		err := m.f.Close()
		m.f = nil
		return err
	}
	return nil
}
