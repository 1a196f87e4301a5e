//go:build !windows

package linguist

import (
	"fmt"
	"os"
	"syscall"
)

func (m *fileMapping) tryMap(f *os.File) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%q is not a regular file", fi.Name())
	}

	size := fi.Size()
	if size == 0 {
		return nil
	}
	if size != int64(int(size)) {
		return fmt.Errorf("file %q is too large", fi.Name())
	}
	m.data, err = syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return err
	}
	m.isMapped = true
	return nil
}

func (m *fileMapping) closeMapping() error {
	return syscall.Munmap(m.data)
}
