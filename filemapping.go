package linguist

import (
	"io"
	"os"
	"runtime"
)

// fileMapping holds the content of a catalog file, memory mapped when
// the platform allows it.
type fileMapping struct {
	data []byte

	isMapped bool
}

func (m *fileMapping) Close() error {
	runtime.SetFinalizer(m, nil)
	if !m.isMapped {
		return nil
	}
	m.isMapped = false
	return m.closeMapping()
}

func openMapping(f *os.File) (*fileMapping, error) {
	m := new(fileMapping)

	err := m.tryMap(f)
	if err == nil {
		runtime.SetFinalizer(m, (*fileMapping).Close)
		return m, nil
	}
	// On mapping failure, fall back to reading the file into
	// memory directly.
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		// pipes cannot seek, but nothing has been read from them yet
		if pathErr, ok := err.(*os.PathError); !ok || pathErr.Op != "seek" {
			return nil, err
		}
	}
	m.data, err = io.ReadAll(f)
	return m, err
}
