//go:build unix

package region

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a region backed by a byte range of a file or character device,
// typically a pmem/SRAM device node exposed by the platform. The mapping
// is shared, so bytes written through the view land in the backing memory
// immediately.
type File struct {
	file   *os.File
	mapped []byte
	off    int
	length int
}

// OpenFile maps length bytes of path starting at offset start. A regular
// file shorter than start+length is extended; a device node is expected to
// already span the range. Close unmaps and closes the file.
func OpenFile(path string, start int64, length int) (*File, error) {
	if length <= 0 {
		return nil, fmt.Errorf("region length must be positive, got %d", length)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open region backing: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat region backing: %w", err)
	}
	if stat.Mode().IsRegular() && stat.Size() < start+int64(length) {
		if err := file.Truncate(start + int64(length)); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to extend region backing: %w", err)
		}
	}

	// mmap offsets must be page-aligned; map from the enclosing page and
	// keep the intra-page offset for the view.
	pageOff := int(start % int64(os.Getpagesize()))
	mapped, err := unix.Mmap(int(file.Fd()), start-int64(pageOff), pageOff+length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to map region: %w", err)
	}

	return &File{file: file, mapped: mapped, off: pageOff, length: length}, nil
}

// Bytes returns the [start, start+length) view into the mapping.
func (f *File) Bytes() []byte {
	return f.mapped[f.off : f.off+f.length]
}

// Close unmaps the region and closes the backing file.
func (f *File) Close() error {
	if err := unix.Munmap(f.mapped); err != nil {
		f.file.Close()
		return fmt.Errorf("failed to unmap region: %w", err)
	}
	return f.file.Close()
}
