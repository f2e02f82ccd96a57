package framestore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fumiama/imgsz"
	"golang.org/x/sys/unix"
)

var (
	ErrEmptyFile = errors.New("framestore: empty file")
	ErrTooLarge  = errors.New("framestore: file too large")
)

// Source is one frame file held in memory, mapped read-only when the
// platform allows it.
type Source struct {
	Path    string
	Data    []byte
	mmapped bool
}

// Open maps path read-only, falling back to ReadAt-based loading when mmap
// is unavailable. The returned source must be closed to release the mapping.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &Source{Path: path, Data: data, mmapped: true}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Source{Path: path, Data: data}, nil
}

// FromBytes wraps an in-memory frame.
func FromBytes(name string, data []byte) *Source {
	return &Source{Path: name, Data: data}
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Size probes the image dimensions from the header.
func (s *Source) Size() (width, height int, err error) {
	sz, format, err := imgsz.DecodeSize(bytes.NewReader(s.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("probe %s: %w", s.Path, err)
	}
	if format != "gif" {
		return 0, 0, fmt.Errorf("probe %s: unexpected format %q", s.Path, format)
	}
	return sz.Width, sz.Height, nil
}

// Close releases the mapping, if any.
func (s *Source) Close() error {
	if s == nil || s.Data == nil {
		return nil
	}
	var err error
	if s.mmapped {
		err = unix.Munmap(s.Data)
	}
	s.Data = nil
	s.mmapped = false
	return err
}
