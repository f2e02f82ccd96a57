// Package framestore loads the source frames of an animation from disk.
package framestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samcharles93/gifasm/internal/logger"
)

var ErrNoFrames = errors.New("framestore: no frames")

// Set is an ordered list of loaded frames with their delays.
type Set struct {
	Sources []*Source
	Delays  []uint16
	// Loops is set when the frames came from a manifest that specifies it.
	Loops *int
}

// Buffers returns the raw frame data in order.
func (s *Set) Buffers() [][]byte {
	out := make([][]byte, len(s.Sources))
	for i, src := range s.Sources {
		out[i] = src.Data
	}
	return out
}

func (s *Set) Close() error {
	var errs []error
	for _, src := range s.Sources {
		errs = append(errs, src.Close())
	}
	return errors.Join(errs...)
}

// LoadPaths opens every path in order, giving each frame the same delay.
func LoadPaths(ctx context.Context, paths []string, delay uint16) (*Set, error) {
	delays := make([]uint16, len(paths))
	for i := range delays {
		delays[i] = delay
	}
	return load(ctx, paths, delays)
}

// LoadDir loads every *.gif in dir, ordered by file name.
func LoadDir(ctx context.Context, dir string, delay uint16) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".gif") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no .gif files in %s", ErrNoFrames, dir)
	}
	return LoadPaths(ctx, paths, delay)
}

// LoadManifest loads the frames listed by a manifest file.
func LoadManifest(ctx context.Context, path string, fallbackDelay uint16) (*Set, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	set, err := load(ctx, m.Paths(), m.Delays(fallbackDelay))
	if err != nil {
		return nil, err
	}
	set.Loops = m.Loops
	return set, nil
}

func load(ctx context.Context, paths []string, delays []uint16) (*Set, error) {
	if len(paths) == 0 {
		return nil, ErrNoFrames
	}
	log := logger.FromContext(ctx)
	set := &Set{Delays: delays}
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			_ = set.Close()
			return nil, err
		}
		src, err := Open(p)
		if err != nil {
			_ = set.Close()
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		set.Sources = append(set.Sources, src)
		if w, h, err := src.Size(); err == nil {
			log.Debug("loaded frame", "index", i, "path", p, "bytes", len(src.Data), "width", w, "height", h)
		} else {
			log.Debug("loaded frame", "index", i, "path", p, "bytes", len(src.Data), "probe_error", err)
		}
	}
	return set, nil
}
