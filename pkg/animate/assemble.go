package animate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/gifasm/pkg/gif"
)

// Assemble builds an animated GIF from single-image GIF buffers. delays are
// in hundredths of a second, one per frame.
func Assemble(bufs [][]byte, delays []uint16, cfg Config) ([]byte, error) {
	frames, err := prepare(bufs, delays)
	if err != nil {
		return nil, err
	}
	a, err := NewAssembly(cfg)
	if err != nil {
		return nil, err
	}
	if err := a.WriteHeader(frames[0]); err != nil {
		return nil, err
	}
	for i, f := range frames {
		if err := a.WriteFrame(f, delays[i]); err != nil {
			return nil, err
		}
	}
	return a.Finish()
}

// AssembleParallel is Assemble with per-frame work spread over up to workers
// goroutines (GOMAXPROCS when workers <= 0). Segments are joined in input
// order and a failure reports the lowest failing index, so the result is
// identical to Assemble.
func AssembleParallel(ctx context.Context, bufs [][]byte, delays []uint16, cfg Config, workers int) ([]byte, error) {
	frames, err := prepare(bufs, delays)
	if err != nil {
		return nil, err
	}
	a, err := NewAssembly(cfg)
	if err != nil {
		return nil, err
	}
	if err := a.WriteHeader(frames[0]); err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	segments := make([][]byte, len(frames))
	errs := make([]error, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			segments[i], errs[i] = assembleFrame(f, delays[i], a.params, i == 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, seg := range segments {
		a.appendSegment(seg)
	}
	return a.Finish()
}

func prepare(bufs [][]byte, delays []uint16) ([]gif.Frame, error) {
	if len(bufs) == 0 {
		return nil, ErrNoFrames
	}
	if len(delays) != len(bufs) {
		return nil, ErrDelayCount
	}
	frames := gif.NewFrames(bufs)
	if err := gif.ValidateAll(frames); err != nil {
		return nil, err
	}
	return frames, nil
}
