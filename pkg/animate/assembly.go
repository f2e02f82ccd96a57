package animate

import "github.com/samcharles93/gifasm/pkg/gif"

// Assembly is the running state of one animation: the output buffer and
// whether the next frame is the first one emitted. The buffer is append-only
// and is only handed out once the trailer has been written.
type Assembly struct {
	cfg      Config
	params   frameParams
	out      []byte
	first    bool
	started  bool
	finished bool
}

func NewAssembly(cfg Config) (*Assembly, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Assembly{cfg: cfg, first: true}, nil
}

// WriteHeader emits the header from frame 0. It must be called exactly once,
// before any frame.
func (a *Assembly) WriteHeader(first gif.Frame) error {
	if a.finished {
		return ErrFinished
	}
	if a.started {
		return ErrHeaderWritten
	}
	params, err := newFrameParams(a.cfg, first)
	if err != nil {
		return err
	}
	hdr, err := header(first, a.cfg.LoopCount())
	if err != nil {
		return err
	}
	a.params = params
	a.out = append(a.out, hdr...)
	a.started = true
	return nil
}

// WriteFrame appends the segment for f. Frames must arrive in input order.
func (a *Assembly) WriteFrame(f gif.Frame, delay uint16) error {
	if a.finished {
		return ErrFinished
	}
	if !a.started {
		return ErrNoHeader
	}
	seg, err := assembleFrame(f, delay, a.params, a.first)
	if err != nil {
		return err
	}
	a.appendSegment(seg)
	return nil
}

func (a *Assembly) appendSegment(seg []byte) {
	a.out = append(a.out, seg...)
	a.first = false
}

// Finish writes the trailer and returns the completed animation.
func (a *Assembly) Finish() ([]byte, error) {
	if a.finished {
		return nil, ErrFinished
	}
	if !a.started {
		return nil, ErrNoHeader
	}
	a.out = append(a.out, gif.Trailer)
	a.finished = true
	return a.out, nil
}
