package api

import (
	"context"
	"fmt"
	"time"

	"github.com/samcharles93/gifasm/internal/logger"
	"github.com/samcharles93/gifasm/pkg/animate"
	"github.com/samcharles93/gifasm/pkg/gif"
)

// ServiceConfig holds the defaults applied to requests that leave a field out.
type ServiceConfig struct {
	Animate   animate.Config
	Delay     uint16
	Workers   int
	MaxFrames int
}

// AssembleService turns requests into animations.
type AssembleService struct {
	cfg ServiceConfig
}

func NewAssembleService(cfg ServiceConfig) *AssembleService {
	return &AssembleService{cfg: cfg}
}

// Assemble validates req, builds the animation and describes it.
func (s *AssembleService) Assemble(ctx context.Context, req *CreateAnimationRequest, now time.Time) (AnimationResponse, []byte, error) {
	if len(req.Frames) == 0 {
		return AnimationResponse{}, nil, newInvalidRequest("frames", "at least one frame is required")
	}
	if s.cfg.MaxFrames > 0 && len(req.Frames) > s.cfg.MaxFrames {
		return AnimationResponse{}, nil, newInvalidRequest("frames", fmt.Sprintf("at most %d frames are allowed", s.cfg.MaxFrames))
	}
	delays, err := s.delays(req)
	if err != nil {
		return AnimationResponse{}, nil, err
	}
	cfg := s.config(req)

	start := time.Now()
	out, err := animate.AssembleParallel(ctx, req.Frames, delays, cfg, s.cfg.Workers)
	if err != nil {
		return AnimationResponse{}, nil, err
	}
	first := gif.NewFrame(0, req.Frames[0])
	logger.FromContext(ctx).Debug("assembled animation",
		"frames", len(req.Frames), "bytes", len(out), "elapsed", time.Since(start))

	return AnimationResponse{
		Object:    "animation",
		CreatedAt: now.Unix(),
		Frames:    len(req.Frames),
		Bytes:     len(out),
		Loops:     cfg.LoopCount(),
		Delays:    delays,
		Width:     first.Width(),
		Height:    first.Height(),
	}, out, nil
}

func (s *AssembleService) delays(req *CreateAnimationRequest) ([]uint16, error) {
	if len(req.Delays) > 0 {
		if len(req.Delays) != len(req.Frames) {
			return nil, newInvalidRequest("delays", fmt.Sprintf("got %d delays for %d frames", len(req.Delays), len(req.Frames)))
		}
		return req.Delays, nil
	}
	d := s.cfg.Delay
	if req.Delay != nil {
		d = *req.Delay
	}
	out := make([]uint16, len(req.Frames))
	for i := range out {
		out[i] = d
	}
	return out, nil
}

func (s *AssembleService) config(req *CreateAnimationRequest) animate.Config {
	cfg := s.cfg.Animate
	if req.Loops != nil {
		cfg.Loops = *req.Loops
	}
	if req.Disposal != nil {
		cfg.Disposal = *req.Disposal
	}
	if req.Transparent != nil {
		cfg.Transparent = &gif.RGB{R: req.Transparent.R, G: req.Transparent.G, B: req.Transparent.B}
	}
	return cfg
}
