package animate

import (
	"fmt"
	"math"

	"github.com/samcharles93/gifasm/pkg/gif"
)

const (
	// DefaultDisposal restores the area to the background color before the next frame.
	DefaultDisposal uint8 = 2
	maxDisposal     uint8 = 7

	// MaxLoops is the largest loop count the Netscape extension can carry.
	MaxLoops = math.MaxUint16
)

// Config holds the settings shared by every frame of one animation.
type Config struct {
	// Loops is the repeat count written to the Netscape extension, 0 loops
	// forever. Out of range values are clamped.
	Loops int
	// Disposal is applied to every frame.
	Disposal uint8
	// Transparent is the color to make transparent. It is only consulted when
	// HonorTransparent is set; otherwise black is always used.
	Transparent *gif.RGB
	// HonorTransparent uses Transparent as given (nil disables transparency).
	HonorTransparent bool
	// ExactLocalSizeCode writes the frame's own table size code when a local
	// color table is embedded, instead of the global table's size code.
	ExactLocalSizeCode bool
}

func DefaultConfig() Config {
	return Config{Disposal: DefaultDisposal}
}

func (c Config) validate() error {
	if c.Disposal > maxDisposal {
		return fmt.Errorf("%w: %d", ErrInvalidDisposal, c.Disposal)
	}
	return nil
}

// LoopCount returns the clamped loop count.
func (c Config) LoopCount() uint16 {
	switch {
	case c.Loops < 0:
		return 0
	case c.Loops > MaxLoops:
		return MaxLoops
	default:
		return uint16(c.Loops)
	}
}

// TransparentColor resolves the color used for transparency matching.
func (c Config) TransparentColor() (gif.RGB, bool) {
	if !c.HonorTransparent {
		return gif.RGB{}, true
	}
	if c.Transparent == nil {
		return gif.RGB{}, false
	}
	return *c.Transparent, true
}
