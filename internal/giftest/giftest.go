// Package giftest builds small GIF bitstreams for tests.
package giftest

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"math/bits"
	"testing"
)

// Payload is the LZW data of a 1x1 image: minimum code size, one sub-block,
// terminator.
var Payload = []byte{0x02, 0x02, 0x44, 0x01, 0x00}

// ControlBlock is a source graphics control extension with no flags set.
var ControlBlock = []byte{0x21, 0xF9, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00}

// NetscapeBlock is a loop-forever application extension.
var NetscapeBlock = []byte("!\xFF\x0BNETSCAPE2.0\x03\x01\x00\x00\x00")

// Spec describes a hand-built single-image GIF.
type Spec struct {
	// Signature defaults to GIF89a.
	Signature string
	// Table is the color table after the screen descriptor, as RGB triplets.
	// nil means no table. Its length must be 3 * 2^n with n in [1,8].
	Table []byte
	// Control prepends ControlBlock to the image descriptor.
	Control bool
	// DescriptorFlags is the packed byte of the image descriptor.
	DescriptorFlags byte
	// Payload defaults to Payload.
	Payload []byte
	// BeforeImage is spliced in after the color table, ahead of the control
	// block or descriptor.
	BeforeImage []byte
	// NoTrailer drops the final ';'.
	NoTrailer bool
}

// SizeCode returns the 3-bit size code of a table of n entries.
func SizeCode(entries int) byte {
	return byte(bits.Len(uint(entries)) - 2)
}

// Build returns the bytes described by s.
func Build(s Spec) []byte {
	var b bytes.Buffer
	sig := s.Signature
	if sig == "" {
		sig = "GIF89a"
	}
	b.WriteString(sig)
	// 1x1 screen
	b.Write([]byte{0x01, 0x00, 0x01, 0x00})
	var flags byte
	if s.Table != nil {
		flags = 0x80 | 0x70 | SizeCode(len(s.Table)/3)
	}
	b.Write([]byte{flags, 0x00, 0x00})
	b.Write(s.Table)
	b.Write(s.BeforeImage)
	if s.Control {
		b.Write(ControlBlock)
	}
	b.Write(Descriptor(s.DescriptorFlags))
	payload := s.Payload
	if payload == nil {
		payload = Payload
	}
	b.Write(payload)
	if !s.NoTrailer {
		b.WriteByte(0x3B)
	}
	return b.Bytes()
}

// Descriptor is a 1x1 image descriptor at the origin.
func Descriptor(flags byte) []byte {
	return []byte{0x2C, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, flags}
}

// Encode renders a w x h paletted image with image/gif, filling every pixel
// with palette index fill.
func Encode(t testing.TB, pal color.Palette, w, h int, fill uint8) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}
