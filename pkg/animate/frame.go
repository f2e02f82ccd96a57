package animate

import (
	"encoding/binary"

	"github.com/samcharles93/gifasm/pkg/gif"
)

// frameParams is everything a single frame needs from the animation.
// It is read-only once built, so frames can be assembled concurrently.
type frameParams struct {
	disposal       uint8
	transparent    gif.RGB
	hasTransparent bool
	global         gif.ColorTable
	globalSizeCode uint8
	exactSizeCode  bool
}

func newFrameParams(cfg Config, first gif.Frame) (frameParams, error) {
	p := frameParams{
		disposal:       cfg.Disposal,
		globalSizeCode: first.ScreenFlags().SizeCode(),
		exactSizeCode:  cfg.ExactLocalSizeCode,
	}
	p.transparent, p.hasTransparent = cfg.TransparentColor()
	global, err := first.ColorTable()
	if err != nil {
		return frameParams{}, err
	}
	p.global = global
	return p, nil
}

// controlExtension builds a graphics control extension without transparency.
func controlExtension(disposal uint8, delay uint16) [gif.ControlExtensionSize]byte {
	var ext [gif.ControlExtensionSize]byte
	ext[0] = gif.ExtensionIntroducer
	ext[1] = gif.LabelGraphicControl
	ext[2] = 4
	ext[3] = (disposal & 0x07) << 2
	binary.LittleEndian.PutUint16(ext[4:6], delay)
	return ext
}

// assembleFrame produces the output segment for f:
// [control extension][image descriptor][optional color table][payload].
// first marks the first frame of the animation, whose table is by
// definition the global one.
func assembleFrame(f gif.Frame, delay uint16, p frameParams, first bool) ([]byte, error) {
	local, err := f.ColorTable()
	if err != nil {
		return nil, err
	}

	ext := controlExtension(p.disposal, delay)
	if p.hasTransparent && local != nil {
		if k := local.Index(p.transparent); k >= 0 {
			ext[3] |= 0x01
			ext[6] = byte(k)
		}
	}

	img, err := f.Image()
	if err != nil {
		return nil, err
	}

	embed := local != nil && !first &&
		(local.Len() != p.global.Len() || !gif.EqualTables(p.global, local))

	size := len(ext) + gif.DescriptorSize + len(img.Payload)
	if embed {
		size += len(local)
	}
	seg := make([]byte, 0, size)
	seg = append(seg, ext[:]...)
	if embed {
		code := p.globalSizeCode
		if p.exactSizeCode {
			code = f.ScreenFlags().SizeCode()
		}
		img.Descriptor.SetFlags(img.Descriptor.Flags().WithLocalTable(code))
		seg = append(seg, img.Descriptor[:]...)
		seg = append(seg, local...)
	} else {
		seg = append(seg, img.Descriptor[:]...)
	}
	return append(seg, img.Payload...), nil
}
