package gif

import "encoding/binary"

// Frame is one complete single-image GIF as read from its source. The
// underlying bytes are never modified; every accessor hands out subslices
// or copies.
type Frame struct {
	Index int
	data  []byte
}

func NewFrame(index int, data []byte) Frame {
	return Frame{Index: index, data: data}
}

// NewFrames wraps raw buffers, numbering them in input order.
func NewFrames(bufs [][]byte) []Frame {
	frames := make([]Frame, len(bufs))
	for i, b := range bufs {
		frames[i] = NewFrame(i, b)
	}
	return frames
}

func (f Frame) Bytes() []byte { return f.data }

func (f Frame) Len() int { return len(f.data) }

// Signature returns the first six bytes, or "" when the buffer is shorter.
func (f Frame) Signature() string {
	if len(f.data) < len(Signature89a) {
		return ""
	}
	return string(f.data[:len(Signature89a)])
}

// ScreenFlags returns the packed flags of the logical screen descriptor.
// Zero when the header is missing; Validate rejects such frames first.
func (f Frame) ScreenFlags() ScreenFlags {
	if len(f.data) < HeaderSize {
		return 0
	}
	return ScreenFlags(f.data[ScreenFlagsOffset])
}

// ScreenDescriptor returns the 7-byte logical screen descriptor.
func (f Frame) ScreenDescriptor() []byte {
	if len(f.data) < HeaderSize {
		return nil
	}
	return f.data[ScreenDescriptorOffset:HeaderSize]
}

// Width and Height are the logical screen dimensions.
func (f Frame) Width() uint16 {
	if len(f.data) < HeaderSize {
		return 0
	}
	return binary.LittleEndian.Uint16(f.data[6:8])
}

func (f Frame) Height() uint16 {
	if len(f.data) < HeaderSize {
		return 0
	}
	return binary.LittleEndian.Uint16(f.data[8:10])
}

// tableLen is the number of entries of the frame's own color table, 0 if absent.
func (f Frame) tableLen() int {
	flags := f.ScreenFlags()
	if !flags.HasGlobalTable() {
		return 0
	}
	return flags.TableLen()
}

// ColorTable returns the frame's own color table (the table that follows its
// logical screen descriptor), or nil when the frame carries none.
func (f Frame) ColorTable() (ColorTable, error) {
	n := f.tableLen()
	if n == 0 {
		return nil, nil
	}
	end := HeaderSize + 3*n
	if end > len(f.data) {
		return nil, truncatedError(f.Index, ErrInvalidFormat)
	}
	return ColorTable(f.data[HeaderSize:end]), nil
}

// Tail is everything between the color table and the frame's trailer byte.
func (f Frame) Tail() []byte {
	start := HeaderSize + 3*f.tableLen()
	end := len(f.data) - 1
	if start >= end {
		return nil
	}
	return f.data[start:end]
}

// Descriptor is an image descriptor including its ',' separator.
type Descriptor [DescriptorSize]byte

func (d Descriptor) Left() uint16   { return binary.LittleEndian.Uint16(d[1:3]) }
func (d Descriptor) Top() uint16    { return binary.LittleEndian.Uint16(d[3:5]) }
func (d Descriptor) Width() uint16  { return binary.LittleEndian.Uint16(d[5:7]) }
func (d Descriptor) Height() uint16 { return binary.LittleEndian.Uint16(d[7:9]) }

func (d Descriptor) Flags() DescriptorFlags { return DescriptorFlags(d[9]) }

func (d *Descriptor) SetFlags(f DescriptorFlags) { d[9] = byte(f) }

// Image is the drawable part of a frame's tail.
type Image struct {
	// Control is the source graphics control block, nil when the tail starts
	// directly with the image descriptor.
	Control    []byte
	Descriptor Descriptor
	// Payload is the LZW minimum code size and data sub-blocks, opaque here.
	Payload []byte
}

// Image splits the tail on its leading byte. An extension introducer means
// an 8-byte control block precedes the descriptor; an image separator means
// the descriptor comes first. Anything else is ErrUnexpectedBlock.
func (f Frame) Image() (Image, error) {
	c := newCursor(f.Tail(), 0)
	lead, ok := c.peek()
	if !ok {
		return Image{}, truncatedError(f.Index, ErrUnexpectedBlock)
	}

	var img Image
	switch lead {
	case ExtensionIntroducer:
		ctl, err := c.readN(ControlExtensionSize)
		if err != nil {
			return Image{}, truncatedError(f.Index, ErrUnexpectedBlock)
		}
		img.Control = ctl
	case ImageSeparator:
	default:
		return Image{}, UnexpectedBlockError(f.Index)
	}

	desc, err := c.readN(DescriptorSize)
	if err != nil {
		return Image{}, truncatedError(f.Index, ErrUnexpectedBlock)
	}
	copy(img.Descriptor[:], desc)
	img.Payload = c.rest()
	return img, nil
}
