package gif

import (
	"encoding/binary"
	"fmt"
)

type BlockKind int

const (
	BlockGlobalTable BlockKind = iota
	BlockExtension
	BlockImage
	BlockTrailer
)

func (k BlockKind) String() string {
	switch k {
	case BlockGlobalTable:
		return "global-color-table"
	case BlockExtension:
		return "extension"
	case BlockImage:
		return "image"
	case BlockTrailer:
		return "trailer"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BlockKind) UnmarshalText(b []byte) error {
	for c := BlockGlobalTable; c <= BlockTrailer; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", b)
}

// Block is one top-level block found by Walk. Only the fields relevant to
// its kind are set.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Offset int       `json:"offset"`
	Size   int       `json:"size"`

	// Extensions
	Label       byte   `json:"label,omitempty"`
	Application string `json:"application,omitempty"`
	LoopCount   int    `json:"loop_count,omitempty"`

	// Graphic control
	Delay            uint16 `json:"delay,omitempty"`
	Disposal         uint8  `json:"disposal,omitempty"`
	Transparent      bool   `json:"transparent,omitempty"`
	TransparentIndex uint8  `json:"transparent_index,omitempty"`

	// Images
	Left          uint16          `json:"left,omitempty"`
	Top           uint16          `json:"top,omitempty"`
	Width         uint16          `json:"width,omitempty"`
	Height        uint16          `json:"height,omitempty"`
	Flags         DescriptorFlags `json:"flags,omitempty"`
	LocalTableLen int             `json:"local_table_len,omitempty"`
}

// Layout is the block structure of a GIF bitstream.
type Layout struct {
	Version     string      `json:"version"`
	Width       uint16      `json:"width"`
	Height      uint16      `json:"height"`
	ScreenFlags ScreenFlags `json:"screen_flags"`
	Blocks      []Block     `json:"blocks"`
}

// Images counts image descriptors.
func (l *Layout) Images() int {
	n := 0
	for _, b := range l.Blocks {
		if b.Kind == BlockImage {
			n++
		}
	}
	return n
}

// LoopCount returns the Netscape loop count and whether the extension exists.
func (l *Layout) LoopCount() (int, bool) {
	for _, b := range l.Blocks {
		if b.Kind == BlockExtension && b.Application == NetscapeApplication {
			return b.LoopCount, true
		}
	}
	return 0, false
}

// Walk parses the block structure of data without decoding image data. It
// accepts multi-image streams, so it can describe assembled output as well as
// source frames.
func Walk(data []byte) (*Layout, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncated
	}
	if !ValidSignature(string(data[:6])) {
		return nil, ErrInvalidFormat
	}
	l := &Layout{
		Version:     string(data[3:6]),
		Width:       binary.LittleEndian.Uint16(data[6:8]),
		Height:      binary.LittleEndian.Uint16(data[8:10]),
		ScreenFlags: ScreenFlags(data[ScreenFlagsOffset]),
	}

	c := newCursor(data, HeaderSize)
	if l.ScreenFlags.HasGlobalTable() {
		size := 3 * l.ScreenFlags.TableLen()
		if err := c.skip(size); err != nil {
			return nil, fmt.Errorf("global color table: %w", err)
		}
		l.Blocks = append(l.Blocks, Block{Kind: BlockGlobalTable, Offset: HeaderSize, Size: size})
	}

	for {
		start := c.off
		sep, err := c.readByte()
		if err != nil {
			return nil, fmt.Errorf("missing trailer: %w", err)
		}
		switch sep {
		case Trailer:
			l.Blocks = append(l.Blocks, Block{Kind: BlockTrailer, Offset: start, Size: 1})
			return l, nil
		case ExtensionIntroducer:
			b, err := walkExtension(c)
			if err != nil {
				return nil, fmt.Errorf("extension at %d: %w", start, err)
			}
			b.Offset, b.Size = start, c.off-start
			l.Blocks = append(l.Blocks, b)
		case ImageSeparator:
			b, err := walkImage(c)
			if err != nil {
				return nil, fmt.Errorf("image at %d: %w", start, err)
			}
			b.Offset, b.Size = start, c.off-start
			l.Blocks = append(l.Blocks, b)
		default:
			return nil, fmt.Errorf("%w: 0x%02x at %d", ErrUnexpectedBlock, sep, start)
		}
	}
}

func walkExtension(c *cursor) (Block, error) {
	b := Block{Kind: BlockExtension}
	label, err := c.readByte()
	if err != nil {
		return b, err
	}
	b.Label = label

	n, err := c.readByte()
	if err != nil {
		return b, err
	}
	if n == 0 {
		return b, nil
	}
	head, err := c.readN(int(n))
	if err != nil {
		return b, err
	}

	switch {
	case label == LabelGraphicControl && n == 4:
		b.Disposal = (head[0] >> 2) & 0x07
		b.Delay = binary.LittleEndian.Uint16(head[1:3])
		b.Transparent = head[0]&0x01 != 0
		b.TransparentIndex = head[3]
	case label == LabelApplication && n == 11:
		b.Application = string(head)
		if b.Application == NetscapeApplication {
			if sub, ok := c.peek(); ok && sub == 3 && c.matchAt(1, "\x01") {
				data, err := c.readN(4)
				if err != nil {
					return b, err
				}
				b.LoopCount = int(binary.LittleEndian.Uint16(data[2:4]))
			}
		}
	}
	return b, c.skipSubBlocks()
}

func walkImage(c *cursor) (Block, error) {
	b := Block{Kind: BlockImage}
	var d Descriptor
	d[0] = ImageSeparator
	raw, err := c.readN(DescriptorSize - 1)
	if err != nil {
		return b, err
	}
	copy(d[1:], raw)
	b.Left, b.Top, b.Width, b.Height = d.Left(), d.Top(), d.Width(), d.Height()
	b.Flags = d.Flags()
	if b.Flags.HasLocalTable() {
		b.LocalTableLen = TableLen(b.Flags.ColorTableSizeCode())
		if err := c.skip(3 * b.LocalTableLen); err != nil {
			return b, err
		}
	}
	// LZW minimum code size
	if err := c.skip(1); err != nil {
		return b, err
	}
	return b, c.skipSubBlocks()
}
