package animate

import (
	"bytes"
	"errors"
	"image/color"
	"image/gif"
	"testing"

	"github.com/samcharles93/gifasm/internal/giftest"
	gifx "github.com/samcharles93/gifasm/pkg/gif"
)

// Two tables without black, so the default transparency never matches.
var (
	redGreen  = []byte{0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00}
	blueWhite = []byte{0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	fourColor = []byte{
		0xFF, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0xFF,
		0xFF, 0xFF, 0xFF,
	}
)

func frame(table []byte) []byte {
	return giftest.Build(giftest.Spec{Table: table})
}

func segment(disposal byte, delay uint16, descFlags byte, table []byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x21, 0xF9, 0x04, disposal << 2, byte(delay), byte(delay >> 8), 0x00, 0x00})
	b.Write(giftest.Descriptor(descFlags))
	b.Write(table)
	b.Write(giftest.Payload)
	return b.Bytes()
}

func TestAssembleExactBytes(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(redGreen), frame(redGreen)}, []uint16{10, 20}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	var want bytes.Buffer
	want.WriteString("GIF89a")
	want.Write([]byte{0x01, 0x00, 0x01, 0x00, 0xF0, 0x00, 0x00})
	want.Write(redGreen)
	want.WriteString("!\xFF\x0BNETSCAPE2.0\x03\x01\x00\x00\x00")
	want.Write(segment(2, 10, 0x00, nil))
	want.Write(segment(2, 20, 0x00, nil))
	want.WriteByte(';')

	if !bytes.Equal(out, want.Bytes()) {
		t.Fatalf("output mismatch\n got %x\nwant %x", out, want.Bytes())
	}
}

func TestAssembleFrameOrder(t *testing.T) {
	t.Parallel()

	markers := []byte{0x11, 0x22, 0x33, 0x44}
	bufs := make([][]byte, len(markers))
	for i, m := range markers {
		bufs[i] = giftest.Build(giftest.Spec{Table: redGreen, Payload: []byte{0x02, 0x01, m, 0x00}})
	}
	out, err := Assemble(bufs, []uint16{1, 2, 3, 4}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	l, err := gifx.Walk(out)
	if err != nil {
		t.Fatalf("walk output: %v", err)
	}
	if l.Images() != len(markers) {
		t.Fatalf("images: got %d want %d", l.Images(), len(markers))
	}
	last := -1
	for i, m := range markers {
		pos := bytes.Index(out, []byte{0x02, 0x01, m, 0x00})
		if pos <= last {
			t.Fatalf("frame %d payload at %d, previous at %d", i, pos, last)
		}
		last = pos
	}
}

func TestAssembleDropsIdenticalTable(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(fourColor), frame(fourColor)}, []uint16{0, 0}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	l, err := gifx.Walk(out)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	for _, b := range l.Blocks {
		if b.Kind == gifx.BlockImage && b.Flags.HasLocalTable() {
			t.Fatalf("image at %d carries a local table", b.Offset)
		}
	}
}

func TestAssembleEmbedsDifferentTable(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(redGreen), frame(blueWhite)}, []uint16{0, 0}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	second := segment(2, 0, 0x80, blueWhite)
	if !bytes.HasSuffix(out, append(second, ';')) {
		t.Fatalf("second segment not embedded verbatim\n got %x\nwant suffix %x;", out, second)
	}
}

func TestAssembleDifferentLengthReusesGlobalSizeCode(t *testing.T) {
	t.Parallel()

	bufs := [][]byte{frame(redGreen), frame(fourColor)}
	out, err := Assemble(bufs, []uint16{0, 0}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	// Global table has size code 0; the embedded four-entry table keeps it.
	if !bytes.HasSuffix(out, append(segment(2, 0, 0x80, fourColor), ';')) {
		t.Fatalf("expected global size code in descriptor, got %x", out)
	}

	cfg := DefaultConfig()
	cfg.ExactLocalSizeCode = true
	out, err = Assemble(bufs, []uint16{0, 0}, cfg)
	if err != nil {
		t.Fatalf("assemble exact: %v", err)
	}
	if !bytes.HasSuffix(out, append(segment(2, 0, 0x81, fourColor), ';')) {
		t.Fatalf("expected frame size code in descriptor, got %x", out)
	}
	if _, err := gifx.Walk(out); err != nil {
		t.Fatalf("exact size code output should walk cleanly: %v", err)
	}
}

func TestAssembleFirstFrameKeepsGlobalTable(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(blueWhite)}, []uint16{5}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if bytes.Count(out, blueWhite) != 1 {
		t.Fatalf("first frame table should appear once, as the global table: %x", out)
	}
}

func TestAssembleTransparency(t *testing.T) {
	t.Parallel()

	withBlack := []byte{
		0xFF, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
	}
	red := gifx.RGB{R: 0xFF}
	tests := []struct {
		name      string
		cfg       Config
		wantFlag  byte
		wantIndex byte
	}{
		{"default resolves to black", DefaultConfig(), 0x09, 2},
		{"configured color ignored by default", Config{Disposal: 2, Transparent: &red}, 0x09, 2},
		{"honored color", Config{Disposal: 2, Transparent: &red, HonorTransparent: true}, 0x09, 0},
		{"honored none", Config{Disposal: 2, HonorTransparent: true}, 0x08, 0},
		{"no match", Config{Disposal: 2, Transparent: &gifx.RGB{R: 1}, HonorTransparent: true}, 0x08, 0},
	}
	for _, tc := range tests {
		out, err := Assemble([][]byte{frame(withBlack)}, []uint16{0}, tc.cfg)
		if err != nil {
			t.Fatalf("%s: assemble: %v", tc.name, err)
		}
		ext := bytes.Index(out, []byte{0x21, 0xF9, 0x04})
		if ext < 0 {
			t.Fatalf("%s: no control extension", tc.name)
		}
		if out[ext+3] != tc.wantFlag || out[ext+6] != tc.wantIndex {
			t.Errorf("%s: packed %#02x index %d, want %#02x index %d",
				tc.name, out[ext+3], out[ext+6], tc.wantFlag, tc.wantIndex)
		}
	}
}

func TestAssembleNoTableSkipsTransparency(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{giftest.Build(giftest.Spec{})}, []uint16{0}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	// No global table in frame 0: bare signature, then the segment.
	want := append([]byte("GIF89a"), segment(2, 0, 0x00, nil)...)
	want = append(want, ';')
	if !bytes.Equal(out, want) {
		t.Fatalf("got %x want %x", out, want)
	}
}

func TestAssembleLoopCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loops int
		want  [2]byte
	}{
		{0, [2]byte{0x00, 0x00}},
		{5, [2]byte{0x05, 0x00}},
		{300, [2]byte{0x2C, 0x01}},
		{-3, [2]byte{0x00, 0x00}},
		{70000, [2]byte{0xFF, 0xFF}},
	}
	for _, tc := range tests {
		cfg := DefaultConfig()
		cfg.Loops = tc.loops
		out, err := Assemble([][]byte{frame(redGreen)}, []uint16{0}, cfg)
		if err != nil {
			t.Fatalf("loops=%d: assemble: %v", tc.loops, err)
		}
		i := bytes.Index(out, []byte("NETSCAPE2.0\x03\x01"))
		if i < 0 {
			t.Fatalf("loops=%d: no loop extension", tc.loops)
		}
		got := [2]byte{out[i+13], out[i+14]}
		if got != tc.want || out[i+15] != 0x00 {
			t.Errorf("loops=%d: got %x want %x", tc.loops, got, tc.want)
		}
	}
}

func TestAssembleDelayBytes(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(redGreen)}, []uint16{250}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	ext := bytes.Index(out, []byte{0x21, 0xF9, 0x04})
	if out[ext+4] != 0xFA || out[ext+5] != 0x00 {
		t.Fatalf("delay bytes: got %#02x %#02x want 0xfa 0x00", out[ext+4], out[ext+5])
	}
}

func TestAssembleDiscardsSourceControlBlock(t *testing.T) {
	t.Parallel()

	src := giftest.Build(giftest.Spec{Table: redGreen, Control: true})
	out, err := Assemble([][]byte{src}, []uint16{7}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if n := bytes.Count(out, []byte{0x21, 0xF9}); n != 1 {
		t.Fatalf("control extensions: got %d want 1", n)
	}
	if !bytes.Contains(out, segment(2, 7, 0x00, nil)) {
		t.Fatalf("missing rebuilt segment: %x", out)
	}
}

func TestAssembleErrors(t *testing.T) {
	t.Parallel()

	good := frame(redGreen)
	tests := []struct {
		name   string
		bufs   [][]byte
		delays []uint16
		cfg    Config
		want   error
		index  int
	}{
		{"no frames", nil, nil, DefaultConfig(), ErrNoFrames, -1},
		{"delay mismatch", [][]byte{good, good}, []uint16{1}, DefaultConfig(), ErrDelayCount, -1},
		{"bad disposal", [][]byte{good}, []uint16{1}, Config{Disposal: 8}, ErrInvalidDisposal, -1},
		{"invalid signature", [][]byte{good, []byte("JFIF00\x00\x00\x00\x00\x00\x00\x00;")}, []uint16{1, 1}, DefaultConfig(), gifx.ErrInvalidFormat, 1},
		{"animated input", [][]byte{good, good, giftest.Build(giftest.Spec{Table: redGreen, BeforeImage: giftest.NetscapeBlock})}, []uint16{1, 1, 1}, DefaultConfig(), gifx.ErrAlreadyAnimated, 2},
		{"unexpected block", [][]byte{good, giftest.Build(giftest.Spec{Table: redGreen, BeforeImage: []byte{0x00}})}, []uint16{1, 1}, DefaultConfig(), gifx.ErrUnexpectedBlock, 1},
	}
	for _, tc := range tests {
		out, err := Assemble(tc.bufs, tc.delays, tc.cfg)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v want %v", tc.name, err, tc.want)
			continue
		}
		if out != nil {
			t.Errorf("%s: expected no output on failure, got %d bytes", tc.name, len(out))
		}
		if tc.index >= 0 {
			if idx, ok := gifx.FrameIndex(err); !ok || idx != tc.index {
				t.Errorf("%s: frame index: got %d want %d", tc.name, idx, tc.index)
			}
		}
	}
}

func TestAssembleRefeedIsAlreadyAnimated(t *testing.T) {
	t.Parallel()

	out, err := Assemble([][]byte{frame(redGreen), frame(blueWhite)}, []uint16{10, 10}, DefaultConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	_, err = Assemble([][]byte{out}, []uint16{10}, DefaultConfig())
	if !errors.Is(err, gifx.ErrAlreadyAnimated) {
		t.Fatalf("expected already animated, got %v", err)
	}
	if idx, _ := gifx.FrameIndex(err); idx != 0 {
		t.Fatalf("frame index: got %d want 0", idx)
	}
}

func TestAssembleDecodesWithImageGIF(t *testing.T) {
	t.Parallel()

	pal := color.Palette{
		color.RGBA{0xFF, 0x00, 0x00, 0xFF},
		color.RGBA{0x00, 0xFF, 0x00, 0xFF},
		color.RGBA{0x00, 0x00, 0xFF, 0xFF},
		color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	}
	other := color.Palette{
		color.RGBA{0x10, 0x20, 0x30, 0xFF},
		color.RGBA{0x40, 0x50, 0x60, 0xFF},
		color.RGBA{0x70, 0x80, 0x90, 0xFF},
		color.RGBA{0xA0, 0xB0, 0xC0, 0xFF},
	}
	bufs := [][]byte{
		giftest.Encode(t, pal, 8, 6, 0),
		giftest.Encode(t, pal, 8, 6, 1),
		giftest.Encode(t, other, 8, 6, 2),
	}
	cfg := DefaultConfig()
	cfg.Loops = 3
	out, err := Assemble(bufs, []uint16{10, 20, 30}, cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	g, err := gif.DecodeAll(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode assembled output: %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("frames: got %d want 3", len(g.Image))
	}
	for i, want := range []int{10, 20, 30} {
		if g.Delay[i] != want {
			t.Errorf("delay %d: got %d want %d", i, g.Delay[i], want)
		}
		if g.Disposal[i] != gif.DisposalBackground {
			t.Errorf("disposal %d: got %d want %d", i, g.Disposal[i], gif.DisposalBackground)
		}
	}
	if g.LoopCount != 3 {
		t.Fatalf("loop count: got %d want 3", g.LoopCount)
	}
	if got := g.Image[2].Palette[2]; got != other[2] {
		t.Fatalf("third frame local palette: got %v want %v", got, other[2])
	}
	if got := g.Image[1].ColorIndexAt(0, 0); got != 1 {
		t.Fatalf("second frame pixel index: got %d want 1", got)
	}
}
