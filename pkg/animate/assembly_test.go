package animate

import (
	"errors"
	"testing"

	gifx "github.com/samcharles93/gifasm/pkg/gif"
)

func TestAssemblyLifecycle(t *testing.T) {
	t.Parallel()

	a, err := NewAssembly(DefaultConfig())
	if err != nil {
		t.Fatalf("new assembly: %v", err)
	}
	f := gifx.NewFrame(0, frame(redGreen))

	if err := a.WriteFrame(f, 0); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("frame before header: got %v want %v", err, ErrNoHeader)
	}
	if _, err := a.Finish(); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("finish before header: got %v want %v", err, ErrNoHeader)
	}
	if err := a.WriteHeader(f); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := a.WriteHeader(f); !errors.Is(err, ErrHeaderWritten) {
		t.Fatalf("second header: got %v want %v", err, ErrHeaderWritten)
	}
	if err := a.WriteFrame(f, 3); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := a.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if out[len(out)-1] != gifx.Trailer {
		t.Fatalf("missing trailer")
	}
	if _, err := a.Finish(); !errors.Is(err, ErrFinished) {
		t.Fatalf("second finish: got %v want %v", err, ErrFinished)
	}
	if err := a.WriteFrame(f, 0); !errors.Is(err, ErrFinished) {
		t.Fatalf("frame after finish: got %v want %v", err, ErrFinished)
	}
}

func TestControlExtension(t *testing.T) {
	t.Parallel()

	got := controlExtension(2, 0x1234)
	want := [8]byte{0x21, 0xF9, 0x04, 0x08, 0x34, 0x12, 0x00, 0x00}
	if got != want {
		t.Fatalf("got %x want %x", got, want)
	}
}

func TestConfigLoopCount(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   int
		want uint16
	}{{-1, 0}, {0, 0}, {1, 1}, {MaxLoops, MaxLoops}, {MaxLoops + 1, MaxLoops}} {
		if got := (Config{Loops: tc.in}).LoopCount(); got != tc.want {
			t.Errorf("LoopCount(%d): got %d want %d", tc.in, got, tc.want)
		}
	}
}
