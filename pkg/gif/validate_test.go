package gif

import (
	"errors"
	"testing"

	"github.com/samcharles93/gifasm/internal/giftest"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"gif89a", giftest.Build(giftest.Spec{Table: twoColors}), nil},
		{"gif87a", giftest.Build(giftest.Spec{Signature: Signature87a, Table: twoColors}), nil},
		{"with control block", giftest.Build(giftest.Spec{Table: twoColors, Control: true}), nil},
		{"png signature", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x00\x00;"), ErrInvalidFormat},
		{"gif90a", giftest.Build(giftest.Spec{Signature: "GIF90a", Table: twoColors}), ErrInvalidFormat},
		{"empty", nil, ErrInvalidFormat},
		{"header only", []byte("GIF89a\x01\x00"), ErrTruncated},
		{"no trailer", giftest.Build(giftest.Spec{Table: twoColors, NoTrailer: true}), ErrTruncated},
		{"netscape", giftest.Build(giftest.Spec{Table: twoColors, BeforeImage: giftest.NetscapeBlock}), ErrAlreadyAnimated},
	}
	for _, tc := range tests {
		err := Validate(NewFrame(2, tc.data))
		if tc.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v want %v", tc.name, err, tc.want)
			continue
		}
		if idx, ok := FrameIndex(err); !ok || idx != 2 {
			t.Errorf("%s: frame index: got %d want 2", tc.name, idx)
		}
	}
}

func TestValidateTruncationKeepsKind(t *testing.T) {
	t.Parallel()

	err := Validate(NewFrame(0, giftest.Build(giftest.Spec{Table: twoColors, NoTrailer: true})))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("missing trailer should be an invalid format error, got %v", err)
	}
}

func TestValidateAllFailsFast(t *testing.T) {
	t.Parallel()

	frames := NewFrames([][]byte{
		giftest.Build(giftest.Spec{Table: twoColors}),
		giftest.Build(giftest.Spec{Table: twoColors, BeforeImage: giftest.NetscapeBlock}),
		[]byte("not a gif at all"),
	})
	err := ValidateAll(frames)
	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FrameError, got %T %v", err, err)
	}
	if fe.Index != 1 || !errors.Is(err, ErrAlreadyAnimated) {
		t.Fatalf("got %v, want already animated at index 1", err)
	}
}

func TestFrameErrorMessage(t *testing.T) {
	t.Parallel()

	if got := UnexpectedBlockError(7).Error(); got != "frame 7: unexpected block before image descriptor" {
		t.Fatalf("message: got %q", got)
	}
	if _, ok := FrameIndex(errors.New("other")); ok {
		t.Fatal("plain error should carry no frame index")
	}
}
