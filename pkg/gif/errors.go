package gif

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat   = errors.New("not a GIF87a/GIF89a image")
	ErrAlreadyAnimated = errors.New("image is already animated")
	ErrUnexpectedBlock = errors.New("unexpected block before image descriptor")
	ErrTruncated       = errors.New("truncated GIF data")
)

// FrameError ties a structural failure to the index of the offending input frame.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

func InvalidFormatError(index int) error {
	return &FrameError{Index: index, Err: ErrInvalidFormat}
}

func AlreadyAnimatedError(index int) error {
	return &FrameError{Index: index, Err: ErrAlreadyAnimated}
}

func UnexpectedBlockError(index int) error {
	return &FrameError{Index: index, Err: ErrUnexpectedBlock}
}

// truncatedError keeps the error kind and adds ErrTruncated as the cause.
func truncatedError(index int, kind error) error {
	return &FrameError{Index: index, Err: fmt.Errorf("%w: %w", kind, ErrTruncated)}
}

// FrameIndex returns the offending frame index carried by err, if any.
func FrameIndex(err error) (int, bool) {
	var fe *FrameError
	if errors.As(err, &fe) {
		return fe.Index, true
	}
	return -1, false
}
