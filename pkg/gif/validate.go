package gif

// Validate checks that f starts with a GIF signature and contains no
// Netscape application extension before its trailer.
//
// The scan starts after the color table whose size the screen flags encode,
// and moves one byte at a time, so it does not parse blocks.
func Validate(f Frame) error {
	if !ValidSignature(f.Signature()) {
		return InvalidFormatError(f.Index)
	}
	if f.Len() < HeaderSize {
		return truncatedError(f.Index, ErrInvalidFormat)
	}

	c := newCursor(f.data, HeaderSize+3*f.ScreenFlags().TableLen())
	animated, err := c.skipToTrailer()
	if err != nil {
		return truncatedError(f.Index, ErrInvalidFormat)
	}
	if animated {
		return AlreadyAnimatedError(f.Index)
	}
	return nil
}

// ValidateAll validates frames in order and stops at the first failure.
func ValidateAll(frames []Frame) error {
	for _, f := range frames {
		if err := Validate(f); err != nil {
			return err
		}
	}
	return nil
}
