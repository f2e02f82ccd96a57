package gif

import "encoding/binary"

// cursor walks a byte slice forward. Reads never go past the end of buf;
// a short read reports ErrTruncated and leaves the position unchanged.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte, off int) *cursor {
	return &cursor{buf: buf, off: off}
}

func (c *cursor) remaining() int {
	if c.off >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

// peek returns the next byte without consuming it.
func (c *cursor) peek() (byte, bool) {
	if c.remaining() == 0 {
		return 0, false
	}
	return c.buf[c.off], true
}

func (c *cursor) readByte() (byte, error) {
	b, ok := c.peek()
	if !ok {
		return 0, ErrTruncated
	}
	c.off++
	return b, nil
}

// readN returns the next n bytes as a subslice of the underlying buffer.
func (c *cursor) readN(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, ErrTruncated
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) readU16() (uint16, error) {
	b, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) skip(n int) error {
	_, err := c.readN(n)
	return err
}

// rest consumes everything after the current position.
func (c *cursor) rest() []byte {
	if c.remaining() == 0 {
		return nil
	}
	b := c.buf[c.off:]
	c.off = len(c.buf)
	return b
}

// matchAt reports whether s appears rel bytes after the current position.
func (c *cursor) matchAt(rel int, s string) bool {
	start := c.off + rel
	if start < 0 || start+len(s) > len(c.buf) {
		return false
	}
	return string(c.buf[start:start+len(s)]) == s
}

// skipToTrailer scans byte by byte for the trailer. An extension introducer
// followed at +3 by the Netscape identifier stops the scan and reports the
// buffer as animated. Running off the end is ErrTruncated.
func (c *cursor) skipToTrailer() (animated bool, err error) {
	for ; c.off < len(c.buf); c.off++ {
		switch c.buf[c.off] {
		case ExtensionIntroducer:
			if c.matchAt(3, NetscapeIdentifier) {
				return true, nil
			}
		case Trailer:
			return false, nil
		}
	}
	return false, ErrTruncated
}

// skipSubBlocks consumes a chain of length-prefixed data sub-blocks up to and
// including the zero-length terminator.
func (c *cursor) skipSubBlocks() error {
	for {
		n, err := c.readByte()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if err := c.skip(int(n)); err != nil {
			return err
		}
	}
}
