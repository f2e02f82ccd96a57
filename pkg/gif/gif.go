// Package gif is a structural view over raw GIF87a/GIF89a bitstreams.
//
// Nothing here decodes pixels. The package locates blocks by offset, exposes
// the packed flag bytes as bitfield types and checks that a buffer is a single,
// non-animated image that can be spliced into an animation.
//
// Format reference: https://www.w3.org/Graphics/GIF/spec-gif89a.txt
package gif

const (
	Signature87a = "GIF87a"
	Signature89a = "GIF89a"

	// HeaderSize covers the signature and the logical screen descriptor.
	HeaderSize = 13
	// ScreenDescriptorOffset is where the 7-byte logical screen descriptor starts.
	ScreenDescriptorOffset = 6
	ScreenDescriptorSize   = 7
	// ScreenFlagsOffset is the packed flags byte of the logical screen descriptor.
	ScreenFlagsOffset = 10

	// DescriptorSize is the image descriptor including its leading separator.
	DescriptorSize = 10
	// ControlExtensionSize is a complete graphics control extension block.
	ControlExtensionSize = 8
)

// Block introducers and extension labels.
const (
	ExtensionIntroducer = 0x21 // '!'
	ImageSeparator      = 0x2C // ','
	Trailer             = 0x3B // ';'

	LabelGraphicControl = 0xF9
	LabelApplication    = 0xFF
	LabelComment        = 0xFE
	LabelPlainText      = 0x01
)

const (
	// NetscapeIdentifier marks the looping application extension.
	NetscapeIdentifier  = "NETSCAPE"
	NetscapeApplication = "NETSCAPE2.0"
)

// ValidSignature reports whether sig is one of the two GIF revisions.
func ValidSignature(sig string) bool {
	return sig == Signature87a || sig == Signature89a
}
