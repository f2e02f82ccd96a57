package animate

import (
	"encoding/binary"

	"github.com/samcharles93/gifasm/pkg/gif"
)

// loopExtension builds the Netscape application extension for loops.
func loopExtension(loops uint16) []byte {
	ext := make([]byte, 0, 19)
	ext = append(ext, gif.ExtensionIntroducer, gif.LabelApplication, 11)
	ext = append(ext, gif.NetscapeApplication...)
	ext = append(ext, 3, 1)
	ext = binary.LittleEndian.AppendUint16(ext, loops)
	return append(ext, 0)
}

// header returns the animation header derived from frame 0: the GIF89a
// signature, then, when frame 0 has a global color table, its logical
// screen descriptor, the table and the loop extension. Without a global
// table only the signature is produced.
func header(first gif.Frame, loops uint16) ([]byte, error) {
	out := []byte(gif.Signature89a)
	flags := first.ScreenFlags()
	if !flags.HasGlobalTable() {
		return out, nil
	}
	table, err := first.ColorTable()
	if err != nil {
		return nil, err
	}
	out = append(out, first.ScreenDescriptor()...)
	out = append(out, table...)
	return append(out, loopExtension(loops)...), nil
}
