package gif

const (
	flagColorTable = 0x80
	flagInterlace  = 0x40
	flagSorted     = 0x20
	maskSizeCode   = 0x07
)

// TableLen is the number of entries encoded by a 3-bit color table size code.
func TableLen(sizeCode uint8) int {
	return 2 << (sizeCode & maskSizeCode)
}

/*
ScreenFlags {
	0-2: GlobalColorTableSize
	  3: SortFlag
	4-6: ColorResolution
	  7: GlobalColorTableFlag
}
*/
type ScreenFlags uint8

func (f ScreenFlags) HasGlobalTable() bool { return f&flagColorTable != 0 }

func (f ScreenFlags) SizeCode() uint8 { return uint8(f) & maskSizeCode }

// TableLen is the entry count the size code describes, whether or not the
// table is present.
func (f ScreenFlags) TableLen() int { return TableLen(f.SizeCode()) }

/*
DescriptorFlags {
	0-2: LocalColorTableSize
	3-4: Reserved
	  5: SortFlag
	  6: InterlaceFlag
	  7: LocalColorTableFlag
}
*/
type DescriptorFlags uint8

func (f DescriptorFlags) HasLocalTable() bool { return f&flagColorTable != 0 }

func (f DescriptorFlags) Interlaced() bool { return f&flagInterlace != 0 }

func (f DescriptorFlags) Sorted() bool { return f&flagSorted != 0 }

func (f DescriptorFlags) ColorTableSizeCode() uint8 { return uint8(f) & maskSizeCode }

// WithLocalTable sets the local table bit and replaces the size field with
// sizeCode. Every other bit is kept.
func (f DescriptorFlags) WithLocalTable(sizeCode uint8) DescriptorFlags {
	v := uint8(f) | flagColorTable
	v &^= maskSizeCode
	v |= sizeCode & maskSizeCode
	return DescriptorFlags(v)
}
