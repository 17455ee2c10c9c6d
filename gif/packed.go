package gif

/*
ScreenPacked {
	0-2: 	GlobalColorTableSize
	  3: 	ColorTableSortFlag   | Only valid under 89a, 87a always sets it to 0
	4-6:	ColorResolution
	  7:	GlobalColorTableFlag
}
*/
type ScreenPacked byte

func (p ScreenPacked) HasGlobalTable() bool    { return p&0x80 != 0 }
func (p ScreenPacked) ColorResolution() int    { return int(p>>4) & 7 }
func (p ScreenPacked) Sorted() bool            { return p&0x08 != 0 }
func (p ScreenPacked) TableSizeExponent() byte { return byte(p) & 7 }

// TableLen is the number of global color table entries, 0 if there is none.
func (p ScreenPacked) TableLen() int {
	if !p.HasGlobalTable() {
		return 0
	}
	return tableLen(p.TableSizeExponent())
}

// NewScreenPacked assembles a logical screen descriptor packed field.
func NewScreenPacked(hasTable bool, colorResolution int, sorted bool, sizeExp byte) ScreenPacked {
	p := ScreenPacked(colorResolution&7) << 4
	p |= ScreenPacked(sizeExp & 7)
	if hasTable {
		p |= 0x80
	}
	if sorted {
		p |= 0x08
	}
	return p
}

/*
ImagePacked {
	  7: LocalColorTableFlag | this flag is set (1) if the image contains a local color table
	  6: InterlaceFlag       | this flag is set (1) if the image is interlaced
	  5: SortFlag            | only available on 89a
	3-4: Reserved
	0-2: LocalColorTableSize
}
*/
type ImagePacked byte

func (p ImagePacked) HasLocalTable() bool     { return p&0x80 != 0 }
func (p ImagePacked) Interlaced() bool        { return p&0x40 != 0 }
func (p ImagePacked) Sorted() bool            { return p&0x20 != 0 }
func (p ImagePacked) TableSizeExponent() byte { return byte(p) & 7 }

// TableLen is the number of local color table entries, 0 if there is none.
func (p ImagePacked) TableLen() int {
	if !p.HasLocalTable() {
		return 0
	}
	return tableLen(p.TableSizeExponent())
}

func NewImagePacked(hasTable, interlaced, sorted bool, sizeExp byte) ImagePacked {
	p := ImagePacked(sizeExp & 7)
	if hasTable {
		p |= 0x80
	}
	if interlaced {
		p |= 0x40
	}
	if sorted {
		p |= 0x20
	}
	return p
}

/*
ControlPacked {
	  0: TransparentColorFlag
	  1: UserInputFlag
	2-4: DisposalMethod
	5-7: Reserved
}
*/
type ControlPacked byte

func (p ControlPacked) HasTransparency() bool { return p&0x01 != 0 }
func (p ControlPacked) UserInput() bool       { return p&0x02 != 0 }
func (p ControlPacked) DisposalMethod() int   { return int(p>>2) & 7 }

func NewControlPacked(disposal int, userInput, transparent bool) ControlPacked {
	p := ControlPacked(disposal&7) << 2
	if userInput {
		p |= 0x02
	}
	if transparent {
		p |= 0x01
	}
	return p
}

// ColorTableEntries = 1 << (exp + 1)
func tableLen(exp byte) int {
	return 1 << (exp + 1)
}

// TableSizeExponent returns the smallest size exponent whose table holds n
// entries. Anything above 256 entries is clamped to 7.
func TableSizeExponent(n int) byte {
	var e byte
	for e < 7 && tableLen(e) < n {
		e++
	}
	return e
}
