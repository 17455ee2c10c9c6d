package gif

import "io"

// bitReader reads variable width codes packed least significant bit first.
type bitReader struct {
	r     io.ByteReader
	bits  uint32
	nBits uint
}

func newBitReader(r io.ByteReader) *bitReader {
	return &bitReader{r: r}
}

// readCode returns the next width-bit code. Errors from the byte source are
// passed through unchanged, including io.EOF.
func (b *bitReader) readCode(width uint) (uint16, error) {
	for b.nBits < width {
		x, err := b.r.ReadByte()
		if err != nil {
			return 0, err
		}
		b.bits |= uint32(x) << b.nBits
		b.nBits += 8
	}
	code := uint16(b.bits & (1<<width - 1))
	b.bits >>= width
	b.nBits -= width
	return code, nil
}

// bitWriter packs codes least significant bit first.
type bitWriter struct {
	w     io.ByteWriter
	bits  uint32
	nBits uint
}

func newBitWriter(w io.ByteWriter) *bitWriter {
	return &bitWriter{w: w}
}

func (b *bitWriter) writeCode(code uint16, width uint) error {
	b.bits |= uint32(code) << b.nBits
	b.nBits += width
	for b.nBits >= 8 {
		if err := b.w.WriteByte(byte(b.bits)); err != nil {
			return err
		}
		b.bits >>= 8
		b.nBits -= 8
	}
	return nil
}

// flush writes the remaining bits padded with zeros.
func (b *bitWriter) flush() error {
	if b.nBits == 0 {
		return nil
	}
	err := b.w.WriteByte(byte(b.bits))
	b.bits, b.nBits = 0, 0
	return err
}
