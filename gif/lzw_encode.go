package gif

import (
	"bytes"
	"fmt"
	"io"
)

// lzwEncoder is the mirror image of lzwDecoder. hi is the last code handed
// out and always equals the decoder's next code after the same input, so
// both sides widen and clear on the same code.
type lzwEncoder struct {
	bw       *bitWriter
	litWidth uint
	clear    uint16
	end      uint16
	width    uint
	hi       uint16
	overflow uint16
	table    map[uint32]uint16 // prefix<<8 | byte -> code
}

func newLZWEncoder(w io.ByteWriter, minCodeSize int) *lzwEncoder {
	e := &lzwEncoder{
		bw:       newBitWriter(w),
		litWidth: uint(minCodeSize),
	}
	e.clear = 1 << e.litWidth
	e.end = e.clear + 1
	e.reset()
	return e
}

func (e *lzwEncoder) reset() {
	e.width = e.litWidth + 1
	e.hi = e.end
	e.overflow = 1 << e.width
	e.table = make(map[uint32]uint16)
}

func (e *lzwEncoder) write(code uint16) error {
	return e.bw.writeCode(code, e.width)
}

// incHi reserves the next code. When the 12-bit code space runs out a clear
// code is written and the dictionary starts over; full is then true and the
// code must not be stored.
func (e *lzwEncoder) incHi() (full bool, err error) {
	e.hi++
	if e.hi == e.overflow {
		e.width++
		e.overflow <<= 1
	}
	if e.hi == lzwMaxCodes-1 {
		if err := e.write(e.clear); err != nil {
			return true, err
		}
		e.reset()
		return true, nil
	}
	return false, nil
}

func (e *lzwEncoder) encode(pixels []byte) error {
	if err := e.write(e.clear); err != nil {
		return err
	}
	if len(pixels) > 0 {
		prefix := uint16(pixels[0])
		for _, c := range pixels[1:] {
			key := uint32(prefix)<<8 | uint32(c)
			if code, ok := e.table[key]; ok {
				prefix = code
				continue
			}
			if err := e.write(prefix); err != nil {
				return err
			}
			prefix = uint16(c)
			full, err := e.incHi()
			if err != nil {
				return err
			}
			if !full {
				e.table[key] = e.hi
			}
		}
		if err := e.write(prefix); err != nil {
			return err
		}
		if _, err := e.incHi(); err != nil {
			return err
		}
	}
	if err := e.write(e.end); err != nil {
		return err
	}
	return e.bw.flush()
}

// encodeLZW compresses pixels into w. Framing into sub-blocks is left to w.
func encodeLZW(w io.ByteWriter, pixels []byte, minCodeSize int) error {
	if err := checkCodeSize(minCodeSize); err != nil {
		return err
	}
	limit := 1 << minCodeSize
	for i, p := range pixels {
		if int(p) >= limit {
			return fmt.Errorf("%w: pixel %d has index %d, code size %d", ErrPixelRange, i, p, minCodeSize)
		}
	}
	return newLZWEncoder(w, minCodeSize).encode(pixels)
}

// EncodePixels compresses pixels with the given minimum code size and returns
// the sub-block framed stream, terminator included.
func EncodePixels(pixels []byte, minCodeSize int) ([]byte, error) {
	var buf bytes.Buffer
	bw := newBlockWriter(&buf)
	if err := encodeLZW(bw, pixels, minCodeSize); err != nil {
		return nil, wrapErr(err, -1, "encoding image data")
	}
	if err := bw.Close(); err != nil {
		return nil, wrapErr(err, -1, "encoding image data")
	}
	return buf.Bytes(), nil
}
