package gif

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

const (
	lzwMaxWidth = 12
	lzwMaxCodes = 1 << lzwMaxWidth
	lzwNoCode   = 0xFFFF
)

func checkCodeSize(minCodeSize int) error {
	if minCodeSize < 2 || minCodeSize > 8 {
		return fmt.Errorf("%w: %d", ErrCodeSize, minCodeSize)
	}
	return nil
}

// lzwDecoder holds the dictionary for a single image. Every entry is stored
// as a prefix code plus one suffix byte, so expanding a code walks the chain
// backwards.
type lzwDecoder struct {
	clear uint16
	end   uint16
	next  uint16
	width uint
	prev  uint16

	prefix [lzwMaxCodes]uint16
	suffix [lzwMaxCodes]byte
	first  [lzwMaxCodes]byte
	length [lzwMaxCodes]uint16

	litWidth uint
	out      []byte
}

func newLZWDecoder(minCodeSize int) *lzwDecoder {
	d := &lzwDecoder{litWidth: uint(minCodeSize)}
	d.clear = 1 << d.litWidth
	d.end = d.clear + 1
	for i := uint16(0); i < d.clear; i++ {
		d.prefix[i] = lzwNoCode
		d.suffix[i] = byte(i)
		d.first[i] = byte(i)
		d.length[i] = 1
	}
	d.reset()
	return d
}

// reset drops every entry added since the last clear code.
func (d *lzwDecoder) reset() {
	d.next = d.clear + 2
	d.width = d.litWidth + 1
	d.prev = lzwNoCode
}

// emit appends the expansion of code to the output.
func (d *lzwDecoder) emit(code uint16) {
	n := int(d.length[code])
	start := len(d.out)
	d.out = slices.Grow(d.out, n)[:start+n]
	for i := start + n - 1; i >= start; i-- {
		d.out[i] = d.suffix[code]
		code = d.prefix[code]
	}
}

// step handles a single data code.
func (d *lzwDecoder) step(code uint16) error {
	var head byte
	switch {
	case code < d.next:
		head = d.first[code]
		d.emit(code)
	case d.prev != lzwNoCode:
		// code is the one about to be defined (or past it, in a damaged
		// stream): prev + first byte of prev
		head = d.first[d.prev]
		d.emit(d.prev)
		d.out = append(d.out, head)
	default:
		return fmt.Errorf("%w: %d (next %d)", ErrInvalidCode, code, d.next)
	}

	if d.prev != lzwNoCode {
		if d.next < lzwMaxCodes {
			d.prefix[d.next] = d.prev
			d.suffix[d.next] = head
			d.first[d.next] = d.first[d.prev]
			d.length[d.next] = d.length[d.prev] + 1
			d.next++
		}
		if d.next == 1<<d.width && d.width < lzwMaxWidth {
			d.width++
		}
	}
	d.prev = code
	return nil
}

// decode reads codes until the end code. Running out of input is not an
// error: whatever was decoded so far is returned.
func (d *lzwDecoder) decode(r io.ByteReader) ([]byte, error) {
	br := newBitReader(r)
	for {
		code, err := br.readCode(d.width)
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return d.out, nil
		}
		if err != nil {
			return d.out, err
		}

		switch code {
		case d.end:
			return d.out, nil
		case d.clear:
			d.reset()
		default:
			if err := d.step(code); err != nil {
				return d.out, err
			}
		}
	}
}

func decodeLZW(r io.ByteReader, minCodeSize int) ([]byte, error) {
	if err := checkCodeSize(minCodeSize); err != nil {
		return nil, err
	}
	return newLZWDecoder(minCodeSize).decode(r)
}

// DecodePixels decompresses sub-block framed LZW data, as found after the
// minimum code size byte of an image block, into one index per pixel.
func DecodePixels(r io.Reader, minCodeSize int) ([]byte, error) {
	cr := newCountingReader(r)
	out, err := decodeLZW(newBlockReader(cr), minCodeSize)
	if err != nil {
		return nil, wrapErr(err, cr.n, "decoding image data")
	}
	return out, nil
}
