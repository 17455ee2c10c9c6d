package gif

import "io"

// blockWriter frames everything written to it as sub-blocks of at most 255
// bytes. Close flushes the pending block and writes the terminator.
type blockWriter struct {
	w      io.Writer
	buf    [256]byte // buf[0] holds the length
	bufLen int
}

func newBlockWriter(w io.Writer) *blockWriter {
	return &blockWriter{w: w}
}

func (b *blockWriter) flush() error {
	if b.bufLen == 0 {
		return nil
	}
	b.buf[0] = byte(b.bufLen)
	_, err := b.w.Write(b.buf[:b.bufLen+1])
	b.bufLen = 0
	return err
}

func (b *blockWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		n := copy(b.buf[1+b.bufLen:], p)
		b.bufLen += n
		written += n
		p = p[n:]
		if b.bufLen == MAX_SUB_BLOCK_SIZE {
			if err := b.flush(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (b *blockWriter) WriteByte(c byte) error {
	b.buf[1+b.bufLen] = c
	b.bufLen++
	if b.bufLen == MAX_SUB_BLOCK_SIZE {
		return b.flush()
	}
	return nil
}

// writeSized emits data using the given sub-block sizes. It reports false,
// writing nothing, when the sizes do not describe data exactly.
func (b *blockWriter) writeSized(data []byte, sizes []int) (bool, error) {
	total := 0
	for _, s := range sizes {
		if s <= 0 || s > MAX_SUB_BLOCK_SIZE {
			return false, nil
		}
		total += s
	}
	if len(sizes) == 0 || total != len(data) {
		return false, nil
	}
	if err := b.flush(); err != nil {
		return true, err
	}
	for _, s := range sizes {
		if _, err := b.w.Write([]byte{byte(s)}); err != nil {
			return true, err
		}
		if _, err := b.w.Write(data[:s]); err != nil {
			return true, err
		}
		data = data[s:]
	}
	return true, nil
}

// Close writes the pending sub-block and the zero terminator.
func (b *blockWriter) Close() error {
	if err := b.flush(); err != nil {
		return err
	}
	_, err := b.w.Write([]byte{0})
	return err
}
