package gif

import (
	"bufio"
	"errors"
	"io"
)

type byteReader interface {
	io.Reader
	io.ByteReader
}

// countingReader counts the bytes consumed from the source so that format
// errors can point at an offset.
type countingReader struct {
	r byteReader
	n int64
}

func newCountingReader(r io.Reader) *countingReader {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &countingReader{r: br}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

// blockReader turns a sequence of sub-blocks into a plain byte stream. The
// zero length terminator reads as io.EOF. A stream that ends without a
// terminator yields the bytes that were present and then io.ErrUnexpectedEOF.
type blockReader struct {
	buf     [255]byte
	bufLen  int
	bufNext int
	err     error
	sizes   []int // length of every sub-block read so far
	r       byteReader
}

func newBlockReader(r byteReader) *blockReader {
	return &blockReader{
		r:       r,
		bufLen:  0,
		bufNext: 0,
	}
}

func (v *blockReader) readNextBlock() error {
	blockSize, err := v.r.ReadByte()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	if blockSize == 0 {
		return io.EOF
	}
	n, err := io.ReadFull(v.r, v.buf[:blockSize])
	v.bufLen = n
	v.bufNext = 0
	if n > 0 {
		v.sizes = append(v.sizes, n)
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		// hand out what we got before reporting the truncation
		v.err = err
		if n > 0 {
			return nil
		}
	}
	return err
}

func (v *blockReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if v.bufNext >= v.bufLen {
		if v.err != nil {
			return 0, v.err
		}
		err = v.readNextBlock()
		if err != nil {
			v.err = err
			return 0, err
		}
	}
	n = copy(p, v.buf[v.bufNext:v.bufLen])
	v.bufNext += n
	return
}

func (v *blockReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := v.Read(b[:])
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readAll collects the remaining payload. truncated is set when the stream
// ended before the terminator; any other read failure is returned as err.
func (v *blockReader) readAll() (data []byte, truncated bool, err error) {
	var chunk [255]byte
	for {
		n, rerr := v.Read(chunk[:])
		data = append(data, chunk[:n]...)
		if rerr == io.EOF {
			return data, false, nil
		}
		if errors.Is(rerr, io.ErrUnexpectedEOF) {
			return data, true, nil
		}
		if rerr != nil {
			return data, false, rerr
		}
	}
}

// drain discards everything up to and including the terminator.
func (v *blockReader) drain() (truncated bool, err error) {
	var chunk [255]byte
	for {
		_, rerr := v.Read(chunk[:])
		if rerr == io.EOF {
			return false, nil
		}
		if errors.Is(rerr, io.ErrUnexpectedEOF) {
			return true, nil
		}
		if rerr != nil {
			return false, rerr
		}
	}
}
