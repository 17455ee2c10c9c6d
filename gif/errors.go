package gif

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrSignature    = errors.New("gif: invalid signature")
	ErrUnknownBlock = errors.New("gif: unknown block indicator")
	ErrBlockSize    = errors.New("gif: invalid block size")
	ErrInvalidCode  = errors.New("gif: invalid lzw code")
	ErrCodeSize     = errors.New("gif: lzw minimum code size out of range")
	ErrPixelRange   = errors.New("gif: pixel index out of range for code size")
	ErrTruncated    = errors.New("gif: unexpected end of data")
)

var formatErrors = []error{
	ErrSignature,
	ErrUnknownBlock,
	ErrBlockSize,
	ErrInvalidCode,
	ErrCodeSize,
	ErrPixelRange,
	ErrTruncated,
}

// FormatError reports input that does not follow the GIF block structure.
// Offset is the number of bytes consumed from the source when the problem was
// found, or -1 when the error did not come from parsing.
type FormatError struct {
	Offset int64
	Err    error
	Detail string
}

func (e *FormatError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (offset %d)", msg, e.Offset)
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// IOError wraps a failure of the underlying reader or writer.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "gif: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// wrapErr sorts err into a FormatError or an IOError. Errors that are already
// typed pass through.
func wrapErr(err error, offset int64, op string) error {
	var fe *FormatError
	var ie *IOError
	if errors.As(err, &fe) || errors.As(err, &ie) {
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Offset: offset, Err: ErrTruncated, Detail: op}
	}
	for _, target := range formatErrors {
		if errors.Is(err, target) {
			return &FormatError{Offset: offset, Err: err, Detail: op}
		}
	}
	return &IOError{Op: op, Err: err}
}
