package gif

import (
	"fmt"
	"io"
	"strings"

	bst "github.com/mixcode/binarystruct"
)

// Wire layouts of the fixed-size structures, little endian.

type screenDescriptor struct {
	Width           uint16
	Height          uint16
	Packed          byte
	BackgroundIndex byte
	AspectRatio     byte
}

// imageDescriptor is the fixed part of an image block after the separator.
type imageDescriptor struct {
	Left   uint16 // X position of image
	Top    uint16 // Y position of image
	Width  uint16 // width of image in pixels
	Height uint16 // height of image in pixels
	Packed byte
}

type graphicsControlBody struct {
	Packed           byte
	DelayTime        uint16
	TransparentIndex byte
}

type plainTextHeader struct {
	GridLeft        uint16
	GridTop         uint16
	GridWidth       uint16
	GridHeight      uint16
	CellWidth       byte
	CellHeight      byte
	ForegroundIndex byte
	BackgroundIndex byte
}

type applicationHeader struct {
	Identifier [8]byte
	AuthCode   [3]byte
}

// decoder walks the block sequence of one GIF stream.
type decoder struct {
	r    *countingReader
	opts *Options
	doc  *Document

	truncated bool
}

// Parse reads a GIF stream into a Document. The Outcome tells whether the
// trailer was reached, the input ended early, or parsing stopped at a plain
// text extension (only with Options.StopAtPlainText). Options nil means
// DefaultOptions().
//
// Errors are *FormatError for malformed input and *IOError for failures of r.
func Parse(r io.Reader, opts *Options) (*Document, Outcome, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	d := &decoder{
		r:    newCountingReader(r),
		opts: opts,
		doc:  &Document{},
	}
	outcome, err := d.decode()
	if err != nil {
		return nil, outcome, err
	}
	return d.doc, outcome, nil
}

// Decode parses the whole stream and drops the Outcome.
func Decode(r io.Reader) (*Document, error) {
	doc, _, err := Parse(r, nil)
	return doc, err
}

func (d *decoder) fail(err error, op string) error {
	return wrapErr(err, d.r.n, op)
}

func (d *decoder) formatError(err error, detail string) error {
	return &FormatError{Offset: d.r.n, Err: err, Detail: detail}
}

func (d *decoder) readStruct(v interface{}, op string) error {
	if _, err := bst.Read(d.r, bst.LittleEndian, v); err != nil {
		return d.fail(err, op)
	}
	return nil
}

func (d *decoder) decode() (Outcome, error) {
	if err := d.readStruct(&d.doc.Header, "reading header"); err != nil {
		return OutcomeTruncated, err
	}
	if !d.doc.Header.Valid() {
		return OutcomeTruncated, d.formatError(ErrSignature, fmt.Sprintf("%q", d.doc.Header.Signature[:]))
	}

	var screen screenDescriptor
	if err := d.readStruct(&screen, "reading screen descriptor"); err != nil {
		return OutcomeTruncated, err
	}
	d.doc.Screen = ScreenDescriptor{
		Width:           screen.Width,
		Height:          screen.Height,
		Packed:          ScreenPacked(screen.Packed),
		BackgroundIndex: screen.BackgroundIndex,
		AspectRatio:     screen.AspectRatio,
	}
	if n := d.doc.Screen.Packed.TableLen(); n > 0 {
		table, err := d.readColorTable(n, "reading global color table")
		if err != nil {
			return OutcomeTruncated, err
		}
		d.doc.GlobalColorTable = table
	}

	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			return OutcomeTruncated, nil
		}
		if err != nil {
			return OutcomeTruncated, d.fail(err, "reading block indicator")
		}

		switch c {
		case EXTENSION_BLOCK:
			plainText, err := d.readExtension()
			if err != nil {
				return OutcomeTruncated, err
			}
			// truncation wins over the early stop
			if plainText && d.opts.StopAtPlainText && !d.truncated {
				return OutcomePlainText, nil
			}

		case IMAGE_DESCRIPTOR:
			if err := d.readImageBlock(); err != nil {
				return OutcomeTruncated, err
			}

		case TRAILER:
			return OutcomeTrailer, nil

		default:
			return OutcomeTruncated, d.formatError(ErrUnknownBlock, fmt.Sprintf("0x%.2x", c))
		}

		if d.truncated {
			return OutcomeTruncated, nil
		}
	}
}

func (d *decoder) readColorTable(n int, op string) (ColorTable, error) {
	data := make([]byte, 3*n)
	if _, err := io.ReadFull(d.r, data); err != nil {
		return nil, d.fail(err, op)
	}
	table := make(ColorTable, n)
	if err := table.UnmarshalBinary(data); err != nil {
		return nil, d.fail(err, op)
	}
	return table, nil
}

// readBlockSize reads the size byte that opens a fixed-size extension body.
func (d *decoder) readBlockSize(want byte, name string) error {
	size, err := d.r.ReadByte()
	if err != nil {
		return d.fail(err, "reading "+name)
	}
	if size != want {
		return d.formatError(ErrBlockSize, fmt.Sprintf("%s: got %d, want %d", name, size, want))
	}
	return nil
}

// readSubBlocks collects a sub-block payload. Running out of input marks the
// document truncated instead of failing.
func (d *decoder) readSubBlocks(op string) ([]byte, []int, error) {
	br := newBlockReader(d.r)
	data, truncated, err := br.readAll()
	if err != nil {
		return nil, nil, d.fail(err, op)
	}
	d.truncated = d.truncated || truncated
	return data, br.sizes, nil
}

// readExtension dispatches on the label following the introducer. It reports
// whether the extension was a plain text extension.
func (d *decoder) readExtension() (bool, error) {
	label, err := d.r.ReadByte()
	if err != nil {
		return false, d.fail(err, "reading extension label")
	}

	switch label {
	case GRAPHICS_CONTROL_BLOCK:
		return false, d.readGraphicsControl()
	case COMMENT_BLOCK:
		return false, d.readComment()
	case APPLICATION_BLOCK:
		return false, d.readApplication()
	case PLAINTEXT_BLOCK:
		return true, d.readPlainText()
	}

	// unknown extensions are skipped
	truncated, err := newBlockReader(d.r).drain()
	if err != nil {
		return false, d.fail(err, fmt.Sprintf("skipping extension 0x%.2x", label))
	}
	d.truncated = d.truncated || truncated
	return false, nil
}

func (d *decoder) readGraphicsControl() error {
	if err := d.readBlockSize(GRAPHICS_CONTROL_BLOCK_SIZE, "graphics control extension"); err != nil {
		return err
	}
	var body graphicsControlBody
	if err := d.readStruct(&body, "reading graphics control extension"); err != nil {
		return err
	}
	d.doc.GraphicsControls = append(d.doc.GraphicsControls, GraphicsControlExtension{
		Packed:           ControlPacked(body.Packed),
		DelayTime:        body.DelayTime,
		TransparentIndex: body.TransparentIndex,
	})

	// normally just the terminator
	truncated, err := newBlockReader(d.r).drain()
	if err != nil {
		return d.fail(err, "reading graphics control extension")
	}
	d.truncated = d.truncated || truncated
	return nil
}

func (d *decoder) readComment() error {
	data, sizes, err := d.readSubBlocks("reading comment extension")
	if err != nil {
		return err
	}

	var comment CommentExtension
	for _, size := range sizes {
		comment.Fragments = append(comment.Fragments, strings.ToValidUTF8(string(data[:size]), "\uFFFD"))
		data = data[size:]
	}
	d.doc.Comments = append(d.doc.Comments, comment)
	return nil
}

func (d *decoder) readApplication() error {
	if err := d.readBlockSize(APPLICATION_BLOCK_SIZE, "application extension"); err != nil {
		return err
	}
	var hdr applicationHeader
	if err := d.readStruct(&hdr, "reading application extension"); err != nil {
		return err
	}
	data, sizes, err := d.readSubBlocks("reading application extension")
	if err != nil {
		return err
	}
	d.doc.Applications = append(d.doc.Applications, ApplicationExtension{
		Identifier: hdr.Identifier,
		AuthCode:   hdr.AuthCode,
		Data:       data,
		sizes:      sizes,
	})
	return nil
}

func (d *decoder) readPlainText() error {
	if err := d.readBlockSize(PLAINTEXT_BLOCK_SIZE, "plain text extension"); err != nil {
		return err
	}
	var hdr plainTextHeader
	if err := d.readStruct(&hdr, "reading plain text extension"); err != nil {
		return err
	}
	data, sizes, err := d.readSubBlocks("reading plain text extension")
	if err != nil {
		return err
	}
	d.doc.PlainTexts = append(d.doc.PlainTexts, PlainTextExtension{
		GridLeft:        hdr.GridLeft,
		GridTop:         hdr.GridTop,
		GridWidth:       hdr.GridWidth,
		GridHeight:      hdr.GridHeight,
		CellWidth:       hdr.CellWidth,
		CellHeight:      hdr.CellHeight,
		ForegroundIndex: hdr.ForegroundIndex,
		BackgroundIndex: hdr.BackgroundIndex,
		Data:            data,
		sizes:           sizes,
	})
	return nil
}

func (d *decoder) readImageBlock() error {
	var desc imageDescriptor
	if err := d.readStruct(&desc, "reading image descriptor"); err != nil {
		return err
	}
	img := ImageBlock{
		Left:   desc.Left,
		Top:    desc.Top,
		Width:  desc.Width,
		Height: desc.Height,
		Packed: ImagePacked(desc.Packed),
	}

	// local color table comes first
	if n := img.Packed.TableLen(); n > 0 {
		table, err := d.readColorTable(n, "reading local color table")
		if err != nil {
			return err
		}
		img.LocalColorTable = table
	}

	codeSize, err := d.r.ReadByte()
	if err != nil {
		return d.fail(err, "reading lzw minimum code size")
	}
	img.MinCodeSize = codeSize

	br := newBlockReader(d.r)
	img.Pixels, err = decodeLZW(br, int(codeSize))
	if err != nil {
		return d.fail(err, "decoding image data")
	}
	// data after the end code, if any, up to the terminator
	truncated, err := br.drain()
	if err != nil {
		return d.fail(err, "decoding image data")
	}
	d.truncated = d.truncated || truncated

	d.doc.Images = append(d.doc.Images, img)
	return nil
}
