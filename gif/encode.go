package gif

import (
	"bufio"
	"io"
	"strings"

	bst "github.com/mixcode/binarystruct"
)

// encoder writes a Document back out. It trusts the document: geometry,
// packed fields and palette sizes are written as they are.
type encoder struct {
	w *bufio.Writer
}

// Encode serializes doc to w in the fixed block order header, screen
// descriptor, global color table, graphics control extensions, comments,
// application extensions, plain text extensions, images and trailer.
//
// Errors are *IOError for failures of w and *FormatError for image data the
// LZW encoder cannot represent. Nothing already written is rolled back.
func Encode(w io.Writer, doc *Document) error {
	e := &encoder{w: bufio.NewWriter(w)}
	if err := e.encode(doc); err != nil {
		return err
	}
	if err := e.w.Flush(); err != nil {
		return wrapErr(err, -1, "flushing output")
	}
	return nil
}

func (e *encoder) writeStruct(v interface{}, op string) error {
	if _, err := bst.Write(e.w, bst.LittleEndian, v); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}

func (e *encoder) writeBytes(op string, p ...byte) error {
	if _, err := e.w.Write(p); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}

func (e *encoder) writeColorTable(t ColorTable, op string) error {
	data, err := t.MarshalBinary()
	if err != nil {
		return wrapErr(err, -1, op)
	}
	return e.writeBytes(op, data...)
}

func (e *encoder) encode(doc *Document) error {
	if err := e.writeStruct(&doc.Header, "writing header"); err != nil {
		return err
	}
	screen := screenDescriptor{
		Width:           doc.Screen.Width,
		Height:          doc.Screen.Height,
		Packed:          byte(doc.Screen.Packed),
		BackgroundIndex: doc.Screen.BackgroundIndex,
		AspectRatio:     doc.Screen.AspectRatio,
	}
	if err := e.writeStruct(&screen, "writing screen descriptor"); err != nil {
		return err
	}
	if doc.GlobalColorTable != nil {
		if err := e.writeColorTable(doc.GlobalColorTable, "writing global color table"); err != nil {
			return err
		}
	}

	for _, gc := range doc.GraphicsControls {
		if err := e.writeGraphicsControl(gc); err != nil {
			return err
		}
	}
	for _, c := range doc.Comments {
		if err := e.writeComment(c); err != nil {
			return err
		}
	}
	for _, a := range doc.Applications {
		if err := e.writeApplication(a); err != nil {
			return err
		}
	}
	if err := e.writePlainTexts(doc.PlainTexts); err != nil {
		return err
	}
	for i := range doc.Images {
		if err := e.writeImageBlock(&doc.Images[i]); err != nil {
			return err
		}
	}

	return e.writeBytes("writing trailer", TRAILER)
}

func (e *encoder) writeGraphicsControl(gc GraphicsControlExtension) error {
	const op = "writing graphics control extension"
	if err := e.writeBytes(op, EXTENSION_BLOCK, GRAPHICS_CONTROL_BLOCK, GRAPHICS_CONTROL_BLOCK_SIZE); err != nil {
		return err
	}
	body := graphicsControlBody{
		Packed:           byte(gc.Packed),
		DelayTime:        gc.DelayTime,
		TransparentIndex: gc.TransparentIndex,
	}
	if err := e.writeStruct(&body, op); err != nil {
		return err
	}
	return e.writeBytes(op, 0)
}

// writeComment keeps every fragment in its own sub-blocks. Invalid UTF-8 is
// replaced the same way Parse replaces it.
func (e *encoder) writeComment(c CommentExtension) error {
	const op = "writing comment extension"
	if err := e.writeBytes(op, EXTENSION_BLOCK, COMMENT_BLOCK); err != nil {
		return err
	}
	bw := newBlockWriter(e.w)
	for _, f := range c.Fragments {
		if _, err := io.WriteString(bw, strings.ToValidUTF8(f, "\uFFFD")); err != nil {
			return wrapErr(err, -1, op)
		}
		if err := bw.flush(); err != nil {
			return wrapErr(err, -1, op)
		}
	}
	if err := bw.Close(); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}

// writePayload frames data with the remembered sub-block sizes when they
// still fit, in 255 byte sub-blocks otherwise. The terminator is not written.
func writePayload(bw *blockWriter, data []byte, sizes []int) error {
	ok, err := bw.writeSized(data, sizes)
	if ok || err != nil {
		return err
	}
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.flush()
}

func (e *encoder) writeApplication(a ApplicationExtension) error {
	const op = "writing application extension"
	if err := e.writeBytes(op, EXTENSION_BLOCK, APPLICATION_BLOCK, APPLICATION_BLOCK_SIZE); err != nil {
		return err
	}
	hdr := applicationHeader{Identifier: a.Identifier, AuthCode: a.AuthCode}
	if err := e.writeStruct(&hdr, op); err != nil {
		return err
	}
	bw := newBlockWriter(e.w)
	if err := writePayload(bw, a.Data, a.sizes); err != nil {
		return wrapErr(err, -1, op)
	}
	if err := bw.Close(); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}

// writePlainTexts emits all plain text extensions as one extension: the
// fields of the first one, then the data of every one as a single continued
// sub-block stream.
func (e *encoder) writePlainTexts(texts []PlainTextExtension) error {
	const op = "writing plain text extension"
	if len(texts) == 0 {
		return nil
	}
	if err := e.writeBytes(op, EXTENSION_BLOCK, PLAINTEXT_BLOCK, PLAINTEXT_BLOCK_SIZE); err != nil {
		return err
	}
	first := texts[0]
	hdr := plainTextHeader{
		GridLeft:        first.GridLeft,
		GridTop:         first.GridTop,
		GridWidth:       first.GridWidth,
		GridHeight:      first.GridHeight,
		CellWidth:       first.CellWidth,
		CellHeight:      first.CellHeight,
		ForegroundIndex: first.ForegroundIndex,
		BackgroundIndex: first.BackgroundIndex,
	}
	if err := e.writeStruct(&hdr, op); err != nil {
		return err
	}
	bw := newBlockWriter(e.w)
	for _, t := range texts {
		if err := writePayload(bw, t.Data, t.sizes); err != nil {
			return wrapErr(err, -1, op)
		}
	}
	if err := bw.Close(); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}

func (e *encoder) writeImageBlock(img *ImageBlock) error {
	const op = "writing image block"
	if err := e.writeBytes(op, IMAGE_DESCRIPTOR); err != nil {
		return err
	}
	desc := imageDescriptor{
		Left:   img.Left,
		Top:    img.Top,
		Width:  img.Width,
		Height: img.Height,
		Packed: byte(img.Packed),
	}
	if err := e.writeStruct(&desc, op); err != nil {
		return err
	}
	if img.LocalColorTable != nil {
		if err := e.writeColorTable(img.LocalColorTable, "writing local color table"); err != nil {
			return err
		}
	}
	if err := e.writeBytes(op, img.MinCodeSize); err != nil {
		return err
	}

	bw := newBlockWriter(e.w)
	if err := encodeLZW(bw, img.Pixels, int(img.MinCodeSize)); err != nil {
		return wrapErr(err, -1, "encoding image data")
	}
	if err := bw.Close(); err != nil {
		return wrapErr(err, -1, op)
	}
	return nil
}
