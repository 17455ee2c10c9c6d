package gif

import "strings"

const (
	EXTENSION_BLOCK = 0x21

	GRAPHICS_CONTROL_BLOCK      = 0xF9
	GRAPHICS_CONTROL_BLOCK_SIZE = 0x04

	PLAINTEXT_BLOCK      = 0x01
	PLAINTEXT_BLOCK_SIZE = 0x0C

	APPLICATION_BLOCK      = 0xFF
	APPLICATION_BLOCK_SIZE = 0x0B

	COMMENT_BLOCK    = 0xFE
	IMAGE_DESCRIPTOR = 0x2C
	TRAILER          = 0x3B

	MAX_SUB_BLOCK_SIZE = 0xFF
)

// Header is the 6 byte tag every GIF starts with.
type Header struct {
	Signature [3]byte // "GIF"
	Version   [3]byte // "87a" or "89a"
}

// Valid reports whether the signature reads "GIF".
func (h Header) Valid() bool {
	return string(h.Signature[:]) == "GIF"
}

// Logical Screen Descriptor
type ScreenDescriptor struct {
	Width           uint16
	Height          uint16
	Packed          ScreenPacked
	BackgroundIndex byte // unused if the global color table flag is unset
	AspectRatio     byte
}

type RGB struct {
	Red   byte
	Green byte
	Blue  byte
}

// ColorTable is either the global table (owned by the Document) or the local
// table of one ImageBlock. Its length is a power of two between 2 and 256.
type ColorTable []RGB

/********************/
/* EXTENSION BLOCKS */
/********************/

type GraphicsControlExtension struct {
	Packed           ControlPacked
	DelayTime        uint16 // hundredths of a second
	TransparentIndex byte
}

// CommentExtension keeps one string per sub-block. Invalid UTF-8 is replaced
// with U+FFFD when parsed.
type CommentExtension struct {
	Fragments []string
}

// Text returns the fragments joined together.
func (c CommentExtension) Text() string {
	return strings.Join(c.Fragments, "")
}

type ApplicationExtension struct {
	Identifier [8]byte // application identifier, e.g. "NETSCAPE"
	AuthCode   [3]byte // application authentication code, e.g. "2.0"
	Data       []byte  // reassembled sub-block payload

	sizes []int // sub-block sizes seen while parsing
}

type PlainTextExtension struct {
	GridLeft        uint16 // X position of text grid in pixels
	GridTop         uint16 // Y position of the text grid in pixels
	GridWidth       uint16 // width of text grid in pixels
	GridHeight      uint16 // height of text grid in pixels
	CellWidth       byte   // width of grid cell in pixels
	CellHeight      byte   // height of grid cell in pixels
	ForegroundIndex byte   // text foreground color index value
	BackgroundIndex byte   // text background color index value
	Data            []byte // reassembled sub-block payload

	sizes []int
}

// ImageBlock is an image descriptor together with its decompressed pixels.
// Pixels holds one color index per pixel; for a well formed image
// len(Pixels) == Width*Height, which is not enforced.
type ImageBlock struct {
	Left            uint16
	Top             uint16
	Width           uint16
	Height          uint16
	Packed          ImagePacked
	LocalColorTable ColorTable // nil when absent
	MinCodeSize     byte
	Pixels          []byte
}

// Document is a whole GIF. The trailer is implied.
type Document struct {
	Header           Header
	Screen           ScreenDescriptor
	GlobalColorTable ColorTable // nil when absent

	GraphicsControls []GraphicsControlExtension
	Comments         []CommentExtension
	Applications     []ApplicationExtension
	PlainTexts       []PlainTextExtension
	Images           []ImageBlock
}

// HasPlainText reports whether the document carries any plain text extension.
func (d *Document) HasPlainText() bool {
	return len(d.PlainTexts) > 0
}

// PlainTextData concatenates the payload of every plain text extension.
func (d *Document) PlainTextData() []byte {
	var out []byte
	for _, p := range d.PlainTexts {
		out = append(out, p.Data...)
	}
	return out
}

// Clone returns a deep copy of the image block.
func (b ImageBlock) Clone() ImageBlock {
	c := b
	c.LocalColorTable = cloneTable(b.LocalColorTable)
	c.Pixels = cloneBytes(b.Pixels)
	return c
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := *d
	c.GlobalColorTable = cloneTable(d.GlobalColorTable)
	c.GraphicsControls = append([]GraphicsControlExtension(nil), d.GraphicsControls...)

	c.Comments = nil
	for _, cm := range d.Comments {
		c.Comments = append(c.Comments, CommentExtension{Fragments: append([]string(nil), cm.Fragments...)})
	}

	c.Applications = nil
	for _, a := range d.Applications {
		a.Data = cloneBytes(a.Data)
		a.sizes = append([]int(nil), a.sizes...)
		c.Applications = append(c.Applications, a)
	}

	c.PlainTexts = nil
	for _, p := range d.PlainTexts {
		p.Data = cloneBytes(p.Data)
		p.sizes = append([]int(nil), p.sizes...)
		c.PlainTexts = append(c.PlainTexts, p)
	}

	c.Images = nil
	for _, img := range d.Images {
		c.Images = append(c.Images, img.Clone())
	}
	return &c
}

func cloneTable(t ColorTable) ColorTable {
	if t == nil {
		return nil
	}
	c := make(ColorTable, len(t))
	copy(c, t)
	return c
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
