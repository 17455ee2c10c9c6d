/*
Package gif parses GIF files into their block structure and writes them back.

A Document holds the header, the logical screen descriptor, the optional
global color table and every extension and image block in the file. Image data
is decompressed while parsing (one color index per pixel) and compressed again
while writing, so callers can edit pixels, duplicate frames or swap extensions
between Parse and Encode. Nothing is rendered: disposal, transparency, timing
and interlacing are kept as fields, not interpreted.

Parsing is forgiving in two places. Unknown extension labels are skipped, and
input that ends early (between blocks, or inside sub-block data) ends the
parse successfully with OutcomeTruncated and whatever was read. Everything
else that does not fit the format is a *FormatError; failures of the
underlying reader or writer are an *IOError.

# Examples

Parse a file and write it back:

	doc, outcome, err := gif.Parse(r, nil)
	if err != nil {
		return err
	}
	if outcome == gif.OutcomeTruncated {
		log.Printf("input ended early, %d images recovered", len(doc.Images))
	}
	return gif.Encode(w, doc)

Stop at the first plain text extension:

	doc, outcome, err := gif.Parse(r, &gif.Options{StopAtPlainText: true})
	if err == nil && outcome == gif.OutcomePlainText {
		fmt.Printf("%s", doc.PlainTextData())
	}

Compress raw indices on their own:

	framed, err := gif.EncodePixels(pixels, 8)
	if err != nil {
		return err
	}
	pixels, err = gif.DecodePixels(bytes.NewReader(framed), 8)
*/
package gif
