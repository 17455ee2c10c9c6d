package main

import (
	"errors"

	"github.com/illusionman1212/gifsauce/gif"
)

// CHUNK_SIZE is how many payload bytes go into one plain text record.
const CHUNK_SIZE = 254

var errNoImages = errors.New("gifsauce: document has no image blocks to carry the payload")

// chunkCount is the number of records needed for n payload bytes.
func chunkCount(n, chunk int) int {
	return (n + chunk - 1) / chunk
}

// Embed replaces the plain text extensions of doc with the payload split into
// chunk sized records, one per image block. The image list is doubled until
// every chunk has an image and then cut to the number of chunks. An empty
// payload only removes the existing plain text extensions.
func Embed(doc *gif.Document, payload []byte, chunk int) error {
	if chunk <= 0 || chunk > gif.MAX_SUB_BLOCK_SIZE {
		return errors.New("gifsauce: chunk size must be between 1 and 255")
	}
	doc.PlainTexts = nil

	n := chunkCount(len(payload), chunk)
	if n == 0 {
		return nil
	}
	if len(doc.Images) == 0 {
		return errNoImages
	}

	for len(doc.Images) < n {
		for _, img := range doc.Images {
			doc.Images = append(doc.Images, img.Clone())
		}
	}
	doc.Images = doc.Images[:n]

	for i := 0; i < n; i++ {
		end := min((i+1)*chunk, len(payload))
		data := make([]byte, end-i*chunk)
		copy(data, payload[i*chunk:end])
		doc.PlainTexts = append(doc.PlainTexts, gif.PlainTextExtension{Data: data})
	}
	return nil
}
