package gif

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBlockReader(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		want      []byte
		sizes     []int
		truncated bool
	}{
		{
			name:  "empty stream",
			input: []byte{0x00},
		},
		{
			name:  "two sub-blocks",
			input: []byte{0x02, 'a', 'b', 0x01, 'c', 0x00, 0xFF},
			want:  []byte("abc"),
			sizes: []int{2, 1},
		},
		{
			name:      "no terminator",
			input:     []byte{0x02, 'a', 'b'},
			want:      []byte("ab"),
			sizes:     []int{2},
			truncated: true,
		},
		{
			name:      "cut inside a sub-block",
			input:     []byte{0x01, 'a', 0x05, 'b', 'c'},
			want:      []byte("abc"),
			sizes:     []int{1, 2},
			truncated: true,
		},
		{
			name:      "nothing at all",
			input:     nil,
			truncated: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := newBlockReader(newCountingReader(bytes.NewReader(tt.input)))
			got, truncated, err := br.readAll()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("data = %q, want %q", got, tt.want)
			}
			if truncated != tt.truncated {
				t.Errorf("truncated = %v, want %v", truncated, tt.truncated)
			}
			if len(br.sizes) != len(tt.sizes) {
				t.Fatalf("sizes = %v, want %v", br.sizes, tt.sizes)
			}
			for i := range tt.sizes {
				if br.sizes[i] != tt.sizes[i] {
					t.Fatalf("sizes = %v, want %v", br.sizes, tt.sizes)
				}
			}
		})
	}
}

func TestBlockReaderStopsAtTerminator(t *testing.T) {
	cr := newCountingReader(bytes.NewReader([]byte{0x01, 'x', 0x00, 0x3B}))
	br := newBlockReader(cr)
	if truncated, err := br.drain(); err != nil || truncated {
		t.Fatalf("drain() = %v, %v", truncated, err)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		t.Fatalf("read after terminator: %v, want io.EOF", err)
	}
	next, err := cr.ReadByte()
	if err != nil || next != 0x3B {
		t.Fatalf("next byte = 0x%.2x, %v; want 0x3b", next, err)
	}
	if cr.n != 4 {
		t.Fatalf("consumed %d bytes, want 4", cr.n)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestBlockReaderPassesErrors(t *testing.T) {
	br := newBlockReader(newCountingReader(failingReader{}))
	_, _, err := br.readAll()
	if err == nil || errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want the reader error, got %v", err)
	}
}

func TestBlockWriterChunks(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 600)
	var buf bytes.Buffer
	bw := newBlockWriter(&buf)
	if _, err := bw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if len(out) != 600+3+1 {
		t.Fatalf("framed length %d, want %d", len(out), 604)
	}
	if out[0] != 255 || out[256] != 255 || out[512] != 90 || out[len(out)-1] != 0 {
		t.Fatalf("unexpected sub-block sizes: %d %d %d", out[0], out[256], out[512])
	}
	if got := unframe(t, out); !bytes.Equal(got, data) {
		t.Fatalf("payload changed")
	}
}

func TestBlockWriterSized(t *testing.T) {
	var buf bytes.Buffer
	bw := newBlockWriter(&buf)
	ok, err := bw.writeSized([]byte("abcdef"), []int{4, 2})
	if err != nil || !ok {
		t.Fatalf("writeSized = %v, %v", ok, err)
	}
	bw.Close()
	want := []byte{4, 'a', 'b', 'c', 'd', 2, 'e', 'f', 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}

	for _, sizes := range [][]int{nil, {5}, {3, 4}, {0, 6}, {300}} {
		ok, err := newBlockWriter(io.Discard).writeSized([]byte("abcdef"), sizes)
		if ok || err != nil {
			t.Errorf("sizes %v accepted", sizes)
		}
	}
}

func TestBitRoundTrip(t *testing.T) {
	codes := []struct {
		code  uint16
		width uint
	}{
		{4, 3}, {0, 3}, {7, 3}, {9, 4}, {300, 9}, {4095, 12}, {1, 12}, {5, 3},
	}
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	for _, c := range codes {
		if err := bw.writeCode(c.code, c.width); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.flush(); err != nil {
		t.Fatal(err)
	}

	br := newBitReader(bytes.NewReader(buf.Bytes()))
	for i, c := range codes {
		got, err := br.readCode(c.width)
		if err != nil {
			t.Fatalf("code %d: %v", i, err)
		}
		if got != c.code {
			t.Fatalf("code %d = %d, want %d", i, got, c.code)
		}
	}
}

func TestBitReaderLSBFirst(t *testing.T) {
	br := newBitReader(bytes.NewReader([]byte{0x44, 0x01}))
	want := []uint16{4, 0, 5}
	for i, w := range want {
		got, err := br.readCode(3)
		if err != nil || got != w {
			t.Fatalf("code %d = %d, %v; want %d", i, got, err, w)
		}
	}
	if _, err := br.readCode(8); err != io.EOF {
		t.Fatalf("want io.EOF at end, got %v", err)
	}
}
