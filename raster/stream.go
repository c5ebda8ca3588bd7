// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

import (
	"io"

	"github.com/pkg/errors"
)

// Mode selects whether a Stream reads or writes. It is fixed for the
// lifetime of a Stream.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// Stream is an open codec instance over a single sequential byte channel.
// Concurrent calls on the same Stream are undefined behavior; callers must
// serialize.
type Stream struct {
	r io.Reader
	w io.Writer

	mode Mode
	sync SyncWord

	compressed bool
	swapped    bool
	v1Size     bool

	header    HeaderV2
	bpp       int
	remaining int

	// Compression scratch space, valid only while compressed.
	count    int
	pixels   []byte
	pcurrent int

	buf bufReader

	closed bool
}

// Open opens a stream for reading from r. The leading four bytes are read
// and classified against the six known sync words; if they match none of
// them, Open fails and the stream is not usable.
func Open(r io.Reader) (*Stream, error) {
	s := &Stream{r: r, mode: ModeRead}
	s.buf.s = s

	var word [4]byte
	n, err := readFull(s.r, word[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, errors.Wrap(ErrShortSync, "raster: open")
	}
	if err != nil {
		return nil, errors.Wrap(err, "raster: open")
	}
	if n != 4 {
		return nil, errors.Wrap(ErrShortSync, "raster: open")
	}

	s.sync = SyncWord(byteOrder.Uint32(word[:]))
	props, ok := lookupSync(s.sync)
	if !ok {
		return nil, errors.Wrap(ErrSync, "raster: open")
	}
	s.compressed = props.compressed
	s.swapped = props.swapped
	s.v1Size = props.v1Size

	return s, nil
}

// OpenWriter opens a stream for writing to w, emitting the native,
// non-swapped, uncompressed sync word. Writers never compress.
func OpenWriter(w io.Writer) (*Stream, error) {
	s := &Stream{w: w, mode: ModeWrite, sync: Sync}
	s.buf.s = s

	var word [4]byte
	byteOrder.PutUint32(word[:], uint32(s.sync))
	n, err := writeFull(s.w, word[:])
	if err == io.ErrShortWrite {
		return nil, errors.Wrap(ErrShortSync, "raster: open")
	}
	if err != nil {
		return nil, errors.Wrap(err, "raster: open")
	}
	if n != 4 {
		return nil, errors.Wrap(ErrShortSync, "raster: open")
	}

	return s, nil
}

// Close releases the stream's owned buffers. The underlying reader or
// writer is owned by the caller and is left open. Close is safe to call
// more than once.
func (s *Stream) Close() error {
	s.pixels = nil
	s.buf.buffer = nil
	s.buf.bufptr, s.buf.bufend = 0, 0
	s.closed = true
	return nil
}

// Mode reports whether the stream was opened for reading or writing.
func (s *Stream) Mode() Mode { return s.mode }

// Sync reports the sync word observed (read mode) or emitted (write mode).
func (s *Stream) Sync() SyncWord { return s.sync }

// Compressed reports whether rows on this stream are PackBits-compressed.
func (s *Stream) Compressed() bool { return s.compressed }

// Swapped reports whether the wire byte order differs from the host's.
func (s *Stream) Swapped() bool { return s.swapped }

// Remaining reports the number of rows still owed by the current page.
func (s *Stream) Remaining() int { return s.remaining }

// deriveFields recomputes cupsNumColors, bpp, and remaining from the
// current header, and (if compressed) resets the compression scratch
// space. It runs after every successful header read or write. NumColors is
// force-derived whenever the stream's sync word carries the short V1-sized
// record, which has no NumColors field of its own; a full-size stream that
// already set it keeps its explicit value.
func (s *Stream) deriveFields() {
	h := &s.header

	if s.v1Size || h.NumColors() == 0 {
		if n, ok := deriveNumColors(h.ColorSpace(), h.BitsPerPixel()); ok {
			h.SetNumColors(n)
		}
	}

	if h.ColorOrder() == ColorOrderChunked {
		s.bpp = int(ceilDiv8(h.BitsPerPixel()))
	} else {
		s.bpp = int(ceilDiv8(h.BitsPerColor()))
	}

	if h.ColorOrder() == ColorOrderPlanar {
		s.remaining = int(h.Height() * h.NumColors())
	} else {
		s.remaining = int(h.Height())
	}

	if s.compressed {
		s.pixels = make([]byte, h.BytesPerLine())
		s.pcurrent = 0
		s.count = 0
	}
}

// readHeaderBytes reads and, if swapped, un-swaps a header record of the
// appropriate size for the stream's sync word. The read goes through the
// buffered reader: on a compressed stream the next header may already sit
// in the refill buffer, pulled in past the previous page's last row.
//
// A clean EOF at the page boundary is reported as io.EOF; it is the normal
// end of the page sequence, not a failure.
func (s *Stream) readHeaderBytes() error {
	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeRead {
		return ErrMode
	}

	n := HeaderV2Size
	if s.v1Size {
		n = HeaderV1Size
	}

	s.header = HeaderV2{}
	got, err := s.buf.read(s.header[:n])
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return errors.Wrap(ErrShortHeader, "raster: read header")
		}
		return errors.Wrap(err, "raster: read header")
	}
	if got != n {
		return errors.Wrap(ErrShortHeader, "raster: read header")
	}

	if s.swapped {
		swapHeaderPrefix(s.header[:])
	}

	s.deriveFields()
	return nil
}

// ReadHeader reads the next page's header into the V1 shape. It returns
// io.EOF at the clean end of the page sequence.
func (s *Stream) ReadHeader(out *HeaderV1) error {
	if err := s.readHeaderBytes(); err != nil {
		return err
	}
	*out = s.header.V1()
	return nil
}

// ReadHeader2 reads the next page's header into the V2 shape. It returns
// io.EOF at the clean end of the page sequence.
func (s *Stream) ReadHeader2(out *HeaderV2) error {
	if err := s.readHeaderBytes(); err != nil {
		return err
	}
	*out = s.header
	return nil
}

// writeHeaderBytes runs deriveFields and writes the full record to the
// underlying writer. The record written is always the full HeaderV2Size
// shape regardless of which of WriteHeader or WriteHeader2 supplied it; a
// V1 write leaves the V2-only tail zeroed, except that deriveFields fills in
// NumColors there when it recognizes the color space. A write that moves
// fewer than the full record's bytes is a failure.
func (s *Stream) writeHeaderBytes() error {
	s.deriveFields()

	n, err := writeFull(s.w, s.header[:])
	if err == io.ErrShortWrite {
		return errors.Wrap(ErrShortHeader, "raster: write header")
	}
	if err != nil {
		return errors.Wrap(err, "raster: write header")
	}
	if n != HeaderV2Size {
		return errors.Wrap(ErrShortHeader, "raster: write header")
	}
	return nil
}

// WriteHeader writes a page header from its V1 shape. Misuse (wrong mode,
// closed stream) fails before any stream state is touched.
func (s *Stream) WriteHeader(in *HeaderV1) error {
	if err := s.checkWrite(); err != nil {
		return err
	}
	s.header.SetV1(in)
	return s.writeHeaderBytes()
}

// WriteHeader2 writes a page header from its V2 shape.
func (s *Stream) WriteHeader2(in *HeaderV2) error {
	if err := s.checkWrite(); err != nil {
		return err
	}
	s.header.SetV2(in)
	return s.writeHeaderBytes()
}

func (s *Stream) checkWrite() error {
	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeWrite {
		return ErrMode
	}
	return nil
}

// ReadPixels reads raster pixel bytes for the current page. It returns the
// number of bytes actually served: 0 if no rows remain, the stream is
// closed or in the wrong mode, or the stream failed mid-read; otherwise
// len(p). Uncompressed callers are expected to request whole-row multiples;
// compressed callers may split rows across calls.
func (s *Stream) ReadPixels(p []byte) int {
	if s.closed || s.mode != ModeRead || s.remaining == 0 {
		return 0
	}

	length := len(p)
	if !s.compressed {
		bpl := int(s.header.BytesPerLine())
		if bpl == 0 {
			return 0
		}
		s.consumeRows(length / bpl)

		n, err := readFull(s.r, p)
		if err != nil || n != length {
			return 0
		}

		if needsPixelSwap(&s.header, s.swapped) {
			swap16(p)
		}
		return length
	}

	return s.readPixelsCompressed(p, length)
}

// WritePixels writes raw raster pixel bytes for the current page. Writers
// never compress. It returns len(p), or 0 on failure.
func (s *Stream) WritePixels(p []byte) int {
	if s.closed || s.mode != ModeWrite || s.remaining == 0 {
		return 0
	}

	bpl := int(s.header.BytesPerLine())
	if bpl == 0 {
		return 0
	}
	s.consumeRows(len(p) / bpl)

	n, err := writeFull(s.w, p)
	if err != nil {
		return 0
	}
	return n
}

// consumeRows spends n rows of the current page's budget; remaining never
// goes below zero.
func (s *Stream) consumeRows(n int) {
	if n > s.remaining {
		n = s.remaining
	}
	s.remaining -= n
}
