// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

// decodeRow decodes one PackBits-framed row into dest, which must have
// length cupsBytesPerLine.
//
// Each opcode is either a literal run (high bit set: copy (257-b)*bpp bytes
// verbatim) or a repeat run (high bit clear: replay one bpp-wide pel
// (b+1) times). Both clamp to the remaining row budget; a repeat run whose
// clamped length undershoots a full pel aborts the opcode loop, leaving the
// tail bytes of dest unwritten: they keep whatever dest held before (zero
// in a freshly allocated buffer). That residual is the defined behavior:
// it keeps the output aligned at pel boundaries.
func (s *Stream) decodeRow(dest []byte) bool {
	bpp := s.bpp
	pos := 0
	left := len(dest)

	var op [1]byte
	for left > 0 {
		if n, _ := s.buf.read(op[:]); n != 1 {
			return false
		}
		b := op[0]

		if b&0x80 != 0 {
			count := (257 - int(b)) * bpp
			if count > left {
				count = left
			}
			if n, _ := s.buf.read(dest[pos : pos+count]); n != count {
				return false
			}
			pos += count
			left -= count
			continue
		}

		count := (int(b) + 1) * bpp
		if count > left {
			count = left
		}
		if count < bpp {
			break
		}
		left -= count

		if n, _ := s.buf.read(dest[pos : pos+bpp]); n != bpp {
			return false
		}
		pos += bpp
		count -= bpp

		// Replay by propagating the pel just written forward, one pel
		// at a time. The source region overlaps the destination, so a
		// bulk copy of the whole run would read stale bytes. The last
		// copy is clamped: a run whose clamped length is not a pel
		// multiple ends in a partial pel at the end of the row.
		for count > 0 {
			m := bpp
			if m > count {
				m = count
			}
			for k := 0; k < m; k++ {
				dest[pos+k] = dest[pos-bpp+k]
			}
			pos += m
			count -= m
		}
	}
	return true
}

// readPixelsCompressed drives the decompressor until length bytes have been
// served to dst or the page's row budget is exhausted. It returns length on
// success, or 0 if the underlying stream failed mid-decode.
func (s *Stream) readPixelsCompressed(dst []byte, length int) int {
	bytesPerLine := int(s.header.BytesPerLine())
	remaining := length
	offset := 0

	for remaining > 0 && s.remaining > 0 {
		if s.count == 0 {
			// Need to decode a new row. It lands directly in the
			// caller's buffer only when the request is exactly one
			// row and the row will not be replayed.
			toCaller := remaining == bytesPerLine
			var dest []byte
			if toCaller {
				dest = dst[offset : offset+bytesPerLine]
			} else {
				dest = s.pixels
			}

			var repeat [1]byte
			if n, _ := s.buf.read(repeat[:]); n != 1 {
				return 0
			}
			s.count = int(repeat[0]) + 1
			if s.count > 1 {
				toCaller = false
				dest = s.pixels
			}

			if !s.decodeRow(dest) {
				return 0
			}
			if needsPixelSwap(&s.header, s.swapped) {
				swap16(dest)
			}

			var n int
			if remaining >= bytesPerLine {
				n = bytesPerLine
				s.pcurrent = 0
				s.count--
				s.remaining--
			} else {
				n = remaining
				s.pcurrent = n
			}
			if !toCaller {
				copy(dst[offset:offset+n], dest[:n])
			}
			offset += n
			remaining -= n
		} else {
			// Replay the buffered row.
			avail := bytesPerLine - s.pcurrent
			n := avail
			if n > remaining {
				n = remaining
			}
			copy(dst[offset:offset+n], s.pixels[s.pcurrent:s.pcurrent+n])
			s.pcurrent += n
			if s.pcurrent >= bytesPerLine {
				s.pcurrent = 0
				s.count--
				s.remaining--
			}
			offset += n
			remaining -= n
		}
	}
	return length
}
