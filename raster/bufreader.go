// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

import "io"

// bufReader is the refillable byte buffer that sits between the underlying
// reader and everything above it on a compressed stream. Header reads and
// the PackBits decompressor both pull through it, so bytes that a refill
// happened to pull past the current row (the rest of the page, or the next
// page's header) are served in order instead of being lost. Uncompressed
// streams bypass it entirely.
type bufReader struct {
	s *Stream

	buffer []byte // owned refill buffer, grown to 2*cupsBytesPerLine
	bufptr int    // read cursor into buffer
	bufend int    // end of valid data in buffer
}

// ensureSize grows the buffer to at least n bytes, preserving the
// (cursor, end) offsets of any data still pending.
func (br *bufReader) ensureSize(n int) {
	if len(br.buffer) >= n {
		return
	}
	buf := make([]byte, n)
	copy(buf, br.buffer[br.bufptr:br.bufend])
	br.bufend -= br.bufptr
	br.bufptr = 0
	br.buffer = buf
}

// read serves exactly len(dst) bytes to dst. On an uncompressed stream it
// forwards to readFull; otherwise it drains the refill buffer first, then
// either refills it wholesale (small outstanding requests, under 16 bytes)
// or reads directly into dst (large ones), bypassing the buffer.
//
// It returns (len(dst), nil) on success. On failure it returns 0 and the
// cause; the stream is no longer usable. A clean EOF before any byte of
// this call was served is reported as (0, io.EOF), which is how the end of
// the page sequence is detected.
func (br *bufReader) read(dst []byte) (int, error) {
	if !br.s.compressed {
		return readFull(br.s.r, dst)
	}

	br.ensureSize(2 * int(br.s.header.BytesPerLine()))

	bytes := len(dst)
	total := 0
	for total < bytes {
		remaining := br.bufend - br.bufptr
		want := bytes - total

		if remaining == 0 {
			if want < 16 {
				// Refill the buffer, then copy. The refill takes
				// whatever a single read yields, so the tail of
				// the stream need not fill the whole buffer.
				n, err := readSome(br.s.r, br.buffer)
				if n <= 0 {
					return br.fail(total, err)
				}
				br.bufptr = 0
				br.bufend = n
				remaining = n
			} else {
				// Read directly into dst for large requests.
				n, err := readFull(br.s.r, dst[total:total+want])
				if n != want {
					return br.fail(total, err)
				}
				total += n
				continue
			}
		}

		count := want
		if count > remaining {
			count = remaining
		}

		switch {
		case count == 1:
			dst[total] = br.buffer[br.bufptr]
			br.bufptr++
		case count < 128:
			// A hand loop beats a bulk copy for small counts.
			bufptr := br.bufptr
			for i := 0; i < count; i++ {
				dst[total+i] = br.buffer[bufptr+i]
			}
			br.bufptr = bufptr + count
		default:
			copy(dst[total:total+count], br.buffer[br.bufptr:br.bufptr+count])
			br.bufptr += count
		}

		total += count
	}
	return total, nil
}

// fail normalizes a sub-read failure: a clean EOF with nothing served yet
// stays io.EOF, a clean EOF mid-request becomes io.ErrUnexpectedEOF, and
// anything else passes through unchanged.
func (br *bufReader) fail(total int, err error) (int, error) {
	if err == nil || err == io.EOF {
		if total == 0 {
			return 0, io.EOF
		}
		return 0, io.ErrUnexpectedEOF
	}
	return 0, err
}
