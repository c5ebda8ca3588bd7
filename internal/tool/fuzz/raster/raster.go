// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package raster

import (
	"bytes"
	"io"

	graster "github.com/dsnet/rasterstream/raster"
)

// limits keep degenerate headers from allocating unbounded memory inside
// the fuzz loop; real pages are far below both.
const (
	maxBytesPerLine = 1 << 20
	maxPageBytes    = 1 << 24
)

func Fuzz(data []byte) int {
	pages, rows, ok := testDecode(data)
	if ok && len(pages) > 0 {
		testRoundTrip(pages, rows)
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecode walks every page of the input, collecting headers and rows.
// Any structural failure reports the input as invalid.
func testDecode(data []byte) ([]graster.HeaderV2, [][]byte, bool) {
	s, err := graster.Open(bytes.NewReader(data))
	if err != nil {
		return nil, nil, false
	}
	defer s.Close()

	var pages []graster.HeaderV2
	var rows [][]byte
	for {
		var h graster.HeaderV2
		if err := s.ReadHeader2(&h); err != nil {
			if err == io.EOF {
				return pages, rows, true
			}
			return nil, nil, false
		}
		bpl := int(h.BytesPerLine())
		if bpl <= 0 || bpl > maxBytesPerLine || s.Remaining()*bpl > maxPageBytes {
			return nil, nil, false
		}
		pages = append(pages, h)
		for s.Remaining() > 0 {
			row := make([]byte, bpl)
			if s.ReadPixels(row) != bpl {
				return nil, nil, false
			}
			rows = append(rows, row)
		}
	}
}

// testRoundTrip re-encodes the decoded pages through the writer and decodes
// them again; the two decodes must agree. The writer always emits native,
// uncompressed output, so only the row bytes are compared; neither the
// headers nor the original wire encoding are checked.
func testRoundTrip(pages []graster.HeaderV2, rows [][]byte) {
	var buf bytes.Buffer
	w, err := graster.OpenWriter(&buf)
	if err != nil {
		panic(err)
	}
	ri := 0
	for i := range pages {
		if err := w.WriteHeader2(&pages[i]); err != nil {
			panic(err)
		}
		for w.Remaining() > 0 {
			if w.WritePixels(rows[ri]) != len(rows[ri]) {
				panic("short pixel write")
			}
			ri++
		}
	}
	w.Close()

	s, err := graster.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		panic(err)
	}
	defer s.Close()
	ri = 0
	for i := range pages {
		var h graster.HeaderV2
		if err := s.ReadHeader2(&h); err != nil {
			panic(err)
		}
		for s.Remaining() > 0 {
			row := make([]byte, h.BytesPerLine())
			if s.ReadPixels(row) != len(row) {
				panic("short pixel read")
			}
			if !bytes.Equal(row, rows[ri]) {
				panic("mismatching row bytes")
			}
			ri++
		}
	}
}
