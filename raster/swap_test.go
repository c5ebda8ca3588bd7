// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

import (
	"bytes"
	"testing"
)

func TestSwap16(t *testing.T) {
	got := []byte{0x11, 0x22, 0x33, 0x44}
	swap16(got)
	if want := []byte{0x22, 0x11, 0x44, 0x33}; !bytes.Equal(got, want) {
		t.Fatalf("swap16 = %x, want %x", got, want)
	}
	swap16(got)
	if want := []byte{0x11, 0x22, 0x33, 0x44}; !bytes.Equal(got, want) {
		t.Fatalf("swap16 twice = %x, want identity %x", got, want)
	}

	// An odd trailing byte is left alone.
	odd := []byte{0x11, 0x22, 0x33}
	swap16(odd)
	if want := []byte{0x22, 0x11, 0x33}; !bytes.Equal(odd, want) {
		t.Fatalf("swap16 odd = %x, want %x", odd, want)
	}
}

func TestNeedsPixelSwap(t *testing.T) {
	tests := []struct {
		bpc, bpp uint32
		swapped  bool
		want     bool
	}{
		{16, 16, true, true},
		{8, 16, true, true},
		{8, 12, true, true},
		{8, 8, true, false},
		{16, 16, false, false},
		{8, 24, true, false},
	}
	for _, tt := range tests {
		var h HeaderV2
		h.SetBitsPerColor(tt.bpc)
		h.SetBitsPerPixel(tt.bpp)
		if got := needsPixelSwap(&h, tt.swapped); got != tt.want {
			t.Errorf("needsPixelSwap(bpc=%d, bpp=%d, swapped=%v) = %v, want %v",
				tt.bpc, tt.bpp, tt.swapped, got, tt.want)
		}
	}
}
