// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

import "testing"

func TestLookupSync(t *testing.T) {
	tests := []struct {
		name       string
		word       SyncWord
		ok         bool
		v1Size     bool
		swapped    bool
		compressed bool
	}{
		{"Sync", Sync, true, false, false, false},
		{"RevSync", RevSync, true, false, true, false},
		{"SyncV1", SyncV1, true, true, false, false},
		{"RevSyncV1", RevSyncV1, true, true, true, false},
		{"SyncV2", SyncV2, true, false, false, true},
		{"RevSyncV2", RevSyncV2, true, false, true, true},
		{"unknown", SyncWord(0xdeadbeef), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, ok := lookupSync(tt.word)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if props.v1Size != tt.v1Size {
				t.Errorf("v1Size = %v, want %v", props.v1Size, tt.v1Size)
			}
			if props.swapped != tt.swapped {
				t.Errorf("swapped = %v, want %v", props.swapped, tt.swapped)
			}
			if props.compressed != tt.compressed {
				t.Errorf("compressed = %v, want %v", props.compressed, tt.compressed)
			}
		})
	}
}

func TestSyncWordsAreByteReversals(t *testing.T) {
	pairs := [][2]SyncWord{
		{Sync, RevSync},
		{SyncV1, RevSyncV1},
		{SyncV2, RevSyncV2},
	}
	for _, p := range pairs {
		if got := SyncWord(byteSwap32(uint32(p[0]))); got != p[1] {
			t.Errorf("byteSwap32(%#x) = %#x, want %#x", uint32(p[0]), uint32(got), uint32(p[1]))
		}
		// Involution: swapping twice restores the original.
		if got := byteSwap32(byteSwap32(uint32(p[0]))); got != uint32(p[0]) {
			t.Errorf("byteSwap32 is not an involution for %#x", uint32(p[0]))
		}
	}
}
