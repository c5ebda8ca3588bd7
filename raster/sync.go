// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

// SyncWord is the 32-bit stream-identifying constant at the start of a
// raster stream. Its value encodes three orthogonal properties: header
// revision (V1 vs V2), on-wire endianness relative to the host, and whether
// rows are PackBits-compressed.
//
// The six defined values are derived from three canonical revision words
// (original, V1, V2) by taking each word in its native-endian form and in
// its fully byte-reversed form.
type SyncWord uint32

// Canonical revision words, native-endian on a host matching the writer.
// The "original" revision carries the same full-size header record as V2,
// while V1 carries the short one; "original" exists as the legacy default
// that every writer still emits.
const (
	rasterMagicOriginal uint32 = 0x52615374 // "tSaR" little-endian bytes
	rasterMagicV1       uint32 = 0x52615331
	rasterMagicV2       uint32 = 0x52615332
)

var (
	// Sync is the original, uncompressed, native-endian sync word. It
	// carries a full-size header record on the wire.
	Sync = SyncWord(rasterMagicOriginal)
	// RevSync is Sync with its bytes reversed.
	RevSync = SyncWord(byteSwap32(rasterMagicOriginal))
	// SyncV1 is the V1, uncompressed, native-endian sync word.
	SyncV1 = SyncWord(rasterMagicV1)
	// RevSyncV1 is SyncV1 with its bytes reversed.
	RevSyncV1 = SyncWord(byteSwap32(rasterMagicV1))
	// SyncV2 is the V2, compressed, native-endian sync word.
	SyncV2 = SyncWord(rasterMagicV2)
	// RevSyncV2 is SyncV2 with its bytes reversed.
	RevSyncV2 = SyncWord(byteSwap32(rasterMagicV2))
)

// syncProps describes the three derived properties of a recognized sync
// word.
type syncProps struct {
	// v1Size is true only for the explicit V1 sync pair: the header
	// record on the wire is the short (HeaderV1Size) shape. The legacy
	// "original" sync pair predates the V1/V2 split but always carries a
	// full-size (HeaderV2Size) record, same as V2; only SyncV1/RevSyncV1
	// readers ever see the short form.
	v1Size     bool
	swapped    bool // wire byte order differs from host byte order
	compressed bool // rows are PackBits-compressed
}

// lookupSync classifies a sync word read from the start of a stream. The
// second return value is false if the word matches none of the six known
// constants, in which case the open fails.
func lookupSync(w SyncWord) (syncProps, bool) {
	switch w {
	case Sync:
		return syncProps{}, true
	case RevSync:
		return syncProps{swapped: true}, true
	case SyncV1:
		return syncProps{v1Size: true}, true
	case RevSyncV1:
		return syncProps{v1Size: true, swapped: true}, true
	case SyncV2:
		return syncProps{compressed: true}, true
	case RevSyncV2:
		return syncProps{swapped: true, compressed: true}, true
	default:
		return syncProps{}, false
	}
}
