// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

// Page header layout.
//
// A page header is a fixed-layout record: four 64-byte string fields, then
// a contiguous run of 81 little-endian 32-bit words starting at
// AdvanceDistance, then reserved filler out to the V1 record length. The V2
// record appends a 16-byte tail (NumColors and scaling fields). Accessors
// cover the fields the codec core touches (page geometry, pixel shape, and
// the swap-prefix anchor) plus a few others: the four string fields,
// Duplex, NumCopies, Orientation, and the row fields. Everything else rides
// along as opaque bytes and round-trips bit-for-bit.
const (
	offMediaClass = 0
	offMediaColor = 64
	offMediaType  = 128
	offOutputType = 192
	fieldStrLen   = 64

	// swapPrefixOffset is the first byte of the 81-word region that gets
	// byte-reversed when the stream's wire endianness differs from the
	// host's. It starts at AdvanceDistance; the string fields before it
	// and the filler after it are never swapped.
	swapPrefixOffset = 256
	swapPrefixWords  = 81
	swapPrefixBytes  = swapPrefixWords * 4 // 324

	offAdvanceDistance    = swapPrefixOffset + 4*0
	offAdvanceMedia       = swapPrefixOffset + 4*1
	offCollate            = swapPrefixOffset + 4*2
	offCutMedia           = swapPrefixOffset + 4*3
	offDuplex             = swapPrefixOffset + 4*4
	offHWResolution       = swapPrefixOffset + 4*5 // [2]uint32
	offImagingBoundingBox = swapPrefixOffset + 4*7 // [4]uint32
	offInsertSheet        = swapPrefixOffset + 4*11
	offJog                = swapPrefixOffset + 4*12
	offLeadingEdge        = swapPrefixOffset + 4*13
	offMargins            = swapPrefixOffset + 4*14 // [2]uint32
	offManualFeed         = swapPrefixOffset + 4*16
	offMediaPosition      = swapPrefixOffset + 4*17
	offMediaWeight        = swapPrefixOffset + 4*18
	offMirrorPrint        = swapPrefixOffset + 4*19
	offNegativePrint      = swapPrefixOffset + 4*20
	offNumCopies          = swapPrefixOffset + 4*21
	offOrientation        = swapPrefixOffset + 4*22
	offOutputFaceUp       = swapPrefixOffset + 4*23
	offPageSize           = swapPrefixOffset + 4*24 // [2]uint32
	offSeparations        = swapPrefixOffset + 4*26
	offTraySwitch         = swapPrefixOffset + 4*27
	offTumble             = swapPrefixOffset + 4*28
	offWidth              = swapPrefixOffset + 4*29
	offHeight             = swapPrefixOffset + 4*30
	offMediaTypeNum       = swapPrefixOffset + 4*31
	offBitsPerColor       = swapPrefixOffset + 4*32
	offBitsPerPixel       = swapPrefixOffset + 4*33
	offBytesPerLine       = swapPrefixOffset + 4*34
	offColorOrder         = swapPrefixOffset + 4*35
	offColorSpace         = swapPrefixOffset + 4*36
	offCompression        = swapPrefixOffset + 4*37
	offRowCount           = swapPrefixOffset + 4*38
	offRowFeed            = swapPrefixOffset + 4*39
	offRowStep            = swapPrefixOffset + 4*40
	// words 41..80 of the swap prefix are reserved filler.

	// HeaderV1Size is the on-wire byte length of a V1 page header.
	HeaderV1Size = 1796

	offNumColors               = HeaderV1Size + 0
	offBorderlessScalingFactor = HeaderV1Size + 4
	offPageSizeF               = HeaderV1Size + 8 // [2]float32

	// HeaderV2Size is the on-wire byte length of a V2 page header.
	HeaderV2Size = HeaderV1Size + 16
)

// HeaderV1 is the original, fixed-size page header record.
type HeaderV1 [HeaderV1Size]byte

// HeaderV2 is the extended, fixed-size page header record. A V1 header
// read from the stream is stored as a HeaderV2 whose tail beyond
// HeaderV1Size is zeroed.
type HeaderV2 [HeaderV2Size]byte

// V1 returns the leading HeaderV1Size bytes of h as a V1 header.
func (h *HeaderV2) V1() HeaderV1 {
	var v1 HeaderV1
	copy(v1[:], h[:HeaderV1Size])
	return v1
}

// SetV1 overwrites the leading HeaderV1Size bytes of h, zeroing the
// remaining V2-only tail.
func (h *HeaderV2) SetV1(v1 *HeaderV1) {
	*h = HeaderV2{}
	copy(h[:HeaderV1Size], v1[:])
}

// SetV2 overwrites the full record.
func (h *HeaderV2) SetV2(v2 *HeaderV2) {
	*h = *v2
}

func getU32(b []byte, off int) uint32    { return byteOrder.Uint32(b[off:]) }
func setU32(b []byte, off int, v uint32) { byteOrder.PutUint32(b[off:], v) }
func getStr(b []byte, off, n int) string { return cString(b[off : off+n]) }
func setStr(b []byte, off, n int, s string) {
	field := b[off : off+n]
	for i := range field {
		field[i] = 0
	}
	copy(field, s)
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// The accessor methods below are defined on HeaderV2. HeaderV1 uses the same
// offsets for every field it exposes, but has only a subset of these
// accessors (see below).

func (h *HeaderV2) MediaClass() string     { return getStr(h[:], offMediaClass, fieldStrLen) }
func (h *HeaderV2) SetMediaClass(s string) { setStr(h[:], offMediaClass, fieldStrLen, s) }
func (h *HeaderV2) MediaColor() string     { return getStr(h[:], offMediaColor, fieldStrLen) }
func (h *HeaderV2) SetMediaColor(s string) { setStr(h[:], offMediaColor, fieldStrLen, s) }
func (h *HeaderV2) MediaType() string      { return getStr(h[:], offMediaType, fieldStrLen) }
func (h *HeaderV2) SetMediaType(s string)  { setStr(h[:], offMediaType, fieldStrLen, s) }
func (h *HeaderV2) OutputType() string     { return getStr(h[:], offOutputType, fieldStrLen) }
func (h *HeaderV2) SetOutputType(s string) { setStr(h[:], offOutputType, fieldStrLen, s) }

func (h *HeaderV2) AdvanceDistance() uint32     { return getU32(h[:], offAdvanceDistance) }
func (h *HeaderV2) SetAdvanceDistance(v uint32) { setU32(h[:], offAdvanceDistance, v) }
func (h *HeaderV2) Duplex() uint32              { return getU32(h[:], offDuplex) }
func (h *HeaderV2) SetDuplex(v uint32)          { setU32(h[:], offDuplex, v) }
func (h *HeaderV2) NumCopies() uint32           { return getU32(h[:], offNumCopies) }
func (h *HeaderV2) SetNumCopies(v uint32)       { setU32(h[:], offNumCopies, v) }
func (h *HeaderV2) Orientation() uint32         { return getU32(h[:], offOrientation) }
func (h *HeaderV2) SetOrientation(v uint32)     { setU32(h[:], offOrientation, v) }

func (h *HeaderV2) Width() uint32                { return getU32(h[:], offWidth) }
func (h *HeaderV2) SetWidth(v uint32)            { setU32(h[:], offWidth, v) }
func (h *HeaderV2) Height() uint32               { return getU32(h[:], offHeight) }
func (h *HeaderV2) SetHeight(v uint32)           { setU32(h[:], offHeight, v) }
func (h *HeaderV2) BitsPerColor() uint32         { return getU32(h[:], offBitsPerColor) }
func (h *HeaderV2) SetBitsPerColor(v uint32)     { setU32(h[:], offBitsPerColor, v) }
func (h *HeaderV2) BitsPerPixel() uint32         { return getU32(h[:], offBitsPerPixel) }
func (h *HeaderV2) SetBitsPerPixel(v uint32)     { setU32(h[:], offBitsPerPixel, v) }
func (h *HeaderV2) BytesPerLine() uint32         { return getU32(h[:], offBytesPerLine) }
func (h *HeaderV2) SetBytesPerLine(v uint32)     { setU32(h[:], offBytesPerLine, v) }
func (h *HeaderV2) ColorOrder() ColorOrder       { return ColorOrder(getU32(h[:], offColorOrder)) }
func (h *HeaderV2) SetColorOrder(v ColorOrder)   { setU32(h[:], offColorOrder, uint32(v)) }
func (h *HeaderV2) ColorSpace() ColorSpace       { return ColorSpace(getU32(h[:], offColorSpace)) }
func (h *HeaderV2) SetColorSpace(v ColorSpace)   { setU32(h[:], offColorSpace, uint32(v)) }
func (h *HeaderV2) Compression() uint32          { return getU32(h[:], offCompression) }
func (h *HeaderV2) SetCompression(v uint32)      { setU32(h[:], offCompression, v) }
func (h *HeaderV2) RowCount() uint32             { return getU32(h[:], offRowCount) }
func (h *HeaderV2) SetRowCount(v uint32)         { setU32(h[:], offRowCount, v) }
func (h *HeaderV2) RowFeed() uint32              { return getU32(h[:], offRowFeed) }
func (h *HeaderV2) SetRowFeed(v uint32)          { setU32(h[:], offRowFeed, v) }
func (h *HeaderV2) RowStep() uint32              { return getU32(h[:], offRowStep) }
func (h *HeaderV2) SetRowStep(v uint32)          { setU32(h[:], offRowStep, v) }

// NumColors is V2-only: a V1 header's tail (where this field would live) is
// always zero, which is exactly the "unset" sentinel deriveFields expects.
func (h *HeaderV2) NumColors() uint32     { return getU32(h[:], offNumColors) }
func (h *HeaderV2) SetNumColors(v uint32) { setU32(h[:], offNumColors, v) }

// HeaderV1 accessors, sharing the same offsets: MediaClass and the
// geometry, pixel-shape, color and compression fields only.

func (h *HeaderV1) MediaClass() string         { return getStr(h[:], offMediaClass, fieldStrLen) }
func (h *HeaderV1) SetMediaClass(s string)     { setStr(h[:], offMediaClass, fieldStrLen, s) }
func (h *HeaderV1) Width() uint32              { return getU32(h[:], offWidth) }
func (h *HeaderV1) SetWidth(v uint32)          { setU32(h[:], offWidth, v) }
func (h *HeaderV1) Height() uint32             { return getU32(h[:], offHeight) }
func (h *HeaderV1) SetHeight(v uint32)         { setU32(h[:], offHeight, v) }
func (h *HeaderV1) BitsPerColor() uint32       { return getU32(h[:], offBitsPerColor) }
func (h *HeaderV1) SetBitsPerColor(v uint32)   { setU32(h[:], offBitsPerColor, v) }
func (h *HeaderV1) BitsPerPixel() uint32       { return getU32(h[:], offBitsPerPixel) }
func (h *HeaderV1) SetBitsPerPixel(v uint32)   { setU32(h[:], offBitsPerPixel, v) }
func (h *HeaderV1) BytesPerLine() uint32       { return getU32(h[:], offBytesPerLine) }
func (h *HeaderV1) SetBytesPerLine(v uint32)   { setU32(h[:], offBytesPerLine, v) }
func (h *HeaderV1) ColorOrder() ColorOrder     { return ColorOrder(getU32(h[:], offColorOrder)) }
func (h *HeaderV1) SetColorOrder(v ColorOrder) { setU32(h[:], offColorOrder, uint32(v)) }
func (h *HeaderV1) ColorSpace() ColorSpace     { return ColorSpace(getU32(h[:], offColorSpace)) }
func (h *HeaderV1) SetColorSpace(v ColorSpace) { setU32(h[:], offColorSpace, uint32(v)) }
func (h *HeaderV1) Compression() uint32        { return getU32(h[:], offCompression) }
func (h *HeaderV1) SetCompression(v uint32)    { setU32(h[:], offCompression, v) }

// swapHeaderPrefix byte-reverses the 81-word numeric prefix starting at
// AdvanceDistance. Calling it twice restores the original bytes.
func swapHeaderPrefix(raw []byte) {
	region := raw[swapPrefixOffset : swapPrefixOffset+swapPrefixBytes]
	for i := 0; i < len(region); i += 4 {
		v := getU32(region, i)
		setU32(region, i, byteSwap32(v))
	}
}
