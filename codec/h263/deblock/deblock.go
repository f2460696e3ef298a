/*
DESCRIPTION
  Package deblock implements the ITU-T Recommendation H.263 (01/2005)
  Annex J deblocking filter as a postprocessing step over a decoded
  picture's sample planes, not as an in-loop prediction filter.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package deblock smooths 8x8 block edges in a decoded picture, per ITU-T
// Recommendation H.263 (01/2005) Annex J.
package deblock

// QuantToStrength is Table J.2/H.263: the filter STRENGTH selected by a
// macroblock's QUANT. Index 0 is never used (QUANT is never zero).
var QuantToStrength = [32]uint8{
	0, 1, 1, 2, 2, 3, 3, 4, 4, 4, 5, 5, 6, 6, 7, 7,
	7, 8, 8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 11, 12, 12, 12,
}

// upDownRamp is Figure J.2/H.263's d1-from-d relationship.
func upDownRamp(x, strength int16) int16 {
	abs := x
	if abs < 0 {
		abs = -abs
	}
	v := abs - max16(2*(abs-strength), 0)
	v = max16(v, 0)
	switch {
	case x > 0:
		return v
	case x < 0:
		return -v
	default:
		return 0
	}
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

// clipD1 clips x to the symmetric range [-|lim|, |lim|].
func clipD1(x, lim int16) int16 {
	if lim < 0 {
		lim = -lim
	}
	switch {
	case x < -lim:
		return -lim
	case x > lim:
		return lim
	default:
		return x
	}
}

func clampByte(v int16) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Process filters one line of four samples straddling a block edge: a and b
// belong to one block, c and d belong to the neighbouring block immediately
// to the right of or below it (Figure J.1/H.263). strength must be in
// [1, 12], as produced by QuantToStrength.
func Process(a, b, c, d *uint8, strength uint8) {
	a16, b16, c16, d16 := int16(*a), int16(*b), int16(*c), int16(*d)

	d0 := (a16 - 4*b16 + 4*c16 - d16) / 8
	d1 := upDownRamp(d0, int16(strength))
	d2 := clipD1((a16-d16)/4, d1/2)

	*a = clampByte(a16 - d2)
	*b = clampByte(b16 + d1)
	*c = clampByte(c16 - d1)
	*d = clampByte(d16 + d2)
}

// deblockHoriz smooths the horizontal block edges (edges between vertically
// stacked 8x8 blocks) of a width-stride plane, in place.
func deblockHoriz(plane []byte, width int, strength uint8) {
	height := len(plane) / width

	for edgeY := 8; edgeY <= height-2; edgeY += 8 {
		rowA := plane[(edgeY-2)*width : (edgeY-1)*width]
		rowB := plane[(edgeY-1)*width : edgeY*width]
		rowC := plane[edgeY*width : (edgeY+1)*width]
		rowD := plane[(edgeY+1)*width : (edgeY+2)*width]

		for x := 0; x < width; x++ {
			Process(&rowA[x], &rowB[x], &rowC[x], &rowD[x], strength)
		}
	}
}

// deblockVert smooths the vertical block edges (edges between
// side-by-side 8x8 blocks) of a width-stride plane, in place. Only the two
// columns either side of each interior edge (x = 8, 16, ...) are filtered;
// the middle four columns of every 8-wide block are left untouched. As in
// original_source/deblock/src/deblock.rs, a plane narrower than 10 samples
// has no edge to filter at all.
func deblockVert(plane []byte, width int, strength uint8) {
	if width < 10 {
		return
	}
	height := len(plane) / width

	for y := 0; y < height; y++ {
		row := plane[y*width : (y+1)*width]
		for edgeX := 8; edgeX <= width-2; edgeX += 8 {
			Process(&row[edgeX-2], &row[edgeX-1], &row[edgeX], &row[edgeX+1], strength)
		}
	}
}

// Deblock applies the horizontal-then-vertical deblocking passes to a copy
// of data, an 8-bit sample plane with the given row stride, assuming 8x8
// block boundaries. strength must be in [1, 12]; callers derive it from a
// macroblock's effective quantizer via QuantToStrength.
func Deblock(data []byte, width int, strength uint8) []byte {
	result := make([]byte, len(data))
	copy(result, data)

	// The horizontal filter is applied before the vertical one.
	deblockHoriz(result, width, strength)
	deblockVert(result, width, strength)

	return result
}
