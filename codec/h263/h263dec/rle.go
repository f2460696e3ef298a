/*
DESCRIPTION
  rle.go dequantizes and dezigzags one coded block's run-length-encoded
  transform coefficients into an 8x8 array ready for the inverse DCT.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h263dec

// dezigzag maps a scan position (as accumulated from TCOEF run lengths) to
// its (x, y) coordinate in an 8x8 block, per ITU-T Recommendation H.263
// (01/2005) figure 5. This is the canonical, bijective mapping over all 64
// positions — not the historical duplicated-entry-48 table some decoders
// shipped with, which aliases two scan positions onto the same coordinate
// and drops another entirely.
var dezigzag = [64][2]uint8{
	{0, 0}, {1, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 0}, {3, 0}, {2, 1},
	{1, 2}, {0, 3}, {0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}, {5, 0},
	{4, 1}, {3, 2}, {2, 3}, {1, 4}, {0, 5}, {0, 6}, {1, 5}, {2, 4},
	{3, 3}, {4, 2}, {5, 1}, {6, 0}, {7, 0}, {6, 1}, {5, 2}, {4, 3},
	{3, 4}, {2, 5}, {1, 6}, {0, 7}, {1, 7}, {2, 6}, {3, 5}, {4, 4},
	{5, 3}, {6, 2}, {7, 1}, {7, 2}, {6, 3}, {5, 4}, {4, 5}, {3, 6},
	{2, 7}, {3, 7}, {4, 6}, {5, 5}, {6, 4}, {7, 3}, {7, 4}, {6, 5},
	{5, 6}, {4, 7}, {5, 7}, {6, 6}, {7, 5}, {7, 6}, {6, 7}, {7, 7},
}

// DCTBlockKind classifies a dequantized block by which coefficients are
// non-zero, so the IDCT can take a cheaper path than the full 2-D
// transform when possible.
type DCTBlockKind uint8

const (
	// DCTBlockZero is an all-zero block; the IDCT output is all zero too.
	DCTBlockZero DCTBlockKind = iota
	// DCTBlockDC has only coefficient (0,0) set; the IDCT output is a flat
	// fill of that one value.
	DCTBlockDC
	// DCTBlockHoriz has only coefficients in row 0 set.
	DCTBlockHoriz
	// DCTBlockVert has only coefficients in column 0 set.
	DCTBlockVert
	// DCTBlockFull requires the full 2-D inverse transform.
	DCTBlockFull
)

// DecodedDCTBlock is one dequantized, dezigzagged 8x8 block of transform
// coefficients, tagged by DCTBlockKind so downstream IDCT code can use a
// fast path.
type DecodedDCTBlock struct {
	kind  DCTBlockKind
	dc    float32
	row   [8]float32
	col   [8]float32
	block [8][8]float32
}

// DC returns the DC coefficient value. Only meaningful when Kind is
// DCTBlockDC.
func (b DecodedDCTBlock) DC() float32 { return b.dc }

// Row returns row 0's eight coefficients. Only meaningful when Kind is
// DCTBlockHoriz.
func (b DecodedDCTBlock) Row() [8]float32 { return b.row }

// Col returns column 0's eight coefficients. Only meaningful when Kind is
// DCTBlockVert.
func (b DecodedDCTBlock) Col() [8]float32 { return b.col }

// Full returns every coefficient. Only meaningful when Kind is
// DCTBlockFull.
func (b DecodedDCTBlock) Full() [8][8]float32 { return b.block }

// Kind reports which DCTBlockKind b holds.
func (b DecodedDCTBlock) Kind() DCTBlockKind { return b.kind }

// InverseRLE dequantizes and dezigzags one coded Block's coefficients.
// quant is the effective quantizer for this macroblock (PQUANT adjusted by
// any DQUANT).
//
// A TCOEF run that would carry the scan position past the last (7,7)
// coefficient indicates bitstream corruption that can't be localized any
// further than this block; InverseRLE reports that by returning ok=false,
// leaving the caller free to substitute DCTBlockZero and continue
// resynchronizing rather than aborting the whole picture.
func InverseRLE(block Block, quant uint8) (result DecodedDCTBlock, ok bool) {
	if len(block.TCoef) == 0 {
		if block.IntraDC == nil {
			return DecodedDCTBlock{kind: DCTBlockZero}, true
		}
		dc := float32(block.IntraDC.IntoLevel())
		if dc == 0 {
			return DecodedDCTBlock{kind: DCTBlockZero}, true
		}
		return DecodedDCTBlock{kind: DCTBlockDC, dc: dc}, true
	}

	var data [8][8]float32
	isHoriz, isVert := true, true
	zigzagIndex := 0

	if block.IntraDC != nil {
		data[0][0] = float32(block.IntraDC.IntoLevel())
		zigzagIndex++
	}

	for _, tc := range block.TCoef {
		zigzagIndex += int(tc.Run)
		if zigzagIndex >= len(dezigzag) {
			return DecodedDCTBlock{}, false
		}

		coord := dezigzag[zigzagIndex]
		zigX, zigY := coord[0], coord[1]

		level := int16(tc.Level)
		abs := level
		if abs < 0 {
			abs = -abs
		}
		dequantized := int16(quant) * (2*abs + 1)
		parity := int16(0)
		if quant%2 == 0 {
			parity = -1
		}
		sign := int16(0)
		switch {
		case level > 0:
			sign = 1
		case level < 0:
			sign = -1
		}
		value := clampInt16(sign*(dequantized+parity), -2048, 2047)

		data[zigY][zigX] = float32(value)
		zigzagIndex++

		if value != 0 {
			if zigY > 0 {
				isHoriz = false
			}
			if zigX > 0 {
				isVert = false
			}
		}
	}

	switch {
	case isHoriz && isVert:
		if data[0][0] == 0 {
			return DecodedDCTBlock{kind: DCTBlockZero}, true
		}
		return DecodedDCTBlock{kind: DCTBlockDC, dc: data[0][0]}, true
	case isHoriz:
		return DecodedDCTBlock{kind: DCTBlockHoriz, row: data[0]}, true
	case isVert:
		var col [8]float32
		for i := range col {
			col[i] = data[i][0]
		}
		return DecodedDCTBlock{kind: DCTBlockVert, col: col}, true
	default:
		return DecodedDCTBlock{kind: DCTBlockFull, block: data}, true
	}
}

func clampInt16(v, lo, hi int16) int16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
