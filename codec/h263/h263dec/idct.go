/*
DESCRIPTION
  idct.go implements the separable 8x8 inverse discrete cosine transform
  used to reconstruct a macroblock's residual from its dequantized
  transform coefficients, per ITU-T Recommendation H.263 (01/2005) 5.4/6.2.

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

import "math"

// basis is the normative 8x8 IDCT basis matrix: basis[u][x] is
// C(u)*cos(pi*(2x+1)*u/16), where C(0) = 1/sqrt(2) and C(u) = 1 for u > 0.
// Row 0 folds in C(0) and is therefore 0.70710677 repeated across every
// column; the remaining rows are the unscaled H.263 cosine basis.
//
// This is computed once at package init rather than hand-transcribed,
// since a 64-entry literal table invites exactly the kind of transcription
// error this computation sidesteps entirely.
var basis [8][8]float32

func init() {
	for u := 0; u < 8; u++ {
		c := 1.0
		if u == 0 {
			c = 1.0 / math.Sqrt2
		}
		for x := 0; x < 8; x++ {
			basis[u][x] = float32(c * math.Cos(math.Pi*(2*float64(x)+1)*float64(u)/16))
		}
	}
}

// idct1D runs one 1-D inverse DCT pass: out[x] = sum_u basis[u][x]*coeffs[u].
func idct1D(coeffs [8]float32) [8]float32 {
	var out [8]float32
	for x := 0; x < 8; x++ {
		var sum float32
		for u := 0; u < 8; u++ {
			sum += basis[u][x] * coeffs[u]
		}
		out[x] = sum
	}
	return out
}

// IDCT runs the inverse DCT over one dequantized block, returning the raw
// (pre-normalization) spatial-domain residual. Use AddResidual to fold the
// result into a prediction block.
//
// block.Full() is indexed [verticalFreq][horizontalFreq], matching the
// (x, y) = (horizontal, vertical) convention InverseRLE fills it in with.
func IDCT(block DecodedDCTBlock) [8][8]float32 {
	switch block.Kind() {
	case DCTBlockZero:
		return [8][8]float32{}

	case DCTBlockDC:
		var out [8][8]float32
		v := block.DC() / 2 // C(0)*C(0)*d = d/2
		for y := range out {
			for x := range out[y] {
				out[y][x] = v
			}
		}
		return out

	case DCTBlockHoriz:
		// Only vertical frequency 0 is populated; the second pass's input
		// has a single nonzero term, so it collapses to a constant scale.
		row := idct1D(block.Row())
		var out [8][8]float32
		for y := range out {
			for x := range out[y] {
				out[y][x] = basis[0][0] * row[x]
			}
		}
		return out

	case DCTBlockVert:
		col := idct1D(block.Col())
		var out [8][8]float32
		for y := range out {
			for x := range out[y] {
				out[y][x] = basis[0][0] * col[y]
			}
		}
		return out

	default: // DCTBlockFull
		x := block.Full()
		var intermediate [8][8]float32 // intermediate[spatialX][verticalFreq]
		for v := 0; v < 8; v++ {
			row := idct1D(x[v])
			for sx := 0; sx < 8; sx++ {
				intermediate[sx][v] = row[sx]
			}
		}
		var out [8][8]float32
		for sx := 0; sx < 8; sx++ {
			col := idct1D(intermediate[sx])
			for sy := 0; sy < 8; sy++ {
				out[sy][sx] = col[sy]
			}
		}
		return out
	}
}

// biasedRound implements the spec's round(v + 0.5*sign(v)) idiom literally:
// v is moved half a step away from zero and the result is then rounded to
// nearest (halves away from zero), so 1.0 gives 2 and -1.2 gives -2.
func biasedRound(v float32) int32 {
	sign := float32(0)
	switch {
	case v > 0:
		sign = 1
	case v < 0:
		sign = -1
	}
	return int32(math.Round(float64(v + 0.5*sign)))
}

func clip32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddResidual folds one IDCT output (as returned by IDCT) into a predicted
// 8x8 block, producing the reconstructed samples.
func AddResidual(prediction [8][8]uint8, residual [8][8]float32) [8][8]uint8 {
	var out [8][8]uint8
	for y := range out {
		for x := range out[y] {
			r := clip32(biasedRound(residual[y][x]/4), -256, 255)
			out[y][x] = uint8(clip32(r+int32(prediction[y][x]), 0, 255))
		}
	}
	return out
}

// ApplyIDCT runs the inverse DCT over block and adds the result to plane's
// existing 8x8 region at pos, in place. For an INTER macroblock, Gather must
// already have written the motion-compensated prediction into that region;
// for INTRA macroblocks the region is left at its zero value, so the
// "prediction" is simply 0 and the written-back samples are the residual
// alone.
//
// This plays the role the reference decoder gives a dedicated per-channel
// IDCT driver fed by a flat plane-wide coefficient buffer; since each block
// here already carries its own position and contents, no intermediate
// buffer is needed; ApplyIDCT reads the prediction directly out of plane
// and writes the reconstructed samples straight back.
func ApplyIDCT(plane []byte, samplesPerRow int, pos [2]int, block DecodedDCTBlock) {
	var prediction [8][8]uint8
	for y := 0; y < 8; y++ {
		row := (pos[1] + y) * samplesPerRow
		for x := 0; x < 8; x++ {
			prediction[y][x] = plane[row+pos[0]+x]
		}
	}

	residual := IDCT(block)
	reconstructed := AddResidual(prediction, residual)

	for y := 0; y < 8; y++ {
		row := (pos[1] + y) * samplesPerRow
		for x := 0; x < 8; x++ {
			plane[row+pos[0]+x] = reconstructed[y][x]
		}
	}
}
