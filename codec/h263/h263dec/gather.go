/*
DESCRIPTION
  gather.go performs motion-compensated prediction: copying (and, for
  fractional motion vectors, bilinearly interpolating) sample data from a
  reference Frame into the picture currently being reconstructed, per
  ITU-T Recommendation H.263 (01/2005) 6.1/D.1.

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

// readSample fetches one sample from plane, clamping out-of-bounds
// coordinates to the nearest edge pixel (GL_CLAMP_TO_EDGE semantics, per
// H.263 (01/2005) D.1: motion vectors that cross the picture boundary
// repeat the edge row/column rather than wrapping).
func readSample(plane []byte, samplesPerRow int, x, y int) uint8 {
	if x < 0 {
		x = 0
	} else if x >= samplesPerRow {
		x = samplesPerRow - 1
	}

	height := 0
	if samplesPerRow > 0 {
		height = len(plane) / samplesPerRow
	}
	if y < 0 {
		y = 0
	} else if y >= height {
		y = height - 1
	}

	idx := x + y*samplesPerRow
	if idx < 0 || idx >= len(plane) {
		return 0
	}
	return plane[idx]
}

// lerp blends two samples 50/50 if needsSecond is set, else returns a
// unchanged.
func lerp(a, b uint8, needsSecond bool) uint8 {
	if !needsSecond {
		return a
	}
	return uint8((uint16(a) + uint16(b) + 1) / 2)
}

// gatherBlock motion-compensates one 8x8 block from src into dst, both
// row-major with the given stride. pos is dst's top-left corner for this
// block.
func gatherBlock(src []byte, samplesPerRow int, pos [2]int, mv MotionVector, dst []byte) {
	xLerp, yLerp := mv.IntoLerpParameters()
	x := pos[0] + int(xLerp.Offset)
	y := pos[1] + int(yLerp.Offset)

	dstHeight := 0
	if samplesPerRow > 0 {
		dstHeight = len(dst) / samplesPerRow
	}

	for j := 0; j < 8; j++ {
		if pos[1]+j >= dstHeight {
			continue
		}
		v := y + j
		for i := 0; i < 8; i++ {
			if pos[0]+i >= samplesPerRow {
				continue
			}
			u := x + i

			s00 := readSample(src, samplesPerRow, u, v)
			s10 := readSample(src, samplesPerRow, u+1, v)
			s01 := readSample(src, samplesPerRow, u, v+1)
			s11 := readSample(src, samplesPerRow, u+1, v+1)

			mid0 := lerp(s00, s10, xLerp.NeedsSecond)
			mid1 := lerp(s01, s11, xLerp.NeedsSecond)

			dst[pos[0]+i+(pos[1]+j)*samplesPerRow] = lerp(mid0, mid1, yLerp.NeedsSecond)
		}
	}
}

// Gather motion-compensates every INTER macroblock of dst from reference,
// leaving INTRA macroblocks' regions untouched (the caller adds IDCT
// output directly for those, with no prediction to mix in).
//
// mbTypes and mvs are indexed in raster macroblock order; mvs holds each
// macroblock's four luma sub-block vectors (a macroblock without
// four-vector prediction repeats its single vector across all four
// slots). reference is nil only when no INTER macroblock exists.
func Gather(mbTypes []MacroblockType, reference *Frame, mvs [][4]MotionVector, mbPerLine int, dst *Frame) error {
	for i, mbType := range mbTypes {
		if !mbType.IsInter() {
			continue
		}
		if reference == nil {
			return newDecodeError(KindBitstream, "gather", errInvalidBitstream)
		}
		mv := mvs[i]

		lumaStride := reference.LumaSamplesPerRow()
		pos := [2]int{(i % mbPerLine) * 16, (i / mbPerLine) * 16}

		gatherBlock(reference.Luma, lumaStride, pos, mv[0], dst.Luma)
		gatherBlock(reference.Luma, lumaStride, [2]int{pos[0] + 8, pos[1]}, mv[1], dst.Luma)
		gatherBlock(reference.Luma, lumaStride, [2]int{pos[0], pos[1] + 8}, mv[2], dst.Luma)
		gatherBlock(reference.Luma, lumaStride, [2]int{pos[0] + 8, pos[1] + 8}, mv[3], dst.Luma)

		mvChroma := mv[0].Add(mv[1]).Add(mv[2]).Add(mv[3]).AverageSumOfMVs()
		chromaStride := reference.ChromaSamplesPerRow()
		chromaPos := [2]int{pos[0] / 2, pos[1] / 2}

		gatherBlock(reference.ChromaB, chromaStride, chromaPos, mvChroma, dst.ChromaB)
		gatherBlock(reference.ChromaR, chromaStride, chromaPos, mvChroma, dst.ChromaR)
	}
	return nil
}
