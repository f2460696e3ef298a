/*
DESCRIPTION
  motionvector.go predicts and decodes motion vectors, per ITU-T
  Recommendation H.263 (01/2005) 6.1.1 (predictor) and Annex D (range
  selection and the unrestricted-motion-vector retry).

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

// PredictCandidate produces the candidate motion-vector predictor for
// block index (0-3) of the macroblock currently being decoded.
//
// decodedVectors holds the four per-block motion vectors of every
// macroblock decoded so far this picture, in raster order; a macroblock
// without four-vector prediction stores its single vector in all four
// slots. currentBlockVectors holds the vectors already decoded for
// earlier block indices (0..index-1) of the macroblock in progress.
// Vectors for block indices >= index are ignored. mbPerLine is the
// picture's macroblocks-per-row.
//
// Callers must decode a macroblock's four blocks in order 0, 1, 2, 3,
// storing each result into currentBlockVectors before predicting the
// next, and append the finished macroblock's vectors to decodedVectors
// before starting the next macroblock.
func PredictCandidate(decodedVectors [][4]MotionVector, currentBlockVectors [4]MotionVector, mbPerLine, index int) MotionVector {
	currentMB := len(decodedVectors)
	colIndex := currentMB % mbPerLine
	lineIndex := currentMB / mbPerLine

	var mv1 MotionVector
	switch index {
	case 0, 2:
		if colIndex == 0 {
			mv1 = MotionVector{}
		} else {
			mv1 = decodedVectors[currentMB-1][index+1]
		}
	case 1, 3:
		mv1 = currentBlockVectors[index-1]
	}

	lastLineMB := colIndex
	if lineIndex > 0 {
		lastLineMB = (lineIndex-1)*mbPerLine + colIndex
	}

	var mv2 MotionVector
	switch index {
	case 0, 1:
		if lineIndex == 0 {
			mv2 = mv1
		} else if lastLineMB < len(decodedVectors) {
			mv2 = decodedVectors[lastLineMB][index+2]
		} else {
			mv2 = mv1
		}
	case 2, 3:
		mv2 = currentBlockVectors[0]
	}

	isEndOfLine := colIndex == mbPerLine-1

	var mv3 MotionVector
	switch index {
	case 0, 1:
		switch {
		case isEndOfLine:
			mv3 = MotionVector{}
		case lineIndex == 0:
			mv3 = mv1
		case lastLineMB+1 < len(decodedVectors):
			mv3 = decodedVectors[lastLineMB+1][2]
		default:
			mv3 = mv1
		}
	case 2, 3:
		mv3 = currentBlockVectors[1]
	}

	return mv1.MedianOf(mv2, mv3)
}

// motionVectorContext is the subset of picture state HalfPelDecode needs to
// pick a retry range. width/height are the picture's effective pixel
// dimensions (already resolved from a carried-forward SourceFormat if the
// current picture didn't retransmit one).
type motionVectorContext struct {
	HasPlusPTYPE      bool
	MotionVectorRange *MotionVectorRange
	Width, Height     uint16
}

// HalfPelDecode decodes one component (x or y) of a motion vector from its
// predictor and coded difference, retrying with the inverted difference if
// the first result falls outside the range selected by the picture's
// running options.
func HalfPelDecode(ctx motionVectorContext, runningOptions PictureOption, predictor, mvd HalfPel, isX bool) HalfPel {
	rng := StandardRange
	out := mvd + predictor

	switch {
	case runningOptions.Has(UnrestrictedMotionVectors) && !ctx.HasPlusPTYPE:
		if predictor.IsMVWithinRange(StandardRange) {
			return out
		}
		rng = ExtendedRange

	case runningOptions.Has(UnrestrictedMotionVectors) && ctx.MotionVectorRange != nil && *ctx.MotionVectorRange == MotionVectorRangeExtended:
		if isX {
			switch {
			case ctx.Width <= 352:
				rng = ExtendedRange
			case ctx.Width <= 704:
				rng = ExtendedRangeQuadCIF
			case ctx.Width <= 1408:
				rng = ExtendedRangeSixteenCIF
			default:
				rng = ExtendedRangeBeyondCIF
			}
		} else {
			switch {
			case ctx.Height <= 288:
				rng = ExtendedRange
			case ctx.Height <= 576:
				rng = ExtendedRangeQuadCIF
			default:
				rng = ExtendedRangeSixteenCIF
			}
		}
	}

	if !out.IsMVWithinRange(rng) {
		out = mvd.Invert() + predictor
	}
	return out
}

// MVDecode decodes a full motion vector from its predictor and coded
// difference.
func MVDecode(ctx motionVectorContext, runningOptions PictureOption, predictor, mvd MotionVector) MotionVector {
	return MotionVector{
		X: HalfPelDecode(ctx, runningOptions, predictor.X, mvd.X, true),
		Y: HalfPelDecode(ctx, runningOptions, predictor.Y, mvd.Y, false),
	}
}
