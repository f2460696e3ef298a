/*
DESCRIPTION
  macroblock.go decodes ITU-T Recommendation H.263 (01/2005) 5.3: the
  macroblock layer header (COD/MCBPC/MODB/CBPY/DQUANT/MVD/MVDB) that
  precedes each macroblock's block data.

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

import "github.com/ausocean/h263/codec/h263/h263dec/bits"

// decodeDQuant reads ITU-T Recommendation H.263 (01/2005) 5.3.6 DQUANT: a
// 2-bit code selecting one of four quantizer deltas.
func decodeDQuant(br *bits.BitReader) (int8, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (int8, error) {
		v, err := br.ReadBits(2)
		if err != nil {
			return 0, newDecodeError(KindEOF, "dquant", err)
		}
		switch v {
		case 0:
			return -1, nil
		case 1:
			return -2, nil
		case 2:
			return 1, nil
		default:
			return 2, nil
		}
	})
}

// decodeCBPB reads the six raw coded-block-pattern bits for a PB-frame's
// B-blocks.
func decodeCBPB(br *bits.BitReader) (CodedBlockPattern, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (CodedBlockPattern, error) {
		var bs [6]bool
		for i := range bs {
			v, err := br.ReadBits(1)
			if err != nil {
				return CodedBlockPattern{}, newDecodeError(KindEOF, "cbpb", err)
			}
			bs[i] = v == 1
		}
		return CodedBlockPattern{
			CodesLuma:    [4]bool{bs[0], bs[1], bs[2], bs[3]},
			CodesChromaB: bs[4],
			CodesChromaR: bs[5],
		}, nil
	})
}

// decodeMotionVector reads ITU-T Recommendation H.263 (01/2005) 5.3.7
// MVD, or D.3's unrestricted form when UnrestrictedMotionVectors is in
// force on a PLUSPTYPE-carrying picture.
func decodeMotionVector(br *bits.BitReader, picture *Picture, runningOptions PictureOption) (MotionVector, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (MotionVector, error) {
		if runningOptions.Has(UnrestrictedMotionVectors) && picture.HasPlusPTYPE {
			x, err := br.ReadUMV()
			if err != nil {
				return MotionVector{}, newDecodeError(KindBitstream, "mvd", err)
			}
			y, err := br.ReadUMV()
			if err != nil {
				return MotionVector{}, newDecodeError(KindBitstream, "mvd", err)
			}
			return MotionVector{HalfPel(x), HalfPel(y)}, nil
		}

		xr, err := bits.ReadVLC(br, mvdTable)
		if err != nil {
			return MotionVector{}, newDecodeError(KindEOF, "mvd", err)
		}
		if !xr.Valid {
			return MotionVector{}, newDecodeError(KindBitstream, "mvd", errInvalidMVD)
		}
		yr, err := bits.ReadVLC(br, mvdTable)
		if err != nil {
			return MotionVector{}, newDecodeError(KindEOF, "mvd", err)
		}
		if !yr.Valid {
			return MotionVector{}, newDecodeError(KindBitstream, "mvd", errInvalidMVD)
		}
		return MotionVector{xr.Value, yr.Value}, nil
	})
}

// decodeMacroblock reads one macroblock header. runningOptions is the
// option set currently in force on picture, which can differ from
// picture.Options since some options carry forward from previous pictures
// without being retransmitted (see Decoder.runningOptions).
func decodeMacroblock(br *bits.BitReader, picture *Picture, runningOptions PictureOption) (Macroblock, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (Macroblock, error) {
		isCoded := uint64(0)
		if picture.Type.Kind() != PictureTypeI {
			v, err := br.ReadBits(1)
			if err != nil {
				return Macroblock{}, newDecodeError(KindEOF, "macroblock", err)
			}
			isCoded = v
		}
		if isCoded != 0 {
			return Macroblock{kind: MacroblockUncoded}, nil
		}

		var mcbpc mcbpcResult
		var err error
		switch picture.Type.Kind() {
		case PictureTypeI:
			mcbpc, err = bits.ReadVLC(br, mcbpcITable)
		case PictureTypeP, PictureTypePB, PictureTypeImprovedPB, PictureTypeEP:
			mcbpc, err = bits.ReadVLC(br, mcbpcPTable)
		default:
			return Macroblock{}, newDecodeError(KindUnimplemented, "macroblock", errUnimplementedDecoding)
		}
		if err != nil {
			return Macroblock{}, newDecodeError(KindEOF, "macroblock", err)
		}
		if mcbpc.IsStuffing() {
			return Macroblock{kind: MacroblockStuffing}, nil
		}
		if mcbpc.IsInvalid() {
			return Macroblock{}, newDecodeError(KindBitstream, "macroblock", errInvalidBitstream)
		}
		mbType := mcbpc.Type

		hasCBPB, hasMVDB := false, false
		if picture.Type.IsAnyPB() {
			modb, err := bits.ReadVLC(br, modbTable)
			if err != nil {
				return Macroblock{}, newDecodeError(KindEOF, "macroblock", err)
			}
			hasCBPB, hasMVDB = modb.HasCBPB, modb.HasMVDB
		}

		cbpy, err := bits.ReadVLC(br, cbpyIntraTable)
		if err != nil {
			return Macroblock{}, newDecodeError(KindEOF, "macroblock", err)
		}
		if !cbpy.Valid {
			return Macroblock{}, newDecodeError(KindBitstream, "macroblock", errInvalidBitstream)
		}
		codesLuma := cbpy.Bits
		if !mbType.IsIntra() {
			// Table 12's INTER column is Table 11's INTRA column with
			// every bit flipped.
			for i := range codesLuma {
				codesLuma[i] = !codesLuma[i]
			}
		}

		var cbpB *CodedBlockPattern
		if hasCBPB {
			v, err := decodeCBPB(br)
			if err != nil {
				return Macroblock{}, err
			}
			cbpB = &v
		}

		var dQuantizer *int8
		if runningOptions.Has(ModifiedQuantization) {
			return Macroblock{}, newDecodeError(KindUnimplemented, "macroblock", errUnimplementedDecoding)
		} else if mbType.HasQuantizer() {
			v, err := decodeDQuant(br)
			if err != nil {
				return Macroblock{}, err
			}
			dQuantizer = &v
		}

		var motionVector *MotionVector
		if mbType.IsInter() || picture.Type.IsAnyPB() {
			v, err := decodeMotionVector(br, picture, runningOptions)
			if err != nil {
				return Macroblock{}, err
			}
			motionVector = &v
		}

		var addlMVs *[3]MotionVector
		if runningOptions.Has(AdvancedPrediction) && mbType.HasFourVec() {
			var mvs [3]MotionVector
			for i := range mvs {
				v, err := decodeMotionVector(br, picture, runningOptions)
				if err != nil {
					return Macroblock{}, err
				}
				mvs[i] = v
			}
			addlMVs = &mvs
		}

		var mvsB *[4]MotionVector
		if hasMVDB {
			var mvs [4]MotionVector
			for i := range mvs {
				v, err := decodeMotionVector(br, picture, runningOptions)
				if err != nil {
					return Macroblock{}, err
				}
				mvs[i] = v
			}
			mvsB = &mvs
		}

		return Macroblock{
			kind: MacroblockCoded,
			Type: mbType,
			CodedBlockPattern: CodedBlockPattern{
				CodesLuma:    codesLuma,
				CodesChromaB: mcbpc.ChromaB,
				CodesChromaR: mcbpc.ChromaR,
			},
			CodedBlockPatternB: cbpB,
			DQuantizer:         dQuantizer,
			MotionVector:       motionVector,
			AddlMotionVectors:  addlMVs,
			MotionVectorsB:     mvsB,
		}, nil
	})
}
