/*
DESCRIPTION
  picture.go decodes ITU-T Recommendation H.263 (01/2005) 5.1: the picture
  layer header (PSC/TR/PTYPE/PLUSPTYPE/OPPTYPE/MPPTYPE and the Annex
  D/E/F/I/J/K/N/P/Q/R/S/T fields they enable), and the Sorenson Spark
  equivalent picture header used by early Macromedia Flash Video.

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

// DecoderOption configures aspects of decoding that cannot be determined
// from the bitstream alone.
type DecoderOption uint8

const (
	// UseScalabilityMode enables parsing of Annex O's ELNUM/RLNUM fields.
	UseScalabilityMode DecoderOption = 1 << iota
	// SorensonSparkBitstream switches the picture header parser to the
	// Sorenson Spark dialect used by early Macromedia Flash Video.
	SorensonSparkBitstream
)

func (o DecoderOption) Has(opt DecoderOption) bool { return o&opt == opt }

// plusPTypeFollower records which optional fields a PLUSPTYPE record
// requires immediately after it, per ITU-T Recommendation H.263 (01/2005)
// 5.1.4.
type plusPTypeFollower uint8

const (
	followerCustomFormat plusPTypeFollower = 1 << iota
	followerCustomClock
	followerMotionVectorRange
	followerSliceStructuredSubmode
	followerReferenceLayerNumber
	followerReferencePictureSelectionMode
)

func (f plusPTypeFollower) has(bit plusPTypeFollower) bool { return f&bit == bit }

// opptypeOptions is reproduced on types.go as OPPTYPEOptions; kept as an
// unexported alias here purely for readability against the bitstream layout
// comments below.
const opptypeOptions = OPPTYPEOptions

// decodePType reads the first 8-13 bits of PTYPE. The second return is nil
// when a PLUSPTYPE record immediately follows instead.
func decodePType(br *bits.BitReader) (PictureOption, *SourceFormat, *PictureTypeCode, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (PictureOption, *SourceFormat, *PictureTypeCode, error) {
		var options PictureOption

		high, err := br.ReadU8()
		if err != nil {
			return 0, nil, nil, newDecodeError(KindEOF, "ptype", err)
		}
		if high&0xC0 != 0x80 {
			return 0, nil, nil, newDecodeError(KindBitstream, "ptype", errInvalidBitstream)
		}
		if high&0x20 != 0 {
			options |= UseSplitScreen
		}
		if high&0x10 != 0 {
			options |= UseDocumentCamera
		}
		if high&0x08 != 0 {
			options |= ReleaseFullPictureFreeze
		}

		var format SourceFormat
		switch high & 0x07 {
		case 0:
			return 0, nil, nil, newDecodeError(KindBitstream, "ptype", errInvalidBitstream)
		case 1:
			format = NewFixedSourceFormat(SourceFormatSubQCIF)
		case 2:
			format = NewFixedSourceFormat(SourceFormatQuarterCIF)
		case 3:
			format = NewFixedSourceFormat(SourceFormatFullCIF)
		case 4:
			format = NewFixedSourceFormat(SourceFormatFourCIF)
		case 5:
			format = NewFixedSourceFormat(SourceFormatSixteenCIF)
		case 6:
			format = NewFixedSourceFormat(SourceFormatReserved)
		default:
			// PLUSPTYPE follows.
			return options, nil, nil, nil
		}

		low, err := br.ReadBits(5)
		if err != nil {
			return 0, nil, nil, newDecodeError(KindEOF, "ptype", err)
		}
		ptype := NewPictureType(PictureTypeP)
		if low&0x10 != 0 {
			ptype = NewPictureType(PictureTypeI)
		}
		if low&0x08 != 0 {
			options |= UnrestrictedMotionVectors
		}
		if low&0x04 != 0 {
			options |= SyntaxBasedArithmeticCoding
		}
		if low&0x02 != 0 {
			options |= AdvancedPrediction
		}
		if low&0x01 != 0 {
			ptype = NewPictureType(PictureTypePB)
		}

		return options, &format, &ptype, nil
	})
}

// plusPTypeResult is the decoded output of decodePlusPType.
type plusPTypeResult struct {
	Options     PictureOption
	Format      *SourceFormat
	Type        PictureTypeCode
	Followers   plusPTypeFollower
	HasOPPTYPE  bool
}

// decodePlusPType reads PLUSPTYPE, including the embedded OPPTYPE and
// MPPTYPE records.
func decodePlusPType(br *bits.BitReader, decoderOptions DecoderOption, previousOptions PictureOption) (plusPTypeResult, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (plusPTypeResult, error) {
		ufep, err := br.ReadBits(3)
		if err != nil {
			return plusPTypeResult{}, newDecodeError(KindEOF, "plusptype", err)
		}
		var hasOPPTYPE bool
		switch ufep {
		case 0:
			hasOPPTYPE = false
		case 1:
			hasOPPTYPE = true
		default:
			return plusPTypeResult{}, newDecodeError(KindBitstream, "plusptype", errInvalidBitstream)
		}

		var options PictureOption
		var followers plusPTypeFollower
		var format *SourceFormat

		if hasOPPTYPE {
			opptype, err := br.ReadBits(18)
			if err != nil {
				return plusPTypeResult{}, newDecodeError(KindEOF, "opptype", err)
			}
			if opptype&0xF != 0x8 {
				return plusPTypeResult{}, newDecodeError(KindBitstream, "opptype", errInvalidBitstream)
			}

			switch (opptype & 0x38000) >> 15 {
			case 0:
				f := NewFixedSourceFormat(SourceFormatReserved)
				format = &f
			case 1:
				f := NewFixedSourceFormat(SourceFormatSubQCIF)
				format = &f
			case 2:
				f := NewFixedSourceFormat(SourceFormatQuarterCIF)
				format = &f
			case 3:
				f := NewFixedSourceFormat(SourceFormatFullCIF)
				format = &f
			case 4:
				f := NewFixedSourceFormat(SourceFormatFourCIF)
				format = &f
			case 5:
				f := NewFixedSourceFormat(SourceFormatSixteenCIF)
				format = &f
			case 6:
				followers |= followerCustomFormat
			default:
				f := NewFixedSourceFormat(SourceFormatReserved)
				format = &f
			}

			if opptype&0x04000 != 0 {
				followers |= followerCustomClock
			}
			if opptype&0x02000 != 0 {
				options |= UnrestrictedMotionVectors
				followers |= followerMotionVectorRange
			}
			if opptype&0x01000 != 0 {
				options |= SyntaxBasedArithmeticCoding
			}
			if opptype&0x00800 != 0 {
				options |= AdvancedPrediction
			}
			if opptype&0x00400 != 0 {
				options |= AdvancedIntraCoding
			}
			if opptype&0x00200 != 0 {
				options |= DeblockingFilter
			}
			if opptype&0x00100 != 0 {
				options |= SliceStructured
				followers |= followerSliceStructuredSubmode
			}
			if opptype&0x00080 != 0 {
				options |= ReferencePictureSelection
				followers |= followerReferencePictureSelectionMode
			}
			if opptype&0x00040 != 0 {
				options |= IndependentSegmentDecoding
			}
			if opptype&0x00020 != 0 {
				options |= AlternativeInterVLC
			}
			if opptype&0x00010 != 0 {
				options |= ModifiedQuantization
			}
			if decoderOptions.Has(UseScalabilityMode) {
				followers |= followerReferenceLayerNumber
			}
		} else {
			options |= previousOptions & opptypeOptions
		}

		mpptype, err := br.ReadBits(9)
		if err != nil {
			return plusPTypeResult{}, newDecodeError(KindEOF, "mpptype", err)
		}
		if mpptype&0x007 != 0x1 {
			return plusPTypeResult{}, newDecodeError(KindBitstream, "mpptype", errInvalidBitstream)
		}

		var ptype PictureTypeCode
		switch (mpptype & 0x1C0) >> 6 {
		case 0:
			ptype = NewPictureType(PictureTypeI)
		case 1:
			ptype = NewPictureType(PictureTypeP)
		case 2:
			ptype = NewPictureType(PictureTypeImprovedPB)
		case 3:
			ptype = NewPictureType(PictureTypeB)
		case 4:
			ptype = NewPictureType(PictureTypeEI)
		case 5:
			ptype = NewPictureType(PictureTypeEP)
		default:
			ptype = NewReservedPictureType(uint8((mpptype & 0x1C0) >> 6))
		}

		if mpptype&0x020 != 0 {
			options |= ReferencePictureResamplingOption
		}
		if mpptype&0x010 != 0 {
			options |= ReducedResolutionUpdate
		}
		if mpptype&0x008 != 0 {
			options |= RoundingTypeOne
		}

		return plusPTypeResult{
			Options:    options,
			Format:     format,
			Type:       ptype,
			Followers:  followers,
			HasOPPTYPE: hasOPPTYPE,
		}, nil
	})
}

// decodeSorensonPType reads the Sorenson Spark equivalent of PTYPE, which
// differs enough from the standard-compliant form to need its own decode.
func decodeSorensonPType(br *bits.BitReader) (SourceFormat, PictureTypeCode, PictureOption, error) {
	type result struct {
		Format SourceFormat
		Type   PictureTypeCode
		Opts   PictureOption
	}
	r, err := bits.WithTransaction(br, func(br *bits.BitReader) (result, error) {
		code, err := br.ReadBits(3)
		if err != nil {
			return result{}, newDecodeError(KindEOF, "sorenson-ptype", err)
		}

		var format *SourceFormat
		var customBits int
		switch code {
		case 0:
			customBits = 8
		case 1:
			customBits = 16
		case 2:
			f := NewFixedSourceFormat(SourceFormatFullCIF)
			format = &f
		case 3:
			f := NewFixedSourceFormat(SourceFormatQuarterCIF)
			format = &f
		case 4:
			f := NewFixedSourceFormat(SourceFormatSubQCIF)
			format = &f
		case 5:
			f := NewExtendedSourceFormat(CustomPictureFormat{
				PixelAspectRatio:        NewFixedPixelAspectRatio(PixelAspectRatioSquare),
				PictureWidthIndication:  320,
				PictureHeightIndication: 240,
			})
			format = &f
		case 6:
			f := NewExtendedSourceFormat(CustomPictureFormat{
				PixelAspectRatio:        NewFixedPixelAspectRatio(PixelAspectRatioSquare),
				PictureWidthIndication:  160,
				PictureHeightIndication: 120,
			})
			format = &f
		default:
			f := NewFixedSourceFormat(SourceFormatReserved)
			format = &f
		}

		if format == nil {
			w, err := br.ReadBits(customBits)
			if err != nil {
				return result{}, newDecodeError(KindEOF, "sorenson-ptype", err)
			}
			h, err := br.ReadBits(customBits)
			if err != nil {
				return result{}, newDecodeError(KindEOF, "sorenson-ptype", err)
			}
			f := NewExtendedSourceFormat(CustomPictureFormat{
				PixelAspectRatio:        NewFixedPixelAspectRatio(PixelAspectRatioSquare),
				PictureWidthIndication:  uint16(w),
				PictureHeightIndication: uint16(h),
			})
			format = &f
		}

		typeCode, err := br.ReadBits(2)
		if err != nil {
			return result{}, newDecodeError(KindEOF, "sorenson-ptype", err)
		}
		var ptype PictureTypeCode
		switch typeCode {
		case 0:
			ptype = NewPictureType(PictureTypeI)
		case 1:
			ptype = NewPictureType(PictureTypeP)
		case 2:
			ptype = NewPictureType(PictureTypeDisposableP)
		default:
			ptype = NewReservedPictureType(uint8(typeCode))
		}

		return result{Format: *format, Type: ptype, Opts: UseDeblocker}, nil
	})
	return r.Format, r.Type, r.Opts, err
}

// decodeCPMAndPSBI reads CPM/PSBI: the multipoint sub-bitstream index, if
// continuous-presence multipoint is enabled.
func decodeCPMAndPSBI(br *bits.BitReader) (*uint8, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (*uint8, error) {
		cpm, err := br.ReadBits(1)
		if err != nil {
			return nil, newDecodeError(KindEOF, "cpm", err)
		}
		if cpm == 0 {
			return nil, nil
		}
		psbi, err := br.ReadBits(2)
		if err != nil {
			return nil, newDecodeError(KindEOF, "psbi", err)
		}
		v := uint8(psbi)
		return &v, nil
	})
}

// decodeCPFMT reads CPFMT: a custom picture format and pixel aspect ratio.
func decodeCPFMT(br *bits.BitReader) (CustomPictureFormat, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (CustomPictureFormat, error) {
		cpfmt, err := br.ReadBits(23)
		if err != nil {
			return CustomPictureFormat{}, newDecodeError(KindEOF, "cpfmt", err)
		}
		if cpfmt&0x000200 == 0 {
			return CustomPictureFormat{}, newDecodeError(KindBitstream, "cpfmt", errInvalidBitstream)
		}

		var par PixelAspectRatio
		switch (cpfmt & 0x780000) >> 19 {
		case 0:
			return CustomPictureFormat{}, newDecodeError(KindBitstream, "cpfmt", errInvalidBitstream)
		case 1:
			par = NewFixedPixelAspectRatio(PixelAspectRatioSquare)
		case 2:
			par = NewFixedPixelAspectRatio(PixelAspectRatioPAR12_11)
		case 3:
			par = NewFixedPixelAspectRatio(PixelAspectRatioPAR10_11)
		case 4:
			par = NewFixedPixelAspectRatio(PixelAspectRatioPAR16_11)
		case 5:
			par = NewFixedPixelAspectRatio(PixelAspectRatioPAR40_33)
		case 15:
			w, err := br.ReadU8()
			if err != nil {
				return CustomPictureFormat{}, newDecodeError(KindEOF, "cpfmt", err)
			}
			h, err := br.ReadU8()
			if err != nil {
				return CustomPictureFormat{}, newDecodeError(KindEOF, "cpfmt", err)
			}
			if w == 0 || h == 0 {
				return CustomPictureFormat{}, newDecodeError(KindBitstream, "cpfmt", errInvalidBitstream)
			}
			par = NewExtendedPixelAspectRatio(w, h)
		default:
			par = NewReservedPixelAspectRatio(uint8((cpfmt & 0x780000) >> 19))
		}

		w := (uint16((cpfmt&0x07FC00)>>10) + 1) * 4
		h := uint16(cpfmt&0x0000FF) * 4

		return CustomPictureFormat{PixelAspectRatio: par, PictureWidthIndication: w, PictureHeightIndication: h}, nil
	})
}

// decodeCPCFC reads CPCFC: the custom picture clock frequency code.
func decodeCPCFC(br *bits.BitReader) (CustomPictureClock, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (CustomPictureClock, error) {
		v, err := br.ReadU8()
		if err != nil {
			return CustomPictureClock{}, newDecodeError(KindEOF, "cpcfc", err)
		}
		return CustomPictureClock{Times1001: v&0x80 != 0, Divisor: v & 0x7F}, nil
	})
}

// decodeUUI reads UUI: the unlimited unrestricted motion vectors indicator.
func decodeUUI(br *bits.BitReader) (MotionVectorRange, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (MotionVectorRange, error) {
		limited, err := br.ReadBits(1)
		if err != nil {
			return 0, newDecodeError(KindEOF, "uui", err)
		}
		if limited == 1 {
			return MotionVectorRangeExtended, nil
		}
		unlimited, err := br.ReadBits(1)
		if err != nil {
			return 0, newDecodeError(KindEOF, "uui", err)
		}
		if unlimited == 1 {
			return MotionVectorRangeUnlimited, nil
		}
		return 0, newDecodeError(KindBitstream, "uui", errInvalidBitstream)
	})
}

// decodeSSS reads SSS: the slice structured submode bits.
func decodeSSS(br *bits.BitReader) (SliceSubmode, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (SliceSubmode, error) {
		v, err := br.ReadBits(2)
		if err != nil {
			return 0, newDecodeError(KindEOF, "sss", err)
		}
		var sss SliceSubmode
		if v&0x01 != 0 {
			sss |= RectangularSlices
		}
		if v&0x02 != 0 {
			sss |= ArbitraryOrder
		}
		return sss, nil
	})
}

// decodeELNUMRLNUM reads ELNUM and, if present, RLNUM.
func decodeELNUMRLNUM(br *bits.BitReader, followers plusPTypeFollower) (ScalabilityLayer, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (ScalabilityLayer, error) {
		el, err := br.ReadBits(4)
		if err != nil {
			return ScalabilityLayer{}, newDecodeError(KindEOF, "elnum", err)
		}
		var ref *uint8
		if followers.has(followerReferenceLayerNumber) {
			rl, err := br.ReadBits(4)
			if err != nil {
				return ScalabilityLayer{}, newDecodeError(KindEOF, "rlnum", err)
			}
			v := uint8(rl)
			ref = &v
		}
		return ScalabilityLayer{Enhancement: uint8(el), Reference: ref}, nil
	})
}

// decodeRPSMF reads RPSMF: the reference picture selection mode flags.
func decodeRPSMF(br *bits.BitReader) (ReferencePictureSelectionMode, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (ReferencePictureSelectionMode, error) {
		v, err := br.ReadBits(3)
		if err != nil {
			return 0, newDecodeError(KindEOF, "rpsmf", err)
		}
		var m ReferencePictureSelectionMode
		if v&0x4 == 0 {
			m |= RPSReserved
		}
		if v&0x2 != 0 {
			m |= RPSRequestNegativeAcknowledgement
		}
		if v&0x1 != 0 {
			m |= RPSRequestAcknowledgement
		}
		return m, nil
	})
}

// decodeTRPI reads TRPI and, if set, TRP.
func decodeTRPI(br *bits.BitReader) (*uint16, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (*uint16, error) {
		trpi, err := br.ReadBits(1)
		if err != nil {
			return nil, newDecodeError(KindEOF, "trpi", err)
		}
		if trpi == 0 {
			return nil, nil
		}
		trp, err := br.ReadBits(10)
		if err != nil {
			return nil, newDecodeError(KindEOF, "trp", err)
		}
		v := uint16(trp)
		return &v, nil
	})
}

// decodeBCM reads BCI and, if it were ever present, BCM. BCM itself is not
// parsed: a BCI of 1 is surfaced as KindUnimplemented rather than guessed
// at.
func decodeBCM(br *bits.BitReader) (*BackchannelMessage, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (*BackchannelMessage, error) {
		bci, err := br.ReadBits(1)
		if err != nil {
			return nil, newDecodeError(KindEOF, "bci", err)
		}
		if bci == 1 {
			return nil, newDecodeError(KindUnimplemented, "bcm", errUnimplementedDecoding)
		}
		notBCI, err := br.ReadBits(1)
		if err != nil {
			return nil, newDecodeError(KindEOF, "bci", err)
		}
		if notBCI != 1 {
			return nil, newDecodeError(KindBitstream, "bci", errInvalidBitstream)
		}
		return nil, nil
	})
}

// decodeRPRP reads RPRP. Reference picture resampling's warping
// reconstruction is out of scope (SPEC_FULL.md §9): this always reports
// KindUnimplemented once entered, matching the upstream decoder's own
// stub.
func decodeRPRP(br *bits.BitReader) (*ReferencePictureResampling, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (*ReferencePictureResampling, error) {
		return nil, newDecodeError(KindUnimplemented, "rprp", errUnimplementedDecoding)
	})
}

// decodeTRB reads TRB: the non-transmitted frame count for a PB-frame's B
// component.
func decodeTRB(br *bits.BitReader, hasCustomClock bool) (uint8, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (uint8, error) {
		n := 3
		if hasCustomClock {
			n = 5
		}
		v, err := br.ReadBits(n)
		if err != nil {
			return 0, newDecodeError(KindEOF, "trb", err)
		}
		return uint8(v), nil
	})
}

// decodeDBQUANT reads DBQUANT: the PB-frame B-block quantizer multiplier.
func decodeDBQUANT(br *bits.BitReader) (BPictureQuantizer, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (BPictureQuantizer, error) {
		v, err := br.ReadBits(2)
		if err != nil {
			return 0, newDecodeError(KindEOF, "dbquant", err)
		}
		return BPictureQuantizer(v), nil
	})
}

// decodePEI reads the PEI/PSUPP extension chain.
func decodePEI(br *bits.BitReader) ([]byte, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) ([]byte, error) {
		var data []byte
		for {
			pei, err := br.ReadBits(1)
			if err != nil {
				return nil, newDecodeError(KindEOF, "pei", err)
			}
			if pei == 0 {
				break
			}
			b, err := br.ReadU8()
			if err != nil {
				return nil, newDecodeError(KindEOF, "psupp", err)
			}
			data = append(data, b)
		}
		return data, nil
	})
}

// decodePicture reads one picture header. It returns (nil, nil) if the
// bitstream instead contains a GOB at the current position, signalling the
// caller should parse it as one. previousPicture may be nil for the first
// picture in a stream.
func decodePicture(br *bits.BitReader, decoderOptions DecoderOption, previousPicture *Picture) (*Picture, error) {
	pic, ok, err := bits.WithTransactionUnion(br, func(br *bits.BitReader) (*Picture, bool, error) {
		skipped, err := br.RecognizeStartCode(false)
		if err != nil {
			return nil, false, newDecodeError(KindBitstream, "picture", err)
		}
		if err := br.SkipBits(17 + skipped); err != nil {
			return nil, false, newDecodeError(KindEOF, "picture", err)
		}

		gobID, err := br.ReadBits(5)
		if err != nil {
			return nil, false, newDecodeError(KindEOF, "picture", err)
		}

		if decoderOptions.Has(SorensonSparkBitstream) {
			tr, err := br.ReadU8()
			if err != nil {
				return nil, false, newDecodeError(KindEOF, "picture", err)
			}
			format, ptype, opts, err := decodeSorensonPType(br)
			if err != nil {
				return nil, false, err
			}
			q, err := br.ReadBits(5)
			if err != nil {
				return nil, false, newDecodeError(KindEOF, "picture", err)
			}
			extra, err := decodePEI(br)
			if err != nil {
				return nil, false, err
			}
			version := uint8(gobID)
			unlimited := MotionVectorRangeUnlimited
			return &Picture{
				Version:           &version,
				TemporalReference: uint16(tr),
				Format:            &format,
				Options:           opts,
				Type:              ptype,
				Quantizer:         uint8(q),
				Extra:             extra,
				MotionVectorRange: &unlimited,
			}, true, nil
		}

		if gobID != 0 {
			return nil, false, nil
		}

		lowTR, err := br.ReadU8()
		if err != nil {
			return nil, false, newDecodeError(KindEOF, "picture", err)
		}

		options, format, ptypeCode, err := decodePType(br)
		if err != nil {
			return nil, false, err
		}

		var multiplex *uint8
		var ptype PictureTypeCode
		var followers plusPTypeFollower
		hasPlusPType := false
		hasOPPTYPE := false

		if ptypeCode != nil {
			ptype = *ptypeCode
		} else {
			prevOpts := PictureOption(0)
			if previousPicture != nil {
				prevOpts = previousPicture.Options
			}
			pp, err := decodePlusPType(br, decoderOptions, prevOpts)
			if err != nil {
				return nil, false, err
			}
			options |= pp.Options
			format = pp.Format
			ptype = pp.Type
			followers = pp.Followers
			hasPlusPType = true
			hasOPPTYPE = pp.HasOPPTYPE

			multiplex, err = decodeCPMAndPSBI(br)
			if err != nil {
				return nil, false, err
			}
		}

		if followers.has(followerCustomFormat) {
			cpfmt, err := decodeCPFMT(br)
			if err != nil {
				return nil, false, err
			}
			f := NewExtendedSourceFormat(cpfmt)
			format = &f
		}

		var clock *CustomPictureClock
		if followers.has(followerCustomClock) {
			c, err := decodeCPCFC(br)
			if err != nil {
				return nil, false, err
			}
			clock = &c
		}

		var tr uint16
		if clock != nil {
			high, err := br.ReadBits(2)
			if err != nil {
				return nil, false, newDecodeError(KindEOF, "picture", err)
			}
			tr = uint16(high)<<8 | uint16(lowTR)
		} else {
			tr = uint16(lowTR)
		}

		var mvRange *MotionVectorRange
		if followers.has(followerMotionVectorRange) {
			v, err := decodeUUI(br)
			if err != nil {
				return nil, false, err
			}
			mvRange = &v
		}

		var sliceSubmode *SliceSubmode
		if followers.has(followerSliceStructuredSubmode) {
			v, err := decodeSSS(br)
			if err != nil {
				return nil, false, err
			}
			sliceSubmode = &v
		}

		var scalability *ScalabilityLayer
		if decoderOptions.Has(UseScalabilityMode) {
			v, err := decodeELNUMRLNUM(br, followers)
			if err != nil {
				return nil, false, err
			}
			scalability = &v
		}

		var rpsMode *ReferencePictureSelectionMode
		if followers.has(followerReferencePictureSelectionMode) {
			v, err := decodeRPSMF(br)
			if err != nil {
				return nil, false, err
			}
			rpsMode = &v
		}

		var predictionRef *uint16
		var backchannel *BackchannelMessage
		if options.Has(ReferencePictureSelection) {
			predictionRef, err = decodeTRPI(br)
			if err != nil {
				return nil, false, err
			}
			backchannel, err = decodeBCM(br)
			if err != nil {
				return nil, false, err
			}
		}

		var rprp *ReferencePictureResampling
		formatChanged := previousPicture != nil && !sameSourceFormat(previousPicture.Format, format)
		if options.Has(ReferencePictureResamplingOption) || formatChanged {
			rprp, err = decodeRPRP(br)
			if err != nil {
				return nil, false, err
			}
		}

		quantizer, err := br.ReadBits(5)
		if err != nil {
			return nil, false, newDecodeError(KindEOF, "picture", err)
		}

		if multiplex == nil {
			multiplex, err = decodeCPMAndPSBI(br)
			if err != nil {
				return nil, false, err
			}
		}

		var pbReference *uint8
		var pbQuantizer *BPictureQuantizer
		if ptype.IsAnyPB() {
			v, err := decodeTRB(br, clock != nil)
			if err != nil {
				return nil, false, err
			}
			q, err := decodeDBQUANT(br)
			if err != nil {
				return nil, false, err
			}
			pbReference, pbQuantizer = &v, &q
		}

		extra, err := decodePEI(br)
		if err != nil {
			return nil, false, err
		}

		return &Picture{
			TemporalReference:             tr,
			Format:                        format,
			Options:                       options,
			HasPlusPTYPE:                  hasPlusPType,
			HasOPPTYPE:                    hasOPPTYPE,
			Type:                          ptype,
			MotionVectorRange:             mvRange,
			SliceSubmode:                  sliceSubmode,
			ScalabilityLayer:              scalability,
			ReferencePictureSelectionMode: rpsMode,
			PredictionReference:           predictionRef,
			BackchannelMessage:            backchannel,
			ReferencePictureResampling:    rprp,
			Quantizer:                     uint8(quantizer),
			MultiplexBitstream:            multiplex,
			PBReference:                   pbReference,
			PBQuantizer:                   pbQuantizer,
			Extra:                         extra,
		}, true, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return pic, nil
}

func sameSourceFormat(a, b *SourceFormat) bool {
	if a == nil || b == nil {
		return a == b
	}
	aw, ah, _ := a.WidthHeight()
	bw, bh, _ := b.WidthHeight()
	return aw == bw && ah == bh
}

