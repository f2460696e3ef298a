/*
DESCRIPTION
  types.go defines the parsed data model for H.263/Sorenson Spark bitstream
  pictures, as specified in ITU-T Recommendation H.263 (01/2005) and its
  annexes.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h263dec implements a decoder for the ITU-T H.263 (01/2005) video
// bitstream, including the Sorenson Spark dialect used by Macromedia Flash.
package h263dec

// Picture carries ITU-T Recommendation H.263 (01/2005) 5.1.2-5.1.4 TR,
// PTYPE, PLUSPTYPE and 5.1.8 ETR: the per-picture header fields that
// configure resolution, enabled optional features, and intra-prediction
// mode for the frame that follows.
type Picture struct {
	// Version is the Sorenson Spark version code. Compliant H.263
	// bitstreams are unversioned; only Sorenson streams set this.
	Version *uint8

	// TemporalReference is this picture's TR, 8 or 10 bits wide depending
	// on whether a custom clock is in effect. References overflow after
	// frame 255 or 1023.
	TemporalReference uint16

	// Format is the source format of the image. If nil, the format
	// matches the reference picture's.
	Format *SourceFormat

	// Options holds every PictureOption enabled or carried forward for
	// this picture.
	Options PictureOption

	// HasPlusPTYPE indicates this picture carried a PLUSPTYPE record.
	HasPlusPTYPE bool

	// HasOPPTYPE indicates this picture carried an OPPTYPE record. Its
	// absence leaves some PictureOptions unset on this Picture even
	// though they remain in force; carry-forward is the caller's
	// responsibility (see Decoder.runningOptions).
	HasOPPTYPE bool

	// Type is the intra-prediction mode in use.
	Type PictureTypeCode

	// MotionVectorRange specifies motion vector limits. Present if and
	// only if UnrestrictedMotionVectors is set in Options.
	MotionVectorRange *MotionVectorRange

	// SliceSubmode holds active slice-structured submodes. Present if and
	// only if SliceStructured is set in Options.
	SliceSubmode *SliceSubmode

	// ScalabilityLayer identifies this picture's scalability layer.
	// Present only when temporal/SNR/spatial scalability is negotiated.
	ScalabilityLayer *ScalabilityLayer

	// ReferencePictureSelectionMode holds requested backchannel signals.
	ReferencePictureSelectionMode *ReferencePictureSelectionMode

	// PredictionReference is TRP, the temporal reference of the picture
	// used to reconstruct this one. Must be nil for I/EI frames.
	PredictionReference *uint16

	// BackchannelMessage carries any BCI backchannel request.
	BackchannelMessage *BackchannelMessage

	// ReferencePictureResampling carries RPRP warping parameters.
	ReferencePictureResampling *ReferencePictureResampling

	// Quantizer is PQUANT, the default quantizer factor for this picture.
	Quantizer uint8

	// MultiplexBitstream is CPM/PSBI: which multipoint sub-bitstream (0-3)
	// this picture belongs to, or nil if continuous presence multipoint is
	// disabled.
	MultiplexBitstream *uint8

	// PBReference is TRb, the non-transmitted frame count to the B half of
	// a PB frame.
	PBReference *uint8

	// PBQuantizer is DBQUANT, the B-block quantizer of a PB frame.
	PBQuantizer *BPictureQuantizer

	// Extra holds opaque PEI extension bytes.
	Extra []byte
}

// SourceFormat is the source picture resolution. CIF ("Common Interchange
// Format") is a videoconferencing resolution/frame-rate standard; most
// other variants are pixel-count multiples of it.
type SourceFormat struct {
	kind   sourceFormatKind
	Custom CustomPictureFormat // only meaningful when kind == sourceFormatExtended
}

type sourceFormatKind uint8

const (
	SourceFormatSubQCIF sourceFormatKind = iota // 128x96
	SourceFormatQuarterCIF
	SourceFormatFullCIF // 352x288
	SourceFormatFourCIF
	SourceFormatSixteenCIF
	SourceFormatReserved
	sourceFormatExtended
)

// NewFixedSourceFormat builds a SourceFormat for one of the fixed CIF-family
// resolutions (everything but Extended).
func NewFixedSourceFormat(kind sourceFormatKind) SourceFormat {
	return SourceFormat{kind: kind}
}

// NewExtendedSourceFormat builds a SourceFormat carrying an explicit custom
// width/height/PAR.
func NewExtendedSourceFormat(cpf CustomPictureFormat) SourceFormat {
	return SourceFormat{kind: sourceFormatExtended, Custom: cpf}
}

// Kind reports which sourceFormatKind this SourceFormat holds.
func (f SourceFormat) Kind() sourceFormatKind { return f.kind }

// WidthHeight determines the format's pixel width and height. The second
// return is false for SourceFormatReserved.
func (f SourceFormat) WidthHeight() (w, h uint16, ok bool) {
	switch f.kind {
	case SourceFormatSubQCIF:
		return 128, 96, true
	case SourceFormatQuarterCIF:
		return 176, 144, true
	case SourceFormatFullCIF:
		return 352, 288, true
	case SourceFormatFourCIF:
		return 704, 576, true
	case SourceFormatSixteenCIF:
		return 1408, 1152, true
	case sourceFormatExtended:
		return f.Custom.PictureWidthIndication, f.Custom.PictureHeightIndication, true
	default:
		return 0, 0, false
	}
}

// PictureOption is the bitmask of H.263 optional features configured by
// PTYPE/PLUSPTYPE/OPPTYPE. Several combinations are mutually exclusive per
// ITU-T H.263 (01/2005); validating that is the parser's job, not this
// type's.
type PictureOption uint32

const (
	UseSplitScreen PictureOption = 1 << iota
	UseDocumentCamera
	ReleaseFullPictureFreeze
	UnrestrictedMotionVectors
	SyntaxBasedArithmeticCoding
	AdvancedPrediction
	AdvancedIntraCoding
	DeblockingFilter
	SliceStructured
	ReferencePictureSelection
	IndependentSegmentDecoding
	AlternativeInterVLC
	ModifiedQuantization
	ReferencePictureResamplingOption
	ReducedResolutionUpdate
	RoundingTypeOne

	// UseDeblocker is an advisory flag set only by Sorenson Spark
	// bitstreams, forcing the deblocking filter regardless of
	// DeblockingFilter.
	UseDeblocker
)

// OPPTYPEOptions is the set of options an OPPTYPE record carries (PTYPE can
// also set UnrestrictedMotionVectors, SyntaxBasedArithmeticCoding and
// AdvancedPrediction); absent an OPPTYPE, these carry forward from the
// previous picture (see Decoder.runningOptions).
const OPPTYPEOptions = UnrestrictedMotionVectors | SyntaxBasedArithmeticCoding |
	AdvancedPrediction | AdvancedIntraCoding | DeblockingFilter | SliceStructured |
	ReferencePictureSelection | IndependentSegmentDecoding | AlternativeInterVLC |
	ModifiedQuantization

// MPPTYPEOptions is the set of options only ever carried in a picture's
// MPPTYPE record.
const MPPTYPEOptions = ReferencePictureResamplingOption | ReducedResolutionUpdate | RoundingTypeOne

// Has reports whether every bit in opt is set in o.
func (o PictureOption) Has(opt PictureOption) bool { return o&opt == opt }

// PictureTypeCode identifies which reference frames, if any, a picture's
// reconstruction draws from.
type PictureTypeCode struct {
	kind pictureTypeKind

	// Reserved holds the raw MPPTYPE bits for a reserved picture type code.
	Reserved uint8
}

type pictureTypeKind uint8

const (
	PictureTypeI pictureTypeKind = iota
	PictureTypeP
	PictureTypePB
	PictureTypeImprovedPB
	PictureTypeB
	PictureTypeEI
	PictureTypeEP
	PictureTypeReserved
	// PictureTypeDisposableP is exclusive to Sorenson Spark: a P frame the
	// encoder promises is never referenced, so the decoder may discard it
	// once decoded.
	PictureTypeDisposableP
)

func NewPictureType(kind pictureTypeKind) PictureTypeCode { return PictureTypeCode{kind: kind} }

func NewReservedPictureType(raw uint8) PictureTypeCode {
	return PictureTypeCode{kind: PictureTypeReserved, Reserved: raw}
}

func (t PictureTypeCode) Kind() pictureTypeKind { return t.kind }

// IsAnyPB reports whether t is either kind of PB frame.
func (t PictureTypeCode) IsAnyPB() bool {
	return t.kind == PictureTypePB || t.kind == PictureTypeImprovedPB
}

// IsDisposable reports whether the encoder promised this picture is never
// referenced by another.
func (t PictureTypeCode) IsDisposable() bool {
	return t.kind == PictureTypeDisposableP
}

// CustomPictureFormat is ITU-T Recommendation H.263 (01/2005) 5.1.5-5.1.6
// CPFMT, EPAR: an explicit resolution and pixel aspect ratio outside the
// fixed CIF family.
type CustomPictureFormat struct {
	PixelAspectRatio        PixelAspectRatio
	PictureWidthIndication  uint16
	PictureHeightIndication uint16
}

// PixelAspectRatio is the aspect ratio of one pixel. It is purely a display
// hint; it does not affect the pixel dimensions of the decoded planes.
type PixelAspectRatio struct {
	kind pixelAspectRatioKind

	// ParWidth/ParHeight are only meaningful when kind is
	// PixelAspectRatioExtended.
	ParWidth, ParHeight uint8

	// Reserved holds the raw PAR code for PixelAspectRatioReserved.
	Reserved uint8
}

type pixelAspectRatioKind uint8

const (
	PixelAspectRatioSquare pixelAspectRatioKind = iota // 1:1
	PixelAspectRatioPAR12_11
	PixelAspectRatioPAR10_11
	PixelAspectRatioPAR16_11
	PixelAspectRatioPAR40_33
	PixelAspectRatioReserved
	PixelAspectRatioExtended
)

func NewFixedPixelAspectRatio(kind pixelAspectRatioKind) PixelAspectRatio {
	return PixelAspectRatio{kind: kind}
}

func NewReservedPixelAspectRatio(raw uint8) PixelAspectRatio {
	return PixelAspectRatio{kind: PixelAspectRatioReserved, Reserved: raw}
}

func NewExtendedPixelAspectRatio(w, h uint8) PixelAspectRatio {
	return PixelAspectRatio{kind: PixelAspectRatioExtended, ParWidth: w, ParHeight: h}
}

func (p PixelAspectRatio) Kind() pixelAspectRatioKind { return p.kind }

// CustomPictureClock is ITU-T Recommendation H.263 (01/2005) 5.1.7 CPCFC.
// The frame rate is 1,800,000 / (Divisor * (1000 or 1001)).
type CustomPictureClock struct {
	// Times1001 selects a divisor multiplier of 1001 (true) or 1000
	// (false).
	Times1001 bool
	Divisor   uint8
}

// FrameRate computes the custom clock's frame rate in frames per second.
func (c CustomPictureClock) FrameRate() float64 {
	mult := 1000.0
	if c.Times1001 {
		mult = 1001.0
	}
	return 1_800_000.0 / (float64(c.Divisor) * mult)
}

// MotionVectorRange is ITU-T Recommendation H.263 (01/2005) 5.1.9 UUI:
// the motion vector range limitation in force when
// UnrestrictedMotionVectors is enabled.
type MotionVectorRange uint8

const (
	// MotionVectorRangeExtended uses the limits of H.263 (01/2005) D.1/D.2.
	MotionVectorRangeExtended MotionVectorRange = iota
	// MotionVectorRangeUnlimited is bounded only by picture size.
	MotionVectorRangeUnlimited
)

// SliceSubmode is ITU-T Recommendation H.263 (01/2005) 5.1.9 SSS.
type SliceSubmode uint8

const (
	RectangularSlices SliceSubmode = 1 << iota
	ArbitraryOrder
)

// ScalabilityLayer is ITU-T Recommendation H.263 (01/2005) 5.1.11-5.1.12
// ELNUM, RLNUM.
type ScalabilityLayer struct {
	Enhancement uint8
	// Reference is nil if this picture does not declare a reference layer.
	Reference *uint8
}

// ReferencePictureSelectionMode is ITU-T Recommendation H.263 (01/2005)
// 5.1.13 RPSMF.
type ReferencePictureSelectionMode uint8

const (
	RPSReserved ReferencePictureSelectionMode = 1 << iota
	RPSRequestNegativeAcknowledgement
	RPSRequestAcknowledgement
)

// BackchannelMessage is ITU-T Recommendation H.263 (01/2005) N.4.2 BCM.
type BackchannelMessage struct {
	MessageType               BackchannelMessageType
	Reliable                  BackchannelReliability
	TemporalReference         uint16
	EnhancementLayer          *uint8
	SubBitstream              *uint8
	GOBMacroblockAddress      *uint16
	RequestedTemporalRef      *uint16
}

// BackchannelMessageType is ITU-T Recommendation H.263 (01/2005) N.4.2.1 BT.
type BackchannelMessageType struct {
	kind     backchannelMessageKind
	Reserved uint8
}

type backchannelMessageKind uint8

const (
	BackchannelAcknowledge backchannelMessageKind = iota
	BackchannelNegativeAcknowledge
	BackchannelReserved
)

func NewBackchannelMessageType(kind backchannelMessageKind) BackchannelMessageType {
	return BackchannelMessageType{kind: kind}
}

// BackchannelReliability is ITU-T Recommendation H.263 (01/2005) N.4.2.2
// URF.
type BackchannelReliability uint8

const (
	BackchannelReliable BackchannelReliability = iota
	BackchannelUnreliable
)

// ReferencePictureResampling is ITU-T Recommendation H.263 (01/2005) P.2
// RPRP.
type ReferencePictureResampling struct {
	Accuracy WarpingDisplacementAccuracy
	// Warps holds the eight warping parameters, or nil if none were coded.
	Warps *[8]uint16
}

// WarpingDisplacementAccuracy is ITU-T Recommendation H.263 (01/2005) P.2.1
// WDA.
type WarpingDisplacementAccuracy uint8

const (
	WarpingHalfPixel WarpingDisplacementAccuracy = iota
	WarpingSixteenthPixel
)

// BPictureQuantizer is ITU-T Recommendation H.263 (01/2005) 5.1.23 DBQUANT,
// expressed as the quantizer multiplier n/4.
type BPictureQuantizer uint8

const (
	BQuantFiveFourths BPictureQuantizer = iota
	BQuantSixFourths
	BQuantSevenFourths
	BQuantEightFourths
)

// GroupOfBlocks is ITU-T Recommendation H.263 (01/2005) 5.2.x GN, GSBI,
// GFID, GQUANT. A picture is composed of one or more groups of blocks; the
// first is implied and not transmitted. Sorenson bitstreams never use this
// structure.
type GroupOfBlocks struct {
	// GroupNumber is never 0; limited to 1-17 for CIF formats or 1-24 for
	// custom formats.
	GroupNumber uint8

	// MultiplexBitstream is GSBI, 0-3, or nil if multipoint is disabled.
	MultiplexBitstream *uint8

	FrameID   uint8
	Quantizer uint8
}

// Macroblock is ITU-T Recommendation H.263 (01/2005) 5.3, the per-block
// header decoded at the start of each macroblock.
type Macroblock struct {
	kind macroblockKind

	// The remaining fields are only meaningful when kind == MacroblockCoded.
	Type                MacroblockType
	CodedBlockPattern   CodedBlockPattern
	CodedBlockPatternB  *CodedBlockPattern
	DQuantizer          *int8
	MotionVector        *MotionVector
	AddlMotionVectors   *[3]MotionVector
	MotionVectorsB      *[4]MotionVector
}

type macroblockKind uint8

const (
	// MacroblockUncoded replaces this macroblock's data with the
	// corresponding reference picture data. Only valid outside I-pictures.
	MacroblockUncoded macroblockKind = iota
	// MacroblockStuffing marks non-coding bits inserted to avoid a run of
	// 16 consecutive zero bits.
	MacroblockStuffing
	// MacroblockCoded carries real picture data.
	MacroblockCoded
)

func (m Macroblock) Kind() macroblockKind { return m.kind }

// MacroblockType classifies a coded macroblock per ITU-T Recommendation
// H.263 (01/2005) 5.3.2 MCBPC (the block-type half).
type MacroblockType uint8

const (
	MBTypeInter MacroblockType = iota
	MBTypeInterQ
	MBTypeInter4V
	MBTypeIntra
	MBTypeIntraQ
	MBTypeInter4Vq
)

func (t MacroblockType) IsInter() bool {
	return t == MBTypeInter || t == MBTypeInterQ || t == MBTypeInter4V || t == MBTypeInter4Vq
}

func (t MacroblockType) IsIntra() bool {
	return t == MBTypeIntra || t == MBTypeIntraQ
}

func (t MacroblockType) HasFourVec() bool {
	return t == MBTypeInter4V || t == MBTypeInter4Vq
}

func (t MacroblockType) HasQuantizer() bool {
	return t == MBTypeInterQ || t == MBTypeIntraQ || t == MBTypeInter4Vq
}

// CodedBlockPattern is ITU-T Recommendation H.263 (01/2005) 5.3.2 MCBPC,
// 5.3.5 CBPY: which of a macroblock's six blocks carry non-DC frequency
// components.
type CodedBlockPattern struct {
	CodesLuma       [4]bool
	CodesChromaB    bool
	CodesChromaR    bool
}

// HalfPel is a signed motion-vector component measured in half-pixel units.
type HalfPel int16

// Motion vector range limits, ITU-T Recommendation H.263 (01/2005) Annex D.
const (
	StandardRange            HalfPel = 32
	ExtendedRange             HalfPel = 64
	ExtendedRangeQuadCIF      HalfPel = 128
	ExtendedRangeSixteenCIF   HalfPel = 256
	ExtendedRangeBeyondCIF    HalfPel = 512
)

// HalfPelFromFloat converts a fractional pixel count (in 0.5 steps, as coded
// by MVD_TABLE) into a HalfPel.
func HalfPelFromFloat(f float64) HalfPel {
	return HalfPel(int16(floor(f * 2.0)))
}

func floor(f float64) float64 {
	i := float64(int64(f))
	if f < 0 && i != f {
		return i - 1
	}
	return i
}

// IntoLerpParameters separates a half-pel offset into the integer pixel
// offset to sample from, and whether a second sample (to the right/below)
// must be blended in.
func (h HalfPel) IntoLerpParameters() (offset int16, needsSecond bool) {
	v := int16(h)
	switch {
	case v%2 == 0:
		return v / 2, false
	case h < 0:
		return v/2 - 1, true
	default:
		return v / 2, true
	}
}

// Invert flips h around the restricted MVD component range: it maps a value
// from H.263 (01/2005) table 14's Vector column to the equivalent entry in
// its Differences column.
func (h HalfPel) Invert() HalfPel {
	switch {
	case h > 0:
		return h - 64
	case h < 0:
		return h + 64
	default:
		return h
	}
}

// IsMVWithinRange reports whether h lies in [-r, r).
func (h HalfPel) IsMVWithinRange(r HalfPel) bool {
	return -r <= h && h < r
}

// IsPredictorWithinRange reports whether h lies in (-r, r].
func (h HalfPel) IsPredictorWithinRange(r HalfPel) bool {
	return -r < h && h <= r
}

// AverageSumOfMVs treats h as the sum of four motion vector components,
// divides by eight, and rounds the result to a half-pel position (ITU-T
// Recommendation H.263 (01/2005) 6.1.2): a sixteenths remainder of 0-2
// rounds down, 14-15 rounds up a whole pixel, and 3-13 gives the half.
func (h HalfPel) AverageSumOfMVs() HalfPel {
	whole := (h >> 4) << 1
	frac := h & 0x0F
	switch {
	case frac <= 2:
		return whole
	case frac >= 14:
		return whole + 2
	default:
		return whole + 1
	}
}

// MedianOf returns the median of h, mhs and rhs.
func (h HalfPel) MedianOf(mhs, rhs HalfPel) HalfPel {
	if h > mhs {
		if rhs > mhs {
			if rhs > h {
				return h
			}
			return rhs
		}
		return mhs
	}
	if mhs > rhs {
		if rhs > h {
			return rhs
		}
		return h
	}
	return mhs
}

// MotionVector is a pair of HalfPel components.
type MotionVector struct {
	X, Y HalfPel
}

func (mv MotionVector) IntoLerpParameters() (x, y struct {
	Offset      int16
	NeedsSecond bool
}) {
	xo, xn := mv.X.IntoLerpParameters()
	yo, yn := mv.Y.IntoLerpParameters()
	x.Offset, x.NeedsSecond = xo, xn
	y.Offset, y.NeedsSecond = yo, yn
	return x, y
}

func (mv MotionVector) AverageSumOfMVs() MotionVector {
	return MotionVector{mv.X.AverageSumOfMVs(), mv.Y.AverageSumOfMVs()}
}

func (mv MotionVector) MedianOf(mhs, rhs MotionVector) MotionVector {
	return MotionVector{mv.X.MedianOf(mhs.X, rhs.X), mv.Y.MedianOf(mhs.Y, rhs.Y)}
}

func (mv MotionVector) Add(rhs MotionVector) MotionVector {
	return MotionVector{mv.X + rhs.X, mv.Y + rhs.Y}
}

func (mv MotionVector) DivScalar(rhs int16) MotionVector {
	return MotionVector{HalfPel(int16(mv.X) / rhs), HalfPel(int16(mv.Y) / rhs)}
}

// Block is ITU-T Recommendation H.263 (01/2005) 5.4: the basic unit of
// picture coding, a DC coefficient plus a run-length-encoded AC tail.
type Block struct {
	// IntraDC is present only for intra-coded blocks.
	IntraDC *IntraDC
	TCoef   []TCoefficient
}

// IntraDC is ITU-T Recommendation H.263 (01/2005) 5.4.1 INTRADC: the coded
// form of an intra block's DC coefficient (Table 15/H.263).
type IntraDC uint8

// IntraDCFromU8 converts a fixed-length-coded byte into an IntraDC. It
// rejects the two FLC values Table 15/H.263 reserves (0 and 128).
func IntraDCFromU8(v uint8) (IntraDC, bool) {
	if v == 0 || v == 128 {
		return 0, false
	}
	return IntraDC(v), true
}

// IntraDCFromLevel converts a reconstruction level into an IntraDC. It
// rejects levels that aren't multiples of 8 in [8, 2032].
func IntraDCFromLevel(v uint16) (IntraDC, bool) {
	if v&0x07 != 0 || v > 2032 || v < 8 {
		return 0, false
	}
	if v == 1024 {
		return IntraDC(0xFF), true
	}
	return IntraDC(v >> 3), true
}

// IntoLevel recovers the DC reconstruction level.
func (d IntraDC) IntoLevel() int16 {
	if d == 0xFF {
		return 1024
	}
	return int16(d) << 3
}

// TCoefficient is ITU-T Recommendation H.263 (01/2005) 5.4.2 TCOEF: one
// run-length-encoded, quantized transform coefficient.
type TCoefficient struct {
	// IsShort reports whether this coefficient was (or should be) encoded
	// with the short VLC table rather than the escape/FLC form.
	IsShort bool
	// Run is the count of zero coefficients preceding this one.
	Run uint8
	// Level is the non-zero value terminating the run. H.263-compliant
	// bitstreams keep this within 8 bits; Sorenson Spark v1 bitstreams use
	// 7 or 11 bits.
	Level int16
}
