/*
DESCRIPTION
  state.go implements the decoder state machine: per-picture orchestration
  of the header, macroblock, and block parsers into a fully reconstructed
  DecodedPicture, plus the reference-picture bookkeeping (option
  carry-forward, last/reference tracking, cleanup) ITU-T Recommendation
  H.263 (01/2005) and this decoder's Sorenson Spark extension require
  across a sequence of pictures.

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

import (
	"io"

	"go.uber.org/zap"

	"github.com/ausocean/h263/codec/h263/h263dec/bits"
)

// DecodedPicture is one fully reconstructed picture: the header decoded
// from the bitstream, the SourceFormat resolved for it (explicit or
// carried forward), and the sample planes Gather/ApplyIDCT wrote into.
type DecodedPicture struct {
	Header *Picture
	Format SourceFormat
	Frame  *Frame
}

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithLogger attaches a structured logger used for the two system
// boundaries this decoder logs at: macroblock-error recovery (an expected,
// recoverable condition) and dropped PB B-plane data. The default is a
// no-op logger, keeping the package silent unless a caller opts in.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithDecoderOptions sets the DecoderOptions that influence parsing but
// cannot be recovered from the bitstream alone (Sorenson Spark dialect,
// scalability mode).
func WithDecoderOptions(opts DecoderOption) Option {
	return func(d *Decoder) { d.decoderOptions = opts }
}

// Decoder is a synchronous, pull-driven H.263/Sorenson Spark decoder. Each
// call to DecodeNextPicture consumes exactly one picture's worth of bits
// from the underlying source and returns its reconstructed sample planes;
// there is no background work and no cancellation surface (spec.md §5).
type Decoder struct {
	br             *bits.BitReader
	decoderOptions DecoderOption
	log            *zap.SugaredLogger

	// lastPicture is the temporal reference of the most recently decoded
	// picture; referencePicture is the most recent non-disposable one.
	// Both index into referenceStates.
	lastPicture      *uint16
	referencePicture *uint16

	// runningOptions is the option set actually in force, folding in
	// whatever the most recent picture didn't retransmit.
	runningOptions PictureOption

	referenceStates map[uint16]*DecodedPicture
}

// NewDecoder constructs a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{
		br:              bits.NewBitReader(r),
		log:             zap.NewNop().Sugar(),
		referenceStates: make(map[uint16]*DecodedPicture),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// lastDecodedPicture resolves lastPicture through referenceStates.
func (d *Decoder) lastDecodedPicture() *DecodedPicture {
	if d.lastPicture == nil {
		return nil
	}
	return d.referenceStates[*d.lastPicture]
}

// referenceDecodedPicture resolves referencePicture through
// referenceStates. original_source/h263/src/decoder/state.rs's
// get_reference_picture looks this entry up by last_picture instead of
// reference_picture; since spec.md §9 does not list that among its
// called-out suspected source defects, this implements the
// semantically-intended lookup (see DESIGN.md).
func (d *Decoder) referenceDecodedPicture() *DecodedPicture {
	if d.referencePicture == nil {
		return nil
	}
	return d.referenceStates[*d.referencePicture]
}

// cleanupBuffers discards every reference-state entry except the ones
// named by lastPicture and referencePicture, keeping the map at size <= 2.
func (d *Decoder) cleanupBuffers() {
	kept := make(map[uint16]*DecodedPicture, 2)
	if d.lastPicture != nil {
		if p, ok := d.referenceStates[*d.lastPicture]; ok {
			kept[*d.lastPicture] = p
		}
	}
	if d.referencePicture != nil {
		if p, ok := d.referenceStates[*d.referencePicture]; ok {
			kept[*d.referencePicture] = p
		}
	}
	d.referenceStates = kept
}

// nextRunningOptions computes the option set in force for header, folding
// in whichever of OPPTYPEOptions/MPPTYPEOptions header didn't retransmit
// from d.runningOptions (ITU-T Recommendation H.263 (01/2005) 5.1.4's
// carry-forward rule).
func (d *Decoder) nextRunningOptions(header *Picture) PictureOption {
	switch {
	case header.HasPlusPTYPE && header.HasOPPTYPE:
		return header.Options
	case header.HasPlusPTYPE:
		return (header.Options &^ OPPTYPEOptions) | (d.runningOptions & OPPTYPEOptions)
	default:
		return (header.Options &^ OPPTYPEOptions &^ MPPTYPEOptions) |
			(d.runningOptions & (OPPTYPEOptions | MPPTYPEOptions))
	}
}

// resolveFormat determines header's effective SourceFormat: explicit on
// header, else carried forward from the last decoded picture. I-pictures
// must specify their own format (ITU-T Recommendation H.263 (01/2005)
// 5.1.5).
func (d *Decoder) resolveFormat(header *Picture) (SourceFormat, error) {
	if header.Format != nil {
		return *header.Format, nil
	}
	if header.Type.Kind() == PictureTypeI {
		return SourceFormat{}, newDecodeError(KindBitstream, "picture", errPictureFormatMissing)
	}
	if lp := d.lastDecodedPicture(); lp != nil {
		return lp.Format, nil
	}
	return SourceFormat{}, newDecodeError(KindBitstream, "picture", errPictureFormatMissing)
}

// clampQuantizer keeps a running quantizer within H.263's legal [1, 31].
func clampQuantizer(v int16) uint8 {
	switch {
	case v < 1:
		return 1
	case v > 31:
		return 31
	default:
		return uint8(v)
	}
}

// pendingResidual is one block's dequantized coefficients together with
// where ApplyIDCT must write its reconstructed samples, queued up while
// the macroblock loop runs so that Gather can fill every INTER
// macroblock's prediction before any residual is added on top (mirroring
// the two-pass gather-then-idct order of
// original_source/h263/src/decoder/state.rs).
type pendingResidual struct {
	plane         []byte
	samplesPerRow int
	pos           [2]int
	dct           DecodedDCTBlock
}

// blockPlane resolves the destination plane, its row stride, and this
// macroblock's top-left position for one of the six per-macroblock
// blocks: luma 0-3 at the macroblock's four 8x8 quadrants, chroma B/R at
// the co-sited half-resolution position.
func blockPlane(frame *Frame, mbPos [2]int, index int) (plane []byte, samplesPerRow int, pos [2]int) {
	switch index {
	case 0:
		return frame.Luma, frame.LumaSamplesPerRow(), mbPos
	case 1:
		return frame.Luma, frame.LumaSamplesPerRow(), [2]int{mbPos[0] + 8, mbPos[1]}
	case 2:
		return frame.Luma, frame.LumaSamplesPerRow(), [2]int{mbPos[0], mbPos[1] + 8}
	case 3:
		return frame.Luma, frame.LumaSamplesPerRow(), [2]int{mbPos[0] + 8, mbPos[1] + 8}
	case 4:
		return frame.ChromaB, frame.ChromaSamplesPerRow(), [2]int{mbPos[0] / 2, mbPos[1] / 2}
	default:
		return frame.ChromaR, frame.ChromaSamplesPerRow(), [2]int{mbPos[0] / 2, mbPos[1] / 2}
	}
}

// decodeMacroblockBlocks decodes a coded macroblock's six blocks (four
// luma, two chroma) in the fixed order InverseRLE/ApplyIDCT expect.
func decodeMacroblockBlocks(br *bits.BitReader, runningOptions PictureOption, mbType MacroblockType, cbp CodedBlockPattern) ([6]Block, error) {
	var blocks [6]Block
	for i := 0; i < 4; i++ {
		b, err := decodeBlock(br, runningOptions, mbType, cbp.CodesLuma[i])
		if err != nil {
			return blocks, err
		}
		blocks[i] = b
	}
	cb, err := decodeBlock(br, runningOptions, mbType, cbp.CodesChromaB)
	if err != nil {
		return blocks, err
	}
	blocks[4] = cb
	cr, err := decodeBlock(br, runningOptions, mbType, cbp.CodesChromaR)
	if err != nil {
		return blocks, err
	}
	blocks[5] = cr
	return blocks, nil
}

// DecodeNextPicture decodes the next picture from the underlying source.
// The reader must be positioned at a picture start code, with at most the
// zero stuffing bits that byte-align it in front; other leading bytes are
// not skipped.
//
// On error no partial state is committed: the internal reader position
// and reference map are left exactly as they were before the call, so the
// caller may supply more bytes to the same source and retry (spec.md §7:
// "failed-idempotent").
func (d *Decoder) DecodeNextPicture() (*DecodedPicture, error) {
	return bits.WithTransaction(d.br, func(br *bits.BitReader) (*DecodedPicture, error) {
		var lastHeader *Picture
		if lp := d.lastDecodedPicture(); lp != nil {
			lastHeader = lp.Header
		}

		header, err := decodePicture(br, d.decoderOptions, lastHeader)
		if err != nil {
			return nil, err
		}
		if header == nil {
			return nil, newDecodeError(KindBitstream, "picture", errMiddleOfBitstream)
		}

		runningOptions := d.nextRunningOptions(header)

		format, err := d.resolveFormat(header)
		if err != nil {
			return nil, err
		}

		width, height, ok := format.WidthHeight()
		if !ok {
			return nil, newDecodeError(KindBitstream, "picture", errPictureFormatInvalid)
		}

		mbPerLine := (int(width) + 15) / 16
		mbLines := (int(height) + 15) / 16
		mbCount := mbPerLine * mbLines

		frame := NewFrame(int(width), int(height))
		decoded := &DecodedPicture{Header: header, Format: format, Frame: frame}

		reference := d.referenceDecodedPicture()
		var referenceFrame *Frame
		if reference != nil {
			referenceFrame = reference.Frame
			if runningOptions.Has(ReferencePictureResamplingOption) &&
				(referenceFrame.Width != frame.Width || referenceFrame.Height != frame.Height) {
				return nil, newDecodeError(KindUnimplemented, "picture", errUnimplementedDecoding)
			}
		}

		mvCtx := motionVectorContext{
			HasPlusPTYPE:      header.HasPlusPTYPE,
			MotionVectorRange: header.MotionVectorRange,
			Width:             width,
			Height:            height,
		}

		inForceQuantizer := header.Quantizer
		predictorVectors := make([][4]MotionVector, 0, mbCount)
		macroblockTypes := make([]MacroblockType, 0, mbCount)
		var pending []pendingResidual
		macroblocksAfterGOB := 0
		loggedPBWarning := false

	macroblockLoop:
		for len(macroblockTypes) < mbCount {
			mb, mbErr := decodeMacroblock(br, header, runningOptions)

			var mbType MacroblockType
			var mvs [4]MotionVector

			switch {
			case mbErr == nil && mb.Kind() == MacroblockStuffing:
				continue

			case mbErr == nil && mb.Kind() == MacroblockUncoded:
				if header.Type.Kind() == PictureTypeI {
					return nil, newDecodeError(KindBitstream, "macroblock", errUncodedIFrameBlocks)
				}
				mbType = MBTypeInter

			case mbErr == nil: // MacroblockCoded
				mbType = mb.Type
				if mb.DQuantizer != nil {
					inForceQuantizer = clampQuantizer(int16(inForceQuantizer) + int16(*mb.DQuantizer))
				}

				if mb.MotionVectorsB != nil && !loggedPBWarning {
					d.log.Warnw("dropping PB B-plane motion vectors; B reconstruction is out of scope",
						"temporal_reference", header.TemporalReference)
					loggedPBWarning = true
				}

				if mbType.IsInter() {
					mv1 := MotionVector{}
					if mb.MotionVector != nil {
						mv1 = *mb.MotionVector
					}
					pred1 := PredictCandidate(predictorVectors, mvs, mbPerLine, 0)
					mvs[0] = MVDecode(mvCtx, runningOptions, pred1, mv1)

					if mb.AddlMotionVectors != nil {
						addl := *mb.AddlMotionVectors
						for i, raw := range addl {
							pred := PredictCandidate(predictorVectors, mvs, mbPerLine, i+1)
							mvs[i+1] = MVDecode(mvCtx, runningOptions, pred, raw)
						}
					} else {
						mvs[1], mvs[2], mvs[3] = mvs[0], mvs[0], mvs[0]
					}
				}

				mbPos := [2]int{(len(macroblockTypes) % mbPerLine) * 16, (len(macroblockTypes) / mbPerLine) * 16}
				blocks, err := decodeMacroblockBlocks(br, runningOptions, mbType, mb.CodedBlockPattern)
				if err != nil {
					return nil, err
				}
				for i, blk := range blocks {
					dct, ok := InverseRLE(blk, inForceQuantizer)
					if !ok {
						dct = DecodedDCTBlock{}
					}
					plane, stride, pos := blockPlane(frame, mbPos, i)
					pending = append(pending, pendingResidual{plane: plane, samplesPerRow: stride, pos: pos, dct: dct})
				}

			case IsMacroblockError(mbErr) && !d.decoderOptions.Has(SorensonSparkBitstream):
				gob, gerr := decodeGOB(br)
				switch {
				case gerr == nil && gob == nil:
					break macroblockLoop
				case gerr == nil:
					inForceQuantizer = gob.Quantizer
					macroblocksAfterGOB = len(macroblockTypes)
					d.log.Warnw("resynchronised to GOB after macroblock error",
						"temporal_reference", header.TemporalReference, "group", gob.GroupNumber,
						"macroblocks_before_resync", macroblocksAfterGOB)
					continue
				case IsEOFError(gerr) || IsGOBError(gerr):
					break macroblockLoop
				default:
					return nil, gerr
				}

			case IsEOFError(mbErr):
				break macroblockLoop

			default:
				return nil, mbErr
			}

			predictorVectors = append(predictorVectors, mvs)
			macroblockTypes = append(macroblockTypes, mbType)
		}

		if err := Gather(macroblockTypes, referenceFrame, predictorVectors, mbPerLine, frame); err != nil {
			return nil, err
		}
		for _, p := range pending {
			ApplyIDCT(p.plane, p.samplesPerRow, p.pos, p.dct)
		}

		if header.Type.Kind() == PictureTypeI {
			// You cannot backwards-predict across I-frames.
			d.referencePicture = nil
		}

		tr := header.TemporalReference
		d.lastPicture = &tr
		if !header.Type.IsDisposable() {
			d.referencePicture = &tr
		}
		d.runningOptions = runningOptions
		d.referenceStates[tr] = decoded
		d.cleanupBuffers()

		br.Commit()

		return decoded, nil
	})
}
