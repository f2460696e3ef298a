/*
DESCRIPTION
  block.go decodes ITU-T Recommendation H.263 (01/2005) 5.4: one coded
  block's INTRADC and TCOEF syntax elements, the bitstream-reading step
  that produces the Block value InverseRLE dequantizes.

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

// decodeBlock reads one block's INTRADC (present only for intra-coded
// macroblocks, unconditionally on coded) and, if coded is set, its TCOEF
// run/level pairs, terminated by the TCOEF table's last-coefficient flag.
// coded is the CBPY/MCBPC bit naming this particular block among the
// macroblock's six; when clear, the block carries no AC data at all (H.263
// (01/2005) 5.3.5: an uncoded block contributes no TCOEF bits to the
// stream, not even an escape/terminator).
//
// runningOptions is the set of options currently in force on the picture
// being decoded (not necessarily identical to the picture's own header,
// since some options carry forward silently); macroblockType is the type
// recovered from the enclosing macroblock's header.
func decodeBlock(br *bits.BitReader, runningOptions PictureOption, macroblockType MacroblockType, coded bool) (Block, error) {
	return bits.WithTransaction(br, func(br *bits.BitReader) (Block, error) {
		var block Block

		if macroblockType.IsIntra() {
			raw, err := br.ReadU8()
			if err != nil {
				return Block{}, newDecodeError(KindEOF, "block", err)
			}
			dc, ok := IntraDCFromU8(raw)
			if !ok {
				return Block{}, newDecodeError(KindBitstream, "block", errInvalidBitstream)
			}
			block.IntraDC = &dc
		}

		if !coded {
			return block, nil
		}

		for {
			result, err := bits.ReadVLC(br, tcoefTable)
			if err != nil {
				return Block{}, newDecodeError(KindEOF, "block", err)
			}

			var last bool
			switch {
			case result.IsEscape():
				lastBit, err := br.ReadBits(1)
				if err != nil {
					return Block{}, newDecodeError(KindEOF, "block", err)
				}
				last = lastBit == 0

				run, err := br.ReadBits(6)
				if err != nil {
					return Block{}, newDecodeError(KindEOF, "block", err)
				}

				level, err := br.ReadU8()
				if err != nil {
					return Block{}, newDecodeError(KindEOF, "block", err)
				}
				if level == 0 {
					return Block{}, newDecodeError(KindBitstream, "block", errInvalidBitstream)
				}
				if level == 0x80 {
					if runningOptions.Has(ModifiedQuantization) {
						return Block{}, newDecodeError(KindUnimplemented, "block", errUnimplementedDecoding)
					}
					return Block{}, newDecodeError(KindBitstream, "block", errInvalidBitstream)
				}

				block.TCoef = append(block.TCoef, TCoefficient{
					IsShort: false,
					Run:     uint8(run),
					Level:   int16(int8(level)),
				})

			case result.IsValid():
				sign, err := br.ReadBits(1)
				if err != nil {
					return Block{}, newDecodeError(KindEOF, "block", err)
				}
				level := int16(result.Level)
				if sign != 0 {
					level = -level
				}
				block.TCoef = append(block.TCoef, TCoefficient{
					IsShort: true,
					Run:     result.Run,
					Level:   level,
				})
				last = result.Last

			default:
				return Block{}, newDecodeError(KindBitstream, "block", errInvalidBitstream)
			}

			if last {
				break
			}
		}

		return block, nil
	})
}
