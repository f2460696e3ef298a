/*
DESCRIPTION
  gob.go recognises ITU-T Recommendation H.263 (01/2005) 5.2 group-of-
  blocks headers: it reads the GBSC start code and the GN number only.
  GSBI, GFID and GQUANT are not read.

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

// decodeGOB reads a group-of-blocks header. It returns (nil, nil) if the
// bitstream instead contains a picture at the current position (GOB ID 0
// or 15 both signal that — 0 is the picture header's own implied first
// GOB, 15 is reserved). Any other GOB ID surfaces KindUnimplemented: the
// rest of the GOB header is not read, and no *GroupOfBlocks is ever
// returned.
func decodeGOB(br *bits.BitReader) (*GroupOfBlocks, error) {
	gob, ok, err := bits.WithTransactionUnion(br, func(br *bits.BitReader) (*GroupOfBlocks, bool, error) {
		skipped, err := br.RecognizeStartCode(false)
		if err != nil {
			return nil, false, newDecodeError(KindBitstream, "gob", err)
		}
		if err := br.SkipBits(17 + skipped); err != nil {
			return nil, false, newDecodeError(KindEOF, "gob", err)
		}
		gobID, err := br.ReadBits(5)
		if err != nil {
			return nil, false, newDecodeError(KindEOF, "gob", err)
		}
		if gobID == 0 || gobID == 15 {
			return nil, false, nil
		}
		return nil, false, newDecodeError(KindUnimplemented, "gob", errUnimplementedDecoding)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return gob, nil
}
