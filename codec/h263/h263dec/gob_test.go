/*
DESCRIPTION
  gob_test.go provides testing for the group-of-blocks header decode in
  gob.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import (
	"bytes"
	"testing"

	"github.com/ausocean/h263/codec/h263/h263dec/bits"
)

// TestDecodeGOBRealGOBIsUnimplemented exercises a start code followed by a
// nonzero, non-reserved GOB number (5) - the same fixture
// TestDecodeNextPictureMiddleOfBitstream in state_test.go uses from the
// Decoder side. decodeGOB must report this as KindUnimplemented rather than
// guessing at a slice reconstruction.
func TestDecodeGOBRealGOBIsUnimplemented(t *testing.T) {
	data := []byte{0x00, 0x00, 0x94} // start code + GOB number 5
	br := bits.NewBitReader(bytes.NewReader(data))

	_, err := decodeGOB(br)
	if err == nil {
		t.Fatal("decodeGOB(real GOB) = nil error; want KindUnimplemented")
	}
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("decodeGOB error type = %T; want *DecodeError", err)
	}
	if de.Kind != KindUnimplemented {
		t.Errorf("decodeGOB error Kind = %v; want KindUnimplemented", de.Kind)
	}
}

// TestDecodeGOBNoStartCode confirms an absent start code bubbles up as an
// error rather than panicking.
func TestDecodeGOBNoStartCode(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 8)
	br := bits.NewBitReader(bytes.NewReader(data))

	if _, err := decodeGOB(br); err == nil {
		t.Fatal("decodeGOB(no start code) = nil error; want an error")
	}
}
