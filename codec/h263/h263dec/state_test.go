/*
DESCRIPTION
  state_test.go provides testing for the decoder state machine in
  state.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import (
	"bytes"
	"errors"
	"testing"
)

func TestClampQuantizer(t *testing.T) {
	tests := []struct {
		in   int16
		want uint8
	}{
		{-10, 1},
		{0, 1},
		{1, 1},
		{16, 16},
		{31, 31},
		{32, 31},
		{200, 31},
	}
	for _, test := range tests {
		if got := clampQuantizer(test.in); got != test.want {
			t.Errorf("clampQuantizer(%d) = %d; want %d", test.in, got, test.want)
		}
	}
}

func TestBlockPlane(t *testing.T) {
	frame := NewFrame(32, 16)
	mbPos := [2]int{16, 0}

	tests := []struct {
		index     int
		wantPlane *[]byte
		wantPos   [2]int
	}{
		{0, &frame.Luma, [2]int{16, 0}},
		{1, &frame.Luma, [2]int{24, 0}},
		{2, &frame.Luma, [2]int{16, 8}},
		{3, &frame.Luma, [2]int{24, 8}},
		{4, &frame.ChromaB, [2]int{8, 0}},
		{5, &frame.ChromaR, [2]int{8, 0}},
	}
	for _, test := range tests {
		plane, _, pos := blockPlane(frame, mbPos, test.index)
		if &plane[0] != &(*test.wantPlane)[0] {
			t.Errorf("blockPlane(index=%d) plane mismatch", test.index)
		}
		if pos != test.wantPos {
			t.Errorf("blockPlane(index=%d) pos = %v; want %v", test.index, pos, test.wantPos)
		}
	}
}

func TestNextRunningOptions(t *testing.T) {
	d := &Decoder{runningOptions: AdvancedPrediction | UnrestrictedMotionVectors}

	// A plain PTYPE picture (no PLUSPTYPE) retains every OPPTYPE/MPPTYPE bit
	// already running, no matter what Options it was left holding by the
	// parser.
	header := &Picture{Options: 0}
	got := d.nextRunningOptions(header)
	want := AdvancedPrediction | UnrestrictedMotionVectors
	if got != want {
		t.Errorf("nextRunningOptions(no PLUSPTYPE) = %#x; want %#x", got, want)
	}

	// A PLUSPTYPE picture without OPPTYPE keeps the running OPPTYPE bits but
	// takes its MPPTYPE-family bits from the header.
	header = &Picture{HasPlusPTYPE: true, Options: ReferencePictureResamplingOption}
	got = d.nextRunningOptions(header)
	want = AdvancedPrediction | UnrestrictedMotionVectors | ReferencePictureResamplingOption
	if got != want {
		t.Errorf("nextRunningOptions(PLUSPTYPE, no OPPTYPE) = %#x; want %#x", got, want)
	}

	// A PLUSPTYPE+OPPTYPE picture is fully explicit: running is ignored
	// entirely.
	header = &Picture{HasPlusPTYPE: true, HasOPPTYPE: true, Options: DeblockingFilter}
	got = d.nextRunningOptions(header)
	want = DeblockingFilter
	if got != want {
		t.Errorf("nextRunningOptions(PLUSPTYPE+OPPTYPE) = %#x; want %#x", got, want)
	}
}

func TestResolveFormat(t *testing.T) {
	cif := NewFixedSourceFormat(SourceFormatFullCIF)
	qcif := NewFixedSourceFormat(SourceFormatQuarterCIF)

	t.Run("explicit format wins", func(t *testing.T) {
		d := &Decoder{referenceStates: map[uint16]*DecodedPicture{}}
		header := &Picture{Type: NewPictureType(PictureTypeP), Format: &cif}
		got, err := d.resolveFormat(header)
		if err != nil {
			t.Fatalf("resolveFormat: %v", err)
		}
		if got.Kind() != SourceFormatFullCIF {
			t.Errorf("resolveFormat = %v; want SourceFormatFullCIF", got.Kind())
		}
	})

	t.Run("I-picture without format is an error", func(t *testing.T) {
		d := &Decoder{referenceStates: map[uint16]*DecodedPicture{}}
		header := &Picture{Type: NewPictureType(PictureTypeI)}
		if _, err := d.resolveFormat(header); err == nil {
			t.Fatal("resolveFormat(I, no format) = nil error; want errPictureFormatMissing")
		}
	})

	t.Run("P-picture carries forward from last decoded picture", func(t *testing.T) {
		tr := uint16(3)
		d := &Decoder{
			lastPicture: &tr,
			referenceStates: map[uint16]*DecodedPicture{
				3: {Format: qcif},
			},
		}
		header := &Picture{Type: NewPictureType(PictureTypeP)}
		got, err := d.resolveFormat(header)
		if err != nil {
			t.Fatalf("resolveFormat: %v", err)
		}
		if got.Kind() != SourceFormatQuarterCIF {
			t.Errorf("resolveFormat = %v; want SourceFormatQuarterCIF", got.Kind())
		}
	})

	t.Run("P-picture with no prior picture is an error", func(t *testing.T) {
		d := &Decoder{referenceStates: map[uint16]*DecodedPicture{}}
		header := &Picture{Type: NewPictureType(PictureTypeP)}
		if _, err := d.resolveFormat(header); err == nil {
			t.Fatal("resolveFormat(P, no prior) = nil error; want errPictureFormatMissing")
		}
	})
}

// TestReferenceDecodedPicture confirms the corrected reference-picture
// lookup (by referencePicture, not lastPicture) documented in DESIGN.md's
// Open Question decisions.
func TestReferenceDecodedPicture(t *testing.T) {
	last := uint16(5)
	reference := uint16(2)
	lastFrame := &DecodedPicture{Frame: &Frame{Width: 1}}
	referenceFrame := &DecodedPicture{Frame: &Frame{Width: 2}}

	d := &Decoder{
		lastPicture:      &last,
		referencePicture: &reference,
		referenceStates: map[uint16]*DecodedPicture{
			last:      lastFrame,
			reference: referenceFrame,
		},
	}

	got := d.referenceDecodedPicture()
	if got != referenceFrame {
		t.Errorf("referenceDecodedPicture() = %v; want the entry keyed by referencePicture", got)
	}

	gotLast := d.lastDecodedPicture()
	if gotLast != lastFrame {
		t.Errorf("lastDecodedPicture() = %v; want the entry keyed by lastPicture", gotLast)
	}
}

func TestCleanupBuffers(t *testing.T) {
	last := uint16(5)
	reference := uint16(2)
	d := &Decoder{
		lastPicture:      &last,
		referencePicture: &reference,
		referenceStates: map[uint16]*DecodedPicture{
			last:      {},
			reference: {},
			9:         {}, // stale entry that must be dropped
		},
	}

	d.cleanupBuffers()

	if len(d.referenceStates) != 2 {
		t.Fatalf("cleanupBuffers() left %d entries; want 2", len(d.referenceStates))
	}
	if _, ok := d.referenceStates[9]; ok {
		t.Error("cleanupBuffers() kept the stale entry")
	}
	if _, ok := d.referenceStates[last]; !ok {
		t.Error("cleanupBuffers() dropped the lastPicture entry")
	}
	if _, ok := d.referenceStates[reference]; !ok {
		t.Error("cleanupBuffers() dropped the referencePicture entry")
	}
}

// TestDecodeNextPictureMiddleOfBitstream exercises the case where the
// reader sits on a GOB header (nonzero GOB number immediately following a
// start code) rather than a picture header: 16 zero bits, a 1 bit
// completing the start code, then a nonzero 5-bit GOB number (5). decodePicture
// reports this with (nil, nil); DecodeNextPicture must translate that into
// errMiddleOfBitstream rather than returning a nil picture with a nil error.
func TestDecodeNextPictureMiddleOfBitstream(t *testing.T) {
	data := []byte{0x00, 0x00, 0x94} // start code + GOB number 5
	d := NewDecoder(bytes.NewReader(data))

	_, err := d.DecodeNextPicture()
	if err == nil {
		t.Fatal("DecodeNextPicture() over a GOB header = nil error; want errMiddleOfBitstream")
	}
	if !errors.Is(err, errMiddleOfBitstream) {
		t.Errorf("DecodeNextPicture() error = %v; want errMiddleOfBitstream", err)
	}
}

func TestDecodeNextPictureNoStartCode(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 16)
	d := NewDecoder(bytes.NewReader(data))

	if _, err := d.DecodeNextPicture(); err == nil {
		t.Fatal("DecodeNextPicture() over start-code-free data = nil error; want an error")
	}
}
