/*
DESCRIPTION
  picture_test.go provides testing for the PLUSPTYPE follower field decoders
  in picture.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import (
	"bytes"
	"testing"

	"github.com/ausocean/h263/codec/h263/h263dec/bits"
)

func readerFromBits(bs []bool) *bits.BitReader {
	w := &bitWriter{}
	for _, b := range bs {
		w.writeBit(b)
	}
	return bits.NewBitReader(bytes.NewReader(w.bytes()))
}

func TestDecodeCPMAndPSBI(t *testing.T) {
	t.Run("CPM=0", func(t *testing.T) {
		got, err := decodeCPMAndPSBI(readerFromBits([]bool{false}))
		if err != nil {
			t.Fatalf("decodeCPMAndPSBI: %v", err)
		}
		if got != nil {
			t.Errorf("decodeCPMAndPSBI(CPM=0) = %v; want nil", got)
		}
	})
	t.Run("CPM=1", func(t *testing.T) {
		got, err := decodeCPMAndPSBI(readerFromBits([]bool{true, true, false}))
		if err != nil {
			t.Fatalf("decodeCPMAndPSBI: %v", err)
		}
		if got == nil || *got != 2 {
			t.Errorf("decodeCPMAndPSBI(CPM=1, PSBI=10) = %v; want 2", got)
		}
	})
}

func TestDecodeCPCFC(t *testing.T) {
	got, err := decodeCPCFC(readerFromBits([]bool{
		true, false, false, true, false, true, false, true, // 0x95
	}))
	if err != nil {
		t.Fatalf("decodeCPCFC: %v", err)
	}
	if !got.Times1001 {
		t.Error("Times1001 = false; want true (top bit set)")
	}
	if got.Divisor != 0x15 {
		t.Errorf("Divisor = %#x; want 0x15", got.Divisor)
	}
}

func TestDecodeUUI(t *testing.T) {
	tests := []struct {
		name string
		bs   []bool
		want MotionVectorRange
	}{
		{"limited", []bool{true}, MotionVectorRangeExtended},
		{"unlimited", []bool{false, true}, MotionVectorRangeUnlimited},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeUUI(readerFromBits(test.bs))
			if err != nil {
				t.Fatalf("decodeUUI: %v", err)
			}
			if got != test.want {
				t.Errorf("decodeUUI(%v) = %v; want %v", test.bs, got, test.want)
			}
		})
	}

	t.Run("reserved", func(t *testing.T) {
		if _, err := decodeUUI(readerFromBits([]bool{false, false})); err == nil {
			t.Fatal("decodeUUI(reserved) = nil error; want an error")
		}
	})
}

func TestDecodeSSS(t *testing.T) {
	tests := []struct {
		bs   []bool
		want SliceSubmode
	}{
		{[]bool{false, false}, 0},
		{[]bool{false, true}, RectangularSlices},
		{[]bool{true, false}, ArbitraryOrder},
		{[]bool{true, true}, RectangularSlices | ArbitraryOrder},
	}
	for _, test := range tests {
		got, err := decodeSSS(readerFromBits(test.bs))
		if err != nil {
			t.Fatalf("decodeSSS: %v", err)
		}
		if got != test.want {
			t.Errorf("decodeSSS(%v) = %v; want %v", test.bs, got, test.want)
		}
	}
}

func TestDecodeELNUMRLNUM(t *testing.T) {
	t.Run("no reference layer", func(t *testing.T) {
		got, err := decodeELNUMRLNUM(readerFromBits([]bool{true, false, true, false}), 0)
		if err != nil {
			t.Fatalf("decodeELNUMRLNUM: %v", err)
		}
		if got.Enhancement != 0xA || got.Reference != nil {
			t.Errorf("got %+v; want Enhancement=0xA, Reference=nil", got)
		}
	})
	t.Run("with reference layer", func(t *testing.T) {
		bs := []bool{true, false, true, false, false, true, false, true}
		got, err := decodeELNUMRLNUM(readerFromBits(bs), followerReferenceLayerNumber)
		if err != nil {
			t.Fatalf("decodeELNUMRLNUM: %v", err)
		}
		if got.Enhancement != 0xA {
			t.Errorf("Enhancement = %#x; want 0xA", got.Enhancement)
		}
		if got.Reference == nil || *got.Reference != 0x5 {
			t.Errorf("Reference = %v; want 0x5", got.Reference)
		}
	})
}

func TestDecodeRPSMF(t *testing.T) {
	got, err := decodeRPSMF(readerFromBits([]bool{false, true, false}))
	if err != nil {
		t.Fatalf("decodeRPSMF: %v", err)
	}
	want := RPSReserved | RPSRequestNegativeAcknowledgement
	if got != want {
		t.Errorf("decodeRPSMF(010) = %v; want %v", got, want)
	}
}

func TestDecodeTRPI(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		got, err := decodeTRPI(readerFromBits([]bool{false}))
		if err != nil {
			t.Fatalf("decodeTRPI: %v", err)
		}
		if got != nil {
			t.Errorf("decodeTRPI(TRPI=0) = %v; want nil", got)
		}
	})
	t.Run("present", func(t *testing.T) {
		bs := []bool{true, true, false, false, false, false, false, false, false, false, true}
		got, err := decodeTRPI(readerFromBits(bs))
		if err != nil {
			t.Fatalf("decodeTRPI: %v", err)
		}
		if got == nil || *got != 0x201 {
			t.Errorf("decodeTRPI(TRPI=1, TRP=10bits) = %v; want 0x201", got)
		}
	})
}

func TestDecodeBCM(t *testing.T) {
	t.Run("no backchannel", func(t *testing.T) {
		got, err := decodeBCM(readerFromBits([]bool{false, true}))
		if err != nil {
			t.Fatalf("decodeBCM: %v", err)
		}
		if got != nil {
			t.Errorf("decodeBCM(BCI=0) = %v; want nil", got)
		}
	})
	t.Run("unimplemented backchannel", func(t *testing.T) {
		_, err := decodeBCM(readerFromBits([]bool{true}))
		de, ok := err.(*DecodeError)
		if !ok || de.Kind != KindUnimplemented {
			t.Fatalf("decodeBCM(BCI=1) error = %v; want KindUnimplemented", err)
		}
	})
	t.Run("malformed", func(t *testing.T) {
		if _, err := decodeBCM(readerFromBits([]bool{false, false})); err == nil {
			t.Fatal("decodeBCM(BCI=0, not-BCI=0) = nil error; want an error")
		}
	})
}

func TestDecodeRPRPAlwaysUnimplemented(t *testing.T) {
	_, err := decodeRPRP(readerFromBits(nil))
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindUnimplemented {
		t.Fatalf("decodeRPRP() error = %v; want KindUnimplemented", err)
	}
}

func TestDecodeTRB(t *testing.T) {
	t.Run("normal clock", func(t *testing.T) {
		got, err := decodeTRB(readerFromBits([]bool{true, false, true}), false)
		if err != nil {
			t.Fatalf("decodeTRB: %v", err)
		}
		if got != 5 {
			t.Errorf("decodeTRB(101, normal clock) = %d; want 5", got)
		}
	})
	t.Run("custom clock", func(t *testing.T) {
		got, err := decodeTRB(readerFromBits([]bool{false, false, true, false, true}), true)
		if err != nil {
			t.Fatalf("decodeTRB: %v", err)
		}
		if got != 5 {
			t.Errorf("decodeTRB(00101, custom clock) = %d; want 5", got)
		}
	})
}

func TestDecodeDBQUANT(t *testing.T) {
	for code := uint64(0); code < 4; code++ {
		bs := []bool{code&2 != 0, code&1 != 0}
		got, err := decodeDBQUANT(readerFromBits(bs))
		if err != nil {
			t.Fatalf("decodeDBQUANT: %v", err)
		}
		if got != BPictureQuantizer(code) {
			t.Errorf("decodeDBQUANT(%v) = %v; want %v", bs, got, code)
		}
	}
}

func TestDecodePEI(t *testing.T) {
	t.Run("no extension", func(t *testing.T) {
		got, err := decodePEI(readerFromBits([]bool{false}))
		if err != nil {
			t.Fatalf("decodePEI: %v", err)
		}
		if got != nil {
			t.Errorf("decodePEI(PEI=0) = %v; want nil", got)
		}
	})
	t.Run("two extension bytes", func(t *testing.T) {
		bs := []bool{true}
		bs = append(bs, byteBits(0xAB)...)
		bs = append(bs, true)
		bs = append(bs, byteBits(0xCD)...)
		bs = append(bs, false)

		got, err := decodePEI(readerFromBits(bs))
		if err != nil {
			t.Fatalf("decodePEI: %v", err)
		}
		want := []byte{0xAB, 0xCD}
		if !bytes.Equal(got, want) {
			t.Errorf("decodePEI = %v; want %v", got, want)
		}
	})
}

func byteBits(v uint8) []bool {
	out := make([]bool, 8)
	for i := range out {
		out[i] = v&(1<<(7-i)) != 0
	}
	return out
}

func TestSameSourceFormat(t *testing.T) {
	cif := NewFixedSourceFormat(SourceFormatFullCIF)
	qcif := NewFixedSourceFormat(SourceFormatQuarterCIF)
	cif2 := NewFixedSourceFormat(SourceFormatFullCIF)

	if !sameSourceFormat(&cif, &cif2) {
		t.Error("sameSourceFormat(CIF, CIF) = false; want true")
	}
	if sameSourceFormat(&cif, &qcif) {
		t.Error("sameSourceFormat(CIF, QCIF) = true; want false")
	}
	if !sameSourceFormat(nil, nil) {
		t.Error("sameSourceFormat(nil, nil) = false; want true")
	}
	if sameSourceFormat(&cif, nil) {
		t.Error("sameSourceFormat(CIF, nil) = true; want false")
	}
}
