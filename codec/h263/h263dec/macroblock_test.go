/*
DESCRIPTION
  macroblock_test.go provides testing for the macroblock header decode in
  macroblock.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import (
	"bytes"
	"testing"

	"github.com/ausocean/h263/codec/h263/h263dec/bits"
)

// pathToVLC performs a depth-first search of table, returning the bit path
// to the first terminal (End) entry satisfying want. Used to build
// bitstream fixtures from a VLC table's semantics rather than transcribing
// raw code bits by hand.
func pathToVLC[T any](table []bits.Entry[T], want func(T) bool) ([]bool, bool) {
	var path []bool
	var walk func(idx int) bool
	walk = func(idx int) bool {
		entry := table[idx]
		if !entry.IsFork {
			return want(entry.Value)
		}
		path = append(path, false)
		if walk(entry.ZeroIdx) {
			return true
		}
		path = path[:len(path)-1]

		path = append(path, true)
		if walk(entry.OneIdx) {
			return true
		}
		path = path[:len(path)-1]
		return false
	}
	if !walk(0) {
		return nil, false
	}
	return path, true
}

func bitsToReader(bs ...[]bool) *bits.BitReader {
	w := &bitWriter{}
	for _, b := range bs {
		for _, bit := range b {
			w.writeBit(bit)
		}
	}
	return bits.NewBitReader(bytes.NewReader(w.bytes()))
}

func TestDecodeDQuant(t *testing.T) {
	tests := []struct {
		code uint64
		want int8
	}{
		{0, -1},
		{1, -2},
		{2, 1},
		{3, 2},
	}
	for _, test := range tests {
		w := &bitWriter{}
		w.writeBit(test.code&2 != 0)
		w.writeBit(test.code&1 != 0)
		br := bits.NewBitReader(bytes.NewReader(w.bytes()))

		got, err := decodeDQuant(br)
		if err != nil {
			t.Fatalf("decodeDQuant(code=%d): %v", test.code, err)
		}
		if got != test.want {
			t.Errorf("decodeDQuant(code=%d) = %d; want %d", test.code, got, test.want)
		}
	}
}

func TestDecodeCBPB(t *testing.T) {
	w := &bitWriter{}
	pattern := []bool{true, false, true, true, false, false}
	for _, b := range pattern {
		w.writeBit(b)
	}
	br := bits.NewBitReader(bytes.NewReader(w.bytes()))

	got, err := decodeCBPB(br)
	if err != nil {
		t.Fatalf("decodeCBPB: %v", err)
	}
	want := CodedBlockPattern{
		CodesLuma:    [4]bool{true, false, true, true},
		CodesChromaB: false,
		CodesChromaR: false,
	}
	if got != want {
		t.Errorf("decodeCBPB = %+v; want %+v", got, want)
	}
}

// TestDecodeMacroblockIntraNoCBP decodes an I-picture macroblock whose
// MCBPC selects an INTRA type with no chroma coded, and whose CBPY selects
// no luma block coded, confirming the whole chain wires together and the
// CBPY INTRA-column bits are used unflipped for an intra macroblock.
func TestDecodeMacroblockIntraNoCBP(t *testing.T) {
	mcbpcPath, ok := pathToVLC(mcbpcITable, func(r mcbpcResult) bool {
		return !r.IsStuffing() && !r.IsInvalid() && r.Type == MBTypeIntra && !r.ChromaB && !r.ChromaR
	})
	if !ok {
		t.Fatal("no mcbpcITable entry for plain INTRA, no CBP")
	}
	cbpyPath, ok := pathToVLC(cbpyIntraTable, func(r cbpyResult) bool {
		return r.Valid && r.Bits == [4]bool{false, false, false, false}
	})
	if !ok {
		t.Fatal("no cbpyIntraTable entry for all-zero CBPY")
	}

	br := bitsToReader(mcbpcPath, cbpyPath)
	picture := &Picture{Type: NewPictureType(PictureTypeI)}

	mb, err := decodeMacroblock(br, picture, 0)
	if err != nil {
		t.Fatalf("decodeMacroblock: %v", err)
	}
	if mb.Kind() != MacroblockCoded {
		t.Fatalf("Kind() = %v; want MacroblockCoded", mb.Kind())
	}
	if mb.Type != MBTypeIntra {
		t.Errorf("Type = %v; want MBTypeIntra", mb.Type)
	}
	want := [4]bool{false, false, false, false}
	if mb.CodedBlockPattern.CodesLuma != want {
		t.Errorf("CodesLuma = %v; want %v (unflipped for intra)", mb.CodedBlockPattern.CodesLuma, want)
	}
	if mb.MotionVector != nil {
		t.Error("MotionVector set on an INTRA macroblock; want nil")
	}
}

// TestDecodeMacroblockPUncoded confirms a P-picture macroblock whose COD
// bit is set decodes as MacroblockUncoded without consuming any further
// bits.
func TestDecodeMacroblockPUncoded(t *testing.T) {
	w := &bitWriter{}
	w.writeBit(true) // COD=1: not coded
	br := bits.NewBitReader(bytes.NewReader(w.bytes()))

	picture := &Picture{Type: NewPictureType(PictureTypeP)}
	mb, err := decodeMacroblock(br, picture, 0)
	if err != nil {
		t.Fatalf("decodeMacroblock: %v", err)
	}
	if mb.Kind() != MacroblockUncoded {
		t.Errorf("Kind() = %v; want MacroblockUncoded", mb.Kind())
	}
}
