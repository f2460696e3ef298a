/*
DESCRIPTION
  types_test.go provides testing for the IntraDC fixed-length-code <->
  reconstruction-level mapping in types.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import "testing"

// TestIntraDCFromU8RejectsReserved is item 2/§8: the two FLC values Table
// 15/H.263 reserves, 0 and 128, must be rejected by IntraDCFromU8.
func TestIntraDCFromU8RejectsReserved(t *testing.T) {
	for _, v := range []uint8{0, 128} {
		if _, ok := IntraDCFromU8(v); ok {
			t.Errorf("IntraDCFromU8(%d) accepted; want rejected", v)
		}
	}
}

// TestIntraDCIntoLevelRange is item 2/§8: for every accepted FLC value
// n in {1..127, 129..255}, IntraDCFromU8(n).IntoLevel() is a multiple of
// 8 in [8, 2032], and n=255 maps to 1024.
func TestIntraDCIntoLevelRange(t *testing.T) {
	for n := 1; n <= 255; n++ {
		if n == 0 || n == 128 {
			continue
		}
		dc, ok := IntraDCFromU8(uint8(n))
		if !ok {
			t.Fatalf("IntraDCFromU8(%d) rejected; want accepted", n)
		}

		level := dc.IntoLevel()
		if level%8 != 0 {
			t.Errorf("IntraDCFromU8(%d).IntoLevel() = %d; not a multiple of 8", n, level)
		}
		if level < 8 || level > 2032 {
			t.Errorf("IntraDCFromU8(%d).IntoLevel() = %d; out of [8, 2032]", n, level)
		}
		if n == 255 && level != 1024 {
			t.Errorf("IntraDCFromU8(255).IntoLevel() = %d; want 1024", level)
		}
	}
}

// TestIntraDCFromLevelRoundTrip confirms IntraDCFromLevel and IntoLevel
// are inverses for every valid reconstruction level, including the 1024
// special case, which IntraDCFromLevel maps to raw byte 0xFF (the same
// byte IntraDCFromU8(255) yields) rather than to the reserved 128.
func TestIntraDCFromLevelRoundTrip(t *testing.T) {
	for level := uint16(8); level <= 2032; level += 8 {
		dc, ok := IntraDCFromLevel(level)
		if !ok {
			t.Fatalf("IntraDCFromLevel(%d) rejected; want accepted", level)
		}
		if got := dc.IntoLevel(); got != int16(level) {
			t.Errorf("IntraDCFromLevel(%d).IntoLevel() = %d; want %d", level, got, level)
		}
	}
}

// TestIntraDCFromLevelRejectsInvalid is item 2/§8's converse: levels that
// aren't multiples of 8, or fall outside [8, 2032], are rejected.
func TestIntraDCFromLevelRejectsInvalid(t *testing.T) {
	tests := []uint16{0, 1, 4, 7, 2033, 2040, 65535}
	for _, level := range tests {
		if _, ok := IntraDCFromLevel(level); ok {
			t.Errorf("IntraDCFromLevel(%d) accepted; want rejected", level)
		}
	}
}
