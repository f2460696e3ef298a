/*
DESCRIPTION
  idct_test.go provides testing for the inverse DCT and residual
  reconstruction in idct.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import (
	"math"
	"testing"
)

func TestIDCTZeroBlock(t *testing.T) {
	out := IDCT(DecodedDCTBlock{kind: DCTBlockZero})
	for y := range out {
		for x := range out[y] {
			if out[y][x] != 0 {
				t.Fatalf("IDCT(zero block)[%d][%d] = %v; want 0", y, x, out[y][x])
			}
		}
	}
}

// TestIDCTDCBlockIsFlat confirms a DC-only block produces a spatial-domain
// residual that is constant everywhere, at half the DC coefficient's value
// (the two C(0)=1/sqrt(2) basis terms folding to 1/2).
func TestIDCTDCBlockIsFlat(t *testing.T) {
	out := IDCT(DecodedDCTBlock{kind: DCTBlockDC, dc: 64})
	want := float32(32)
	for y := range out {
		for x := range out[y] {
			if math.Abs(float64(out[y][x]-want)) > 1e-3 {
				t.Fatalf("IDCT(DC=64)[%d][%d] = %v; want %v", y, x, out[y][x], want)
			}
		}
	}
}

// TestIDCTHorizConstantPerColumn confirms a horizontal-only block produces
// a residual that is constant along every column (varies only with x).
func TestIDCTHorizConstantPerColumn(t *testing.T) {
	row := [8]float32{10, 1, 2, 3, 4, 5, 6, 7}
	out := IDCT(DecodedDCTBlock{kind: DCTBlockHoriz, row: row})
	for x := 0; x < 8; x++ {
		for y := 1; y < 8; y++ {
			if math.Abs(float64(out[y][x]-out[0][x])) > 1e-3 {
				t.Errorf("IDCT(horiz)[%d][%d] = %v; want %v (same as row 0)", y, x, out[y][x], out[0][x])
			}
		}
	}
}

// TestIDCTVertConstantPerRow is the transpose of TestIDCTHorizConstantPerColumn.
func TestIDCTVertConstantPerRow(t *testing.T) {
	col := [8]float32{10, 1, 2, 3, 4, 5, 6, 7}
	out := IDCT(DecodedDCTBlock{kind: DCTBlockVert, col: col})
	for y := 0; y < 8; y++ {
		for x := 1; x < 8; x++ {
			if math.Abs(float64(out[y][x]-out[y][0])) > 1e-3 {
				t.Errorf("IDCT(vert)[%d][%d] = %v; want %v (same as column 0)", y, x, out[y][x], out[y][0])
			}
		}
	}
}

// TestIDCTFullMatchesDCPath confirms the DCTBlockFull path, run on a block
// with only the DC coefficient populated, reproduces the DCTBlockDC fast
// path's output - the fast paths are optimizations, not different math.
func TestIDCTFullMatchesDCPath(t *testing.T) {
	var full [8][8]float32
	full[0][0] = 64
	got := IDCT(DecodedDCTBlock{kind: DCTBlockFull, block: full})
	want := IDCT(DecodedDCTBlock{kind: DCTBlockDC, dc: 64})

	for y := range got {
		for x := range got[y] {
			if math.Abs(float64(got[y][x]-want[y][x])) > 1e-3 {
				t.Errorf("IDCT(full, DC only)[%d][%d] = %v; want %v (DC path)", y, x, got[y][x], want[y][x])
			}
		}
	}
}

func TestAddResidualClampsToByteRange(t *testing.T) {
	var prediction [8][8]uint8
	var residual [8][8]float32
	prediction[0][0] = 250
	residual[0][0] = 10000 // far beyond the clip range after scaling

	out := AddResidual(prediction, residual)
	if out[0][0] != 255 {
		t.Errorf("AddResidual clamp high = %d; want 255", out[0][0])
	}

	prediction[1][1] = 5
	residual[1][1] = -10000
	out = AddResidual(prediction, residual)
	if out[1][1] != 0 {
		t.Errorf("AddResidual clamp low = %d; want 0", out[1][1])
	}
}

func TestAddResidualZeroIsIdentity(t *testing.T) {
	var prediction [8][8]uint8
	for y := range prediction {
		for x := range prediction[y] {
			prediction[y][x] = uint8((y*8 + x) % 256)
		}
	}
	out := AddResidual(prediction, [8][8]float32{})
	if out != prediction {
		t.Errorf("AddResidual(pred, zero residual) = %v; want %v", out, prediction)
	}
}

func TestApplyIDCTWritesBackIntoPlane(t *testing.T) {
	samplesPerRow := 16
	plane := make([]byte, samplesPerRow*16)
	for i := range plane {
		plane[i] = 100
	}

	ApplyIDCT(plane, samplesPerRow, [2]int{0, 0}, DecodedDCTBlock{kind: DCTBlockZero})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := plane[y*samplesPerRow+x]; got != 100 {
				t.Errorf("plane[%d][%d] = %d; want 100 (zero residual is a no-op)", y, x, got)
			}
		}
	}

	// Outside the 8x8 region at (0,0), samples must be untouched.
	if plane[8] != 100 {
		t.Errorf("plane[0][8] = %d; want untouched 100", plane[8])
	}
}
