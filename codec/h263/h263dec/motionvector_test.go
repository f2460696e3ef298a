/*
DESCRIPTION
  motionvector_test.go provides testing for motion vector prediction and
  decode in motionvector.go, and for HalfPel/MotionVector arithmetic in
  types.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h263dec

import "testing"

// TestMedianOfPermutationInvariant is item 3/§8: median_of is equal for
// any permutation of its arguments, and median_of(a,a,b) = a.
func TestMedianOfPermutationInvariant(t *testing.T) {
	values := []HalfPel{-64, -5, -1, 0, 1, 5, 10, 63}

	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				want := a.MedianOf(b, c)
				perms := [][3]HalfPel{
					{a, c, b},
					{b, a, c},
					{b, c, a},
					{c, a, b},
					{c, b, a},
				}
				for _, p := range perms {
					if got := p[0].MedianOf(p[1], p[2]); got != want {
						t.Errorf("MedianOf(%v) = %v; want %v (from %v,%v,%v)", p, got, want, a, b, c)
					}
				}
			}
		}
	}

	for _, a := range values {
		for _, b := range values {
			if got := a.MedianOf(a, b); got != a {
				t.Errorf("MedianOf(%v,%v,%v) = %v; want %v", a, a, b, got, a)
			}
		}
	}
}

// TestAverageSumOfMVs is item 4/§8: AverageSumOfMVs divides its receiver by
// eight and rounds to the nearest whole unit via the table in the function
// comment, so applying it to 8*v recovers v exactly for every half-pel v -
// the table's 0|1|2 / 3..13 / 14|15 bucketing of the remainder always lands
// on the right side of the rounding boundary when the true quotient is an
// integer.
func TestAverageSumOfMVs(t *testing.T) {
	for v := int32(ExtendedRangeBeyondCIF) * -1; v < int32(ExtendedRangeBeyondCIF); v++ {
		hv := HalfPel(v)
		sum := hv * 8
		if got := sum.AverageSumOfMVs(); got != hv {
			t.Errorf("AverageSumOfMVs(8*%d) = %d; want %d", hv, got, hv)
		}
	}
}

// TestHalfPelDecodeRangeInvariant is item 1/§8: for any HalfPel v and range
// r, after decode either v+predictor is in [-r,r) or v.Invert()+predictor
// is in [-r,r).
func TestHalfPelDecodeRangeInvariant(t *testing.T) {
	ctx := motionVectorContext{Width: 176, Height: 144}

	for predictor := HalfPel(-40); predictor <= 40; predictor += 5 {
		for mvd := HalfPel(-63); mvd <= 63; mvd++ {
			got := HalfPelDecode(ctx, UnrestrictedMotionVectors, predictor, mvd, true)

			direct := mvd + predictor
			inverted := mvd.Invert() + predictor
			if got != direct && got != inverted {
				t.Fatalf("HalfPelDecode(predictor=%d, mvd=%d) = %d; want either direct %d or inverted %d",
					predictor, mvd, got, direct, inverted)
			}
		}
	}
}

// TestPredictCandidateFirstMacroblock confirms the zero-predictor edge
// case: the first macroblock of a picture, block 0, has no neighbours to
// predict from.
func TestPredictCandidateFirstMacroblock(t *testing.T) {
	got := PredictCandidate(nil, [4]MotionVector{}, 11, 0)
	want := MotionVector{}
	if got != want {
		t.Errorf("PredictCandidate(first MB, block 0) = %v; want %v", got, want)
	}
}

// TestPredictCandidateWithinMacroblock confirms blocks 1-3 of a macroblock
// predict from already-decoded blocks of the same macroblock (block 1 from
// block 0): with no neighbouring macroblocks decoded yet, all three
// candidates collapse to block 0's vector, so the predictor is exactly
// that vector.
func TestPredictCandidateWithinMacroblock(t *testing.T) {
	current := [4]MotionVector{
		{X: 4, Y: 2},
	}
	got := PredictCandidate(nil, current, 11, 1)
	want := current[0]
	if got != want {
		t.Errorf("PredictCandidate(within MB, block 1) = %v; want %v", got, want)
	}
}

// TestDezigzagBijection is item 5/§8: the dezigzag table is a bijection of
// 0..63 onto 8x8 positions.
func TestDezigzagBijection(t *testing.T) {
	if len(dezigzag) != 64 {
		t.Fatalf("len(dezigzag) = %d; want 64", len(dezigzag))
	}

	seen := map[[2]uint8]int{}
	for i, coord := range dezigzag {
		if coord[0] > 7 || coord[1] > 7 {
			t.Errorf("dezigzag[%d] = %v; coordinate out of 8x8 bounds", i, coord)
		}
		if prev, ok := seen[coord]; ok {
			t.Errorf("dezigzag[%d] and dezigzag[%d] both map to %v", prev, i, coord)
		}
		seen[coord] = i
	}
	if len(seen) != 64 {
		t.Errorf("dezigzag covers %d distinct positions; want all 64", len(seen))
	}
}
