package codec

import "testing"

func TestInterpolateDistributionSumsToItemCount(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 4999} {
		for _, rate := range []float32{2.0, 3.0, 3.5, 7.9} {
			dist := interpolateDistribution(items, rate)
			sum := dist[0] + dist[1] + dist[2] + dist[3]
			if sum != items {
				t.Errorf("interpolateDistribution(%d, %v) sums to %d, want %d", items, rate, sum, items)
			}
		}
	}
}

func TestInterpolateDistributionAtIntegerRateMatchesTable(t *testing.T) {
	const items = 2000
	dist := interpolateDistribution(items, 3.0)

	// At an exact integer rate the fractional blend collapses to the table
	// row for that integer, i.e. targetResidualDistribution[1..4] scaled by
	// items (base-1, base, base+1, base+2).
	wantBase := int(float32(items) * targetResidualDistribution[2])
	if dist[1] < wantBase-2 || dist[1] > wantBase+2 {
		t.Errorf("base bucket = %d, want close to %d", dist[1], wantBase)
	}
	if dist[0] != 0 {
		t.Errorf("minus-one bucket = %d, want 0 (target distribution reserves nothing below base at integer rate)", dist[0])
	}
}

func TestChooseResidualLenFromErrorsAssignsHarderSlicesMoreBits(t *testing.T) {
	e := &VbrEncoder{vbrTargetBitrate: 3.0}

	const numSlices = 100
	errs := make([]uint64, numSlices)
	for i := range errs {
		errs[i] = uint64(i) // ascending: slice 0 easiest, slice 99 hardest
	}

	sizes := e.chooseResidualLenFromErrors(numSlices, errs)
	if len(sizes) != numSlices {
		t.Fatalf("got %d sizes, want %d", len(sizes), numSlices)
	}

	base := ResidualSize(3)
	if sizes[0] > base {
		t.Errorf("easiest slice got width %d, want <= base width %d", sizes[0], base)
	}
	if sizes[numSlices-1] < base {
		t.Errorf("hardest slice got width %d, want >= base width %d", sizes[numSlices-1], base)
	}

	// The distribution is heavily weighted toward the base width; most
	// slices should land there.
	atBase := 0
	for _, s := range sizes {
		if s == base {
			atBase++
		}
	}
	if atBase < numSlices/2 {
		t.Errorf("only %d/%d slices at base width, want a clear majority", atBase, numSlices)
	}
}
