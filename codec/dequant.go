package codec

import "math"

// idealPowFactor gives the ideal scale-factor curve exponent for each
// residual width 1..8, found experimentally against a diverse dataset.
var idealPowFactor = [8]float32{12.0, 11.65, 11.20, 10.58, 9.64, 8.75, 7.66, 6.63}

// DequantTab derives and caches dequantization tables keyed by
// (scaleFactorBits, residualBits). Replacing scaleFactorBits invalidates the
// whole cache; residualBits is cached independently within it.
type DequantTab struct {
	scaleFactorBits int
	cache           [9][][]int32 // index 1..8 by residual bits
}

// NewDequantTab returns a cache for the given scale-factor bit width.
func NewDequantTab(scaleFactorBits int) *DequantTab {
	return &DequantTab{scaleFactorBits: scaleFactorBits}
}

func powFactor(scaleFactorBits, residualBits int) float32 {
	return idealPowFactor[residualBits-1] / float32(scaleFactorBits)
}

func calculateScaleFactors(scaleFactorBits, residualBits int) []int32 {
	e := powFactor(scaleFactorBits, residualBits)
	n := 1 << uint(scaleFactorBits)
	out := make([]int32, n)
	for i := 1; i <= n; i++ {
		out[i-1] = int32(math.Pow(float64(i), float64(e)))
	}
	return out
}

// ScaleFactorReciprocals returns floor(65536/scale_factor) per scale-factor
// index, used by the encoder to divide residuals via fixed-point multiply.
func ScaleFactorReciprocals(scaleFactorBits, residualBits int) []int32 {
	sf := calculateScaleFactors(scaleFactorBits, residualBits)
	out := make([]int32, len(sf))
	for i, s := range sf {
		out[i] = int32(float64(1<<16) / float64(s))
	}
	return out
}

func genQuantCurve(residualBits int) []float32 {
	switch residualBits {
	case 1:
		return []float32{2.0}
	case 2:
		return []float32{1.115, 4.0}
	}

	steps := 1 << uint(residualBits-1)
	start := float32(0.75)
	end := float32((1 << uint(residualBits)) - 1)
	step := (end - start) / float32(steps-1)
	stepFloor := float32(math.Floor(float64(step)))

	curve := make([]float32, steps)
	for i := 1; i < steps; i++ {
		curve[i] = 0.5 + float32(i)*stepFloor
	}
	curve[0] = start
	curve[steps-1] = end
	return curve
}

func generateDequant(scaleFactorBits, residualBits int) [][]int32 {
	curve := genQuantCurve(residualBits)
	scaleFactorItems := 1 << uint(scaleFactorBits)
	scaleFactors := calculateScaleFactors(scaleFactorBits, residualBits)

	out := make([][]int32, scaleFactorItems)
	for s := 0; s < scaleFactorItems; s++ {
		row := make([]int32, 0, len(curve)*2)
		for _, q := range curve {
			v := int32(math.Round(float64(scaleFactors[s]) * float64(q)))
			row = append(row, v, -v)
		}
		out[s] = row
	}
	return out
}

// Get returns the dequantization table for residualBits, computing and
// caching it on first use.
func (d *DequantTab) Get(residualBits int) [][]int32 {
	return d.GetWithScaleFactorBits(d.scaleFactorBits, residualBits)
}

// GetWithScaleFactorBits recomputes the cache if scaleFactorBits changed
// from the last call, then returns (and caches) the table for residualBits.
func (d *DequantTab) GetWithScaleFactorBits(scaleFactorBits, residualBits int) [][]int32 {
	if scaleFactorBits != d.scaleFactorBits {
		d.scaleFactorBits = scaleFactorBits
		d.cache = [9][][]int32{}
	}
	if d.cache[residualBits] == nil {
		d.cache[residualBits] = generateDequant(scaleFactorBits, residualBits)
	}
	return d.cache[residualBits]
}

// ScaleFactorBits reports the bit width this cache is currently keyed on.
func (d *DequantTab) ScaleFactorBits() int {
	return d.scaleFactorBits
}
