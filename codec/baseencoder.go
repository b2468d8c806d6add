package codec

// BaseEncoder searches, for one channel's slice of samples, the scale
// factor that minimizes squared reconstruction error plus predictor weight
// penalty. It reuses a scratch residual buffer across candidate scale
// factors within a call, and across calls, to avoid reallocating per slice.
type BaseEncoder struct {
	scratch []byte
}

// NewBaseEncoder returns an encoder with an empty scratch buffer.
func NewBaseEncoder() *BaseEncoder {
	return &BaseEncoder{}
}

func (e *BaseEncoder) calculateResiduals(
	channels int,
	dqt []int32,
	samples []int16,
	scaleFactor int32,
	lms *LMSPredictor,
	bestRank uint64,
	residualSize ResidualSize,
	reciprocals []int32,
) uint64 {
	var rank uint64
	clampLimit := int32(residualSize.BinaryCombinations())

	index := 0
	for i := 0; i < len(samples); i += channels {
		sample := int32(samples[i])
		predicted := lms.Predict()
		residual := sample - predicted
		scaled := seaDiv(residual, reciprocals[scaleFactor])
		clamped := clampI32(scaled, -clampLimit, clampLimit)
		quantized := quantize(residualSize, clamped)

		dequantized := dqt[quantized]
		reconstructed := clamp16(predicted + dequantized)

		err := int64(sample) - int64(reconstructed)
		rank += uint64(err*err) + lms.WeightsPenalty()
		if rank > bestRank {
			break
		}

		lms.Update(reconstructed, dequantized)
		e.scratch[index] = quantized
		index++
	}

	return rank
}

// BestForSlice tries every candidate scale factor (starting at
// prevScaleFactor and wrapping modulo 2^scaleFactorBits, so that the common
// case of an unchanged winner terminates quickly via the rank-abort above),
// and returns the winning rank, residual codes, resulting predictor state
// and scale factor.
func (e *BaseEncoder) BestForSlice(
	channels int,
	dqt [][]int32,
	reciprocals []int32,
	samples []int16,
	prevScaleFactor int32,
	refLMS LMSPredictor,
	residualSize ResidualSize,
	scaleFactorBits uint8,
) (rank uint64, residuals []byte, lms LMSPredictor, scaleFactor int32) {
	resultLen := (len(samples) + channels - 1) / channels
	if cap(e.scratch) < resultLen {
		e.scratch = make([]byte, resultLen)
	}
	e.scratch = e.scratch[:resultLen]

	bestRank := ^uint64(0)
	bestResiduals := make([]byte, resultLen)
	var bestLMS LMSPredictor
	var bestScaleFactor int32

	scaleFactorEnd := int32(1) << scaleFactorBits

	for sfi := int32(0); sfi < scaleFactorEnd; sfi++ {
		sf := (sfi + prevScaleFactor) % scaleFactorEnd
		current := refLMS

		currentRank := e.calculateResiduals(channels, dqt[sf], samples, sf, &current, bestRank, residualSize, reciprocals)

		if currentRank < bestRank {
			bestRank = currentRank
			copy(bestResiduals, e.scratch)
			bestLMS = current
			bestScaleFactor = sf
		}
	}

	return bestRank, bestResiduals, bestLMS, bestScaleFactor
}
