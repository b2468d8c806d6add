package codec

import "sort"

// targetResidualDistribution is the fraction of slices that should land in
// each of the four buckets {b-1, b, b+1, b+2} around a chosen base residual
// width b, padded with zero entries on both ends so interpolation between
// adjacent integer bitrates can index one past either side.
var targetResidualDistribution = [6]float32{0.00, 0.00, 0.95, 0.05, 0.00, 0.00}

// VbrEncoder assigns each slice its own residual width from a target
// distribution, then encodes every slice at its assigned width.
type VbrEncoder struct {
	channels          int
	scaleFactorBits   uint8
	scaleFactorFrames uint8
	vbrTargetBitrate  float32
	prevScaleFactor   [SeaMaxChannels]int32
	base              *BaseEncoder

	LMS []LMSPredictor
}

// NewVbrEncoder returns a VBR encoder seeded with fresh per-channel
// predictor state and the normalized target bitrate derived from settings.
func NewVbrEncoder(channels int, settings EncoderSettings) *VbrEncoder {
	return &VbrEncoder{
		channels:          channels,
		scaleFactorBits:   settings.ScaleFactorBits,
		scaleFactorFrames: settings.ScaleFactorFrames,
		base:              NewBaseEncoder(),
		LMS:               NewLMSPredictors(channels),
		vbrTargetBitrate:  normalizedVbrBitrate(settings),
	}
}

// normalizedVbrBitrate compensates the requested residual width for the
// framing overhead (LMS snapshot, scale factors, width deltas) and for the
// mean shift the target distribution itself introduces, so that the
// resulting stream's true average bits-per-residual tracks the request.
func normalizedVbrBitrate(settings EncoderSettings) float32 {
	rate := settings.ResidualBits

	rate -= (float32(LMSLen) * 16.0 * 2.0) / float32(settings.FramesPerChunk)
	rate -= float32(settings.ScaleFactorBits) / float32(settings.ScaleFactorFrames)
	rate -= 2.0 / float32(settings.ScaleFactorFrames)

	base := float32(int(settings.ResidualBits))
	distBitrate := targetResidualDistribution[1]*(base-1.0) +
		targetResidualDistribution[2]*base +
		targetResidualDistribution[3]*(base+1.0) +
		targetResidualDistribution[4]*(base+2.0)
	rate -= distBitrate - base

	return rate
}

// interpolateDistribution returns item counts for buckets
// [base-1, base, base+1, base+2] that sum to items, blending the
// distribution at floor(targetRate) and ceil(targetRate) by its fractional
// part.
func interpolateDistribution(items int, targetRate float32) [4]int {
	frac := targetRate - float32(int(targetRate))
	omFrac := 1.0 - frac

	var percentages [4]float32
	for i := 0; i < 4; i++ {
		percentages[i] = targetResidualDistribution[i]*frac + targetResidualDistribution[i+1]*omFrac
	}

	var res [4]int
	sum := 0
	for sum < items {
		remaining := items - sum
		progressed := false
		for i := 0; i < 4; i++ {
			value := int(float32(remaining) * percentages[i])
			if value > 0 {
				progressed = true
			}
			sum += value
			res[i] += value
		}
		if !progressed {
			sum += remaining
			res[1] += remaining
		}
	}

	return res
}

// chooseResidualLenFromErrors ranks the full slices (the trailing partial
// slice, if any, is excluded so it never debalances the chunk) by ascending
// probe rank and assigns the easiest (lowest-rank) slices fewer bits and the
// hardest slices more, to match the interpolated bucket sizes.
func (e *VbrEncoder) chooseResidualLenFromErrors(numSlices int, errors []uint64) []ResidualSize {
	indices := make([]int, numSlices)
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(a, b int) bool { return errors[indices[a]] < errors[indices[b]] })

	dist := interpolateDistribution(numSlices, e.vbrTargetBitrate)
	minusOne, plusOne, plusTwo := dist[0], dist[2], dist[3]

	baseBits := ResidualSize(int(e.vbrTargetBitrate))

	sizes := make([]ResidualSize, len(errors))
	for i := range sizes {
		sizes[i] = baseBits
	}

	for _, idx := range indices[:minusOne] {
		sizes[idx] = ResidualSizeFromBits(int(baseBits) - 1)
	}
	plusStart := numSlices - plusTwo - plusOne
	for _, idx := range indices[plusStart : plusStart+plusOne] {
		sizes[idx] = ResidualSizeFromBits(int(baseBits) + 1)
	}
	for _, idx := range indices[numSlices-plusTwo:] {
		sizes[idx] = ResidualSizeFromBits(int(baseBits) + 2)
	}

	return sizes
}

// analyze probes the whole chunk at floor(target)+1 bits using a scratch
// copy of the persistent LMS/scale-factor trackers (never the live state
// the real encode pass mutates), ranks the full slices by the resulting
// error, and returns the chosen residual width per (slice, channel).
func (e *VbrEncoder) analyze(samples []int16, dequantTab *DequantTab) []ResidualSize {
	analyzeSize := ResidualSizeFromBits(int(e.vbrTargetBitrate) + 1)
	sliceSize := int(e.scaleFactorFrames) * e.channels

	dqt := dequantTab.Get(int(analyzeSize))
	reciprocals := ScaleFactorReciprocals(int(e.scaleFactorBits), int(analyzeSize))

	lms := make([]LMSPredictor, e.channels)
	copy(lms, e.LMS)
	prevScaleFactor := e.prevScaleFactor

	numSlices := len(samples) / sliceSize
	errors := make([]uint64, 0, (len(samples)+sliceSize-1)/sliceSize*e.channels)

	for start := 0; start < len(samples); start += sliceSize {
		end := start + sliceSize
		if end > len(samples) {
			end = len(samples)
		}
		inputSlice := samples[start:end]

		for channel := 0; channel < e.channels; channel++ {
			rank, _, bestLMS, bestScaleFactor := e.base.BestForSlice(
				e.channels,
				dqt,
				reciprocals,
				inputSlice[channel:],
				prevScaleFactor[channel],
				lms[channel],
				analyzeSize,
				e.scaleFactorBits,
			)

			prevScaleFactor[channel] = bestScaleFactor
			lms[channel] = bestLMS
			errors = append(errors, rank)
		}
	}

	full := errors
	if numSlices*e.channels < len(full) {
		full = errors[:numSlices*e.channels]
	}
	chosen := e.chooseResidualLenFromErrors(numSlices*e.channels, full)

	result := make([]ResidualSize, len(errors))
	copy(result, chosen)
	for i := len(chosen); i < len(result); i++ {
		result[i] = ResidualSize(int(e.vbrTargetBitrate))
	}
	return result
}

// Snapshot copies the encoder's current per-channel predictor state, for
// storing in the chunk header before Encode mutates it.
func (e *VbrEncoder) Snapshot() []LMSPredictor {
	out := make([]LMSPredictor, len(e.LMS))
	copy(out, e.LMS)
	return out
}

// Encode runs analyze to assign per-slice residual widths, then encodes
// every slice at its assigned width, mutating the persistent predictor and
// scale-factor state this time.
func (e *VbrEncoder) Encode(samples []int16, dequantTab *DequantTab) EncodedSamples {
	residualBits := e.analyze(samples, dequantTab)

	scaleFactors := make([]byte, 0, len(samples)/e.channels)
	residuals := make([]byte, len(samples))
	sliceSize := int(e.scaleFactorFrames) * e.channels

	sliceIndex := 0
	for start := 0; start < len(samples); start += sliceSize {
		end := start + sliceSize
		if end > len(samples) {
			end = len(samples)
		}
		inputSlice := samples[start:end]

		for channel := 0; channel < e.channels; channel++ {
			residualSize := residualBits[sliceIndex*e.channels+channel]
			dqt := dequantTab.Get(int(residualSize))
			reciprocals := ScaleFactorReciprocals(int(e.scaleFactorBits), int(residualSize))

			_, bestResiduals, bestLMS, bestScaleFactor := e.base.BestForSlice(
				e.channels,
				dqt,
				reciprocals,
				inputSlice[channel:],
				e.prevScaleFactor[channel],
				e.LMS[channel],
				residualSize,
				e.scaleFactorBits,
			)

			e.prevScaleFactor[channel] = bestScaleFactor
			e.LMS[channel] = bestLMS

			scaleFactors = append(scaleFactors, byte(bestScaleFactor))
			for i, code := range bestResiduals {
				residuals[start+i*e.channels+channel] = code
			}
		}
		sliceIndex++
	}

	residualBitsBytes := make([]byte, len(residualBits))
	for i, r := range residualBits {
		residualBitsBytes[i] = byte(r)
	}

	return EncodedSamples{ScaleFactors: scaleFactors, Residuals: residuals, ResidualBits: residualBitsBytes}
}
