package codec

// CbrEncoder applies BaseEncoder to every slice of every channel in a chunk
// at a fixed residual width.
type CbrEncoder struct {
	channels          int
	residualSize      ResidualSize
	scaleFactorFrames uint8
	scaleFactorBits   uint8
	prevScaleFactor   [SeaMaxChannels]int32
	base              *BaseEncoder

	LMS []LMSPredictor
}

// NewCbrEncoder returns a CBR encoder seeded with fresh per-channel
// predictor state.
func NewCbrEncoder(channels int, settings EncoderSettings) *CbrEncoder {
	return &CbrEncoder{
		channels:          channels,
		residualSize:      settings.BaseResidualSize(),
		scaleFactorFrames: settings.ScaleFactorFrames,
		scaleFactorBits:   settings.ScaleFactorBits,
		base:              NewBaseEncoder(),
		LMS:               NewLMSPredictors(channels),
	}
}

// EncodedSamples holds one chunk's worth of CBR/VBR encoder output.
type EncodedSamples struct {
	ScaleFactors []byte
	Residuals    []byte
	ResidualBits []byte // VBR only, per (slice, channel)
}

// Snapshot copies the encoder's current per-channel predictor state, for
// storing in the chunk header before Encode mutates it.
func (e *CbrEncoder) Snapshot() []LMSPredictor {
	out := make([]LMSPredictor, len(e.LMS))
	copy(out, e.LMS)
	return out
}

// Encode runs the scale-factor search over every slice/channel of samples
// (interleaved, channels-wide frames) and returns the interleaved result.
func (e *CbrEncoder) Encode(samples []int16, dequantTab *DequantTab) EncodedSamples {
	scaleFactors := make([]byte, 0, len(samples)/e.channels)
	residuals := make([]byte, len(samples))

	dqt := dequantTab.Get(int(e.residualSize))
	reciprocals := ScaleFactorReciprocals(int(e.scaleFactorBits), int(e.residualSize))
	sliceSize := int(e.scaleFactorFrames) * e.channels

	for sliceIndex := 0; sliceIndex*sliceSize < len(samples); sliceIndex++ {
		start := sliceIndex * sliceSize
		end := start + sliceSize
		if end > len(samples) {
			end = len(samples)
		}
		inputSlice := samples[start:end]

		for channel := 0; channel < e.channels; channel++ {
			_, bestResiduals, bestLMS, bestScaleFactor := e.base.BestForSlice(
				e.channels,
				dqt,
				reciprocals,
				inputSlice[channel:],
				e.prevScaleFactor[channel],
				e.LMS[channel],
				e.residualSize,
				e.scaleFactorBits,
			)

			e.prevScaleFactor[channel] = bestScaleFactor
			e.LMS[channel] = bestLMS

			scaleFactors = append(scaleFactors, byte(bestScaleFactor))
			for i, code := range bestResiduals {
				residuals[start+i*e.channels+channel] = code
			}
		}
	}

	return EncodedSamples{ScaleFactors: scaleFactors, Residuals: residuals}
}
