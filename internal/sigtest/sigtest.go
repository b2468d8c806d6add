// Package sigtest generates deterministic synthetic PCM signals and scores
// reconstruction quality, for use by tests and the benchmark harness.
package sigtest

import "math"

// SampleRate is the sample rate the generated signal is defined against.
const SampleRate = 44100

func writeSquareWave(signal []float32, gain, frequency float32) {
	period := SampleRate / frequency
	for i := range signal {
		if int(float32(i))%int(period) < int(period/2.0) {
			signal[i] += gain
		} else {
			signal[i] -= gain
		}
	}
}

func writeSineWave(signal []float32, gain, frequency float32) {
	angular := 2.0 * math.Pi * float64(frequency) / float64(SampleRate)
	for i := range signal {
		signal[i] += gain * float32(math.Sin(angular*float64(i)))
	}
}

func signalChunk(signal []float32, startPercent, endPercent float32) []float32 {
	start := int(float32(len(signal)) * startPercent)
	end := int(float32(len(signal)) * endPercent)
	return signal[start:end]
}

func monoToMulti(mono []float32, channels int) []float32 {
	channelDelay := SampleRate / 25

	totalSamples := len(mono) + (channels-1)*channelDelay
	multi := make([]float32, totalSamples*channels)

	for i, sample := range mono {
		for channel := 0; channel < channels; channel++ {
			delay := channelDelay * channel
			index := (i+delay)*channels + channel
			if index < len(multi) {
				multi[index] = sample
			}
		}
	}

	return multi
}

// GenTestSignal builds a deterministic multi-channel test signal: a mix of
// square and sine segments covering low, mid and high frequencies with
// overlapping regions, replicated across channels with a small per-channel
// delay so stereo/multichannel paths are exercised too.
func GenTestSignal(channels, samples int) []int16 {
	mono := make([]float32, samples)
	writeSquareWave(signalChunk(mono, 0.0, 0.3), 0.5, 440.0)
	writeSquareWave(signalChunk(mono, 0.1, 0.2), 0.3, 2150.1)
	writeSineWave(signalChunk(mono, 0.1, 0.7), 0.5, 105.0)
	writeSquareWave(signalChunk(mono, 0.6, 0.7), 0.5, 14000.0)
	writeSineWave(signalChunk(mono, 0.5, 0.8), 0.8, 12000.0)
	writeSineWave(signalChunk(mono, 0.8, 0.9), 1.0, 440.0)

	multi := monoToMulti(mono, channels)

	out := make([]int16, len(multi))
	for i, s := range multi {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * math.MaxInt16)
	}
	return out
}

// AudioQualityStats reports reconstruction error between two equal-length
// signals, normalized by the int16 full scale.
type AudioQualityStats struct {
	RMS  float64
	PSNR float64
}

// GetAudioQuality computes RMS error and PSNR between a and b, which must be
// the same length.
func GetAudioQuality(a, b []int16) AudioQualityStats {
	var sum float64
	for i := range a {
		af := float64(a[i]) / math.MaxInt16
		bf := float64(b[i]) / math.MaxInt16
		diff := af - bf
		sum += diff * diff
	}

	rms := math.Sqrt(sum / float64(len(a)))
	psnr := -20.0 * math.Log10(2.0/rms)

	return AudioQualityStats{RMS: rms, PSNR: psnr}
}
