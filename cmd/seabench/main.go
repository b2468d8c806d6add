// seabench encodes and decodes a synthetic test signal and reports
// compression ratio, bits per sample, and reconstruction quality.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	sea "github.com/chanderlud/sea-codec"
	"github.com/chanderlud/sea-codec/codec"
	"github.com/chanderlud/sea-codec/internal/sigtest"
)

func main() {
	var (
		channels     = flag.Int("channels", 2, "channel count of the synthetic signal")
		samples      = flag.Int("samples", 5*sigtest.SampleRate, "samples per channel of the synthetic signal")
		residualBits = flag.Float64("bitrate", 5.0, "target residual bits per sample")
		vbr          = flag.Bool("vbr", true, "enable variable bit rate")
	)
	flag.Parse()

	settings := codec.DefaultEncoderSettings()
	settings.ResidualBits = float32(*residualBits)
	settings.VBR = *vbr

	input := sigtest.GenTestSignal(*channels, *samples)

	start := time.Now()
	encoded, err := sea.Encode(input, sigtest.SampleRate, uint8(*channels), settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}
	encodeTime := time.Since(start)

	bitsPerSample := float64(len(encoded)*8) / float64(len(input))
	compressionRatio := float64(len(input)*2) / float64(len(encoded))

	start = time.Now()
	decoded, err := sea.Decode(encoded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
		os.Exit(1)
	}
	decodeTime := time.Since(start)

	if len(decoded.Samples) != len(input) {
		fmt.Fprintf(os.Stderr, "sample count mismatch: got %d, want %d\n", len(decoded.Samples), len(input))
		os.Exit(1)
	}

	quality := sigtest.GetAudioQuality(input, decoded.Samples)

	fmt.Printf("Encoding took %s\n", encodeTime)
	fmt.Printf("Decoding took %s\n", decodeTime)
	fmt.Printf("Compression ratio %.2f\n", compressionRatio)
	fmt.Printf("Bits per sample: %.2f\n", bitsPerSample)
	fmt.Printf("RMS: %.4f%% PSNR %.2f dB\n", quality.RMS*100.0, quality.PSNR)
}
