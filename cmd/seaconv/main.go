// seaconv converts between .wav and .sea files, inferring direction from
// the input/output file extensions.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	sea "github.com/chanderlud/sea-codec"
	"github.com/chanderlud/sea-codec/codec"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

func main() {
	var (
		chunkSize  = flag.Uint("c", 5120, "frames per chunk (200-32000)")
		bitrate    = flag.Float64("b", 3.0, "target residual bits per sample")
		sfBits     = flag.Uint("s", 4, "scale factor bits (3-5)")
		sfDistance = flag.Uint("d", 20, "scale factor distance in frames")
		vbr        = flag.Bool("v", false, "enable variable bit rate")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: seaconv [flags] <input> <output>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	settings := codec.EncoderSettings{
		FramesPerChunk:    uint16(*chunkSize),
		ScaleFactorBits:   uint8(*sfBits),
		ScaleFactorFrames: uint8(*sfDistance),
		ResidualBits:      float32(*bitrate),
		VBR:               *vbr,
	}
	if err := validateSettings(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := convert(input, output, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateSettings(s codec.EncoderSettings) error {
	if s.FramesPerChunk < 200 || s.FramesPerChunk > 32000 {
		return errors.Errorf("chunk size must be between 200 and 32000")
	}
	if s.ScaleFactorBits < 3 || s.ScaleFactorBits > 5 {
		return errors.Errorf("scale factor bits must be between 3 and 5")
	}
	if s.ScaleFactorFrames < 1 || s.FramesPerChunk%uint16(s.ScaleFactorFrames) != 0 {
		return errors.Errorf("scale factor frames must be a divisor of chunk size")
	}
	if s.VBR {
		if s.ResidualBits < 1.5 || s.ResidualBits > 8.0 {
			return errors.Errorf("with VBR, bitrate must be between 1.5 and 8.0")
		}
	} else {
		if s.ResidualBits != float32(int(s.ResidualBits)) || s.ResidualBits < 1 || s.ResidualBits > 8 {
			return errors.Errorf("without VBR, bitrate must be an integer between 1 and 8")
		}
	}
	return nil
}

func convert(input, output string, settings codec.EncoderSettings) error {
	inExt, outExt := filepath.Ext(input), filepath.Ext(output)

	switch {
	case inExt == ".wav" && outExt == ".sea":
		return wavToSea(input, output, settings)
	case inExt == ".sea" && outExt == ".wav":
		return seaToWav(input, output)
	default:
		return errors.Errorf("invalid file extensions; supported conversions are .wav to .sea and .sea to .wav")
	}
}

func wavToSea(input, output string, settings codec.EncoderSettings) error {
	r, err := os.Open(input)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", input)
	}
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}

	samples, err := readAllSamples(dec)
	if err != nil {
		return errors.WithStack(err)
	}

	w, err := os.Create(output)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	encoded, err := sea.Encode(samples, dec.SampleRate, uint8(dec.NumChans), settings)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(encoded); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// toInt16 rescales a decoded sample to the full int16 range based on the
// source bit depth, matching the reference converter's table: 8-bit is
// widened by a shift, 24/32-bit are narrowed proportionally.
func toInt16(v int, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		return int16(v) << 8
	case 16:
		return int16(v)
	case 24:
		return int16(math.Round(float64(v) / float64(1<<23) * math.MaxInt16))
	case 32:
		return int16(math.Round(float64(v) / float64(math.MaxInt32) * math.MaxInt16))
	default:
		return int16(v)
	}
}

func readAllSamples(dec *wav.Decoder) ([]int16, error) {
	const samplesPerRead = 4096
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
		Data:   make([]int, samplesPerRead),
	}
	bitDepth := int(dec.BitDepth)

	var samples []int16
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
		for _, v := range buf.Data[:n] {
			samples = append(samples, toInt16(v, bitDepth))
		}
		if n < samplesPerRead {
			break
		}
	}
	return samples, nil
}

func seaToWav(input, output string) error {
	r, err := os.Open(input)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	decoded, err := sea.Decode(raw)
	if err != nil {
		return errors.WithStack(err)
	}

	w, err := os.Create(output)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	enc := wav.NewEncoder(w, int(decoded.SampleRate), 16, int(decoded.Channels), 1)
	data := make([]int, len(decoded.Samples))
	for i, s := range decoded.Samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: int(decoded.Channels), SampleRate: int(decoded.SampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return errors.WithStack(err)
	}
	if err := enc.Close(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
