// Package sea implements the SEA lossy sign-LMS audio codec: a streaming
// Encoder/Decoder pair over the low-level building blocks in package codec,
// plus Encode/Decode convenience wrappers for whole in-memory buffers.
package sea

import (
	"bytes"

	"github.com/chanderlud/sea-codec/codec"
)

// Encode runs an Encoder to completion over samples (interleaved by
// channels) and returns the encoded file bytes.
func Encode(samples []int16, sampleRate uint32, channels uint8, settings codec.EncoderSettings) ([]byte, error) {
	if channels == 0 {
		return nil, codec.ErrInvalidParameters
	}

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		pcm[i*2] = byte(uint16(s))
		pcm[i*2+1] = byte(uint16(s) >> 8)
	}

	totalFrames := uint32(len(samples) / int(channels))
	reader := bytes.NewReader(pcm)
	var out bytes.Buffer

	enc, err := NewEncoder(channels, sampleRate, &totalFrames, settings, reader, &out)
	if err != nil {
		return nil, err
	}
	for {
		more, err := enc.EncodeFrame()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if err := enc.Finalize(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// DecodedAudio is the result of decoding a whole .sea file into memory.
type DecodedAudio struct {
	Samples    []int16
	SampleRate uint32
	Channels   uint8
}

// Decode runs a Decoder to completion over an encoded .sea buffer.
func Decode(encoded []byte) (DecodedAudio, error) {
	reader := bytes.NewReader(encoded)
	var out bytes.Buffer

	dec, err := NewDecoder(reader, &out)
	if err != nil {
		return DecodedAudio{}, err
	}
	for {
		more, err := dec.DecodeFrame()
		if err != nil {
			return DecodedAudio{}, err
		}
		if !more {
			break
		}
	}
	if err := dec.Finalize(); err != nil {
		return DecodedAudio{}, err
	}

	raw := out.Bytes()
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}

	header := dec.Header()
	return DecodedAudio{
		Samples:    samples,
		SampleRate: header.SampleRate,
		Channels:   header.Channels,
	}, nil
}
