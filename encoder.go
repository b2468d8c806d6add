package sea

import (
	"encoding/binary"
	"io"

	"github.com/chanderlud/sea-codec/codec"
	"github.com/mewkiz/pkg/errutil"
)

// encoderState is the lifecycle of a streaming Encoder: Start (no chunk
// written yet, file header not yet flushed), WritingFrames (header flushed,
// zero or more chunks written), Finished (EOF seen, no further frames
// accepted).
type encoderState int

const (
	encoderStart encoderState = iota
	encoderWritingFrames
	encoderFinished
)

type chunkEncoder interface {
	Encode(samples []int16, dequantTab *codec.DequantTab) codec.EncodedSamples
	Snapshot() []codec.LMSPredictor
}

// Encoder pumps PCM frames from reader to chunks on writer, one
// EncodeFrame call at a time, deferring the file header until the first
// chunk's encoded length is known.
type Encoder struct {
	reader   io.Reader
	writer   io.Writer
	header   codec.FileHeader
	settings codec.EncoderSettings
	enc      chunkEncoder
	dqt      *codec.DequantTab
	state    encoderState

	writtenFrames uint32
}

// NewEncoder configures an Encoder for channels-interleaved 16-bit PCM at
// sampleRate. totalFrames nil means the caller does not know (or does not
// want to declare) how many frames will follow; the file header is then
// deferred until the first chunk is built, which still determines
// chunk_size correctly. A non-nil totalFrames pointing at 0 forces the file
// header to be written immediately (useful for a live producer where
// nothing may be buffered before the consumer starts reading) at the cost
// of chunk_size staying 0 for the life of the stream.
func NewEncoder(channels uint8, sampleRate uint32, totalFrames *uint32, settings codec.EncoderSettings, r io.Reader, w io.Writer) (*Encoder, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if channels == 0 || int(channels) > codec.SeaMaxChannels {
		return nil, codec.ErrInvalidParameters
	}

	header := codec.FileHeader{
		Version:        1,
		Channels:       channels,
		ChunkSize:      0,
		FramesPerChunk: settings.FramesPerChunk,
		SampleRate:     sampleRate,
		TotalFrames:    0,
	}
	if totalFrames != nil {
		header.TotalFrames = *totalFrames
	}

	var enc chunkEncoder
	if settings.VBR {
		enc = codec.NewVbrEncoder(int(channels), settings)
	} else {
		enc = codec.NewCbrEncoder(int(channels), settings)
	}

	e := &Encoder{
		reader:   r,
		writer:   w,
		header:   header,
		settings: settings,
		enc:      enc,
		dqt:      codec.NewDequantTab(int(settings.ScaleFactorBits)),
		state:    encoderStart,
	}

	if totalFrames != nil && *totalFrames == 0 {
		raw, err := e.header.Serialize()
		if err != nil {
			return nil, err
		}
		if _, err := e.writer.Write(raw); err != nil {
			return nil, errutil.Err(err)
		}
		e.state = encoderWritingFrames
	}

	return e, nil
}

// readMaxOrZero reads up to n bytes from r, stopping early at EOF without
// treating it as an error; it returns fewer than n bytes only at EOF.
func readMaxOrZero(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := r.Read(buf[read:])
		read += m
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if m == 0 {
			break
		}
	}
	return buf[:read], nil
}

func (e *Encoder) readSamples(maxSampleCount int) ([]int16, error) {
	buf, err := readMaxOrZero(e.reader, maxSampleCount*2)
	if err != nil {
		return nil, codec.ErrRead
	}
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf)%(2*int(e.header.Channels)) != 0 {
		return nil, codec.ErrInvalidFrame
	}

	samples := make([]int16, len(buf)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return samples, nil
}

// EncodeFrame reads and encodes up to one chunk's worth of PCM. It returns
// true if more frames may follow (call it again), false once the input is
// exhausted. It returns ErrEncoderClosed if called after a prior call
// returned false.
func (e *Encoder) EncodeFrame() (bool, error) {
	if e.state == encoderFinished {
		return false, codec.ErrEncoderClosed
	}

	channels := int(e.header.Channels)
	frames := int(e.header.FramesPerChunk)
	if e.header.TotalFrames > 0 {
		remaining := int(e.header.TotalFrames) - int(e.writtenFrames)
		if remaining < frames {
			frames = remaining
		}
	}

	fullSizeSamples := int(e.header.FramesPerChunk) * channels
	samples, err := e.readSamples(frames * channels)
	if err != nil {
		return false, err
	}
	eof := len(samples) == 0 || len(samples) < fullSizeSamples

	if len(samples) > 0 {
		snapshot := e.enc.Snapshot()
		encoded := e.enc.Encode(samples, e.dqt)
		chunk := codec.NewChunk(channels, e.header.FramesPerChunk, snapshot, e.settings, encoded)
		payload := chunk.Serialize()

		if e.state == encoderStart {
			e.header.ChunkSize = uint16(len(payload))
			raw, err := e.header.Serialize()
			if err != nil {
				return false, err
			}
			if _, err := e.writer.Write(raw); err != nil {
				return false, errutil.Err(err)
			}
			e.state = encoderWritingFrames
		}

		if _, err := e.writer.Write(payload); err != nil {
			return false, errutil.Err(err)
		}
		e.writtenFrames += uint32(len(samples) / channels)
	}

	if eof {
		e.state = encoderFinished
	}
	return !eof, nil
}

// flusher is satisfied by writers that buffer output (bufio.Writer and
// similar); Flush and Finalize use it opportunistically.
type flusher interface {
	Flush() error
}

// Flush flushes the underlying writer if it supports it, discarding any
// error; Finalize is the error-checked equivalent.
func (e *Encoder) Flush() {
	if f, ok := e.writer.(flusher); ok {
		_ = f.Flush()
	}
}

// Finalize flushes the underlying writer and marks the encoder finished.
func (e *Encoder) Finalize() error {
	if f, ok := e.writer.(flusher); ok {
		if err := f.Flush(); err != nil {
			return errutil.Err(err)
		}
	}
	e.state = encoderFinished
	return nil
}
