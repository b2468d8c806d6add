package sea

import (
	"encoding/binary"
	"io"

	"github.com/chanderlud/sea-codec/codec"
	"github.com/chanderlud/sea-codec/internal/bufseekio"
	"github.com/mewkiz/pkg/errutil"
)

// Decoder pulls chunks from reader, decodes them to interleaved 16-bit PCM
// and writes the result to writer, one DecodeFrame call at a time.
type Decoder struct {
	reader io.Reader
	writer io.Writer
	header codec.FileHeader
	dqt    *codec.DequantTab
	seeker io.Seeker // non-nil when the source supports Seek, for SeekToChunk

	framesRead int
}

// NewDecoder reads and validates the file header from r, then returns a
// Decoder ready to pull chunks.
func NewDecoder(r io.Reader, w io.Writer) (*Decoder, error) {
	header, err := codec.ReadFileHeader(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		reader: r,
		writer: w,
		header: *header,
		dqt:    codec.NewDequantTab(0),
	}, nil
}

// NewSeekableDecoder is like NewDecoder but additionally enables
// SeekToChunk by buffering reads through bufseekio, which keeps seeks
// cheap when r is backed by an *os.File or similar unbuffered ReadSeeker.
func NewSeekableDecoder(r io.ReadSeeker, w io.Writer) (*Decoder, error) {
	rs := bufseekio.NewReadSeeker(r)
	d, err := NewDecoder(rs, w)
	if err != nil {
		return nil, err
	}
	d.seeker = rs
	return d, nil
}

// SeekToChunk repositions the decoder at the start of the given chunk
// index, resuming DecodeFrame from that chunk's first frame. It requires a
// constant chunk_size (every chunk but possibly the last is ChunkSize
// bytes) and a Decoder built with NewSeekableDecoder; seeking to a frame
// inside a chunk is not supported, matching the format's chunk-granular
// framing.
func (d *Decoder) SeekToChunk(chunkIndex uint32) error {
	if d.seeker == nil {
		return codec.ErrInvalidParameters
	}
	if d.header.ChunkSize == 0 {
		return codec.ErrInvalidParameters
	}

	offset := d.header.ByteSize() + int64(chunkIndex)*int64(d.header.ChunkSize)
	if _, err := d.seeker.Seek(offset, io.SeekStart); err != nil {
		return errutil.Err(err)
	}

	d.framesRead = int(chunkIndex) * int(d.header.FramesPerChunk)
	return nil
}

// readChunkBytes reads one chunk's worth of raw bytes. When chunk_size is
// known it reads exactly that many bytes, tolerating a short final read at
// true EOF. A chunk_size of 0 only occurs when the producer forced an
// immediate header write before any chunk existed (see NewEncoder); there is
// no reliable per-chunk boundary in that mode, so the whole remainder of the
// stream is read as a single final chunk.
func (d *Decoder) readChunkBytes() ([]byte, error) {
	if d.header.ChunkSize == 0 {
		buf, err := io.ReadAll(d.reader)
		if err != nil {
			return nil, codec.ErrRead
		}
		return buf, nil
	}

	buf := make([]byte, d.header.ChunkSize)
	n, err := io.ReadFull(d.reader, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return buf[:n], nil
		}
		return nil, codec.ErrRead
	}
	return buf[:n], nil
}

// DecodeFrame decodes and writes one chunk. It returns false once
// total_frames (if known) is reached or the input is exhausted.
func (d *Decoder) DecodeFrame() (bool, error) {
	if d.header.TotalFrames != 0 && int(d.header.TotalFrames) <= d.framesRead {
		return false, nil
	}

	var remaining *int
	if d.header.TotalFrames > 0 {
		r := int(d.header.TotalFrames) - d.framesRead
		remaining = &r
	}

	raw, err := d.readChunkBytes()
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}

	chunkSize := d.header.ChunkSize
	if chunkSize == 0 {
		chunkSize = uint16(len(raw))
	}

	chunk, err := codec.ParseChunk(raw, int(d.header.Channels), d.header.FramesPerChunk, chunkSize, remaining)
	if err != nil {
		return false, err
	}

	samples := chunk.Decode(d.dqt)
	d.framesRead += len(samples) / int(d.header.Channels)

	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	if _, err := d.writer.Write(out); err != nil {
		return false, errutil.Err(err)
	}

	return true, nil
}

// Flush flushes the underlying writer if it supports it, discarding any
// error; Finalize is the error-checked equivalent.
func (d *Decoder) Flush() {
	if f, ok := d.writer.(flusher); ok {
		_ = f.Flush()
	}
}

// Finalize flushes the underlying writer.
func (d *Decoder) Finalize() error {
	if f, ok := d.writer.(flusher); ok {
		if err := f.Flush(); err != nil {
			return errutil.Err(err)
		}
	}
	return nil
}

// Header returns the decoded file header.
func (d *Decoder) Header() codec.FileHeader {
	return d.header
}
