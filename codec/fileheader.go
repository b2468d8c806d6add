package codec

import (
	"encoding/binary"
	"io"
)

var magic = [4]byte{'s', 'e', 'a', 'c'}

const fileVersion = 1

// FileHeader is the fixed-size prefix of a .sea file plus its variable
// metadata tail. ChunkSize is captured from the first emitted chunk's
// encoded length; every later non-final chunk must match it.
type FileHeader struct {
	Version        uint8
	Channels       uint8
	ChunkSize      uint16
	FramesPerChunk uint16
	SampleRate     uint32
	TotalFrames    uint32 // 0 => unknown/streaming
	Metadata       string
}

// fixedHeaderSize is magic(4) + version(1) + channels(1) + chunk_size(2) +
// frames_per_chunk(2) + sample_rate(4) + total_frames(4) + metadata_length(2).
const fixedHeaderSize = 20

// ByteSize returns the total encoded length of the header, fixed prefix
// plus metadata, i.e. the byte offset of the first chunk in the file.
func (h *FileHeader) ByteSize() int64 {
	return int64(fixedHeaderSize) + int64(len(h.Metadata))
}

// Serialize writes the fixed header plus metadata, per the external byte
// layout: big-endian magic, then little-endian multi-byte fields, each
// immediately following the previous with no padding.
func (h *FileHeader) Serialize() ([]byte, error) {
	if len(h.Metadata) > 0xFFFF {
		return nil, ErrMetadataTooLarge
	}

	out := make([]byte, fixedHeaderSize+len(h.Metadata))
	copy(out[0:4], magic[:])
	out[4] = h.Version
	out[5] = h.Channels
	binary.LittleEndian.PutUint16(out[6:8], h.ChunkSize)
	binary.LittleEndian.PutUint16(out[8:10], h.FramesPerChunk)
	binary.LittleEndian.PutUint32(out[10:14], h.SampleRate)
	binary.LittleEndian.PutUint32(out[14:18], h.TotalFrames)
	binary.LittleEndian.PutUint16(out[18:20], uint16(len(h.Metadata)))
	copy(out[20:], h.Metadata)
	return out, nil
}

// ReadFileHeader reads and validates the fixed header and metadata from r.
func ReadFileHeader(r io.Reader) (*FileHeader, error) {
	fixed := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, wrapIO(ErrRead, err)
	}

	if fixed[0] != magic[0] || fixed[1] != magic[1] || fixed[2] != magic[2] || fixed[3] != magic[3] {
		return nil, ErrInvalidFile
	}

	h := &FileHeader{
		Version:        fixed[4],
		Channels:       fixed[5],
		ChunkSize:      binary.LittleEndian.Uint16(fixed[6:8]),
		FramesPerChunk: binary.LittleEndian.Uint16(fixed[8:10]),
		SampleRate:     binary.LittleEndian.Uint32(fixed[10:14]),
		TotalFrames:    binary.LittleEndian.Uint32(fixed[14:18]),
	}

	if h.Version != fileVersion {
		return nil, ErrUnsupportedVersion
	}
	if h.Channels == 0 || h.Channels > SeaMaxChannels {
		return nil, ErrInvalidFile
	}

	metadataLen := binary.LittleEndian.Uint16(fixed[18:20])
	if metadataLen > 0 {
		buf := make([]byte, metadataLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, wrapIO(ErrRead, err)
		}
		h.Metadata = string(buf)
	}

	return h, nil
}
