package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestFileHeaderSerializeReadRoundTrip(t *testing.T) {
	h := &FileHeader{
		Version:        1,
		Channels:       2,
		ChunkSize:      4096,
		FramesPerChunk: 5120,
		SampleRate:     44100,
		TotalFrames:    123456,
		Metadata:       "hello world",
	}

	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := ReadFileHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadFileHeader: %v", err)
	}

	if *got != *h {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, *h)
	}
}

func TestFileHeaderEmptyMetadataRoundTrip(t *testing.T) {
	h := &FileHeader{Version: 1, Channels: 1, ChunkSize: 10, FramesPerChunk: 200, SampleRate: 8000, TotalFrames: 0}
	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := ReadFileHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadFileHeader: %v", err)
	}
	if got.Metadata != "" {
		t.Errorf("Metadata = %q, want empty", got.Metadata)
	}
}

func TestReadFileHeaderRejectsBadMagic(t *testing.T) {
	h := &FileHeader{Version: 1, Channels: 1, ChunkSize: 10, FramesPerChunk: 200, SampleRate: 8000}
	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	raw[0] = 'x'

	_, err = ReadFileHeader(bytes.NewReader(raw))
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("got %v, want ErrInvalidFile", err)
	}
}

func TestReadFileHeaderRejectsUnsupportedVersion(t *testing.T) {
	h := &FileHeader{Version: 2, Channels: 1, ChunkSize: 10, FramesPerChunk: 200, SampleRate: 8000}
	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err = ReadFileHeader(bytes.NewReader(raw))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestReadFileHeaderRejectsTooManyChannels(t *testing.T) {
	h := &FileHeader{Version: 1, Channels: 9, ChunkSize: 10, FramesPerChunk: 200, SampleRate: 8000}
	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err = ReadFileHeader(bytes.NewReader(raw))
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("got %v, want ErrInvalidFile", err)
	}
}

func TestFileHeaderMetadataTooLarge(t *testing.T) {
	h := &FileHeader{Version: 1, Channels: 1, Metadata: string(make([]byte, 1<<16))}
	_, err := h.Serialize()
	if !errors.Is(err, ErrMetadataTooLarge) {
		t.Errorf("got %v, want ErrMetadataTooLarge", err)
	}
}

func TestReadFileHeaderShortInput(t *testing.T) {
	_, err := ReadFileHeader(bytes.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, ErrRead) {
		t.Errorf("got %v, want ErrRead", err)
	}
}
