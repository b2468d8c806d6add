package codec

import "testing"

func cbrSettings() EncoderSettings {
	return EncoderSettings{
		FramesPerChunk:    100,
		ScaleFactorBits:   4,
		ScaleFactorFrames: 20,
		ResidualBits:      3.0,
		VBR:               false,
	}
}

func vbrSettings() EncoderSettings {
	return EncoderSettings{
		FramesPerChunk:    100,
		ScaleFactorBits:   4,
		ScaleFactorFrames: 20,
		ResidualBits:      3.0,
		VBR:               true,
	}
}

func genSamples(channels, frames int) []int16 {
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = int16((i*733)%20000 - 10000)
	}
	return out
}

func TestChunkCBRSerializeParseRoundTrip(t *testing.T) {
	const channels = 2
	settings := cbrSettings()
	samples := genSamples(channels, int(settings.FramesPerChunk))

	enc := NewCbrEncoder(channels, settings)
	dqt := NewDequantTab(int(settings.ScaleFactorBits))
	snapshot := enc.Snapshot()
	encoded := enc.Encode(samples, dqt)

	chunk := NewChunk(channels, settings.FramesPerChunk, snapshot, settings, encoded)
	raw := chunk.Serialize()

	remaining := int(settings.FramesPerChunk)
	parsed, err := ParseChunk(raw, channels, settings.FramesPerChunk, uint16(len(raw)), &remaining)
	if err != nil {
		t.Fatalf("ParseChunk: %v", err)
	}

	if parsed.Type != chunk.Type {
		t.Errorf("Type = %v, want %v", parsed.Type, chunk.Type)
	}
	if parsed.ScaleFactorBits != chunk.ScaleFactorBits {
		t.Errorf("ScaleFactorBits = %d, want %d", parsed.ScaleFactorBits, chunk.ScaleFactorBits)
	}
	if len(parsed.Residuals) != len(chunk.Residuals) {
		t.Fatalf("residual count = %d, want %d", len(parsed.Residuals), len(chunk.Residuals))
	}
	for i := range chunk.Residuals {
		if parsed.Residuals[i] != chunk.Residuals[i] {
			t.Errorf("residual[%d] = %d, want %d", i, parsed.Residuals[i], chunk.Residuals[i])
		}
	}

	decoded := parsed.Decode(dqt)
	if len(decoded) != len(samples) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(samples))
	}
}

func TestChunkVBRSerializeParseRoundTrip(t *testing.T) {
	const channels = 2
	settings := vbrSettings()
	samples := genSamples(channels, int(settings.FramesPerChunk))

	enc := NewVbrEncoder(channels, settings)
	dqt := NewDequantTab(int(settings.ScaleFactorBits))
	snapshot := enc.Snapshot()
	encoded := enc.Encode(samples, dqt)

	chunk := NewChunk(channels, settings.FramesPerChunk, snapshot, settings, encoded)
	raw := chunk.Serialize()

	remaining := int(settings.FramesPerChunk)
	parsed, err := ParseChunk(raw, channels, settings.FramesPerChunk, uint16(len(raw)), &remaining)
	if err != nil {
		t.Fatalf("ParseChunk: %v", err)
	}

	if parsed.Type != ChunkTypeVBR {
		t.Fatalf("Type = %v, want ChunkTypeVBR", parsed.Type)
	}
	if len(parsed.VBRResidualSizes) != len(chunk.VBRResidualSizes) {
		t.Fatalf("width count = %d, want %d", len(parsed.VBRResidualSizes), len(chunk.VBRResidualSizes))
	}
	for i := range chunk.VBRResidualSizes {
		if parsed.VBRResidualSizes[i] != chunk.VBRResidualSizes[i] {
			t.Errorf("width[%d] = %d, want %d", i, parsed.VBRResidualSizes[i], chunk.VBRResidualSizes[i])
		}
	}

	decoded := parsed.Decode(dqt)
	if len(decoded) != len(samples) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(samples))
	}
}

func TestChunkPartialFinalChunk(t *testing.T) {
	const channels = 2
	settings := cbrSettings()
	const actualFrames = 50 // shorter than FramesPerChunk=100, not a multiple of ScaleFactorFrames=20
	samples := genSamples(channels, actualFrames)

	enc := NewCbrEncoder(channels, settings)
	dqt := NewDequantTab(int(settings.ScaleFactorBits))
	snapshot := enc.Snapshot()
	encoded := enc.Encode(samples, dqt)

	chunk := NewChunk(channels, settings.FramesPerChunk, snapshot, settings, encoded)
	raw := chunk.Serialize()

	remaining := actualFrames
	parsed, err := ParseChunk(raw, channels, settings.FramesPerChunk, uint16(len(raw)), &remaining)
	if err != nil {
		t.Fatalf("ParseChunk: %v", err)
	}

	decoded := parsed.Decode(dqt)
	if len(decoded) != len(samples) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(samples))
	}
}

func TestParseChunkInvalidType(t *testing.T) {
	raw := []byte{0xFF, 0, 20, chunkSentinel}
	remaining := 100
	_, err := ParseChunk(raw, 1, 100, uint16(len(raw)), &remaining)
	if err == nil {
		t.Fatal("expected error for invalid chunk type")
	}
}
