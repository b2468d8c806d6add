package codec

// EncoderSettings configures a CBR or VBR encode pass.
type EncoderSettings struct {
	// FramesPerChunk is the number of frames held by one chunk, 200..32000,
	// and must be a multiple of ScaleFactorFrames.
	FramesPerChunk uint16
	// ScaleFactorBits selects the scale-factor curve resolution, 3..5.
	ScaleFactorBits uint8
	// ScaleFactorFrames is the slice length in frames; >= 1 and divides
	// FramesPerChunk.
	ScaleFactorFrames uint8
	// ResidualBits is the target residual width: an integer 1..8 for CBR,
	// or 1.5..8.0 for VBR.
	ResidualBits float32
	// VBR toggles the variable-bit-rate path.
	VBR bool
}

// DefaultEncoderSettings mirrors the reference encoder's defaults.
func DefaultEncoderSettings() EncoderSettings {
	return EncoderSettings{
		FramesPerChunk:    5120,
		ScaleFactorBits:   4,
		ScaleFactorFrames: 20,
		ResidualBits:      3.0,
		VBR:               false,
	}
}

// Validate checks the settings against the constraints in EncoderSettings'
// field docs, returning ErrInvalidParameters on any violation.
func (s EncoderSettings) Validate() error {
	if s.FramesPerChunk < 200 || s.FramesPerChunk > 32000 {
		return ErrInvalidParameters
	}
	if s.ScaleFactorBits < 3 || s.ScaleFactorBits > 5 {
		return ErrInvalidParameters
	}
	if s.ScaleFactorFrames < 1 || s.FramesPerChunk%uint16(s.ScaleFactorFrames) != 0 {
		return ErrInvalidParameters
	}
	if s.VBR {
		if s.ResidualBits < 1.5 || s.ResidualBits > 8.0 {
			return ErrInvalidParameters
		}
	} else {
		if s.ResidualBits != float32(int(s.ResidualBits)) || s.ResidualBits < 1 || s.ResidualBits > 8 {
			return ErrInvalidParameters
		}
	}
	return nil
}

// BaseResidualSize is the ResidualSize a chunk header reports: floor of
// ResidualBits for CBR; for VBR, floor of the normalized target bitrate, the
// base width b that the per-slice widths {b-1, b, b+1, b+2} vary around.
func (s EncoderSettings) BaseResidualSize() ResidualSize {
	if s.VBR {
		return ResidualSizeFromBits(int(normalizedVbrBitrate(s)))
	}
	return ResidualSizeFromBits(int(s.ResidualBits))
}
