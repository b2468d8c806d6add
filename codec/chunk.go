package codec

// ChunkType distinguishes a constant-bit-rate chunk from a variable-bit-rate
// one; it is the first byte of a serialized chunk.
type ChunkType byte

const (
	ChunkTypeCBR ChunkType = 0x01
	ChunkTypeVBR ChunkType = 0x02
)

const chunkSentinel = 0x5A

// Chunk is the atomic, independently decodable container unit: a predictor
// snapshot per channel, packed scale factors, (VBR only) packed per-slice
// residual-width deltas, and packed residuals.
type Chunk struct {
	Channels          int
	FramesPerChunk    uint16
	Type              ChunkType
	ScaleFactorBits   uint8
	ScaleFactorFrames uint8
	ResidualSize      ResidualSize

	LMS []LMSPredictor

	ScaleFactors     []byte
	VBRResidualSizes []byte // absolute widths, one per (slice, channel); empty for CBR
	Residuals        []byte // one code per (frame, channel), interleaved
}

// NewChunk assembles a chunk from one encoder's output for this chunk's
// worth of samples.
func NewChunk(channels int, framesPerChunk uint16, lms []LMSPredictor, settings EncoderSettings, encoded EncodedSamples) *Chunk {
	isVBR := len(encoded.ResidualBits) > 0
	chunkType := ChunkTypeCBR
	if isVBR {
		chunkType = ChunkTypeVBR
	}

	lmsCopy := make([]LMSPredictor, len(lms))
	copy(lmsCopy, lms)

	return &Chunk{
		Channels:          channels,
		FramesPerChunk:    framesPerChunk,
		Type:              chunkType,
		ScaleFactorBits:   settings.ScaleFactorBits,
		ScaleFactorFrames: settings.ScaleFactorFrames,
		ResidualSize:      settings.BaseResidualSize(),
		LMS:               lmsCopy,
		ScaleFactors:      encoded.ScaleFactors,
		VBRResidualSizes:  encoded.ResidualBits,
		Residuals:         encoded.Residuals,
	}
}

func divCeil(a, b int) int {
	return (a + b - 1) / b
}

// ParseChunk reverses Serialize. remainingFrames, when known, bounds how
// many frames this chunk may hold (the terminal chunk may be shorter than
// framesPerChunk); nil means streaming mode, where a short chunk is only
// legal if it is truly the last one in the stream (the caller detects that
// via EOF on the next read).
func ParseChunk(encoded []byte, channels int, framesPerChunk uint16, chunkSize uint16, remainingFrames *int) (*Chunk, error) {
	if len(encoded) > int(chunkSize) {
		return nil, ErrInvalidFile
	}
	if remainingFrames == nil && len(encoded) < int(chunkSize) {
		return nil, ErrInvalidFrame
	}

	var chunkType ChunkType
	switch encoded[0] {
	case byte(ChunkTypeCBR):
		chunkType = ChunkTypeCBR
	case byte(ChunkTypeVBR):
		chunkType = ChunkTypeVBR
	default:
		return nil, ErrInvalidFile
	}

	scaleFactorBits := encoded[1] >> 4
	residualSize := ResidualSize(encoded[1] & 0b1111)
	scaleFactorFrames := encoded[2]
	// encoded[3] is the 0x5A sentinel; not otherwise checked.

	idx := 4
	lms := make([]LMSPredictor, channels)
	for c := 0; c < channels; c++ {
		lms[c] = LMSFromBytes(encoded[idx : idx+LMSLen*4])
		idx += LMSLen * 4
	}

	maxFrames := int(framesPerChunk)
	if remainingFrames != nil && *remainingFrames < maxFrames {
		maxFrames = *remainingFrames
	}
	framesInChunk := maxFrames

	scaleFactorItems := divCeil(framesInChunk, int(scaleFactorFrames)) * channels

	scaleFactors := func() []byte {
		packedBytes := divCeil(scaleFactorItems*int(scaleFactorBits), 8)
		packed := encoded[idx : idx+packedBytes]
		idx += packedBytes

		u := NewBitUnpackerConstBits(scaleFactorBits)
		u.ProcessBytes(packed)
		res := u.Finish()
		return resizeBytes(res, scaleFactorItems)
	}()

	var vbrResidualSizes []byte
	if chunkType == ChunkTypeVBR {
		packedBytes := divCeil(scaleFactorItems*2, 8)
		packed := encoded[idx : idx+packedBytes]
		idx += packedBytes

		u := NewBitUnpackerConstBits(2)
		u.ProcessBytes(packed)
		res := resizeBytes(u.Finish(), scaleFactorItems)
		for i := range res {
			res[i] += byte(residualSize) - 1
		}
		vbrResidualSizes = res
	}

	var residuals []byte
	{
		var unpacker *BitUnpacker
		var packedBytes int

		if chunkType == ChunkTypeVBR {
			bitlengths := make([]byte, 0, framesInChunk*channels)
			for sliceStart := 0; sliceStart < len(vbrResidualSizes); sliceStart += channels {
				vbrSlice := vbrResidualSizes[sliceStart : sliceStart+channels]
				for f := 0; f < int(scaleFactorFrames); f++ {
					bitlengths = append(bitlengths, vbrSlice...)
				}
			}
			if len(bitlengths) > framesInChunk*channels {
				bitlengths = bitlengths[:framesInChunk*channels]
			}
			unpacker = NewBitUnpackerVarBits(bitlengths)

			var residualBitsTotal int
			full := vbrResidualSizes[:len(vbrResidualSizes)-channels]
			for _, b := range full {
				residualBitsTotal += int(b)
			}
			residualBitsTotal *= int(scaleFactorFrames)

			lastFrames := framesInChunk % int(scaleFactorFrames)
			multiplier := int(scaleFactorFrames)
			if lastFrames != 0 {
				multiplier = lastFrames
			}
			for _, b := range vbrResidualSizes[len(vbrResidualSizes)-channels:] {
				residualBitsTotal += int(b) * multiplier
			}
			packedBytes = divCeil(residualBitsTotal, 8)
		} else {
			unpacker = NewBitUnpackerConstBits(uint8(residualSize))
			packedBytes = divCeil(framesInChunk*int(residualSize)*channels, 8)
		}

		packed := encoded[idx : idx+packedBytes]
		idx += packedBytes
		unpacker.ProcessBytes(packed)
		residuals = resizeBytes(unpacker.Finish(), framesInChunk*channels)
	}

	return &Chunk{
		Channels:          channels,
		FramesPerChunk:    framesPerChunk,
		Type:              chunkType,
		ScaleFactorBits:   scaleFactorBits,
		ScaleFactorFrames: scaleFactorFrames,
		ResidualSize:      residualSize,
		LMS:               lms,
		ScaleFactors:      scaleFactors,
		VBRResidualSizes:  vbrResidualSizes,
		Residuals:         residuals,
	}, nil
}

func resizeBytes(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Decode reverses the predictor/dequantizer over every residual, returning
// interleaved PCM identical in shape to what was encoded.
func (c *Chunk) Decode(dequantTab *DequantTab) []int16 {
	output := make([]int16, 0, int(c.FramesPerChunk)*c.Channels)

	lms := make([]LMSPredictor, len(c.LMS))
	copy(lms, c.LMS)

	var dqts [9][][]int32
	for k := 1; k <= 8; k++ {
		dqts[k] = dequantTab.GetWithScaleFactorBits(int(c.ScaleFactorBits), k)
	}

	for frameIndex := 0; frameIndex*c.Channels < len(c.Residuals); frameIndex++ {
		scaleFactorIndex := (frameIndex / int(c.ScaleFactorFrames)) * c.Channels

		for channel := 0; channel < c.Channels; channel++ {
			residual := c.Residuals[frameIndex*c.Channels+channel]

			var residualSize ResidualSize
			if c.Type == ChunkTypeVBR {
				residualSize = ResidualSize(c.VBRResidualSizes[scaleFactorIndex+channel])
			} else {
				residualSize = c.ResidualSize
			}

			scaleFactor := c.ScaleFactors[scaleFactorIndex+channel]

			predicted := lms[channel].Predict()
			dequantized := dqts[residualSize][scaleFactor][residual]
			reconstructed := clamp16(predicted + dequantized)

			output = append(output, reconstructed)
			lms[channel].Update(reconstructed, dequantized)
		}
	}

	return output
}

func (c *Chunk) serializeHeader() [4]byte {
	return [4]byte{
		byte(c.Type),
		(c.ScaleFactorBits << 4) | byte(c.ResidualSize),
		c.ScaleFactorFrames,
		chunkSentinel,
	}
}

func (c *Chunk) serializeLMS() []byte {
	out := make([]byte, 0, len(c.LMS)*LMSLen*4)
	for i := range c.LMS {
		out = append(out, c.LMS[i].Serialize()...)
	}
	return out
}

func (c *Chunk) serializeScaleFactors() []byte {
	p := NewBitPacker()
	for _, sf := range c.ScaleFactors {
		p.Push(uint32(sf), c.ScaleFactorBits)
	}
	return p.Finish()
}

func (c *Chunk) serializeVBRResidualSizes() []byte {
	p := NewBitPacker()
	for _, rs := range c.VBRResidualSizes {
		relative := int32(rs) - int32(c.ResidualSize) + 1
		p.Push(uint32(relative), 2)
	}
	return p.Finish()
}

func (c *Chunk) serializeResiduals() []byte {
	p := NewBitPacker()
	if c.Type == ChunkTypeVBR {
		vbrIndex := 0
		framesSinceUpdate := 0
		for frameStart := 0; frameStart < len(c.Residuals); frameStart += c.Channels {
			for channel := 0; channel < c.Channels; channel++ {
				p.Push(uint32(c.Residuals[frameStart+channel]), c.VBRResidualSizes[vbrIndex+channel])
			}
			framesSinceUpdate++
			if framesSinceUpdate == int(c.ScaleFactorFrames) {
				vbrIndex += c.Channels
				framesSinceUpdate = 0
			}
		}
	} else {
		for _, r := range c.Residuals {
			p.Push(uint32(r), uint8(c.ResidualSize))
		}
	}
	return p.Finish()
}

// Serialize produces the byte-exact chunk encoding described in the file
// format: header, LMS snapshot, packed scale factors, (VBR) packed width
// deltas, packed residuals.
func (c *Chunk) Serialize() []byte {
	header := c.serializeHeader()
	out := make([]byte, 0, len(header)+len(c.LMS)*LMSLen*4+len(c.Residuals))
	out = append(out, header[:]...)
	out = append(out, c.serializeLMS()...)
	out = append(out, c.serializeScaleFactors()...)
	if c.Type == ChunkTypeVBR {
		out = append(out, c.serializeVBRResidualSizes()...)
	}
	out = append(out, c.serializeResiduals()...)
	return out
}
