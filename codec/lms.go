package codec

import "encoding/binary"

// LMSPredictor is a per-channel 4-tap sign-LMS adaptive predictor. Every
// chunk embeds a full snapshot of one of these per channel, so a decoder
// never needs to replay earlier chunks to resynchronize.
type LMSPredictor struct {
	History [LMSLen]int16
	Weights [LMSLen]int16
}

// NewLMSPredictor returns the conventional fresh-stream seed: zero history
// and weights [0, 0, 0, 1<<14]. The decoder never depends on this value
// directly since every chunk carries its own snapshot; only the encoder
// seeds a fresh stream with it and then carries state across chunks.
func NewLMSPredictor() LMSPredictor {
	return LMSPredictor{
		Weights: [LMSLen]int16{0, 0, 0, 1 << 14},
	}
}

// Predict returns the next sample estimate from the current history and
// weights.
func (l *LMSPredictor) Predict() int32 {
	var sum int32
	for i := 0; i < LMSLen; i++ {
		sum += int32(l.Weights[i]) * int32(l.History[i])
	}
	return sum >> 13
}

// Update adjusts weights from the dequantized residual and slides
// reconstructed into history.
func (l *LMSPredictor) Update(reconstructed int16, dequantized int32) {
	step := int16(dequantized >> 4)
	for i := 0; i < LMSLen; i++ {
		l.Weights[i] += int16(signI32(int32(l.History[i]))) * step
	}
	copy(l.History[:LMSLen-1], l.History[1:])
	l.History[LMSLen-1] = reconstructed
}

// WeightsPenalty is added to a candidate's rank during scale-factor search
// to discourage runaway weights.
func (l *LMSPredictor) WeightsPenalty() uint64 {
	var sum int64
	for _, w := range l.Weights {
		sum += int64(w) * int64(w)
	}
	return uint64(sum) >> 18
}

// Serialize writes the 16-byte big-endian encoding: 4 history then 4
// weights i16 values.
func (l *LMSPredictor) Serialize() []byte {
	out := make([]byte, LMSLen*4)
	for i, h := range l.History {
		binary.BigEndian.PutUint16(out[i*2:], uint16(h))
	}
	for i, w := range l.Weights {
		binary.BigEndian.PutUint16(out[LMSLen*2+i*2:], uint16(w))
	}
	return out
}

// LMSFromBytes parses the 16-byte serialization produced by Serialize.
func LMSFromBytes(b []byte) LMSPredictor {
	var l LMSPredictor
	for i := 0; i < LMSLen; i++ {
		l.History[i] = int16(binary.BigEndian.Uint16(b[i*2:]))
	}
	for i := 0; i < LMSLen; i++ {
		l.Weights[i] = int16(binary.BigEndian.Uint16(b[LMSLen*2+i*2:]))
	}
	return l
}

// NewLMSPredictors returns channels fresh predictors, each seeded per
// NewLMSPredictor.
func NewLMSPredictors(channels int) []LMSPredictor {
	lms := make([]LMSPredictor, channels)
	for i := range lms {
		lms[i] = NewLMSPredictor()
	}
	return lms
}
