package codec

import "testing"

func TestLMSPredictorFreshSeed(t *testing.T) {
	l := NewLMSPredictor()
	want := [LMSLen]int16{0, 0, 0, 1 << 14}
	if l.Weights != want {
		t.Errorf("fresh weights = %v, want %v", l.Weights, want)
	}
	if l.History != ([LMSLen]int16{}) {
		t.Errorf("fresh history = %v, want zero", l.History)
	}
	if got := l.Predict(); got != 0 {
		t.Errorf("fresh Predict() = %d, want 0", got)
	}
}

func TestLMSPredictorSerializeRoundTrip(t *testing.T) {
	l := NewLMSPredictor()
	l.Update(1234, 5678)
	l.Update(-200, -40)

	b := l.Serialize()
	if len(b) != LMSLen*4 {
		t.Fatalf("serialized length = %d, want %d", len(b), LMSLen*4)
	}

	got := LMSFromBytes(b)
	if got != l {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, l)
	}
}

func TestLMSPredictorDeterministic(t *testing.T) {
	a := NewLMSPredictor()
	b := NewLMSPredictor()

	residuals := []struct {
		reconstructed int16
		dequantized   int32
	}{
		{100, 50}, {-100, -30}, {0, 0}, {32767, 1000}, {-32768, -1000},
	}

	for _, r := range residuals {
		a.Update(r.reconstructed, r.dequantized)
		b.Update(r.reconstructed, r.dequantized)
	}

	if a != b {
		t.Fatalf("two identically-seeded predictors diverged: %+v vs %+v", a, b)
	}
}

func TestLMSPredictorWeightsPenaltyMatchesWeights(t *testing.T) {
	l := NewLMSPredictor()
	for i := 0; i < 100; i++ {
		l.Update(int16(i*37), int32(i*91))
	}
	var want uint64
	{
		var sum int64
		for _, w := range l.Weights {
			sum += int64(w) * int64(w)
		}
		want = uint64(sum) >> 18
	}
	if got := l.WeightsPenalty(); got != want {
		t.Errorf("WeightsPenalty() = %d, want %d", got, want)
	}
}
