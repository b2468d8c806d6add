package codec

import "testing"

func TestBitPackerConstWidthRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 3, 7, 15, 31, 63, 127, 255, 1, 0, 9}
	const width = 8

	p := NewBitPacker()
	for _, v := range values {
		p.Push(v, width)
	}
	packed := p.Finish()

	u := NewBitUnpackerConstBits(width)
	u.ProcessBytes(packed)
	got := u.Finish()

	if len(got) != len(values) {
		t.Fatalf("got %d symbols, want %d", len(got), len(values))
	}
	for i, v := range values {
		if uint32(got[i]) != v {
			t.Errorf("symbol %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestBitPackerNarrowWidthRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 3, 0, 3, 1}
	const width = 2

	p := NewBitPacker()
	for _, v := range values {
		p.Push(v, width)
	}
	packed := p.Finish()

	u := NewBitUnpackerConstBits(width)
	u.ProcessBytes(packed)
	got := u.Finish()

	for i, v := range values {
		if uint32(got[i]) != v {
			t.Errorf("symbol %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestBitPackerVarWidthRoundTrip(t *testing.T) {
	widths := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	values := []uint32{1, 3, 5, 9, 17, 33, 65, 129}

	p := NewBitPacker()
	for i, v := range values {
		p.Push(v, widths[i])
	}
	packed := p.Finish()

	u := NewBitUnpackerVarBits(widths)
	u.ProcessBytes(packed)
	got := u.Finish()

	if len(got) != len(values) {
		t.Fatalf("got %d symbols, want %d", len(got), len(values))
	}
	for i, v := range values {
		if uint32(got[i]) != v {
			t.Errorf("symbol %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestBitUnpackerEmptyInput(t *testing.T) {
	u := NewBitUnpackerConstBits(4)
	u.ProcessBytes(nil)
	if got := u.Finish(); len(got) != 0 {
		t.Errorf("expected no symbols from empty input, got %v", got)
	}
}
