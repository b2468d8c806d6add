package codec

import "testing"

func TestDequantTabBoundedByInt16Range(t *testing.T) {
	for scaleFactorBits := 3; scaleFactorBits <= 5; scaleFactorBits++ {
		d := NewDequantTab(scaleFactorBits)
		for residualBits := 1; residualBits <= 8; residualBits++ {
			table := d.Get(residualBits)
			for sf, row := range table {
				for code, v := range row {
					if v < -32768 || v > 32767 {
						t.Errorf("scaleFactorBits=%d residualBits=%d sf=%d code=%d: value %d out of int16 range", scaleFactorBits, residualBits, sf, code, v)
					}
				}
			}
		}
	}
}

func TestDequantTabRowCountMatchesScaleFactorBits(t *testing.T) {
	for scaleFactorBits := 3; scaleFactorBits <= 5; scaleFactorBits++ {
		d := NewDequantTab(scaleFactorBits)
		table := d.Get(3)
		want := 1 << uint(scaleFactorBits)
		if len(table) != want {
			t.Errorf("scaleFactorBits=%d: got %d scale factor rows, want %d", scaleFactorBits, len(table), want)
		}
	}
}

func TestDequantTabColumnCountMatchesResidualBits(t *testing.T) {
	d := NewDequantTab(4)
	for residualBits := 1; residualBits <= 8; residualBits++ {
		table := d.Get(residualBits)
		want := 1 << uint(residualBits)
		if len(table[0]) != want {
			t.Errorf("residualBits=%d: got %d codes per row, want %d", residualBits, len(table[0]), want)
		}
	}
}

func TestDequantTabInvalidatesOnScaleFactorBitsChange(t *testing.T) {
	d := NewDequantTab(4)
	_ = d.Get(3)
	table := d.GetWithScaleFactorBits(5, 3)
	if len(table) != 1<<5 {
		t.Fatalf("after switching scaleFactorBits to 5, got %d rows, want %d", len(table), 1<<5)
	}
	if d.ScaleFactorBits() != 5 {
		t.Errorf("ScaleFactorBits() = %d, want 5", d.ScaleFactorBits())
	}
}

func TestScaleFactorReciprocalsPositive(t *testing.T) {
	recips := ScaleFactorReciprocals(4, 3)
	for i, r := range recips {
		if r <= 0 {
			t.Errorf("reciprocal[%d] = %d, want > 0", i, r)
		}
	}
}

func TestQuantizeMidpointIsZero(t *testing.T) {
	for k := ResidualSize(1); k <= 8; k++ {
		if got := quantize(k, 0); got != 0 {
			t.Errorf("quantize(%d, 0) = %d, want 0", k, got)
		}
	}
}
