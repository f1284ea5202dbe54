package similarity

import (
	"math"
	"testing"
)

func TestNew_Square(t *testing.T) {
	m, err := New([][]float64{{1, 0.5}, {0.5, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Size() != 2 {
		t.Errorf("Size() = %d", m.Size())
	}
	if m.Row(0)[1] != 0.5 {
		t.Errorf("Row(0)[1] = %v", m.Row(0)[1])
	}
	if row := m.Row(1); len(row) != 2 || row[1] != 1 {
		t.Errorf("Row(1) = %v", row)
	}
}

func TestNew_Ragged(t *testing.T) {
	if _, err := New([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestNew_Rectangular(t *testing.T) {
	if _, err := New([][]float64{{1, 2, 3}, {4, 5, 6}}); err == nil {
		t.Fatal("expected error for non-square matrix")
	}
}

func TestFromFlat(t *testing.T) {
	m, err := FromFlat(2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Row(1)[0] != 3 {
		t.Errorf("Row(1)[0] = %v", m.Row(1)[0])
	}
	if _, err := FromFlat(2, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for wrong value count")
	}
}

func TestNew_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := New([][]float64{{1, v}, {0.5, 1}}); err == nil {
			t.Errorf("expected error for cell %v", v)
		}
		if _, err := FromFlat(1, []float64{v}); err == nil {
			t.Errorf("FromFlat: expected error for cell %v", v)
		}
	}
}
