package precision

import "testing"

func TestIsEqual(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{10, 10, true},
		{10, 10.0000000001, true},
		{10, 10.1, false},
		{0.999999999999, 1.0, true},
	}
	for _, c := range cases {
		if got := IsEqual(c.a, c.b); got != c.want {
			t.Errorf("IsEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSubtractOrZeroSnapsDust(t *testing.T) {
	got := SubtractOrZero(1.0, 0.999999999999)
	if got != 0 {
		t.Errorf("expected exact zero for dust remainder, got %v", got)
	}
}

func TestSubtractOrZeroKeepsRealRemainder(t *testing.T) {
	got := SubtractOrZero(10, 3)
	if got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestIsLessIsGreater(t *testing.T) {
	if !IsLess(9, 10) {
		t.Error("expected 9 < 10")
	}
	if IsLess(10, 10+1e-10) {
		t.Error("did not expect epsilon-scale difference to count as less")
	}
	if !IsGreater(11, 10) {
		t.Error("expected 11 > 10")
	}
}

func TestIsPositiveIsZero(t *testing.T) {
	if IsPositive(0) {
		t.Error("zero should not be positive")
	}
	if !IsPositive(1) {
		t.Error("1 should be positive")
	}
	if !IsZero(1e-12) {
		t.Error("dust-scale value should count as zero")
	}
}
