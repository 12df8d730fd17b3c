package cbor

import (
	"math"
	"testing"
)

func TestIntegerAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Integer
		want Integer
	}{
		{"same_sign_positive", Positive(3), Positive(4), Positive(7)},
		{"same_sign_negative", Negative(3), Negative(4), Negative(7)},
		{"opposite_larger_positive", Positive(10), Negative(3), Positive(7)},
		{"opposite_larger_negative", Positive(3), Negative(10), Negative(7)},
		{"cancels_to_zero", Positive(5), Negative(5), Positive(0)},
		{"negative_cancels_to_zero", Negative(5), Positive(5), Positive(0)},
		{"wraps", Positive(math.MaxUint64), Positive(1), Positive(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Add(tt.b)
			if !got.Equal(tt.want) {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIntegerZeroAlwaysPositive(t *testing.T) {
	// I-A1: an arithmetic result with magnitude 0 is never IsNegative.
	got := Positive(4).Add(Negative(4))
	if got.Value != 0 || got.IsNegative {
		t.Errorf("zero result should normalize to Positive(0), got %+v", got)
	}

	// A direct Negative(0), by contrast, denotes -1 and keeps its sign.
	direct := Negative(0)
	if !direct.IsNegative {
		t.Errorf("Negative(0) should keep IsNegative true (denotes -1)")
	}
}

func TestIntegerNeg(t *testing.T) {
	if got := Positive(0).Neg(); got.IsNegative {
		t.Errorf("Neg(0) should stay positive, got %+v", got)
	}
	if got := Positive(5).Neg(); !got.Equal(Negative(5)) {
		t.Errorf("Neg flips the sign on the same magnitude: got %v, want Negative(5)", got)
	}
}

func TestIntegerSub(t *testing.T) {
	a := Positive(10)
	b := Positive(3)
	if got := a.Sub(b); !got.Equal(Positive(7)) {
		t.Errorf("10 - 3 = %v, want 7", got)
	}
}

func TestIntegerMulDivMod(t *testing.T) {
	a := Positive(6)
	b := Negative(1) // b.Value == 1
	if got := a.Mul(b); !got.Equal(Negative(6)) {
		t.Errorf("Positive(6).Mul(Negative(1)) = %v, want Negative(6) (magnitudes multiply, signs XOR)", got)
	}

	d := Positive(7)
	e := Positive(2)
	if got := d.Div(e); !got.Equal(Positive(3)) {
		t.Errorf("7 / 2 = %v, want 3", got)
	}
	if got := d.Mod(e); !got.Equal(Positive(1)) {
		t.Errorf("7 %% 2 = %v, want 1", got)
	}

	// Mod operates on the raw Value magnitude, not the wire-biased semantic
	// value: Negative(6).Value % Positive(2).Value == 6 % 2 == 0, which
	// normalizes to Positive(0) regardless of the dividend's sign.
	neg := Negative(6)
	if got := neg.Mod(e); !got.Equal(Positive(0)) {
		t.Errorf("Negative(6).Mod(Positive(2)) = %v, want 0", got)
	}

	odd := Negative(5) // Value == 5
	if got := odd.Mod(e); !got.Equal(Negative(1)) {
		t.Errorf("Negative(5).Mod(Positive(2)) = %v, want Negative(1)", got)
	}
}

func TestIntegerFromInt64RoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, math.MaxInt64, math.MinInt64, -100, 100}
	for _, v := range tests {
		i := FromInt64(v)
		got, ok := i.Int64()
		if !ok {
			t.Fatalf("FromInt64(%d).Int64() reported overflow", v)
		}
		if got != v {
			t.Errorf("FromInt64(%d).Int64() = %d, want %d", v, got, v)
		}
	}
}

func TestIntegerInt64Overflow(t *testing.T) {
	// One past math.MaxInt64.
	_, ok := Positive(math.MaxInt64 + 1).Int64()
	if ok {
		t.Errorf("expected overflow for MaxInt64+1")
	}

	// MinInt64 fits exactly at the negative boundary.
	_, ok = FromInt64(math.MinInt64).Int64()
	if !ok {
		t.Errorf("MinInt64 should round-trip through Int64")
	}
}

func TestIntegerBigInt(t *testing.T) {
	tests := []struct {
		name string
		i    Integer
		want string
	}{
		{"positive", Positive(42), "42"},
		{"negative_one", Negative(0), "-1"},
		{"negative_forty_two", Negative(41), "-42"},
		{"zero", Positive(0), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.i.BigInt().String(); got != tt.want {
				t.Errorf("BigInt() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWriteReadInteger(t *testing.T) {
	tests := []Integer{Positive(0), Positive(100), Positive(math.MaxUint64), Negative(0), Negative(100)}
	for _, v := range tests {
		w := NewCborWriter()
		if err := w.WriteInteger(v); err != nil {
			t.Fatalf("WriteInteger(%v) failed: %v", v, err)
		}
		r := NewCborReader(w.Bytes())
		got, err := r.ReadInteger()
		if err != nil {
			t.Fatalf("ReadInteger failed: %v", err)
		}
		if !got.Equal(v) {
			t.Errorf("round-trip %v got %v", v, got)
		}
	}
}
