package cbor

import "math/big"

// Integer is the tagged union of spec.md §3.2 / §4.A: a magnitude plus a
// sign, covering CBOR's full 65-bit integer range (major type 0 for
// positive, major type 1 for negative, where the wire argument for a
// negative integer is the magnitude m and the semantic value is -1-m).
//
// Arithmetic on Integer never fails: operations wrap the uint64 magnitude
// on overflow/underflow instead of panicking or returning an error
// (I-A2). A zero-magnitude result always normalizes IsNegative to false
// (I-A1) — arithmetic never produces the value=0, IsNegative=true pair,
// even though a raw Negative(0) conversion can (spec.md §3.2).
type Integer struct {
	Value      uint64
	IsNegative bool
}

// Positive constructs the Integer for the unsigned magnitude n.
func Positive(n uint64) Integer { return Integer{Value: n} }

// Negative constructs the Integer for the CBOR-encoded negative magnitude
// n, i.e. the semantic value -1-n. Unlike arithmetic results, a direct
// Negative(0) keeps IsNegative true: it denotes -1, not zero.
func Negative(n uint64) Integer { return Integer{Value: n, IsNegative: true} }

// NegLit is the Go stand-in for the C++ `_neg` literal suffix: NegLit(n)
// is the integer -1-n, exactly Negative(n) widened to Integer.
func NegLit(n uint64) Integer { return Negative(n) }

// FromInt64 widens a signed 64-bit value to Integer using CBOR's bias:
// non-negative values are Positive, negative values v become
// Negative(uint64(-1 - v)).
func FromInt64(v int64) Integer {
	if v >= 0 {
		return Positive(uint64(v))
	}
	return Negative(uint64(-1 - v))
}

// normalize clears IsNegative whenever the magnitude is zero (I-A1).
func (a Integer) normalize() Integer {
	if a.Value == 0 {
		a.IsNegative = false
	}
	return a
}

// Neg returns -a. Negating zero stays positive zero.
func (a Integer) Neg() Integer {
	if a.Value == 0 {
		return Integer{}
	}
	return Integer{Value: a.Value, IsNegative: !a.IsNegative}
}

// Add returns a+b. Same-sign operands add magnitudes with wraparound and
// keep the common sign; opposite-sign operands subtract the smaller
// magnitude from the larger and take the sign of the larger operand. Either
// way the result is normalized so a zero magnitude is never negative.
func (a Integer) Add(b Integer) Integer {
	if a.IsNegative == b.IsNegative {
		return Integer{Value: a.Value + b.Value, IsNegative: a.IsNegative}.normalize()
	}
	if a.Value >= b.Value {
		return Integer{Value: a.Value - b.Value, IsNegative: a.IsNegative}.normalize()
	}
	return Integer{Value: b.Value - a.Value, IsNegative: b.IsNegative}.normalize()
}

// Sub returns a-b, defined as a.Add(b.Neg()).
func (a Integer) Sub(b Integer) Integer {
	return a.Add(b.Neg())
}

// Mul returns a*b. Magnitudes multiply with wraparound modulo 2^64; the
// sign is the XOR of the operand signs, normalized for a zero result.
func (a Integer) Mul(b Integer) Integer {
	return Integer{Value: a.Value * b.Value, IsNegative: a.IsNegative != b.IsNegative}.normalize()
}

// Div returns the truncating quotient a/b. Division by zero is undefined
// behavior on the caller's part (spec.md §4.A) and is not guarded here; Go's
// own division-by-zero panic is the observable behavior. The sign is the
// XOR of the operand signs, normalized for a zero result.
func (a Integer) Div(b Integer) Integer {
	return Integer{Value: a.Value / b.Value, IsNegative: a.IsNegative != b.IsNegative}.normalize()
}

// Mod returns the remainder of a/b. The sign of a non-zero remainder is the
// sign of the dividend a; a zero remainder is always positive.
func (a Integer) Mod(b Integer) Integer {
	return Integer{Value: a.Value % b.Value, IsNegative: a.IsNegative}.normalize()
}

// Equal reports whether a and b denote the same semantic integer.
func (a Integer) Equal(b Integer) bool {
	return a == b
}

// Int64 reports the value as an int64, along with whether it fit.
func (a Integer) Int64() (v int64, ok bool) {
	if !a.IsNegative {
		if a.Value > 1<<63-1 {
			return 0, false
		}
		return int64(a.Value), true
	}
	// Semantic value is -1 - Value; the most negative representable int64
	// (math.MinInt64) is -1 - (2^63 - 1).
	if a.Value > 1<<63-1 {
		return 0, false
	}
	return -1 - int64(a.Value), true
}

// BigInt returns the arbitrary-precision value of a, for callers that need
// the full CBOR bignum range rather than the 65-bit wrap this type's
// arithmetic implements (spec.md §2, component A covers the wrapping core;
// big.Int is the escape hatch the teacher's bignum tags (2/3) already wire
// into via WriteBigInt/ReadBigInt).
func (a Integer) BigInt() *big.Int {
	b := new(big.Int).SetUint64(a.Value)
	if a.IsNegative {
		b.Neg(b)
		b.Sub(b, big.NewInt(1))
	}
	return b
}

// String implements fmt.Stringer for debugging.
func (a Integer) String() string {
	return a.BigInt().String()
}
