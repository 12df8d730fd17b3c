package cbor

import "reflect"

// Integral is the constraint satisfied by any Go integer kind usable as a
// CBOR-backed enum's underlying representation (spec.md §4.C).
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EncodeEnum writes v as its underlying integer type. Go has no enum
// concept of its own; a defined integer type (type Suit uint8) stands in
// for the C++ scoped enum the schema hook dispatches on.
func EncodeEnum[T Integral](enc *Encoder, v T) error {
	return enc.Encode(toCborInt(v))
}

// DecodeEnum reads an integer and converts it to T, reading as uint64 when
// T's underlying kind is unsigned so the full 64-bit range round-trips
// (see isUnsignedKind).
func DecodeEnum[T Integral](dec *Decoder) (T, error) {
	if isUnsignedKind[T]() {
		var v uint64
		if err := dec.Decode(&v); err != nil {
			return 0, err
		}
		return T(v), nil
	}
	var v int64
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	return T(v), nil
}

// isUnsignedKind reports whether T's underlying type is one of the
// unsigned members of Integral's type set. Checked via reflect.Kind on a
// zero value rather than a type assertion against the concrete type
// uint64, because a type assertion only matches the exact named type
// uint64 itself — a custom defined type such as `type Big uint64` has
// reflect.Kind() == reflect.Uint64 but would fail `any(v).(uint64)`,
// which previously made toCborInt fall through to int64(v) and silently
// wrap any such enum value above math.MaxInt64 into a negative integer.
func isUnsignedKind[T Integral]() bool {
	var zero T
	switch reflect.ValueOf(zero).Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// toCborInt widens any Integral value to the concrete type Encoder.Encode's
// type switch recognizes, preserving the sign for unsigned values too
// large for int64 — including custom unsigned-kind types, not just the
// exact type uint64 (see isUnsignedKind).
func toCborInt[T Integral](v T) any {
	if isUnsignedKind[T]() {
		return uint64(v)
	}
	return int64(v)
}
