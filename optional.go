package cbor

// Optional is the Go rendering of CBOR's Optional<T> (spec.md §3.3, §4.C),
// modeled on the stdlib database/sql.NullXxx family: Valid == false encodes
// as CBOR null and decodes back to the zero Value.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps v as a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns the absent Optional for T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// MarshalCBOR writes CBOR null when absent, otherwise encodes Value.
func (o Optional[T]) MarshalCBOR(enc *Encoder) error {
	if !o.Valid {
		return enc.Writer().WriteNull()
	}
	return enc.Encode(o.Value)
}

// UnmarshalCBOR reads null as the absent Optional, anything else as Value.
func (o *Optional[T]) UnmarshalCBOR(dec *Decoder) error {
	state, err := dec.Reader().PeekState()
	if err != nil {
		return err
	}
	if state == StateNull {
		if err := dec.Reader().ReadNull(); err != nil {
			return err
		}
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*o = Optional[T]{Value: v, Valid: true}
	return nil
}
