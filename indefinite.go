package cbor

// Indefinite marks a slice for write-side indefinite-length array encoding
// (spec.md §3.3, §4.D). The teacher's CborWriter already supports
// WriteStartIndefiniteLengthArray/WriteEndArray; Indefinite is the
// schema-level convenience that drives them from a plain Go slice instead
// of requiring the caller to pair the calls up by hand.
type Indefinite[T any] struct {
	Items []T
}

// MarshalCBOR writes Items as an indefinite-length CBOR array.
func (ind Indefinite[T]) MarshalCBOR(enc *Encoder) error {
	if err := enc.Writer().WriteStartIndefiniteLengthArray(); err != nil {
		return err
	}
	for _, item := range ind.Items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return enc.Writer().WriteEndArray()
}

// UnmarshalCBOR reads an indefinite-length (or definite-length) CBOR array
// into Items; MaybeIndefinite's point is that the read side already accepts
// either, so this just delegates to the ordinary array decode.
func (ind *Indefinite[T]) UnmarshalCBOR(dec *Decoder) error {
	items, err := decodeArrayElements[T](dec)
	if err != nil {
		return err
	}
	ind.Items = items
	return nil
}

// MaybeIndefinite marks a slice that may be read back as either
// definite- or indefinite-length, writing definite-length by default. It
// exists so a schema can declare "accept either on read" without forcing
// indefinite-length on write (spec.md §4.D).
type MaybeIndefinite[T any] struct {
	Items []T
}

// MarshalCBOR writes Items as a definite-length CBOR array.
func (mi MaybeIndefinite[T]) MarshalCBOR(enc *Encoder) error {
	if err := enc.Writer().WriteStartArray(len(mi.Items)); err != nil {
		return err
	}
	for _, item := range mi.Items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return enc.Writer().WriteEndArray()
}

// UnmarshalCBOR reads either a definite- or indefinite-length CBOR array.
func (mi *MaybeIndefinite[T]) UnmarshalCBOR(dec *Decoder) error {
	items, err := decodeArrayElements[T](dec)
	if err != nil {
		return err
	}
	mi.Items = items
	return nil
}

// decodeArrayElements reads an array (definite or indefinite length per
// ReadStartArray's -1 convention) of T, used by both Indefinite and
// MaybeIndefinite's decode side.
func decodeArrayElements[T any](dec *Decoder) ([]T, error) {
	n, err := dec.Reader().ReadStartArray()
	if err != nil {
		return nil, err
	}
	var out []T
	if n >= 0 {
		out = make([]T, 0, n)
		for i := 0; i < n; i++ {
			var item T
			if err := dec.Decode(&item); err != nil {
				return nil, err
			}
			out = append(out, item)
		}
	} else {
		for {
			state, err := dec.Reader().PeekState()
			if err != nil {
				return nil, err
			}
			if state == StateEndArray {
				break
			}
			var item T
			if err := dec.Decode(&item); err != nil {
				return nil, err
			}
			out = append(out, item)
		}
	}
	if err := dec.Reader().ReadEndArray(); err != nil {
		return nil, err
	}
	return out, nil
}
