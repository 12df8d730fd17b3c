package cbor

// EncodeArray writes fields as a definite-length CBOR array, the Go stand-in
// for the C++ schema hook's `as_array{N}` marker (spec.md §4.F) — a struct's
// generated MarshalCBOR calls this with its fields in declaration order.
func EncodeArray(enc *Encoder, fields ...any) error {
	if err := enc.Writer().WriteStartArray(len(fields)); err != nil {
		return err
	}
	for _, f := range fields {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return enc.Writer().WriteEndArray()
}

// DecodeArray reads a definite-length CBOR array of len(dests) items into
// dests in order, failing with ErrUnexpectedGroupSize if the wire length
// disagrees (spec.md §4.C, the fixed-capacity sink case). An
// indefinite-length array is accepted as well; its item count is not
// compared up front, so a mismatch surfaces as the error of the element
// decode or of ReadEndArray rather than ErrUnexpectedGroupSize.
func DecodeArray(dec *Decoder, dests ...any) error {
	n, err := dec.Reader().ReadStartArray()
	if err != nil {
		return err
	}
	if n >= 0 && n != len(dests) {
		return ErrUnexpectedGroupSize
	}
	for _, d := range dests {
		if err := dec.Decode(d); err != nil {
			return err
		}
	}
	return dec.Reader().ReadEndArray()
}

// EncodeMap writes pairs (key0, value0, key1, value1, ...) as a
// definite-length CBOR map, the `as_map{N}` counterpart of EncodeArray.
// len(pairs) must be even.
func EncodeMap(enc *Encoder, pairs ...any) error {
	n := len(pairs) / 2
	if err := enc.Writer().WriteStartMap(n); err != nil {
		return err
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := enc.Encode(pairs[i]); err != nil {
			return err
		}
		if err := enc.Encode(pairs[i+1]); err != nil {
			return err
		}
	}
	return enc.Writer().WriteEndMap()
}
