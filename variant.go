package cbor

// Alternative is one arm of a variant (sum type). For an arm without HasTag,
// Match decides whether the upcoming wire item belongs to it by inspecting
// state (the major type/simple-value class PeekState reports). An arm with
// HasTag set is chosen when the wire tag equals Tag; its Match is not
// consulted. Decode then consumes the item and returns the Go value.
// Alternatives are tried in declared order (spec.md §4.C) — this preserves
// the documented ordering wart where an int-like alternative placed ahead
// of an enum alternative shadows it rather than being reordered for you.
type Alternative struct {
	Match  func(state CborReaderState) bool
	Tag    uint64
	HasTag bool
	Decode func(dec *Decoder) (any, error)
}

// DecodeVariant implements the peek-then-classify algorithm of spec.md §4.C:
// peek the next item's state (reading its tag first whenever the item is
// tagged) and hand decoding to the first Alternative that claims it.
func DecodeVariant(dec *Decoder, alts []Alternative) (any, error) {
	state, err := dec.Reader().PeekState()
	if err != nil {
		return nil, err
	}

	if state == StateTag {
		return decodeTaggedVariant(dec, alts)
	}

	for _, alt := range alts {
		if alt.HasTag {
			continue
		}
		if alt.Match(state) {
			return alt.Decode(dec)
		}
	}
	return nil, ErrVariantExhausted
}

// decodeTaggedVariant handles the case where the wire item carries a tag:
// the tag is read once, then matched against each tag-bearing Alternative
// before falling back to untagged alternatives on the item beneath it.
func decodeTaggedVariant(dec *Decoder, alts []Alternative) (any, error) {
	tag, err := dec.Reader().ReadTag()
	if err != nil {
		return nil, err
	}
	for _, alt := range alts {
		if alt.HasTag && alt.Tag == uint64(tag) {
			return alt.Decode(dec)
		}
	}
	state, err := dec.Reader().PeekState()
	if err != nil {
		return nil, err
	}
	for _, alt := range alts {
		if !alt.HasTag && alt.Match(state) {
			return alt.Decode(dec)
		}
	}
	return nil, ErrVariantExhausted
}

// EncodeVariant writes the value held in a variant by tagging it (if tag
// carries one) and then encoding it with the given encode function — a thin
// symmetrical counterpart to DecodeVariant, since encoding a sum type only
// requires knowing which alternative is already selected.
func EncodeVariant(enc *Encoder, tag uint64, hasTag bool, encode func(enc *Encoder) error) error {
	if hasTag {
		if err := enc.Writer().WriteTag(CborTag(tag)); err != nil {
			return err
		}
	}
	return encode(enc)
}
