package cbor

import "testing"

func TestIndefiniteRoundTrip(t *testing.T) {
	want := Indefinite[int64]{Items: []int64{1, 2, 3}}

	enc := NewEncoder()
	if err := enc.Encode(want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	state, err := NewCborReader(enc.Bytes()).PeekState()
	if err != nil {
		t.Fatalf("PeekState: %v", err)
	}
	if state != StateStartArray {
		t.Fatalf("expected StateStartArray, got %v", state)
	}
	if enc.Bytes()[0] != encodeInitialByte(MajorTypeArray, byte(AdditionalInfoIndefiniteLength)) {
		t.Errorf("expected indefinite-length array head")
	}

	dec := NewDecoder(enc.Bytes())
	var got Indefinite[int64]
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Items) != 3 || got.Items[0] != 1 || got.Items[2] != 3 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMaybeIndefiniteAcceptsDefiniteAndIndefinite(t *testing.T) {
	// Definite-length source.
	defEnc := NewEncoder()
	if err := defEnc.Encode(MaybeIndefinite[int64]{Items: []int64{5, 6}}); err != nil {
		t.Fatalf("Encode definite: %v", err)
	}
	var got1 MaybeIndefinite[int64]
	if err := NewDecoder(defEnc.Bytes()).Decode(&got1); err != nil {
		t.Fatalf("Decode definite: %v", err)
	}
	if len(got1.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got1.Items))
	}

	// Indefinite-length source, decoded via the same MaybeIndefinite type.
	indEnc := NewEncoder()
	if err := indEnc.Encode(Indefinite[int64]{Items: []int64{5, 6}}); err != nil {
		t.Fatalf("Encode indefinite: %v", err)
	}
	var got2 MaybeIndefinite[int64]
	if err := NewDecoder(indEnc.Bytes()).Decode(&got2); err != nil {
		t.Fatalf("Decode indefinite via MaybeIndefinite: %v", err)
	}
	if len(got2.Items) != 2 || got2.Items[1] != 6 {
		t.Errorf("got %+v, want 2 items ending in 6", got2)
	}
}
