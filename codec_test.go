package cbor

import (
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeScalars(t *testing.T) {
	tests := []struct {
		name string
		v    any
		ptr  any
	}{
		{"bool", true, new(bool)},
		{"int", int(-7), new(int)},
		{"uint64", uint64(9000), new(uint64)},
		{"float32", float32(1.5), new(float32)},
		{"float64", float64(2.25), new(float64)},
		{"string", "hello cbor", new(string)},
		{"bytes", []byte{1, 2, 3}, new([]byte)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder()
			if err := enc.Encode(tt.v); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			dec := NewDecoder(enc.Bytes())
			if err := dec.Decode(tt.ptr); err != nil {
				t.Fatalf("Decode: %v", err)
			}
		})
	}
}

func TestEncodeDecodeBigInt(t *testing.T) {
	want := new(big.Int)
	want.SetString("123456789012345678901234567890", 10)

	enc := NewEncoder()
	if err := enc.Encode(want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(enc.Bytes())
	var got *big.Int
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeDecodeTime(t *testing.T) {
	want := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	enc := NewEncoder()
	if err := enc.Encode(want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(enc.Bytes())
	var got time.Time
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeDecodeSliceAndMap(t *testing.T) {
	list := []any{uint64(1), "two", true}
	enc := NewEncoder()
	if err := enc.Encode(list); err != nil {
		t.Fatalf("Encode slice: %v", err)
	}
	dec := NewDecoder(enc.Bytes())
	var gotList []any
	if err := dec.Decode(&gotList); err != nil {
		t.Fatalf("Decode slice: %v", err)
	}
	if len(gotList) != 3 {
		t.Fatalf("got %d elements, want 3", len(gotList))
	}

	m := map[string]any{"a": uint64(1), "b": "two"}
	enc2 := NewEncoder()
	if err := enc2.Encode(m); err != nil {
		t.Fatalf("Encode map: %v", err)
	}
	dec2 := NewDecoder(enc2.Bytes())
	var gotMap map[string]any
	if err := dec2.Decode(&gotMap); err != nil {
		t.Fatalf("Decode map: %v", err)
	}
	if len(gotMap) != 2 {
		t.Fatalf("got %d entries, want 2", len(gotMap))
	}
}

type point struct {
	X, Y int64
}

func (p point) MarshalCBOR(enc *Encoder) error {
	return EncodeArray(enc, p.X, p.Y)
}

func (p *point) UnmarshalCBOR(dec *Decoder) error {
	return DecodeArray(dec, &p.X, &p.Y)
}

func TestMarshalerUnmarshalerRoundTrip(t *testing.T) {
	p := point{X: 3, Y: -4}

	enc := NewEncoder()
	if err := enc.Encode(p); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(enc.Bytes())
	var got point
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

type taggedPoint struct {
	point
}

func (taggedPoint) CBORTag() (uint64, bool) { return 1000, true }

func TestTaggedRoundTrip(t *testing.T) {
	p := taggedPoint{point{X: 1, Y: 2}}

	enc := NewEncoder()
	if err := enc.Encode(p); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(enc.Bytes())
	var got taggedPoint
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.point != p.point {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

func TestTaggedMismatchErrors(t *testing.T) {
	w := NewCborWriter()
	_ = w.WriteTag(CborTag(2000))
	_ = w.WriteInt64(5)

	dec := NewDecoder(w.Bytes())
	var got taggedPoint
	err := dec.Decode(&got)
	if !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("got %v, want an error matching ErrTagMismatch", err)
	}
	if StatusOf(err) != StatusTagMismatch {
		t.Errorf("StatusOf(err) = %s, want %s", StatusOf(err), StatusTagMismatch)
	}
	const wantMsg = "got 2000, want 1000"
	if !strings.Contains(err.Error(), wantMsg) {
		t.Errorf("error message %q does not contain %q", err.Error(), wantMsg)
	}
}
