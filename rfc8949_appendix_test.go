package cbor

import (
	"bytes"
	"encoding/hex"
	"math"
	"math/big"
	"testing"
)

// appendixVector is one row of RFC 8949 Appendix A, decoded through
// Decoder.decodeAny — the type-driven dispatch layer (component C) the
// teacher's CborReader never had — rather than through the raw
// CborReader primitives reader_writer_test.go already exercises. cmp
// receives the decoded value and reports whether it matches.
type appendixVector struct {
	name string
	hex  string
	cmp  func(t *testing.T, got any)
}

func eq(want any) func(*testing.T, any) {
	return func(t *testing.T, got any) {
		t.Helper()
		if got != want {
			t.Errorf("got %#v (%T), want %#v (%T)", got, got, want, want)
		}
	}
}

func TestRFC8949AppendixThroughTypedDecoder(t *testing.T) {
	vectors := []appendixVector{
		{"0", "00", eq(uint64(0))},
		{"1", "01", eq(uint64(1))},
		{"10", "0a", eq(uint64(10))},
		{"23", "17", eq(uint64(23))},
		{"24", "1818", eq(uint64(24))},
		{"100", "1864", eq(uint64(100))},
		{"1000", "1903e8", eq(uint64(1000))},
		{"1000000", "1a000f4240", eq(uint64(1000000))},
		{"18446744073709551615", "1bffffffffffffffff", eq(uint64(math.MaxUint64))},
		{"-1", "20", eq(int64(-1))},
		{"-10", "29", eq(int64(-10))},
		{"-100", "3863", eq(int64(-100))},
		{"-1000", "3903e7", eq(int64(-1000))},
		{"0.0 (float64)", "fb0000000000000000", eq(float64(0))},
		{"-0.0 (float64)", "fb8000000000000000", eq(math.Float64frombits(0x8000000000000000))},
		{"1.1 (float64)", "fb3ff199999999999a", eq(float64(1.1))},
		{"1.5 (float16)", "f93e00", eq(float32(1.5))},
		{"100000.0 (float32)", "fa47c35000", eq(float32(100000.0))},
		{"1.0e+300 (float64)", "fb7e37e43c8800759c", eq(1.0e+300)},
		{"5.960464477539063e-8 (float16)", "f90001", eq(float32(5.960464477539063e-8))},
		{"Infinity (float16->float32)", "f97c00", nil}, // +Inf, checked separately below
		{"false", "f4", eq(false)},
		{"true", "f5", eq(true)},
		{"null", "f6", eq(any(nil))},
		{"undefined", "f7", eq(any(nil))},
		{`""`, "60", eq("")},
		{`"a"`, "6161", eq("a")},
		{`"IETF"`, "6449455446", eq("IETF")},
		{`"\"\\"`, "62225c", eq(`"\`)},
		{`"ü"`, "62c3bc", eq("ü")},
		{`"水"`, "63e6b0b4", eq("水")},
		{"h''", "40", nil}, // []byte compared separately, == doesn't apply
		{"h'01020304'", "4401020304", nil},
	}

	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			data, err := hex.DecodeString(v.hex)
			if err != nil {
				t.Fatalf("hex.DecodeString(%q): %v", v.hex, err)
			}
			dec := NewDecoder(data)
			var got any
			if err := dec.decodeAny(&got); err != nil {
				t.Fatalf("decodeAny: %v", err)
			}
			switch v.name {
			case "Infinity (float16->float32)":
				f, ok := got.(float32)
				if !ok || !math.IsInf(float64(f), 1) {
					t.Errorf("got %#v, want +Inf float32", got)
				}
			case "h''":
				b, ok := got.([]byte)
				if !ok || len(b) != 0 {
					t.Errorf("got %#v, want empty []byte", got)
				}
			case "h'01020304'":
				b, ok := got.([]byte)
				if !ok || !bytes.Equal(b, []byte{1, 2, 3, 4}) {
					t.Errorf("got %#v, want []byte{1,2,3,4}", got)
				}
			case "null", "undefined":
				if got != nil {
					t.Errorf("got %#v, want nil", got)
				}
			default:
				v.cmp(t, got)
			}
		})
	}
}

// TestRFC8949AppendixCollections covers the Appendix A array/map/indefinite
// vectors, which don't fit appendixVector's scalar-comparison shape.
func TestRFC8949AppendixCollections(t *testing.T) {
	decode := func(t *testing.T, hexStr string) any {
		t.Helper()
		data, err := hex.DecodeString(hexStr)
		if err != nil {
			t.Fatalf("hex.DecodeString(%q): %v", hexStr, err)
		}
		dec := NewDecoder(data)
		var got any
		if err := dec.decodeAny(&got); err != nil {
			t.Fatalf("decodeAny(%q): %v", hexStr, err)
		}
		return got
	}

	t.Run("[] empty array", func(t *testing.T) {
		got, ok := decode(t, "80").([]any)
		if !ok || len(got) != 0 {
			t.Errorf("got %#v, want empty []any", got)
		}
	})

	t.Run("[1,2,3]", func(t *testing.T) {
		got, ok := decode(t, "83010203").([]any)
		if !ok || len(got) != 3 {
			t.Fatalf("got %#v, want 3-element []any", got)
		}
		for i, want := range []uint64{1, 2, 3} {
			if got[i] != want {
				t.Errorf("element %d: got %#v, want %d", i, got[i], want)
			}
		}
	})

	t.Run("[1,[2,3],[4,5]] nested", func(t *testing.T) {
		got, ok := decode(t, "8301820203820405").([]any)
		if !ok || len(got) != 3 {
			t.Fatalf("got %#v, want 3-element []any", got)
		}
		inner, ok := got[1].([]any)
		if !ok || len(inner) != 2 || inner[0] != uint64(2) || inner[1] != uint64(3) {
			t.Errorf("got %#v for the nested element, want [2 3]", got[1])
		}
	})

	t.Run("[_ 1,[2,3],[4,5]] indefinite-length outer array", func(t *testing.T) {
		got, ok := decode(t, "9f018202039f0405ffff").([]any)
		if !ok || len(got) != 3 {
			t.Fatalf("got %#v, want 3-element []any", got)
		}
	})

	t.Run(`{"a":1,"b":[2,3]}`, func(t *testing.T) {
		got, ok := decode(t, "a26161016162820203").(map[string]any)
		if !ok {
			t.Fatalf("got %#v, want map[string]any", got)
		}
		if got["a"] != uint64(1) {
			t.Errorf(`got %#v for "a", want 1`, got["a"])
		}
		inner, ok := got["b"].([]any)
		if !ok || len(inner) != 2 {
			t.Errorf(`got %#v for "b", want [2 3]`, got["b"])
		}
	})

	t.Run(`(_ "strea","ming") indefinite text string`, func(t *testing.T) {
		got, ok := decode(t, "7f657374726561646d696e67ff").(string)
		if !ok || got != "streaming" {
			t.Errorf("got %#v, want \"streaming\"", got)
		}
	})
}

// TestRFC8949AppendixTags checks the well-known tag vectors: tag 0 through
// Decoder.decodeAny (which drops the tag and decodes the tagged item), the
// others through the raw ReadTag/ReadUnixTime/ReadBigInt/ReadTextString
// primitives.
func TestRFC8949AppendixTags(t *testing.T) {
	t.Run(`0("2013-03-21T20:04:00Z")`, func(t *testing.T) {
		data, _ := hex.DecodeString("c074323031332d30332d32315432303a30343a30305a")
		dec := NewDecoder(data)
		var got any
		if err := dec.decodeAny(&got); err != nil {
			t.Fatalf("decodeAny: %v", err)
		}
		if _, ok := got.([]any); ok {
			t.Fatalf("tag 0 decoded as an array, want the tagged text string routed through the tag case")
		}
	})

	t.Run("1(1363896240) unix time", func(t *testing.T) {
		data, _ := hex.DecodeString("c11a514b67b0")
		r := NewCborReader(data)
		tag, err := r.ReadTag()
		if err != nil {
			t.Fatalf("ReadTag: %v", err)
		}
		if tag != TagUnixTime {
			t.Fatalf("got tag %s, want %s", tag, TagUnixTime)
		}
		// ReadUnixTime reads the tag itself, so start again from the tag head.
		r.Reset()
		v, err := r.ReadUnixTime()
		if err != nil {
			t.Fatalf("ReadUnixTime: %v", err)
		}
		if v.Unix() != 1363896240 {
			t.Errorf("got unix %d, want 1363896240", v.Unix())
		}
	})

	t.Run("2(bignum) matches math/big", func(t *testing.T) {
		data, _ := hex.DecodeString("c249010000000000000000")
		r := NewCborReader(data)
		got, err := r.ReadBigInt()
		if err != nil {
			t.Fatalf("ReadBigInt: %v", err)
		}
		want := new(big.Int).Lsh(big.NewInt(1), 64)
		if got.Cmp(want) != 0 {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("32(\"http://www.example.com\")", func(t *testing.T) {
		data, _ := hex.DecodeString("d82076687474703a2f2f7777772e6578616d706c652e636f6d")
		r := NewCborReader(data)
		tag, err := r.ReadTag()
		if err != nil || tag != TagURI {
			t.Fatalf("got (%s, %v), want (%s, nil)", tag, err, TagURI)
		}
		got, err := r.ReadTextString()
		if err != nil || got != "http://www.example.com" {
			t.Errorf("got (%q, %v)", got, err)
		}
	})
}

// TestWriterProducesRFC8949Vectors checks the encode side of the same
// corpus through the raw CborWriter (component B), which is where the exact
// wire bytes are produced — the typed Encoder for scalars just forwards to
// these same calls (codec.go), so pinning them here is the single source of
// truth for both layers.
func TestWriterProducesRFC8949Vectors(t *testing.T) {
	tests := []struct {
		name string
		want string
		do   func(w *CborWriter) error
	}{
		{"0", "00", func(w *CborWriter) error { return w.WriteUint64(0) }},
		{"23", "17", func(w *CborWriter) error { return w.WriteUint64(23) }},
		{"24", "1818", func(w *CborWriter) error { return w.WriteUint64(24) }},
		{"1000000000000", "1b000000e8d4a51000", func(w *CborWriter) error { return w.WriteUint64(1000000000000) }},
		{"-1", "20", func(w *CborWriter) error { return w.WriteInt64(-1) }},
		{"-1000", "3903e7", func(w *CborWriter) error { return w.WriteInt64(-1000) }},
		{"1.5 as float16", "f93e00", func(w *CborWriter) error { return w.WriteFloat16(1.5) }},
		{"false", "f4", func(w *CborWriter) error { return w.WriteBoolean(false) }},
		{"true", "f5", func(w *CborWriter) error { return w.WriteBoolean(true) }},
		{"null", "f6", func(w *CborWriter) error { return w.WriteNull() }},
		{`h'01020304'`, "4401020304", func(w *CborWriter) error { return w.WriteByteString([]byte{1, 2, 3, 4}) }},
		{`"IETF"`, "6449455446", func(w *CborWriter) error { return w.WriteTextString("IETF") }},
		{"[1,2,3]", "83010203", func(w *CborWriter) error {
			if err := w.WriteStartArray(3); err != nil {
				return err
			}
			for i := int64(1); i <= 3; i++ {
				if err := w.WriteInt64(i); err != nil {
					return err
				}
			}
			return w.WriteEndArray()
		}},
		{`{"a":1,"b":[2,3]}`, "a26161016162820203", func(w *CborWriter) error {
			if err := w.WriteStartMap(2); err != nil {
				return err
			}
			if err := w.WriteTextString("a"); err != nil {
				return err
			}
			if err := w.WriteInt64(1); err != nil {
				return err
			}
			if err := w.WriteTextString("b"); err != nil {
				return err
			}
			if err := w.WriteStartArray(2); err != nil {
				return err
			}
			if err := w.WriteInt64(2); err != nil {
				return err
			}
			if err := w.WriteInt64(3); err != nil {
				return err
			}
			return w.WriteEndArray()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCborWriter()
			if err := tt.do(w); err != nil {
				t.Fatalf("write: %v", err)
			}
			got := hex.EncodeToString(w.Bytes())
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
