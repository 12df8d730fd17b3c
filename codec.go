package cbor

import (
	"fmt"
	"math/big"
	"time"
)

// Half forces half-precision (float16) encoding for a value that would
// otherwise write as single or double precision. spec.md §9 leaves the
// default width up to the caller's Go type; Encoder.Encode never
// auto-demotes on its own, so Half is the explicit opt-in.
type Half float32

// Marshaler is implemented by types that encode themselves to CBOR, the Go
// rendering of the schema hook design note §9 describes (`enc(as_array{N},
// a, b, ...)`): the body typically calls Encoder.Writer().WriteStartArray/
// WriteStartMap followed by one Encoder.Encode call per field, or uses
// EncodeArray/EncodeMap to do both.
type Marshaler interface {
	MarshalCBOR(enc *Encoder) error
}

// Unmarshaler is the decode-side counterpart of Marshaler.
type Unmarshaler interface {
	UnmarshalCBOR(dec *Decoder) error
}

// Tagged is implemented by a type that wants a fixed CBOR tag written ahead
// of its value and checked on the way back in (spec.md §4.F). Ok reports
// whether the tag applies; a type can decline tagging for a particular
// value (e.g. a zero value) by returning false.
type Tagged interface {
	CBORTag() (tag uint64, ok bool)
}

// EncoderOption configures an Encoder, mirroring the teacher's WriterOption.
type EncoderOption func(*Encoder)

// WithWriterOptions forwards options to the underlying CborWriter.
func WithWriterOptions(opts ...WriterOption) EncoderOption {
	return func(e *Encoder) {
		for _, o := range opts {
			o(e.w)
		}
	}
}

// Encoder is the type-driven dispatch layer over CborWriter (component C).
// Where CborWriter exposes one method per wire shape, Encoder exposes one
// entry point, Encode, that inspects the Go value's type and picks the wire
// shape for it.
type Encoder struct {
	w *CborWriter
}

// NewEncoder creates an Encoder writing into a fresh CborWriter.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{w: NewCborWriter()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Writer exposes the underlying CborWriter for callers that need the
// lower-level item codec (component B) directly, e.g. inside a hand-written
// MarshalCBOR.
func (e *Encoder) Writer() *CborWriter { return e.w }

// Bytes returns the bytes written so far.
func (e *Encoder) Bytes() []byte { return e.w.Bytes() }

// Encode writes v using the dispatch table of spec.md §4.C: a Tagged value's
// tag is written first, then a Marshaler is consulted, then a type switch
// over the built-in scalar and collection shapes.
func (e *Encoder) Encode(v any) error {
	if t, ok := v.(Tagged); ok {
		if tag, ok := t.CBORTag(); ok {
			if err := e.w.WriteTag(CborTag(tag)); err != nil {
				return err
			}
		}
	}
	return e.encodeValue(v)
}

func (e *Encoder) encodeValue(v any) error {
	if m, ok := v.(Marshaler); ok {
		return m.MarshalCBOR(e)
	}

	switch x := v.(type) {
	case nil:
		return e.w.WriteNull()
	case bool:
		return e.w.WriteBoolean(x)
	case int:
		return e.w.WriteInt(x)
	case int8:
		return e.w.WriteInt8(x)
	case int16:
		return e.w.WriteInt16(x)
	case int32:
		return e.w.WriteInt32(x)
	case int64:
		return e.w.WriteInt64(x)
	case uint:
		return e.w.WriteUint64(uint64(x))
	case uint8:
		return e.w.WriteUint8(x)
	case uint16:
		return e.w.WriteUint16(x)
	case uint32:
		return e.w.WriteUint32(x)
	case uint64:
		return e.w.WriteUint64(x)
	case Integer:
		return e.w.WriteInteger(x)
	// float32/float64 always write their own width: the type-driven path
	// never auto-demotes the way WriteFloat does (SPEC_FULL.md §3.B).
	case float32:
		return e.w.WriteFloat32(x)
	case float64:
		return e.w.WriteFloat64(x)
	case Half:
		return e.w.WriteFloat16(float32(x))
	case string:
		return e.w.WriteTextString(x)
	case []byte:
		return e.w.WriteByteString(x)
	case *big.Int:
		return e.w.WriteBigInt(x)
	case time.Time:
		return e.w.WriteDateTimeString(x)
	case []any:
		if err := e.w.WriteStartArray(len(x)); err != nil {
			return err
		}
		for _, elem := range x {
			if err := e.Encode(elem); err != nil {
				return err
			}
		}
		return e.w.WriteEndArray()
	case map[string]any:
		if err := e.w.WriteStartMap(len(x)); err != nil {
			return err
		}
		for k, val := range x {
			if err := e.w.WriteTextString(k); err != nil {
				return err
			}
			if err := e.Encode(val); err != nil {
				return err
			}
		}
		return e.w.WriteEndMap()
	default:
		return fmt.Errorf("cbor: Encode: unsupported type %T (implement Marshaler)", v)
	}
}

// DecoderOption configures a Decoder, mirroring the teacher's ReaderOption.
type DecoderOption func(*Decoder)

// WithReaderOptions forwards options to the underlying CborReader.
func WithReaderOptions(opts ...ReaderOption) DecoderOption {
	return func(d *Decoder) {
		for _, o := range opts {
			o(d.r)
		}
	}
}

// Decoder is the type-driven dispatch layer over CborReader (component C).
type Decoder struct {
	r *CborReader
}

// NewDecoder creates a Decoder reading data.
func NewDecoder(data []byte, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: NewCborReader(data)}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Reader exposes the underlying CborReader, e.g. for a hand-written
// UnmarshalCBOR.
func (d *Decoder) Reader() *CborReader { return d.r }

// Decode reads a value into the pointer out points at. The tag, if any, is
// consulted and checked against out's Tagged.CBORTag() before the value
// itself is decoded (spec.md §4.F); DecodeWithoutTag skips that check.
func (d *Decoder) Decode(out any) error {
	if t, ok := out.(Tagged); ok {
		if want, ok := t.CBORTag(); ok {
			got, err := d.r.ReadTag()
			if err != nil {
				return err
			}
			if uint64(got) != want {
				return NewTagMismatchError(got, CborTag(want))
			}
		}
	}
	return d.decodeValue(out)
}

// DecodeWithoutTag decodes out without consulting or consuming a leading
// tag, for embedding a Tagged type inside a larger structure that has
// already handled the tag itself.
func (d *Decoder) DecodeWithoutTag(out any) error {
	return d.decodeValue(out)
}

func (d *Decoder) decodeValue(out any) error {
	if u, ok := out.(Unmarshaler); ok {
		return u.UnmarshalCBOR(d)
	}

	switch x := out.(type) {
	case *bool:
		v, err := d.r.ReadBoolean()
		if err != nil {
			return err
		}
		*x = v
	case *int:
		v, err := d.r.ReadInt()
		if err != nil {
			return err
		}
		*x = v
	case *int8:
		v, err := d.r.ReadInt8()
		if err != nil {
			return err
		}
		*x = v
	case *int16:
		v, err := d.r.ReadInt16()
		if err != nil {
			return err
		}
		*x = v
	case *int32:
		v, err := d.r.ReadInt32()
		if err != nil {
			return err
		}
		*x = v
	case *int64:
		v, err := d.r.ReadInt64()
		if err != nil {
			return err
		}
		*x = v
	case *uint:
		v, err := d.r.ReadUint64()
		if err != nil {
			return err
		}
		*x = uint(v)
	case *uint8:
		v, err := d.r.ReadUint8()
		if err != nil {
			return err
		}
		*x = v
	case *uint16:
		v, err := d.r.ReadUint16()
		if err != nil {
			return err
		}
		*x = v
	case *uint32:
		v, err := d.r.ReadUint32()
		if err != nil {
			return err
		}
		*x = v
	case *uint64:
		v, err := d.r.ReadUint64()
		if err != nil {
			return err
		}
		*x = v
	case *Integer:
		v, err := d.r.ReadInteger()
		if err != nil {
			return err
		}
		*x = v
	case *float32:
		v, err := d.r.ReadFloat32()
		if err != nil {
			return err
		}
		*x = v
	case *float64:
		v, err := d.r.ReadFloat64()
		if err != nil {
			return err
		}
		*x = v
	case *Half:
		v, err := d.r.ReadFloat16()
		if err != nil {
			return err
		}
		*x = Half(v)
	case *string:
		v, err := d.r.ReadTextString()
		if err != nil {
			return err
		}
		*x = v
	case *[]byte:
		v, err := d.r.ReadByteString()
		if err != nil {
			return err
		}
		*x = v
	case **big.Int:
		v, err := d.r.ReadBigInt()
		if err != nil {
			return err
		}
		*x = v
	case *time.Time:
		v, err := d.r.ReadDateTimeString()
		if err != nil {
			return err
		}
		*x = v
	case *[]any:
		n, err := d.r.ReadStartArray()
		if err != nil {
			return err
		}
		out := make([]any, 0)
		if n >= 0 {
			out = make([]any, 0, n)
			for i := 0; i < n; i++ {
				var elem any
				if err := d.decodeAny(&elem); err != nil {
					return err
				}
				out = append(out, elem)
			}
		} else {
			for {
				state, err := d.r.PeekState()
				if err != nil {
					return err
				}
				if state == StateEndArray {
					break
				}
				var elem any
				if err := d.decodeAny(&elem); err != nil {
					return err
				}
				out = append(out, elem)
			}
		}
		if err := d.r.ReadEndArray(); err != nil {
			return err
		}
		*x = out
	case *map[string]any:
		n, err := d.r.ReadStartMap()
		if err != nil {
			return err
		}
		out := make(map[string]any)
		readPair := func() error {
			k, err := d.r.ReadTextString()
			if err != nil {
				return err
			}
			var v any
			if err := d.decodeAny(&v); err != nil {
				return err
			}
			out[k] = v
			return nil
		}
		if n >= 0 {
			for i := 0; i < n; i++ {
				if err := readPair(); err != nil {
					return err
				}
			}
		} else {
			for {
				state, err := d.r.PeekState()
				if err != nil {
					return err
				}
				if state == StateEndMap {
					break
				}
				if err := readPair(); err != nil {
					return err
				}
			}
		}
		if err := d.r.ReadEndMap(); err != nil {
			return err
		}
		*x = out
	default:
		return fmt.Errorf("cbor: Decode: unsupported type %T (implement Unmarshaler)", out)
	}
	return nil
}

// decodeAny decodes one self-describing value of unknown shape into *any,
// used for the element type of []any/map[string]any.
func (d *Decoder) decodeAny(out *any) error {
	state, err := d.r.PeekState()
	if err != nil {
		return err
	}
	switch state {
	case StateUnsignedInteger:
		v, err := d.r.ReadUint64()
		if err != nil {
			return err
		}
		*out = v
	case StateNegativeInteger:
		v, err := d.r.ReadInt64()
		if err != nil {
			return err
		}
		*out = v
	case StateByteString, StateStartIndefiniteLengthByteString:
		v, err := d.r.ReadByteString()
		if err != nil {
			return err
		}
		*out = v
	case StateTextString, StateStartIndefiniteLengthTextString:
		v, err := d.r.ReadTextString()
		if err != nil {
			return err
		}
		*out = v
	case StateBoolean:
		v, err := d.r.ReadBoolean()
		if err != nil {
			return err
		}
		*out = v
	case StateNull, StateUndefinedValue:
		*out = nil
		if state == StateNull {
			return d.r.ReadNull()
		}
		return d.r.ReadUndefined()
	case StateHalfPrecisionFloat:
		v, err := d.r.ReadFloat16()
		if err != nil {
			return err
		}
		*out = v
	case StateSinglePrecisionFloat:
		v, err := d.r.ReadFloat32()
		if err != nil {
			return err
		}
		*out = v
	case StateDoublePrecisionFloat:
		v, err := d.r.ReadFloat64()
		if err != nil {
			return err
		}
		*out = v
	case StateStartArray:
		var v []any
		if err := d.decodeValue(&v); err != nil {
			return err
		}
		*out = v
	case StateStartMap:
		var v map[string]any
		if err := d.decodeValue(&v); err != nil {
			return err
		}
		*out = v
	case StateTag:
		if _, err := d.r.ReadTag(); err != nil {
			return err
		}
		return d.decodeAny(out)
	default:
		return fmt.Errorf("cbor: decodeAny: unhandled state %s", state)
	}
	return nil
}
