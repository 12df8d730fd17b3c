package cbor

// GrowableBuffer is an append-only byte buffer for feeding a StreamOp
// incrementally as more of the wire arrives off a socket or file, mirroring
// the C++ original's `std::vector<std::byte> buffer` that test_stream_decode
// grows one byte at a time between resume() calls.
type GrowableBuffer struct {
	data []byte
}

// NewGrowableBuffer returns an empty GrowableBuffer.
func NewGrowableBuffer() *GrowableBuffer {
	return &GrowableBuffer{}
}

// Append adds p to the end of the buffer.
func (g *GrowableBuffer) Append(p []byte) {
	g.data = append(g.data, p...)
}

// Bytes returns the buffer's current contents. The returned slice is only
// valid until the next Append.
func (g *GrowableBuffer) Bytes() []byte {
	return g.data
}

// StreamTarget is one resumable decode unit. decode reads a fresh value
// from dec into a temporary and returns it without touching the caller's
// variable; commit is only invoked once decode has fully succeeded, and is
// what actually writes the temporary into the bound destination. Splitting
// the two steps is what makes a target's effect atomic (spec.md §4.E):
// nothing observable changes until the whole unit decodes cleanly.
type StreamTarget struct {
	decode func(dec *Decoder) (any, error)
	commit func(value any)
}

// Target binds a StreamTarget to ptr: on successful decode, *ptr is set;
// on incomplete or error, *ptr is left untouched.
func Target[T any](ptr *T) StreamTarget {
	return StreamTarget{
		decode: func(dec *Decoder) (any, error) {
			var v T
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		},
		commit: func(value any) {
			*ptr = value.(T)
		},
	}
}

// WrapAsArray composes several targets into a single atomic unit decoded as
// one CBOR array (spec.md §4.E), matching the C++ `wrap_as_array` helper:
// none of the wrapped targets' destinations are written until every element
// of the array has decoded successfully and the array's break/count closes
// cleanly.
func WrapAsArray(targets ...StreamTarget) StreamTarget {
	return StreamTarget{
		decode: func(dec *Decoder) (any, error) {
			if _, err := dec.Reader().ReadStartArray(); err != nil {
				return nil, err
			}
			values := make([]any, len(targets))
			for i, t := range targets {
				v, err := t.decode(dec)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			if err := dec.Reader().ReadEndArray(); err != nil {
				return nil, err
			}
			return values, nil
		},
		commit: func(value any) {
			values := value.([]any)
			for i, t := range targets {
				t.commit(values[i])
			}
		},
	}
}

// StreamOp is a resumable decode over a sequence of StreamTarget units
// (component E). Each call to Resume attempts every still-pending unit in
// order against whatever bytes the bound GrowableBuffer currently holds,
// committing each unit that fully decodes and stopping at the first one
// that doesn't — which may commit zero, some, or all of the remaining
// units in a single call (spec.md §8 scenario 6).
type StreamOp struct {
	buf       *GrowableBuffer
	opts      []ReaderOption
	targets   []StreamTarget
	index     int
	committed int
}

// StreamDecode begins a resumable decode of targets against buf's current
// and future contents.
func StreamDecode(buf *GrowableBuffer, targets []StreamTarget, opts ...ReaderOption) *StreamOp {
	return &StreamOp{buf: buf, opts: opts, targets: targets}
}

// StreamDecode is the GrowableBuffer-side convenience for StreamDecode(g, targets, opts...).
func (g *GrowableBuffer) StreamDecode(targets ...StreamTarget) *StreamOp {
	return StreamDecode(g, targets)
}

// Resume attempts to make progress against the buffer's current contents.
// It returns StatusSuccess once every target has committed,
// StatusIncomplete if the buffer is exhausted mid-target (nothing rolled
// back beyond the attempted target; earlier commits in prior Resume calls
// are untouched), or the StatusCode/error pair for any other decode failure.
func (op *StreamOp) Resume() (StatusCode, error) {
	for op.index < len(op.targets) {
		data := op.buf.Bytes()
		if op.committed >= len(data) {
			// No new bytes since the last commit. A reader given a
			// zero-length slice at top level (no container yet pushed onto
			// its nesting stack) would otherwise report StateFinished
			// instead of signaling incompleteness, so this is checked
			// directly rather than delegated to the reader.
			return StatusIncomplete, nil
		}
		r := NewCborReader(data[op.committed:], op.opts...)
		dec := &Decoder{r: r}

		t := op.targets[op.index]
		v, err := t.decode(dec)
		if err != nil {
			if IsIncomplete(err) {
				return StatusIncomplete, nil
			}
			return StatusOf(err), err
		}

		t.commit(v)
		op.committed += r.CurrentOffset()
		op.index++
	}
	return StatusSuccess, nil
}

// Done reports whether every target has committed.
func (op *StreamOp) Done() bool {
	return op.index >= len(op.targets)
}
