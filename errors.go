package cbor

import (
	"errors"
	"fmt"
)

// StatusCode classifies the outcome of a decode operation (spec.md §3.4, §7).
type StatusCode int

const (
	// StatusSuccess means the operation completed.
	StatusSuccess StatusCode = iota
	// StatusIncomplete means the input was truncated at the current argument;
	// safe to retry once more bytes arrive.
	StatusIncomplete
	// StatusNoMatchForByteStringOnBuffer means an indefinite byte-string chunk
	// had the wrong major type or was itself indefinite.
	StatusNoMatchForByteStringOnBuffer
	// StatusNoMatchForTextStringOnBuffer is the text-string analogue of
	// StatusNoMatchForByteStringOnBuffer.
	StatusNoMatchForTextStringOnBuffer
	// StatusUnexpectedGroupSize means a fixed-capacity sink's length disagreed
	// with the wire array/map length.
	StatusUnexpectedGroupSize
	// StatusTagMismatch means a registered static tag did not match the wire tag.
	StatusTagMismatch
	// StatusVariantExhausted means no alternative of a sum type matched the wire item.
	StatusVariantExhausted
	// StatusBadAdditionalInfo means a reserved additional-info value (28, 29, 30) was seen.
	StatusBadAdditionalInfo
	// StatusBadUTF8 means a text sink that requested validation saw invalid UTF-8.
	StatusBadUTF8
	// StatusUnexpectedMajorType means the major type on the wire did not
	// match any type the reader was asked to decode at that position.
	StatusUnexpectedMajorType
	// StatusMalformed covers any other structurally invalid encoding.
	StatusMalformed
)

// String implements fmt.Stringer.
func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusIncomplete:
		return "incomplete"
	case StatusNoMatchForByteStringOnBuffer:
		return "no_match_for_bstr_on_buffer"
	case StatusNoMatchForTextStringOnBuffer:
		return "no_match_for_tstr_on_buffer"
	case StatusUnexpectedGroupSize:
		return "unexpected_group_size"
	case StatusTagMismatch:
		return "tag_mismatch"
	case StatusVariantExhausted:
		return "variant_exhausted"
	case StatusBadAdditionalInfo:
		return "bad_additional_info"
	case StatusBadUTF8:
		return "bad_utf8"
	case StatusUnexpectedMajorType:
		return "unexpected_major_type"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Common CBOR errors. Every one of these now carries a StatusCode
// (spec.md §3.4, §7) via *DecodeError, including the ones inherited from
// the teacher's plain errors.New sentinels — StatusOf/IsIncomplete walk
// the whole decode surface uniformly instead of falling back to
// StatusMalformed for anything the teacher's reader/writer originate.
var (
	// ErrUnexpectedEndOfData is returned when the data ends unexpectedly.
	// This is the teacher's own "truncated input" condition and maps
	// directly to StatusIncomplete: a stream_decode caller is meant to
	// retry once more bytes arrive (spec.md §4.E).
	ErrUnexpectedEndOfData = &DecodeError{Status: StatusIncomplete, Err: errors.New("cbor: unexpected end of data")}

	// ErrInvalidCbor is returned when the CBOR data is malformed.
	ErrInvalidCbor = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: invalid CBOR data")}

	// ErrInvalidMajorType is returned when the wire major type does not
	// match any type the reader was asked to decode (spec.md §7's
	// "unexpected major type" kind).
	ErrInvalidMajorType = &DecodeError{Status: StatusUnexpectedMajorType, Err: errors.New("cbor: invalid major type")}

	// ErrInvalidSimpleValue is returned when an invalid simple value is encountered.
	ErrInvalidSimpleValue = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: invalid simple value")}

	// ErrInvalidUtf8 is returned when a text string contains invalid UTF-8
	// (spec.md §7's bad-utf8 kind).
	ErrInvalidUtf8 = &DecodeError{Status: StatusBadUTF8, Err: errors.New("cbor: invalid UTF-8 in text string")}

	// ErrOverflow is returned when a value overflows the target type.
	ErrOverflow = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: integer overflow")}

	// ErrUnexpectedBreak is returned when a break byte is encountered unexpectedly.
	ErrUnexpectedBreak = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: unexpected break")}

	// ErrNonCanonical is returned in strict/canonical mode when encoding is non-canonical.
	ErrNonCanonical = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: non-canonical encoding")}

	// ErrNotAtEnd is returned when there is remaining data after the root value.
	ErrNotAtEnd = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: unexpected data after root value")}

	// ErrInvalidState is returned when an operation is attempted in an invalid state.
	ErrInvalidState = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: invalid reader state for this operation")}

	// ErrDuplicateKey is returned when a duplicate key is found in a map (in strict mode).
	ErrDuplicateKey = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: duplicate key in map")}

	// ErrUnsortedKeys is returned when map keys are not sorted (in canonical mode).
	ErrUnsortedKeys = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: map keys are not sorted")}

	// ErrIndefiniteLengthNotAllowed is returned when indefinite length is used in canonical mode.
	ErrIndefiniteLengthNotAllowed = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: indefinite length not allowed in canonical mode")}

	// ErrBufferTooSmall is returned when the buffer is too small for the
	// operation; like ErrUnexpectedEndOfData, this is truncation, so it
	// carries StatusIncomplete rather than StatusMalformed.
	ErrBufferTooSmall = &DecodeError{Status: StatusIncomplete, Err: errors.New("cbor: buffer too small")}

	// ErrNestingDepthExceeded is returned when the maximum nesting depth is exceeded.
	ErrNestingDepthExceeded = &DecodeError{Status: StatusMalformed, Err: errors.New("cbor: maximum nesting depth exceeded")}

	// ErrMissingBreak is returned by ReadEndArray/ReadEndMap when an
	// indefinite-length container is closed at a byte that is not a break.
	// Running out of data before the break surfaces as ErrUnexpectedEndOfData
	// instead. spec.md §4.D: "a truncation before break yields incomplete" —
	// so, like ErrUnexpectedEndOfData, it carries StatusIncomplete, not
	// StatusMalformed.
	ErrMissingBreak = &DecodeError{Status: StatusIncomplete, Err: errors.New("cbor: missing break for indefinite-length item")}

	// ErrIncompleteContainer is returned when a container (read or written)
	// has fewer items than its declared/wire length, the same family of
	// defect as ErrUnexpectedGroupSize.
	ErrIncompleteContainer = &DecodeError{Status: StatusUnexpectedGroupSize, Err: errors.New("cbor: incomplete container")}

	// ErrExtraItems is returned when a container has more items than its
	// declared/wire length.
	ErrExtraItems = &DecodeError{Status: StatusUnexpectedGroupSize, Err: errors.New("cbor: extra items in container")}

	// ErrUnexpectedGroupSize is returned when a fixed-capacity sink's length
	// disagrees with the wire array/map length (spec.md §4.C).
	ErrUnexpectedGroupSize = &DecodeError{Status: StatusUnexpectedGroupSize, Err: errors.New("cbor: unexpected group size")}

	// ErrNoMatchForByteStringOnBuffer is returned when an indefinite byte-string
	// chunk has the wrong major type or is itself indefinite.
	ErrNoMatchForByteStringOnBuffer = &DecodeError{Status: StatusNoMatchForByteStringOnBuffer, Err: errors.New("cbor: indefinite byte string chunk type mismatch")}

	// ErrNoMatchForTextStringOnBuffer is the text-string analogue of
	// ErrNoMatchForByteStringOnBuffer.
	ErrNoMatchForTextStringOnBuffer = &DecodeError{Status: StatusNoMatchForTextStringOnBuffer, Err: errors.New("cbor: indefinite text string chunk type mismatch")}

	// ErrTagMismatch is returned when a registered static tag does not
	// match the wire tag and the caller didn't need the specific tag
	// numbers (errors.Is(err, ErrTagMismatch) holds for both this sentinel
	// and anything NewTagMismatchError produces).
	ErrTagMismatch = &DecodeError{Status: StatusTagMismatch, Err: errTagMismatch}

	errTagMismatch = errors.New("cbor: tag mismatch")

	// ErrVariantExhausted is returned when no alternative of a sum type matches the wire item.
	ErrVariantExhausted = &DecodeError{Status: StatusVariantExhausted, Err: errors.New("cbor: no variant alternative matched")}

	// ErrBadAdditionalInfo is returned when a reserved additional-info value
	// (28, 29, or 30) is encountered (spec.md §3.1, §7).
	ErrBadAdditionalInfo = &DecodeError{Status: StatusBadAdditionalInfo, Err: errors.New("cbor: reserved additional-info value")}
)

// CborError provides detailed error information.
type CborError struct {
	Err     error
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *CborError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cbor error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("cbor error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *CborError) Unwrap() error {
	return e.Err
}

// NewCborError creates a new CborError.
func NewCborError(err error, offset int, message string) *CborError {
	return &CborError{
		Err:     err,
		Offset:  offset,
		Message: message,
	}
}

// TypeMismatchError is returned when the expected type doesn't match the actual type.
type TypeMismatchError struct {
	Expected CborReaderState
	Actual   CborReaderState
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cbor: expected %s but got %s", e.Expected, e.Actual)
}

// DecodeError carries a StatusCode alongside the usual error chain, so a
// one-shot decode result can be inspected by the caller either as a plain
// error (errors.Is) or by the CBOR-specific status it maps to (spec.md §3.4).
type DecodeError struct {
	Status StatusCode
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("cbor: %s: %v", e.Status, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusOf maps an error returned by this package to its StatusCode. A nil
// error maps to StatusSuccess. Every sentinel the reader/writer originate
// is now a *DecodeError (see the var block above), so the errors.As below
// covers the whole decode surface; anything else (a caller's own
// Marshaler/Unmarshaler error, for instance) falls back to StatusMalformed.
func StatusOf(err error) StatusCode {
	if err == nil {
		return StatusSuccess
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Status
	}
	return StatusMalformed
}

// IsIncomplete reports whether err means "retry once more bytes arrive"
// (spec.md §4.E, §7).
func IsIncomplete(err error) bool {
	return StatusOf(err) == StatusIncomplete
}

// NewTagMismatchError reports that the wire tag actually read (got) did not
// match the tag a Tagged type registered (want), naming both by
// CborTag.String() so a misconfigured schema doesn't just say "tag
// mismatch" with no numbers attached. errors.Is(err, ErrTagMismatch) still
// holds against the result, since both share errTagMismatch in their
// Unwrap chain.
func NewTagMismatchError(got, want CborTag) *DecodeError {
	return &DecodeError{
		Status: StatusTagMismatch,
		Err:    fmt.Errorf("%w: got %s, want %s", errTagMismatch, got, want),
	}
}
