package codec

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding   = errors.New("codec: invalid encoding")
	ErrValueTooLarge     = errors.New("codec: value too large")
	ErrInvalidValue      = errors.New("codec: invalid value")
	ErrUnexpectedVariant = errors.New("codec: unexpected variant")
	ErrUnrecognizedBits  = errors.New("codec: unrecognized bits")
	ErrFieldUnavailable  = errors.New("codec: field unavailable")
)

// Kind classifies an error into the shared taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidEncoding
	KindValueTooLarge
	KindInvalidValue
	KindUnexpectedVariant
	KindUnrecognizedBits
	KindFieldUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEncoding:
		return "invalid_encoding"
	case KindValueTooLarge:
		return "value_too_large"
	case KindInvalidValue:
		return "invalid_value"
	case KindUnexpectedVariant:
		return "unexpected_variant"
	case KindUnrecognizedBits:
		return "unrecognized_bits"
	case KindFieldUnavailable:
		return "field_unavailable"
	default:
		return "unknown"
	}
}

// KindOf reports the taxonomy kind of err, looking through wrappers.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidEncoding):
		return KindInvalidEncoding
	case errors.Is(err, ErrValueTooLarge):
		return KindValueTooLarge
	case errors.Is(err, ErrInvalidValue):
		return KindInvalidValue
	case errors.Is(err, ErrUnexpectedVariant):
		return KindUnexpectedVariant
	case errors.Is(err, ErrUnrecognizedBits):
		return KindUnrecognizedBits
	case errors.Is(err, ErrFieldUnavailable):
		return KindFieldUnavailable
	default:
		return KindUnknown
	}
}

// InvalidEncodingError reports text bytes that are not valid UTF-8.
type InvalidEncodingError struct {
	Offset int
}

func (e InvalidEncodingError) Error() string {
	return fmt.Sprintf("codec: invalid encoding at byte %d", e.Offset)
}

func (e InvalidEncodingError) Is(target error) bool { return target == ErrInvalidEncoding }

// ValueTooLargeError reports a value that does not fit its destination.
// ActualLen counts the terminator when the destination is a text buffer.
type ValueTooLargeError struct {
	MaxLen    int
	ActualLen int
}

func (e ValueTooLargeError) Error() string {
	return fmt.Sprintf("codec: value too large: max_len=%d actual_len=%d", e.MaxLen, e.ActualLen)
}

func (e ValueTooLargeError) Is(target error) bool { return target == ErrValueTooLarge }

// InvalidValueError reports a violated structural precondition.
type InvalidValueError struct {
	Reason string
}

func (e InvalidValueError) Error() string {
	return "codec: invalid value: " + e.Reason
}

func (e InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// UnexpectedVariantError reports a discriminant outside the known set.
type UnexpectedVariantError struct {
	Type string
	Tag  uint32
}

func (e UnexpectedVariantError) Error() string {
	return fmt.Sprintf("codec: unexpected variant for %s: raw_tag=%d", e.Type, e.Tag)
}

func (e UnexpectedVariantError) Is(target error) bool { return target == ErrUnexpectedVariant }

// UnrecognizedBitsError reports a bit pattern with bits outside the known set.
type UnrecognizedBitsError struct {
	Type string
	Raw  uint64
}

func (e UnrecognizedBitsError) Error() string {
	return fmt.Sprintf("codec: unrecognized bits for %s: raw_value=%#x", e.Type, e.Raw)
}

func (e UnrecognizedBitsError) Is(target error) bool { return target == ErrUnrecognizedBits }

// FieldUnavailableError wraps a per-field failure status reported by the
// telemetry source for an otherwise valid record.
type FieldUnavailableError struct {
	Code ReturnCode
}

func (e FieldUnavailableError) Error() string {
	return fmt.Sprintf("codec: field unavailable: %s (%d)", e.Code, uint32(e.Code))
}

func (e FieldUnavailableError) Is(target error) bool { return target == ErrFieldUnavailable }

// FieldError attaches the record and field name to a field conversion failure.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// ElementError attaches the array index to an element conversion failure.
type ElementError struct {
	Index int
	Err   error
}

func (e ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e ElementError) Unwrap() error { return e.Err }

// Field wraps err with record and field context. A nil err stays nil.
func Field(record, field string, err error) error {
	if err == nil {
		return nil
	}
	return FieldError{Record: record, Field: field, Err: err}
}
