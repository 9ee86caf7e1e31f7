package records

import (
	"encoding/binary"
	"errors"
	"math"

	json "github.com/goccy/go-json"

	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

var le = binary.LittleEndian

// SampleValue is one arm of the sample value union. The set of
// implementations is closed.
type SampleValue interface {
	Type() SampleValueType
	storage() abi.Value
}

type (
	Float64Value float64
	Uint32Value  uint32
	UlongValue   uint64
	Uint64Value  uint64
	Int64Value   int64
	Int32Value   int32
	Uint16Value  uint16
)

func (Float64Value) Type() SampleValueType { return ValueTypeDouble }
func (Uint32Value) Type() SampleValueType { return ValueTypeUnsignedInt }
func (UlongValue) Type() SampleValueType { return ValueTypeUnsignedLong }
func (Uint64Value) Type() SampleValueType { return ValueTypeUnsignedLongLong }
func (Int64Value) Type() SampleValueType { return ValueTypeSignedLongLong }
func (Int32Value) Type() SampleValueType { return ValueTypeSignedInt }
func (Uint16Value) Type() SampleValueType { return ValueTypeUnsignedShort }

// MarshalJSON writes non-finite values as "NaN", "+Inf" or "-Inf".
func (v Float64Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(f)
}

func (v Float64Value) storage() (s abi.Value) {
	le.PutUint64(s[:], math.Float64bits(float64(v)))
	return s
}

func (v Uint32Value) storage() (s abi.Value) {
	le.PutUint32(s[:4], uint32(v))
	return s
}

func (v UlongValue) storage() (s abi.Value) {
	le.PutUint64(s[:], uint64(v))
	return s
}

func (v Uint64Value) storage() (s abi.Value) {
	le.PutUint64(s[:], uint64(v))
	return s
}

func (v Int64Value) storage() (s abi.Value) {
	le.PutUint64(s[:], uint64(v))
	return s
}

func (v Int32Value) storage() (s abi.Value) {
	le.PutUint32(s[:4], uint32(v))
	return s
}

func (v Uint16Value) storage() (s abi.Value) {
	le.PutUint16(s[:2], uint16(v))
	return s
}

var sampleValues = codec.NewUnion("SampleValueType", map[SampleValueType]codec.Arm[SampleValue]{
	ValueTypeDouble: func(s []byte) (SampleValue, error) {
		return Float64Value(math.Float64frombits(le.Uint64(s))), nil
	},
	ValueTypeUnsignedInt: func(s []byte) (SampleValue, error) {
		return Uint32Value(le.Uint32(s)), nil
	},
	ValueTypeUnsignedLong: func(s []byte) (SampleValue, error) {
		return UlongValue(le.Uint64(s)), nil
	},
	ValueTypeUnsignedLongLong: func(s []byte) (SampleValue, error) {
		return Uint64Value(le.Uint64(s)), nil
	},
	ValueTypeSignedLongLong: func(s []byte) (SampleValue, error) {
		return Int64Value(le.Uint64(s)), nil
	},
	ValueTypeSignedInt: func(s []byte) (SampleValue, error) {
		return Int32Value(le.Uint32(s)), nil
	},
	ValueTypeUnsignedShort: func(s []byte) (SampleValue, error) {
		return Uint16Value(le.Uint16(s)), nil
	},
})

// DecodeSampleValue reads union storage as the arm named by vt. An unknown
// vt is rejected before the storage is read.
func DecodeSampleValue(vt SampleValueType, storage abi.Value) (SampleValue, error) {
	return sampleValues.Decode(codec.Tag(vt, storage[:]))
}

// typedValue renders a union value with its arm name.
type typedValue struct {
	Type  string      `json:"type" yaml:"type"`
	Value SampleValue `json:"value" yaml:"value"`
}

func typed(v SampleValue) *typedValue {
	if v == nil {
		return nil
	}
	return &typedValue{Type: v.Type().String(), Value: v}
}

// EncodeSampleValue returns the tag and storage for v. Bytes past the
// active arm are zero.
func EncodeSampleValue(v SampleValue) (SampleValueType, abi.Value) {
	return v.Type(), v.storage()
}

// Sample is a timestamped reading. Timestamp is a CPU time in microseconds.
type Sample struct {
	Timestamp uint64      `json:"timestamp" yaml:"timestamp"`
	Value     SampleValue `json:"value" yaml:"value"`
}

// DecodeSample reads a raw sample whose value type was reported alongside
// the buffer rather than inside it.
func DecodeSample(raw abi.Sample, vt SampleValueType) (Sample, error) {
	v, err := DecodeSampleValue(vt, raw.SampleValue)
	if err != nil {
		return Sample{}, codec.Field("Sample", "value", err)
	}
	return Sample{Timestamp: raw.TimeStamp, Value: v}, nil
}

func EncodeSample(s Sample) (abi.Sample, error) {
	if s.Value == nil {
		return abi.Sample{}, codec.Field("Sample", "value", codec.InvalidValueError{Reason: "missing value"})
	}
	_, storage := EncodeSampleValue(s.Value)
	return abi.Sample{TimeStamp: s.Timestamp, SampleValue: storage}, nil
}

type sampleView struct {
	Timestamp uint64      `json:"timestamp" yaml:"timestamp"`
	Value     *typedValue `json:"value" yaml:"value"`
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleView{Timestamp: s.Timestamp, Value: typed(s.Value)})
}

func (s Sample) MarshalYAML() (any, error) {
	return sampleView{Timestamp: s.Timestamp, Value: typed(s.Value)}, nil
}

// FieldID identifies a queried device field.
type FieldID uint32

// FieldResult is the value of one queried field, or the status the source
// reported for it.
type FieldResult struct {
	value SampleValue
	err   error
}

// Get returns the value, or a FieldUnavailableError.
func (r FieldResult) Get() (SampleValue, error) { return r.value, r.err }

// Err returns the contained failure, if any.
func (r FieldResult) Err() error { return r.err }

func (r FieldResult) view() any {
	if r.err != nil {
		out := map[string]any{"error": codec.KindOf(r.err).String()}
		var fu codec.FieldUnavailableError
		if errors.As(r.err, &fu) {
			out["code"] = fu.Code.String()
		}
		return out
	}
	if r.value == nil {
		return nil
	}
	return typedValue{Type: r.value.Type().String(), Value: r.value}
}

func (r FieldResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.view()) }

func (r FieldResult) MarshalYAML() (any, error) { return r.view(), nil }

// FieldValueSample is one entry of a field value query.
type FieldValueSample struct {
	Field     FieldID     `json:"field" yaml:"field"`
	ScopeID   uint32      `json:"scope_id" yaml:"scope_id"`
	Timestamp int64       `json:"timestamp" yaml:"timestamp"`
	Latency   int64       `json:"latency" yaml:"latency"`
	Value     FieldResult `json:"value" yaml:"value"`
}

// DecodeFieldValue contains a per-field failure status in the sample's
// Value instead of failing. The value type is only checked when the status
// is success; a bad type then fails the whole sample.
func DecodeFieldValue(raw abi.FieldValue) (FieldValueSample, error) {
	s := FieldValueSample{
		Field:     FieldID(raw.FieldID),
		ScopeID:   raw.ScopeID,
		Timestamp: raw.Timestamp,
		Latency:   raw.LatencyUsec,
	}
	if err := codec.Check(codec.ReturnCode(raw.NvmlReturn)); err != nil {
		s.Value = FieldResult{err: err}
		return s, nil
	}
	v, err := DecodeSampleValue(SampleValueType(raw.ValueType), raw.Value)
	if err != nil {
		return FieldValueSample{}, codec.Field("FieldValueSample", "value_type", err)
	}
	s.Value = FieldResult{value: v}
	return s, nil
}

// DecodeFieldValues decodes every entry of a field value query, in order.
func DecodeFieldValues(raws []abi.FieldValue) ([]FieldValueSample, error) {
	return codec.MapCounted(raws, len(raws), DecodeFieldValue)
}
