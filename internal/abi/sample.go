package abi

const (
	ValueSize      = 8
	SampleSize     = 16
	FieldValueSize = 40
)

// Value is the opaque 8-byte storage of nvmlValue_t. Its active arm is named
// by a value type carried elsewhere.
type Value [ValueSize]byte

// Sample mirrors nvmlSample_t.
type Sample struct {
	TimeStamp   uint64
	SampleValue Value
}

func DecodeSample(b []byte) (Sample, error) {
	if err := checkSize("samples", b, SampleSize); err != nil {
		return Sample{}, err
	}
	s := Sample{TimeStamp: le.Uint64(b[0:8])}
	copy(s.SampleValue[:], b[8:16])
	return s, nil
}

func EncodeSample(s Sample) []byte {
	buf := make([]byte, SampleSize)
	le.PutUint64(buf[0:8], s.TimeStamp)
	copy(buf[8:16], s.SampleValue[:])
	return buf
}

// FieldValue mirrors nvmlFieldValue_t.
type FieldValue struct {
	FieldID     uint32
	ScopeID     uint32
	Timestamp   int64
	LatencyUsec int64
	ValueType   uint32
	NvmlReturn  uint32
	Value       Value
}

func DecodeFieldValue(b []byte) (FieldValue, error) {
	if err := checkSize("field_values", b, FieldValueSize); err != nil {
		return FieldValue{}, err
	}
	f := FieldValue{
		FieldID:     le.Uint32(b[0:4]),
		ScopeID:     le.Uint32(b[4:8]),
		Timestamp:   int64(le.Uint64(b[8:16])),
		LatencyUsec: int64(le.Uint64(b[16:24])),
		ValueType:   le.Uint32(b[24:28]),
		NvmlReturn:  le.Uint32(b[28:32]),
	}
	copy(f.Value[:], b[32:40])
	return f, nil
}

func EncodeFieldValue(f FieldValue) []byte {
	buf := make([]byte, FieldValueSize)
	le.PutUint32(buf[0:4], f.FieldID)
	le.PutUint32(buf[4:8], f.ScopeID)
	le.PutUint64(buf[8:16], uint64(f.Timestamp))
	le.PutUint64(buf[16:24], uint64(f.LatencyUsec))
	le.PutUint32(buf[24:28], f.ValueType)
	le.PutUint32(buf[28:32], f.NvmlReturn)
	copy(buf[32:40], f.Value[:])
	return buf
}
